package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"career-compass/internal/domain/gap"
	"career-compass/internal/domain/market"
	"career-compass/internal/domain/skill"

	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/skill_profile.schema.json
var skillProfileSchema []byte

//go:embed schemas/market_profile.schema.json
var marketProfileSchema []byte

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Score a skill profile against a market profile offline",
	Long:  "Reads a skill profile and a market profile from JSON files, validates both against their schemas and prints the gap report with its summary as JSON. No database or network is involved; the scoring engine is the same one the API uses.",
	RunE:  runGap,
}

var (
	gapSkillsPath string
	gapMarketPath string
	gapThreshold  float64
	gapOutPath    string
)

func init() {
	gapCmd.Flags().StringVarP(&gapSkillsPath, "skills", "s", "", "Path to the skill profile JSON file (required)")
	gapCmd.Flags().StringVarP(&gapMarketPath, "market", "m", "", "Path to the market profile JSON file (required)")
	gapCmd.Flags().Float64VarP(&gapThreshold, "threshold", "t", gap.DefaultCoveredThreshold, "Gap score at or below which a requirement counts as covered")
	gapCmd.Flags().StringVarP(&gapOutPath, "out", "o", "", "Write the result to this file instead of stdout")

	if err := gapCmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("mark skills flag required: %v", err))
	}
	if err := gapCmd.MarkFlagRequired("market"); err != nil {
		panic(fmt.Sprintf("mark market flag required: %v", err))
	}

	rootCmd.AddCommand(gapCmd)
}

// gapResult is the document the gap command emits.
type gapResult struct {
	CoveredThreshold float64     `json:"covered_threshold"`
	Report           gap.Report  `json:"report"`
	Summary          gap.Summary `json:"summary"`
}

// skillRow is one entry of the skill profile file. Confidence and sources are
// carried for symmetry with the API's skill records; scoring only reads the
// proficiency.
type skillRow struct {
	Name        string   `json:"name"`
	Proficiency float64  `json:"proficiency"`
	Confidence  float64  `json:"confidence"`
	Sources     []string `json:"sources"`
}

func runGap(cmd *cobra.Command, _ []string) error {
	result, err := scoreProfileFiles(gapSkillsPath, gapMarketPath, gapThreshold)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	out = append(out, '\n')

	if gapOutPath != "" {
		if err := os.WriteFile(gapOutPath, out, 0644); err != nil {
			return fmt.Errorf("write result to %s: %w", gapOutPath, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "report written to %s\n", gapOutPath)
		return nil
	}

	_, _ = cmd.OutOrStdout().Write(out)
	return nil
}

// scoreProfileFiles loads, validates and scores the two input files. Both
// files are checked against their embedded schemas before decoding so a
// malformed profile fails with field-level errors instead of a zero-filled
// report.
func scoreProfileFiles(skillsPath, marketPath string, threshold float64) (gapResult, error) {
	skillsDoc, err := os.ReadFile(skillsPath)
	if err != nil {
		return gapResult{}, fmt.Errorf("read skill profile %s: %w", skillsPath, err)
	}
	if err := validateProfile(skillProfileSchema, skillsDoc); err != nil {
		return gapResult{}, fmt.Errorf("skill profile %s: %w", skillsPath, err)
	}

	marketDoc, err := os.ReadFile(marketPath)
	if err != nil {
		return gapResult{}, fmt.Errorf("read market profile %s: %w", marketPath, err)
	}
	if err := validateProfile(marketProfileSchema, marketDoc); err != nil {
		return gapResult{}, fmt.Errorf("market profile %s: %w", marketPath, err)
	}

	var rows []skillRow
	if err := json.Unmarshal(skillsDoc, &rows); err != nil {
		return gapResult{}, fmt.Errorf("decode skill profile: %w", err)
	}
	records := make([]skill.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, skill.Record{
			Name:        row.Name,
			Proficiency: row.Proficiency,
			Confidence:  row.Confidence,
			Sources:     row.Sources,
		})
	}

	var reqs []market.Requirement
	if err := json.Unmarshal(marketDoc, &reqs); err != nil {
		return gapResult{}, fmt.Errorf("decode market profile: %w", err)
	}

	if threshold <= 0 {
		threshold = gap.DefaultCoveredThreshold
	}
	report := gap.ComputeReport(skill.ProficiencyMap(records), reqs, threshold)

	return gapResult{
		CoveredThreshold: threshold,
		Report:           report,
		Summary:          gap.Summarize(report),
	}, nil
}

// validateProfile runs a document through its schema and flattens every
// violation into one error so the operator sees all problems in a single run.
func validateProfile(schema, doc []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if result.Valid() {
		return nil
	}

	lines := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return fmt.Errorf("does not match schema: %s", strings.Join(lines, "; "))
}
