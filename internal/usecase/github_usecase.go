package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"career-compass/internal/domain/skill"
	"career-compass/internal/extract"
	"career-compass/internal/infrastructure/github"
	"career-compass/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidGitHubURL  = errors.New("invalid github url")
	ErrGitHubUnavailable = errors.New("github api unavailable")
)

// Readme text beyond these limits adds noise, not signal.
const (
	readmeExtractionLimit = 5000
	llmReadmeContextLimit = 3000
)

// GitHubAPI is the slice of the github client the analyzer consumes.
type GitHubAPI interface {
	UserRepos(ctx context.Context, username string, maxRepos int) ([]github.Repo, error)
	Repo(ctx context.Context, username, name string) (*github.Repo, error)
	Readme(ctx context.Context, username, name string) (string, error)
	MaxRepos() int
}

// SkillNamer is the optional LLM pass that catches skills the pattern
// lexicon misses in readme prose.
type SkillNamer interface {
	Available() bool
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}

// RepoDetail is the per-repository breakdown in an analysis response.
type RepoDetail struct {
	Name     string   `json:"name"`
	Language string   `json:"language,omitempty"`
	Stars    int      `json:"stars"`
	URL      string   `json:"url,omitempty"`
	Skills   []string `json:"skills"`
}

type githubScore struct {
	Name        string  `json:"name"`
	Proficiency float64 `json:"proficiency"`
	Confidence  float64 `json:"confidence"`
}

// githubProfile is the user-agnostic half of an analysis: what the public
// repos demonstrate, independent of who asked. This is what gets cached.
type githubProfile struct {
	Username string        `json:"username"`
	Repos    []RepoDetail  `json:"repos"`
	Scores   []githubScore `json:"scores"`
}

// GitHubAnalysis is the response of one analysis run.
type GitHubAnalysis struct {
	Username      string       `json:"github_username"`
	ReposAnalyzed int          `json:"repos_analyzed"`
	SkillsFound   int          `json:"skills_found"`
	SkillsSaved   int          `json:"skills_saved"`
	Skills        []skill.View `json:"skills"`
	Repos         []RepoDetail `json:"repo_details"`
}

type GitHubUsecase interface {
	Analyze(ctx context.Context, userID uuid.UUID, rawURL string) (GitHubAnalysis, error)
}

type GitHub struct {
	api       GitHubAPI
	skills    repository.UserSkillRepository
	extractor *extract.Extractor
	namer     SkillNamer
	cache     Cache
}

func NewGitHubUsecase(api GitHubAPI, skills repository.UserSkillRepository, extractor *extract.Extractor, namer SkillNamer, cache Cache) *GitHub {
	return &GitHub{api: api, skills: skills, extractor: extractor, namer: namer, cache: cache}
}

// Analyze walks a github profile (or a single repository), scores the
// demonstrated skills and folds them into the user's profile. A stored
// skill only moves when the github evidence scores higher.
func (u *GitHub) Analyze(ctx context.Context, userID uuid.UUID, rawURL string) (GitHubAnalysis, error) {
	username, repoName := github.ParseProfileURL(rawURL)
	if username == "" {
		return GitHubAnalysis{}, ErrInvalidGitHubURL
	}
	if u.api == nil {
		return GitHubAnalysis{}, ErrGitHubUnavailable
	}

	profile, err := u.profileFor(ctx, username, repoName)
	if err != nil {
		return GitHubAnalysis{}, err
	}

	saved := 0
	views := make([]skill.View, 0, len(profile.Scores))
	for _, sc := range profile.Scores {
		rec := skill.FromObservation(userID, skill.Observation{
			Name:        sc.Name,
			Proficiency: sc.Proficiency,
			Confidence:  sc.Confidence,
			Source:      skill.SourceGitHub,
		})
		ok, err := u.skills.UpsertIfHigher(ctx, rec)
		if err != nil {
			return GitHubAnalysis{}, ErrInternal
		}
		if ok {
			saved++
		}
		views = append(views, rec.View())
	}

	if saved > 0 && u.cache != nil {
		_ = u.cache.InvalidateUserScope(ctx, userID.String())
	}

	return GitHubAnalysis{
		Username:      username,
		ReposAnalyzed: len(profile.Repos),
		SkillsFound:   len(profile.Scores),
		SkillsSaved:   saved,
		Skills:        views,
		Repos:         profile.Repos,
	}, nil
}

func (u *GitHub) profileFor(ctx context.Context, username, repoName string) (githubProfile, error) {
	key := githubCacheKey(username)
	wholeProfile := repoName == ""

	if wholeProfile && u.cache != nil {
		var cached githubProfile
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	var repos []github.Repo
	if wholeProfile {
		fetched, err := u.api.UserRepos(ctx, username, u.api.MaxRepos())
		if err != nil {
			return githubProfile{}, ErrGitHubUnavailable
		}
		repos = fetched
	} else {
		r, err := u.api.Repo(ctx, username, repoName)
		if err != nil {
			return githubProfile{}, ErrGitHubUnavailable
		}
		repos = []github.Repo{*r}
	}

	type acc struct {
		count    int
		maxStars int
	}
	bySkill := make(map[string]*acc)
	details := make([]RepoDetail, 0, len(repos))
	var readmes strings.Builder

	for _, repo := range repos {
		text := repo.Name + " " + repo.Description + " " + repo.Language + " " + strings.Join(repo.Topics, " ")

		readme, err := u.api.Readme(ctx, username, repo.Name)
		if err == nil && readme != "" {
			if len(readme) > readmeExtractionLimit {
				readme = readme[:readmeExtractionLimit]
			}
			text += " " + readme
			if readmes.Len() < llmReadmeContextLimit {
				readmes.WriteString(readme)
				readmes.WriteString("\n")
			}
		}

		names := u.extractor.Names(text)
		for _, n := range names {
			a, ok := bySkill[n]
			if !ok {
				a = &acc{}
				bySkill[n] = a
			}
			a.count++
			if repo.Stars > a.maxStars {
				a.maxStars = repo.Stars
			}
		}
		details = append(details, RepoDetail{
			Name:     repo.Name,
			Language: repo.Language,
			Stars:    repo.Stars,
			URL:      repo.HTMLURL,
			Skills:   names,
		})
	}

	if u.namer != nil && u.namer.Available() && readmes.Len() >= minResumeChars {
		prose := readmes.String()
		if len(prose) > llmReadmeContextLimit {
			prose = prose[:llmReadmeContextLimit]
		}
		extra, err := u.namer.ExtractSkills(ctx, prose)
		if err == nil {
			for _, n := range extra {
				n = skill.NormalizeName(n)
				if n == "" {
					continue
				}
				if _, ok := bySkill[n]; !ok {
					bySkill[n] = &acc{count: 1}
				}
			}
		}
	}

	names := make([]string, 0, len(bySkill))
	for n := range bySkill {
		names = append(names, n)
	}
	sort.Strings(names)

	scores := make([]githubScore, 0, len(names))
	for _, n := range names {
		a := bySkill[n]
		scores = append(scores, githubScore{
			Name:        n,
			Proficiency: githubProficiency(a.count, a.maxStars),
			Confidence:  githubConfidence(a.maxStars),
		})
	}

	profile := githubProfile{Username: username, Repos: details, Scores: scores}
	if wholeProfile && u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, profile, githubCacheTTL)
	}
	return profile, nil
}

// githubProficiency starts repository evidence at 0.65 and climbs with the
// number of repos exercising the skill plus a popularity bump, capped at
// 0.90 so public code never outranks direct work experience.
func githubProficiency(repoCount, maxStars int) float64 {
	p := 0.65 + 0.05*float64(min(repoCount-1, 3))
	switch {
	case maxStars > 10:
		p += 0.10
	case maxStars > 0:
		p += 0.05
	}
	if p > 0.90 {
		p = 0.90
	}
	return p
}

func githubConfidence(maxStars int) float64 {
	c := 0.75
	if maxStars > 10 {
		c += 0.05
	}
	if c > 0.95 {
		c = 0.95
	}
	return c
}
