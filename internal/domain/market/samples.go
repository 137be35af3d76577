package market

// SampleStats is a canned demand profile for data-oriented healthcare roles.
// It backs gap analysis when neither stored postings nor the language model
// can produce market data.
func SampleStats() []Stat {
	return []Stat{
		{Name: "python", Frequency: 0.85, Level: string(CategoryCritical), AvgProficiency: 0.75},
		{Name: "sql", Frequency: 0.80, Level: string(CategoryCritical), AvgProficiency: 0.70},
		{Name: "machine-learning", Frequency: 0.65, Level: string(CategoryImportant), AvgProficiency: 0.65},
		{Name: "data-analysis", Frequency: 0.75, Level: string(CategoryCritical), AvgProficiency: 0.70},
		{Name: "tensorflow", Frequency: 0.45, Level: string(CategoryImportant), AvgProficiency: 0.60},
		{Name: "healthcare-data", Frequency: 0.55, Level: string(CategoryImportant), AvgProficiency: 0.65},
		{Name: "nlp", Frequency: 0.40, Level: string(CategoryEmerging), AvgProficiency: 0.55},
		{Name: "pandas", Frequency: 0.70, Level: string(CategoryCritical), AvgProficiency: 0.70},
		{Name: "tableau", Frequency: 0.50, Level: string(CategoryImportant), AvgProficiency: 0.60},
		{Name: "statistics", Frequency: 0.60, Level: string(CategoryImportant), AvgProficiency: 0.65},
	}
}

// SampleProfile is SampleStats shaped into a scoring profile.
func SampleProfile() []Requirement {
	return Requirements(SampleStats())
}
