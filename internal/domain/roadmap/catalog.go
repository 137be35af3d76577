package roadmap

// Catalog returns the built-in career tracks. Milestone skills use the
// same canonical names the extraction and market packages produce, so
// progress can be read straight off the user's skill records.
func Catalog() []Domain {
	return []Domain{
		{
			ID:                "healthcare-data-analytics",
			Name:              "Healthcare Data Analytics",
			Description:       "Turn clinical and claims data into reporting and insight for care providers.",
			Icon:              "📊",
			Color:             "#2563eb",
			EstimatedDuration: "6-9 months",
			Milestones: []Milestone{
				{
					ID:          "analytics-foundations",
					Title:       "Analytics Foundations",
					Description: "Core tooling for querying and manipulating tabular data.",
					Duration:    "4 weeks",
					Skills:      []string{"python", "sql", "excel"},
				},
				{
					ID:          "data-wrangling",
					Title:       "Data Wrangling",
					Description: "Clean and reshape messy extracts into analysis-ready datasets.",
					Duration:    "6 weeks",
					Skills:      []string{"pandas", "numpy", "etl"},
				},
				{
					ID:          "healthcare-domain",
					Title:       "Healthcare Domain Knowledge",
					Description: "EHR exports, claims feeds and the compliance rules around them.",
					Duration:    "4 weeks",
					Skills:      []string{"ehr", "hipaa", "claims-data", "medical-coding"},
				},
				{
					ID:          "visualization-reporting",
					Title:       "Visualization and Reporting",
					Description: "Dashboards and recurring reports for clinical stakeholders.",
					Duration:    "4 weeks",
					Skills:      []string{"tableau", "power-bi", "data-visualization"},
				},
				{
					ID:          "statistical-analysis",
					Title:       "Statistical Analysis",
					Description: "Hypothesis testing and cohort comparisons on patient populations.",
					Duration:    "6 weeks",
					Skills:      []string{"statistics", "data-analysis"},
				},
				{
					ID:          "analytics-capstone",
					Title:       "Capstone Project",
					Description: "An end to end analysis of a public healthcare dataset, from raw extract to dashboard.",
					Duration:    "4 weeks",
					Skills:      []string{"python", "sql", "tableau", "healthcare-data"},
				},
			},
		},
		{
			ID:                "clinical-informatics",
			Name:              "Clinical Informatics",
			Description:       "Work at the boundary between clinical systems, interoperability standards and care teams.",
			Icon:              "🏥",
			Color:             "#0d9488",
			EstimatedDuration: "4-6 months",
			Milestones: []Milestone{
				{
					ID:          "ehr-systems",
					Title:       "EHR Systems",
					Description: "How the major electronic health record platforms store and expose data.",
					Duration:    "4 weeks",
					Skills:      []string{"ehr", "epic", "cerner"},
				},
				{
					ID:          "interoperability-standards",
					Title:       "Interoperability Standards",
					Description: "Messaging and coding standards used to move data between systems.",
					Duration:    "6 weeks",
					Skills:      []string{"hl7", "fhir", "icd-10"},
				},
				{
					ID:          "clinical-data-management",
					Title:       "Clinical Data Management",
					Description: "Extract, validate and govern clinical datasets.",
					Duration:    "5 weeks",
					Skills:      []string{"clinical-data", "sql", "etl"},
				},
				{
					ID:          "population-health-analytics",
					Title:       "Population Health Analytics",
					Description: "Measure outcomes and risk across patient cohorts.",
					Duration:    "5 weeks",
					Skills:      []string{"population-health", "statistics", "data-analysis"},
				},
			},
		},
		{
			ID:                "machine-learning-engineering",
			Name:              "Machine Learning Engineering",
			Description:       "Build, evaluate and ship predictive models, including clinical prediction tasks.",
			Icon:              "🤖",
			Color:             "#7c3aed",
			EstimatedDuration: "6-9 months",
			Milestones: []Milestone{
				{
					ID:          "ml-foundations",
					Title:       "ML Foundations",
					Description: "Supervised learning, model evaluation and the scientific Python stack.",
					Duration:    "6 weeks",
					Skills:      []string{"python", "statistics", "scikit-learn"},
				},
				{
					ID:          "deep-learning",
					Title:       "Deep Learning",
					Description: "Neural networks for imaging and sequence data.",
					Duration:    "6 weeks",
					Skills:      []string{"tensorflow", "keras", "deep-learning"},
				},
				{
					ID:          "nlp-applications",
					Title:       "NLP Applications",
					Description: "Information extraction from clinical notes and free text.",
					Duration:    "5 weeks",
					Skills:      []string{"nlp", "machine-learning"},
				},
				{
					ID:          "ml-operations",
					Title:       "ML Operations",
					Description: "Package and deploy models behind services.",
					Duration:    "5 weeks",
					Skills:      []string{"docker", "git", "aws"},
				},
			},
		},
		{
			ID:                "data-engineering",
			Name:              "Data Engineering",
			Description:       "Design the pipelines and warehouses that analytics teams build on.",
			Icon:              "🛠️",
			Color:             "#ea580c",
			EstimatedDuration: "4-6 months",
			Milestones: []Milestone{
				{
					ID:          "database-foundations",
					Title:       "Database Foundations",
					Description: "Relational modelling and serious SQL.",
					Duration:    "5 weeks",
					Skills:      []string{"sql", "postgresql"},
				},
				{
					ID:          "pipeline-orchestration",
					Title:       "Pipeline Orchestration",
					Description: "Scheduled batch pipelines and distributed processing.",
					Duration:    "6 weeks",
					Skills:      []string{"etl", "airflow", "spark"},
				},
				{
					ID:          "cloud-data-platforms",
					Title:       "Cloud Data Platforms",
					Description: "Object storage, managed warehouses and containerised workloads.",
					Duration:    "5 weeks",
					Skills:      []string{"aws", "s3", "docker"},
				},
			},
		},
	}
}

// Find returns the catalog domain with the given id.
func Find(id string) (Domain, bool) {
	for _, d := range Catalog() {
		if d.ID == id {
			return d, true
		}
	}
	return Domain{}, false
}
