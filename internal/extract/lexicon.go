package extract

import (
	"strings"
	"unicode"
)

// lexicon is the curated skill vocabulary, grouped by category. Extraction
// only ever surfaces terms from this list so arbitrary resume words never
// leak into a profile.
var lexicon = map[string][]string{
	"programming_languages": {
		"python", "java", "javascript", "typescript", "c++", "c#", "php",
		"ruby", "go", "golang", "rust", "kotlin", "swift", "scala", "r",
		"matlab", "perl", "shell", "bash", "powershell", "c", "objective-c",
		"dart", "elixir", "haskell", "lua", "julia", "groovy", "vba",
	},
	"web_technologies": {
		"html", "html5", "css", "css3", "react", "reactjs", "angular",
		"vue", "vuejs", "nodejs", "node.js", "express", "django", "flask",
		"fastapi", "rest", "restful", "rest api", "graphql", "bootstrap",
		"tailwind", "sass", "scss", "webpack", "vite", "redux", "next.js",
		"nextjs", "jquery", "ajax", "json", "xml", "websocket",
	},
	"databases": {
		"sql", "mysql", "postgresql", "postgres", "mongodb", "redis",
		"elasticsearch", "oracle", "cassandra", "dynamodb", "firebase",
		"sqlite", "mariadb", "neo4j", "couchdb", "firestore",
	},
	"cloud_platforms": {
		"aws", "amazon web services", "azure", "microsoft azure", "gcp",
		"google cloud", "heroku", "digitalocean", "docker", "kubernetes",
		"k8s", "s3", "ec2", "lambda", "cloudflare", "vercel", "netlify",
	},
	"devops_tools": {
		"docker", "kubernetes", "jenkins", "gitlab", "github", "git",
		"ci/cd", "terraform", "ansible", "chef", "puppet", "nginx",
		"apache", "circleci", "travis ci", "github actions", "bitbucket",
	},
	"data_science": {
		"machine learning", "deep learning", "tensorflow", "pytorch",
		"keras", "pandas", "numpy", "scikit-learn", "sklearn", "matplotlib",
		"data analysis", "nlp", "natural language processing", "computer vision",
		"ai", "artificial intelligence", "data visualization", "jupyter",
		"opencv", "seaborn", "plotly",
	},
	"healthcare_data": {
		"healthcare data", "ehr", "emr", "hl7", "fhir", "icd-10",
		"clinical data", "hipaa", "epic", "cerner", "medical coding",
		"health informatics", "claims data", "population health",
	},
	"testing": {
		"selenium", "pytest", "junit", "jest", "cypress", "postman",
		"jmeter", "cucumber", "mocha", "chai", "testng",
	},
	"project_management": {
		"agile", "scrum", "kanban", "jira", "confluence", "trello",
		"asana", "waterfall", "pmp", "prince2", "six sigma", "lean",
	},
	"soft_skills": {
		"leadership", "communication", "teamwork", "problem solving",
		"critical thinking", "time management", "adaptability",
		"collaboration", "presentation", "mentoring", "coaching",
		"project management", "analytical skills", "decision making",
	},
	"mobile_development": {
		"android", "ios", "react native", "flutter", "swift", "swiftui",
		"kotlin", "xamarin", "ionic", "cordova",
	},
	"security": {
		"cybersecurity", "penetration testing", "ethical hacking",
		"owasp", "ssl", "tls", "oauth", "jwt", "encryption",
		"firewall", "vpn",
	},
	"design": {
		"ui design", "ux design", "ui/ux", "figma", "sketch",
		"adobe xd", "photoshop", "illustrator", "wireframing",
		"prototyping", "design thinking",
	},
	"other_technologies": {
		"blockchain", "ethereum", "web3", "iot", "ar", "vr",
		"game development", "unity", "unreal engine", "linux",
		"unix", "windows", "macos", "api design", "microservices",
		"tableau", "power bi", "excel", "statistics", "etl", "airflow",
		"spark", "hadoop",
	},
}

// excludeWords are resume filler terms that must never be treated as skills.
var excludeWords = map[string]bool{
	"experience": true, "years": true, "developed": true, "built": true,
	"created": true, "managed": true, "led": true, "implemented": true,
	"designed": true, "worked": true, "project": true, "team": true,
	"company": true, "role": true, "position": true, "responsible": true,
	"duties": true, "tasks": true, "strong": true, "excellent": true,
	"good": true, "proficient": true, "expert": true, "beginner": true,
	"and": true, "or": true, "with": true, "using": true, "including": true,
	"such": true, "as": true, "the": true, "a": true, "an": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"of": true, "from": true, "by": true,
}

// categoryTitle turns a lexicon key like "data_science" into "Data Science".
func categoryTitle(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
