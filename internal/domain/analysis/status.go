package analysis

import "time"

// SourceStat summarizes one posting source for the status endpoint.
type SourceStat struct {
	Source        string    `json:"source"`
	TotalPostings int       `json:"total_postings"`
	LastCollected time.Time `json:"last_collected"`
}

// ServiceStatus is the operational snapshot served by the status endpoint.
type ServiceStatus struct {
	TotalPostings   int          `json:"total_postings"`
	PostingsToday   int          `json:"postings_today"`
	Sources         []SourceStat `json:"sources"`
	RolesAnalyzed   int          `json:"roles_analyzed"`
	DatabaseHealthy bool         `json:"database_healthy"`
	RedisHealthy    bool         `json:"redis_healthy"`
	ServerTime      time.Time    `json:"server_time"`
}
