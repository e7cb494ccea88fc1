package models

import "time"

// AnalysisResult is the normalized output of one résumé/job analysis.
// It is ephemeral: only the per-job history entry is kept (in Redis).
type AnalysisResult struct {
	Score            int    `json:"placar"`
	MissingKeywords  string `json:"palavrasChaveFaltando"` // comma-joined
	OptimizedSummary string `json:"resumoOtimizado"`
	Suggestions      string `json:"sugestoesMelhoria"`
}

// ImprovementData compares repeated analyses of the same job.
type ImprovementData struct {
	PreviousScore int `json:"previousScore"`
	CurrentScore  int `json:"currentScore"`
	Improvement   int `json:"improvement"`
	AnalysisCount int `json:"analysisCount"`
}

// JobHistory is the cached record for one job identity key.
type JobHistory struct {
	JobHash       string    `json:"job_hash"`
	LastScore     int       `json:"last_score"`
	AnalysisCount int       `json:"analysis_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}
