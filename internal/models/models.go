package models

import "time"

// WorkItem represents a frame queued for description
type WorkItem struct {
	FramePath string
	FrameNum  int
	Total     int
}

// FrameDescription is the model's description of a single frame
type FrameDescription struct {
	Frame   string `json:"frame"`
	Content string `json:"content"`
}

// IncidentSummary is one safety-filtered summary produced by a run
type IncidentSummary struct {
	Video      string    `json:"video"`
	Model      string    `json:"model"`
	FrameCount int       `json:"frame_count"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}

// SimilarIncident is a nearest-neighbour match from the summary archive
type SimilarIncident struct {
	Video      string
	Summary    string
	Similarity float64
}
