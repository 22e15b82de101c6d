// Package models defines the records loaded from the award and streaming datasets.
package models

// AwardRecord is one nomination row from the Grammy awards dataset.
type AwardRecord struct {
	Year      int    `json:"year"`
	AwardName string `json:"awardName"`
	Nominee   string `json:"nominee"`
	Work      string `json:"work,omitempty"`
	Winner    bool   `json:"winner"`
}

// ProducerNomination is one row of the Producer of the Year table.
// Works holds the raw bullet-separated list of credited productions.
type ProducerNomination struct {
	Year      int    `json:"year"`
	AwardName string `json:"awardName"`
	Nominee   string `json:"nominee"`
	Works     string `json:"works"`
	Winner    bool   `json:"winner"`
}

// ProducerWork is a single production extracted from a nomination.
type ProducerWork struct {
	Producer string `json:"producer"`
	Work     string `json:"work"`
	Artist   string `json:"artist"`
	Year     int    `json:"year"`
	Winner   bool   `json:"winner"`
	InChart  bool   `json:"inChart"`
}
