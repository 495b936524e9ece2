package models

import "time"

// Word pack types.
const (
	PackCurated   = "curated"
	PackCustom    = "custom"
	PackAI        = "ai"
	PackCommunity = "community"
)

// Word pack difficulties.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// WordPair is one civilian/undercover pairing. Both words always come
// from the same pair; a room never mixes words across pairs.
type WordPair struct {
	Civilian   string `json:"civilian"`
	Undercover string `json:"undercover"`
}

type WordPack struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Difficulty  string     `json:"difficulty"`
	Language    string     `json:"language"`
	IsPublic    bool       `json:"is_public"`
	Content     []WordPair `json:"content"` // stored as jsonb
	CreatedAt   time.Time  `json:"created_at"`
}
