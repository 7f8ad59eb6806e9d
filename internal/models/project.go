package models

import "time"

// Project is a portfolio entry derived from a public GitHub repository.
type Project struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	GitHub      string    `json:"github"`
	Link        string    `json:"link,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Language    string    `json:"language,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
