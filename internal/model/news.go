package model

import "time"

// Article is a headline summary as returned by the news provider.
type Article struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	SourceName  string    `json:"source_name"`
	Description string    `json:"description"`
}
