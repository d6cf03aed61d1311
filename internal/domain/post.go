package domain

import "time"

// Post is a travel-share entry. Ids are assigned by the store and are
// monotonically increasing, but deletions leave gaps, so not every id
// between the minimum and maximum resolves to a post.
type Post struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Image       []byte    `json:"image,omitempty"`
	ImageFormat string    `json:"imageFormat,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	// Liked is the viewer-specific annotation filled in by detail queries.
	Liked bool `json:"liked"`
}
