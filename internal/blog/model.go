package blog

import "time"

type Post struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	Locale        string     `json:"locale"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	ContentHTML   string     `json:"contentHtml,omitempty"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type ListFilter struct {
	Locale        string
	PublishedOnly bool
	Limit         int
	Offset        int
}
