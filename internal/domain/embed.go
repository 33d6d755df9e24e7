package domain

// EmbedKind distinguishes self-contained playable embeds from rich markup
// embeds that may need a fallback affordance.
type EmbedKind string

const (
	EmbedVideo EmbedKind = "video"
	EmbedRich  EmbedKind = "rich"
)

// EmbedDescription is the normalized shape the viewer renders, regardless of
// which platform or strategy produced it. It is recomputed on every
// resolution request and never persisted.
type EmbedDescription struct {
	Kind         EmbedKind `json:"type"`
	HTML         string    `json:"html"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Title        string    `json:"title,omitempty"`
	AuthorName   string    `json:"author_name,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Platform     Platform  `json:"platform"`
}
