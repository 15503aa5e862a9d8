package models

// Caps applied to the model output before it is returned to the client.
const (
	MaxTitles     = 5
	MaxTags       = 30
	MaxThumbnails = 3
)

// AnalysisResult is the sanitized payload returned by the analyze endpoint.
// All four fields are always present regardless of what the model returned.
type AnalysisResult struct {
	Titles      []string `json:"titles"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Thumbnails  []string `json:"thumbnails"`
}

// InlineImage is image data embedded directly into a model request
// rather than referenced by URI.
type InlineImage struct {
	MIMEType string
	Data     []byte
}
