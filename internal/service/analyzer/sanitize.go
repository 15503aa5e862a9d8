package analyzer

import "tubewise/internal/models"

// sanitizeResult coerces the parsed payload into a well-formed result.
// Fields of the wrong shape are replaced with empty defaults rather than
// rejected; list fields are truncated to their caps keeping original order.
func sanitizeResult(payload map[string]any) *models.AnalysisResult {
	return &models.AnalysisResult{
		Titles:      stringList(payload["titles"], models.MaxTitles),
		Description: stringValue(payload["description"]),
		Tags:        stringList(payload["tags"], models.MaxTags),
		Thumbnails:  stringList(payload["thumbnails"], models.MaxThumbnails),
	}
}

func stringList(v any, max int) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, max)
	for _, item := range items {
		if len(out) == max {
			break
		}
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
