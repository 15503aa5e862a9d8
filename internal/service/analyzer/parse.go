package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Models asked for JSON still occasionally wrap it in prose or code fences.
// The fallback grabs the outermost brace-delimited object and parses that.
var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

var errNoJSONObject = errors.New("no JSON object found in response")

// decodeLooseJSON attempts a strict parse first, then falls back to
// extracting a {...} substring. Anything past that is a parse failure.
func decodeLooseJSON(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)

	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
		return payload, nil
	}

	match := jsonObjectPattern.FindString(trimmed)
	if match == "" {
		return nil, errNoJSONObject
	}
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return nil, fmt.Errorf("parse extracted object: %w", err)
	}
	return payload, nil
}
