package analyzer

import "fmt"

// The single fixed instruction sent with every analysis. The creator context
// is interpolated; everything else is constant so results stay comparable
// across runs.
const promptTemplate = `You are an expert YouTube growth strategist. Watch the attached video (and any attached reference images) and produce metadata that maximizes click-through and watch time.

Produce exactly these four outputs:
1. "titles": 5 distinct title variants for the video.
2. "description": one SEO-optimized video description that includes timestamped chapters in mm:ss format.
3. "tags": 30 search tags, all lowercase, without hashtags.
4. "thumbnails": 3 thumbnail concepts described in text. Describe the composition, text overlay and mood; do not generate images.

Additional context from the creator: %s

Respond with valid JSON only, a single object with exactly the keys "titles", "description", "tags" and "thumbnails". No markdown, no commentary.`

const noContextPlaceholder = "None provided"

func buildPrompt(creatorContext string) string {
	if creatorContext == "" {
		creatorContext = noContextPlaceholder
	}
	return fmt.Sprintf(promptTemplate, creatorContext)
}
