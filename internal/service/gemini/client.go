package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"tubewise/internal/service/analyzer"
)

// Client implements analyzer.Vendor on top of the Gemini API: the file
// store for video assets and the generate-content endpoint for the
// metadata itself.
type Client struct {
	client       *genai.Client
	model        string
	pollInterval time.Duration
}

func New(ctx context.Context, apiKey, model string, pollInterval time.Duration) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Client{client: client, model: model, pollInterval: pollInterval}, nil
}

// UploadAsset pushes a local file to the Gemini file store and blocks until
// the asset is ready for generation.
func (c *Client) UploadAsset(ctx context.Context, path, mimeType, displayName string) (analyzer.FileRef, error) {
	file, err := c.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: displayName,
	})
	if err != nil {
		return analyzer.FileRef{}, fmt.Errorf("upload file: %w", err)
	}
	file, err = c.waitForActive(ctx, file)
	if err != nil {
		return analyzer.FileRef{}, err
	}
	return analyzer.FileRef{URI: file.URI, MIMEType: file.MIMEType}, nil
}

func (c *Client) waitForActive(ctx context.Context, file *genai.File) (*genai.File, error) {
	for file.State != genai.FileStateActive {
		if file.State == genai.FileStateFailed {
			return nil, fmt.Errorf("file %s failed remote processing", file.Name)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
		var err error
		file, err = c.client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("poll file state: %w", err)
		}
	}
	return file, nil
}

// Generate invokes the model with the prompt text, a reference to the
// uploaded video and the inline image parts, and returns the generated text.
func (c *Client) Generate(ctx context.Context, req analyzer.GenerateRequest) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(req.Prompt),
		genai.NewPartFromURI(req.Video.URI, req.Video.MIMEType),
	}
	for _, img := range req.Images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		MaxOutputTokens:  req.MaxOutputTokens,
		ResponseMIMEType: req.ResponseMIMEType,
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no content generated")
	}
	return text, nil
}
