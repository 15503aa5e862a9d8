package analyzer

import (
	"context"
	"io"
	"os"

	"tubewise/internal/apperr"
	"tubewise/internal/models"
)

// Generation parameters sent with every model invocation.
const (
	generationTemperature = float32(0.6)
	maxOutputTokens       = int32(1200)
	jsonResponseMIME      = "application/json"
	defaultVideoMIME      = "video/mp4"
)

// FileRef points at an asset previously uploaded to the vendor file store.
type FileRef struct {
	URI      string
	MIMEType string
}

// GenerateRequest carries the prompt parts and generation bounds for one
// model invocation.
type GenerateRequest struct {
	Prompt           string
	Video            FileRef
	Images           []models.InlineImage
	Temperature      float32
	MaxOutputTokens  int32
	ResponseMIMEType string
}

// Vendor is the narrow capability surface of the external AI service so it
// can be mocked in tests and substituted later.
type Vendor interface {
	UploadAsset(ctx context.Context, path, mimeType, displayName string) (FileRef, error)
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// File is one uploaded part of the multipart submission.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Request is a single analysis submission.
type Request struct {
	Video   File
	Images  []File
	Context string
}

// Service runs the upload-and-analyze pipeline against a Vendor.
type Service struct {
	vendor     Vendor
	scratchDir string
}

// NewService constructs the analyzer. A nil vendor means the service
// credential was never configured; every Analyze call then fails with a
// configuration error before touching the filesystem or the network.
func NewService(vendor Vendor, scratchDir string) *Service {
	return &Service{vendor: vendor, scratchDir: scratchDir}
}

// Analyze stages the video into the scratch dir, uploads it to the vendor
// file store, invokes the model with the fixed prompt plus inline images,
// and returns the sanitized result. The scratch file is removed whether or
// not the vendor calls succeed.
func (s *Service) Analyze(ctx context.Context, req Request) (*models.AnalysisResult, error) {
	if s.vendor == nil {
		return nil, apperr.New(apperr.Config, "AI service credential is not configured")
	}
	if req.Video.Content == nil {
		return nil, apperr.New(apperr.ClientInput, "video file is required")
	}

	path, err := s.stageVideo(req.Video)
	if err != nil {
		return nil, apperr.Wrap(apperr.Processing, "failed to store uploaded video", err)
	}
	defer func() {
		// Best-effort cleanup, never surfaced.
		_ = os.Remove(path)
	}()

	mimeType := req.Video.ContentType
	if mimeType == "" {
		mimeType = defaultVideoMIME
	}
	asset, err := s.vendor.UploadAsset(ctx, path, mimeType, req.Video.Name)
	if err != nil {
		return nil, apperr.Wrap(apperr.Processing, "failed to upload video to AI service", err)
	}

	images, err := encodeInlineImages(req.Images)
	if err != nil {
		return nil, apperr.Wrap(apperr.Processing, "failed to read attached images", err)
	}

	text, err := s.vendor.Generate(ctx, GenerateRequest{
		Prompt:           buildPrompt(req.Context),
		Video:            asset,
		Images:           images,
		Temperature:      generationTemperature,
		MaxOutputTokens:  maxOutputTokens,
		ResponseMIMEType: jsonResponseMIME,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Processing, "AI generation failed", err)
	}

	payload, err := decodeLooseJSON(text)
	if err != nil {
		return nil, apperr.Wrap(apperr.Processing, "could not parse AI response", err)
	}
	return sanitizeResult(payload), nil
}
