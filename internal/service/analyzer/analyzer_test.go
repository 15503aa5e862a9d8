package analyzer

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"tubewise/internal/apperr"
)

type vendorMock struct {
	uploads   int
	generates int

	uploadedPath string
	uploadedMIME string
	uploadedName string
	uploadErr    error

	lastGenerate GenerateRequest
	generateText string
	generateErr  error
}

func (m *vendorMock) UploadAsset(_ context.Context, path, mimeType, displayName string) (FileRef, error) {
	m.uploads++
	m.uploadedPath = path
	m.uploadedMIME = mimeType
	m.uploadedName = displayName
	if m.uploadErr != nil {
		return FileRef{}, m.uploadErr
	}
	return FileRef{URI: "files/abc123", MIMEType: mimeType}, nil
}

func (m *vendorMock) Generate(_ context.Context, req GenerateRequest) (string, error) {
	m.generates++
	m.lastGenerate = req
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.generateText, nil
}

const validResponse = `{"titles":["A","B"],"description":"d","tags":["t1"],"thumbnails":["th"]}`

func newTestService(t *testing.T, vendor Vendor) (*Service, string) {
	t.Helper()
	scratch := t.TempDir()
	return NewService(vendor, scratch), scratch
}

func videoRequest(content string) Request {
	return Request{
		Video: File{
			Name:        "my video.mp4",
			ContentType: "video/mp4",
			Content:     strings.NewReader(content),
		},
	}
}

func assertScratchEmpty(t *testing.T, scratch string) {
	t.Helper()
	entries, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatalf("read scratch dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty scratch dir, found %d entries", len(entries))
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	mock := &vendorMock{generateText: validResponse}
	svc, scratch := newTestService(t, mock)

	req := videoRequest("fake video bytes")
	req.Context = "Gaming channel, weekly uploads"
	result, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if mock.uploads != 1 || mock.generates != 1 {
		t.Fatalf("expected one upload and one generate, got %d/%d", mock.uploads, mock.generates)
	}
	if len(result.Titles) != 2 || result.Description != "d" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if mock.uploadedMIME != "video/mp4" {
		t.Fatalf("unexpected upload mime %q", mock.uploadedMIME)
	}
	if mock.lastGenerate.Video.URI != "files/abc123" {
		t.Fatalf("generate did not reference uploaded asset: %+v", mock.lastGenerate.Video)
	}
	assertScratchEmpty(t, scratch)
}

func TestAnalyzeGenerationParameters(t *testing.T) {
	mock := &vendorMock{generateText: validResponse}
	svc, _ := newTestService(t, mock)

	if _, err := svc.Analyze(context.Background(), videoRequest("v")); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	got := mock.lastGenerate
	if got.Temperature != 0.6 {
		t.Fatalf("temperature = %v, want 0.6", got.Temperature)
	}
	if got.MaxOutputTokens != 1200 {
		t.Fatalf("max output tokens = %d, want 1200", got.MaxOutputTokens)
	}
	if got.ResponseMIMEType != "application/json" {
		t.Fatalf("response mime = %q", got.ResponseMIMEType)
	}
}

func TestAnalyzePromptContext(t *testing.T) {
	mock := &vendorMock{generateText: validResponse}
	svc, _ := newTestService(t, mock)

	req := videoRequest("v")
	req.Context = "cooking tutorial for beginners"
	if _, err := svc.Analyze(context.Background(), req); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(mock.lastGenerate.Prompt, "cooking tutorial for beginners") {
		t.Fatalf("prompt missing creator context: %s", mock.lastGenerate.Prompt)
	}

	if _, err := svc.Analyze(context.Background(), videoRequest("v")); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(mock.lastGenerate.Prompt, "None provided") {
		t.Fatalf("prompt missing placeholder for empty context")
	}
}

func TestAnalyzeDefaultsVideoMIME(t *testing.T) {
	mock := &vendorMock{generateText: validResponse}
	svc, _ := newTestService(t, mock)

	req := videoRequest("v")
	req.Video.ContentType = ""
	if _, err := svc.Analyze(context.Background(), req); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if mock.uploadedMIME != "video/mp4" {
		t.Fatalf("expected default video mime, got %q", mock.uploadedMIME)
	}
}

func TestAnalyzeMissingCredential(t *testing.T) {
	svc, scratch := newTestService(t, nil)

	_, err := svc.Analyze(context.Background(), videoRequest("v"))
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.Config {
		t.Fatalf("expected config error, got %v", err)
	}
	assertScratchEmpty(t, scratch)
}

func TestAnalyzeMissingVideo(t *testing.T) {
	mock := &vendorMock{generateText: validResponse}
	svc, scratch := newTestService(t, mock)

	_, err := svc.Analyze(context.Background(), Request{})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.ClientInput {
		t.Fatalf("expected client input error, got %v", err)
	}
	if mock.uploads != 0 || mock.generates != 0 {
		t.Fatalf("expected no vendor calls, got %d/%d", mock.uploads, mock.generates)
	}
	assertScratchEmpty(t, scratch)
}

func TestAnalyzeUploadFailureCleansUp(t *testing.T) {
	mock := &vendorMock{uploadErr: errors.New("remote storage down")}
	svc, scratch := newTestService(t, mock)

	_, err := svc.Analyze(context.Background(), videoRequest("v"))
	if err == nil {
		t.Fatalf("expected error")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.Processing {
		t.Fatalf("expected processing error, got %v", err)
	}
	if mock.generates != 0 {
		t.Fatalf("generate should not run after upload failure")
	}
	assertScratchEmpty(t, scratch)
}

func TestAnalyzeParseFailure(t *testing.T) {
	mock := &vendorMock{generateText: "sorry, I cannot help with that"}
	svc, scratch := newTestService(t, mock)

	_, err := svc.Analyze(context.Background(), videoRequest("v"))
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.Processing {
		t.Fatalf("expected processing error for unparseable response, got %v", err)
	}
	assertScratchEmpty(t, scratch)
}

func TestAnalyzeInlineImages(t *testing.T) {
	mock := &vendorMock{generateText: validResponse}
	svc, _ := newTestService(t, mock)

	req := videoRequest("v")
	req.Images = []File{
		{Name: "a.png", ContentType: "image/png", Content: strings.NewReader("png-bytes")},
		{Name: "b.jpg", ContentType: "image/jpeg", Content: strings.NewReader("jpg-bytes")},
	}
	if _, err := svc.Analyze(context.Background(), req); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	imgs := mock.lastGenerate.Images
	if len(imgs) != 2 {
		t.Fatalf("expected 2 inline images, got %d", len(imgs))
	}
	if imgs[0].MIMEType != "image/png" || string(imgs[0].Data) != "png-bytes" {
		t.Fatalf("first image out of order or corrupted: %+v", imgs[0])
	}
	if imgs[1].MIMEType != "image/jpeg" || string(imgs[1].Data) != "jpg-bytes" {
		t.Fatalf("second image out of order or corrupted: %+v", imgs[1])
	}
}
