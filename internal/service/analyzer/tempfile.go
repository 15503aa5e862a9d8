package analyzer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// scratchName builds a collision-resistant filename from a fresh uuid plus
// the sanitized original name.
func scratchName(original string) string {
	base := unsafeNameChars.ReplaceAllString(filepath.Base(original), "_")
	if base == "" || base == "." || base == ".." {
		base = "upload"
	}
	return uuid.New().String() + "_" + base
}

// stageVideo streams the uploaded video into the scratch dir without
// buffering the whole file in memory. The caller owns removal of the
// returned path.
func (s *Service) stageVideo(video File) (string, error) {
	if err := os.MkdirAll(s.scratchDir, 0o755); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	path := filepath.Join(s.scratchDir, scratchName(video.Name))
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	if _, err := io.Copy(dst, video.Content); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close scratch file: %w", err)
	}
	return path, nil
}
