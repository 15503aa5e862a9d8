package analyzer

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"tubewise/internal/models"
)

// Images are buffered fully; they are small compared to the video. The
// reads are independent, so they run on a bounded fan-out while the result
// slice keeps submission order.
const maxEncodeWorkers = 4

func encodeInlineImages(images []File) ([]models.InlineImage, error) {
	if len(images) == 0 {
		return nil, nil
	}

	results := make([]models.InlineImage, len(images))
	errs := make([]error, len(images))
	sem := make(chan struct{}, maxEncodeWorkers)
	var wg sync.WaitGroup

	for i, img := range images {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, img File) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = encodeOne(img)
		}(i, img)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("image %d (%s): %w", i, images[i].Name, err)
		}
	}
	return results, nil
}

func encodeOne(img File) (models.InlineImage, error) {
	data, err := io.ReadAll(img.Content)
	if err != nil {
		return models.InlineImage{}, err
	}
	mimeType := img.ContentType
	if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	return models.InlineImage{MIMEType: mimeType, Data: data}, nil
}
