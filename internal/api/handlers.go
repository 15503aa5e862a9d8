package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"tubewise/internal/apperr"
	"tubewise/internal/models"
	"tubewise/internal/service/analyzer"
)

// Analyzer runs one upload-and-analyze pipeline per request.
type Analyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) (*models.AnalysisResult, error)
}

// Handler wires HTTP routes to the analyzer service.
type Handler struct {
	analyzer     Analyzer
	maxBodyBytes int64
	maxImages    int
	timeout      time.Duration
}

// NewHandler constructs a Handler instance.
func NewHandler(service Analyzer, maxBodyBytes int64, maxImages int, timeout time.Duration) *Handler {
	return &Handler{
		analyzer:     service,
		maxBodyBytes: maxBodyBytes,
		maxImages:    maxImages,
		timeout:      timeout,
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/analyze", h.analyzeVideo)
}

const multipartMemoryLimit = 32 << 20

func (h *Handler) analyzeVideo(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	if err := c.Request.ParseMultipartForm(multipartMemoryLimit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	videoHeader, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video file is required"})
		return
	}
	imageHeaders := c.Request.MultipartForm.File["images"]
	if len(imageHeaders) > h.maxImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d images are allowed", h.maxImages)})
		return
	}

	video, err := videoHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "open video failed"})
		return
	}
	defer video.Close()

	images := make([]analyzer.File, 0, len(imageHeaders))
	var closers []multipart.File
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()
	for _, header := range imageHeaders {
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "open image failed"})
			return
		}
		closers = append(closers, f)
		images = append(images, analyzer.File{
			Name:        filepath.Base(header.Filename),
			ContentType: header.Header.Get("Content-Type"),
			Content:     f,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.analyzer.Analyze(ctx, analyzer.Request{
		Video: analyzer.File{
			Name:        filepath.Base(videoHeader.Filename),
			ContentType: videoHeader.Header.Get("Content-Type"),
			Content:     video,
		},
		Images:  images,
		Context: c.PostForm("context"),
	})
	if err != nil {
		log.Printf("analyze failed: %v", err)
		if errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis timed out"})
			return
		}
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.ClientMessage(err)})
		return
	}
	c.JSON(http.StatusOK, result)
}
