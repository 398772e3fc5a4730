package v1

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ameencheck-backend/pkg/apperror"
	"ameencheck-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const maxUploadBytes = 10 << 20 // 10 MB

var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

type UploadHandler struct {
	uploadDir string
	baseURL   string
}

// NewUploadHandler stores supporting documents on local disk. Images are
// recompressed to bounded JPEGs before storage; PDFs are kept as-is.
func NewUploadHandler(protected *gin.RouterGroup, uploadDir, baseURL string, limiter gin.HandlerFunc) {
	handler := &UploadHandler{uploadDir: uploadDir, baseURL: baseURL}
	protected.POST("/uploads", limiter, handler.Upload)
}

// Upload godoc
// @Summary      Upload a supporting document
// @Description  Accepts JPEG, PNG and PDF files up to 10 MB; images are recompressed
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Document"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("No file uploaded"))
		return
	}
	if file.Size > maxUploadBytes {
		c.Error(apperror.BadRequest("File exceeds the 10MB limit"))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	contentType := http.DetectContentType(fileBytes)
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		c.Error(apperror.BadRequest("Unsupported file type"))
		return
	}

	if strings.HasPrefix(contentType, "image/") {
		compressed, compressErr := compressImage(fileBytes, 1200, 80)
		if compressErr != nil {
			logger.Log.Warn("image compression failed, storing original", "error", compressErr)
		} else {
			fileBytes = compressed
			ext = ".jpg"
		}
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(h.uploadDir, filename), fileBytes, 0o644); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url": fmt.Sprintf("%s/uploads/%s", h.baseURL, filename),
	})
}

// compressImage bounds the longest image dimension and re-encodes as JPEG.
func compressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := width, height
	if width >= height && width > maxDimension {
		newWidth = maxDimension
		newHeight = int(float64(height) * float64(maxDimension) / float64(width))
	} else if height > width && height > maxDimension {
		newHeight = maxDimension
		newWidth = int(float64(width) * float64(maxDimension) / float64(height))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
