package controller

import (
	"net/http"
	"strings"

	"vitrina/service"
)

// ImageController serves resized product images
type ImageController struct {
	images service.ImageServiceInterface
}

// NewImageController creates a new ImageController
func NewImageController(images service.ImageServiceInterface) *ImageController {
	return &ImageController{images: images}
}

// GetImage handles GET /images?src=&width=
// Without width the image is served at the largest supported width.
func (c *ImageController) GetImage(w http.ResponseWriter, r *http.Request) {
	src := strings.TrimSpace(r.URL.Query().Get("src"))
	width := service.MaxImageWidth
	if raw := r.URL.Query().Get("width"); raw != "" {
		var err error
		if width, err = service.ParseImageWidth(raw); err != nil {
			writeError(w, "GetImage", "Invalid width", err)
			return
		}
	}

	data, err := c.images.GetResized(r.Context(), src, width)
	if err != nil {
		writeError(w, "GetImage", "Failed to load image", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
