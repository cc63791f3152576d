package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"vitrina/logger"
	"vitrina/service"
)

// GalleryController exposes the per-visitor product image carousel
type GalleryController struct {
	gallery service.GalleryServiceInterface
}

// NewGalleryController creates a new GalleryController
func NewGalleryController(gallery service.GalleryServiceInterface) *GalleryController {
	return &GalleryController{gallery: gallery}
}

// GetGallery handles GET /products/{handle}/gallery?<Option>=<value>
func (c *GalleryController) GetGallery(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	session := sessionID(w, r)

	state, err := c.gallery.State(r.Context(), session, handle, optionParams(r.URL.Query()))
	if err != nil {
		writeError(w, "GetGallery", "Failed to load gallery", err)
		return
	}
	writeJSON(w, "GetGallery", http.StatusOK, state)
}

// SwitchImage handles POST /products/{handle}/gallery?index=i
// The index may also be sent as a form field.
func (c *GalleryController) SwitchImage(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	session := sessionID(w, r)

	raw := r.URL.Query().Get("index")
	if raw == "" {
		raw = r.PostFormValue("index")
	}
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logger.L().Warnf("❌ SwitchImage: Invalid index: %q", raw)
		http.Error(w, fmt.Sprintf("Invalid index: %q", raw), http.StatusBadRequest)
		return
	}

	logger.L().Debugf("🎠 SwitchImage: %s -> %d", handle, index)
	state, err := c.gallery.Switch(r.Context(), session, handle, optionParams(r.URL.Query()), index)
	if err != nil {
		writeError(w, "SwitchImage", "Failed to switch image", err)
		return
	}
	writeJSON(w, "SwitchImage", http.StatusOK, state)
}
