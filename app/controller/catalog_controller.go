package controller

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"vitrina/logger"
	"vitrina/service"
)

// validFormats is a map of valid catalog format values
var validFormats = map[string]bool{
	"html": true,
	"pdf":  true,
}

// CatalogController handles HTTP requests for printable collection catalogs
type CatalogController struct {
	catalogService service.CatalogServiceInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService service.CatalogServiceInterface) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GenerateCatalog handles GET /collections/{handle}/catalog.pdf?format=pdf|html
// PDF is the default; html returns the page chromedp prints.
func (c *CatalogController) GenerateCatalog(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimSpace(r.PathValue("handle"))
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "pdf"
	}
	if !validFormats[format] {
		logger.L().Warnf("❌ GenerateCatalog: Invalid format: %s", format)
		http.Error(w, "Invalid format. Valid formats: html, pdf", http.StatusBadRequest)
		return
	}

	logger.L().Infof("📥 GenerateCatalog: handle=%s format=%s", handle, format)

	switch format {
	case "html":
		htmlContent, err := c.catalogService.RenderCatalogHTML(r.Context(), handle)
		if err != nil {
			writeError(w, "GenerateCatalog", "Failed to render catalog", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(htmlContent)); err != nil {
			logger.L().Errorf("❌ GenerateCatalog: Error writing HTML response: %v", err)
		}

	case "pdf":
		pdfData, err := c.catalogService.GeneratePDF(r.Context(), handle)
		if err != nil {
			writeError(w, "GenerateCatalog", "Failed to generate PDF", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"catalog_%s.pdf\"", url.PathEscape(handle)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfData); err != nil {
			logger.L().Errorf("❌ GenerateCatalog: Error writing PDF response: %v", err)
		}
	}
}
