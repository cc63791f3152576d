package router

import (
	"net/http"
	"time"

	"vitrina/app/controller"
	"vitrina/logger"
)

type Controllers struct {
	Home       *controller.HomeController
	Collection *controller.CollectionController
	Catalog    *controller.CatalogController
	Product    *controller.ProductController
	Gallery    *controller.GalleryController
	Search     *controller.SearchController
	Cart       *controller.CartController
	Image      *controller.ImageController
	Analytics  *controller.AnalyticsController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every storefront route on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("GET /ping", pingHandler)

	// Home
	mux.HandleFunc("GET /{$}", controllers.Home.Home)

	// Collections: chunked pagination and printable catalog
	mux.HandleFunc("GET /collections/{handle}", controllers.Collection.GetCollection)
	mux.HandleFunc("GET /collections/{handle}/catalog.pdf", controllers.Catalog.GenerateCatalog)

	// Products and the image carousel
	mux.HandleFunc("GET /products/{handle}", controllers.Product.GetProduct)
	mux.HandleFunc("GET /products/{handle}/gallery", controllers.Gallery.GetGallery)
	mux.HandleFunc("POST /products/{handle}/gallery", controllers.Gallery.SwitchImage)

	// Search
	mux.HandleFunc("GET /search", controllers.Search.Search)

	// Cart
	mux.HandleFunc("GET /cart", controllers.Cart.GetCart)
	mux.HandleFunc("POST /cart/lines", controllers.Cart.AddLine)

	// Resized image proxy
	mux.HandleFunc("GET /images", controllers.Image.GetImage)

	// Reports
	mux.HandleFunc("GET /admin/analytics/top", controllers.Analytics.TopResources)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// WithRequestLogging logs one line per request
func WithRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if r.URL.Path == "/ping" {
			return
		}
		logger.L().Infow("📥 request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
