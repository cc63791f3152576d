package controller

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"vitrina/logger"
	"vitrina/models"
	"vitrina/service"
	"vitrina/utils"
)

const (
	activeImageWidth = 800
	thumbnailWidth   = 160
)

// reservedParams are product page query parameters that are not options
var reservedParams = map[string]bool{"image": true, "format": true}

// ProductController handles HTTP requests for product pages
type ProductController struct {
	products  service.ProductServiceInterface
	recent    service.RecentlyViewedServiceInterface
	menus     service.MenuServiceInterface
	analytics service.AnalyticsServiceInterface
}

// NewProductController creates a new ProductController
func NewProductController(
	products service.ProductServiceInterface,
	recent service.RecentlyViewedServiceInterface,
	menus service.MenuServiceInterface,
	analytics service.AnalyticsServiceInterface,
) *ProductController {
	return &ProductController{
		products:  products,
		recent:    recent,
		menus:     menus,
		analytics: analytics,
	}
}

// ThumbnailLink is one entry of the thumbnail strip
type ThumbnailLink struct {
	Link    string
	Current bool
	Image   models.Image
}

// OptionValueLink selects one value of a product option
type OptionValueLink struct {
	Value    string
	Link     string
	Selected bool
}

// OptionGroup is the selector of one product option
type OptionGroup struct {
	Name   string
	Values []OptionValueLink
}

type productView struct {
	Layout
	Product         *models.Product
	Variant         *models.Variant
	ActiveImage     *models.Image
	Thumbnails      []ThumbnailLink
	Options         []OptionGroup
	Recommendations []models.ProductCard
	GalleryURL      string
}

// ProductResponse is the JSON form of a product page
type ProductResponse struct {
	Product         *models.Product      `json:"product"`
	SelectedVariant *models.Variant      `json:"selectedVariant"`
	Images          []models.Image       `json:"images"`
	ActiveIndex     int                  `json:"activeIndex"`
	Recommendations []models.ProductCard `json:"recommendations"`
}

// GetProduct handles GET /products/{handle}?<Option>=<value>&image=i
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	query := r.URL.Query()
	selected := optionParams(query)
	logger.L().Debugf("📥 GetProduct: %s options=%s", handle, selected.Encode())

	page, err := c.products.LoadProduct(r.Context(), handle, selected)
	if err != nil {
		writeError(w, "GetProduct", "Failed to load product", err)
		return
	}

	session := sessionID(w, r)
	track(c.analytics, r, session, models.EventProductView, page.Product.Handle)
	if c.recent != nil {
		var first *models.Image
		if len(page.Images) > 0 {
			first = &page.Images[0]
		}
		c.recent.Record(r.Context(), session, page.Product, first)
	}

	active := activeImageIndex(query.Get("image"), len(page.Images))

	if wantsJSON(r) {
		images := make([]models.Image, len(page.Images))
		for i, img := range page.Images {
			img.URL = utils.ImageURLWithWidth(img.URL, activeImageWidth)
			images[i] = img
		}
		writeJSON(w, "GetProduct", http.StatusOK, ProductResponse{
			Product:         page.Product,
			SelectedVariant: page.SelectedVariant,
			Images:          images,
			ActiveIndex:     active,
			Recommendations: page.Recommendations,
		})
		return
	}

	path := "/products/" + url.PathEscape(page.Product.Handle)
	view := productView{
		Layout:          newLayout(r.Context(), c.menus, page.Product.Title, ""),
		Product:         page.Product,
		Variant:         page.SelectedVariant,
		Options:         optionGroups(path, page.Product, page.SelectedVariant, selected),
		Recommendations: page.Recommendations,
		GalleryURL:      path + "/gallery?" + selected.Encode(),
	}
	if len(page.Images) > 0 {
		img := page.Images[active]
		img.URL = utils.ImageURLWithWidth(img.URL, activeImageWidth)
		view.ActiveImage = &img
	}
	view.Thumbnails = make([]ThumbnailLink, len(page.Images))
	for i, img := range page.Images {
		q := copyValues(selected)
		q.Set("image", strconv.Itoa(i))
		img.URL = utils.ImageURLWithWidth(img.URL, thumbnailWidth)
		view.Thumbnails[i] = ThumbnailLink{Link: path + "?" + q.Encode(), Current: i == active, Image: img}
	}

	renderPage(w, "GetProduct", "product.html", view)
}

// optionParams extracts the option selection from the query
func optionParams(q url.Values) url.Values {
	out := url.Values{}
	for name, values := range q {
		if reservedParams[strings.ToLower(name)] || len(values) == 0 {
			continue
		}
		if v := strings.TrimSpace(values[0]); v != "" {
			out.Set(name, v)
		}
	}
	return out
}

func activeImageIndex(raw string, count int) int {
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || i < 0 || i >= count {
		return 0
	}
	return i
}

// optionGroups builds one link per option value. Each link keeps the
// current selection and changes only its own option.
func optionGroups(path string, product *models.Product, variant *models.Variant, selected url.Values) []OptionGroup {
	current := url.Values{}
	if variant != nil {
		for _, o := range variant.SelectedOptions {
			current.Set(o.Name, o.Value)
		}
	}
	for name := range selected {
		if !hasKeyFold(current, name) {
			current.Set(name, selected.Get(name))
		}
	}

	groups := make([]OptionGroup, 0, len(product.Options))
	for _, opt := range product.Options {
		g := OptionGroup{Name: opt.Name}
		for _, v := range opt.Values {
			q := copyValues(current)
			q.Set(opt.Name, v)
			g.Values = append(g.Values, OptionValueLink{
				Value:    v,
				Link:     path + "?" + q.Encode(),
				Selected: strings.EqualFold(current.Get(opt.Name), v),
			})
		}
		groups = append(groups, g)
	}
	return groups
}

func hasKeyFold(v url.Values, key string) bool {
	for k := range v {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func copyValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
