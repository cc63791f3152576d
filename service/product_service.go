package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"vitrina/logger"
	"vitrina/models"
)

// ProductPage is everything the product page renders
type ProductPage struct {
	Product         *models.Product
	SelectedVariant *models.Variant
	Images          []models.Image
	Recommendations []models.ProductCard
}

// ProductService loads products and resolves variant selection
// Implements ProductServiceInterface
type ProductService struct {
	client StorefrontClientInterface
}

// Ensure ProductService implements ProductServiceInterface
var _ ProductServiceInterface = (*ProductService)(nil)

// NewProductService creates a new ProductService instance
func NewProductService(client StorefrontClientInterface) *ProductService {
	return &ProductService{client: client}
}

// LoadProduct fetches the product and its recommendations concurrently.
// Recommendations are best effort: a failure leaves them empty.
func (s *ProductService) LoadProduct(ctx context.Context, handle string, selected url.Values) (*ProductPage, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, fmt.Errorf("product handle: %w", ErrNotFound)
	}

	var (
		product *models.Product
		recs    []models.ProductCard
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.client.Product(gctx, handle)
		if err != nil {
			return fmt.Errorf("failed to load product %s: %w", handle, err)
		}
		product = p
		return nil
	})
	g.Go(func() error {
		r, err := s.client.Recommendations(gctx, handle)
		if err != nil {
			logger.L().Warnf("⚠️ LoadProduct: recommendations for %s unavailable: %v", handle, err)
			return nil
		}
		recs = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	variant := SelectVariant(product, selected)
	return &ProductPage{
		Product:         product,
		SelectedVariant: variant,
		Images:          BuildImageList(product, variant),
		Recommendations: withoutProduct(recs, product.ID),
	}, nil
}

// SelectVariant returns the variant whose selected options match every
// option present in params (case-insensitive values). Without any option
// params, the first available variant is chosen, falling back to the first
// variant. It returns nil when no variant matches or the product has none.
func SelectVariant(product *models.Product, params url.Values) *models.Variant {
	if product == nil || len(product.Variants) == 0 {
		return nil
	}

	wanted := make(map[string]string)
	for _, opt := range product.Options {
		if v := strings.TrimSpace(params.Get(opt.Name)); v != "" {
			wanted[opt.Name] = v
		}
	}

	if len(wanted) == 0 {
		for i := range product.Variants {
			if product.Variants[i].AvailableForSale {
				return &product.Variants[i]
			}
		}
		return &product.Variants[0]
	}

	for i := range product.Variants {
		if variantMatches(product.Variants[i], wanted) {
			return &product.Variants[i]
		}
	}
	return nil
}

func variantMatches(v models.Variant, wanted map[string]string) bool {
	matched := 0
	for _, so := range v.SelectedOptions {
		want, ok := wanted[so.Name]
		if !ok {
			continue
		}
		if !strings.EqualFold(want, so.Value) {
			return false
		}
		matched++
	}
	return matched == len(wanted)
}

// BuildImageList returns the product images with the selected variant's image
// placed first. Images are de-duplicated by ID, or by URL when the ID is
// empty, keeping the first occurrence.
func BuildImageList(product *models.Product, variant *models.Variant) []models.Image {
	if product == nil {
		return nil
	}
	out := make([]models.Image, 0, len(product.Images)+1)
	seen := make(map[string]bool)
	add := func(img models.Image) {
		key := img.ID
		if key == "" {
			key = img.URL
		}
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, img)
	}

	if variant != nil && variant.Image != nil {
		add(*variant.Image)
	}
	for _, img := range product.Images {
		add(img)
	}
	return out
}

func withoutProduct(cards []models.ProductCard, id string) []models.ProductCard {
	out := make([]models.ProductCard, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
