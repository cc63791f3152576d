package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"vitrina/logger"
	"vitrina/models"
	"vitrina/pagination"
	"vitrina/templates"
	"vitrina/utils"
)

const (
	catalogItemsPerSheet = 9
	catalogMaxProducts   = 450
	catalogImageWidth    = 400
)

// CatalogItem is one product cell of the printable catalog
type CatalogItem struct {
	Title     string
	Price     string
	ImageData template.URL // data URI so the renderer needs no network
}

// Catalog is the printable form of a collection
type Catalog struct {
	Title      string
	Sheets     [][]CatalogItem
	TotalPages int
}

// CatalogService renders collections as printable HTML and PDF
// Implements CatalogServiceInterface
type CatalogService struct {
	client     StorefrontClientInterface
	images     ImageServiceInterface
	chromePath string
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// NewCatalogService creates a new CatalogService
func NewCatalogService(client StorefrontClientInterface, images ImageServiceInterface, chromePath string) *CatalogService {
	return &CatalogService{client: client, images: images, chromePath: chromePath}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks the configured path first, then common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadCatalog walks every chunk of the collection and builds its sheets
func (s *CatalogService) LoadCatalog(ctx context.Context, handle string) (*Catalog, error) {
	cfg := pagination.Config{PageSize: catalogItemsPerSheet, PagesPerChunk: 5}

	var (
		title    string
		products []models.ProductCard
		cursor   string
	)
	for {
		col, err := s.client.Collection(ctx, handle, pagination.ChunkQuery(cursor, pagination.DirectionNext, cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to load collection %s: %w", handle, err)
		}
		title = col.Title
		products = append(products, col.Products.Nodes...)

		info := col.Products.PageInfo
		if !info.HasNextPage || info.EndCursor == "" || len(products) >= catalogMaxProducts {
			break
		}
		cursor = info.EndCursor
	}
	if len(products) > catalogMaxProducts {
		logger.L().Warnf("⚠️ LoadCatalog: %s truncated to %d products", handle, catalogMaxProducts)
		products = products[:catalogMaxProducts]
	}

	items := s.toCatalogItems(ctx, products)
	sheets := paginateItems(items, catalogItemsPerSheet)
	return &Catalog{Title: title, Sheets: sheets, TotalPages: len(sheets)}, nil
}

// toCatalogItems converts products, embedding their images. Image failures
// leave the cell without a picture.
func (s *CatalogService) toCatalogItems(ctx context.Context, products []models.ProductCard) []CatalogItem {
	items := make([]CatalogItem, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, p := range products {
		items[i] = CatalogItem{Title: p.Title, Price: utils.FormatMoney(p.PriceRange.MinVariantPrice)}
		if p.FeaturedImage == nil || p.FeaturedImage.URL == "" || s.images == nil {
			continue
		}
		src := p.FeaturedImage.URL
		g.Go(func() error {
			data, err := s.images.GetResized(gctx, src, catalogImageWidth)
			if err != nil {
				logger.L().Warnf("⚠️  Warning: Failed to fetch image for %s: %v", p.Handle, err)
				return nil
			}
			items[i].ImageData = template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data))
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// paginateItems splits items into sheets of perSheet items each
func paginateItems[T any](items []T, perSheet int) [][]T {
	var sheets [][]T
	for i := 0; i < len(items); i += perSheet {
		end := i + perSheet
		if end > len(items) {
			end = len(items)
		}
		sheets = append(sheets, items[i:end])
	}
	if len(sheets) == 0 {
		sheets = append(sheets, []T{})
	}
	return sheets
}

// RenderCatalogHTML renders the catalog HTML template
func (s *CatalogService) RenderCatalogHTML(ctx context.Context, handle string) (string, error) {
	catalog, err := s.LoadCatalog(ctx, handle)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := templates.Render(&buf, "catalog.html", catalog); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF renders the collection catalog to PDF using headless Chrome
func (s *CatalogService) GeneratePDF(ctx context.Context, handle string) ([]byte, error) {
	html, err := s.RenderCatalogHTML(ctx, handle)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	start := time.Now()
	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// Wait for fonts and embedded images to decode
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	logger.L().Infof("✓ Catalog PDF for %s generated: %d bytes in %s", handle, len(pdfBuf), time.Since(start))
	return pdfBuf, nil
}
