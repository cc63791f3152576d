package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/option"

	"vitrina/app/controller"
	"vitrina/app/router"
	"vitrina/carousel"
	"vitrina/clock"
	"vitrina/config"
	"vitrina/db"
	"vitrina/logger"
	"vitrina/pagination"
	"vitrina/repository"
	"vitrina/service"
)

const (
	menuTTL           = 5 * time.Minute
	bannerTTL         = 10 * time.Minute
	gallerySessionTTL = 30 * time.Minute
	recentlyViewedTTL = 30 * 24 * time.Hour
)

// App is the wired storefront
type App struct {
	Handler http.Handler
	Catalog *service.CatalogService

	closers []func()
}

// Initialize wires the storefront services and routes. Postgres analytics,
// Redis recently viewed and Drive banners are optional and only started
// when configured.
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	client := service.NewStorefrontClient(cfg.StorefrontAPIURL, cfg.StorefrontAPIToken, nil)

	images := service.NewImageService(cfg.ImageCacheDir, nil)
	if err := images.EnsureCacheDir(); err != nil {
		return nil, err
	}

	// Analytics
	var analyticsRepo repository.AnalyticsRepositoryInterface
	if cfg.AnalyticsEnabled() {
		if err := db.InitDB(ctx, cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.onClose(func() { db.CloseDB() })
		analyticsRepo = repository.NewAnalyticsRepository(db.DB)
	} else {
		logger.L().Infof("ℹ️ Analytics disabled: no database configured")
	}
	analytics := service.NewAnalyticsService(analyticsRepo, 1024, 50, 5*time.Second)
	// Registered after the database so events flush before it closes
	a.onClose(analytics.Close)

	// Recently viewed
	var store repository.RecentlyViewedStore
	if cfg.RedisURL != "" {
		redisStore, err := repository.NewRedisRecentlyViewedStore(cfg.RedisURL, recentlyViewedTTL)
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := redisStore.Ping(ctx); err != nil {
			redisStore.Close()
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.onClose(func() { redisStore.Close() })
		store = redisStore
		logger.L().Infof("✓ Recently viewed stored in Redis")
	} else {
		store = repository.NewMemoryRecentlyViewedStore()
	}
	recent := service.NewRecentlyViewedService(store, cfg.RecentlyViewedMax)

	// Banners
	var banners *service.BannerService
	if cfg.BannersEnabled() {
		drive, err := service.NewDriveService(ctx, option.WithCredentialsFile(cfg.CredentialsPath))
		if err != nil {
			a.Close()
			return nil, err
		}
		banners = service.NewBannerService(drive, cfg.BannerFolderID, bannerTTL)
	}

	menus := service.NewMenuService(client, cfg.MenuHandle, menuTTL)
	collections := service.NewCollectionService(client, pagination.Config{PageSize: cfg.PageSize, PagesPerChunk: cfg.PagesPerChunk})
	products := service.NewProductService(client)
	catalog := service.NewCatalogService(client, images, cfg.ChromePath)
	a.Catalog = catalog

	preloader := service.NewImagePreloader(images, 4, 20*time.Second)
	gallery := service.NewGalleryService(products, preloader, clock.Real{}, carousel.DefaultConfig(), gallerySessionTTL)
	a.onClose(preloader.Close)
	a.onClose(gallery.Close)

	controllers := &router.Controllers{
		Home:       controller.NewHomeController(menus, banners, recent, analytics),
		Collection: controller.NewCollectionController(collections, menus, analytics),
		Catalog:    controller.NewCatalogController(catalog),
		Product:    controller.NewProductController(products, recent, menus, analytics),
		Gallery:    controller.NewGalleryController(gallery),
		Search:     controller.NewSearchController(service.NewSearchService(client), menus, analytics),
		Cart:       controller.NewCartController(service.NewCartService(client), menus, analytics),
		Image:      controller.NewImageController(images),
		Analytics:  controller.NewAnalyticsController(analytics),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	a.Handler = router.WithRequestLogging(mux)
	return a, nil
}

func (a *App) onClose(f func()) { a.closers = append(a.closers, f) }

// Close releases everything Initialize started, newest first
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
