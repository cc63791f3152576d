package controller

import (
	"net/http"

	"vitrina/models"
	"vitrina/service"
)

// HomeController renders the landing page
type HomeController struct {
	menus     service.MenuServiceInterface
	banners   *service.BannerService
	recent    service.RecentlyViewedServiceInterface
	analytics service.AnalyticsServiceInterface
}

// NewHomeController creates a new HomeController. banners may be nil.
func NewHomeController(
	menus service.MenuServiceInterface,
	banners *service.BannerService,
	recent service.RecentlyViewedServiceInterface,
	analytics service.AnalyticsServiceInterface,
) *HomeController {
	return &HomeController{menus: menus, banners: banners, recent: recent, analytics: analytics}
}

type homeView struct {
	Layout
	Banners        []models.Banner
	RecentlyViewed []models.RecentlyViewedEntry
}

// Home handles GET /
func (c *HomeController) Home(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	track(c.analytics, r, session, models.EventPageView, "")

	view := homeView{
		Layout:  newLayout(r.Context(), c.menus, "", ""),
		Banners: c.banners.Banners(r.Context()),
	}
	if c.recent != nil {
		view.RecentlyViewed = c.recent.List(r.Context(), session)
	}
	renderPage(w, "Home", "home.html", view)
}
