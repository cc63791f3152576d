package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"vitrina/logger"
	"vitrina/models"
	"vitrina/service"
)

// CartController handles HTTP requests for the visitor's cart
type CartController struct {
	carts     service.CartServiceInterface
	menus     service.MenuServiceInterface
	analytics service.AnalyticsServiceInterface
}

// NewCartController creates a new CartController
func NewCartController(
	carts service.CartServiceInterface,
	menus service.MenuServiceInterface,
	analytics service.AnalyticsServiceInterface,
) *CartController {
	return &CartController{carts: carts, menus: menus, analytics: analytics}
}

type cartView struct {
	Layout
	Cart *models.Cart
}

// GetCart handles GET /cart
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID := ""
	if ck, err := r.Cookie(cartCookie); err == nil {
		cartID = ck.Value
	}

	cart, err := c.carts.GetCart(r.Context(), cartID)
	if errors.Is(err, service.ErrNotFound) {
		logger.L().Infof("🛒 GetCart: cart %s no longer exists", cartID)
		clearCookie(w, cartCookie)
		cart, err = &models.Cart{}, nil
	}
	if err != nil {
		writeError(w, "GetCart", "Failed to load cart", err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, "GetCart", http.StatusOK, cart)
		return
	}
	renderPage(w, "GetCart", "cart.html", cartView{
		Layout: newLayout(r.Context(), c.menus, "Cart", ""),
		Cart:   cart,
	})
}

// AddLine handles POST /cart/lines with a JSON body or a form
// (merchandiseId, quantity). Form posts are redirected to the cart page.
func (c *CartController) AddLine(w http.ResponseWriter, r *http.Request) {
	isJSON := false
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		isJSON = mt == "application/json"
	}

	var line models.CartLineInput
	if isJSON {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&line); err != nil {
			logger.L().Warnf("❌ AddLine: Failed to decode request body: %v", err)
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
	} else {
		line.MerchandiseID = r.PostFormValue("merchandiseId")
		line.Quantity = 1
		if raw := strings.TrimSpace(r.PostFormValue("quantity")); raw != "" {
			q, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, fmt.Sprintf("Invalid quantity: %q", raw), http.StatusBadRequest)
				return
			}
			line.Quantity = q
		}
	}

	cartID := ""
	if ck, err := r.Cookie(cartCookie); err == nil {
		cartID = ck.Value
	}

	cart, err := c.carts.AddLine(r.Context(), cartID, line)
	if err != nil {
		writeError(w, "AddLine", "Failed to add to cart", err)
		return
	}
	if cart.ID != "" && cart.ID != cartID {
		setCookie(w, cartCookie, cart.ID)
	}
	track(c.analytics, r, sessionID(w, r), models.EventAddToCart, line.MerchandiseID)
	logger.L().Infof("✅ AddLine: %d x %s added, cart now has %d items", line.Quantity, line.MerchandiseID, cart.TotalQuantity)

	if isJSON {
		writeJSON(w, "AddLine", http.StatusOK, cart)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
