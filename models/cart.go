package models

// Cart is the remote cart referenced by the visitor's cart cookie
type Cart struct {
	ID            string     `json:"id"`
	CheckoutURL   string     `json:"checkoutUrl"`
	TotalQuantity int        `json:"totalQuantity"`
	Lines         []CartLine `json:"lines"`
	Cost          CartCost   `json:"cost"`
}

// CartLine is one merchandise line of a cart
type CartLine struct {
	ID          string       `json:"id"`
	Quantity    int          `json:"quantity"`
	Merchandise CartVariant  `json:"merchandise"`
	Cost        CartLineCost `json:"cost"`
}

// CartVariant is the variant a cart line refers to
type CartVariant struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ProductTitle string `json:"productTitle"`
	Image        *Image `json:"image"`
}

// CartCost holds cart totals
type CartCost struct {
	SubtotalAmount Money `json:"subtotalAmount"`
	TotalAmount    Money `json:"totalAmount"`
}

// CartLineCost holds the total of one line
type CartLineCost struct {
	TotalAmount Money `json:"totalAmount"`
}

// CartLineInput is the request body for POST /cart/lines
type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}
