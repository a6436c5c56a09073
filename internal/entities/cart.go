package entities

import "encoding/json"

// UnitTypeList marks a line-item that was added outside the normal
// catalog flow (e.g. a free-text shopping-list request).
const UnitTypeList = "list"

// Product is the catalog view of a purchasable item, as delivered by
// the backend. The commerce stores never mutate products; they copy
// the fields they need at the time of an action.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Unit          string   `json:"unit"`
	BasePrice     float64  `json:"base_price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	CategoryName  string   `json:"category_name,omitempty"`
	Image         string   `json:"image,omitempty"`
}

// UnitPrice returns the price a snapshot should capture: the discount
// price when one is set, the base price otherwise.
func (p Product) UnitPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.BasePrice
}

// CartLineItem is one row in the cart: a product snapshot plus the
// requested quantity. Snapshot fields are captured at add-time and
// never re-synced with the catalog.
type CartLineItem struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	UnitType       string          `json:"unit_type"`
	UnitPrice      float64         `json:"unit_price"`
	BasePrice      float64         `json:"base_price,omitempty"`
	DiscountPrice  *float64        `json:"discount_price,omitempty"`
	CategoryName   string          `json:"category_name,omitempty"`
	Image          string          `json:"image,omitempty"`
	IsCustom       bool            `json:"is_custom"`
	Customizations json.RawMessage `json:"customizations,omitempty"`
}

// Subtotal returns the line total for this item.
func (i CartLineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
