package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront/internal/entities"
)

// CartController exposes the local cart over JSON.
type CartController struct {
	cart CartStore
}

func NewCartController(cart CartStore) *CartController {
	return &CartController{cart: cart}
}

// CartResponse is the full cart view returned after every read and
// mutation, so the frontend always renders derived totals computed
// from the line items.
type CartResponse struct {
	Items []entities.CartLineItem `json:"items"`
	Total float64                 `json:"total"`
	Count int                     `json:"count"`
}

func (ctl *CartController) cartResponse() CartResponse {
	items := ctl.cart.Items()
	if items == nil {
		items = []entities.CartLineItem{}
	}
	return CartResponse{
		Items: items,
		Total: ctl.cart.Total(),
		Count: ctl.cart.Count(),
	}
}

// GetCart returns the current cart contents.
func (ctl *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.cartResponse())
}

type addItemRequest struct {
	Product        entities.Product `json:"product"`
	Quantity       int              `json:"quantity"`
	Customizations json.RawMessage  `json:"customizations,omitempty"`
}

// AddItem adds a product (or a custom list request) to the cart.
func (ctl *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Product.ID == "" {
		respondBadRequest(c, "product.id is required")
		return
	}

	if len(req.Customizations) > 0 {
		ctl.cart.AddCustom(req.Product, req.Quantity, req.Customizations)
	} else {
		ctl.cart.Add(req.Product, req.Quantity)
	}

	c.JSON(http.StatusOK, ctl.cartResponse())
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets the absolute quantity for a line item. Zero or
// negative removes it.
func (ctl *CartController) UpdateQuantity(c *gin.Context) {
	productID := c.Param("productId")

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ctl.cart.UpdateQuantity(productID, req.Quantity)
	c.JSON(http.StatusOK, ctl.cartResponse())
}

// RemoveItem removes a line item from the cart.
func (ctl *CartController) RemoveItem(c *gin.Context) {
	ctl.cart.Remove(c.Param("productId"))
	c.JSON(http.StatusOK, ctl.cartResponse())
}

// ClearCart empties the cart.
func (ctl *CartController) ClearCart(c *gin.Context) {
	ctl.cart.Clear()
	c.JSON(http.StatusOK, ctl.cartResponse())
}
