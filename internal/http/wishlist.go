package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront/internal/entities"
	"github.com/greenbasket/storefront/internal/wishlist"
)

// WishlistController exposes the server-synchronized wishlist over
// JSON.
type WishlistController struct {
	store    WishlistStore
	loginURL string
}

func NewWishlistController(store WishlistStore, loginURL string) *WishlistController {
	return &WishlistController{store: store, loginURL: loginURL}
}

// WishlistResponse is the wishlist view for the signed-in user.
// Signed-out visitors get an empty list.
type WishlistResponse struct {
	Entries []entities.WishlistEntry `json:"entries"`
	Count   int                      `json:"count"`
}

// List returns the user's wishlist entries.
func (ctl *WishlistController) List(c *gin.Context) {
	entries := ctl.store.Entries(c.Request.Context())
	if entries == nil {
		entries = []entities.WishlistEntry{}
	}
	c.JSON(http.StatusOK, WishlistResponse{Entries: entries, Count: len(entries)})
}

// Count returns the number of wishlist entries.
func (ctl *WishlistController) Count(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": ctl.store.Count(c.Request.Context())})
}

// Status reports whether one product is wishlisted.
func (ctl *WishlistController) Status(c *gin.Context) {
	productID := c.Param("productId")
	c.JSON(http.StatusOK, gin.H{
		"product_id": productID,
		"wishlisted": ctl.store.IsWishlisted(c.Request.Context(), productID),
	})
}

type toggleRequest struct {
	Product entities.Product `json:"product"`
}

// Toggle adds or removes the product from the wishlist. Signed-out
// visitors get a 401 with the login URL.
func (ctl *WishlistController) Toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Product.ID == "" {
		respondBadRequest(c, "product.id is required")
		return
	}

	ctx := c.Request.Context()
	if err := ctl.store.Toggle(ctx, req.Product); err != nil {
		if errors.Is(err, wishlist.ErrSignInRequired) {
			respondSignInRequired(c, ctl.loginURL)
			return
		}
		respondInternalError(c, err, "wishlist toggle")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": req.Product.ID,
		"wishlisted": ctl.store.IsWishlisted(ctx, req.Product.ID),
	})
}
