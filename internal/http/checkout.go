package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront/internal/checkout"
	"github.com/greenbasket/storefront/internal/wishlist"
)

// CheckoutController turns the cart into a queued order.
type CheckoutController struct {
	service  CheckoutService
	loginURL string
}

func NewCheckoutController(service CheckoutService, loginURL string) *CheckoutController {
	return &CheckoutController{service: service, loginURL: loginURL}
}

// PlaceOrder queues the cart for submission. The order is accepted
// once it is durably queued; the actual backend post happens in the
// background.
func (ctl *CheckoutController) PlaceOrder(c *gin.Context) {
	order, err := ctl.service.PlaceOrder()
	if err != nil {
		switch {
		case errors.Is(err, wishlist.ErrSignInRequired):
			respondSignInRequired(c, ctl.loginURL)
		case errors.Is(err, checkout.ErrEmptyCart):
			respondBadRequest(c, "cart is empty")
		default:
			respondInternalError(c, err, "checkout")
		}
		return
	}

	respondAccepted(c, "order queued", order)
}
