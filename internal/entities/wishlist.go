package entities

// WishlistEntry is one remotely stored wishlist row. The ID is
// assigned by the backend on creation; product fields are snapshots
// captured when the entry was added.
type WishlistEntry struct {
	ID           string  `json:"id"`
	UserEmail    string  `json:"user_email"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image,omitempty"`
	ProductPrice float64 `json:"product_price"`
}

// NewWishlistEntry builds the entry snapshot for a toggle-add. The ID
// is left empty; the backend fills it in.
func NewWishlistEntry(userEmail string, product Product) WishlistEntry {
	return WishlistEntry{
		UserEmail:    userEmail,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: product.Image,
		ProductPrice: product.UnitPrice(),
	}
}
