package entities

// User is the identity resolved from the backend's account API.
// Every wishlist entry and order is keyed by the user's email.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}
