package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbasket/storefront/internal/backend"
	"github.com/greenbasket/storefront/internal/cart"
	"github.com/greenbasket/storefront/internal/entities"
	"github.com/greenbasket/storefront/internal/syncengine"
	"github.com/greenbasket/storefront/internal/wishlist"
)

type memorySlot struct {
	payload []byte
}

func (s *memorySlot) Load() ([]byte, error) { return s.payload, nil }
func (s *memorySlot) Save(p []byte) error   { s.payload = p; return nil }

type stubEntries struct {
	entries []entities.WishlistEntry
}

func (s *stubEntries) FilterByEmail(ctx context.Context, email string) ([]entities.WishlistEntry, error) {
	return s.entries, nil
}

func (s *stubEntries) Create(ctx context.Context, entry entities.WishlistEntry) (*entities.WishlistEntry, error) {
	entry.ID = "w1"
	s.entries = append(s.entries, entry)
	return &entry, nil
}

func (s *stubEntries) Delete(ctx context.Context, id string) error {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	return nil
}

type stubOracle struct {
	user *entities.User
}

func (s *stubOracle) CurrentUser(ctx context.Context) (*entities.User, error) { return s.user, nil }
func (s *stubOracle) RedirectToLogin()                                        {}

type stubCheckout struct {
	order *entities.Order
	err   error
}

func (s *stubCheckout) PlaceOrder() (*entities.Order, error) { return s.order, s.err }

type stubAccount struct {
	token string
}

func (s *stubAccount) Login(ctx context.Context, email, password string) (*backend.Session, error) {
	return &backend.Session{Token: "t", User: entities.User{Email: email}}, nil
}
func (s *stubAccount) Logout(ctx context.Context) error { return nil }
func (s *stubAccount) SetSessionToken(token string)     { s.token = token }
func (s *stubAccount) SessionToken() string             { return s.token }

func newTestRouter(t *testing.T, user *entities.User) (*gin.Engine, *cart.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cartStore := cart.NewStore(&memorySlot{})
	engine := syncengine.New(syncengine.NewMemoryCache(), time.Minute)
	wishlistStore := wishlist.NewStore(context.Background(), engine, &stubEntries{}, &stubOracle{user: user})

	router := NewRouter(RouterConfig{
		Cart:     cartStore,
		Wishlist: wishlistStore,
		Checkout: &stubCheckout{order: &entities.Order{ID: "order-1"}},
		Account:  &stubAccount{},
		LoginURL: "https://account.test/login",
		Version:  "test",
	})
	return router, cartStore
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/cart/items", addItemRequest{
		Product:  entities.Product{ID: "p1", Name: "Oat Milk", Unit: "1l", BasePrice: 120},
		Quantity: 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 240.0, resp.Total)
	assert.Equal(t, 2, resp.Count)

	// Same product merges rather than duplicating
	w = doJSON(router, http.MethodPost, "/api/cart/items", addItemRequest{
		Product:  entities.Product{ID: "p1", Name: "Oat Milk", Unit: "1l", BasePrice: 120},
		Quantity: 3,
	})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)

	w = doJSON(router, http.MethodPut, "/api/cart/items/p1", updateQuantityRequest{Quantity: 1})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	w = doJSON(router, http.MethodDelete, "/api/cart/items/p1", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)

	w = doJSON(router, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Total)
}

func TestCartEndpoints_BadPayload(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/cart/items", map[string]any{"quantity": 1})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWishlistEndpoints_SignedOut(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/api/wishlist", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp WishlistResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Entries)

	w = doJSON(router, http.MethodPost, "/api/wishlist/toggle", toggleRequest{
		Product: entities.Product{ID: "p1", Name: "Oat Milk", BasePrice: 120},
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "https://account.test/login", errResp.LoginURL)
}

func TestWishlistEndpoints_SignedIn(t *testing.T) {
	router, _ := newTestRouter(t, &entities.User{Email: "a@b.test"})

	w := doJSON(router, http.MethodPost, "/api/wishlist/toggle", toggleRequest{
		Product: entities.Product{ID: "p1", Name: "Oat Milk", BasePrice: 120},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var toggleResp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggleResp))
	assert.Equal(t, true, toggleResp["wishlisted"])

	w = doJSON(router, http.MethodGet, "/api/wishlist/count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/wishlist/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var statusResp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statusResp))
	assert.Equal(t, true, statusResp["wishlisted"])
}

func TestCheckoutEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, &entities.User{Email: "a@b.test"})

	w := doJSON(router, http.MethodPost, "/api/checkout", nil)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order queued", resp.Message)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
