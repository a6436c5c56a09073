package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbasket/storefront/internal/entities"
)

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, "test-api-key", 5*time.Second)
}

func TestClient_Headers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entities.User{Email: "a@b.test"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.SetSessionToken("session-token")

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@b.test", user.Email)
}

func TestClient_Me_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Me(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_Login_InstallsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.test", req.Email)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Session{
			Token: "fresh-token",
			User:  entities.User{Email: req.Email, Name: "Ada"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	session, err := client.Login(context.Background(), "a@b.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", session.Token)
	assert.Equal(t, "fresh-token", client.SessionToken())
}

func TestClient_Logout_ClearsTokenEvenWhenSessionUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.SetSessionToken("stale-token")

	err := client.Logout(context.Background())
	require.NoError(t, err)
	assert.Empty(t, client.SessionToken())
}

func TestClient_RetriesOnServerError(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entities.User{Email: "a@b.test"})
	}))
	defer server.Close()

	start := time.Now()
	_, err := newTestClient(server.URL).Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, requests)
	// Two retries: 1s + 2s backoff
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Second)
}

func TestClient_NoRetryOnUnauthorized(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Me(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, requests)
}

func TestWishlistClient_FilterByEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/collections/wishlist_entries/documents", r.URL.Path)
		assert.Equal(t, "a@b.test", r.URL.Query().Get("user_email"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"documents": []entities.WishlistEntry{
				{ID: "w1", UserEmail: "a@b.test", ProductID: "p1", ProductName: "Oat Milk"},
			},
			"total": 1,
		})
	}))
	defer server.Close()

	entries, err := NewWishlistClient(newTestClient(server.URL)).FilterByEmail(context.Background(), "a@b.test")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "w1", entries[0].ID)
	assert.Equal(t, "p1", entries[0].ProductID)
}

func TestWishlistClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var entry entities.WishlistEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&entry))
		entry.ID = "assigned-id"

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entry)
	}))
	defer server.Close()

	created, err := NewWishlistClient(newTestClient(server.URL)).Create(context.Background(), entities.WishlistEntry{
		UserEmail: "a@b.test",
		ProductID: "p1",
	})

	require.NoError(t, err)
	assert.Equal(t, "assigned-id", created.ID)
	assert.Equal(t, "p1", created.ProductID)
}

func TestWishlistClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/collections/wishlist_entries/documents/w1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := NewWishlistClient(newTestClient(server.URL)).Delete(context.Background(), "w1")

	assert.NoError(t, err)
}

func TestOrderClient_Submit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/collections/orders/documents", r.URL.Path)

		var order entities.Order
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.Equal(t, "order-1", order.ID)
		assert.Len(t, order.Items, 1)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := NewOrderClient(newTestClient(server.URL)).Submit(context.Background(), entities.Order{
		ID:        "order-1",
		UserEmail: "a@b.test",
		Items:     []entities.CartLineItem{{ProductID: "p1", Quantity: 2, UnitPrice: 100}},
		Subtotal:  200,
	})

	assert.NoError(t, err)
}

func TestAuthClient_CurrentUser_SignedOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	user, err := NewAuthClient(newTestClient(server.URL), "https://account.test/login").CurrentUser(context.Background())

	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCalculateRetryDelay(t *testing.T) {
	assert.Equal(t, 1*time.Second, calculateRetryDelay(0))
	assert.Equal(t, 2*time.Second, calculateRetryDelay(1))
	assert.Equal(t, 4*time.Second, calculateRetryDelay(2))
	assert.Equal(t, maxRetryDelay, calculateRetryDelay(10))
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(ErrRateLimited))
	assert.True(t, isRetryableError(&ServerError{StatusCode: 503}))
	assert.False(t, isRetryableError(ErrUnauthorized))
	assert.False(t, isRetryableError(nil))
}
