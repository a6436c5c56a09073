package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/storefront/internal/auth"
	"github.com/greenbasket/storefront/internal/backend"
)

// AuthController proxies login and logout to the backend account API
// and keeps the backend session token in the server-side session so
// reloads stay signed in.
type AuthController struct {
	account  AccountClient
	sessions *auth.SessionManager
	wishlist WishlistStore
}

func NewAuthController(account AccountClient, sessions *auth.SessionManager, wishlist WishlistStore) *AuthController {
	return &AuthController{
		account:  account,
		sessions: sessions,
		wishlist: wishlist,
	}
}

type loginHTTPRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials with the backend and binds the returned
// session to the browser cookie. The wishlist store re-resolves its
// user so members-only views come alive without a restart.
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	ctx := c.Request.Context()
	session, err := ctl.account.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	if err := ctl.sessions.CreateSession(c.Request, session.User.Email, session.Token); err != nil {
		respondInternalError(c, err, "create session")
		return
	}

	ctl.wishlist.RefreshUser(ctx)
	c.JSON(http.StatusOK, gin.H{"user": session.User})
}

// Logout revokes the backend session and destroys the browser session.
func (ctl *AuthController) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if err := ctl.account.Logout(ctx); err != nil {
		respondInternalError(c, err, "logout")
		return
	}
	if err := ctl.sessions.DestroySession(c.Request); err != nil {
		respondInternalError(c, err, "destroy session")
		return
	}

	ctl.wishlist.RefreshUser(ctx)
	respondSuccess(c, "signed out")
}

// Session reports who is signed in and hands out the CSRF token the
// frontend must echo on mutations.
func (ctl *AuthController) Session(c *gin.Context) {
	response := gin.H{
		"authenticated": false,
		"csrf_token":    auth.GetCSRFToken(c),
	}

	if data := ctl.sessions.GetSessionData(c.Request); data != nil {
		response["authenticated"] = true
		response["email"] = data.Email
		response["login_at"] = data.LoginAt
		if user := ctl.wishlist.CurrentUser(); user != nil {
			response["user"] = user
		}
	}

	c.JSON(http.StatusOK, response)
}

// TokenRestoreMiddleware reinstalls the backend session token from the
// browser session after a process restart, so the signed-in state
// survives without forcing a fresh login.
func TokenRestoreMiddleware(account AccountClient, sessions *auth.SessionManager, wishlist WishlistStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessions.BackendToken(c.Request)
		if token != "" && account.SessionToken() != token {
			account.SetSessionToken(token)
			wishlist.RefreshUser(c.Request.Context())
		}
		c.Next()
	}
}
