package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"orcamentos/internal/domain"
	"orcamentos/internal/domain/user"
	"orcamentos/internal/shared/auth"
	"orcamentos/internal/shared/middleware"
)

// IdentityVerifier checks an identity provider token, see firebase.Client.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (user.Identity, error)
}

type UserService interface {
	SignIn(ctx context.Context, identity user.Identity) (*user.User, error)
	GetUser(ctx context.Context, id int64) (*user.User, error)
}

type AuthHandler struct {
	users         UserService
	verifier      IdentityVerifier
	jwt           *auth.JWT
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler wires sign-in. secureCookies forces the Secure flag on the
// session cookie regardless of how the request arrived.
func NewAuthHandler(users UserService, verifier IdentityVerifier, jwt *auth.JWT, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:         users,
		verifier:      verifier,
		jwt:           jwt,
		secureCookies: secureCookies,
		logger:        logger.With("handler", "auth"),
	}
}

type GoogleSignInRequest struct {
	IDToken string `json:"id_token"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// HandleGoogleSignIn exchanges a Firebase ID token for an application JWT.
func (h *AuthHandler) HandleGoogleSignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req GoogleSignInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.IDToken == "" {
		writeError(w, r, h.logger, domain.NewValidationError("id_token", "id_token é obrigatório"))
		return
	}

	ctx := r.Context()

	identity, err := h.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	u, err := h.users.SignIn(ctx, identity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.jwt.Generate(u.ID, u.Email)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	expiresAt := time.Now().Add(h.jwt.TTL())

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isSecure(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})

	h.logger.InfoContext(ctx, "user signed in", "user_id", u.ID)
	writeJSON(w, http.StatusOK, AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		User:      toUserResponse(u),
	})
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	// Clear the cookie by setting MaxAge to -1
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Only set Secure flag when actually using HTTPS
func (h *AuthHandler) isSecure(r *http.Request) bool {
	return h.secureCookies || r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
