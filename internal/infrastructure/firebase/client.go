package firebase

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"orcamentos/internal/domain"
	"orcamentos/internal/domain/user"
)

// ErrInvalidIDToken is returned for tokens Firebase refuses to vouch for.
var ErrInvalidIDToken = domain.NewUnauthorized("Token de identidade inválido ou expirado.")

type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Client verifies Google sign-in ID tokens issued through Firebase Authentication.
type Client struct {
	verifier tokenVerifier
	logger   *slog.Logger
}

// NewClient initializes a Firebase app and returns its auth client.
// credentialsFile may be empty to use application default credentials.
func NewClient(ctx context.Context, credentialsFile, projectID string, logger *slog.Logger) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &Client{verifier: authClient, logger: logger}, nil
}

// VerifyIDToken checks the token signature and audience and returns the
// identity it carries.
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (user.Identity, error) {
	if idToken == "" {
		return user.Identity{}, ErrInvalidIDToken
	}

	token, err := c.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenExpired(err) || auth.IsIDTokenInvalid(err) {
			c.logger.WarnContext(ctx, "rejected firebase id token", "error", err)
			return user.Identity{}, ErrInvalidIDToken
		}
		return user.Identity{}, fmt.Errorf("failed to verify firebase id token: %w", err)
	}

	return identityFromToken(token), nil
}

func identityFromToken(token *auth.Token) user.Identity {
	id := user.Identity{SubjectID: token.UID}
	if v, ok := token.Claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := token.Claims["name"].(string); ok {
		id.Name = v
	}
	if v, ok := token.Claims["picture"].(string); ok {
		id.AvatarURL = v
	}
	return id
}
