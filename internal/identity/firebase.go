package identity

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"
)

const (
	keysRefreshInterval = time.Hour
	// A token naming an unknown kid triggers at most one key set refresh per
	// unknownKIDInterval. Other lookups fail fast instead of waiting.
	unknownKIDInterval = 5 * time.Minute
	unknownKIDWaitMax  = time.Second
)

// Firebase verifies RS256 ID tokens issued by Google's secure token service
// against the provider's published JWK set.
type Firebase struct {
	projectID string
	keys      keyfunc.Keyfunc
	now       func() time.Time
}

// NewFirebase loads the key set at jwksURL and refreshes it in the background
// until ctx is done. An empty projectID yields a verifier that rejects every
// token without fetching keys.
func NewFirebase(ctx context.Context, projectID, jwksURL string, client *http.Client) (*Firebase, error) {
	f := &Firebase{projectID: projectID, now: time.Now}
	if projectID == "" {
		return f, nil
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	remote, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    client,
		Ctx:                       ctx,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           keysRefreshInterval,
		RefreshErrorHandler: func(ctx context.Context, err error) {
			slog.Warn("identity key set refresh failed", "url", jwksURL, "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create identity key storage: %w", err)
	}

	storage, err := jwkset.NewHTTPClient(jwkset.HTTPClientOptions{
		HTTPURLs:          map[string]jwkset.Storage{jwksURL: remote},
		RateLimitWaitMax:  unknownKIDWaitMax,
		RefreshUnknownKID: rate.NewLimiter(rate.Every(unknownKIDInterval), 1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create identity key client: %w", err)
	}

	f.keys, err = keyfunc.New(keyfunc.Options{Ctx: ctx, Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("failed to create identity keyfunc: %w", err)
	}
	return f, nil
}

func (f *Firebase) issuer() string {
	return "https://securetoken.google.com/" + f.projectID
}

func (f *Firebase) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	if f.keys == nil {
		return nil, fmt.Errorf("%w: identity provider not configured", ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, f.keys.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(f.projectID),
		jwt.WithIssuer(f.issuer()),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(f.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if name == "" {
		name, _ = claims["display_name"].(string)
	}

	return &Identity{UID: uid, Email: email, Name: name}, nil
}
