// Package auth integrates the external identity backend: ID-token
// verification, account creation, and password sign-in.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/arsh246/weather-app/internal/config"
	"github.com/arsh246/weather-app/internal/errs"
)

// Verifier validates an opaque bearer token and yields the stable user id it
// belongs to. Implementations must have no side effects.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// FirebaseVerifier verifies Firebase ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing token", errs.ErrUnauthenticated)
	}
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrUnauthenticated, err)
	}
	return decoded.UID, nil
}

// NewFirebaseClient initializes the Firebase Admin auth client from inline
// service-account JSON. Private keys arriving through env vars carry escaped
// newlines that have to be put back before the JSON is usable.
func NewFirebaseClient(ctx context.Context, cfg config.IdentityConfig) (*fbauth.Client, error) {
	if cfg.KeyData == "" {
		return nil, fmt.Errorf("IDENTITY_KEY_DATA not set")
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(cfg.KeyData), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal key data: %w", err)
	}
	if pk, ok := parsed["private_key"].(string); ok {
		parsed["private_key"] = strings.ReplaceAll(pk, "\\n", "\n")
	}
	keyJSON, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("marshal key data: %w", err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(keyJSON))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("get auth client: %w", err)
	}
	return client, nil
}

// NewFirebaseVerifier wraps an Admin auth client as a Verifier.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}
