package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/arsh246/weather-app/internal/config"
	"github.com/arsh246/weather-app/internal/errs"
)

// Accounts handles signup and password sign-in against the identity backend.
// Account lifecycle is fully delegated: nothing about the user is stored here.
type Accounts struct {
	admin     *fbauth.Client
	baseURL   string
	webAPIKey string
	http      *http.Client
}

func NewAccounts(admin *fbauth.Client, cfg config.IdentityConfig) *Accounts {
	return &Accounts{
		admin:     admin,
		baseURL:   cfg.BaseURL,
		webAPIKey: cfg.WebAPIKey,
		http:      &http.Client{},
	}
}

// CreateAccount registers an email/password user and returns its uid.
func (a *Accounts) CreateAccount(ctx context.Context, email, password string) (string, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	user, err := a.admin.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return "", fmt.Errorf("%w: email already registered", errs.ErrAlreadyExists)
		}
		return "", fmt.Errorf("%w: create user: %v", errs.ErrInvalid, err)
	}
	return user.UID, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken string `json:"idToken"`
	LocalID string `json:"localId"`
}

// SignIn exchanges email/password for an ID token via the identity-toolkit
// REST endpoint. The Admin SDK has no password sign-in on purpose.
func (a *Accounts) SignIn(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return "", fmt.Errorf("marshal sign-in request: %w", err)
	}

	url := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", a.baseURL, a.webAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: sign-in request: %v", errs.ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		// Identity toolkit reports bad credentials as 400.
		return "", fmt.Errorf("%w: invalid credentials", errs.ErrUnauthenticated)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: identity backend returned %d", errs.ErrUpstream, resp.StatusCode)
	}

	var body signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode sign-in response: %v", errs.ErrUpstream, err)
	}
	return body.IDToken, nil
}
