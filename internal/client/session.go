// Package client is the API client for the CRM backend. Session plays the
// role the browser plays in the web frontend: it holds the issued token,
// attaches it to every protected request, and drops it when the server
// stops accepting it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/asclegal/crm-api/internal/models"
)

var (
	// ErrUnauthorized is returned when a login or register attempt is
	// rejected. The client cannot tell why; the server does not say.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired is returned when the held token stopped working
	// and could not be refreshed. The token has been cleared; the caller
	// must log in again.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotAuthenticated is returned when a protected call is made with
	// no session at all.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is returned for lookups of unknown resources.
	ErrNotFound = errors.New("not found")
)

// State is the session lifecycle phase.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
	Expired
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Picture  string `json:"picture,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Session is a stateful client for the CRM API.
//
// Lifecycle: Anonymous -> Authenticating -> Authenticated, and
// Authenticated -> Expired when a protected request comes back 401 and a
// refresh does not help. Expired clears the stored token; the next Login
// starts over from Anonymous. Login itself is never retried.
type Session struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	mu    sync.Mutex
	state State
	token *models.SessionToken
}

// NewSession creates a session against the given base URL. A token left
// in the store by a previous run resumes the session as Authenticated.
func NewSession(baseURL string, tokens TokenStore) *Session {
	s := &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		state:   Anonymous,
	}
	if token, err := tokens.Load(); err == nil && token != nil {
		s.token = token
		s.state = Authenticated
	}
	return s
}

// State reports the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

type authResponse struct {
	Token *models.SessionToken  `json:"token"`
	User  *models.PublicProfile `json:"user"`
}

// Login submits the credentials once. On success the token pair is
// persisted and the session becomes Authenticated; on any failure it
// returns to Anonymous.
func (s *Session) Login(ctx context.Context, email, password string) (*models.PublicProfile, error) {
	s.setState(Authenticating)

	body := map[string]string{"email": email, "password": password}
	var out authResponse
	status, err := s.postJSON(ctx, "/auth/login", body, &out)
	if err != nil {
		s.becomeAnonymous()
		return nil, err
	}
	switch {
	case status == http.StatusOK:
	case status == http.StatusUnauthorized:
		s.becomeAnonymous()
		return nil, ErrUnauthorized
	default:
		s.becomeAnonymous()
		return nil, fmt.Errorf("login failed with status %d", status)
	}

	if err := s.adoptToken(out.Token); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Register creates an account. The server signs the new account in, so a
// successful registration leaves the session Authenticated.
func (s *Session) Register(ctx context.Context, in RegisterInput) (*models.PublicProfile, error) {
	s.setState(Authenticating)

	var out authResponse
	status, err := s.postJSON(ctx, "/auth/register", in, &out)
	if err != nil {
		s.becomeAnonymous()
		return nil, err
	}
	switch status {
	case http.StatusCreated:
	case http.StatusConflict:
		s.becomeAnonymous()
		return nil, fmt.Errorf("registration rejected: email already registered")
	default:
		s.becomeAnonymous()
		return nil, fmt.Errorf("registration failed with status %d", status)
	}

	if err := s.adoptToken(out.Token); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout drops the session and clears the persisted token.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	s.state = Anonymous
	return s.tokens.Clear()
}

// Profile fetches the authenticated user's public profile.
func (s *Session) Profile(ctx context.Context) (*models.PublicProfile, error) {
	var out models.PublicProfile
	if err := s.get(ctx, "/users/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Customers fetches the customer directory.
func (s *Session) Customers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	if err := s.get(ctx, "/customers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Customer fetches one customer by identifier.
func (s *Session) Customer(ctx context.Context, id string) (*models.Customer, error) {
	var out models.Customer
	if err := s.get(ctx, "/customers/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CustomerHistory fetches a customer's history timeline.
func (s *Session) CustomerHistory(ctx context.Context, id string) ([]models.HistoryEvent, error) {
	var out []models.HistoryEvent
	if err := s.get(ctx, "/customers/"+id+"/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get performs an authenticated GET. A 401 triggers a single refresh
// attempt and one retry; if the server still refuses, the token is
// cleared and the session marked Expired.
func (s *Session) get(ctx context.Context, path string, out any) error {
	token := s.currentToken()
	if token == nil {
		return ErrNotAuthenticated
	}

	status, err := s.getJSON(ctx, path, token.AccessToken, out)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		refreshed, refreshErr := s.refresh(ctx, token)
		if refreshErr != nil {
			s.expire()
			return ErrSessionExpired
		}
		status, err = s.getJSON(ctx, path, refreshed.AccessToken, out)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			s.expire()
			return ErrSessionExpired
		}
	}

	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("request failed with status %d", status)
	}
}

// refresh exchanges the refresh token for a new pair and persists it.
func (s *Session) refresh(ctx context.Context, token *models.SessionToken) (*models.SessionToken, error) {
	if token.RefreshToken == "" {
		return nil, ErrSessionExpired
	}

	body := map[string]string{"refreshToken": token.RefreshToken}
	var out authResponse
	status, err := s.postJSON(ctx, "/auth/refresh", body, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || out.Token == nil {
		return nil, ErrSessionExpired
	}

	if err := s.adoptToken(out.Token); err != nil {
		return nil, err
	}
	return out.Token, nil
}

func (s *Session) adoptToken(token *models.SessionToken) error {
	if token == nil || token.AccessToken == "" {
		s.becomeAnonymous()
		return errors.New("server response carried no token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.state = Authenticated
	return s.tokens.Save(token)
}

func (s *Session) currentToken() *models.SessionToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *Session) becomeAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Anonymous
}

// expire clears the token everywhere and marks the session Expired.
func (s *Session) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	s.state = Expired
	_ = s.tokens.Clear()
}

func (s *Session) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	return s.doJSON(req, out)
}

func (s *Session) getJSON(ctx context.Context, path, accessToken string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return s.doJSON(req, out)
}

func (s *Session) doJSON(req *http.Request, out any) (int, error) {
	resp, err := s.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode, nil
}
