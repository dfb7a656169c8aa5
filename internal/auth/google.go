package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	authmw "github.com/mind-engage/mindcheck/internal/auth/middleware"
)

// Identity is the verified subset of a Google ID token.
type Identity struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}

var ErrInvalidCredential = errors.New("invalid authentication token")

// GoogleVerifier checks ID tokens against Google's tokeninfo endpoint.
type GoogleVerifier struct {
	ClientID     string
	TokenInfoURL string
	Client       *http.Client
}

func NewGoogleVerifier(clientID, tokenInfoURL string) *GoogleVerifier {
	if tokenInfoURL == "" {
		tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	}
	return &GoogleVerifier{
		ClientID:     clientID,
		TokenInfoURL: tokenInfoURL,
		Client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	type tokenInfo struct {
		Iss           string `json:"iss"`
		Aud           string `json:"aud"`
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		Exp           string `json:"exp"`
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		v.TokenInfoURL+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return Identity{}, err
	}
	resp, err := v.Client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("tokeninfo fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Identity{}, ErrInvalidCredential
	}
	var ti tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&ti); err != nil {
		return Identity{}, fmt.Errorf("tokeninfo parse: %w", err)
	}
	if ti.Aud != v.ClientID {
		return Identity{}, fmt.Errorf("%w: audience", ErrInvalidCredential)
	}
	if ti.Iss != "accounts.google.com" && ti.Iss != "https://accounts.google.com" {
		return Identity{}, fmt.Errorf("%w: issuer", ErrInvalidCredential)
	}
	if exp, err := strconv.ParseInt(ti.Exp, 10, 64); err == nil && time.Unix(exp, 0).Before(time.Now()) {
		return Identity{}, fmt.Errorf("%w: expired", ErrInvalidCredential)
	}
	if ti.Sub == "" || ti.Email == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidCredential)
	}
	return Identity{GoogleID: ti.Sub, Email: ti.Email, Name: ti.Name, Picture: ti.Picture}, nil
}

type User struct {
	ID       int64  `json:"id"`
	GoogleID string `json:"google_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`
}

// UserStore persists Google accounts in the users table.
type UserStore struct{ db *sql.DB }

func NewUserStore(db *sql.DB) *UserStore { return &UserStore{db: db} }

// Upsert creates the account on first sign-in and refreshes name and
// last_login afterwards.
func (s *UserStore) Upsert(ctx context.Context, id Identity) (User, error) {
	now := time.Now().Unix()
	var uid int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE google_id=$1`, id.GoogleID).Scan(&uid)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = s.db.QueryRowContext(ctx,
			`INSERT INTO users (username, email, name, google_id, created_at, last_login)
			 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
			id.Email, id.Email, id.Name, id.GoogleID, now, now).Scan(&uid)
		if err != nil {
			return User{}, fmt.Errorf("insert user: %w", err)
		}
	case err != nil:
		return User{}, fmt.Errorf("lookup user: %w", err)
	default:
		if _, err := s.db.ExecContext(ctx,
			`UPDATE users SET name=$1, last_login=$2 WHERE id=$3`, id.Name, now, uid); err != nil {
			return User{}, fmt.Errorf("update user: %w", err)
		}
	}
	return User{ID: uid, GoogleID: id.GoogleID, Email: id.Email, Name: id.Name, Picture: id.Picture}, nil
}

type identityVerifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

// POST /auth/google  { "credential": "<google id token>" }
func GoogleSignInHandler(a *authmw.AuthService, v identityVerifier, users *UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Credential string `json:"credential"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Credential) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "No credential token provided"})
			return
		}
		id, err := v.Verify(r.Context(), req.Credential)
		if err != nil {
			if errors.Is(err, ErrInvalidCredential) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid authentication token"})
				return
			}
			log.Printf("ERROR: [Auth] google verification: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Authentication failed. Please try again."})
			return
		}
		u, err := users.Upsert(r.Context(), id)
		if err != nil {
			log.Printf("ERROR: [Auth] google sign-in upsert: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Authentication failed. Please try again."})
			return
		}
		tok, err := a.IssueJWT(strconv.FormatInt(u.ID, 10), authmw.RoleUser, u.Email, u.Name)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Authentication failed. Please try again."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"message":      "Authentication successful",
			"user":         u,
			"access_token": tok,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
