package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is the bearer credential with its client-side expiry.
type Token struct {
	Value     string    `json:"access_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the token is held and not yet expired.
func (t Token) Valid() bool {
	return t.Value != "" && time.Now().Before(t.ExpiresAt)
}

// Store persists the bearer token across restarts.
type Store interface {
	// Load returns the stored token, or a zero Token when none is stored.
	Load() (Token, error)
	// Save writes the token to durable storage.
	Save(Token) error
	// Clear removes the stored token.
	Clear() error
}

// FileStore keeps the token in token.json under the user config dir.
type FileStore struct{ dir string }

// NewFileStore returns a store rooted at $XDG_CONFIG_HOME/feedboard
// (falling back to ~/.config/feedboard).
func NewFileStore() *FileStore {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return &FileStore{dir: filepath.Join(v, "feedboard")}
	}
	home, _ := os.UserHomeDir()
	return &FileStore{dir: filepath.Join(home, ".config", "feedboard")}
}

func (s *FileStore) path() string { return filepath.Join(s.dir, "token.json") }

// Load reads the stored token; a missing file yields a zero Token.
func (s *FileStore) Load() (Token, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return Token{}, nil
		}
		return Token{}, err
	}
	var t Token
	if err := json.Unmarshal(b, &t); err != nil {
		return Token{}, err
	}
	return t, nil
}

// Save writes the token with owner-only permissions.
func (s *FileStore) Save(t Token) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), b, 0o600)
}

// Clear removes the token file if present.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// defaultTokenTTL is assumed when the token carries no exp claim.
const defaultTokenTTL = 15 * time.Minute

// tokenExpiry extracts the exp claim without validating the signature;
// the server remains the authority and will 401 an expired token anyway.
func tokenExpiry(raw string) time.Time {
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(defaultTokenTTL)
}
