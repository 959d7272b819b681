// Package session persists the client's login state between invocations,
// playing the part of the device key-value storage the backend's mobile
// clients use.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage keys shared with the other clients of the backend.
const (
	KeyToken      = "token"
	KeyRole       = "x_role"
	KeyCustomerID = "customer_id"
	KeyDrafts     = "reconciles"
)

// Role is the access level granted at login.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ParseRole decodes the backend's role string. Anything that is not
// "admin" (case-insensitively) is a customer.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleCustomer
}

// IsAdmin reports whether the role may lock, unlock and edit regardless of
// a document's lock state.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// Store is a flat string key-value store backed by a JSON file. Every
// mutation is written through immediately; there is no expiry and no
// migration logic.
type Store struct {
	path   string
	values map[string]string
}

// Open loads the store at path, creating an empty one if the file does not
// exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("session: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("session: parse %s: %w", path, err)
	}
	return s, nil
}

// Get returns the stored value for key and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the store.
func (s *Store) Set(key, value string) error {
	s.values[key] = value
	return s.flush()
}

// Delete removes key and persists the store.
func (s *Store) Delete(key string) error {
	delete(s.values, key)
	return s.flush()
}

func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	// The file holds a bearer token; keep it private to the user.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", s.path, err)
	}
	return nil
}

// Session is the typed view of the login state. It is loaded fresh at the
// start of every command rather than cached at process init, so a login
// performed by another invocation is picked up immediately.
type Session struct {
	Token      string
	Role       Role
	CustomerID string
}

// Current reads the login state out of the store.
func Current(s *Store) Session {
	token, _ := s.Get(KeyToken)
	roleStr, _ := s.Get(KeyRole)
	customerID, _ := s.Get(KeyCustomerID)
	return Session{
		Token:      token,
		Role:       ParseRole(roleStr),
		CustomerID: customerID,
	}
}

// LoggedIn reports whether a token is present. The token is never checked
// for expiry client-side; the backend rejects stale ones.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Save persists a successful login. The customer id is only written when
// the backend returned one (admins have none).
func Save(store *Store, token string, role Role, customerID string) error {
	if token != "" {
		if err := store.Set(KeyToken, token); err != nil {
			return err
		}
	}
	if err := store.Set(KeyRole, string(role)); err != nil {
		return err
	}
	if customerID != "" {
		if err := store.Set(KeyCustomerID, customerID); err != nil {
			return err
		}
	}
	return nil
}
