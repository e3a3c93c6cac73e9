package client

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/projectd/dealership-api/internal/auth"
	"github.com/projectd/dealership-api/internal/model"
)

// State is the session lifecycle position.
type State string

const (
	// StateAnonymous means no identity is held locally.
	StateAnonymous State = "ANONYMOUS"
	// StateVerifying means a stored token exists and is being checked
	// against the server.
	StateVerifying State = "VERIFYING"
	// StateAuthenticated means the server has confirmed the identity
	// (or the offline fallback accepted it).
	StateAuthenticated State = "AUTHENTICATED"
)

// LocalStore keys.  tokenKey holds the bearer token; the mirror keys
// copy out fields the UI reads without parsing the full user blob.
const (
	tokenKey       = "project_d_jwt_token"
	offlineListKey = "projectd_users"

	mirrorIsAuth   = "isAuthenticated"
	mirrorUsername = "username"
	mirrorEmail    = "userEmail"
	mirrorPhone    = "userPhone"
	mirrorUserID   = "userId"
	mirrorRole     = "userRole"
	mirrorUser     = "user"
)

// Demo credential the offline fallback accepts even with an empty local
// user list.
const (
	offlineDemoUser     = "admin"
	offlineDemoPassword = "password"
)

// Session is the client-side session manager.  It owns the token and
// the mirror fields in the LocalStore and moves between the three
// states:
//
//	ANONYMOUS  -> VERIFYING      Resume finds a stored token
//	VERIFYING  -> AUTHENTICATED  the server confirms it via /api/me
//	VERIFYING  -> ANONYMOUS      the token is rejected; it is discarded
//	ANONYMOUS  -> AUTHENTICATED  Login succeeds (no VERIFYING step)
//	AUTHENTICATED -> ANONYMOUS   Logout clears everything
type Session struct {
	mu     sync.Mutex
	client *Client
	state  State
	user   *model.User
}

// NewSession builds a session manager over c, starting ANONYMOUS.  Call
// Resume to pick up a previously stored token.
func NewSession(c *Client) *Session {
	return &Session{client: c, state: StateAnonymous}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the confirmed user, or nil outside AUTHENTICATED.
func (s *Session) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the stored bearer token, if any.
func (s *Session) Token() string {
	return s.client.store.Get(tokenKey)
}

// Resume is the page-load path: if a token is stored, verify it against
// the server and either enter AUTHENTICATED or discard it.  A rejected
// token is removed; a server we cannot reach leaves the token in place
// but the session ANONYMOUS, so a later Resume can retry.
func (s *Session) Resume() State {
	s.mu.Lock()
	token := s.client.store.Get(tokenKey)
	if token == "" {
		s.state = StateAnonymous
		s.mu.Unlock()
		return StateAnonymous
	}
	s.state = StateVerifying
	s.mu.Unlock()

	res := s.client.me(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case res.Success && res.User != nil:
		s.user = res.User
		s.state = StateAuthenticated
		s.writeMirror(*res.User)
	case res.Unreachable:
		s.user = nil
		s.state = StateAnonymous
	default:
		// The server saw the token and said no: it is dead, drop it.
		s.user = nil
		s.state = StateAnonymous
		s.clearAll()
	}
	return s.state
}

// Login authenticates with username and password.  On success the token
// and mirror fields are written and the session enters AUTHENTICATED
// directly.  A server rejection (wrong password, unknown user) is
// final.  Only when the server never answered, and only when the client
// was built with OfflineFallback, is the local user list consulted.
func (s *Session) Login(username, password string) AuthResult {
	res := s.client.login(username, password)

	if res.Unreachable && s.client.opts.OfflineFallback {
		if u, ok := s.offlineLookup(username, password); ok {
			res = AuthResult{
				Success: true,
				Message: "Вход выполнен успешно (офлайн)",
				User:    u,
			}
		}
	}

	if !res.Success || res.User == nil {
		return res
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = res.User
	s.state = StateAuthenticated
	if res.Token != "" {
		s.client.store.Set(tokenKey, res.Token)
	}
	s.writeMirror(*res.User)
	return res
}

// Logout drops the token and every mirrored field and returns to
// ANONYMOUS.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.state = StateAnonymous
	s.clearAll()
}

// offlineLookup checks the locally stored user list, then the demo
// credential.  Stored passwords may be plaintext or already digested;
// both are accepted so a list exported from the server keeps working.
func (s *Session) offlineLookup(username, password string) (*model.User, bool) {
	raw := s.client.store.Get(offlineListKey)
	if raw != "" {
		var users []model.User
		if err := json.Unmarshal([]byte(raw), &users); err == nil {
			for _, u := range users {
				if !strings.EqualFold(u.Username, username) {
					continue
				}
				if auth.VerifyPassword(password, u.Password) {
					found := u
					found.Password = ""
					return &found, true
				}
			}
		}
	}
	if username == offlineDemoUser && password == offlineDemoPassword {
		return &model.User{
			ID:       1,
			Username: offlineDemoUser,
			Email:    "admin@example.com",
			FullName: "Администратор",
			IsActive: true,
			Role:     model.RoleAdmin,
		}, true
	}
	return nil, false
}

// writeMirror copies the identity fields the UI reads.  Caller holds
// s.mu.
func (s *Session) writeMirror(u model.User) {
	st := s.client.store
	st.Set(mirrorIsAuth, "true")
	st.Set(mirrorUsername, u.Username)
	st.Set(mirrorEmail, u.Email)
	st.Set(mirrorPhone, u.Phone)
	st.Set(mirrorUserID, strconv.FormatInt(u.ID, 10))
	st.Set(mirrorRole, string(u.Role))
	if raw, err := json.Marshal(u.Sanitized()); err == nil {
		st.Set(mirrorUser, string(raw))
	}
}

// clearAll removes the token and the mirror.  Caller holds s.mu.
func (s *Session) clearAll() {
	st := s.client.store
	for _, key := range []string{
		tokenKey, mirrorIsAuth, mirrorUsername, mirrorEmail,
		mirrorPhone, mirrorUserID, mirrorRole, mirrorUser,
	} {
		st.Remove(key)
	}
}
