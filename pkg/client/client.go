// Package client is the consumer half of the dealership API: a facade
// with one method per server operation, plus the session manager that
// tracks who is logged in.
//
// The defining contract of the facade is failure normalization.  A
// network failure, a non-success HTTP status, or a malformed body is
// never surfaced as an error: list operations return an empty slice,
// single-entity lookups return nil, and mutations return a
// MutationResult with Success=false and a user-facing message.  Callers
// can treat "API unreachable" and "API returned nothing" identically.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/projectd/dealership-api/internal/model"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the server root, e.g. "http://localhost:3000".  The
	// "/api" prefix is appended per request.
	BaseURL string
	// StorePath locates the LocalStore file backing the session mirror.
	StorePath string
	// Timeout bounds every HTTP call.  Zero means 10 seconds.
	Timeout time.Duration
	// OfflineFallback enables the degraded login path: when the login
	// request cannot reach the server at all, credentials are checked
	// against a locally stored user list instead.  Never enable this in
	// a production build.
	OfflineFallback bool
}

// Client is the data-access facade.  Construct one per process with New
// and pass it around explicitly; there is no package-level singleton.
type Client struct {
	baseURL string
	http    *http.Client
	store   *LocalStore
	opts    Options

	// favSeq orders favorite toggles per (user, car) pair so a response
	// that arrives after a newer toggle was issued is discarded instead
	// of flipping the state backwards.
	favMu  sync.Mutex
	favSeq map[string]uint64
}

// MutationResult is the normalized outcome of a mutating call.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Stale marks a favorite toggle that was superseded by a newer
	// toggle of the same pair before its response arrived.  Callers
	// must discard stale results without touching UI state.
	Stale bool `json:"-"`
}

// AuthResult is the outcome of Register and Login.
type AuthResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
	// Unreachable distinguishes "the server said no" from "the server
	// never answered".  Only the latter may trigger offline fallback.
	Unreachable bool `json:"-"`
}

// OrderResult is the outcome of CreateOrder.
type OrderResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

// New builds a Client.  The LocalStore at opts.StorePath is loaded (or
// created empty) eagerly so session state survives restarts.
func New(opts Options) (*Client, error) {
	if opts.StorePath == "" {
		opts.StorePath = "localstore.json"
	}
	store, err := NewLocalStore(opts.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: opts.BaseURL,
		http:    &http.Client{Timeout: timeout},
		store:   store,
		opts:    opts,
		favSeq:  map[string]uint64{},
	}, nil
}

// Store exposes the session mirror, mainly for the session manager and
// tests.
func (c *Client) Store() *LocalStore { return c.store }

// do performs one request against /api and decodes the body into out
// when the status is 2xx.  Any failure along the way returns an error;
// the public methods translate that into their normalized default.
func (c *Client) do(method, path string, body, out any, token string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.baseURL+"/api"+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errTransport{err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The server's failure bodies carry a message; keep it.
		if out != nil {
			_ = json.Unmarshal(raw, out)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// errTransport wraps a failure to reach the server at all, as opposed
// to a response the server chose to send.
type errTransport struct{ err error }

func (e errTransport) Error() string { return e.err.Error() }
func (e errTransport) Unwrap() error { return e.err }

func isTransport(err error) bool {
	_, ok := err.(errTransport)
	return ok
}

// --- cars ---

// GetCars returns the full catalogue, or an empty slice on any failure.
func (c *Client) GetCars() []model.Car {
	out := []model.Car{}
	if err := c.do(http.MethodGet, "/cars", nil, &out, ""); err != nil {
		return []model.Car{}
	}
	if out == nil {
		out = []model.Car{}
	}
	return out
}

// GetCar returns one car, or nil when it does not exist or the call
// fails.
func (c *Client) GetCar(id int64) *model.Car {
	var out model.Car
	if err := c.do(http.MethodGet, fmt.Sprintf("/cars/%d", id), nil, &out, ""); err != nil {
		return nil
	}
	return &out
}

type carMutationResp struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Error   string     `json:"error"`
	Car     *model.Car `json:"car"`
}

func (r carMutationResp) message() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Error
}

// AddCar creates a car and returns it, or nil plus a failure message.
func (c *Client) AddCar(car model.Car) (*model.Car, MutationResult) {
	var resp carMutationResp
	if err := c.do(http.MethodPost, "/cars", car, &resp, ""); err != nil || !resp.Success {
		return nil, MutationResult{Message: orMessage(resp.message(), "Ошибка при добавлении")}
	}
	return resp.Car, MutationResult{Success: true}
}

// UpdateCar applies a partial update and returns the merged car, or nil
// plus a failure message.
func (c *Client) UpdateCar(id int64, fields map[string]any) (*model.Car, MutationResult) {
	var resp carMutationResp
	if err := c.do(http.MethodPut, fmt.Sprintf("/cars/%d", id), fields, &resp, ""); err != nil || !resp.Success {
		return nil, MutationResult{Message: orMessage(resp.message(), "Ошибка при обновлении")}
	}
	return resp.Car, MutationResult{Success: true}
}

// DeleteCar removes a car.
func (c *Client) DeleteCar(id int64) MutationResult {
	var resp carMutationResp
	if err := c.do(http.MethodDelete, fmt.Sprintf("/cars/%d", id), nil, &resp, ""); err != nil || !resp.Success {
		return MutationResult{Message: orMessage(resp.message(), "Ошибка при удалении")}
	}
	return MutationResult{Success: true, Message: resp.Message}
}

// --- users ---

// GetUsers returns every user (sanitized by the server), or an empty
// slice on failure.
func (c *Client) GetUsers() []model.User {
	out := []model.User{}
	if err := c.do(http.MethodGet, "/users", nil, &out, ""); err != nil {
		return []model.User{}
	}
	if out == nil {
		out = []model.User{}
	}
	return out
}

// GetUser returns one user, or nil.
func (c *Client) GetUser(id int64) *model.User {
	var out model.User
	if err := c.do(http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &out, ""); err != nil {
		return nil
	}
	return &out
}

// ProfilePatch is the subset of a user the profile form may change.
// There is deliberately no password field: the update path drops it.
type ProfilePatch struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

type userMutationResp struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// UpdateUser patches a profile and returns the merged user, or nil plus
// a failure message.
func (c *Client) UpdateUser(id int64, patch ProfilePatch) (*model.User, MutationResult) {
	var resp userMutationResp
	if err := c.do(http.MethodPut, fmt.Sprintf("/users/%d", id), patch, &resp, ""); err != nil || !resp.Success {
		return nil, MutationResult{Message: orMessage(resp.Message, "Ошибка при обновлении")}
	}
	return resp.User, MutationResult{Success: true}
}

// --- auth ---

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Register creates an account.  Server-side validation messages come
// back verbatim in Message.
func (c *Client) Register(req RegisterRequest) AuthResult {
	var out AuthResult
	if err := c.do(http.MethodPost, "/register", req, &out, ""); err != nil {
		if isTransport(err) {
			return AuthResult{Message: "Сервер недоступен", Unreachable: true}
		}
		return AuthResult{Success: false, Message: orMessage(out.Message, "Ошибка регистрации")}
	}
	return out
}

// login is the raw wire call; the Session wraps it with the token and
// mirror bookkeeping plus the offline fallback.
func (c *Client) login(username, password string) AuthResult {
	body := map[string]string{"username": username, "password": password}
	var out AuthResult
	if err := c.do(http.MethodPost, "/login", body, &out, ""); err != nil {
		if isTransport(err) {
			return AuthResult{Message: "Сервер недоступен", Unreachable: true}
		}
		return AuthResult{Success: false, Message: orMessage(out.Message, "Ошибка входа")}
	}
	return out
}

// me verifies a stored token against GET /api/me.
func (c *Client) me(token string) AuthResult {
	var out AuthResult
	if err := c.do(http.MethodGet, "/me", nil, &out, token); err != nil {
		if isTransport(err) {
			return AuthResult{Unreachable: true}
		}
		return AuthResult{Success: false, Message: out.Message}
	}
	return out
}

// --- favorites ---

// GetFavorites returns a user's favorites joined with their cars, or an
// empty slice on failure.
func (c *Client) GetFavorites(userID int64) []model.FavoriteWithCar {
	out := []model.FavoriteWithCar{}
	if err := c.do(http.MethodGet, fmt.Sprintf("/favorites/%d", userID), nil, &out, ""); err != nil {
		return []model.FavoriteWithCar{}
	}
	if out == nil {
		out = []model.FavoriteWithCar{}
	}
	return out
}

// IsFavorite reports whether the pair is bookmarked; false on failure.
func (c *Client) IsFavorite(userID, carID int64) bool {
	var out struct {
		IsFavorite bool `json:"isFavorite"`
	}
	if err := c.do(http.MethodGet, fmt.Sprintf("/favorites/%d/%d", userID, carID), nil, &out, ""); err != nil {
		return false
	}
	return out.IsFavorite
}

// FavoritesCount returns the badge counter; zero on failure.
func (c *Client) FavoritesCount(userID int64) int {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(http.MethodGet, fmt.Sprintf("/favorites-count/%d", userID), nil, &out, ""); err != nil {
		return 0
	}
	return out.Count
}

// AddFavorite bookmarks a car.  A result that comes back after a newer
// toggle of the same pair was issued is returned with Stale=true and
// must be discarded by the caller.
func (c *Client) AddFavorite(userID, carID int64) MutationResult {
	seq := c.nextToggle(userID, carID)
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	err := c.do(http.MethodPost, "/favorites", map[string]int64{"userId": userID, "carId": carID}, &resp, "")
	if c.toggleStale(userID, carID, seq) {
		return MutationResult{Stale: true}
	}
	if err != nil || !resp.Success {
		return MutationResult{Message: orMessage(resp.Message, "Ошибка при добавлении")}
	}
	return MutationResult{Success: true, Message: resp.Message}
}

// RemoveFavorite removes a bookmark, with the same staleness contract
// as AddFavorite.
func (c *Client) RemoveFavorite(userID, carID int64) MutationResult {
	seq := c.nextToggle(userID, carID)
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	err := c.do(http.MethodDelete, fmt.Sprintf("/favorites/%d/%d", userID, carID), nil, &resp, "")
	if c.toggleStale(userID, carID, seq) {
		return MutationResult{Stale: true}
	}
	if err != nil || !resp.Success {
		return MutationResult{Message: orMessage(resp.Message, "Ошибка при удалении")}
	}
	return MutationResult{Success: true, Message: resp.Message}
}

func (c *Client) nextToggle(userID, carID int64) uint64 {
	key := fmt.Sprintf("%d:%d", userID, carID)
	c.favMu.Lock()
	defer c.favMu.Unlock()
	c.favSeq[key]++
	return c.favSeq[key]
}

func (c *Client) toggleStale(userID, carID int64, seq uint64) bool {
	key := fmt.Sprintf("%d:%d", userID, carID)
	c.favMu.Lock()
	defer c.favMu.Unlock()
	return c.favSeq[key] != seq
}

// --- orders ---

// CreateOrder submits a purchase request.
func (c *Client) CreateOrder(order model.Order) OrderResult {
	var out OrderResult
	if err := c.do(http.MethodPost, "/orders", order, &out, ""); err != nil || !out.Success {
		return OrderResult{Message: orMessage(out.Message, "Ошибка при создании заказа")}
	}
	return out
}

// --- statistics, health ---

// GetStatistics returns the dashboard summary, or nil on failure.
func (c *Client) GetStatistics() *model.Statistics {
	var out model.Statistics
	if err := c.do(http.MethodGet, "/statistics", nil, &out, ""); err != nil {
		return nil
	}
	return &out
}

// CheckHealth reports whether the server answers its health probe.
func (c *Client) CheckHealth() bool {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(http.MethodGet, "/health", nil, &out, ""); err != nil {
		return false
	}
	return out.Status == "OK"
}

func orMessage(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
