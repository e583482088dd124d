package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"auctionary/internal/passwords"
	"auctionary/internal/profanity"
	"auctionary/internal/repository"
	"auctionary/internal/server"

	bidding "auctionary/internal/biddingService"
	item "auctionary/internal/itemService"
	question "auctionary/internal/questionService"
	user "auctionary/internal/userService"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	sessionHeader  = "X-Authorization"
	testPassword   = "Sup3r$ecret"
	testIterations = 1000
)

// testClock is a settable time source shared by all services of one app
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testApp is the full HTTP stack over a private in-memory database
type testApp struct {
	router *gin.Engine
	clock  *testClock
}

// SetupTestApp initializes the router with real services over an in-memory SQLite database.
func SetupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	db, err := repository.Open(ctx, repository.DefaultConfig(repository.MemoryPath))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo := repository.NewSQLRepo(db)
	filter := profanity.NewFilter()

	users := user.NewUserService(repo, repo, passwords.NewHasher(testIterations), user.WithClock(clock.Now))
	services := server.Services{
		Users:     users,
		Items:     item.NewItemService(repo, repo, filter, item.WithClock(clock.Now)),
		Bids:      bidding.NewBiddingService(repo, repo, bidding.WithClock(clock.Now)),
		Questions: question.NewQuestionService(repo, repo, filter),
		Sessions:  users,
	}

	opts := server.DefaultOptions()
	opts.MetricsEnabled = false
	return &testApp{router: server.SetupRouter(services, opts), clock: clock}
}

// ExecuteRequest runs a request against the app. A non-empty token is sent as the session header.
func (a *testApp) ExecuteRequest(t *testing.T, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(sessionHeader, token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse runs a request and decodes a JSON object response
func (a *testApp) ExecuteRequestAndParse(t *testing.T, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := a.ExecuteRequest(t, method, url, token, body)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp, w
}

// ExecuteRequestAndParseList runs a request and decodes a JSON array response
func (a *testApp) ExecuteRequestAndParseList(t *testing.T, method, url, token string) []map[string]any {
	t.Helper()

	w := a.ExecuteRequest(t, method, url, token, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// Register creates an account and returns the new user id
func (a *testApp) Register(t *testing.T, firstName, email string) int64 {
	t.Helper()

	resp, w := a.ExecuteRequestAndParse(t, http.MethodPost, "/users", "", map[string]any{
		"first_name": firstName,
		"last_name":  "Tester",
		"email":      email,
		"password":   testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return int64(resp["user_id"].(float64))
}

// Login returns a session token for email
func (a *testApp) Login(t *testing.T, email string) string {
	t.Helper()

	resp, w := a.ExecuteRequestAndParse(t, http.MethodPost, "/login", "", map[string]any{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	return resp["session_token"].(string)
}

// SignUp registers and logs in, returning the user id and session token
func (a *testApp) SignUp(t *testing.T, firstName string) (int64, string) {
	t.Helper()

	email := fmt.Sprintf("%s@example.com", firstName)
	id := a.Register(t, firstName, email)
	return id, a.Login(t, email)
}

// CreateItem lists an item ending in one hour and returns its id
func (a *testApp) CreateItem(t *testing.T, token, name string, startingBid int64, categories ...int64) int64 {
	t.Helper()

	body := map[string]any{
		"name":         name,
		"description":  name + " in good condition",
		"starting_bid": startingBid,
		"end_date":     a.clock.Now().Add(time.Hour).UnixMilli(),
	}
	if len(categories) > 0 {
		body["categories"] = categories
	}

	resp, w := a.ExecuteRequestAndParse(t, http.MethodPost, "/item", token, body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return int64(resp["item_id"].(float64))
}

// PlaceBid posts a bid and returns the response status
func (a *testApp) PlaceBid(t *testing.T, token string, itemID, amount int64) (int, string) {
	t.Helper()

	resp, w := a.ExecuteRequestAndParse(t, http.MethodPost, fmt.Sprintf("/item/%d/bid", itemID), token,
		map[string]any{"amount": amount})
	msg, _ := resp["error_message"].(string)
	return w.Code, msg
}

func itemIDs(items []map[string]any) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, int64(it["item_id"].(float64)))
	}
	return ids
}
