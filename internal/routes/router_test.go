package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopping-list-api/internal/config"
	"shopping-list-api/internal/infrastructure/database/gormdb"
	"shopping-list-api/internal/notify"

	"github.com/gin-gonic/gin"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

type recordingPublisher struct {
	events []notify.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event notify.Event) error {
	p.events = append(p.events, event)
	return nil
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T, publisher notify.Publisher) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gormdb.NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed migrating database: %v", err)
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{Environment: "test"},
		JWT:     config.JWTConfig{Secret: "router-test-secret", ExpiryMinutes: 5},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET"}},
		Cleanup: config.CleanupConfig{ResetTokenTTL: time.Hour},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &testServer{t: t, router: SetupRoutes(ctx, cfg, db, publisher)}
}

func (s *testServer) do(method, path, token string, body any) (int, apiResponse) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("failed encoding body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			s.t.Fatalf("%s %s: failed decoding %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, resp
}

func (s *testServer) expect(method, path, token string, body any, wantStatus int, wantCode string) apiResponse {
	s.t.Helper()

	status, resp := s.do(method, path, token, body)
	if status != wantStatus {
		s.t.Fatalf("%s %s: expected status %d, got %d (%+v)", method, path, wantStatus, status, resp)
	}
	if wantCode != "" && resp.Code != wantCode {
		s.t.Fatalf("%s %s: expected code %s, got %+v", method, path, wantCode, resp)
	}
	return resp
}

type account struct {
	ID    string
	Token string
}

func (s *testServer) signUp(username string) account {
	s.t.Helper()

	email := username + "@example.com"
	resp := s.expect(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username, "email": email, "password": "secret1",
	}, http.StatusCreated, "")

	var registered struct {
		ID string `json:"id"`
	}
	decodeData(s.t, resp, &registered)

	resp = s.expect(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "secret1",
	}, http.StatusOK, "")

	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(s.t, resp, &login)

	return account{ID: registered.ID, Token: login.AccessToken}
}

func decodeData(t *testing.T, resp apiResponse, v any) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, v); err != nil {
		t.Fatalf("failed decoding data %s: %v", resp.Data, err)
	}
}

type page struct {
	Items []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"items"`
	Total        int  `json:"total"`
	PreviousPage *int `json:"previous_page"`
	NextPage     *int `json:"next_page"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthy service, got %d", rec.Code)
	}
}

func TestShareLifecycle(t *testing.T) {
	publisher := &recordingPublisher{}
	s := newTestServer(t, publisher)

	alice := s.signUp("alice")
	bob := s.signUp("bob")
	carol := s.signUp("carol")

	// friend request and acceptance
	s.expect(http.MethodPost, "/api/v1/friends", alice.Token, map[string]string{"user_id": alice.ID}, http.StatusBadRequest, "SELF_FRIEND")
	s.expect(http.MethodPost, "/api/v1/friends", alice.Token, map[string]string{"user_id": bob.ID}, http.StatusCreated, "")
	s.expect(http.MethodPost, "/api/v1/friends", bob.Token, map[string]string{"user_id": alice.ID}, http.StatusConflict, "REQUEST_ALREADY_SENT")

	resp := s.expect(http.MethodGet, "/api/v1/friends/requests", bob.Token, nil, http.StatusOK, "")
	var requests page
	decodeData(t, resp, &requests)
	if len(requests.Items) != 1 || requests.Items[0].Username != "alice" {
		t.Fatalf("expected alice's request, got %+v", requests)
	}

	s.expect(http.MethodPut, "/api/v1/friends/"+bob.ID, alice.Token, nil, http.StatusNotFound, "NO_SUCH_REQUEST")
	s.expect(http.MethodPut, "/api/v1/friends/"+alice.ID, bob.Token, nil, http.StatusOK, "")
	s.expect(http.MethodPost, "/api/v1/friends", alice.Token, map[string]string{"user_id": bob.ID}, http.StatusConflict, "ALREADY_FRIENDS")

	// list with an item
	resp = s.expect(http.MethodPost, "/api/v1/shopping_lists", alice.Token, map[string]string{
		"name": "Groceries", "description": "weekly run",
	}, http.StatusCreated, "")
	var list struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &list)

	s.expect(http.MethodPost, "/api/v1/shopping_lists", alice.Token, map[string]string{"name": "groceries"}, http.StatusConflict, "LIST_EXISTS")
	s.expect(http.MethodPost, "/api/v1/shopping_lists", alice.Token, map[string]string{"name": "bad;name"}, http.StatusBadRequest, "VALIDATION_ERROR")

	itemsPath := "/api/v1/shopping_lists/" + list.ID + "/items"
	s.expect(http.MethodPost, itemsPath, alice.Token, map[string]any{"name": "milk", "quantity": 2, "unit_price": 1.25}, http.StatusCreated, "")
	s.expect(http.MethodPost, itemsPath, alice.Token, map[string]any{"name": "Milk", "quantity": 1, "unit_price": 1}, http.StatusConflict, "ITEM_EXISTS")
	s.expect(http.MethodPost, itemsPath, alice.Token, map[string]any{"name": "eggs", "quantity": 0, "unit_price": 1}, http.StatusBadRequest, "VALIDATION_ERROR")

	// not shared yet
	s.expect(http.MethodGet, "/api/v1/shopping_lists/"+list.ID, bob.Token, nil, http.StatusForbidden, "FORBIDDEN")

	// sharing
	s.expect(http.MethodPost, "/api/v1/shopping_lists/share", alice.Token, map[string]string{"list_id": list.ID, "friend_id": carol.ID}, http.StatusForbidden, "NOT_FRIENDS")
	s.expect(http.MethodPost, "/api/v1/shopping_lists/share", bob.Token, map[string]string{"list_id": list.ID, "friend_id": alice.ID}, http.StatusForbidden, "LIST_NOT_OWNED")
	s.expect(http.MethodPost, "/api/v1/shopping_lists/share", alice.Token, map[string]string{"list_id": list.ID, "friend_id": bob.ID}, http.StatusCreated, "")
	s.expect(http.MethodPost, "/api/v1/shopping_lists/share", alice.Token, map[string]string{"list_id": list.ID, "friend_id": bob.ID}, http.StatusConflict, "ALREADY_SHARED")

	resp = s.expect(http.MethodGet, "/api/v1/shopping_lists/share", bob.Token, nil, http.StatusOK, "")
	var shared page
	decodeData(t, resp, &shared)
	if len(shared.Items) != 1 || shared.Items[0].ID != list.ID {
		t.Fatalf("expected shared list, got %+v", shared)
	}

	resp = s.expect(http.MethodGet, "/api/v1/shopping_lists/share/"+list.ID+"/items", bob.Token, nil, http.StatusOK, "")
	var items page
	decodeData(t, resp, &items)
	if len(items.Items) != 1 || items.Items[0].Name != "milk" {
		t.Fatalf("expected shared items, got %+v", items)
	}

	s.expect(http.MethodGet, "/api/v1/shopping_lists/"+list.ID, bob.Token, nil, http.StatusOK, "")
	s.expect(http.MethodPut, "/api/v1/shopping_lists/"+list.ID, bob.Token, map[string]string{"name": "Mine"}, http.StatusForbidden, "FORBIDDEN")
	s.expect(http.MethodGet, itemsPath, carol.Token, nil, http.StatusForbidden, "FORBIDDEN")

	// unfriending revokes the share
	s.expect(http.MethodDelete, "/api/v1/friends/"+bob.ID, alice.Token, nil, http.StatusOK, "")
	s.expect(http.MethodDelete, "/api/v1/friends/"+bob.ID, alice.Token, nil, http.StatusNotFound, "NOT_FRIENDS")
	s.expect(http.MethodGet, "/api/v1/shopping_lists/share", bob.Token, nil, http.StatusNotFound, "EMPTY_RESULT")
	s.expect(http.MethodGet, "/api/v1/shopping_lists/"+list.ID, bob.Token, nil, http.StatusForbidden, "FORBIDDEN")

	wantEvents := []notify.EventType{notify.FriendRequestSent, notify.FriendRequestAccepted, notify.ListShared}
	if len(publisher.events) != len(wantEvents) {
		t.Fatalf("expected %d notifications, got %+v", len(wantEvents), publisher.events)
	}
	for i, want := range wantEvents {
		if publisher.events[i].Type != want {
			t.Fatalf("expected event %d to be %s, got %s", i, want, publisher.events[i].Type)
		}
	}
}

func TestUnshare(t *testing.T) {
	s := newTestServer(t, nil)

	alice := s.signUp("alice")
	bob := s.signUp("bob")

	s.expect(http.MethodPost, "/api/v1/friends", alice.Token, map[string]string{"user_id": bob.ID}, http.StatusCreated, "")
	s.expect(http.MethodPut, "/api/v1/friends/"+alice.ID, bob.Token, nil, http.StatusOK, "")

	resp := s.expect(http.MethodPost, "/api/v1/shopping_lists", alice.Token, map[string]string{"name": "Party"}, http.StatusCreated, "")
	var list struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &list)

	s.expect(http.MethodPost, "/api/v1/shopping_lists/share", alice.Token, map[string]string{"list_id": list.ID, "friend_id": bob.ID}, http.StatusCreated, "")

	// the recipient leaves the share by naming the owner
	s.expect(http.MethodDelete, "/api/v1/shopping_lists/share/"+list.ID, bob.Token, map[string]string{"friend_id": alice.ID}, http.StatusOK, "")
	s.expect(http.MethodDelete, "/api/v1/shopping_lists/share/"+list.ID, bob.Token, map[string]string{"friend_id": alice.ID}, http.StatusNotFound, "NOT_SHARED")

	// self-targeted unshare removes every share the owner participates in
	s.expect(http.MethodPost, "/api/v1/shopping_lists/share", alice.Token, map[string]string{"list_id": list.ID, "friend_id": bob.ID}, http.StatusCreated, "")
	s.expect(http.MethodDelete, "/api/v1/shopping_lists/share/"+list.ID, alice.Token, map[string]string{"friend_id": alice.ID}, http.StatusOK, "")
	s.expect(http.MethodGet, "/api/v1/shopping_lists/"+list.ID, bob.Token, nil, http.StatusForbidden, "FORBIDDEN")

	s.expect(http.MethodDelete, "/api/v1/shopping_lists/share/00000000-0000-0000-0000-000000000001", alice.Token, map[string]string{"friend_id": bob.ID}, http.StatusNotFound, "NO_SUCH_LIST")
}

func TestAuthenticationAndAdmin(t *testing.T) {
	s := newTestServer(t, nil)
	alice := s.signUp("alice")

	s.expect(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice2", "email": "ALICE@example.com", "password": "secret1",
	}, http.StatusConflict, "USER_EXISTS")
	s.expect(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	}, http.StatusUnauthorized, "INVALID_CREDENTIALS")

	s.expect(http.MethodGet, "/api/v1/shopping_lists", "", nil, http.StatusUnauthorized, "TOKEN_MISSING")
	s.expect(http.MethodGet, "/api/v1/shopping_lists", "not-a-jwt", nil, http.StatusUnauthorized, "TOKEN_INVALID")
	s.expect(http.MethodGet, "/api/v1/admin/users", alice.Token, nil, http.StatusForbidden, "ADMIN_REQUIRED")

	s.expect(http.MethodGet, "/api/v1/users/not-a-uuid", alice.Token, nil, http.StatusBadRequest, "INVALID_ID")
	s.expect(http.MethodGet, "/api/v1/users/"+alice.ID, alice.Token, nil, http.StatusOK, "")

	// a deleted account's token stops working
	s.expect(http.MethodDelete, "/api/v1/users/"+alice.ID, alice.Token, nil, http.StatusOK, "")
	s.expect(http.MethodGet, "/api/v1/shopping_lists", alice.Token, nil, http.StatusUnauthorized, "TOKEN_INVALID")
}

func TestPaginationAndSearch(t *testing.T) {
	s := newTestServer(t, nil)
	alice := s.signUp("alice")

	for _, name := range []string{"Bakery", "Apples", "Cheese"} {
		s.expect(http.MethodPost, "/api/v1/shopping_lists", alice.Token, map[string]string{"name": name}, http.StatusCreated, "")
	}

	resp := s.expect(http.MethodGet, "/api/v1/shopping_lists?page=2&limit=1", alice.Token, nil, http.StatusOK, "")
	var lists page
	decodeData(t, resp, &lists)
	if len(lists.Items) != 1 || lists.Items[0].Name != "Bakery" || lists.Total != 3 {
		t.Fatalf("expected second list by name, got %+v", lists)
	}
	if lists.PreviousPage == nil || *lists.PreviousPage != 1 || lists.NextPage == nil || *lists.NextPage != 3 {
		t.Fatalf("unexpected page links %+v", lists)
	}

	resp = s.expect(http.MethodGet, "/api/v1/shopping_lists?q=ES", alice.Token, nil, http.StatusOK, "")
	decodeData(t, resp, &lists)
	if len(lists.Items) != 2 || lists.Items[0].Name != "Apples" || lists.Items[1].Name != "Cheese" {
		t.Fatalf("expected case-insensitive search results, got %+v", lists)
	}

	s.expect(http.MethodGet, "/api/v1/shopping_lists?page=9", alice.Token, nil, http.StatusNotFound, "EMPTY_RESULT")
	s.expect(http.MethodGet, "/api/v1/shopping_lists?page=abc", alice.Token, nil, http.StatusBadRequest, "INVALID_PAGINATION")
	s.expect(http.MethodGet, "/api/v1/shopping_lists?limit=0", alice.Token, nil, http.StatusBadRequest, "INVALID_PAGINATION")
	s.expect(http.MethodGet, "/api/v1/shopping_lists?limit=101", alice.Token, nil, http.StatusBadRequest, "INVALID_PAGINATION")
}

func TestPasswordReset(t *testing.T) {
	s := newTestServer(t, nil)
	s.signUp("alice")

	s.expect(http.MethodPost, "/api/v1/auth/reset", "", map[string]string{"email": "nobody@example.com"}, http.StatusNotFound, "NO_SUCH_USER")

	resp := s.expect(http.MethodPost, "/api/v1/auth/reset", "", map[string]string{"email": "alice@example.com"}, http.StatusCreated, "")
	var reset struct {
		Token string `json:"token"`
	}
	decodeData(t, resp, &reset)

	s.expect(http.MethodPut, "/api/v1/auth/password/"+reset.Token, "", map[string]string{"password": "changed1"}, http.StatusOK, "")
	s.expect(http.MethodPut, "/api/v1/auth/password/"+reset.Token, "", map[string]string{"password": "changed2"}, http.StatusNotFound, "RESET_TOKEN_INVALID")

	s.expect(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "alice@example.com", "password": "changed1"}, http.StatusOK, "")
}

func TestItemRoutesResolveListFirst(t *testing.T) {
	s := newTestServer(t, nil)
	alice := s.signUp("alice")
	bob := s.signUp("bob")

	createList := func(token, name string) string {
		resp := s.expect(http.MethodPost, "/api/v1/shopping_lists", token, map[string]string{"name": name}, http.StatusCreated, "")
		var list struct {
			ID string `json:"id"`
		}
		decodeData(t, resp, &list)
		return list.ID
	}

	aliceList := createList(alice.Token, "Pantry")
	bobList := createList(bob.Token, "Garage")

	resp := s.expect(http.MethodPost, "/api/v1/shopping_lists/"+aliceList+"/items", alice.Token,
		map[string]any{"name": "flour", "quantity": 1, "unit_price": 3}, http.StatusCreated, "")
	var item struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &item)

	missingList := "00000000-0000-0000-0000-0000000000aa"

	s.expect(http.MethodGet, "/api/v1/shopping_lists/"+bobList+"/items/"+item.ID, bob.Token, nil, http.StatusNotFound, "ITEM_NOT_FOUND")
	s.expect(http.MethodPut, "/api/v1/shopping_lists/"+bobList+"/items/"+item.ID, bob.Token, map[string]any{"quantity": 5}, http.StatusNotFound, "ITEM_NOT_FOUND")
	s.expect(http.MethodDelete, "/api/v1/shopping_lists/"+bobList+"/items/"+item.ID, bob.Token, nil, http.StatusNotFound, "ITEM_NOT_FOUND")
	s.expect(http.MethodGet, "/api/v1/shopping_lists/"+missingList+"/items/"+item.ID, bob.Token, nil, http.StatusNotFound, "LIST_NOT_FOUND")
	s.expect(http.MethodGet, "/api/v1/shopping_lists/"+missingList+"/items/"+item.ID, alice.Token, nil, http.StatusNotFound, "LIST_NOT_FOUND")
	s.expect(http.MethodGet, "/api/v1/shopping_lists/"+aliceList+"/items/"+item.ID, bob.Token, nil, http.StatusForbidden, "FORBIDDEN")

	// the item is untouched
	s.expect(http.MethodGet, "/api/v1/shopping_lists/"+aliceList+"/items/"+item.ID, alice.Token, nil, http.StatusOK, "")
}
