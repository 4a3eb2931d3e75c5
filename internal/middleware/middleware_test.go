package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"shopping-list-api/internal/auth"
	"shopping-list-api/internal/config"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type resolverFunc func(ctx context.Context, header string) (*auth.Identity, error)

func (f resolverFunc) Resolve(ctx context.Context, header string) (*auth.Identity, error) {
	return f(ctx, header)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed decoding response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	resolver := resolverFunc(func(_ context.Context, header string) (*auth.Identity, error) {
		switch header {
		case "":
			return nil, appErrors.ErrTokenMissing
		case "Bearer good":
			return &auth.Identity{UserID: userID}, nil
		default:
			return nil, appErrors.ErrTokenInvalid
		}
	})

	router := gin.New()
	router.GET("/me", AuthMiddleware(resolver), func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})

	testCases := []struct {
		name     string
		header   string
		wantCode int
		wantErr  string
	}{
		{name: "missing", header: "", wantCode: http.StatusUnauthorized, wantErr: "TOKEN_MISSING"},
		{name: "invalid", header: "Bearer bad", wantCode: http.StatusUnauthorized, wantErr: "TOKEN_INVALID"},
		{name: "valid", header: "Bearer good", wantCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}
			if tc.wantErr != "" {
				if resp := decode(t, rec); resp.Code != tc.wantErr {
					t.Fatalf("expected code %s, got %+v", tc.wantErr, resp)
				}
				return
			}
			if rec.Body.String() != userID.String() {
				t.Fatalf("expected user id in body, got %q", rec.Body.String())
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	for _, admin := range []bool{false, true} {
		router := gin.New()
		router.GET("/admin",
			func(c *gin.Context) { c.Set(identityKey, &auth.Identity{UserID: uuid.New(), Admin: admin}) },
			AdminOnly(),
			func(c *gin.Context) { c.Status(http.StatusNoContent) },
		)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

		if admin && rec.Code != http.StatusNoContent {
			t.Fatalf("expected admin through, got %d", rec.Code)
		}
		if !admin {
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
			if resp := decode(t, rec); resp.Code != "ADMIN_REQUIRED" {
				t.Fatalf("expected ADMIN_REQUIRED, got %+v", resp)
			}
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := gin.New()
	router.Use(RateLimitMiddleware(ctx, config.RateLimitConfig{GeneralRPS: 0.001, GeneralBurst: 2}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for range 3 {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, last.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected two requests then a rejection, got %v", codes)
	}
	if body := decode(t, last); body.Code != "RATE_LIMITED" {
		t.Fatalf("expected RATE_LIMITED, got %+v", body)
	}
	retryAfter, err := strconv.Atoi(last.Header().Get("Retry-After"))
	if err != nil || retryAfter < 1 {
		t.Fatalf("expected a positive Retry-After, got %q", last.Header().Get("Retry-After"))
	}
}

func TestRateLimiterRejectionKeepsTokens(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 1, 1)
	now := time.Now()

	if ok, _ := rl.allow("10.0.0.1", now); !ok {
		t.Fatal("expected first request to pass")
	}
	ok, wait := rl.allow("10.0.0.1", now)
	if ok || wait <= 0 {
		t.Fatalf("expected rejection with a wait, got ok=%v wait=%s", ok, wait)
	}
	if ok, _ := rl.allow("10.0.0.1", now.Add(time.Second)); !ok {
		t.Fatal("expected a rejected request not to delay the next token")
	}
}

func TestEvictIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 1, 1)
	rl.getLimiter("10.0.0.1").Allow()
	rl.getLimiter("10.0.0.2")

	rl.evictIdle(time.Now())
	if _, ok := rl.limiters["10.0.0.2"]; ok {
		t.Fatal("expected full limiter to be evicted")
	}

	rl.evictIdle(time.Now().Add(time.Minute))
	if len(rl.limiters) != 0 {
		t.Fatalf("expected all limiters evicted, got %d", len(rl.limiters))
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		if GetRequestID(c) != c.Writer.Header().Get(RequestIDHeader) {
			t.Errorf("expected context and header request ids to match")
		}
		c.String(http.StatusOK, GetRequestID(c))
	})

	tests := []struct {
		name     string
		header   string
		wantEcho bool
	}{
		{name: "client id reused", header: "abc-123", wantEcho: true},
		{name: "missing id generated"},
		{name: "unsafe id replaced", header: "bad id\n"},
		{name: "oversized id replaced", header: strings.Repeat("a", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if tt.wantEcho {
				if rec.Body.String() != tt.header || rec.Header().Get(RequestIDHeader) != tt.header {
					t.Fatalf("expected request id to propagate, got body %q header %q", rec.Body.String(), rec.Header().Get(RequestIDHeader))
				}
				return
			}
			if _, err := uuid.Parse(rec.Body.String()); err != nil {
				t.Fatalf("expected generated uuid, got %q", rec.Body.String())
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestSizeLimitMiddleware(4))
	router.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			RespondTooLarge(c)
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name    string
		body    string
		chunked bool
		want    int
	}{
		{name: "within limit", body: "abcd", want: http.StatusOK},
		{name: "declared too large", body: "abcdefghij", want: http.StatusRequestEntityTooLarge},
		{name: "undeclared overrun", body: "abcdefghij", chunked: true, want: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.chunked {
				req.ContentLength = -1
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware(&config.CORSConfig{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: true,
	}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://client.test")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected preflight to succeed, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("expected credentials to be disabled for wildcard origins, got %q", got)
	}
	if !strings.Contains(strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers")), "authorization") {
		t.Fatalf("expected authorization header to be allowed, got %q", rec.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	for _, production := range []bool{false, true} {
		router := gin.New()
		router.Use(SecurityHeadersMiddleware(production))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Header().Get("X-Content-Type-Options") != "nosniff" || rec.Header().Get("Cache-Control") != "no-store" {
			t.Fatalf("expected api security headers, got %v", rec.Header())
		}
		if hsts := rec.Header().Get("Strict-Transport-Security"); (hsts != "") != production {
			t.Fatalf("production=%v: unexpected HSTS header %q", production, hsts)
		}
	}
}
