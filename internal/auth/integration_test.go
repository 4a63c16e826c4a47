package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminpkg "github.com/lucky-arya/CSIxMKITOS/internal/admin"
	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	authhandler "github.com/lucky-arya/CSIxMKITOS/internal/auth/handler"
	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	authservice "github.com/lucky-arya/CSIxMKITOS/internal/auth/service"
	sessionstore "github.com/lucky-arya/CSIxMKITOS/internal/auth/store/session"
	"github.com/lucky-arya/CSIxMKITOS/internal/auth/token"
	certhandler "github.com/lucky-arya/CSIxMKITOS/internal/certificate/handler"
	certservice "github.com/lucky-arya/CSIxMKITOS/internal/certificate/service"
	certstore "github.com/lucky-arya/CSIxMKITOS/internal/certificate/store"
	"github.com/lucky-arya/CSIxMKITOS/internal/platform/health"
	rosterhandler "github.com/lucky-arya/CSIxMKITOS/internal/roster/handler"
	rosterservice "github.com/lucky-arya/CSIxMKITOS/internal/roster/service"
	rosterstore "github.com/lucky-arya/CSIxMKITOS/internal/roster/store"
	httptransport "github.com/lucky-arya/CSIxMKITOS/internal/transport/http"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "integration-password"
)

// SetupSuite builds the full portal router over in-memory stores so session
// flows cross the same middleware and handlers as production requests.
func SetupSuite(t *testing.T) (http.Handler, *sessionstore.InMemoryStore, *audit.InMemoryStore) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessions := sessionstore.New()
	auditStore := audit.NewInMemoryStore()
	auditPublisher := audit.NewPublisher(auditStore, audit.WithPublisherLogger(logger))

	authService := authservice.NewService(
		sessions,
		token.NewService("integration-signing-key", time.Hour),
		authservice.Credentials{Username: testAdminUsername, Password: testAdminPassword},
		authservice.WithLogger(logger),
		authservice.WithAuditPublisher(auditPublisher),
	)

	roster := rosterstore.NewMemory()
	rosterService := rosterservice.NewService(roster, rosterservice.WithLogger(logger))

	references := certstore.NewMemory()
	certService := certservice.NewService(references, roster, certservice.WithLogger(logger))

	adminService := adminpkg.NewService(rosterService, certService, auditPublisher,
		adminpkg.WithLogger(logger))

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         logger,
		Sessions:       authService,
		Auth:           authhandler.New(authService, logger, false),
		Certificates:   certhandler.New(certService, logger),
		Roster:         rosterhandler.New(rosterService, logger),
		Admin:          adminpkg.NewHandler(adminService, logger),
		Health:         health.New("test"),
		RequestTimeout: 5 * time.Second,
	})
	return router, sessions, auditStore
}

func postJSON(t *testing.T, router http.Handler, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func getWithCookie(t *testing.T, router http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == models.SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("response did not set a session cookie")
	return nil
}

func TestAdminSessionLifecycle(t *testing.T) {
	router, _, _ := SetupSuite(t)

	// Step 1: login sets the session cookie
	rec := postJSON(t, router, "/api/admin/login", map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)

	// Step 2: the session opens both /admin/me and the gated admin surface
	rec = getWithCookie(t, router, "/api/admin/me", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), testAdminUsername)

	rec = getWithCookie(t, router, "/api/students", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// Step 3: logout revokes the session server-side
	rec = postJSON(t, router, "/api/admin/logout", map[string]string{}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// Step 4: the old cookie no longer opens the gate
	rec = getWithCookie(t, router, "/api/students", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// /admin/me stays a 200 probe; it just reports the session as gone.
	rec = getWithCookie(t, router, "/api/admin/me", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	router, _, auditStore := SetupSuite(t)

	rec := postJSON(t, router, "/api/admin/login", map[string]string{
		"username": testAdminUsername,
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"unauthorized"`)

	events, err := auditStore.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, string(audit.EventAuthFailed), events[0].Action)
}

func TestExpiredSessionIsRejected(t *testing.T) {
	router, sessions, _ := SetupSuite(t)

	rec := postJSON(t, router, "/api/admin/login", map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)

	// Expire every live session behind the cookie's back.
	deleted, err := sessions.DeleteExpired(context.Background(), time.Now().Add(48*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, deleted)

	rec = getWithCookie(t, router, "/api/students", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestConcurrentLoginsCreateIndependentSessions validates that parallel logins
// do not trample each other's session rows.
func TestConcurrentLoginsCreateIndependentSessions(t *testing.T) {
	router, _, _ := SetupSuite(t)
	concurrentRequests := 10
	cookieCh := make(chan *http.Cookie, concurrentRequests)

	payload, err := json.Marshal(map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	})
	require.NoError(t, err)

	for i := 0; i < concurrentRequests; i++ {
		go func() {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			for _, cookie := range rec.Result().Cookies() {
				if cookie.Name == models.SessionCookieName && cookie.Value != "" {
					cookieCh <- cookie
					return
				}
			}
			cookieCh <- nil
		}()
	}

	seen := make(map[string]bool)
	for i := 0; i < concurrentRequests; i++ {
		cookie := <-cookieCh
		require.NotNil(t, cookie)
		seen[cookie.Value] = true

		rec := getWithCookie(t, router, "/api/admin/me", cookie)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Len(t, seen, concurrentRequests, "each login should mint its own session token")
}
