package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contesthub/config"
	"contesthub/db"
	"contesthub/middlewares"
	"contesthub/models"
	"contesthub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// spyStore fails the test when a guarded lookup reaches the store
type spyStore struct {
	*db.MemoryStore
	t *testing.T
}

func (s spyStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.t.Error("ListUsers reached the store without a valid token")
	return s.MemoryStore.ListUsers(ctx)
}

func (s spyStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.t.Error("FindUserByEmail reached the store without a valid token")
	return s.MemoryStore.FindUserByEmail(ctx, email)
}

func (s spyStore) ListContests(ctx context.Context) ([]models.Contest, error) {
	s.t.Error("ListContests reached the store without a valid token")
	return s.MemoryStore.ListContests(ctx)
}

func (s spyStore) ListContestsByCreator(ctx context.Context, email string) ([]models.Contest, error) {
	s.t.Error("ListContestsByCreator reached the store without a valid token")
	return s.MemoryStore.ListContestsByCreator(ctx, email)
}

func newRouter(deps Dependencies) *gin.Engine {
	if deps.Issuer == nil {
		deps.Issuer = utils.NewTokenIssuer("test-secret", 0)
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop().Sugar()
	}
	router := gin.New()
	Register(router, deps)
	return router
}

func issueCookie(t *testing.T, router *gin.Engine, claims string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(claims))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /jwt returned %d: %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.TokenCookieName {
			return c
		}
	}
	t.Fatal("POST /jwt did not set the token cookie")
	return nil
}

func get(router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIssueToken(t *testing.T) {
	issuer := utils.NewTokenIssuer("test-secret", 0)
	router := newRouter(Dependencies{Store: db.NewMemoryStore(), Issuer: issuer})

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"a@x.com","role":"user"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != `{"msg":"Succeed"}` {
		t.Fatalf("Unexpected response %d %s", w.Code, w.Body.String())
	}

	header := w.Header().Get("Set-Cookie")
	for _, attr := range []string{"token=", "Path=/", "HttpOnly", "Secure", "SameSite=None"} {
		if !strings.Contains(header, attr) {
			t.Errorf("Expected %q in Set-Cookie %q", attr, header)
		}
	}
	for _, attr := range []string{"Max-Age", "Expires"} {
		if strings.Contains(header, attr) {
			t.Errorf("Expected a session cookie, got %q", header)
		}
	}

	cookie := w.Result().Cookies()[0]
	claims, err := issuer.Parse(cookie.Value)
	if err != nil {
		t.Fatalf("Issued token does not verify: %v", err)
	}
	if claims["email"] != "a@x.com" || claims["role"] != "user" {
		t.Errorf("Expected caller claims in token, got %v", claims)
	}

	for _, body := range []string{"null", "[1,2]", "{bad"} {
		req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	store := spyStore{MemoryStore: db.NewMemoryStore(), t: t}
	router := newRouter(Dependencies{Store: store})
	foreign, _ := utils.NewTokenIssuer("other", 0).Issue(map[string]interface{}{"email": "a@x.com"})

	for _, path := range []string{"/user/a@x.com", "/users", "/allcontests", "/contests/a@x.com"} {
		w := get(router, path, nil)
		if w.Code != http.StatusUnauthorized || w.Body.String() != `{"message":"No token provided"}` {
			t.Errorf("%s without token: got %d %s", path, w.Code, w.Body.String())
		}

		w = get(router, path, &http.Cookie{Name: utils.TokenCookieName, Value: foreign})
		if w.Code != http.StatusUnauthorized || w.Body.String() != `{"message":"Invalid token"}` {
			t.Errorf("%s with foreign token: got %d %s", path, w.Code, w.Body.String())
		}
	}
}

func TestAuthenticatedRead(t *testing.T) {
	store := db.NewMemoryStore()
	store.CreateUser(context.Background(), &models.User{Name: "A", Email: "a@x.com"})
	router := newRouter(Dependencies{Store: store})

	cookie := issueCookie(t, router, `{"email":"a@x.com"}`)
	w := get(router, "/user/a@x.com", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var user models.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil || user.Name != "A" {
		t.Errorf("Unexpected user %s (%v)", w.Body.String(), err)
	}

	// without RBAC any valid token can list users
	if w := get(router, "/users", cookie); w.Code != http.StatusOK {
		t.Errorf("Expected 200 for /users, got %d", w.Code)
	}
}

func TestPublicRoutes(t *testing.T) {
	router := newRouter(Dependencies{Store: db.NewMemoryStore()})

	for _, path := range []string{"/", "/health", "/totalContest", "/usersAllContest", "/topContest", "/leaderboard", "/allWinsubmission"} {
		if w := get(router, path, nil); w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestRoleGuardedRoutes(t *testing.T) {
	log := zap.NewNop().Sugar()
	store := db.NewMemoryStore()
	store.CreateUser(context.Background(), &models.User{Email: "admin@x.com", Role: "admin"})
	store.CreateUser(context.Background(), &models.User{Email: "user@x.com", Role: "user"})

	enforcer, err := middlewares.NewEnforcer(config.RBACConfig{Enabled: true, PolicyStore: config.PolicyStoreMemory}, "", log)
	if err != nil {
		t.Fatalf("NewEnforcer failed: %v", err)
	}
	router := newRouter(Dependencies{
		Store: store,
		Log:   log,
		Role: func(resource, action string) gin.HandlerFunc {
			return middlewares.RBACMiddleware(enforcer, store, log, resource, action)
		},
	})

	admin := issueCookie(t, router, `{"email":"admin@x.com"}`)
	user := issueCookie(t, router, `{"email":"user@x.com"}`)

	for _, path := range []string{"/users", "/allcontests"} {
		if w := get(router, path, admin); w.Code != http.StatusOK {
			t.Errorf("%s as admin: expected 200, got %d", path, w.Code)
		}
		if w := get(router, path, user); w.Code != http.StatusForbidden {
			t.Errorf("%s as user: expected 403, got %d", path, w.Code)
		}
	}

	// own profile stays reachable for every role
	if w := get(router, "/user/user@x.com", user); w.Code != http.StatusOK {
		t.Errorf("Expected own profile to be readable, got %d", w.Code)
	}
}
