package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	auth "github.com/Skotchmaster/marketplace/internal/middleware/auth"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/session"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	A        *AuthHandler
	C        *CartHandler
	P        *ProductHandler
	Guard    *auth.SessionGuard
	DB       *gorm.DB
	Sessions session.Store
}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := session.NewRedisStore(client, "session", time.Hour)
	r := repo.NewGormRepo(db)

	env := &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Sessions: sessions,
	}

	env.A = &AuthHandler{Repo: r, Sessions: sessions}
	env.C = &CartHandler{Repo: r}
	env.P = &ProductHandler{Svc: service.NewProductService(r)}
	env.Guard = &auth.SessionGuard{Sessions: sessions}

	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) doRawRequest(method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)

	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	return msg
}

func registerPayload(username, email string) map[string]string {
	return map[string]string{
		"firstName":       "Alice",
		"lastName":        "Smith",
		"username":        username,
		"email":           email,
		"password":        "p1",
		"confirmPassword": "p1",
	}
}

// login registers a fresh user, logs them in and returns the session
// cookie together with the user's id.
func login(t *testing.T, env *testEnv) (*http.Cookie, uint) {
	t.Helper()

	recReg, cReg := env.doJSONRequest(http.MethodPost, "/api/signin", registerPayload("alice", "alice@example.com"))
	require.NoError(t, env.A.Register(cReg))
	require.Equal(t, http.StatusOK, recReg.Code)

	recLogin, cLogin := env.doJSONRequest(http.MethodPost, "/api/login", map[string]string{
		"username": "alice",
		"password": "p1",
	})
	require.NoError(t, env.A.Login(cLogin))
	require.Equal(t, http.StatusOK, recLogin.Code)

	var cookie *http.Cookie
	for _, ck := range recLogin.Result().Cookies() {
		if ck.Name == session.CookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "expected session cookie on login")

	var user models.User
	require.NoError(t, env.DB.Where("username = ?", "alice").First(&user).Error)

	return cookie, user.ID
}
