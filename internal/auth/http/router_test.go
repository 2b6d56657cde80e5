package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	authhttp "sitehost/internal/auth/http"
	"sitehost/internal/auth/service"
	"sitehost/internal/common/clock"
	commoncrypto "sitehost/internal/common/crypto"
	"sitehost/internal/common/logger"
	userrepo "sitehost/internal/user/repository"
)

const testJWTSecret = "test-secret-key-must-be-at-least-32-bytes-long"

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

type meResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupHandler(t *testing.T) http.Handler {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	repo := userrepo.NewFileRepository(filepath.Join(t.TempDir(), "users.json"))
	hasher := &commoncrypto.BcryptHasher{}
	idGen := commoncrypto.NewUUIDGenerator()
	clk := clock.NewRealClock()
	issuer := service.NewTokenIssuer(testJWTSecret, 7*24*time.Hour, clk)
	svc := service.NewAuthService(repo, hasher, idGen, issuer, clk, log)

	return authhttp.NewHandler(svc, testJWTSecret, log)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getMe(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthHTTP_RegisterWhoAmIDuplicateScenario(t *testing.T) {
	h := setupHandler(t)

	rec := postJSON(t, h, "/api/register", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var reg authResponse
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if reg.Token == "" {
		t.Error("expected non-empty token")
	}
	if reg.User.Email != "a@x.com" {
		t.Errorf("expected user.email a@x.com, got %s", reg.User.Email)
	}

	rec = getMe(h, reg.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var me meResponse
	if err := json.NewDecoder(rec.Body).Decode(&me); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if me.ID != reg.User.ID {
		t.Errorf("expected id %s, got %s", reg.User.ID, me.ID)
	}
	if me.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %s", me.Email)
	}
	if me.CreatedAt.IsZero() {
		t.Error("expected createdAt timestamp")
	}

	rec = postJSON(t, h, "/api/register", map[string]string{
		"email":    "a@x.com",
		"password": "other2pass",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register: expected 409, got %d", rec.Code)
	}
}

func TestAuthHTTP_Register_DuplicateEmailCaseVariation(t *testing.T) {
	h := setupHandler(t)

	rec := postJSON(t, h, "/api/register", map[string]string{
		"email":    "a@b.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", rec.Code)
	}

	rec = postJSON(t, h, "/api/register", map[string]string{
		"email":    "A@B.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for case-variant duplicate, got %d", rec.Code)
	}
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Code != "USER_EXISTS" {
		t.Errorf("expected code USER_EXISTS, got %s", env.Code)
	}
}

func TestAuthHTTP_Register_MissingFields(t *testing.T) {
	h := setupHandler(t)

	rec := postJSON(t, h, "/api/register", map[string]string{"email": "a@x.com"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Code != "MISSING_FIELDS" {
		t.Errorf("expected code MISSING_FIELDS, got %s", env.Code)
	}
}

func TestAuthHTTP_Register_InvalidJSON(t *testing.T) {
	h := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHTTP_LoginFailuresIndistinguishable(t *testing.T) {
	h := setupHandler(t)

	rec := postJSON(t, h, "/api/register", map[string]string{
		"email":    "known@x.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", rec.Code)
	}

	unknown := postJSON(t, h, "/api/login", map[string]string{
		"email":    "unknown@x.com",
		"password": "secret1",
	})
	wrongPassword := postJSON(t, h, "/api/login", map[string]string{
		"email":    "known@x.com",
		"password": "wrong",
	})

	if unknown.Code != http.StatusUnauthorized {
		t.Errorf("unknown email: expected 401, got %d", unknown.Code)
	}
	if wrongPassword.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", wrongPassword.Code)
	}
	if unknown.Body.String() != wrongPassword.Body.String() {
		t.Errorf("expected identical bodies, got %q and %q",
			unknown.Body.String(), wrongPassword.Body.String())
	}
}

func TestAuthHTTP_LoginAfterRegister_SameSubject(t *testing.T) {
	h := setupHandler(t)

	rec := postJSON(t, h, "/api/register", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", rec.Code)
	}
	var reg authResponse
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = postJSON(t, h, "/api/login", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login authResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if login.User.ID != reg.User.ID {
		t.Errorf("expected same user id, got %s and %s", reg.User.ID, login.User.ID)
	}
	if login.Token == "" {
		t.Error("expected non-empty token")
	}
}

func TestAuthHTTP_ResponsesNeverContainHash(t *testing.T) {
	h := setupHandler(t)

	rec := postJSON(t, h, "/api/register", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
		"name":     "Alice",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") ||
		strings.Contains(rec.Body.String(), "$2a$") {
		t.Errorf("register response leaks password material: %s", rec.Body.String())
	}

	var reg authResponse
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = getMe(h, reg.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") ||
		strings.Contains(rec.Body.String(), "$2a$") {
		t.Errorf("me response leaks password material: %s", rec.Body.String())
	}
}

func TestAuthHTTP_Me_Unauthorized(t *testing.T) {
	h := setupHandler(t)

	testCases := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"malformed token", "garbage"},
		{"unsigned token", "eyJhbGciOiJub25lIn0.eyJzdWIiOiJ4In0."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := getMe(h, tc.token)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthHTTP_Me_TokenOutlivedAccount(t *testing.T) {
	log, _ := logger.New("", "test", "error")
	path := filepath.Join(t.TempDir(), "users.json")
	repo := userrepo.NewFileRepository(path)
	hasher := &commoncrypto.BcryptHasher{}
	idGen := commoncrypto.NewUUIDGenerator()
	clk := clock.NewRealClock()
	issuer := service.NewTokenIssuer(testJWTSecret, 7*24*time.Hour, clk)
	svc := service.NewAuthService(repo, hasher, idGen, issuer, clk, log)
	h := authhttp.NewHandler(svc, testJWTSecret, log)

	rec := postJSON(t, h, "/api/register", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", rec.Code)
	}
	var reg authResponse
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// External truncation of the backing file: the account is gone but
	// the token is still cryptographically valid.
	if err := repo.SaveAll(context.Background(), nil); err != nil {
		t.Fatalf("truncate collection: %v", err)
	}

	rec = getMe(h, reg.Token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestAuthHTTP_MethodNotAllowed(t *testing.T) {
	h := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/register", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
