package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spa/internal/auth"
	"spa/internal/domain/storage"
	"spa/internal/ratelimiter"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testTokenSecret = "test-secret"

func newTestApplication(t *testing.T, store *memStore) *application {
	t.Helper()

	limits := ratelimiter.Config{RequestsPerTimeFrame: 3, TimeFrame: 15 * time.Minute, Enabled: true}
	return &application{
		config: config{
			env: "test",
			auth: authConfig{
				basic: basicConfig{user: "ops", pass: "ops-pass"},
				token: tokenConfig{secret: testTokenSecret, iss: "spa", aud: "spa"},
			},
			reviews: reviewsConfig{rateLimiter: limits},
		},
		store:         &storage.Container{Reviews: store},
		logger:        zap.NewNop().Sugar(),
		authenticator: auth.NewJWTAuthenticator(testTokenSecret, "spa", "spa"),
		reviewLimiter: ratelimiter.NewFixedWindowLimiter(limits.RequestsPerTimeFrame, limits.TimeFrame),
	}
}

func adminToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "moderator-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iss":  "spa",
		"aud":  "spa",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testTokenSecret))
	require.NoError(t, err)
	return token
}

type requestOption func(r *http.Request)

func withBearer(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withBasic(user, pass string) requestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(user+":"+pass)))
	}
}

func withRemoteAddr(addr string) requestOption {
	return func(r *http.Request) { r.RemoteAddr = addr }
}

func executeRequest(app *application, method, path, body string, opts ...requestOption) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	rr := httptest.NewRecorder()
	app.mount().ServeHTTP(rr, req)
	return rr
}

func executeAdmin(t *testing.T, app *application, method, path, body string) *httptest.ResponseRecorder {
	return executeRequest(app, method, path, body, withBearer(adminToken(t, auth.RoleAdmin)))
}

// decodeData unwraps the {"data": ...} success envelope.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
}

type errorBody struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Errors  []string `json:"errors"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}
