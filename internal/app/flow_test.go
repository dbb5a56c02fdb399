//go:build e2e

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/healthtrack-backend/internal/config"
	usersvc "github.com/heartmarshall/healthtrack-backend/internal/service/user"
	"github.com/heartmarshall/healthtrack-backend/internal/transport/middleware"
)

type testServer struct {
	*httptest.Server
	promote func(t *testing.T, email string)
}

type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Server: config.ServerConfig{MaxBodyBytes: 1 << 20},
		Auth: config.AuthConfig{
			JWTSecret:       "e2e-secret-that-is-long-enough-for-hs256",
			JWTIssuer:       "healthtrack-e2e",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
			BcryptCost:      4,
			MinPasswordLen:  8,
		},
		CORS: config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS"},
		Insights: config.InsightsConfig{
			VitalsLimit:      500,
			WorkoutsLimit:    500,
			SleepLimit:       200,
			MealsLimit:       500,
			TrendDaysDefault: 30,
			TrendDaysMin:     7,
			TrendDaysMax:     60,
		},
		Metrics: config.MetricsConfig{Enabled: false},
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	srv := httptest.NewServer(newHandler(cfg, logger, pool, nil, limiter))
	t.Cleanup(srv.Close)

	users := usersvc.NewService(logger, userrepo.New(pool), token.New(pool), nil)
	return &testServer{
		Server: srv,
		promote: func(t *testing.T, email string) {
			t.Helper()
			_, err := users.Promote(context.Background(), email)
			require.NoError(t, err)
		},
	}
}

func (ts *testServer) do(t *testing.T, method, path, accessToken string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp.StatusCode, out
}

func (ts *testServer) login(t *testing.T, email, password string) map[string]any {
	t.Helper()
	status, body := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, status, "login: %v", body)
	return body
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}

func TestE2E_TrackingFlow(t *testing.T) {
	ts := setupTestServer(t)

	email := uniqueEmail("flow")
	const password = "correct-horse"

	status, body := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, status, "register: %v", body)
	assert.Equal(t, email, body["email"])

	status, _ = ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": password,
	})
	assert.Equal(t, http.StatusConflict, status)

	session := ts.login(t, email, password)
	access := session["token"].(string)
	require.NotEmpty(t, access)

	for _, hr := range []float64{60, 70, 80} {
		status, body = ts.do(t, http.MethodPost, "/api/vitals", access, map[string]any{
			"heartRate": hr, "systolic": 120, "diastolic": 80,
		})
		require.Equal(t, http.StatusCreated, status, "create vital: %v", body)
	}

	status, body = ts.do(t, http.MethodPost, "/api/workouts", access, map[string]any{
		"type": "run", "durationMin": 30, "calories": 300,
	})
	require.Equal(t, http.StatusCreated, status, "create workout: %v", body)
	workoutID := body["id"].(string)

	status, body = ts.do(t, http.MethodGet, "/api/vitals?limit=2&sort=-heartRate", access, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, body["total"])
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.EqualValues(t, 80, items[0].(map[string]any)["heartRate"])

	status, body = ts.do(t, http.MethodGet, "/api/insights/overview", access, nil)
	require.Equal(t, http.StatusOK, status)
	vitals := body["vitals"].(map[string]any)
	assert.EqualValues(t, 70, vitals["avgHeartRate"])
	workouts := body["workouts"].(map[string]any)
	assert.EqualValues(t, 1, workouts["sessions"])
	assert.EqualValues(t, 30, workouts["totalMinutes"])

	status, body = ts.do(t, http.MethodGet, "/api/insights/trends?limit=7", access, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["heart"].([]any), 1)

	status, _ = ts.do(t, http.MethodDelete, "/api/workouts/"+workoutID, access, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = ts.do(t, http.MethodDelete, "/api/workouts/"+workoutID, access, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = ts.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": session["refreshToken"].(string),
	})
	require.Equal(t, http.StatusOK, status, "refresh: %v", body)
	assert.NotEqual(t, session["refreshToken"], body["refreshToken"])

	status, _ = ts.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": session["refreshToken"].(string),
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestE2E_Isolation(t *testing.T) {
	ts := setupTestServer(t)

	const password = "correct-horse"
	alice, bob := uniqueEmail("alice"), uniqueEmail("bob")
	for _, e := range []string{alice, bob} {
		status, _ := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": e, "password": password})
		require.Equal(t, http.StatusCreated, status)
	}
	aliceToken := ts.login(t, alice, password)["token"].(string)
	bobToken := ts.login(t, bob, password)["token"].(string)

	status, body := ts.do(t, http.MethodPost, "/api/goals", aliceToken, map[string]any{
		"title": "10k steps", "target": 10000,
	})
	require.Equal(t, http.StatusCreated, status, "create goal: %v", body)
	goalID := body["id"].(string)

	status, body = ts.do(t, http.MethodGet, "/api/goals", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["total"])

	status, _ = ts.do(t, http.MethodDelete, "/api/goals/"+goalID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.do(t, http.MethodGet, "/api/goals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestE2E_EventsAndAdmin(t *testing.T) {
	ts := setupTestServer(t)

	const password = "correct-horse"
	email := uniqueEmail("admin")
	status, _ := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, status)

	status, body := ts.do(t, http.MethodPost, "/api/track", "", map[string]any{
		"events": []map[string]any{
			{"event": "page_view", "props": map[string]any{"path": "/"}},
			{"event": "click"},
		},
	})
	require.Equal(t, http.StatusAccepted, status, "track: %v", body)
	assert.EqualValues(t, 2, body["accepted"])

	userToken := ts.login(t, email, password)["token"].(string)
	status, _ = ts.do(t, http.MethodGet, "/api/events", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = ts.do(t, http.MethodGet, "/api/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	ts.promote(t, email)
	adminToken := ts.login(t, email, password)["token"].(string)

	status, body = ts.do(t, http.MethodGet, "/api/events?limit=10", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.GreaterOrEqual(t, body["total"].(float64), float64(2))

	status, body = ts.do(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.GreaterOrEqual(t, body["total"].(float64), float64(1))
}
