package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avelarde/attendctl-go/internal/apiclient"
	"github.com/avelarde/attendctl-go/internal/config"
	"github.com/avelarde/attendctl-go/internal/core/service"
	"github.com/avelarde/attendctl-go/internal/storage"
	"github.com/avelarde/attendctl-go/internal/telemetry/logger"
)

const testPassword = "secret"

// testMetricsPayload mimics the backend exposition endpoint.
const testMetricsPayload = `# HELP biometric_events_total Total biometric events.
# TYPE biometric_events_total counter
biometric_events_total{device="esp32-1"} 42
# HELP esp32_uptime_seconds Device uptime.
# TYPE esp32_uptime_seconds gauge
esp32_uptime_seconds 1024
employee_count 7
`

// roleTokens lets a test force a specific role by signing a claim;
// usernames without an entry get an opaque token.
type backendOptions struct {
	roleClaims map[string]string
}

// newBackend serves the four endpoints the console talks to.
func newBackend(t *testing.T, opts backendOptions) *httptest.Server {
	t.Helper()

	requireBearer := func(w http.ResponseWriter, r *http.Request) bool {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || len(auth) <= len("Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "missing token"})
			return false
		}
		return true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != testPassword {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		token := "tok-" + req.Username
		if role, ok := opts.roleClaims[req.Username]; ok {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub":      "9",
				"username": req.Username,
				"role":     role,
				"exp":      time.Now().Add(time.Hour).Unix(),
			}).SignedString([]byte("backend-key"))
			if err != nil {
				t.Errorf("signing test token: %v", err)
			}
			token = signed
		}
		json.NewEncoder(w).Encode(map[string]string{"token": token})
	})
	mux.HandleFunc("/api/attendance", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id": 1, "employee_name": "Maria Lopez", "event_type": "check_in",
				"event_date": "2026-08-29", "timestamp": "2026-08-29T08:01:00Z",
				"device_id": "esp32-1", "raw_payload": "{}",
			},
			{
				"id": 2, "employee_name": "Ken Watanabe", "event_type": "check_out",
				"event_date": "2026-08-29", "timestamp": "2026-08-29T17:02:00Z",
				"device_id": "esp32-2", "raw_payload": "{}",
			},
		})
	})
	mux.HandleFunc("/api/attendance/stats", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		json.NewEncoder(w).Encode(map[string]int64{
			"total_records": 128, "today_records": 5, "unique_employees": 17,
		})
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, testMetricsPayload)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// testEnv is a fully wired Env backed by a memory store and a mock
// backend, with captured output.
type testEnv struct {
	*Env
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestEnv(t *testing.T, server *httptest.Server) *testEnv {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard})
	store := storage.NewMemoryStore()
	records := storage.NewSessionRecords(store)

	cfg := config.Default()
	cfg.API.BaseURL = server.URL
	cfg.Storage.DataDir = ""

	var sessions *service.SessionService
	client := apiclient.New(server.URL, 5*time.Second, func() string {
		if sessions == nil {
			return ""
		}
		return sessions.Token()
	}, log)
	sessions = service.NewSessionService(records, client, log)
	sessions.Restore(context.Background())

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &testEnv{
		Env: &Env{
			Config:   cfg,
			Logger:   log,
			Store:    store,
			Records:  records,
			Client:   client,
			Sessions: sessions,
			Guard:    service.NewGuard(sessions),
			Super:    NewSupervisor(log, errOut),
			Out:      out,
			ErrOut:   errOut,
		},
		out:    out,
		errOut: errOut,
	}
}

// runCommand executes one attendctl invocation against the env.
func runCommand(env *testEnv, args ...string) error {
	app := App()
	app.Metadata["env"] = env.Env
	app.Writer = env.out
	app.ErrWriter = env.errOut
	return app.Run(append([]string{"attendctl"}, args...))
}

// login is a helper for tests that need an active session.
func login(t *testing.T, env *testEnv, username string) {
	t.Helper()
	if err := runCommand(env, "login", "-u", username, "-p", testPassword); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	env.out.Reset()
	env.errOut.Reset()
}
