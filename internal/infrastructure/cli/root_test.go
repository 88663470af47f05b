package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

const forecastBody = `{
  "location": {"name": "Pune", "region": "Maharashtra", "country": "India"},
  "current": {"temp_c": 27.0, "temp_f": 80.6, "wind_mph": 6.9, "wind_dir": "WNW", "humidity": 65, "condition": {"text": "Partly cloudy"}},
  "forecast": {"forecastday": [
    {"date": "2026-10-19", "day": {"maxtemp_c": 30.1, "mintemp_c": 20.2, "avgtemp_c": 24.5, "maxwind_kph": 14.4, "totalprecip_mm": 0.0, "avghumidity": 60, "uv": 7.0, "condition": {"text": "Sunny"}}},
    {"date": "2026-10-20", "day": {"maxtemp_c": 29.0, "mintemp_c": 19.8, "avgtemp_c": 23.9, "maxwind_kph": 12.2, "totalprecip_mm": 1.2, "avghumidity": 70, "uv": 6.0, "condition": {"text": "Patchy rain possible"}}}
  ]}
}`

type env struct {
	dir        string
	configPath string
	serverURL  string
	requests   *int32
}

// newEnv writes a config pointing at a local fake API and returns its paths.
func newEnv(t *testing.T, handler http.HandlerFunc, apiKey string) env {
	t.Helper()
	t.Setenv("API_KEY", "")

	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	config := fmt.Sprintf(`config_format_version: "1"
api:
  base_url: %s/v1
  key: %q
  timeout: 5s
  rate_limit:
    requests_per_second: 0
storage:
  dir: %s
history:
  backend: log
`, srv.URL, apiKey, dir)
	if err := os.WriteFile(configPath, []byte(config), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env{dir: dir, configPath: configPath, serverURL: srv.URL, requests: &requests}
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte(forecastBody))
}

func run(e env, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, Options{ConfigPath: e.configPath, Stdout: &stdout, Stderr: &stderr})
	return code, ansi.Strip(stdout.String()), ansi.Strip(stderr.String())
}

func TestForecastMissThenHit(t *testing.T) {
	e := newEnv(t, okHandler, "test-key")

	code, out, errOut := run(e, "forecast", "pune")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "CURRENT WEATHER |") || !strings.Contains(out, "FORECAST FOR THE NEXT 1 DAYS") {
		t.Errorf("unexpected output:\n%s", out)
	}

	code, out, _ = run(e, "forecast", "PUN")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "Served from cache") {
		t.Errorf("expected cache hit, got:\n%s", out)
	}
	if got := atomic.LoadInt32(e.requests); got != 1 {
		t.Errorf("API requests = %d, want 1", got)
	}

	log, err := os.ReadFile(filepath.Join(e.dir, "weather.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(log)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "**CACHE MISS!**") || !strings.Contains(lines[1], "**CACHE HIT!** User requested for ***PUN***.") {
		t.Errorf("unexpected log:\n%s", log)
	}

	code, out, _ = run(e, "history")
	if code != 0 {
		t.Fatalf("history exit code = %d", code)
	}
	if strings.Index(out, "PUN") > strings.Index(out, "pune") || !strings.Contains(out, "HIT") {
		t.Errorf("unexpected history output:\n%s", out)
	}
}

func TestForecastMultiWordCity(t *testing.T) {
	var gotCity string
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		gotCity = r.URL.Query().Get("q")
		okHandler(w, r)
	}, "test-key")

	if code, _, errOut := run(e, "forecast", "New", "York"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if gotCity != "New York" {
		t.Errorf("q = %q, want %q", gotCity, "New York")
	}
}

func TestForecastNonFatalErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "api error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"error": {"code": 1006, "message": "No matching location found."}}`))
			},
			want: "Error: No matching location found.",
		},
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			want: "Failed to retrieve weather data",
		},
		{
			name: "unexpected shape",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"location": {"name": "Pune"}}`))
			},
			want: "The city you entered does not exist.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, tt.handler, "test-key")
			code, out, _ := run(e, "forecast", "Atlantis")
			if code != 0 {
				t.Fatalf("exit code = %d, want 0", code)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if _, err := os.Stat(filepath.Join(e.dir, "data.json")); !os.IsNotExist(err) {
				t.Errorf("cache must not be written: %v", err)
			}
		})
	}
}

func TestForecastTransportErrorIsFatal(t *testing.T) {
	e := newEnv(t, okHandler, "test-key")
	cfg, err := os.ReadFile(e.configPath)
	if err != nil {
		t.Fatal(err)
	}
	// nothing listens on port 1
	broken := strings.Replace(string(cfg), e.serverURL, "http://127.0.0.1:1", 1)
	if err := os.WriteFile(e.configPath, []byte(broken), 0o600); err != nil {
		t.Fatal(err)
	}

	code, _, errOut := run(e, "forecast", "pune")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1 (stderr: %s)", code, errOut)
	}
}

func TestForecastRateLimitedAcrossRuns(t *testing.T) {
	e := newEnv(t, okHandler, "test-key")
	cfg, err := os.ReadFile(e.configPath)
	if err != nil {
		t.Fatal(err)
	}
	limited := strings.Replace(string(cfg), "requests_per_second: 0", "requests_per_second: 0.001\n    burst: 1", 1)
	if err := os.WriteFile(e.configPath, []byte(limited), 0o600); err != nil {
		t.Fatal(err)
	}

	if code, _, errOut := run(e, "forecast", "pune"); code != 0 {
		t.Fatalf("first run exit code = %d (stderr: %s)", code, errOut)
	}
	code, out, errOut := run(e, "forecast", "paris")
	if code != 0 {
		t.Fatalf("second run exit code = %d (stderr: %s)", code, errOut)
	}
	if !strings.Contains(out, "Too many requests") {
		t.Errorf("expected rate limit message, got:\n%s", out)
	}
	if got := atomic.LoadInt32(e.requests); got != 1 {
		t.Errorf("API requests = %d, want 1", got)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "no command", args: nil, want: []string{"Usage: weathercli [OPTIONS] COMMAND [ARGS]...", "Error: Missing command."}},
		{name: "unknown command", args: []string{"weather"}, want: []string{"Usage:", "Error: No such command 'weather'."}},
		{name: "missing city", args: []string{"forecast"}, want: []string{"Usage: weathercli forecast [OPTIONS] CITY...", "Missing argument 'CITY'"}},
		{name: "blank city", args: []string{"forecast", " "}, want: []string{"Missing argument 'CITY'"}},
		{name: "unknown flag", args: []string{"history", "--bogus"}, want: []string{"Usage: weathercli history [OPTIONS]", "unknown flag: --bogus"}},
		{name: "extra argument", args: []string{"about", "now"}, want: []string{"Got unexpected extra argument (now)"}},
		{name: "help command", args: []string{"help"}, want: []string{"Usage: weathercli [OPTIONS] COMMAND [ARGS]...", "Error: No such command 'help'."}},
		{name: "help command with topic", args: []string{"help", "forecast"}, want: []string{"Error: No such command 'help'."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, okHandler, "test-key")
			code, _, errOut := run(e, append([]string{}, tt.args...)...)
			if code != 2 {
				t.Fatalf("exit code = %d, want 2", code)
			}
			for _, s := range tt.want {
				if !strings.Contains(errOut, s) {
					t.Errorf("stderr missing %q:\n%s", s, errOut)
				}
			}
			if got := atomic.LoadInt32(e.requests); got != 0 {
				t.Errorf("usage error made %d API requests", got)
			}
			if _, err := os.Stat(filepath.Join(e.dir, "weather.log")); !os.IsNotExist(err) {
				t.Error("usage errors must not be recorded in history")
			}
		})
	}
}

func TestMissingAPIKeyIsFatal(t *testing.T) {
	e := newEnv(t, okHandler, "")
	code, _, errOut := run(e, "forecast", "pune")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut, "API_KEY is not set") {
		t.Errorf("unexpected stderr: %s", errOut)
	}
}

func TestAboutAndVersion(t *testing.T) {
	e := newEnv(t, okHandler, "")

	code, out, _ := run(e, "about")
	if code != 0 || !strings.Contains(out, "ABOUT WEATHER CLI") {
		t.Errorf("about: code=%d output:\n%s", code, out)
	}

	code, out, _ = run(e, "version")
	if code != 0 || !strings.Contains(out, "weathercli version") {
		t.Errorf("version: code=%d output:\n%s", code, out)
	}
}

func TestHistoryEmpty(t *testing.T) {
	e := newEnv(t, okHandler, "test-key")
	code, out, _ := run(e, "history", "--limit", "5")
	if code != 0 || !strings.Contains(out, "No lookups recorded yet.") {
		t.Errorf("code=%d output:\n%s", code, out)
	}
}

func TestHistoryStrict(t *testing.T) {
	e := newEnv(t, okHandler, "test-key")
	if err := os.WriteFile(filepath.Join(e.dir, "weather.log"), []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, _ := run(e, "history")
	if code != 0 || !strings.Contains(out, "1 malformed history line(s) skipped.") {
		t.Errorf("lenient: code=%d output:\n%s", code, out)
	}

	code, _, errOut := run(e, "history", "--strict")
	if code != 1 || !strings.Contains(errOut, "malformed") {
		t.Errorf("strict: code=%d stderr:\n%s", code, errOut)
	}
}

func TestDoctor(t *testing.T) {
	e := newEnv(t, okHandler, "")
	code, out, _ := run(e, "doctor")
	if code != 1 {
		t.Errorf("exit code = %d, want 1 when the API key is missing", code)
	}
	if !strings.Contains(out, "[ERROR] API key") || !strings.Contains(out, "[OK] Config file") {
		t.Errorf("unexpected doctor output:\n%s", out)
	}
}
