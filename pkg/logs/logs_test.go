package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecnhealth/clinic_console/config"
)

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelInfo}),
	}}

	slog.New(h).Info("hello", "key", "value")

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), `"msg":"hello"`) {
			t.Errorf("%s handler did not receive the record: %q", name, buf.String())
		}
		if !strings.Contains(buf.String(), `"key":"value"`) {
			t.Errorf("%s handler missing attrs: %q", name, buf.String())
		}
	}
}

func TestMultiHandlerRespectsPerHandlerLevels(t *testing.T) {
	var debugOut, errorOut bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&debugOut, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errorOut, &slog.HandlerOptions{Level: slog.LevelError}),
	}}

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled(debug) = false, want true while any handler accepts it")
	}

	slog.New(h).Debug("quiet")

	if !strings.Contains(debugOut.String(), "quiet") {
		t.Errorf("debug handler did not receive the record: %q", debugOut.String())
	}
	if errorOut.Len() != 0 {
		t.Errorf("error-level handler received a debug record: %q", errorOut.String())
	}
}

func TestMultiHandlerWithAttrs(t *testing.T) {
	var a, b bytes.Buffer
	base := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	}}

	slog.New(base.WithAttrs([]slog.Attr{slog.String("env", "test")})).Info("tagged")

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), `"env":"test"`) {
			t.Errorf("%s handler missing WithAttrs attribute: %q", name, buf.String())
		}
	}
}

func TestNewFansOutToFileAndLoki(t *testing.T) {
	var pushes [][]byte
	lokiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/loki/api/v1/push" {
			t.Errorf("path = %q, want /loki/api/v1/push", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		pushes = append(pushes, body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer lokiSrv.Close()

	logPath := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{}
	cfg.Server.Environment = "production"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Logging.Output.File.Enabled = true
	cfg.Logging.Output.File.Path = logPath
	cfg.Logging.Output.Loki.Enabled = true
	cfg.Logging.Output.Loki.Endpoint = lokiSrv.URL
	cfg.Observability.ServiceName = "clinic_console"

	New(cfg).Info("fan out check")

	fileContent, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(fileContent), "fan out check") {
		t.Errorf("file output missing record: %q", fileContent)
	}

	if len(pushes) != 1 {
		t.Fatalf("loki received %d pushes, want 1", len(pushes))
	}
	var payload struct {
		Streams []struct {
			Stream map[string]string `json:"stream"`
			Values [][]string        `json:"values"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(pushes[0], &payload); err != nil {
		t.Fatalf("loki push is not valid JSON: %v", err)
	}
	if len(payload.Streams) != 1 || len(payload.Streams[0].Values) != 1 {
		t.Fatalf("unexpected push shape: %s", pushes[0])
	}
	if !strings.Contains(payload.Streams[0].Values[0][1], "fan out check") {
		t.Errorf("loki line missing record: %q", payload.Streams[0].Values[0][1])
	}
	if payload.Streams[0].Stream["service"] != "clinic_console" {
		t.Errorf("stream labels = %v, want service=clinic_console", payload.Streams[0].Stream)
	}
}
