package server

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-sphere-raycaster/pkg/scene"
)

func get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewServer(0).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, "/api/scenes")

	var scenes []scene.SceneInfo
	if err := json.NewDecoder(rec.Body).Decode(&scenes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(scenes) != len(scene.ListBuiltinScenes()) {
		t.Errorf("expected %d scenes, got %d", len(scene.ListBuiltinScenes()), len(scenes))
	}
}

func TestHandleRender(t *testing.T) {
	rec := get(t, "/api/render?scene=default&width=16&height=12")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %s", ct)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 12 {
		t.Errorf("expected 16x12 image, got %v", img.Bounds())
	}
	if rec.Header().Get("X-Render-Error-Pixels") != "0" {
		t.Errorf("expected no error pixels, got %s", rec.Header().Get("X-Render-Error-Pixels"))
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"unknown scene", "/api/render?scene=nonexistent&width=8&height=8"},
		{"width not a number", "/api/render?width=abc"},
		{"width too large", "/api/render?width=5000"},
		{"zero height", "/api/render?height=0"},
		{"depth too large", "/api/render?maxDepth=1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleRenderStream(t *testing.T) {
	rec := get(t, "/api/render/stream?scene=glass&width=8&height=8")
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %s", ct)
	}

	events := parseSSE(t, rec.Body.String())
	if len(events) == 0 {
		t.Fatal("expected events")
	}

	last := events[len(events)-1]
	if last.event != "complete" {
		t.Fatalf("expected final complete event, got %s: %s", last.event, last.data)
	}

	var complete RenderComplete
	if err := json.Unmarshal([]byte(last.data), &complete); err != nil {
		t.Fatalf("decode complete event: %v", err)
	}
	if complete.Stats.TotalPixels != 64 {
		t.Errorf("expected 64 pixels, got %d", complete.Stats.TotalPixels)
	}

	raw, err := base64.StdEncoding.DecodeString(complete.ImageData)
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Errorf("complete event does not carry a PNG: %v", err)
	}

	hasConsole := false
	for _, e := range events {
		if e.event == "console" {
			hasConsole = true
		}
	}
	if !hasConsole {
		t.Error("expected console events from the render logger")
	}
}

func TestHandleRenderStream_BadRequest(t *testing.T) {
	rec := get(t, "/api/render/stream?scene=nonexistent")
	events := parseSSE(t, rec.Body.String())
	if len(events) != 1 || events[0].event != "error" {
		t.Errorf("expected a single error event, got %+v", events)
	}
}

func TestHandleInspect(t *testing.T) {
	// Pixel (4,4) of a 9x9 default render looks at the cyan sphere
	rec := get(t, "/api/inspect?scene=default&width=9&height=9&x=4&y=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !response.Hit || response.Index != 0 {
		t.Fatalf("expected a hit on sphere 0, got %+v", response)
	}
	if response.Surface != "opaque" || response.Distance <= 0 {
		t.Errorf("incomplete hit description %+v", response)
	}
	if !strings.HasPrefix(response.Color, "#") || len(response.Color) != 7 {
		t.Errorf("unexpected color %q", response.Color)
	}
}

func TestHandleInspect_Miss(t *testing.T) {
	// Corner pixels of the default scene see only background
	rec := get(t, "/api/inspect?scene=default&width=9&height=9&x=0&y=0")

	var response InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if response.Hit || response.Index != -1 {
		t.Errorf("expected a miss, got %+v", response)
	}
}

func TestHandleInspect_BadCoordinates(t *testing.T) {
	tests := []string{
		"/api/inspect?width=8&height=8&x=abc&y=0",
		"/api/inspect?width=8&height=8&x=0",
		"/api/inspect?width=8&height=8&x=8&y=0",
		"/api/inspect?width=8&height=8&x=0&y=-1",
	}

	for _, target := range tests {
		if rec := get(t, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

type sseEvent struct {
	event string
	data  string
}

func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	var current sseEvent

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.data = strings.TrimPrefix(line, "data: ")
		case line == "" && current.event != "":
			events = append(events, current)
			current = sseEvent{}
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return events
}
