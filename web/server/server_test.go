package server

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

type sseEvent struct {
	Type string
	Data string
}

// parseSSE splits a recorded event stream into events
func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	var current sseEvent
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Type = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.Data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if current.Type != "" {
				events = append(events, current)
			}
			current = sseEvent{}
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Failed to read event stream: %v", err)
	}
	return events
}

func get(t *testing.T, s *Server, path string, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPreviewPage(t *testing.T) {
	rec := get(t, NewServer(0, t.TempDir()), "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected an HTML page, got %q", ct)
	}
	for _, want := range []string{"/api/scenes", "/api/render", "/api/inspect"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("Expected the page to call %s", want)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, NewServer(0, t.TempDir()), "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["status"] != "ok" {
		t.Errorf("Unexpected health response %q (%v)", rec.Body.String(), err)
	}
}

func TestHandleScenes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lone.json"), []byte(`{"name": "Lone Sphere"}`), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	rec := get(t, NewServer(0, dir), "/api/scenes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var response scene.ScenesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(response.Groups) != 2 {
		t.Fatalf("Expected built-in and file groups, got %+v", response.Groups)
	}
	if len(response.Groups[0].Scenes) != len(scene.Names()) {
		t.Errorf("Expected %d built-in scenes, got %d", len(scene.Names()), len(response.Groups[0].Scenes))
	}
	if response.Groups[1].Scenes[0].ID != "file:lone" {
		t.Errorf("Expected scene file ID file:lone, got %q", response.Groups[1].Scenes[0].ID)
	}
}

func TestHandleSceneConfig(t *testing.T) {
	s := NewServer(0, t.TempDir())

	rec := get(t, s, "/api/scene-config", url.Values{"scene": {"default"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Defaults struct {
			Width           int `json:"width"`
			SamplesPerPixel int `json:"samplesPerPixel"`
			MaxDepth        int `json:"maxDepth"`
		} `json:"defaults"`
		PrimitiveCount int `json:"primitiveCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.Defaults.Width != 720 || body.Defaults.SamplesPerPixel != 200 || body.Defaults.MaxDepth != 5 || body.PrimitiveCount != 4 {
		t.Errorf("Unexpected scene config %+v", body)
	}

	if rec := get(t, s, "/api/scene-config", url.Values{"scene": {"cornell-box"}}); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an unknown scene, got %d", rec.Code)
	}
}

func TestHandleRender_StreamsRowsAndImage(t *testing.T) {
	params := url.Values{
		"scene":  {"two-spheres"},
		"width":  {"8"},
		"height": {"6"},
		"spp":    {"2"},
		"depth":  {"3"},
	}
	rec := get(t, NewServer(0, t.TempDir()), "/api/render", params)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected an event stream, got %q", ct)
	}

	events := parseSSE(t, rec.Body.String())

	var rows []int
	var image *ImageUpdate
	var last string
	for _, event := range events {
		switch event.Type {
		case "progress":
			var update ProgressUpdate
			if err := json.Unmarshal([]byte(event.Data), &update); err != nil {
				t.Fatalf("Invalid progress event %q: %v", event.Data, err)
			}
			if update.TotalRows != 6 {
				t.Errorf("Expected 6 total rows, got %d", update.TotalRows)
			}
			rows = append(rows, update.Row)
		case "image":
			image = &ImageUpdate{}
			if err := json.Unmarshal([]byte(event.Data), image); err != nil {
				t.Fatalf("Invalid image event: %v", err)
			}
		case "error":
			t.Fatalf("Unexpected error event: %s", event.Data)
		}
		last = event.Type
	}

	if len(rows) != 6 {
		t.Fatalf("Expected 6 progress events, got %d", len(rows))
	}
	for i, row := range rows {
		if row != i {
			t.Errorf("Expected rows in order, got %v", rows)
			break
		}
	}
	if last != "complete" {
		t.Errorf("Expected the stream to end with complete, got %q", last)
	}

	if image == nil {
		t.Fatal("Missing image event")
	}
	if image.Stats.Width != 8 || image.Stats.Height != 6 || image.Stats.TotalSamples != 8*6*2 {
		t.Errorf("Unexpected stats %+v", image.Stats)
	}

	raw, err := base64.StdEncoding.DecodeString(image.ImageData)
	if err != nil {
		t.Fatalf("Invalid base64 image: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Invalid PNG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("Expected an 8x6 image, got %v", b)
	}
}

func TestHandleRender_Errors(t *testing.T) {
	s := NewServer(0, t.TempDir())

	tests := []struct {
		name   string
		params url.Values
	}{
		{"width too small", url.Values{"width": {"1"}}},
		{"width not a number", url.Values{"width": {"wide"}}},
		{"zero samples", url.Values{"spp": {"0"}}},
		{"unknown scene", url.Values{"scene": {"cornell-box"}}},
		{"escaping scene file", url.Values{"scene": {"file:../secret"}}},
		{"missing scene file", url.Values{"scene": {"file:nothing"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := parseSSE(t, get(t, s, "/api/render", tt.params).Body.String())
			if len(events) != 1 || events[0].Type != "error" {
				t.Errorf("Expected a single error event, got %+v", events)
			}
		})
	}
}

func TestHandleRender_SceneFile(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"materials": {"gray": {"type": "lambertian", "albedo": [0.5, 0.5, 0.5]}},
		"objects": [{"type": "box", "min": [-0.5, -0.5, -1.5], "max": [0.5, 0.5, -1], "material": "gray"}]
	}`
	if err := os.WriteFile(filepath.Join(dir, "cube.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	params := url.Values{"scene": {"file:cube"}, "width": {"4"}, "height": {"4"}, "spp": {"1"}, "depth": {"1"}}
	events := parseSSE(t, get(t, NewServer(0, dir), "/api/render", params).Body.String())

	found := false
	for _, event := range events {
		if event.Type == "error" {
			t.Fatalf("Unexpected error event: %s", event.Data)
		}
		if event.Type == "image" {
			found = true
		}
	}
	if !found {
		t.Error("Expected an image event")
	}
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(0, t.TempDir())
	base := url.Values{"scene": {"default"}, "width": {"101"}, "height": {"101"}}

	withPixel := func(x, y string) url.Values {
		params := url.Values{}
		for k, v := range base {
			params[k] = v
		}
		params.Set("x", x)
		params.Set("y", y)
		return params
	}

	rec := get(t, s, "/api/inspect", withPixel("50", "50"))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !response.Hit || response.GeometryType != "sphere" || response.MaterialType != "lambertian" || !response.FrontFace {
		t.Errorf("Expected the front of the diffuse sphere, got %+v", response)
	}
	geometryProps, _ := response.Properties["geometry"].(map[string]interface{})
	if geometryProps["radius"] != 0.5 {
		t.Errorf("Expected radius 0.5, got %v", geometryProps["radius"])
	}

	// The top-left corner only sees the sky
	rec = get(t, s, "/api/inspect", withPixel("0", "0"))
	response = InspectResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if response.Hit {
		t.Errorf("Expected a miss, got %+v", response)
	}

	for _, pixel := range [][2]string{{"101", "0"}, {"0", "-1"}, {"x", "0"}} {
		if rec := get(t, s, "/api/inspect", withPixel(pixel[0], pixel[1])); rec.Code != http.StatusBadRequest {
			t.Errorf("Pixel %v: expected 400, got %d", pixel, rec.Code)
		}
	}
}

func TestParseIntParam(t *testing.T) {
	values := url.Values{"spp": {"16"}, "bad": {"x"}, "big": {"99999"}}

	if v, err := parseIntParam(values, "spp", 1, 1, 100); err != nil || v != 16 {
		t.Errorf("Expected 16, got %d (%v)", v, err)
	}
	if v, err := parseIntParam(values, "missing", 7, 1, 100); err != nil || v != 7 {
		t.Errorf("Expected default 7, got %d (%v)", v, err)
	}
	if _, err := parseIntParam(values, "bad", 1, 1, 100); err == nil {
		t.Error("Expected an error for a non-numeric value")
	}
	if _, err := parseIntParam(values, "big", 1, 1, 100); err == nil {
		t.Error("Expected an error for an out-of-range value")
	}
}
