package cli

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mlindqvist/arkigraf/pkg/pipeline"
)

var serveRecords = []byte(`[
	{"subject": "arch:alm", "subjectLabel": "Arkitekt Alm", "object": "bygg:1", "objectLabel": "Stadshuset"},
	{"subject": "arch:alm", "subjectLabel": "Arkitekt Alm", "object": "bygg:2", "objectLabel": "Biblioteket"}
]`)

func newTestServer(records []byte) *graphServer {
	return &graphServer{
		records: records,
		runner:  pipeline.NewRunner(nil, log.New(io.Discard)),
		logger:  log.New(io.Discard),
	}
}

func TestServeHealthz(t *testing.T) {
	srv := newTestServer(serveRecords)

	rec := httptest.NewRecorder()
	srv.router().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("response should carry a request id")
	}
}

func TestServeGraph(t *testing.T) {
	srv := newTestServer(serveRecords)

	rec := httptest.NewRecorder()
	srv.router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/graph", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Nodes) != 3 || len(body.Edges) != 2 {
		t.Errorf("graph = %d nodes, %d edges; want 3, 2", len(body.Nodes), len(body.Edges))
	}
}

func TestServeLayout(t *testing.T) {
	srv := newTestServer(serveRecords)

	rec := httptest.NewRecorder()
	srv.router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/layout?width=600&height=400&seed=7", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Width     float64           `json:"width"`
		Seed      int64             `json:"seed"`
		Positions []json.RawMessage `json:"positions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Width != 600 || body.Seed != 7 {
		t.Errorf("query params not applied: width=%v seed=%d", body.Width, body.Seed)
	}
	if len(body.Positions) != 3 {
		t.Errorf("positions = %d, want 3", len(body.Positions))
	}
}

func TestServeSVG(t *testing.T) {
	srv := newTestServer(serveRecords)

	rec := httptest.NewRecorder()
	srv.router().ServeHTTP(rec, httptest.NewRequest("GET", "/render.svg", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("body should contain an <svg> element")
	}
}

func TestServeMalformedRecords(t *testing.T) {
	bad := []byte(`[{"subject": "", "subjectLabel": "X", "object": "b", "objectLabel": "Y"}]`)
	srv := newTestServer(bad)

	rec := httptest.NewRecorder()
	srv.router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/graph", nil))

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}
