package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lectern-dev/lectern/internal/resources"
)

const subjectJSON = `{
  "units": [
    {
      "unit": 1,
      "groups": [
        {
          "type": "Lectures",
          "files": [
            {"filename": "files/cfp/01 Intro.pdf", "title": "Intro"}
          ]
        }
      ]
    }
  ]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	filesDir := filepath.Join(root, "files")
	for _, dir := range []string{dataDir, filepath.Join(filesDir, "cfp")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dataDir, "cfp.json"), []byte(subjectJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(filesDir, "cfp", "01 Intro.pdf"), []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := resources.NewDirStore(filesDir)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.DataDir = dataDir
	cfg.TemplatesDir = filepath.Join(root, "templates")

	s := New(cfg, store)
	if _, err := s.GenerateTemplates(); err != nil {
		t.Fatalf("GenerateTemplates: %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestIndexListsSubjects(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Unit-1") {
		t.Errorf("index missing generated subject fragment:\n%s", body)
	}
	if !strings.Contains(body, "/assets/runtime.js") {
		t.Error("index missing runtime script tag")
	}
}

func TestSubjectPage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/sem-1/cfp/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Intro") {
		t.Errorf("subject page missing file link:\n%s", body)
	}
	if !strings.Contains(body, "<title>Computational Foundation with Python") {
		t.Errorf("subject page missing display name title:\n%s", body)
	}
}

func TestSubjectPageUnknownCode(t *testing.T) {
	s := newTestServer(t)

	for _, code := range []string{"nope", "..", "cfp%2F..%2Fcfp"} {
		rec := get(t, s, "/sem-1/"+code+"/")
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET /sem-1/%s/ status = %d, want %d", code, rec.Code, http.StatusNotFound)
		}
	}
}

func TestFileStreaming(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/files/cfp/01%20Intro.pdf")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got, want := rec.Header().Get("Content-Type"), "application/pdf"; got != want {
		t.Errorf("Content-Type = %q, want %q", got, want)
	}
	if got, want := rec.Body.String(), "%PDF-1.4 fake"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestFileNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/files/cfp/missing.pdf")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestFileTraversalRejected(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/files/..%2F..%2Fetc%2Fpasswd")
	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 400 or 404", rec.Code)
	}
}

func TestViewerEscapesParameters(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/pdf-viewer/?file=%2Ffiles%2Fcfp%2F01%2520Intro.pdf&title=%3Cscript%3Ealert(1)%3C%2Fscript%3E")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("viewer did not escape title parameter")
	}
	if !strings.Contains(body, "iframe") {
		t.Error("viewer missing iframe")
	}
}

func TestViewerRejectsOffsiteFiles(t *testing.T) {
	s := newTestServer(t)

	for _, file := range []string{"", "http://evil.example/a.pdf", "//evil.example/a.pdf"} {
		rec := get(t, s, "/pdf-viewer/?file="+file)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("file=%q status = %d, want %d", file, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestRuntimeScriptServed(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/assets/runtime.js")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/javascript") {
		t.Errorf("Content-Type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "WebSocket") {
		t.Error("runtime script looks truncated")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "lectern_nav_navigations_inflight") {
		t.Errorf("metrics output missing navigation gauge:\n%s", rec.Body.String())
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	s.config.Address = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned %v after cancel", err)
	}
}
