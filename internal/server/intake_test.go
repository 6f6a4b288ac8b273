package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
)

type mockWatchService struct {
	dirs []string
}

func (m *mockWatchService) Directories() []string {
	return append([]string(nil), m.dirs...)
}

func (m *mockWatchService) AddDirectory(path string, _ bool) error {
	for _, d := range m.dirs {
		if d == path {
			return nil
		}
	}
	m.dirs = append(m.dirs, path)
	return nil
}

func (m *mockWatchService) RemoveDirectory(path string) error {
	for i, d := range m.dirs {
		if d == path {
			m.dirs = append(m.dirs[:i], m.dirs[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestIntakeDirectories_NotEnabled(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv.routes(), "/api/v1/intake/directories")
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}

func TestIntakeDirectories_AddListRemove(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.EnableIntake(&mockWatchService{}, "")
	handler := srv.routes()
	dir := t.TempDir()

	rec := postJSON(t, handler, "/api/v1/intake/directories", map[string]any{"path": dir})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = get(t, handler, "/api/v1/intake/directories")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list struct {
		Directories []string `json:"directories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Directories) != 1 {
		t.Fatalf("directories = %v, want 1 entry", list.Directories)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/intake/directories?path="+url.QueryEscape(dir), nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = get(t, handler, "/api/v1/intake/directories")
	_ = json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list.Directories) != 0 {
		t.Errorf("directories after remove = %v", list.Directories)
	}
}

func TestIntakeDirectories_AddMissing(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.EnableIntake(&mockWatchService{}, "")
	rec := postJSON(t, srv.routes(), "/api/v1/intake/directories", map[string]any{
		"path": filepath.Join(t.TempDir(), "missing"),
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
