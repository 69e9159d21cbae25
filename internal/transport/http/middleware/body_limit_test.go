package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func drainHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.Copy(io.Discard, r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestBodyLimitMultipartUsesUploadCap(t *testing.T) {
	handler := BodyLimit(1024, 64*1024)(drainHandler())

	body := bytes.Repeat([]byte("a"), 8*1024)
	req := httptest.NewRequest(http.MethodPost, "/api/profile/1/photo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("multipart body under the upload cap was rejected: %d", rec.Code)
	}
}

func TestBodyLimitRejectsOversizedJSON(t *testing.T) {
	handler := BodyLimit(1024, 64*1024)(drainHandler())

	body := bytes.Repeat([]byte("a"), 8*1024)
	req := httptest.NewRequest(http.MethodPost, "/api/employees", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected oversized JSON body to be cut off, got %d", rec.Code)
	}
}

func TestBodyLimitOversizedMultipartStillRejected(t *testing.T) {
	handler := BodyLimit(1024, 4*1024)(drainHandler())

	body := bytes.Repeat([]byte("a"), 8*1024)
	req := httptest.NewRequest(http.MethodPost, "/api/profile/1/photo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected body over the upload cap to be cut off, got %d", rec.Code)
	}
}

func TestBodyLimitSkipsReads(t *testing.T) {
	handler := BodyLimit(1024, 1024)(drainHandler())

	body := bytes.Repeat([]byte("a"), 8*1024)
	req := httptest.NewRequest(http.MethodGet, "/api/employees", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected GET to pass unlimited, got %d", rec.Code)
	}
}
