package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusNotFound)

	if rw.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusNotFound)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if !rw.Written() {
		t.Error("Written() = false, want true")
	}
}

func TestResponseWriter_WriteHeader_OnlyOnce(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.Status() != http.StatusCreated {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusCreated)
	}
	if w.Code != http.StatusCreated {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusCreated)
	}
}

func TestResponseWriter_Write(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	if rw.Written() {
		t.Fatal("Written() = true before any write")
	}

	n, err := rw.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if n != 5 {
		t.Errorf("Write() n = %d, want 5", n)
	}
	if _, err := rw.Write([]byte(" world")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if rw.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusOK)
	}
	if rw.Size() != 11 {
		t.Errorf("Size() = %d, want 11", rw.Size())
	}
	if w.Body.String() != "hello world" {
		t.Errorf("body = %q, want %q", w.Body.String(), "hello world")
	}
}

func TestResponseWriter_DefaultStatus(t *testing.T) {
	rw := NewResponseWriter(httptest.NewRecorder())
	if rw.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusOK)
	}
	if rw.Size() != 0 {
		t.Errorf("Size() = %d, want 0", rw.Size())
	}
}

func TestResponseWriter_Flush(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.Flush()

	if !w.Flushed {
		t.Error("underlying recorder was not flushed")
	}
}

func TestResponseWriter_Hijack_NotSupported(t *testing.T) {
	rw := NewResponseWriter(httptest.NewRecorder())

	if _, _, err := rw.Hijack(); err != http.ErrNotSupported {
		t.Errorf("Hijack() error = %v, want %v", err, http.ErrNotSupported)
	}
}

func TestResponseWriter_Unwrap(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	if rw.Unwrap() != w {
		t.Error("Unwrap() did not return the underlying writer")
	}
}

func TestNewContext_ReusesResponseWriter(t *testing.T) {
	rw := NewResponseWriter(httptest.NewRecorder())
	app := New()

	c := newContext(rw, httptest.NewRequest(http.MethodGet, "/", nil), app)

	if c.ResponseWriter() != rw {
		t.Error("newContext wrapped an existing ResponseWriter again")
	}
}
