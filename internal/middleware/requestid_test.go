package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDGeneratesID(t *testing.T) {
	var ctxID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if ctxID == "" {
		t.Fatal("expected request ID in context")
	}
	if got := rr.Header().Get(RequestIDHeader); got != ctxID {
		t.Errorf("response header %q != context ID %q", got, ctxID)
	}
}

func TestRequestIDHonorsExistingHeader(t *testing.T) {
	var ctxID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "proxy-assigned-id")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if ctxID != "proxy-assigned-id" {
		t.Errorf("context ID: got %q, want proxy-assigned-id", ctxID)
	}
}

func TestRequestIDFromCtxAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := RequestIDFromCtx(req.Context()); id != "" {
		t.Errorf("expected empty ID, got %q", id)
	}
}
