package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/callqa/pkg/web"
)

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRouterMatchedPattern(t *testing.T) {
	r := web.NewRouter()
	r.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if rec := serve(r, "GET", "/"); rec.Code != http.StatusOK {
		t.Errorf("root: got %d, want 200", rec.Code)
	}
}

func TestRouterFallbackRedirect(t *testing.T) {
	r := web.NewRouter()
	r.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.SetFallback(http.RedirectHandler("/", http.StatusFound))

	rec := serve(r, "GET", "/deep/link")
	if rec.Code != http.StatusFound {
		t.Fatalf("fallback: got %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("location: got %q, want /", loc)
	}
}

func TestRouterWithoutFallback(t *testing.T) {
	r := web.NewRouter()
	r.Handle("GET /known", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	if rec := serve(r, "GET", "/known"); rec.Code != http.StatusAccepted {
		t.Errorf("known: got %d, want %d", rec.Code, http.StatusAccepted)
	}
	if rec := serve(r, "GET", "/unknown"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown: got %d, want 404", rec.Code)
	}
}
