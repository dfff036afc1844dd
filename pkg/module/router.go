package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Router sends each request to the module owning its first path segment.
// Paths no module owns go to a plain ServeMux for top-level endpoints such
// as probes and metrics.
type Router struct {
	modules map[string]*Module
	mux     *http.ServeMux
}

func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		mux:     http.NewServeMux(),
	}
}

func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// Mount registers modules by prefix. Two modules may not share a prefix.
func (r *Router) Mount(modules ...*Module) error {
	for _, m := range modules {
		if _, taken := r.modules[m.prefix]; taken {
			return fmt.Errorf("module prefix already mounted: %s", m.prefix)
		}
		r.modules[m.prefix] = m
	}
	return nil
}

// ServeHTTP drops one trailing slash before dispatch, so /api/calls/ and
// /api/calls reach the same route.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
		req.URL.Path = strings.TrimSuffix(p, "/")
	}

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		m.ServeHTTP(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return "/" + seg
}
