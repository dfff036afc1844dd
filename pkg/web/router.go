package web

import "net/http"

// Router is a ServeMux that hands unmatched requests to a fallback handler
// instead of answering 404.
type Router struct {
	mux      *http.ServeMux
	fallback http.Handler
}

func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// SetFallback sets the handler for requests no pattern matches.
// A nil handler restores the ServeMux 404.
func (r *Router) SetFallback(handler http.Handler) {
	r.fallback = handler
}

func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// ServeHTTP routes matched patterns to the mux and everything else to the
// fallback, when set.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback != nil {
		if _, pattern := r.mux.Handler(req); pattern == "" {
			r.fallback.ServeHTTP(w, req)
			return
		}
	}
	r.mux.ServeHTTP(w, req)
}
