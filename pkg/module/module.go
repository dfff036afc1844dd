// Package module mounts self-contained HTTP handlers under single-segment
// path prefixes such as /api or /scalar.
package module

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/callqa/pkg/middleware"
)

// Module serves an inner handler below a path prefix. Requests reach the
// inner handler with the prefix removed, so its routes are prefix-agnostic.
type Module struct {
	prefix  string
	handler http.Handler
}

// New wraps handler with mws, the first being outermost, and binds it to
// prefix.
func New(prefix string, handler http.Handler, mws ...middleware.Func) (*Module, error) {
	if err := validatePrefix(prefix); err != nil {
		return nil, err
	}

	stack := middleware.New()
	for _, mw := range mws {
		stack.Use(mw)
	}

	return &Module{
		prefix:  prefix,
		handler: stack.Apply(handler),
	}, nil
}

func (m *Module) Prefix() string {
	return m.prefix
}

// ServeHTTP strips the prefix; a request for the bare prefix arrives as "/".
func (m *Module) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	rest := strings.TrimPrefix(req.URL.Path, m.prefix)
	if rest == "" {
		rest = "/"
	}

	inner := *req
	u := *req.URL
	u.Path, u.RawPath = rest, ""
	inner.URL = &u

	m.handler.ServeHTTP(w, &inner)
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return errors.New("module prefix cannot be empty")
	case prefix[0] != '/':
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case len(prefix) == 1 || strings.Contains(prefix[1:], "/"):
		return fmt.Errorf("module prefix must be a single path segment: %s", prefix)
	}
	return nil
}
