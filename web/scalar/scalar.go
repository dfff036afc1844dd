// Package scalar serves the Scalar API reference page for the service's
// OpenAPI document.
package scalar

import (
	"embed"
	"net/http"

	"github.com/JaimeStill/callqa/pkg/middleware"
	"github.com/JaimeStill/callqa/pkg/module"
	"github.com/JaimeStill/callqa/pkg/web"
)

//go:embed index.html
var staticFS embed.FS

// NewModule mounts the reference page at basePath, pointed at the OpenAPI
// document served from specURL.
func NewModule(basePath, specURL string, mws ...middleware.Func) (*module.Module, error) {
	router, err := buildRouter(basePath, specURL)
	if err != nil {
		return nil, err
	}
	return module.New(basePath, router, mws...)
}

func buildRouter(basePath, specURL string) (http.Handler, error) {
	page, err := web.Page(staticFS, "index.html", map[string]string{"SpecURL": specURL})
	if err != nil {
		return nil, err
	}

	router := web.NewRouter()
	router.HandleFunc("GET /{$}", page)
	router.SetFallback(http.RedirectHandler(basePath+"/", http.StatusFound))

	return router, nil
}
