package api

import (
	"net/http"

	"github.com/JaimeStill/notewise/internal/config"
	"github.com/JaimeStill/notewise/pkg/openapi"
	"github.com/JaimeStill/notewise/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	specBytes []byte,
) []string {
	return routes.Register(
		mux,
		domain.Recognition.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		routes.Group{
			Routes: []routes.Route{
				routes.Get("/openapi.json", openapi.ServeSpec(specBytes)),
			},
		},
	)
}
