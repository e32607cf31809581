package app

import (
	"context"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gin-gonic/gin"
	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/app/countries"
	apiDoc "github.com/joefazee/atlas/app/doc"
	"github.com/joefazee/atlas/internal/deps"
	"github.com/joefazee/atlas/internal/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the wired HTTP application. Loader has not started fetching;
// call Loader.Reload once the process is ready.
type Server struct {
	Engine  *gin.Engine
	Loader  *countries.Loader
	Limiter *api.RateLimiter
}

// NewServer registers the countries module in container and mounts its
// pages, its JSON API, health, metrics and docs. gatherer serves /metrics
// and should be the registry behind container.Registerer.
func NewServer(ctx context.Context, cfg *Config, container *deps.Container, gatherer prometheus.Gatherer) (*Server, error) {
	tmpl, err := countries.LoadTemplates()
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), api.RequestLogger(container.Logger))
	engine.SetHTMLTemplate(tmpl)

	countries.InitRepositories(container, &cfg.Countries)
	loader := countries.InitServices(container, &cfg.Countries)

	limiter := api.NewRateLimiter(ctx, cfg.RateLimit)
	opts := countries.MountOptions{
		Config:        &cfg.Countries,
		Limiter:       limiter,
		SecureCookies: cfg.Session.CookieSecure,
	}

	mounter := router.NewMounter(container)
	mounter.Pages(engine).Mount(countries.MountPages(opts))

	apiV1 := mounter.API(engine).Use(api.CorsMiddleware())
	apiV1.RouterGroup().OPTIONS("/*path", func(c *gin.Context) {})
	apiV1.RouterGroup().GET("/healthz", api.HealthCheck)
	apiV1.Mount(countries.MountAPI(opts))

	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	apiDoc.Init(engine, cfg.Env)

	return &Server{Engine: engine, Loader: loader, Limiter: limiter}, nil
}

// Handler is the engine behind gzip compression
func (s *Server) Handler() http.Handler {
	return gziphandler.GzipHandler(s.Engine)
}

// Close stops background workers owned by the server
func (s *Server) Close() {
	s.Limiter.Shutdown()
}
