package countries

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/internal/deps"
	"github.com/joefazee/atlas/internal/resilience/circuitbreaker"
	"github.com/joefazee/atlas/internal/router"
)

const (
	CountryRepoKey = "country_repository"
	MetricsKey     = "country_metrics"
	LoaderKey      = "country_loader"
	ServiceKey     = "country_service"
)

// MountOptions carry what the routes need beyond the container
type MountOptions struct {
	Config        *Config
	Limiter       *api.RateLimiter
	SecureCookies bool
}

func (o MountOptions) rateLimit(onLimited gin.HandlerFunc) gin.HandlerFunc {
	if o.Limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return o.Limiter.Middleware(onLimited)
}

// MountPages mounts the server rendered pages
func MountPages(opts MountOptions) router.MountFunc {
	return func(r *gin.RouterGroup, container *deps.Container) {
		handler := createHandler(container)
		session := SessionMiddleware(container.TokenMaker, opts.Config.SessionTTL, opts.SecureCookies, container.Logger)
		limit := opts.rateLimit(handler.RateLimited)

		r.GET("/", session, handler.Index)
		r.POST("/search", limit, session, handler.Search)
		r.POST("/page", limit, session, handler.Navigate)
		r.POST("/retry", limit, handler.Retry)
	}
}

// MountAPI mounts the JSON routes
func MountAPI(opts MountOptions) router.MountFunc {
	return func(r *gin.RouterGroup, container *deps.Container) {
		handler := createHandler(container)
		session := SessionMiddleware(container.TokenMaker, opts.Config.SessionTTL, opts.SecureCookies, container.Logger)
		limit := opts.rateLimit(nil)

		countriesGroup := r.Group("/countries")
		countriesGroup.GET("/status", handler.GetStatus)
		countriesGroup.GET("/view", session, handler.GetView)
		countriesGroup.PUT("/query", limit, session, handler.SetQuery)
		countriesGroup.POST("/page", limit, session, handler.GoToPage)
		countriesGroup.POST("/reload", limit, handler.Reload)
	}
}

// InitRepositories initializes and registers repositories for this module
func InitRepositories(container *deps.Container, config *Config) {
	metrics := NewMetrics(container.Registerer)
	breaker := circuitbreaker.New(circuitbreaker.CountriesSourceConfig(), container.Logger, metrics.OnBreakerStateChange)

	repo := NewRepository(container.HTTPClient, config, breaker, container.Logger, metrics)
	container.RegisterRepository(CountryRepoKey, repo)
	container.RegisterService(MetricsKey, metrics)
}

// InitServices builds the loader and service on top of the registered
// repository. The returned loader has not started fetching yet.
func InitServices(container *deps.Container, config *Config) *Loader {
	repo := container.GetRepository(CountryRepoKey).(Repository)
	metrics, _ := container.GetService(MetricsKey).(*Metrics)

	loader := NewLoader(repo, config, container.Logger, metrics)
	sessions := NewSessionStore(container.Sessions, config.SessionTTL)
	service := NewService(loader, sessions, container.Sanitizer, config, metrics, container.Logger)

	container.RegisterService(LoaderKey, loader)
	container.RegisterService(ServiceKey, service)
	return loader
}

// createHandler creates a handler with all dependencies
func createHandler(container *deps.Container) *Handler {
	service := container.GetService(ServiceKey).(Service)
	return NewHandler(service, container.Logger)
}
