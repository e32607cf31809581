package deps

import (
	"net/http"

	"github.com/joefazee/atlas/internal/cache"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/sanitizer"
	"github.com/joefazee/atlas/internal/security"
	"github.com/joefazee/atlas/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Container holds all shared dependencies
type Container struct {
	HTTPClient *http.Client
	TokenMaker security.Maker
	Sanitizer  sanitizer.HTMLStripperer
	Logger     logger.Logger
	Sessions   cache.Cache[models.SearchState]
	Registerer prometheus.Registerer

	// Store repositories as interfaces to avoid imports
	repositories map[string]interface{}
	services     map[string]interface{}
}

func NewContainer(
	httpClient *http.Client,
	tokenMaker security.Maker,
	sanitizer sanitizer.HTMLStripperer,
	logger logger.Logger,
	sessions cache.Cache[models.SearchState],
	registerer prometheus.Registerer,
) *Container {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	return &Container{
		HTTPClient:   httpClient,
		TokenMaker:   tokenMaker,
		Sanitizer:    sanitizer,
		Logger:       logger,
		Sessions:     sessions,
		Registerer:   registerer,
		repositories: make(map[string]interface{}),
		services:     make(map[string]interface{}),
	}
}

// RegisterRepository stores a repository with a key
func (c *Container) RegisterRepository(key string, repo interface{}) {
	c.repositories[key] = repo
}

// GetRepository retrieves a repository by key
func (c *Container) GetRepository(key string) interface{} {
	return c.repositories[key]
}

// RegisterService stores a service with a key
func (c *Container) RegisterService(key string, service interface{}) {
	c.services[key] = service
}

// GetService retrieves a service by key
func (c *Container) GetService(key string) interface{} {
	return c.services[key]
}
