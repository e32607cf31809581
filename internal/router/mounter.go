// internal/router/mounter.go
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/atlas/internal/deps"
)

// MountFunc represents a function that mounts routes for a module
type MountFunc func(*gin.RouterGroup, *deps.Container)

type Mounter struct {
	container *deps.Container
}

func NewMounter(container *deps.Container) *Mounter {
	return &Mounter{container: container}
}

// Pages are server rendered HTML routes mounted at the root
func (m *Mounter) Pages(engine *gin.Engine) *RouteGroup {
	group := engine.Group("/")
	return &RouteGroup{group: group, container: m.container}
}

// API routes speak the JSON envelope under /api/v1
func (m *Mounter) API(engine *gin.Engine) *RouteGroup {
	group := engine.Group("/api/v1")
	return &RouteGroup{group: group, container: m.container}
}

type RouteGroup struct {
	group     *gin.RouterGroup
	container *deps.Container
}

// Mount provides a fluent interface for mounting modules
func (rg *RouteGroup) Mount(mountFunc MountFunc) *RouteGroup {
	mountFunc(rg.group, rg.container)
	return rg
}

// Group creates a sub-group for organizing routes
func (rg *RouteGroup) Group(path string) *RouteGroup {
	subGroup := rg.group.Group(path)
	return &RouteGroup{group: subGroup, container: rg.container}
}

// Use attaches middleware, e.g. rate limiting, to every route mounted afterwards
func (rg *RouteGroup) Use(middleware ...gin.HandlerFunc) *RouteGroup {
	rg.group.Use(middleware...)
	return rg
}

// RouterGroup exposes the underlying gin group for one-off routes
func (rg *RouteGroup) RouterGroup() *gin.RouterGroup {
	return rg.group
}
