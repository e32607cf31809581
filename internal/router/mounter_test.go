package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/atlas/internal/deps"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestMounter_GroupsAndMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	container := deps.NewContainer(nil, nil, nil, logger.NewNullLogger(), nil, nil)
	m := NewMounter(container)

	var seen *deps.Container
	m.API(engine).
		Use(func(c *gin.Context) {
			c.Header("X-Api", "1")
			c.Next()
		}).
		Mount(func(rg *gin.RouterGroup, c *deps.Container) {
			seen = c
			rg.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
		})

	m.Pages(engine).Group("/about").Mount(func(rg *gin.RouterGroup, _ *deps.Container) {
		rg.GET("", func(ctx *gin.Context) { ctx.String(http.StatusOK, "about") })
	})

	assert.Same(t, container, seen)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-Api"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/about", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Api"))
}
