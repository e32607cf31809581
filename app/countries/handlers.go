package countries

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/validator"
	"github.com/joefazee/atlas/models"
)

const pageTitle = "Countries of the World"

// Handler handles HTTP requests for countries
type Handler struct {
	service Service
	log     logger.Logger
}

// NewHandler creates a new country handler
func NewHandler(service Service, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Handler{
		service: service,
		log:     log,
	}
}

// GetStatus godoc
// @Summary Collection load status
// @Description Report whether the country collection is loading, failed or ready
// @Tags countries
// @Produce json
// @Success 200 {object} api.Response{data=StatusResponse}
// @Router /api/v1/countries/status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	status := h.service.Status(c.Request.Context())
	api.SuccessResponse(c, http.StatusOK, "Status retrieved successfully", status)
}

// GetView godoc
// @Summary Current page of the session
// @Description Get the countries on the current page of the caller's search session
// @Tags countries
// @Produce json
// @Param X-Session-Token header string false "Session token, alternative to the session cookie"
// @Success 200 {object} api.Response{data=ViewResponse,meta=api.PaginationMeta}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Failure 503 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/view [get]
func (h *Handler) GetView(c *gin.Context) {
	view, err := h.service.View(c.Request.Context(), SessionID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	api.PaginatedResponse(c, "Countries retrieved successfully", view, view.PaginationMeta())
}

// SetQuery godoc
// @Summary Change the search query
// @Description Replace the search query of the session. The session always returns to page 1.
// @Tags countries
// @Accept json
// @Produce json
// @Param X-Session-Token header string false "Session token, alternative to the session cookie"
// @Param request body SetQueryRequest true "Search query"
// @Success 200 {object} api.Response{data=ViewResponse,meta=api.PaginationMeta}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 429 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Failure 503 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/query [put]
func (h *Handler) SetQuery(c *gin.Context) {
	var req SetQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	view, err := h.service.SetQuery(c.Request.Context(), SessionID(c), req.Query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	api.PaginatedResponse(c, "Query updated successfully", view, view.PaginationMeta())
}

// GoToPage godoc
// @Summary Step to the previous or next page
// @Description Move the session one page back or forward. Steps past either end leave the page unchanged.
// @Tags countries
// @Accept json
// @Produce json
// @Param X-Session-Token header string false "Session token, alternative to the session cookie"
// @Param request body GoToPageRequest true "Direction: previous or next"
// @Success 200 {object} api.Response{data=ViewResponse,meta=api.PaginationMeta}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 429 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Failure 503 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/page [post]
func (h *Handler) GoToPage(c *gin.Context) {
	var req GoToPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	dir, err := ParseDirection(req.Direction)
	if err != nil {
		api.ValidationErrorResponse(c, fieldErrors(err))
		return
	}

	view, err := h.service.GoToPage(c.Request.Context(), SessionID(c), dir)
	if err != nil {
		h.handleError(c, err)
		return
	}
	api.PaginatedResponse(c, "Page changed successfully", view, view.PaginationMeta())
}

// Reload godoc
// @Summary Reload the collection
// @Description Fetch the country collection again from the upstream source. The load runs in the background.
// @Tags countries
// @Produce json
// @Success 202 {object} api.Response{data=StatusResponse}
// @Failure 429 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/reload [post]
func (h *Handler) Reload(c *gin.Context) {
	status := h.service.Reload(c.Request.Context())
	api.AcceptedResponse(c, "Reload started", status)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var loadErr *LoadError
	switch {
	case errors.Is(err, models.ErrCollectionLoading):
		api.LoadingResponse(c, err.Error())
	case errors.As(err, &loadErr):
		api.UpstreamErrorResponse(c, loadErr.Error())
	case errors.Is(err, models.ErrQueryTooLong),
		errors.Is(err, models.ErrInvalidDirection),
		errors.Is(err, models.ErrInvalidSessionKey):
		api.ValidationErrorResponse(c, fieldErrors(err))
	default:
		h.log.Error(err, map[string]interface{}{"path": c.FullPath()})
		api.InternalErrorResponse(c, "Failed to process request")
	}
}

// fieldErrors keys a validation failure by the input it came from.
func fieldErrors(err error) map[string]string {
	v := validator.New()
	v.Check(!errors.Is(err, models.ErrQueryTooLong), "query", err.Error())
	v.Check(!errors.Is(err, models.ErrInvalidDirection), "direction", err.Error())
	v.Check(!errors.Is(err, models.ErrInvalidSessionKey), "session", err.Error())
	return v.Errors
}

type pageData struct {
	Title   string
	View    *ViewResponse
	Notice  string
	Message string
	Refresh bool
}

// Index renders the loading page, the error page or the country grid
func (h *Handler) Index(c *gin.Context) {
	view, err := h.service.View(c.Request.Context(), SessionID(c))
	if err != nil {
		h.renderFailure(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", pageData{Title: pageTitle, View: view})
}

// Search applies the form field q and returns to the grid
func (h *Handler) Search(c *gin.Context) {
	var req SetQueryRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectForm(c, err)
		return
	}

	_, err := h.service.SetQuery(c.Request.Context(), SessionID(c), req.Query)
	if err != nil && h.isValidation(err) {
		h.renderNotice(c, err)
		return
	}
	h.redirectHome(c)
}

// Navigate applies the form field direction and returns to the grid
func (h *Handler) Navigate(c *gin.Context) {
	var req GoToPageRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectForm(c, err)
		return
	}

	dir, err := ParseDirection(req.Direction)
	if err != nil {
		h.renderNotice(c, err)
		return
	}

	_, err = h.service.GoToPage(c.Request.Context(), SessionID(c), dir)
	if err != nil && h.isValidation(err) {
		h.renderNotice(c, err)
		return
	}
	h.redirectHome(c)
}

// Retry restarts the collection load and returns to the loading page
func (h *Handler) Retry(c *gin.Context) {
	h.service.Reload(c.Request.Context())
	h.redirectHome(c)
}

// RateLimited renders the rejection of a throttled form post
func (h *Handler) RateLimited(c *gin.Context) {
	c.HTML(http.StatusTooManyRequests, "error.html", pageData{
		Title:   pageTitle,
		Message: "Too many requests. Please wait a moment and try again.",
	})
}

func (h *Handler) renderFailure(c *gin.Context, err error) {
	var loadErr *LoadError
	switch {
	case errors.Is(err, models.ErrCollectionLoading):
		c.Header("Cache-Control", "no-store")
		c.HTML(http.StatusOK, "loading.html", pageData{Title: pageTitle, Refresh: true})
	case errors.As(err, &loadErr):
		c.HTML(http.StatusBadGateway, "error.html", pageData{Title: pageTitle, Message: loadErr.Error()})
	default:
		h.log.Error(err, map[string]interface{}{"path": c.FullPath()})
		c.HTML(http.StatusInternalServerError, "error.html", pageData{Title: pageTitle, Message: err.Error()})
	}
}

// renderNotice shows the grid unchanged with a message about the rejected input
func (h *Handler) renderNotice(c *gin.Context, cause error) {
	view, err := h.service.View(c.Request.Context(), SessionID(c))
	if err != nil {
		h.renderFailure(c, err)
		return
	}
	c.HTML(http.StatusBadRequest, "index.html", pageData{Title: pageTitle, View: view, Notice: noticeFor(cause)})
}

func (h *Handler) rejectForm(c *gin.Context, err error) {
	h.log.Debug("form rejected", map[string]interface{}{
		"path":  c.FullPath(),
		"error": err.Error(),
	})
	h.renderNotice(c, err)
}

func (h *Handler) isValidation(err error) bool {
	return errors.Is(err, models.ErrQueryTooLong) ||
		errors.Is(err, models.ErrInvalidDirection) ||
		errors.Is(err, models.ErrInvalidSessionKey)
}

func (h *Handler) redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, models.ErrQueryTooLong):
		return "That search is too long."
	case errors.Is(err, models.ErrInvalidDirection):
		return "Unknown page direction."
	default:
		return "Your request could not be processed."
	}
}
