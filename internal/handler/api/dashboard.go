// Package api wires the dashboard operations to HTTP routes.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"StockDash/internal/domain/models"
	"StockDash/internal/indicator"
	"StockDash/internal/service/alphavantage"
	"StockDash/internal/service/github"
	"StockDash/internal/usecase"
	xhttp "StockDash/pkg/http"
	"StockDash/pkg/logger"
)

// DashboardHandler serves the dashboard API.
type DashboardHandler struct {
	dashboard *usecase.Dashboard
	log       *logger.Logger
}

// NewDashboardHandler creates the API handler.
func NewDashboardHandler(dashboard *usecase.Dashboard, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, log: log}
}

// RegisterRoutes registers the API routes on the Echo instance.
func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard", h.GetDashboard)
	g.GET("/series", h.GetSeries)
	g.GET("/overview", h.GetOverview)
	g.GET("/github/profile", h.GetProfile)
	g.GET("/github/repos", h.GetRepos)
	g.GET("/symbols", h.GetSymbols)

	e.GET("/healthz", h.Health)
}

// GetDashboard returns the full view for one symbol.
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	req := new(models.DashboardRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	view, err := h.dashboard.GetDashboard(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, req.Symbol)
	}
	return xhttp.SuccessResponse(c, view)
}

// GetSeries returns the enriched series rows.
func (h *DashboardHandler) GetSeries(c echo.Context) error {
	req := new(models.SeriesRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	rows, err := h.dashboard.GetSeries(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, req.Symbol)
	}
	return xhttp.SuccessResponse(c, rows)
}

// GetOverview returns the company overview.
func (h *DashboardHandler) GetOverview(c echo.Context) error {
	req := new(models.OverviewRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	overview, err := h.dashboard.GetOverview(c.Request().Context(), req.Symbol)
	if err != nil {
		return h.fail(c, err, req.Symbol)
	}
	return xhttp.SuccessResponse(c, overview)
}

// GetProfile returns a GitHub user profile.
func (h *DashboardHandler) GetProfile(c echo.Context) error {
	req := new(models.ProfileRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	profile, err := h.dashboard.GetProfile(c.Request().Context(), req.Username)
	if err != nil {
		return h.fail(c, err, req.Username)
	}
	return xhttp.SuccessResponse(c, profile)
}

// GetRepos returns a GitHub user's recently updated repositories.
func (h *DashboardHandler) GetRepos(c echo.Context) error {
	req := new(models.ReposRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	repos, err := h.dashboard.GetRepos(c.Request().Context(), req.Username, req.Limit)
	if err != nil {
		return h.fail(c, err, req.Username)
	}
	return xhttp.SuccessResponse(c, repos)
}

// GetSymbols returns the configured symbol catalogue.
func (h *DashboardHandler) GetSymbols(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.dashboard.Symbols())
}

// Health reports liveness.
func (h *DashboardHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// fail maps domain errors onto HTTP statuses.
func (h *DashboardHandler) fail(c echo.Context, err error, subject string) error {
	h.log.Error("request failed",
		logger.String("path", c.Path()),
		logger.String("subject", subject),
		logger.Error(err))

	switch {
	case errors.Is(err, alphavantage.ErrRateLimited):
		return xhttp.AppErrorResponse(c, xhttp.RateLimitedError("upstream rate limit reached, try again later").WithError(err))
	case errors.Is(err, alphavantage.ErrNoData):
		return xhttp.AppErrorResponse(c, xhttp.UnprocessableErrorf("no data for %q", subject).WithError(err))
	case errors.Is(err, indicator.ErrInsufficientData):
		return xhttp.AppErrorResponse(c, xhttp.UnprocessableErrorf("not enough history for %q", subject).WithError(err))
	case errors.Is(err, github.ErrNotFound):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("github user %q not found", subject).WithError(err))
	default:
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("upstream request failed").WithError(err))
	}
}
