package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"AvoDash/internal/domain/models"
	domrepo "AvoDash/internal/domain/repository"
	"AvoDash/internal/service/ratelimit"
	"AvoDash/internal/usecase"
	pkgcache "AvoDash/pkg/cache"
	xhttp "AvoDash/pkg/http"
	xlogger "AvoDash/pkg/logger"
	"AvoDash/pkg/util"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// DashboardOption configures DashboardHandler.
type DashboardOption func(*DashboardHandler)

// DashboardHandler serves the dashboard JSON API and the websocket stream.
type DashboardHandler struct {
	logger   *xlogger.Logger
	uc       *usecase.ChartsUseCase
	layout   models.Layout
	options  models.Options
	cache    pkgcache.Service
	cacheTTL time.Duration
	limiter  *ratelimit.Limiter
	metrics  domrepo.Metrics
	upgrader websocket.Upgrader
}

var _ xhttp.Handler = (*DashboardHandler)(nil)

func NewDashboardHandler(logger *xlogger.Logger, uc *usecase.ChartsUseCase, title string, opts ...DashboardOption) *DashboardHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	options := uc.Options()
	h := &DashboardHandler{
		logger:  logger,
		uc:      uc,
		options: options,
		layout:  usecase.BuildLayout(title, options),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WithCache enables chart response caching.
func WithCache(c pkgcache.Service, ttl time.Duration) DashboardOption {
	return func(h *DashboardHandler) {
		h.cache = c
		h.cacheTTL = ttl
	}
}

// WithRateLimiter throttles chart requests per client.
func WithRateLimiter(l *ratelimit.Limiter) DashboardOption {
	return func(h *DashboardHandler) { h.limiter = l }
}

func WithMetrics(m domrepo.Metrics) DashboardOption {
	return func(h *DashboardHandler) { h.metrics = m }
}

// WithCheckOrigin overrides the websocket origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) DashboardOption {
	return func(h *DashboardHandler) { h.upgrader.CheckOrigin = fn }
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/options", h.Options)
	g.GET("/layout", h.Layout)
	g.GET("/charts", h.Charts)
	g.POST("/charts", h.Charts)
	g.GET("/ws", h.Stream)
	e.GET("/healthz", h.Health)
}

func (h *DashboardHandler) Options(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.options)
}

func (h *DashboardHandler) Layout(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.layout)
}

func (h *DashboardHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.Health{Status: "ok", Records: h.uc.Dataset().Len()})
}

// Charts answers one selector change with the price and volume figures.
func (h *DashboardHandler) Charts(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP()) {
		h.recordError("rate_limited")
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.ChartsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.recordError("bad_request")
		return xhttp.BadRequestResponse(c, verr)
	}

	sel, err := h.uc.Resolve(*req)
	if err != nil {
		h.recordError("bad_request")
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("invalid date").WithParam("layout", util.DateLayout).WithError(err))
	}

	charts := h.charts(c.Request().Context(), sel)
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, charts)
}

// charts serves from cache when possible. Cache failures only cost a recompute.
func (h *DashboardHandler) charts(ctx context.Context, sel models.SelectorState) models.Charts {
	if h.cache == nil {
		return h.uc.Update(ctx, sel)
	}

	key := chartsCacheKey(sel)
	cached, err := pkgcache.GetJSON[models.Charts](ctx, h.cache, key)
	if err == nil {
		h.recordCache(true)
		return cached
	}
	if !errors.Is(err, pkgcache.ErrCacheMiss) {
		h.logger.Warn("chart cache read failed", xlogger.String("key", key), xlogger.Error(err))
		h.recordError("cache_read")
	}
	h.recordCache(false)

	charts := h.uc.Update(ctx, sel)
	if err := pkgcache.SetJSON(ctx, h.cache, key, charts, h.cacheTTL); err != nil {
		h.logger.Warn("chart cache write failed", xlogger.String("key", key), xlogger.Error(err))
		h.recordError("cache_write")
	}
	return charts
}

// chartsCacheKey query-escapes every field so selectors containing the
// separator cannot share an entry.
func chartsCacheKey(sel models.SelectorState) string {
	q := url.Values{}
	q.Set("region", sel.Region)
	q.Set("type", sel.Type)
	q.Set("start", util.FormatDate(sel.StartDate))
	q.Set("end", util.FormatDate(sel.EndDate))
	return pkgcache.GenerateKeyWithParams("charts", q.Encode())
}

func (h *DashboardHandler) recordError(kind string) {
	if h.metrics != nil {
		h.metrics.RecordError(kind)
	}
}

func (h *DashboardHandler) recordCache(hit bool) {
	if h.metrics != nil {
		h.metrics.RecordCache(hit)
	}
}
