package middleware

import (
	"errors"
	"strconv"
	"time"

	applogger "AvoDash/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type httpCollectors struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        *prometheus.GaugeVec
	responseSize    *prometheus.HistogramVec
}

func newHTTPCollectors(reg prometheus.Registerer) *httpCollectors {
	hc := &httpCollectors{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method", "status", "class"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "http_in_flight_requests",
				Help: "Current number of in-flight HTTP requests",
			},
			[]string{"route", "method"},
		),
		responseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{200, 500, 1_000, 2_000, 5_000, 10_000, 50_000, 100_000, 500_000, 1_000_000},
			},
			[]string{"route", "method", "status", "class"},
		),
	}

	hc.requestsTotal = registerOrExisting(reg, hc.requestsTotal)
	hc.requestDuration = registerOrExisting(reg, hc.requestDuration)
	hc.inFlight = registerOrExisting(reg, hc.inFlight)
	hc.responseSize = registerOrExisting(reg, hc.responseSize)
	return hc
}

// registerOrExisting lets several servers share one registry.
func registerOrExisting[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Metrics records request metrics labelled by the matched route template so
// cardinality stays bounded. 5xx responses are logged as errors and slow
// requests as warnings.
func Metrics(l *applogger.Logger, reg prometheus.Registerer, slowThreshold time.Duration) echo.MiddlewareFunc {
	hc := newHTTPCollectors(reg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			hc.inFlight.WithLabelValues(route, method).Inc()
			defer hc.inFlight.WithLabelValues(route, method).Dec()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			status := strconv.Itoa(res.Status)
			class := statusClass(res.Status)
			duration := time.Since(start)

			hc.requestsTotal.WithLabelValues(route, method, status).Inc()
			hc.requestDuration.WithLabelValues(route, method, status, class).Observe(duration.Seconds())
			hc.responseSize.WithLabelValues(route, method, status, class).Observe(float64(res.Size))

			if l == nil {
				return nil
			}
			if res.Status >= 500 {
				l.Error("http request failed",
					applogger.String("route", route),
					applogger.String("method", method),
					applogger.String("status", status),
					applogger.Duration("duration_ms", duration),
					applogger.Int("bytes", int(res.Size)),
				)
				return nil
			}
			if slowThreshold > 0 && duration >= slowThreshold {
				l.Warn("http request slow",
					applogger.String("route", route),
					applogger.String("method", method),
					applogger.String("status", status),
					applogger.Duration("duration_ms", duration),
					applogger.Int("bytes", int(res.Size)),
				)
			}
			return nil
		}
	}
}

func statusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
