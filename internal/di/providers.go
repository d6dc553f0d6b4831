package di

import (
	"context"
	"fmt"
	"net/http"

	"AvoDash/internal/dataset"
	"AvoDash/internal/domain/repository"
	"AvoDash/internal/handler/api"
	"AvoDash/internal/handler/web"
	internalrepo "AvoDash/internal/repository"
	"AvoDash/internal/service/ratelimit"
	"AvoDash/internal/usecase"
	pkgcache "AvoDash/pkg/cache"
	pkgch "AvoDash/pkg/clickhouse"
	"AvoDash/pkg/config"
	xhttp "AvoDash/pkg/http"
	applogger "AvoDash/pkg/logger"
	"AvoDash/pkg/metrics"
	"AvoDash/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRecordSource picks the dataset backend. A ClickHouse client is only
// needed while loading, so the cleanup closes it.
func ProvideRecordSource(cfg *config.Config, l *applogger.Logger) (repository.RecordSource, func(), error) {
	switch cfg.Dataset.Source {
	case config.SourceClickHouse:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.LoadTimeout)
		defer cancel()

		client, err := pkgch.NewClient(ctx,
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
			pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("clickhouse client: %w", err)
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				l.Warn("clickhouse close error", applogger.Error(err))
			}
		}

		src, err := internalrepo.NewClickHouseSource(client.DB(), cfg.Dataset.Table)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		src.SetLogger(l)
		return src, cleanup, nil
	default:
		src := internalrepo.NewCSVSource(cfg.Dataset.Path, cfg.Dataset.DateFormat)
		src.SetLogger(l)
		return src, func() {}, nil
	}
}

// ProvideDataset loads the dataset once. Any failure aborts startup.
func ProvideDataset(cfg *config.Config, src repository.RecordSource, l *applogger.Logger, m repository.Metrics) (*dataset.Dataset, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.LoadTimeout)
	defer cancel()

	ds, err := dataset.Load(ctx, src)
	if err != nil {
		m.RecordError("dataset_load")
		return nil, err
	}
	m.SetDatasetSize(ds.Len())
	l.Info("dataset loaded",
		applogger.String("source", src.Name()),
		applogger.Int("records", ds.Len()),
		applogger.Int("regions", len(ds.Regions())),
		applogger.Strings("types", ds.Types()),
	)
	return ds, nil
}

// ProvideChartsUseCase creates the filter-and-project use case.
func ProvideChartsUseCase(cfg *config.Config, ds *dataset.Dataset, m repository.Metrics) *usecase.ChartsUseCase {
	return usecase.NewChartsUseCase(ds, m, cfg.Dashboard.DefaultRegion, cfg.Dashboard.DefaultType)
}

// ProvideCache builds the chart cache: memory alone, or memory in front of
// Redis. An unreachable Redis degrades to memory only. Returns nil when
// caching is disabled.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (pkgcache.Service, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}

	mem := pkgcache.NewMemoryCache(
		pkgcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
		pkgcache.WithMemoryDefaultTTL(cfg.Cache.TTL),
	)
	var svc pkgcache.Service = mem

	if cfg.Cache.Redis.Enabled {
		rc, err := pkgcache.NewRedisCache(context.Background(),
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			l.Warn("redis unavailable, using memory cache only", applogger.Error(err))
		} else {
			svc = pkgcache.NewLayeredCache(mem, rc, pkgcache.WithLayeredL1TTL(cfg.Cache.TTL))
			l.Info("redis cache connected",
				applogger.String("host", cfg.Cache.Redis.Host),
				applogger.Int("port", cfg.Cache.Redis.Port),
			)
		}
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			l.Warn("cache close error", applogger.Error(err))
		}
	}
	return svc, cleanup, nil
}

// ProvideRateLimiter creates the per-client token bucket.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

// ProvideDashboardHandler creates the JSON and websocket API.
func ProvideDashboardHandler(
	cfg *config.Config,
	l *applogger.Logger,
	uc *usecase.ChartsUseCase,
	cache pkgcache.Service,
	limiter *ratelimit.Limiter,
	m repository.Metrics,
) *api.DashboardHandler {
	opts := []api.DashboardOption{
		api.WithRateLimiter(limiter),
		api.WithMetrics(m),
	}
	if cache != nil {
		opts = append(opts, api.WithCache(cache, cfg.Cache.TTL))
	}
	if cfg.Server.CORS {
		opts = append(opts, api.WithCheckOrigin(func(*http.Request) bool { return true }))
	}
	return api.NewDashboardHandler(l, uc, cfg.Dashboard.Title, opts...)
}

// ProvideWebHandler creates the page handler.
func ProvideWebHandler(cfg *config.Config) (*web.Handler, error) {
	return web.New(cfg.Dashboard.Title)
}

// ProvideHTTPServer creates the Echo server with every handler registered.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, dash *api.DashboardHandler, page *web.Handler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(l, []xhttp.Handler{dash, page},
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(metricsPath, cfg.Metrics.SlowThreshold),
	)
}

// ProvideApp creates the application server.
func ProvideApp(l *applogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(l, srv)
}
