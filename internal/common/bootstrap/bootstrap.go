package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/todo-rpc/internal/api"
	"github.com/AlibekovAA/todo-rpc/internal/common/config"
	"github.com/AlibekovAA/todo-rpc/internal/common/constants"
	"github.com/AlibekovAA/todo-rpc/internal/common/db"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/rpc"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/client"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
	todorepo "github.com/AlibekovAA/todo-rpc/internal/todo/repository"
	todoservice "github.com/AlibekovAA/todo-rpc/internal/todo/service"
	userrepo "github.com/AlibekovAA/todo-rpc/internal/user/repository"
	userservice "github.com/AlibekovAA/todo-rpc/internal/user/service"
)

type APIApp struct {
	Log    *logger.Logger
	Config config.APIConfig
	Pool   *pgxpool.Pool
	Router *rpc.Router
	// StopMetrics ends the pool metrics collector.
	StopMetrics context.CancelFunc
}

type WebApp struct {
	Log    *logger.Logger
	Config config.WebConfig
	Caller *client.HTTPCaller
	Client *client.Client
}

// NewAPIApp wires the RPC service: config, migrations, the shared pool,
// repositories, services and the verified router.
func NewAPIApp(ctx context.Context) (*APIApp, error) {
	cfg, err := config.LoadAPIConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := initializeLogger("api", cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, log, cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	db.StartPoolMetrics(metricsCtx, pool, constants.DBPoolMetricsInterval)

	router := api.NewAppRouter(
		todoservice.NewTodoService(todorepo.NewPgTodoRepository(pool), log),
		userservice.NewUserService(userrepo.NewPgUserRepository(pool), log),
		log,
	)
	if err := router.Verify(contract.All()); err != nil {
		stopMetrics()
		pool.Close()
		return nil, fmt.Errorf("router does not match contract: %w", err)
	}

	return &APIApp{
		Log:         log,
		Config:      cfg,
		Pool:        pool,
		Router:      router,
		StopMetrics: stopMetrics,
	}, nil
}

// NewWebApp wires the presentation server to the remote RPC endpoint.
func NewWebApp() (*WebApp, error) {
	cfg, err := config.LoadWebConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := initializeLogger("web", cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	caller := client.NewHTTPCaller(cfg.APIURL, cfg.RPCEndpoint, &http.Client{Timeout: cfg.RequestTimeout})

	return &WebApp{
		Log:    log,
		Config: cfg,
		Caller: caller,
		Client: client.New(caller),
	}, nil
}

func initializeLogger(serviceName string, cfg config.LogConfig) (*logger.Logger, error) {
	return logger.New(cfg.Dir, serviceName, cfg.Level)
}
