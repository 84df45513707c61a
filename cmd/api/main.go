package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AlibekovAA/todo-rpc/internal/common/bootstrap"
	commonhttp "github.com/AlibekovAA/todo-rpc/internal/common/http"
	srv "github.com/AlibekovAA/todo-rpc/internal/common/server"
	rpchttp "github.com/AlibekovAA/todo-rpc/internal/rpc/http"
)

func main() {
	app, err := bootstrap.NewAPIApp(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize api: %v\n", err)
		os.Exit(1)
	}

	cfg := app.Config
	limiter := commonhttp.NewRPCRateLimiter(
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
		cfg.RateLimit.MutationRequestsPerSecond,
		cfg.RateLimit.MutationBurst,
	)

	handler := rpchttp.NewHandler(app.Router, app.Log, rpchttp.Options{
		Endpoint:       cfg.RPCEndpoint,
		RequestTimeout: cfg.RequestTimeout,
		RateLimit:      limiter.Middleware(),
		HealthChecks: map[string]commonhttp.HealthCheck{
			"database": app.Pool.Ping,
		},
		ExposeMetrics: true,
	})

	for _, d := range app.Router.Procedures() {
		app.Log.Infof("procedure registered: %s (%s) at %s/%s", d.Path, d.Kind, cfg.RPCEndpoint, d.Path)
	}

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), commonhttp.BuildBaseHandler("api", app.Log, "", rpchttp.Routes(app.Router, cfg.RPCEndpoint), handler))

	srv.StartWithGracefulShutdownAndHooks(server, app.Log, "api", []srv.ShutdownHook{
		func(ctx context.Context) error {
			limiter.Stop()
			return nil
		},
		func(ctx context.Context) error {
			app.StopMetrics()
			app.Pool.Close()
			return nil
		},
	})
}
