package main

import (
	"fmt"
	"os"

	"github.com/AlibekovAA/todo-rpc/internal/common/bootstrap"
	commonhttp "github.com/AlibekovAA/todo-rpc/internal/common/http"
	srv "github.com/AlibekovAA/todo-rpc/internal/common/server"
	webhttp "github.com/AlibekovAA/todo-rpc/internal/web/http"
)

func main() {
	app, err := bootstrap.NewWebApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize web: %v\n", err)
		os.Exit(1)
	}

	cfg := app.Config
	handler := webhttp.NewHandler(app.Client, app.Log, cfg.RequestTimeout, map[string]commonhttp.HealthCheck{
		"api": app.Caller.Ping,
	})

	app.Log.Infof("rendering against %s%s", cfg.APIURL, cfg.RPCEndpoint)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), commonhttp.BuildBaseHandler("web", app.Log, "", webhttp.Routes(), handler))
	srv.StartWithGracefulShutdown(server, app.Log, "web")
}
