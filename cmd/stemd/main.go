package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stemd-dev/stemd/internal/adapters/inference"
	"github.com/stemd-dev/stemd/internal/config"
	"github.com/stemd-dev/stemd/internal/server"
)

func main() {
	var envFile, configFile string
	flag.StringVar(&envFile, "env", "", "path to load env from")
	flag.StringVar(&configFile, "config", "stemd.toml", "path to TOML config file")
	flag.Parse()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Fatalf("error loading env file %q: %v", envFile, err)
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	invoker := inference.New(cfg.Tool.Interpreter, cfg.Tool.Script, cfg.ToolTimeout())
	srv := server.New(invoker, cfg.Defaults)

	httpServer := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: srv.Routes(),
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Fatalf("forced shutdown: %v", err)
		}
	}()

	log.Printf("stemd listening on %s (tool: %s %s)", cfg.Server.Listen, cfg.Tool.Interpreter, cfg.Tool.Script)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("could not listen on %s: %v", cfg.Server.Listen, err)
	}
	log.Println("server stopped")
}
