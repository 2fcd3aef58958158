package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/zhouzirui/launchboard/backend/internal/config"
	"github.com/zhouzirui/launchboard/backend/internal/handler"
	launchHandler "github.com/zhouzirui/launchboard/backend/internal/handler/launch"
	"github.com/zhouzirui/launchboard/backend/internal/handler/static"
	launchService "github.com/zhouzirui/launchboard/backend/internal/service/launch"
	"github.com/zhouzirui/launchboard/backend/internal/store"
	"github.com/zhouzirui/launchboard/backend/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	launchStore, closer, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("failed to open launch store: %v", err)
	}
	defer closer.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []launchService.Option{launchService.WithMetrics(launchService.NewMetrics(registry))}
	if cfg.Store.Timeout > 0 {
		opts = append(opts, launchService.WithTimeout(cfg.Store.Timeout))
		log.Printf("store scans bounded to %s", cfg.Store.Timeout)
	}
	launches := launchService.NewService(launchStore, opts...)

	settings := launchHandler.Settings{
		Title:    cfg.Dashboard.Title,
		Statuses: cfg.Dashboard.TrackedStatuses(),
	}

	assets, err := loadAssets(cfg.Server.StaticDir, settings)
	if err != nil {
		log.Fatalf("failed to load static assets: %v", err)
	}
	router := handler.NewRouter(launches, settings, assets)

	servers := []*http.Server{newServer(cfg.Server.Addr, router)}
	if cfg.Metrics.Enabled() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
		servers = append(servers, newServer(cfg.Metrics.Addr, mux))
	}

	if err := startServers(ctx, cfg.Server.ShutdownTimeout, servers...); err != nil {
		// deferred closers do not run after log.Fatalf
		closer.Close()
		log.Fatalf("server error: %v", err)
	}
}

func loadAssets(dir string, settings launchHandler.Settings) (*static.Handler, error) {
	var files fs.FS
	if dir != "" {
		log.Printf("serving static assets from %s", dir)
		files = os.DirFS(dir)
	} else {
		embedded, err := web.Assets()
		if err != nil {
			return nil, err
		}
		files = embedded
	}
	return static.New(files, static.WithSettings(settings))
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// startServers runs every server until ctx ends or one of them fails.
func startServers(ctx context.Context, shutdownTimeout time.Duration, servers ...*http.Server) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		log.Printf("Launchboard backend listening on %s", srv.Addr)
		g.Go(func() error {
			return runServer(gctx, srv, shutdownTimeout)
		})
	}
	return g.Wait()
}

func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
