package app

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vpikulik/prometheus-podman-exporter/cmd/exporter/app/options"
	"github.com/vpikulik/prometheus-podman-exporter/internal/api/container"
	"github.com/vpikulik/prometheus-podman-exporter/internal/podman"
)

type Server struct {
	app    *fiber.App
	health *http.Server
	client *podman.Client
	logger *zap.Logger
}

func NewServer(opts *options.Options, logger *zap.Logger) (*Server, error) {
	// connect podman API service
	podmanConfig, err := podman.NewConfig()
	if err != nil {
		return nil, err
	}
	client, err := podman.NewClient(*opts.PodmanURI, podmanConfig)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := fiber.New(fiber.Config{
		AppName: "Podman Exporter",
		Prefork: false,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(compress.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] [${ip}:${port}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	if *opts.Mode == "debug" {
		app.Use(pprof.New())
	}

	// container
	containerLogger := logger.Named("container")
	metrics := container.NewMetrics(registry)
	containerService := container.NewContainerService(client, metrics, containerLogger)
	container.ContainerRouter(app, containerService, registry, containerLogger)

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(200))
	health.AddReadinessCheck("podman-api", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Ping(ctx)
	})
	healthServer := &http.Server{
		Addr:              net.JoinHostPort(*opts.Host, strconv.Itoa(*opts.HealthPort)),
		Handler:           health,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		app:    app,
		health: healthServer,
		client: client,
		logger: logger,
	}, nil
}

func (app *Server) Listen(host string, port int, certFile, keyFile *string) error {
	address := net.JoinHostPort(host, strconv.Itoa(port))
	app.logger.Info("Starting podman-exporter ...",
		zap.String("address", address),
		zap.String("podman", app.client.URI()))

	if certFile != nil && keyFile != nil {
		if *certFile != "" && *keyFile != "" {
			return app.app.ListenTLS(address, *certFile, *keyFile)
		}
	}
	return app.app.Listen(address)
}

func (app *Server) Shutdown(parentCtx context.Context) error {
	g, ctx := errgroup.WithContext(parentCtx)
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	g.Go(func() error {
		if err := app.app.ShutdownWithContext(ctx); err != nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := app.health.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}

func Run(opts *options.Options, logger *zap.Logger) error {
	serverError := make(chan error, 1)

	server, err := NewServer(opts, logger)
	if err != nil {
		return err
	}

	go func() {
		if err := server.Listen(*opts.Host, *opts.Port, opts.CertFile, opts.KeyFile); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()
	go func() {
		logger.Info("Starting health endpoint ...", zap.String("address", server.health.Addr))
		if err := server.health.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutdown server ...")

		ctx := context.Background()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("close podman-exporter failed", zap.Error(err))
			return err
		}
	case err := <-serverError:
		return err
	}

	return nil
}
