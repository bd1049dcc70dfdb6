package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ayusovnc/fhir-demo/internal/config"
	"github.com/ayusovnc/fhir-demo/internal/domain/observation"
	"github.com/ayusovnc/fhir-demo/internal/domain/patient"
	"github.com/ayusovnc/fhir-demo/internal/domain/terminology"
	"github.com/ayusovnc/fhir-demo/internal/platform/auth"
	"github.com/ayusovnc/fhir-demo/internal/platform/db"
	"github.com/ayusovnc/fhir-demo/internal/platform/fhir"
	"github.com/ayusovnc/fhir-demo/internal/platform/middleware"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:           "fhir-server",
		Short:         "FHIR facade over clinic lab results",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(codesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the FHIR API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func codesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Inspect the panel and local code directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print group counts per universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := loadDirectory(zerolog.Nop())
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print the members of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := loadDirectory(zerolog.Nop())
			if err != nil {
				return err
			}
			return printGroup(cmd.OutOrStdout(), dir, args[0])
		},
	})

	return cmd
}

func newLogger(cfg *config.Config) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.IsDev() {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	logger := zerolog.New(out).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func loadDirectory(logger zerolog.Logger) (*terminology.Directory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return terminology.LoadDirectory(cfg.LOINCPanelsPath, cfg.LocalGroupsPath, cfg.LocalGroupSystem, logger)
}

func printStats(w io.Writer, dir *terminology.Directory) {
	for _, u := range []terminology.Universe{terminology.UniversePanel, terminology.UniverseLocal} {
		fmt.Fprintf(w, "%-6s %6d groups  (%s)\n", u, dir.Len(u), dir.System(u))
	}
}

func printGroup(w io.Writer, dir *terminology.Directory, id string) error {
	groups := dir.Describe(id)
	if len(groups) == 0 {
		return fmt.Errorf("group %q not found in either universe", id)
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%s %s|%s %s\n", g.Universe, g.System, g.ID, g.Display)
		for _, m := range g.Members {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
	return nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)
	if err := cfg.ValidateServe(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	policy, err := observation.ParseInterpretationPolicy(cfg.InterpretationPolicy)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid interpretation policy")
	}

	// Code directory
	dir, err := terminology.LoadDirectory(cfg.LOINCPanelsPath, cfg.LocalGroupsPath, cfg.LocalGroupSystem, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load code directory")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, db.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// Auth middleware
	if cfg.IsDev() {
		logger.Warn().Msg("development mode: authentication disabled")
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.AuthSigningKey),
			Skipper:    auth.AuthSkipper,
		}))
	}

	// Health
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool, func() *db.PoolStats { return db.GetPoolStats(pool) }))

	// API groups
	apiV1 := e.Group("/api/v1")
	fhirGroup := e.Group("/fhir")

	mapper := observation.NewMapper(dir, policy, logger)
	obsSvc := observation.NewService(observation.NewRepoPG(pool), mapper, dir, logger)
	observation.NewHandler(obsSvc).RegisterRoutes(fhirGroup)

	patientSvc := patient.NewService(patient.NewRepoPG(pool), logger)
	patient.NewHandler(patientSvc).RegisterRoutes(fhirGroup)

	terminology.NewHandler(dir).RegisterRoutes(apiV1)

	capStmt := fhir.NewCapabilityStatement("http://localhost:"+cfg.Port+"/fhir", version, []fhir.CSResource{
		fhir.ReadOnlyCapability("Observation", observation.SearchParamsCapability()),
		fhir.ReadOnlyCapability("Patient", nil),
	})
	fhirGroup.GET("/metadata", fhir.CapabilityHandler(capStmt))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
