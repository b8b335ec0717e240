package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/signup-web/captcha"
	"github.com/danielhkuo/signup-web/cliparse"
	"github.com/danielhkuo/signup-web/db"
	"github.com/danielhkuo/signup-web/handlers"
	"github.com/danielhkuo/signup-web/mockapi"
	"github.com/danielhkuo/signup-web/router"
)

const (
	Version = "0.1.0"

	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	if err := rootCmd().Execute(); err != nil {
		slog.Error("Exiting", "error", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup-web",
		Short: "Sign-up web front end",
		Long: `signup-web serves the sign-up page, validates submissions, calls the
registration API and keeps the resulting session.

Flags are parsed by the cliparse package; see "signup-web --help".`,
		// cliparse owns the flag set so env and YAML precedence stays in one place
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(args)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:                "mock-api",
		Short:              "Run the development registration API",
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveMockAPI(args)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("signup-web version %s\n", Version)
		},
	})

	return cmd
}

func serve(args []string) error {
	cfg, err := cliparse.ParseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	conn, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc, err := handlers.NewServices(conn, cfg, reg)
	if err != nil {
		return err
	}
	mux := router.NewRouter(svc, cfg, reg)

	if cfg.RecaptchaSiteKey == "" {
		slog.Info("CAPTCHA disabled (no site key)")
	}

	return run(cfg.Port, mux,
		func(ctx context.Context) {
			svc.Forms.Run(ctx, sweepInterval)
		},
		func(ctx context.Context) {
			janitor(ctx, svc)
		},
	)
}

func serveMockAPI(args []string) error {
	cfg, err := cliparse.ParseMockFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	conn, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	var verifier mockapi.Verifier
	if cfg.RecaptchaSecret != "" {
		verifier = captcha.NewVerifier(cfg.RecaptchaSecret, "", &http.Client{Timeout: cfg.APITimeout})
	} else {
		slog.Warn("RECAPTCHA_SECRET not set, CAPTCHA tokens are not verified")
	}

	return run(cfg.Port, router.NewMockRouter(conn, cfg, verifier))
}

func openDatabase(cfg cliparse.Config) (*db.Conn, error) {
	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	return conn, nil
}

// run serves handler until SIGINT or SIGTERM, running every background task
// alongside the server.
func run(port int, handler http.Handler, background ...func(context.Context)) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		slog.Info("Server closed", "error", err)
		return err
	})

	for _, task := range background {
		g.Go(func() error {
			task(gctx)
			return nil
		})
	}

	return g.Wait()
}

// janitor forgets used CAPTCHA tokens and deletes expired sessions.
func janitor(ctx context.Context, svc *handlers.Services) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.Captchas.Sweep()
			n, err := svc.Sessions.PurgeExpired(ctx)
			if err != nil {
				slog.Error("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions purged", "count", n)
			}
		}
	}
}
