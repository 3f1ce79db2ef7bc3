package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"quote-wizard/internal/catalog"
	"quote-wizard/internal/config"
	"quote-wizard/internal/engine"
	"quote-wizard/internal/handler"
	"quote-wizard/internal/pricingapi"
	"quote-wizard/internal/sessions"
)

const sweepInterval = time.Minute

func serveCmd() *cobra.Command {
	var flags config.Config
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wizard JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, flags); err != nil {
				return err
			}
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return serve(cmd.Context(), cfg, logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.Port, "port", d.Port, "listen port (env PORT)")
	f.StringVar(&flags.PricingAPIURL, "pricing-url", d.PricingAPIURL, "pricing backend base URL (env PRICING_API_URL)")
	f.DurationVar(&flags.PricingTimeout, "pricing-timeout", d.PricingTimeout, "pricing backend timeout (env PRICING_API_TIMEOUT)")
	f.DurationVar(&flags.Debounce, "debounce", d.Debounce, "instant preview debounce (env PREVIEW_DEBOUNCE)")
	f.StringVar(&flags.CompanySlug, "company", d.CompanySlug, "company slug sent with submissions (env COMPANY_SLUG)")
	f.DurationVar(&flags.SessionTTL, "session-ttl", d.SessionTTL, "idle session lifetime, 0 keeps sessions (env SESSION_TTL)")
	return cmd
}

func serve(ctx context.Context, c config.Config, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pricing := pricingapi.New(c.PricingAPIURL, c.PricingTimeout, logger.Named("pricing"))
	cat := catalog.New(pricing, logger.Named("catalog"))
	reg := sessions.NewRegistry(engine.Deps{
		Backend:     pricing,
		Templates:   cat,
		CompanySlug: c.CompanySlug,
		Debounce:    c.Debounce,
		Logger:      logger.Named("wizard"),
	}, c.SessionTTL, logger.Named("sessions"))
	go reg.Run(ctx, sweepInterval)

	srv := &fasthttp.Server{
		Handler:      handler.New(reg, cat, logger.Named("http")).Handle,
		Name:         "quote-wizard",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("quote wizard starting",
			zap.String("port", c.Port),
			zap.String("pricing_api_url", c.PricingAPIURL),
		)
		errc <- srv.ListenAndServe(":" + c.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		return srv.Shutdown()
	}
}
