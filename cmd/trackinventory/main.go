// Package main contains the trackinventory client app.
package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/trackinventory/trackinventory/config"
	"github.com/trackinventory/trackinventory/internal/api"
	"github.com/trackinventory/trackinventory/internal/encoding/jsonenc"
	"github.com/trackinventory/trackinventory/internal/frontend"
	"github.com/trackinventory/trackinventory/internal/guard"
	"github.com/trackinventory/trackinventory/internal/log"
	"github.com/trackinventory/trackinventory/internal/payments"
	"github.com/trackinventory/trackinventory/internal/sessions"
	"github.com/trackinventory/trackinventory/internal/urlutil"
	"github.com/trackinventory/trackinventory/internal/version"
)

func main() {
	var configFile string
	root := &cobra.Command{
		Use:          "trackinventory",
		Version:      version.FullVersion(),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "Specify configuration file location")
	log.SetLevel(zerolog.InfoLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root.RunE = func(_ *cobra.Command, _ []string) error {
		defer log.Ctx(ctx).Info().Msg("cmd/trackinventory: exiting")
		return run(ctx, configFile)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("cmd/trackinventory")
	}
}

func run(ctx context.Context, configFile string) error {
	o, err := config.NewOptions(configFile)
	if err != nil {
		return err
	}
	if level, err := zerolog.ParseLevel(o.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store, err := sessions.NewFileStore(o.SessionFile, jsonenc.New())
	if err != nil {
		return err
	}

	// The client reads its bearer token from the controller, and the
	// controller fetches profiles through the client.
	var ctrl *sessions.Controller
	client := api.New(o.GetAPIURL(), api.WithTokenSource(api.TokenSourceFunc(func() string {
		if ctrl == nil {
			return ""
		}
		return ctrl.Token()
	})))
	ctrl = sessions.NewController(store, client)
	if ctrl.IsAuthenticated() {
		ctrl.Refresh(ctx)
	}

	checkout := payments.NewHostedCheckout(o.GetCheckoutPageURL(),
		payments.WithListenAddr(o.CheckoutAddr))
	flow := payments.NewFlow(client, checkout)

	baseURL, err := urlutil.ParseAndValidateURL("http://" + o.Addr)
	if err != nil {
		return err
	}
	g := guard.New(ctrl, frontend.SignInURL(baseURL))
	app := frontend.New(client, ctrl, flow, g)

	srv := &http.Server{
		Addr:         o.Addr,
		Handler:      app.Router(),
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
		IdleTimeout:  o.IdleTimeout,
		ErrorLog:     stdlog.New(&log.StdLogWrapper{Logger: log.Logger()}, "", 0),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Ctx(ctx).Info().Str("address", o.Addr).Msg("cmd/trackinventory: listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown(context.Background())
	})
	return eg.Wait()
}
