package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bistrobuzz/bistro/app/repositories"
	"github.com/bistrobuzz/bistro/config"
	"github.com/bistrobuzz/bistro/internal/server"
	"github.com/bistrobuzz/bistro/pkg/app"
	"github.com/bistrobuzz/bistro/pkg/cache"
	"github.com/bistrobuzz/bistro/pkg/database"
	"github.com/bistrobuzz/bistro/pkg/logger"
	"github.com/bistrobuzz/bistro/pkg/mail"
	"github.com/bistrobuzz/bistro/pkg/middleware"
	"github.com/bistrobuzz/bistro/pkg/payment"
)

const shutdownTimeout = 15 * time.Second

// bistro serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	store, err := bootDB(ctx)
	if err != nil {
		return err
	}

	var mongoLogs *logger.MongoHandler
	if config.LogToMongo() {
		mongoLogs = logger.NewMongoHandler(ctx, store.Collection(database.Logs), slog.LevelInfo)
		logger.Attach(mongoLogs)
	}

	rc, err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("menu cache disabled", "error", err)
	}

	mailer, err := mail.New(mail.Config{
		Driver:   config.MailDriver(),
		Host:     config.MailHost(),
		Port:     config.MailPort(),
		Username: config.MailUsername(),
		Password: config.MailPassword(),
		APIKey:   config.SendGridAPIKey(),
	})
	if err != nil {
		return err
	}

	db := store.DB
	a := app.New(app.Backends{
		Menu:     repositories.NewMenuRepository(db),
		Users:    repositories.NewUserRepository(db),
		Reviews:  repositories.NewReviewRepository(db),
		Carts:    repositories.NewCartRepository(db),
		Payments: repositories.NewPaymentRepository(db),
		Tx:       repositories.NewTransactor(store.Client, config.MongoTransactions()),
		Cache:    rc,
		Gateway:  payment.NewStripe(config.StripeSecretKey(), nil),
		Mailer:   mailer,
	}, app.Settings{
		TokenSecret:  config.TokenSecret(),
		Currency:     config.PaymentCurrency(),
		MailFrom:     config.MailUsername(),
		ContactTo:    config.ContactRecipient(),
		MenuCacheTTL: config.MenuCacheTTL(),
		RateLimit:    config.RateLimit(),
		CORS:         middleware.CORSFor(config.CORSOrigins()),
	})
	if a.Limiter != nil {
		go a.Limiter.Sweep(ctx)
	}

	srv := server.New(":"+config.AppPort(), a.Handler(), shutdownTimeout, logger.L)
	srv.OnShutdown("mongo", store.Close)
	if mongoLogs != nil {
		srv.OnShutdown("mongo logs", func(context.Context) error {
			mongoLogs.Close()
			return nil
		})
	}
	srv.OnShutdown("redis", func(context.Context) error { return rc.Close() })

	logger.Info("bistro starting",
		"env", config.AppEnv(),
		"port", config.AppPort(),
		"transactions", config.MongoTransactions(),
		"cache", rc.Enabled(),
		"mail", config.MailDriver(),
	)
	return srv.Run(ctx)
}

// bistro route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := app.New(app.Backends{}, app.Settings{}).Routes()

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
