package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techfix-shop/internal/config"
	"techfix-shop/internal/db"
	"techfix-shop/internal/httpserver"
	"techfix-shop/internal/notify"
	cartrepo "techfix-shop/internal/repository/cart"
	catalogrepo "techfix-shop/internal/repository/catalog"
	customerrepo "techfix-shop/internal/repository/customer"
	orderrepo "techfix-shop/internal/repository/order"
	cartsvc "techfix-shop/internal/service/cart"
	catalogsvc "techfix-shop/internal/service/catalog"
	customersvc "techfix-shop/internal/service/customer"
	ordersvc "techfix-shop/internal/service/order"
	wizardsvc "techfix-shop/internal/service/wizard"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	catalogService := catalogsvc.New(catalogrepo.NewPostgres(dbpool, logger))
	cartService := cartsvc.New(cartrepo.NewPostgres(dbpool, logger))
	wizardService := wizardsvc.New(catalogService, cartService, logger)
	mailer := notify.NewMailer(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName, logger)
	orderService := ordersvc.New(orderrepo.NewPostgres(dbpool, logger), cartService, catalogService, mailer, logger)
	tokenManager := customersvc.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	customerService := customersvc.New(customerrepo.NewPostgres(dbpool, logger), tokenManager)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:   catalogService,
		Cart:      cartService,
		Wizard:    wizardService,
		Orders:    orderService,
		Customers: customerService,
		Mailer:    mailer,
	}, cfg.CORSOrigins)

	// Abandoned wizard sessions are cleaned up in the background.
	pruneStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				wizardService.Prune(2 * time.Hour)
			case <-pruneStop:
				return
			}
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}
	close(pruneStop)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
