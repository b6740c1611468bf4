package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"event-storefront/internal/api"
	"event-storefront/internal/config"
	"event-storefront/internal/models"
	"event-storefront/internal/services"

	"github.com/sirupsen/logrus"
)

// watch-payment follows one order's payment status from the terminal, using
// the same polling loop the web UI runs. Handy when debugging a provider that
// confirms slowly.
func main() {
	orderID := flag.Int("order", 0, "order id to watch")
	token := flag.String("token", os.Getenv("API_TOKEN"), "bearer token of the order's owner")
	interval := flag.Duration("interval", 0, "poll interval (default from config)")
	flag.Parse()

	if *orderID == 0 {
		fmt.Fprintln(os.Stderr, "usage: watch-payment -order <id> [-token <token>] [-interval 5s]")
		os.Exit(2)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	pollInterval := cfg.Payment.PollInterval
	if *interval > 0 {
		pollInterval = *interval
	}

	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log).WithToken(*token)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	poller := services.NewStatusPoller(client, *orderID, pollInterval, log)
	poller.OnStatus = func(status models.PaymentStatus) {
		fmt.Printf("%s order %d: %s\n", time.Now().Format("15:04:05"), status.OrderID, status.Status)
	}

	status, err := poller.Run(ctx)
	if err != nil {
		log.WithError(err).Fatal("polling stopped")
	}

	if status.Status == models.OrderPaid && status.PaidAt != nil {
		fmt.Printf("paid at %s\n", status.PaidAt.Format(time.RFC3339))
	} else {
		fmt.Printf("final status: %s\n", status.Status)
	}
}
