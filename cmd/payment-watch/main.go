// Command payment-watch follows a payment transaction from the command line.
// It polls the status endpoint until the transaction settles, the poll budget
// runs out or the process is interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpclient "github.com/danakita/danakita/internal/pkg/http"
	"github.com/danakita/danakita/internal/pkg/models"
	"github.com/danakita/danakita/services/payment/poller"
)

type options struct {
	serviceURL  string
	id          string
	method      string
	interval    time.Duration
	maxDuration time.Duration
	longForm    bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.serviceURL, "url", "http://localhost:8080", "payment service base URL")
	flag.StringVar(&opts.id, "id", "", "transaction id to watch (required)")
	flag.StringVar(&opts.method, "method", "bank_reference", "payment method, sets the default poll cadence")
	flag.DurationVar(&opts.interval, "interval", 0, "poll interval (overrides the method default)")
	flag.DurationVar(&opts.maxDuration, "max-duration", 0, "poll budget (overrides the method default)")
	flag.BoolVar(&opts.longForm, "long-form", false, "use the long-form cadence for invoice-style references")
	flag.Parse()

	if opts.id == "" {
		fmt.Fprintln(os.Stderr, "payment-watch: -id is required")
		flag.Usage()
		os.Exit(2)
	}

	method := models.PaymentMethod(opts.method)
	if !method.IsValid() {
		fmt.Fprintf(os.Stderr, "payment-watch: unknown method %q\n", opts.method)
		os.Exit(2)
	}

	if opts.longForm {
		if opts.interval == 0 {
			opts.interval = poller.LongFormInterval
		}
		if opts.maxDuration == 0 {
			opts.maxDuration = poller.LongFormMaxDuration
		}
	}
	if opts.interval == 0 {
		opts.interval = poller.DefaultInterval(method)
	}
	if opts.maxDuration == 0 {
		opts.maxDuration = poller.DefaultMaxDuration(method)
	}

	return opts
}

// httpStatusQuerier answers status queries against the service's HTTP API
type httpStatusQuerier struct {
	client *httpclient.Client
}

func (q *httpStatusQuerier) QueryStatus(ctx context.Context, id string) (models.TransactionState, error) {
	var resp models.StatusResponse
	path := fmt.Sprintf("/api/v1/donations/%s/status", id)
	if err := q.client.GetJSON(ctx, path, &resp); err != nil {
		return "", err
	}
	return resp.State, nil
}

func main() {
	opts := parseFlags()

	querier := &httpStatusQuerier{
		client: httpclient.NewClient(opts.serviceURL, opts.interval),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	fmt.Printf("watching %s every %s for up to %s\n", opts.id, opts.interval, opts.maxDuration)

	p := poller.New(querier)
	for snapshot := range p.Poll(ctx, opts.id, opts.interval, opts.maxDuration) {
		stamp := snapshot.ObservedAt.Format(time.RFC3339)
		if snapshot.Err != nil {
			fmt.Printf("%s  query error: %v\n", stamp, snapshot.Err)
			continue
		}

		fmt.Printf("%s  %s\n", stamp, snapshot.State)

		if snapshot.Terminal() {
			fmt.Printf("transaction settled as %s\n", snapshot.State)
			return
		}
	}

	if ctx.Err() != nil {
		fmt.Println("interrupted")
		os.Exit(130)
	}

	fmt.Println("poll budget exhausted before the transaction settled")
	os.Exit(1)
}
