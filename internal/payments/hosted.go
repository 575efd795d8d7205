package payments

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/trackinventory/trackinventory/internal/log"
)

// HostedCheckout opens the gateway's hosted checkout page in the user's
// browser and runs a loopback HTTP listener that receives the completion
// callback. "Cancellation" of an abandoned checkout is ctx expiry.
type HostedCheckout struct {
	cfg *hostedConfig
}

type hostedConfig struct {
	pageURL    *url.URL
	listenAddr string
	open       func(rawURL string) error
}

// A HostedOption customizes the hosted checkout.
type HostedOption func(*hostedConfig)

// WithListenAddr sets the loopback address for the callback listener.
func WithListenAddr(addr string) HostedOption {
	return func(cfg *hostedConfig) { cfg.listenAddr = addr }
}

// WithBrowserOpener sets the function used to open the checkout page.
func WithBrowserOpener(open func(rawURL string) error) HostedOption {
	return func(cfg *hostedConfig) { cfg.open = open }
}

// NewHostedCheckout creates a checkout against the gateway page at pageURL.
func NewHostedCheckout(pageURL *url.URL, opts ...HostedOption) *HostedCheckout {
	cfg := &hostedConfig{
		pageURL:    pageURL,
		listenAddr: "127.0.0.1:0",
		open:       openBrowser,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &HostedCheckout{cfg: cfg}
}

var _ Checkout = (*HostedCheckout)(nil)

// Open starts the callback listener, opens the hosted page, and waits for the
// gateway to post the completion form.
func (h *HostedCheckout) Open(ctx context.Context, order *Order) (*Completion, error) {
	li, err := net.Listen("tcp", h.cfg.listenAddr)
	if err != nil {
		return nil, fmt.Errorf("payments: failed to start callback listener: %w", err)
	}
	defer func() { _ = li.Close() }()

	incoming := make(chan *Completion)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return h.runCallbackServer(ctx, li, incoming)
	})
	eg.Go(func() error {
		return h.openCheckoutPage(ctx, li, order)
	})

	var completion *Completion
	eg.Go(func() error {
		select {
		case completion = <-incoming:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return completion, nil
}

func (h *HostedCheckout) runCallbackServer(ctx context.Context, li net.Listener, incoming chan *Completion) error {
	var srv *http.Server
	srv = &http.Server{
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			completion := &Completion{
				OrderID:   r.FormValue("razorpay_order_id"),
				PaymentID: r.FormValue("razorpay_payment_id"),
				Signature: r.FormValue("razorpay_signature"),
			}
			if completion.OrderID == "" || completion.PaymentID == "" {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			incoming <- completion

			w.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(w, "payment complete, you may close this page")

			go func() { _ = srv.Shutdown(ctx) }()
		}),
	}
	// shutdown the server when ctx is done.
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	err := srv.Serve(li)
	if err == http.ErrServerClosed {
		err = nil
	}
	return err
}

func (h *HostedCheckout) openCheckoutPage(ctx context.Context, li net.Listener, order *Order) error {
	dst := h.cfg.pageURL.ResolveReference(&url.URL{
		RawQuery: url.Values{
			"key":          {order.KeyID},
			"order_id":     {order.OrderID},
			"amount":       {fmt.Sprintf("%d", order.Amount*100)}, // gateway wants minor units
			"currency":     {order.Currency},
			"description":  {order.Description},
			"callback_url": {fmt.Sprintf("http://%s", li.Addr().String())},
		}.Encode(),
	})

	log.Ctx(ctx).Info().Str("order-id", order.OrderID).Msg("payments: opening hosted checkout")
	if err := h.cfg.open(dst.String()); err != nil {
		return fmt.Errorf("payments: failed to open checkout page: %w", err)
	}
	return nil
}
