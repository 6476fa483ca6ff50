// Package notify relays order and feedback events to an external email webhook.
//
// Delivery is at-most-once with no guarantee: a send happens after the
// authoritative write, is never retried, and its outcome is only logged.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/juju/errors"
)

// Message is the payload understood by Formspree-style form relays.
type Message struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	ReplyTo string `json:"_replyto,omitempty"`
}

// Notifier delivers a single message.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Webhook posts messages as JSON to Endpoint.
type Webhook struct {
	Endpoint string
	Client   *http.Client
}

// NewWebhook returns a Webhook whose requests give up after timeout.
func NewWebhook(endpoint string, timeout time.Duration) *Webhook {
	return &Webhook{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (w *Webhook) Notify(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Trace(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return errors.Trace(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Annotate(err, "failed to reach notification endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("notification endpoint error (%d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// Dispatcher sends messages in the background. A nil Notifier disables it.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewDispatcher wraps n. Each send is bounded by timeout.
func NewDispatcher(n Notifier, timeout time.Duration) *Dispatcher {
	return &Dispatcher{notifier: n, timeout: timeout}
}

// Enabled reports whether messages are actually sent.
func (d *Dispatcher) Enabled() bool {
	return d != nil && d.notifier != nil
}

// Dispatch sends msg on its own goroutine and returns immediately.
func (d *Dispatcher) Dispatch(msg Message) {
	if !d.Enabled() {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx := context.Background()
		if d.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.timeout)
			defer cancel()
		}

		if err := d.notifier.Notify(ctx, msg); err != nil {
			log.Printf("❌ Email error for %q: %v", msg.Subject, err)
			return
		}
		log.Printf("✅ Email sent: %s", msg.Subject)
	}()
}

// Wait blocks until every dispatched message has finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
