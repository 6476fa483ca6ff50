package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWebhookPostsJSON(t *testing.T) {
	var got Message
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, time.Second)
	err := hook.Notify(context.Background(), Message{Subject: "hello", Message: "body", ReplyTo: "a@b.c"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, Message{Subject: "hello", Message: "body", ReplyTo: "a@b.c"}, got)
}

func TestWebhookOmitsEmptyReplyTo(t *testing.T) {
	var raw map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
	}))
	defer srv.Close()

	require.NoError(t, NewWebhook(srv.URL, time.Second).Notify(context.Background(), Message{Subject: "s"}))
	assert.NotContains(t, raw, "_replyto")
}

func TestWebhookReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL, time.Second).Notify(context.Background(), Message{Subject: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestWebhookUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewWebhook(url, time.Second).Notify(context.Background(), Message{Subject: "s"})
	assert.Error(t, err)
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []Message
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return r.err
}

func TestDispatcherSendsInBackground(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rec := &recordingNotifier{}
	d := NewDispatcher(rec, time.Second)
	require.True(t, d.Enabled())

	d.Dispatch(Message{Subject: "one"})
	d.Dispatch(Message{Subject: "two"})
	d.Wait()

	assert.Len(t, rec.msgs, 2)
}

func TestDispatcherSwallowsErrors(t *testing.T) {
	rec := &recordingNotifier{err: errors.New("boom")}
	d := NewDispatcher(rec, time.Second)

	assert.NotPanics(t, func() {
		d.Dispatch(Message{Subject: "one"})
		d.Wait()
	})
	assert.Len(t, rec.msgs, 1)
}

func TestDisabledDispatcher(t *testing.T) {
	d := NewDispatcher(nil, time.Second)
	assert.False(t, d.Enabled())
	d.Dispatch(Message{Subject: "dropped"})
	d.Wait()

	var nilDispatcher *Dispatcher
	assert.False(t, nilDispatcher.Enabled())
	nilDispatcher.Dispatch(Message{Subject: "dropped"})
	nilDispatcher.Wait()
}

type blockingNotifier struct {
	calls int32
}

func (b *blockingNotifier) Notify(ctx context.Context, _ Message) error {
	atomic.AddInt32(&b.calls, 1)
	<-ctx.Done()
	return ctx.Err()
}

func TestDispatcherTimeout(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	b := &blockingNotifier{}
	d := NewDispatcher(b, 20*time.Millisecond)

	d.Dispatch(Message{Subject: "slow"})
	d.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&b.calls))
}
