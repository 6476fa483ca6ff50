package orderControllers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	"github.com/junaidrashid-git/fishparque-api/catalog"
	"github.com/junaidrashid-git/fishparque-api/models"
	"github.com/junaidrashid-git/fishparque-api/notify"
	"github.com/junaidrashid-git/fishparque-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, msg notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return r.err
}

func (r *recordingNotifier) messages() []notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Message(nil), r.msgs...)
}

type fixture struct {
	svc        *Service
	store      *store.Store
	notifier   *recordingNotifier
	dispatcher *notify.Dispatcher
	hub        *Hub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	rec := &recordingNotifier{}
	dispatcher := notify.NewDispatcher(rec, time.Second)
	hub := NewHub()
	t.Cleanup(hub.Close)

	svc := NewService(st, catalog.Default(), dispatcher,
		notify.Formatter{StoreName: "Fish Parque", Currency: "₦"}, hub, testclock.NewClock(placedAt))
	return &fixture{svc: svc, store: st, notifier: rec, dispatcher: dispatcher, hub: hub}
}

func validRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		UserEmail:   "ada@example.com",
		UserName:    "Ada",
		UserPhone:   "08012345678",
		UserAddress: "12 Marina, Lagos",
		Cart: []models.CartItem{
			{ID: "catfish", Quantity: 2},
			{ID: "fish_feed", Quantity: 10.5},
		},
	}
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.PlaceOrder(validRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "FP20260314092653-"), order.OrderNumber)
	assert.Len(t, order.OrderNumber, len("FP20260314092653-")+8)
	assert.Equal(t, "2026-03-14 09:26:53", order.Date)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.Customer{Name: "Ada", Email: "ada@example.com", Phone: "08012345678", Address: "12 Marina, Lagos"}, order.Customer)

	require.Len(t, order.Items, 2)
	assert.Equal(t, models.CartItem{ID: "catfish", Name: "Catfish", Price: 1500, Unit: "kg", Quantity: 2, Subtotal: 3000}, order.Items[0])
	assert.Equal(t, 5250.0, order.Items[1].Subtotal)

	var sum float64
	for _, item := range order.Items {
		sum += item.Subtotal
	}
	assert.Equal(t, sum, order.Total)

	stored := f.store.Orders()
	require.Len(t, stored, 1)
	assert.Equal(t, order, stored[0])
}

func TestPlaceOrderIgnoresClientPrices(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Cart = []models.CartItem{{ID: "catfish", Name: "Cheap fish", Price: 1, Quantity: 1, Subtotal: 1}}
	req.Total = 1

	order, err := f.svc.PlaceOrder(req)
	require.NoError(t, err)

	assert.Equal(t, "Catfish", order.Items[0].Name)
	assert.Equal(t, 1500, order.Items[0].Price)
	assert.Equal(t, 1500.0, order.Total)
}

func TestPlaceOrderValidation(t *testing.T) {
	cases := map[string]struct {
		cart    []models.CartItem
		message string
	}{
		"empty cart":      {nil, "cart is empty"},
		"unknown product": {[]models.CartItem{{ID: "salmon", Quantity: 1}}, `cart contains unknown product "salmon"`},
		"zero quantity":   {[]models.CartItem{{ID: "catfish", Quantity: 0}}, "quantity of Catfish must be positive"},
		"below minimum":   {[]models.CartItem{{ID: "materials", Quantity: 10}}, "quantity of Materials is below the minimum of 50kg"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			req.Cart = tc.cart

			_, err := f.svc.PlaceOrder(req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.NotValid))
			assert.Equal(t, tc.message, err.Error())

			assert.Empty(t, f.store.Orders())
			f.dispatcher.Wait()
			assert.Empty(t, f.notifier.messages())
		})
	}
}

func TestPlaceOrderWithoutEmailUsesGuest(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.UserEmail = "  "
	order, err := f.svc.PlaceOrder(req)
	require.NoError(t, err)

	assert.Equal(t, GuestEmail, order.Customer.Email)
}

func TestPlaceOrderWritesOrderLog(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.PlaceOrder(validRequest())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(f.store.Dir(), store.OrderLog))
	require.NoError(t, err)

	line := string(data)
	assert.True(t, strings.HasPrefix(line, "Order #"+order.OrderNumber+" | Date: 2026-03-14 09:26:53 | Name: Ada"), line)
	assert.Contains(t, line, "Total: ₦8,250")
	assert.Contains(t, line, "Items: Catfish (2kg), Fish Feed (10.5kg)")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestPlaceOrderSurvivesBrokenOrderLog(t *testing.T) {
	f := newFixture(t)
	// A directory in place of the log makes every append fail.
	require.NoError(t, os.Mkdir(filepath.Join(f.store.Dir(), store.OrderLog), 0755))

	_, err := f.svc.PlaceOrder(validRequest())
	require.NoError(t, err)
	assert.Len(t, f.store.Orders(), 1)
}

func TestPlaceOrderNotifies(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.PlaceOrder(validRequest())
	require.NoError(t, err)
	f.dispatcher.Wait()

	msgs := f.notifier.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "🐟 New Fish Parque Order - "+order.OrderNumber, msgs[0].Subject)
}

func TestPlaceOrderIgnoresNotificationFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("relay down")

	_, err := f.svc.PlaceOrder(validRequest())
	require.NoError(t, err)
	f.dispatcher.Wait()

	assert.Len(t, f.store.Orders(), 1)
}

func TestConcurrentPlaceOrderKeepsEveryOrder(t *testing.T) {
	f := newFixture(t)

	const buyers = 20
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.PlaceOrder(validRequest())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	orders := f.store.Orders()
	require.Len(t, orders, buyers)

	seen := map[string]bool{}
	for _, o := range orders {
		assert.False(t, seen[o.OrderNumber], "duplicate order number %s", o.OrderNumber)
		seen[o.OrderNumber] = true
	}
}

func TestSetOrderStatus(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.PlaceOrder(validRequest())
	require.NoError(t, err)
	second, err := f.svc.PlaceOrder(validRequest())
	require.NoError(t, err)

	updated, err := f.svc.SetOrderStatus(second.OrderNumber, "Delivered")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	orders := f.store.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, first, orders[0], "other orders are untouched")
	assert.Equal(t, models.OrderStatusDelivered, orders[1].Status)

	second.Status = models.OrderStatusDelivered
	assert.Equal(t, second, orders[1], "only the status changes")
}

func TestSetOrderStatusNotFound(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.PlaceOrder(validRequest())
	require.NoError(t, err)

	_, err = f.svc.SetOrderStatus("FP-missing", "delivered")
	assert.True(t, errors.Is(err, errors.NotFound))

	orders := f.store.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, order, orders[0])
}

func TestSetOrderStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.PlaceOrder(validRequest())
	require.NoError(t, err)

	_, err = f.svc.SetOrderStatus(order.OrderNumber, "shipped")
	assert.True(t, errors.Is(err, errors.NotValid))

	_, err = f.svc.SetOrderStatus("", "delivered")
	assert.True(t, errors.Is(err, errors.NotValid))

	assert.Equal(t, models.OrderStatusPending, f.store.Orders()[0].Status)
}

func TestOrdersForAndSearch(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.PlaceOrder(validRequest())
	require.NoError(t, err)

	other := validRequest()
	other.UserEmail = "bola@example.com"
	other.UserName = "Bola"
	other.UserPhone = "0709"
	_, err = f.svc.PlaceOrder(other)
	require.NoError(t, err)

	assert.Len(t, f.svc.OrdersFor("ada@example.com"), 1)
	assert.Empty(t, f.svc.OrdersFor("nobody@example.com"))
	assert.NotNil(t, f.svc.OrdersFor("nobody@example.com"))

	assert.Len(t, f.svc.SearchOrders(""), 2)
	assert.Len(t, f.svc.SearchOrders("BOLA"), 1)
	assert.Len(t, f.svc.SearchOrders("0709"), 1)
	assert.Len(t, f.svc.SearchOrders("FP2026"), 2)
	assert.Empty(t, f.svc.SearchOrders("zzz"))
}
