package service

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/vogue_nest/internal/models"
)

var fixedNow = time.Date(2025, 3, 8, 9, 30, 15, 123_000_000, time.UTC)

func newOrderService(t *testing.T) (*OrderService, *recordingPublisher) {
	t.Helper()
	carts, pub := newCartService(t)
	svc := NewOrderService(carts.Store, carts, pub)
	svc.Now = func() time.Time { return fixedNow }
	return svc, pub
}

func TestOrderService_CheckoutSnapshotsCart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, pub := newOrderService(t)
	require.NoError(t, svc.Carts.AddToCart(ctx, 2, &shirt, "red", "M", 2))
	cart := svc.Carts.GetUserCart(2)

	order, err := svc.Checkout(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, order.ID)
	assert.Equal(t, 2, order.UserID)
	assert.Equal(t, cart, order.Items)
	assert.Equal(t, models.StatusCompleted, order.Status)
	assert.Equal(t, "", order.PaymentMethod)
	assert.Equal(t, "2025-03-08T09:30:15.123Z", order.Date)
	assert.Equal(t, int64(200), order.Total())

	assert.Empty(t, svc.Carts.GetUserCart(2))

	require.NoError(t, svc.Carts.AddToCart(ctx, 2, &shirt, "red", "M", 5))
	stored, ok, err := svc.Store.Orders().ByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, stored.Items[0].Quantity)

	assert.Equal(t, []string{"cart_item_added", "order_placed", "cart_cleared", "cart_item_added"}, pub.types())
}

func TestOrderService_CheckoutEmptyCart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newOrderService(t)

	_, err := svc.Checkout(ctx, 2)
	assert.ErrorIs(t, err, ErrEmptyCart)

	orders, err := svc.Store.Orders().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrderUsesLastID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newOrderService(t)
	require.NoError(t, svc.Store.Orders().Replace(ctx, []models.Order{{ID: 5}, {ID: 2}}))

	order, err := svc.PlaceOrder(ctx, 2, nil, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 3, order.ID)
	assert.NotNil(t, order.Items)
}

func TestOrderService_PlaceOrderCopiesLines(t *testing.T) {
	t.Parallel()

	svc, _ := newOrderService(t)
	lines := []models.CartLine{models.NewCartLine(shirt, "red", "M", 1)}

	order, err := svc.PlaceOrder(context.Background(), 2, lines, models.StatusCompleted)
	require.NoError(t, err)
	lines[0].Quantity = 10
	assert.Equal(t, 1, order.Items[0].Quantity)
}

func TestOrderService_BuyNow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newOrderService(t)
	svc.BuyNowStatus = FixedStatus(models.StatusPending)
	require.NoError(t, svc.Carts.AddToCart(ctx, 2, &shirt, "red", "M", 1))

	order, err := svc.BuyNow(ctx, 2, &models.Product{ID: 3, Name: "Jeans", Price: 590000}, "blue", "30", 2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].ProductID)
	assert.Equal(t, int64(1180000), order.Total())

	// the cart is not touched by buy-now
	assert.Len(t, svc.Carts.GetUserCart(2), 1)

	_, err = svc.BuyNow(ctx, 2, nil, "", "", 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRandomStatus(t *testing.T) {
	t.Parallel()

	policy := RandomStatus(rand.New(rand.NewPCG(1, 2)))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		s := policy()
		assert.Contains(t, models.OrderStatuses, s)
		seen[s] = true
	}
	assert.Len(t, seen, len(models.OrderStatuses))

	assert.Contains(t, models.OrderStatuses, RandomStatus(nil)())
}

func TestOrderService_ListByUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newOrderService(t)
	for _, uid := range []int{2, 3, 2} {
		_, err := svc.PlaceOrder(ctx, uid, nil, models.StatusCompleted)
		require.NoError(t, err)
	}

	orders, err := svc.ListByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 1, orders[0].ID)
	assert.Equal(t, 3, orders[1].ID)

	none, err := svc.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestOrderService_Summaries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newOrderService(t)
	line := models.NewCartLine(shirt, "red", "M", 3)
	require.NoError(t, svc.Store.Orders().Replace(ctx, []models.Order{
		{ID: 1, UserID: 2, Items: []models.CartLine{line}, Status: models.StatusCompleted},
		{ID: 2, UserID: 3, Status: models.StatusPending},
		{ID: 12, UserID: 99, Status: models.StatusCanceled},
	}))

	tests := []struct {
		name   string
		filter SummaryFilter
		want   []int
	}{
		{name: "all", filter: SummaryFilter{}, want: []int{1, 2, 12}},
		{name: "explicit all", filter: SummaryFilter{Status: "all"}, want: []int{1, 2, 12}},
		{name: "status", filter: SummaryFilter{Status: models.StatusPending}, want: []int{2}},
		{name: "customer name", filter: SummaryFilter{Search: "LAN"}, want: []int{1}},
		{name: "unknown user", filter: SummaryFilter{Search: "unknown"}, want: []int{12}},
		{name: "order id", filter: SummaryFilter{Search: "2"}, want: []int{2, 12}},
		{name: "status and search", filter: SummaryFilter{Status: models.StatusCompleted, Search: "minh"}, want: []int{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Summaries(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]int, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	all, err := svc.Summaries(ctx, SummaryFilter{})
	require.NoError(t, err)
	assert.Equal(t, "lannguyen", all[0].Customer)
	assert.Equal(t, int64(300), all[0].Total)
	assert.Equal(t, UnknownCustomer, all[2].Customer)
}

func TestOrderService_SummariesSort(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newOrderService(t)
	require.NoError(t, svc.Store.Orders().Replace(ctx, []models.Order{
		{ID: 1, UserID: 2, Date: "2025-03-08T09:30:15.123Z", Items: []models.CartLine{models.NewCartLine(shirt, "red", "M", 3)}},
		{ID: 2, UserID: 2, Date: "2025-01-02", Items: []models.CartLine{models.NewCartLine(shirt, "red", "M", 1)}},
		{ID: 3, UserID: 3, Date: "2025-02-01T00:00:00.000Z", Items: []models.CartLine{models.NewCartLine(shirt, "red", "M", 2)}},
	}))

	tests := []struct {
		sort string
		want []int
	}{
		{sort: "", want: []int{1, 2, 3}},
		{sort: "id-asc", want: []int{1, 2, 3}},
		{sort: "id-desc", want: []int{3, 2, 1}},
		{sort: "date-asc", want: []int{2, 3, 1}},
		{sort: "date-desc", want: []int{1, 3, 2}},
		{sort: "total-asc", want: []int{2, 3, 1}},
		{sort: "price-desc", want: []int{1, 3, 2}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("sort "+tt.sort, func(t *testing.T) {
			got, err := svc.Summaries(ctx, SummaryFilter{Sort: tt.sort})
			require.NoError(t, err)
			ids := make([]int, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	for _, bad := range []string{"total", "size-asc", "id-up"} {
		_, err := svc.Summaries(ctx, SummaryFilter{Sort: bad})
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}
