package service

import (
	"cmp"
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/models"
	"github.com/Skotchmaster/vogue_nest/internal/mykafka"
	"github.com/Skotchmaster/vogue_nest/internal/repo"
)

// isoLayout matches the millisecond UTC timestamps orders have always carried.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

const UnknownCustomer = "Unknown User"

// StatusPolicy picks the status of a newly placed order.
type StatusPolicy func() string

func FixedStatus(status string) StatusPolicy {
	return func() string { return status }
}

// RandomStatus draws uniformly from models.OrderStatuses. A nil r uses the
// global source.
func RandomStatus(r *rand.Rand) StatusPolicy {
	return func() string {
		n := len(models.OrderStatuses)
		if r == nil {
			return models.OrderStatuses[rand.IntN(n)]
		}
		return models.OrderStatuses[r.IntN(n)]
	}
}

type OrderService struct {
	Store     *repo.Store
	Carts     *CartService
	Publisher mykafka.Publisher

	Now          func() time.Time
	BuyNowStatus StatusPolicy
}

func NewOrderService(store *repo.Store, carts *CartService, pub mykafka.Publisher) *OrderService {
	return &OrderService{
		Store:        store,
		Carts:        carts,
		Publisher:    pub,
		Now:          time.Now,
		BuyNowStatus: RandomStatus(nil),
	}
}

// PlaceOrder appends an order holding a copy of lines. Its id is the id of
// the last stored order plus one, which can repeat an id after the last
// order has been removed.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int, lines []models.CartLine, status string) (models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place", "user_id", userID)

	orders, err := s.Store.Orders().All(ctx)
	if err != nil {
		l.Error("place_order_error", "error", err)
		return models.Order{}, err
	}

	items := make([]models.CartLine, len(lines))
	copy(items, lines)

	order := models.Order{
		ID:            repo.LastID[models.Order](orders) + 1,
		UserID:        userID,
		Items:         items,
		Date:          s.now().UTC().Format(isoLayout),
		Status:        status,
		PaymentMethod: "",
	}
	if err := s.Store.Orders().Replace(ctx, append(orders, order)); err != nil {
		l.Error("place_order_error", "error", err)
		return models.Order{}, err
	}

	l.Info("order_placed", "order_id", order.ID, "status", order.Status, "total", order.Total())
	publish(ctx, s.Publisher, mykafka.TopicOrderEvents, userID, map[string]any{
		"type":    "order_placed",
		"orderID": order.ID,
		"userID":  userID,
		"status":  order.Status,
		"total":   order.Total(),
	})
	return order, nil
}

// Checkout turns the user's whole cart into a completed order and empties it.
func (s *OrderService) Checkout(ctx context.Context, userID int) (models.Order, error) {
	lines := s.Carts.GetUserCart(userID)
	if len(lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	order, err := s.PlaceOrder(ctx, userID, lines, models.StatusCompleted)
	if err != nil {
		return models.Order{}, err
	}
	if err := s.Carts.ClearCart(ctx, userID); err != nil {
		return order, fmt.Errorf("order %d placed but cart not cleared: %w", order.ID, err)
	}
	return order, nil
}

// BuyNow orders a single product without touching the cart.
func (s *OrderService) BuyNow(ctx context.Context, userID int, product *models.Product, color, size string, quantity int) (models.Order, error) {
	if product == nil {
		return models.Order{}, fmt.Errorf("product is required: %w", ErrValidation)
	}
	line := models.NewCartLine(*product, color, size, quantity)
	return s.PlaceOrder(ctx, userID, []models.CartLine{line}, s.buyNowStatus())
}

func (s *OrderService) ListByUser(ctx context.Context, userID int) ([]models.Order, error) {
	orders, err := s.Store.Orders().All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type SummaryFilter struct {
	// Status keeps only orders with this status. Empty or "all" keeps every order.
	Status string
	// Search matches the customer name case-insensitively, or the order id.
	Search string
	// Sort is "<field>-asc" or "<field>-desc" over id, date or total ("price"
	// is accepted for total). Empty keeps stored order.
	Sort string
}

type OrderSummary struct {
	models.Order
	Total    int64  `json:"total"`
	Customer string `json:"customer"`
}

func (s *OrderService) Summaries(ctx context.Context, filter SummaryFilter) ([]OrderSummary, error) {
	field, desc, err := parseSort(filter.Sort, "id", "date", "total", "price")
	if err != nil {
		return nil, err
	}

	orders, err := s.Store.Orders().All(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.Store.Users().All(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(users))
	for _, u := range users {
		if _, ok := names[u.ID]; !ok {
			names[u.ID] = u.UserName
		}
	}

	search := strings.ToLower(filter.Search)
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		customer, ok := names[o.UserID]
		if !ok {
			customer = UnknownCustomer
		}

		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(customer), search) &&
			!strings.Contains(strconv.Itoa(o.ID), search) {
			continue
		}

		out = append(out, OrderSummary{Order: o, Total: o.Total(), Customer: customer})
	}

	if field != "" {
		slices.SortStableFunc(out, func(a, b OrderSummary) int {
			var c int
			switch field {
			case "id":
				c = cmp.Compare(a.ID, b.ID)
			case "date":
				c = orderTime(a.Date).Compare(orderTime(b.Date))
			default:
				c = cmp.Compare(a.Total, b.Total)
			}
			if desc {
				return -c
			}
			return c
		})
	}
	return out, nil
}

// orderTime reads both full timestamps and date-only values. Anything else
// sorts as the zero time.
func orderTime(date string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (s *OrderService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *OrderService) buyNowStatus() string {
	if s.BuyNowStatus == nil {
		return RandomStatus(nil)()
	}
	return s.BuyNowStatus()
}
