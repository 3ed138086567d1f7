package service

import (
	"context"

	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/models"
	"github.com/Skotchmaster/vogue_nest/internal/mykafka"
	"github.com/Skotchmaster/vogue_nest/internal/repo"
)

// CartService keeps every user's cart in memory and rewrites the whole
// carts collection after each change. Quantities are not validated here.
type CartService struct {
	Store     *repo.Store
	Publisher mykafka.Publisher

	carts []models.UserCart
}

func NewCartService(ctx context.Context, store *repo.Store, pub mykafka.Publisher) (*CartService, error) {
	s := &CartService{Store: store, Publisher: pub}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory carts with the persisted ones.
func (s *CartService) Load(ctx context.Context) error {
	carts, err := repo.ReadList[models.UserCart](ctx, s.Store, repo.CollectionCarts)
	if err != nil {
		return err
	}
	s.carts = carts
	return nil
}

// AddToCart merges quantity into an existing line for the same variant or
// appends a new one. A nil product is ignored.
func (s *CartService) AddToCart(ctx context.Context, userID int, product *models.Product, color, size string, quantity int) error {
	if product == nil {
		return nil
	}

	next := cloneCarts(s.carts)
	idx := findCart(next, userID)
	if idx == -1 {
		next = append(next, models.UserCart{
			UserID: userID,
			Items:  []models.CartLine{models.NewCartLine(*product, color, size, quantity)},
		})
	} else {
		cart := &next[idx]
		merged := false
		for i := range cart.Items {
			if cart.Items[i].Matches(product.ID, color, size) {
				cart.Items[i].Quantity += quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.Items = append(cart.Items, models.NewCartLine(*product, color, size, quantity))
		}
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	publish(ctx, s.Publisher, mykafka.TopicCartEvents, userID, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": product.ID,
		"color":     color,
		"size":      size,
		"quantity":  quantity,
	})
	return nil
}

// RemoveFromCart drops one line. A cart left without lines is removed.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID int, color, size string) error {
	next := cloneCarts(s.carts)
	idx := findCart(next, userID)
	if idx == -1 {
		return nil
	}

	cart := &next[idx]
	kept := cart.Items[:0]
	for _, line := range cart.Items {
		if !line.Matches(productID, color, size) {
			kept = append(kept, line)
		}
	}
	cart.Items = kept
	if len(cart.Items) == 0 {
		next = append(next[:idx], next[idx+1:]...)
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	publish(ctx, s.Publisher, mykafka.TopicCartEvents, userID, map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
		"color":     color,
		"size":      size,
	})
	return nil
}

// UpdateQuantity sets an absolute quantity on an existing line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID int, color, size string, quantity int) error {
	next := cloneCarts(s.carts)
	idx := findCart(next, userID)
	if idx == -1 {
		return nil
	}

	found := false
	for i := range next[idx].Items {
		if next[idx].Items[i].Matches(productID, color, size) {
			next[idx].Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	publish(ctx, s.Publisher, mykafka.TopicCartEvents, userID, map[string]any{
		"type":      "cart_quantity_updated",
		"userID":    userID,
		"productID": productID,
		"color":     color,
		"size":      size,
		"quantity":  quantity,
	})
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID int) error {
	next := make([]models.UserCart, 0, len(s.carts))
	for _, c := range s.carts {
		if c.UserID != userID {
			next = append(next, cloneCart(c))
		}
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	publish(ctx, s.Publisher, mykafka.TopicCartEvents, userID, map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})
	return nil
}

// GetUserCart returns a copy of the user's lines, never nil.
func (s *CartService) GetUserCart(userID int) []models.CartLine {
	idx := findCart(s.carts, userID)
	if idx == -1 {
		return []models.CartLine{}
	}
	return cloneCart(s.carts[idx]).Items
}

func (s *CartService) Carts() []models.UserCart {
	return cloneCarts(s.carts)
}

func (s *CartService) commit(ctx context.Context, next []models.UserCart) error {
	if err := repo.WriteList(ctx, s.Store, repo.CollectionCarts, next); err != nil {
		logging.FromContext(ctx).Error("cart_persist_error", "error", err)
		return err
	}
	s.carts = next
	return nil
}

func findCart(carts []models.UserCart, userID int) int {
	for i := range carts {
		if carts[i].UserID == userID {
			return i
		}
	}
	return -1
}

func cloneCart(c models.UserCart) models.UserCart {
	items := make([]models.CartLine, len(c.Items))
	copy(items, c.Items)
	return models.UserCart{UserID: c.UserID, Items: items}
}

func cloneCarts(carts []models.UserCart) []models.UserCart {
	out := make([]models.UserCart, len(carts))
	for i, c := range carts {
		out[i] = cloneCart(c)
	}
	return out
}
