// Package repo is the local collection backend: named, whole-replace JSON arrays
// kept in a kv.Store, plus seeding from the embedded dataset.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Skotchmaster/vogue_nest/internal/kv"
	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/models"
	"github.com/Skotchmaster/vogue_nest/internal/seed"
)

const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionOrders   = "orders"
	CollectionCarts    = "carts"

	KeyCurrentUser = "currentUser"
)

type Store struct {
	KV   kv.Store
	Seed seed.Data
}

func NewStore(store kv.Store, data seed.Data) *Store {
	return &Store{KV: store, Seed: data}
}

type Snapshot struct {
	Products []models.Product `json:"products"`
	Users    []models.User    `json:"users"`
}

// Init writes the seed users and products. Without force a collection is only
// written when it is absent or does not decode as an array.
func (s *Store) Init(ctx context.Context, force bool) error {
	l := logging.FromContext(ctx).With("repo", "store.init")

	seededUsers, err := seedList[models.User](ctx, s, CollectionUsers, s.Seed.Users, force)
	if err != nil {
		return err
	}
	seededProducts, err := seedList[models.Product](ctx, s, CollectionProducts, s.Seed.Products, force)
	if err != nil {
		return err
	}

	l.Debug("init_done", "force", force, "users_seeded", seededUsers, "products_seeded", seededProducts)
	return nil
}

func (s *Store) ResetAll(ctx context.Context) error {
	return s.Init(ctx, true)
}

func (s *Store) Dump(ctx context.Context) (Snapshot, error) {
	products, err := s.Products().All(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	users, err := s.Users().All(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Products: products, Users: users}, nil
}

func (s *Store) Users() *Collection[models.User, *models.User] {
	return NewCollection[models.User](s, CollectionUsers)
}

func (s *Store) Products() *Collection[models.Product, *models.Product] {
	return NewCollection[models.Product](s, CollectionProducts)
}

func (s *Store) Orders() *Collection[models.Order, *models.Order] {
	return NewCollection[models.Order](s, CollectionOrders)
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.KV.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// ReadList never fails on bad data: a missing, null, non-array or undecodable
// value reads as an empty list. Only backend errors are returned.
func ReadList[T any](ctx context.Context, s *Store, name string) ([]T, error) {
	items, _, err := readList[T](ctx, s, name)
	return items, err
}

func readList[T any](ctx context.Context, s *Store, name string) ([]T, bool, error) {
	raw, err := s.KV.Get(ctx, name)
	if errors.Is(err, kv.ErrNotFound) {
		return []T{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logging.FromContext(ctx).Warn("collection_corrupt", "collection", name, "error", err)
		return []T{}, false, nil
	}
	if items == nil {
		return []T{}, false, nil
	}
	return items, true, nil
}

func WriteList[T any](ctx context.Context, s *Store, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.KV.Set(ctx, name, raw); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// ReadValue decodes a single JSON value. Bad data reads as absent.
func ReadValue[T any](ctx context.Context, s *Store, name string) (T, bool, error) {
	var zero T
	raw, err := s.KV.Get(ctx, name)
	if errors.Is(err, kv.ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("read %s: %w", name, err)
	}

	var v *T
	if err := json.Unmarshal(raw, &v); err != nil {
		logging.FromContext(ctx).Warn("value_corrupt", "key", name, "error", err)
		return zero, false, nil
	}
	if v == nil {
		return zero, false, nil
	}
	return *v, true, nil
}

func WriteValue(ctx context.Context, s *Store, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.KV.Set(ctx, name, raw); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func seedList[T any, P Record[T]](ctx context.Context, s *Store, name string, items []T, force bool) (bool, error) {
	if !force {
		_, present, err := readList[T](ctx, s, name)
		if err != nil {
			return false, err
		}
		if present {
			return false, nil
		}
	}
	return true, WriteList(ctx, s, name, ensureIDs[T, P](items))
}

// ensureIDs numbers records without an id by their 1-based position.
func ensureIDs[T any, P Record[T]](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		p := P(&out[i])
		if p.GetID() == 0 {
			p.SetID(i + 1)
		}
	}
	return out
}
