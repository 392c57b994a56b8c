package usecase

import (
	"context"
	"encoding/json"
	"strconv"

	"neohand/internal/domain/entity"
	"neohand/internal/infrastructure/cache"
	"neohand/pkg/errors"
)

// CartUseCase keeps carts and favorites in the local dual-tier cache. Each
// client gets its own collection namespace; nothing here touches the remote
// store.
type CartUseCase struct {
	cache *cache.DualCache
}

func NewCartUseCase(c *cache.DualCache) *CartUseCase {
	return &CartUseCase{
		cache: c,
	}
}

func cartCollection(clientID string) string {
	return "cart:" + clientID
}

func favoritesCollection(clientID string) string {
	return "favorites:" + clientID
}

func (uc *CartUseCase) LoadCart(ctx context.Context, clientID string) ([]entity.CartItem, error) {
	entries := uc.cache.Load(ctx, cartCollection(clientID))

	items := make([]entity.CartItem, 0, len(entries))
	for _, e := range entries {
		var item entity.CartItem
		if err := json.Unmarshal(e.Value, &item); err != nil {
			return nil, errors.Internal("Failed to decode cart item", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (uc *CartUseCase) saveCart(ctx context.Context, clientID string, items []entity.CartItem) error {
	entries := make([]cache.Entry, len(items))
	for i, item := range items {
		value, err := json.Marshal(item)
		if err != nil {
			return errors.Internal("Failed to encode cart item", err)
		}
		entries[i] = cache.Entry{Key: strconv.FormatInt(item.ID, 10), Value: value}
	}
	if err := uc.cache.Save(ctx, cartCollection(clientID), entries); err != nil {
		return errors.Internal("Failed to save cart", err)
	}
	return nil
}

// AddItem puts the product in the cart, or bumps its quantity when it is
// already there.
func (uc *CartUseCase) AddItem(ctx context.Context, clientID string, item entity.CartItem) ([]entity.CartItem, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	items, err := uc.LoadCart(ctx, clientID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}

	if err := uc.saveCart(ctx, clientID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// IncrementQuantity raises the item's quantity by one.
func (uc *CartUseCase) IncrementQuantity(ctx context.Context, clientID string, itemID int64) ([]entity.CartItem, error) {
	return uc.adjustQuantity(ctx, clientID, itemID, 1)
}

// DecrementQuantity lowers the item's quantity by one, clamped at 1. Going
// below 1 is a no-op, never an implicit removal.
func (uc *CartUseCase) DecrementQuantity(ctx context.Context, clientID string, itemID int64) ([]entity.CartItem, error) {
	return uc.adjustQuantity(ctx, clientID, itemID, -1)
}

func (uc *CartUseCase) adjustQuantity(ctx context.Context, clientID string, itemID int64, delta int) ([]entity.CartItem, error) {
	items, err := uc.LoadCart(ctx, clientID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		found = true
		next := items[i].Quantity + delta
		if next < 1 {
			next = 1
		}
		items[i].Quantity = next
		break
	}
	if !found {
		return nil, errors.NotFound("Cart item", nil)
	}

	if err := uc.saveCart(ctx, clientID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem deletes the entry outright. This is the only way an item leaves
// the cart.
func (uc *CartUseCase) RemoveItem(ctx context.Context, clientID string, itemID int64) ([]entity.CartItem, error) {
	items, err := uc.LoadCart(ctx, clientID)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, errors.NotFound("Cart item", nil)
	}

	if err := uc.saveCart(ctx, clientID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (uc *CartUseCase) ClearCart(ctx context.Context, clientID string) error {
	if err := uc.cache.Clear(ctx, cartCollection(clientID)); err != nil {
		return errors.Internal("Failed to clear cart", err)
	}
	return nil
}

func (uc *CartUseCase) ListFavorites(ctx context.Context, clientID string) ([]entity.FavoriteItem, error) {
	entries := uc.cache.Load(ctx, favoritesCollection(clientID))

	items := make([]entity.FavoriteItem, 0, len(entries))
	for _, e := range entries {
		var item entity.FavoriteItem
		if err := json.Unmarshal(e.Value, &item); err != nil {
			return nil, errors.Internal("Failed to decode favorite", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (uc *CartUseCase) saveFavorites(ctx context.Context, clientID string, items []entity.FavoriteItem) error {
	entries := make([]cache.Entry, len(items))
	for i, item := range items {
		value, err := json.Marshal(item)
		if err != nil {
			return errors.Internal("Failed to encode favorite", err)
		}
		entries[i] = cache.Entry{Key: strconv.FormatInt(item.ID, 10), Value: value}
	}
	if err := uc.cache.Save(ctx, favoritesCollection(clientID), entries); err != nil {
		return errors.Internal("Failed to save favorites", err)
	}
	return nil
}

// AddFavorite is idempotent by item id.
func (uc *CartUseCase) AddFavorite(ctx context.Context, clientID string, item entity.FavoriteItem) ([]entity.FavoriteItem, error) {
	items, err := uc.ListFavorites(ctx, clientID)
	if err != nil {
		return nil, err
	}

	for _, existing := range items {
		if existing.ID == item.ID {
			return items, nil
		}
	}
	items = append(items, item)

	if err := uc.saveFavorites(ctx, clientID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (uc *CartUseCase) RemoveFavorite(ctx context.Context, clientID string, itemID int64) ([]entity.FavoriteItem, error) {
	items, err := uc.ListFavorites(ctx, clientID)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}

	if err := uc.saveFavorites(ctx, clientID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}
