package service

import (
	"context"
	"errors"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("invalid quantity")
)

// CartSummary is the cart with its derived totals. Subtotal and ItemCount
// are always recomputed from the line items, never stored.
type CartSummary struct {
	Items     []model.CartItem `json:"items"`
	Subtotal  float64          `json:"subtotal"`
	ItemCount int              `json:"item_count"`
}

type CartService interface {
	GetUserCart(userID uint) (*CartSummary, error)
	AddToCart(userID, productID uint, variantID *uint, quantity int) error
	UpdateCartItem(userID, cartItemID uint, quantity int) error
	RemoveFromCart(userID, cartItemID uint) error
	ClearCart(userID uint) error

	GetGuestCart(ctx context.Context, sessionID string) (*model.GuestCart, error)
	AddToGuestCart(ctx context.Context, sessionID string, productID uint, variantID *uint, quantity int) error
	MergeGuestCart(ctx context.Context, sessionID string, userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
	guestStore  repository.GuestCartStore
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
	guestStore repository.GuestCartStore,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
		guestStore:  guestStore,
	}
}

func summarize(items []model.CartItem) *CartSummary {
	summary := &CartSummary{Items: items}
	for i := range items {
		summary.Subtotal += items[i].UnitPrice() * float64(items[i].Quantity)
		summary.ItemCount += items[i].Quantity
	}
	return summary
}

func (s *cartService) GetUserCart(userID uint) (*CartSummary, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	summary := summarize(items)
	logger.Info("User cart fetched", map[string]interface{}{
		"user_id":    userID,
		"items":      len(items),
		"item_count": summary.ItemCount,
	})
	return summary, nil
}

// resolveVariant loads and validates a variant against its product. A nil
// variantID is valid and resolves to nil.
func (s *cartService) resolveVariant(productID uint, variantID *uint) (*model.ProductVariant, error) {
	if variantID == nil {
		return nil, nil
	}
	variant, err := s.variantRepo.FindByID(*variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product variant not found", map[string]interface{}{
				"variant_id": *variantID,
			})
			return nil, ErrInvalidProductVariant
		}
		return nil, err
	}
	if variant.ProductID != productID {
		logger.Warn("Product variant mismatch", map[string]interface{}{
			"product_id": productID,
			"variant_id": *variantID,
		})
		return nil, ErrInvalidProductVariant
	}
	return variant, nil
}

func (s *cartService) AddToCart(userID, productID uint, variantID *uint, quantity int) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"variant_id": variantID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	variant, err := s.resolveVariant(productID, variantID)
	if err != nil {
		return err
	}

	existing, err := s.cartRepo.FindByUserProductVariant(userID, productID, variantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	requested := quantity
	if existing != nil {
		requested = existing.Quantity + quantity
	}

	if product.StockQuantity < requested {
		logger.Warn("Cannot add to cart: insufficient product stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"requested":  requested,
			"available":  product.StockQuantity,
		})
		return ErrInsufficientStock
	}
	if variant != nil && variant.StockQuantity < requested {
		logger.Warn("Cannot add to cart: insufficient variant stock", map[string]interface{}{
			"variant_id": variant.ID,
			"requested":  requested,
			"available":  variant.StockQuantity,
		})
		return ErrInsufficientStock
	}

	if existing != nil {
		logger.Debug("Merging into existing cart item", map[string]interface{}{
			"cart_item_id": existing.ID,
			"old_qty":      existing.Quantity,
			"new_qty":      requested,
		})
		existing.Quantity = requested
		return s.cartRepo.Update(existing)
	}

	item := &model.CartItem{
		UserID:           userID,
		ProductID:        productID,
		ProductVariantID: variantID,
		Quantity:         quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	logger.Info("Cart item added", map[string]interface{}{
		"cart_item_id": item.ID,
	})
	return nil
}

func (s *cartService) UpdateCartItem(userID, cartItemID uint, quantity int) error {
	logger.Info("Updating cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})

	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	if item.UserID != userID {
		logger.Warn("Cart item access denied: ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
			"owner_id":     item.UserID,
		})
		return ErrCartItemNotFound
	}

	// Setting quantity to zero (or below) removes the line item.
	if quantity <= 0 {
		logger.Debug("Quantity dropped to zero, removing cart item", map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return s.cartRepo.Delete(cartItemID)
	}

	product, err := s.productRepo.FindByID(item.ProductID)
	if err != nil {
		logger.Error("Failed to fetch product for stock check", err, map[string]interface{}{
			"product_id": item.ProductID,
		})
		return err
	}
	if product.StockQuantity < quantity {
		logger.Warn("Cannot update cart item: insufficient product stock", map[string]interface{}{
			"cart_item_id": cartItemID,
			"requested":    quantity,
			"available":    product.StockQuantity,
		})
		return ErrInsufficientStock
	}

	if item.ProductVariantID != nil {
		variant, err := s.resolveVariant(item.ProductID, item.ProductVariantID)
		if err != nil {
			return err
		}
		if variant.StockQuantity < quantity {
			return ErrInsufficientStock
		}
	}

	item.Quantity = quantity
	return s.cartRepo.Update(item)
}

func (s *cartService) RemoveFromCart(userID, cartItemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	if item.UserID != userID {
		return ErrCartItemNotFound
	}

	return s.cartRepo.Delete(cartItemID)
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})
	return s.cartRepo.DeleteByUserID(userID)
}

func (s *cartService) GetGuestCart(ctx context.Context, sessionID string) (*model.GuestCart, error) {
	cart, err := s.guestStore.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrGuestCartNotFound) {
			return &model.GuestCart{SessionID: sessionID}, nil
		}
		return nil, err
	}
	return cart, nil
}

func (s *cartService) AddToGuestCart(ctx context.Context, sessionID string, productID uint, variantID *uint, quantity int) error {
	logger.Info("Adding item to guest cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if _, err := s.resolveVariant(productID, variantID); err != nil {
		return err
	}

	cart, err := s.GetGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID && variantIDEqual(cart.Items[i].ProductVariantID, variantID) {
			requested := cart.Items[i].Quantity + quantity
			if product.StockQuantity < requested {
				return ErrInsufficientStock
			}
			cart.Items[i].Quantity = requested
			merged = true
			break
		}
	}
	if !merged {
		if product.StockQuantity < quantity {
			return ErrInsufficientStock
		}
		cart.Items = append(cart.Items, model.GuestCartItem{
			ProductID:        productID,
			ProductVariantID: variantID,
			Quantity:         quantity,
		})
	}

	return s.guestStore.Save(ctx, cart)
}

// MergeGuestCart folds an anonymous cart into the user's durable cart after
// login, then discards the Redis copy. Unavailable items are skipped rather
// than failing the whole merge.
func (s *cartService) MergeGuestCart(ctx context.Context, sessionID string, userID uint) error {
	cart, err := s.guestStore.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrGuestCartNotFound) {
			return nil
		}
		return err
	}

	logger.Info("Merging guest cart into user cart", map[string]interface{}{
		"session_id": sessionID,
		"user_id":    userID,
		"items":      len(cart.Items),
	})

	for _, item := range cart.Items {
		if err := s.AddToCart(userID, item.ProductID, item.ProductVariantID, item.Quantity); err != nil {
			if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrInsufficientStock) ||
				errors.Is(err, ErrInvalidProductVariant) {
				logger.Warn("Skipping guest cart item during merge", map[string]interface{}{
					"product_id": item.ProductID,
					"reason":     err.Error(),
				})
				continue
			}
			return err
		}
	}

	return s.guestStore.Delete(ctx, sessionID)
}

func variantIDEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
