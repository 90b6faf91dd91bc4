package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/greenpantry/storefront/app/models"
	"github.com/greenpantry/storefront/app/repositories"
)

var ErrEmptyCart = errors.New("cart is empty")

// GuestCheckoutPayload is the contact and shipping address a guest submits
// at checkout.
type GuestCheckoutPayload struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Address1  string `json:"address1" validate:"required"`
	Address2  string `json:"address2"`
	City      string `json:"city" validate:"required"`
	PostCode  string `json:"post_code" validate:"required"`
}

type CheckoutService struct {
	orderRepo repositories.OrderRepository
	validate  *validator.Validate
}

func NewCheckoutService(orderRepo repositories.OrderRepository) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		validate:  validator.New(),
	}
}

// PlaceGuestOrder snapshots the guest's cart into an order and clears the
// cart. The cart is only cleared once the order is persisted; a failed
// order leaves the cart untouched.
func (s *CheckoutService) PlaceGuestOrder(ctx context.Context, cartSvc *GuestCartService, payload GuestCheckoutPayload) (*models.Order, error) {
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("invalid checkout details: %w", err)
	}

	cart := cartSvc.Load(ctx)
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := buildOrder(cart, payload)
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	cartSvc.Clear(ctx)
	return order, nil
}

func buildOrder(cart *models.GuestCart, payload GuestCheckoutPayload) *models.Order {
	now := time.Now()
	order := &models.Order{
		ID:             uuid.New().String(),
		OrderCode:      newOrderCode(now),
		OrderDate:      now,
		TotalPrice:     cart.TotalPrice,
		ShippingCharge: cart.ShippingCharge,
		FinalPrice:     cart.FinalPrice,
		Status:         models.OrderStatusPending,
	}

	order.Customer = models.OrderCustomer{
		OrderID:   order.ID,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Address1:  payload.Address1,
		Address2:  payload.Address2,
		City:      payload.City,
		PostCode:  payload.PostCode,
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		line := models.OrderItem{
			OrderID:    order.ID,
			ItemType:   string(item.Type),
			Name:       item.DisplayName(),
			VariantSku: item.VariantSku,
			Qty:        item.Quantity,
			Price:      item.Price,
			Total:      item.Total,
		}
		switch item.Type {
		case models.CartItemTypeProduct:
			if item.Product != nil {
				line.ProductID = item.Product.ID
			}
		case models.CartItemTypeBundle:
			if item.Bundle != nil {
				line.BundleID = item.Bundle.ID
			}
		}
		order.OrderItems = append(order.OrderItems, line)
	}

	return order
}

func newOrderCode(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("GP-%s-%s", t.Format("20060102"), suffix)
}
