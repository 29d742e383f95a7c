package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lixing-Zhang/aami-bangali/internal/checkout"
	"github.com/Lixing-Zhang/aami-bangali/internal/models"
	"github.com/Lixing-Zhang/aami-bangali/internal/storefront"
)

var (
	ErrEmptyOrder = errors.New("order must contain at least one item")
)

// CheckoutService turns a visitor's cart into an order and hands it to the
// configured submitter
type CheckoutService struct {
	submitter checkout.Submitter
	currency  string
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(submitter checkout.Submitter, currency string) *CheckoutService {
	if submitter == nil {
		submitter = checkout.Disabled{}
	}
	return &CheckoutService{
		submitter: submitter,
		currency:  currency,
		now:       time.Now,
	}
}

// BuildOrder prices the lines of a storefront view
func (s *CheckoutService) BuildOrder(view storefront.View) (models.Order, error) {
	if view.Empty() {
		return models.Order{}, ErrEmptyOrder
	}

	order := models.Order{
		Lines:     make([]models.OrderLine, 0, len(view.Lines)),
		ItemCount: view.Count,
		Total:     view.Total,
		Currency:  s.currency,
		CreatedAt: s.now().UTC(),
	}
	for _, l := range view.Lines {
		order.Lines = append(order.Lines, models.OrderLine{
			ItemID:    l.Item.ID,
			Name:      l.Item.Name,
			UnitPrice: l.Item.Price,
			Quantity:  l.Quantity,
			LineTotal: l.Subtotal(),
		})
	}

	return order, nil
}

// PlaceOrder submits the cart of sf. On success the cart is cleared and the
// panel closed; on failure the cart is left untouched.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, sf *storefront.Storefront) (*models.Receipt, error) {
	var receipt models.Receipt

	err := sf.Do(func(tx *storefront.Tx) error {
		order, err := s.BuildOrder(tx.View())
		if err != nil {
			return err
		}
		order.SessionID = sessionID

		receipt, err = s.submitter.Submit(ctx, order)
		if err != nil {
			return fmt.Errorf("submit order: %w", err)
		}

		tx.Clear()
		tx.ClosePanel()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &receipt, nil
}
