// Package checkout defines where a finished cart goes. The site ships
// without an order backend, so the default submitter refuses every order;
// deployments plug in their own Submitter.
package checkout

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Lixing-Zhang/aami-bangali/internal/models"
)

// ErrCheckoutUnavailable is returned when no order backend is configured.
var ErrCheckoutUnavailable = errors.New("checkout is not available")

// Submitter accepts an order and returns a receipt.
type Submitter interface {
	Submit(ctx context.Context, order models.Order) (models.Receipt, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, order models.Order) (models.Receipt, error)

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, order models.Order) (models.Receipt, error) {
	return f(ctx, order)
}

// Disabled rejects every order with ErrCheckoutUnavailable.
type Disabled struct{}

// Submit implements Submitter.
func (Disabled) Submit(context.Context, models.Order) (models.Receipt, error) {
	return models.Receipt{}, ErrCheckoutUnavailable
}

// LogSubmitter accepts every order and records it in the log. It is meant
// for demos and local development.
type LogSubmitter struct {
	mu      sync.Mutex
	log     *slog.Logger
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewLogSubmitter creates a LogSubmitter.
func NewLogSubmitter(log *slog.Logger) *LogSubmitter {
	return &LogSubmitter{
		log:     log,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Submit implements Submitter.
func (s *LogSubmitter) Submit(ctx context.Context, order models.Order) (models.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return models.Receipt{}, err
	}

	s.mu.Lock()
	now := s.now().UTC()
	id, err := ulid.New(ulid.Timestamp(now), s.entropy)
	s.mu.Unlock()
	if err != nil {
		return models.Receipt{}, fmt.Errorf("generate receipt id: %w", err)
	}

	receipt := models.Receipt{
		ID:         id.String(),
		Total:      order.Total,
		ItemCount:  order.ItemCount,
		Currency:   order.Currency,
		AcceptedAt: now,
	}

	s.log.InfoContext(ctx, "order received",
		"receipt_id", receipt.ID,
		"items", order.ItemCount,
		"lines", len(order.Lines),
		"total", order.Total,
		"currency", order.Currency,
	)

	return receipt, nil
}

// Modes accepted by New.
const (
	ModeDisabled = "disabled"
	ModeLog      = "log"
)

// New returns the submitter for a configured mode.
func New(mode string, log *slog.Logger) (Submitter, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeDisabled:
		return Disabled{}, nil
	case ModeLog:
		return NewLogSubmitter(log), nil
	default:
		return nil, fmt.Errorf("unknown checkout mode %q", mode)
	}
}
