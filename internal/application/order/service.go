package order

import (
	"context"
	"fmt"

	domain "github.com/minpay/orderpay/internal/domain/order"
	"github.com/minpay/orderpay/internal/observability"
	"github.com/minpay/orderpay/internal/observability/logctx"
)

// Service exposes line management and reads over the Order aggregate for
// transport adapters. Unlike the pay-order workflow, domain errors from
// these operations propagate to the caller untouched.
type Service struct {
	repo domain.Repository
	log  observability.Logger
}

func NewService(repo domain.Repository, tel observability.Observability) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Service{
		repo: repo,
		log:  tel.Logger().With(observability.F("service", orderService)),
	}
}

type AddLineInput struct {
	OrderID     string
	ProductName string
	Quantity    int
	UnitAmount  int64
	Currency    string
}

// AddLine appends a line to a draft order and persists the new state.
func (s *Service) AddLine(ctx context.Context, cmd AddLineInput) error {
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("order_id", cmd.OrderID),
		observability.F("product_name", cmd.ProductName),
	)

	ord, err := s.repo.Get(ctx, cmd.OrderID)
	if err != nil {
		return fmt.Errorf("repo.Get: %w", err)
	}

	unitPrice, err := domain.NewMoney(cmd.UnitAmount, cmd.Currency)
	if err != nil {
		return err
	}
	line, err := domain.NewLine(cmd.ProductName, cmd.Quantity, unitPrice)
	if err != nil {
		return err
	}
	if err := ord.AddLine(line); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, ord); err != nil {
		return fmt.Errorf("repo.Save: %w", err)
	}

	logger.Info("order_line_added",
		observability.F("quantity", cmd.Quantity),
		observability.F("unit_amount", cmd.UnitAmount),
	)
	return nil
}

// RemoveLine removes every line with the given product name and persists
// the new state. Removing an absent product is a valid no-op.
func (s *Service) RemoveLine(ctx context.Context, orderID, productName string) error {
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("order_id", orderID),
		observability.F("product_name", productName),
	)

	ord, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return fmt.Errorf("repo.Get: %w", err)
	}
	if err := ord.RemoveLine(productName); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, ord); err != nil {
		return fmt.Errorf("repo.Save: %w", err)
	}

	logger.Info("order_line_removed")
	return nil
}

// GetOrder returns a snapshot of the aggregate.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	ord, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("repo.Get: %w", err)
	}
	return ord, nil
}
