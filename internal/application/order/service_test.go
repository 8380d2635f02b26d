package order_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	appOrder "github.com/minpay/orderpay/internal/application/order"
	domain "github.com/minpay/orderpay/internal/domain/order"
	"github.com/minpay/orderpay/internal/infrastructure/id"
	"github.com/minpay/orderpay/internal/infrastructure/memory"
	"github.com/minpay/orderpay/internal/infrastructure/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*memory.OrderRepository, *appOrder.Service, *appOrder.CreateOrderUseCase) {
	t.Helper()

	repo := memory.NewOrderRepository()
	service := appOrder.NewService(repo, nil)
	create := appOrder.NewCreateOrderUseCase(repo, id.NewUUIDGenerator(), nil, nil)
	return repo, service, create
}

func TestCreateOrder(t *testing.T) {
	ctx := t.Context()
	repo, _, create := newFixture(t)

	result, err := create.Execute(ctx, appOrder.CreateOrderInput{CustomerID: gofakeit.UUID()})
	require.NoError(t, err)
	require.NotEmpty(t, result.OrderID)
	assert.Equal(t, domain.StatusDraft, result.Status)

	saved, err := repo.Get(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Empty(t, saved.Lines())
}

func TestAddLineAndGetOrder(t *testing.T) {
	ctx := t.Context()
	_, service, create := newFixture(t)

	result, err := create.Execute(ctx, appOrder.CreateOrderInput{CustomerID: gofakeit.UUID()})
	require.NoError(t, err)

	err = service.AddLine(ctx, appOrder.AddLineInput{
		OrderID:     result.OrderID,
		ProductName: "Product A",
		Quantity:    2,
		UnitAmount:  100,
		Currency:    "USD",
	})
	require.NoError(t, err)

	ord, err := service.GetOrder(ctx, result.OrderID)
	require.NoError(t, err)
	require.Len(t, ord.Lines(), 1)

	total, err := ord.Total()
	require.NoError(t, err)
	assert.Equal(t, int64(200), total.Amount)
}

func TestAddLineValidationErrorsPropagate(t *testing.T) {
	ctx := t.Context()
	_, service, create := newFixture(t)

	result, err := create.Execute(ctx, appOrder.CreateOrderInput{CustomerID: gofakeit.UUID()})
	require.NoError(t, err)

	err = service.AddLine(ctx, appOrder.AddLineInput{
		OrderID:     result.OrderID,
		ProductName: "Product A",
		Quantity:    0,
		UnitAmount:  100,
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	err = service.AddLine(ctx, appOrder.AddLineInput{
		OrderID:     result.OrderID,
		ProductName: "Product A",
		Quantity:    1,
		UnitAmount:  -5,
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRemoveLineMissingProductIsNoOp(t *testing.T) {
	ctx := t.Context()
	_, service, create := newFixture(t)

	result, err := create.Execute(ctx, appOrder.CreateOrderInput{CustomerID: gofakeit.UUID()})
	require.NoError(t, err)

	require.NoError(t, service.RemoveLine(ctx, result.OrderID, "missing"))
}

func TestLineMutationsRejectedAfterPayment(t *testing.T) {
	ctx := t.Context()
	repo, service, create := newFixture(t)

	result, err := create.Execute(ctx, appOrder.CreateOrderInput{CustomerID: gofakeit.UUID()})
	require.NoError(t, err)

	require.NoError(t, service.AddLine(ctx, appOrder.AddLineInput{
		OrderID:     result.OrderID,
		ProductName: "Product A",
		Quantity:    1,
		UnitAmount:  100,
	}))

	gateway := payment.NewFakeGateway()
	pay := appOrder.NewPayOrderUseCase(repo, gateway, nil, nil)
	payResult, err := pay.Execute(ctx, appOrder.PayOrderInput{OrderID: result.OrderID})
	require.NoError(t, err)
	require.True(t, payResult.Success)

	err = service.AddLine(ctx, appOrder.AddLineInput{
		OrderID:     result.OrderID,
		ProductName: "Product B",
		Quantity:    1,
		UnitAmount:  50,
	})
	require.ErrorIs(t, err, domain.ErrModifyPaidOrder)

	err = service.RemoveLine(ctx, result.OrderID, "Product A")
	require.ErrorIs(t, err, domain.ErrModifyPaidOrder)
}
