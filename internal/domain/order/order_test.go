package order_test

import (
	"testing"

	domain "github.com/minpay/orderpay/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount int64, currency string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(amount, currency)
	require.NoError(t, err)
	return m
}

func mustLine(t *testing.T, product string, quantity int, unitAmount int64, currency string) domain.Line {
	t.Helper()
	line, err := domain.NewLine(product, quantity, mustMoney(t, unitAmount, currency))
	require.NoError(t, err)
	return line
}

func TestNewLine(t *testing.T) {
	price := domain.Money{Amount: 100, Currency: "USD"}

	tests := []struct {
		name     string
		quantity int
		wantErr  error
	}{
		{name: "positive quantity: ok", quantity: 1},
		{name: "zero quantity: invalid", quantity: 0, wantErr: domain.ErrInvalidQuantity},
		{name: "negative quantity: invalid", quantity: -3, wantErr: domain.ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewLine("Product A", tt.quantity, price)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLineTotal(t *testing.T) {
	line := mustLine(t, "Product A", 3, 75, "EUR")

	total := line.Total()
	assert.Equal(t, int64(225), total.Amount)
	assert.Equal(t, "EUR", total.Currency)
}

func TestOrderStartsAsEmptyDraft(t *testing.T) {
	ord := domain.New("order-1", "customer-1")

	assert.Equal(t, "order-1", ord.ID())
	assert.Equal(t, "customer-1", ord.CustomerID())
	assert.Equal(t, domain.StatusDraft, ord.Status())
	assert.False(t, ord.IsPaid())
	assert.Empty(t, ord.Lines())
}

func TestOrderTotal(t *testing.T) {
	ord := domain.New("order-calc", "customer-1")
	require.NoError(t, ord.AddLine(mustLine(t, "Item 1", 3, 100, "USD")))
	require.NoError(t, ord.AddLine(mustLine(t, "Item 2", 2, 75, "USD")))

	total, err := ord.Total()
	require.NoError(t, err)
	assert.Equal(t, int64(450), total.Amount)
	assert.Equal(t, "USD", total.Currency)
}

func TestOrderTotalEmptyOrder(t *testing.T) {
	ord := domain.New("order-empty", "customer-1")

	total, err := ord.Total()
	require.NoError(t, err)
	assert.True(t, total.Equal(domain.Zero("USD")))
}

func TestOrderTotalUsesFirstLineCurrency(t *testing.T) {
	ord := domain.New("order-sek", "customer-1")
	require.NoError(t, ord.AddLine(mustLine(t, "Item", 2, 40, "SEK")))

	total, err := ord.Total()
	require.NoError(t, err)
	assert.Equal(t, "SEK", total.Currency)
}

func TestOrderTotalMixedCurrencies(t *testing.T) {
	ord := domain.New("order-mixed", "customer-1")
	require.NoError(t, ord.AddLine(mustLine(t, "Item 1", 1, 100, "USD")))
	require.NoError(t, ord.AddLine(mustLine(t, "Item 2", 1, 100, "EUR")))

	_, err := ord.Total()
	require.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestOrderLinesKeepInsertionOrder(t *testing.T) {
	ord := domain.New("order-1", "customer-1")
	require.NoError(t, ord.AddLine(mustLine(t, "B", 1, 10, "USD")))
	require.NoError(t, ord.AddLine(mustLine(t, "A", 1, 20, "USD")))
	require.NoError(t, ord.AddLine(mustLine(t, "B", 2, 10, "USD")))

	lines := ord.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "B", lines[0].ProductName)
	assert.Equal(t, "A", lines[1].ProductName)
	assert.Equal(t, "B", lines[2].ProductName)
}

func TestOrderRemoveLine(t *testing.T) {
	ord := domain.New("order-1", "customer-1")
	require.NoError(t, ord.AddLine(mustLine(t, "A", 1, 10, "USD")))
	require.NoError(t, ord.AddLine(mustLine(t, "B", 1, 20, "USD")))
	require.NoError(t, ord.AddLine(mustLine(t, "A", 2, 10, "USD")))

	// removes every matching line
	require.NoError(t, ord.RemoveLine("A"))
	lines := ord.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "B", lines[0].ProductName)

	// removing an absent product is a no-op, not a failure
	require.NoError(t, ord.RemoveLine("missing"))
	assert.Len(t, ord.Lines(), 1)
}

func TestOrderPayEmptyFails(t *testing.T) {
	ord := domain.New("order-empty", "customer-1")

	err := ord.Pay()
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
	assert.Equal(t, domain.StatusDraft, ord.Status())
}

func TestOrderPayTwiceFails(t *testing.T) {
	ord := domain.New("order-1", "customer-1")
	require.NoError(t, ord.AddLine(mustLine(t, "A", 1, 10, "USD")))

	require.NoError(t, ord.Pay())
	assert.True(t, ord.IsPaid())

	err := ord.Pay()
	require.ErrorIs(t, err, domain.ErrAlreadyPaid)
	assert.True(t, ord.IsPaid())
}

func TestOrderFrozenAfterPayment(t *testing.T) {
	ord := domain.New("order-1", "customer-1")
	require.NoError(t, ord.AddLine(mustLine(t, "A", 1, 10, "USD")))
	require.NoError(t, ord.Pay())

	err := ord.AddLine(mustLine(t, "B", 1, 20, "USD"))
	require.ErrorIs(t, err, domain.ErrModifyPaidOrder)

	err = ord.RemoveLine("A")
	require.ErrorIs(t, err, domain.ErrModifyPaidOrder)

	lines := ord.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "A", lines[0].ProductName)
}

func TestOrderLinesIsDefensiveCopy(t *testing.T) {
	ord := domain.New("order-1", "customer-1")
	require.NoError(t, ord.AddLine(mustLine(t, "A", 1, 10, "USD")))

	lines := ord.Lines()
	lines[0].ProductName = "tampered"

	assert.Equal(t, "A", ord.Lines()[0].ProductName)
}

func TestOrderClone(t *testing.T) {
	ord := domain.New("order-1", "customer-1")
	require.NoError(t, ord.AddLine(mustLine(t, "A", 2, 100, "USD")))

	clone := ord.Clone()
	require.NoError(t, clone.AddLine(mustLine(t, "B", 1, 50, "USD")))

	assert.Len(t, ord.Lines(), 1)
	assert.Len(t, clone.Lines(), 2)
}

func TestToStatus(t *testing.T) {
	for _, valid := range []string{"draft", "paid", "cancelled"} {
		status, err := domain.ToStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.Status(valid), status)
	}

	_, err := domain.ToStatus("shipped")
	require.Error(t, err)
}
