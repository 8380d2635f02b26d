package memory_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	domain "github.com/minpay/orderpay/internal/domain/order"
	"github.com/minpay/orderpay/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, repo *memory.OrderRepository, orderID string) {
	t.Helper()

	ord := domain.New(orderID, "customer-1")
	line, err := domain.NewLine("Product A", 2, domain.Money{Amount: 100, Currency: "USD"})
	require.NoError(t, err)
	require.NoError(t, ord.AddLine(line))
	require.NoError(t, repo.Save(t.Context(), ord))
}

func TestGetUnknownID(t *testing.T) {
	repo := memory.NewOrderRepository()

	_, err := repo.Get(t.Context(), "unknown")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepeatedGetReturnsEqualSnapshots(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository()
	seedOrder(t, repo, "order-1")

	first, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)
	second, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(domain.Order{})); diff != "" {
		t.Errorf("snapshots differ (-first +second):\n%s", diff)
	}
}

func TestReturnedAggregateDoesNotLeakStoredState(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository()
	seedOrder(t, repo, "order-1")

	loaded, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)
	require.NoError(t, loaded.Pay())

	// the stored order must be unaffected until the mutation is saved
	stored, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.False(t, stored.IsPaid())
}

func TestSaveOverwritesByID(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository()
	seedOrder(t, repo, "order-1")

	loaded, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)
	require.NoError(t, loaded.Pay())
	require.NoError(t, repo.Save(ctx, loaded))

	stored, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.True(t, stored.IsPaid())
}

func TestSaveRequiresID(t *testing.T) {
	repo := memory.NewOrderRepository()

	require.Error(t, repo.Save(t.Context(), nil))
	require.Error(t, repo.Save(t.Context(), domain.New("", "customer-1")))
}

func TestSaveStoresACopy(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository()

	ord := domain.New("order-1", "customer-1")
	line, err := domain.NewLine("Product A", 1, domain.Money{Amount: 10, Currency: "USD"})
	require.NoError(t, err)
	require.NoError(t, ord.AddLine(line))
	require.NoError(t, repo.Save(ctx, ord))

	// mutating the caller's aggregate after save must not affect the store
	require.NoError(t, ord.Pay())

	stored, err := repo.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.False(t, stored.IsPaid())
}
