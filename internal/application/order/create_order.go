package order

import (
	"context"
	"fmt"
	"time"

	domain "github.com/minpay/orderpay/internal/domain/order"
	domoutbox "github.com/minpay/orderpay/internal/domain/outbox"
	"github.com/minpay/orderpay/internal/observability"
	"github.com/minpay/orderpay/internal/observability/logctx"
)

type CreateOrderInput struct {
	CustomerID string
}

type CreateOrderResult struct {
	OrderID string
	Status  domain.Status
}

// CreateOrderUseCase creates an empty draft order and persists it. Lines
// are added afterwards through the Service.
type CreateOrderUseCase struct {
	repo        domain.Repository
	idGenerator IDGenerator
	publisher   domoutbox.Publisher

	log        observability.Logger
	reqCounter observability.Counter
	durHist    observability.Histogram
}

func NewCreateOrderUseCase(
	repo domain.Repository,
	idGen IDGenerator,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *CreateOrderUseCase {
	if tel == nil {
		tel = observability.Nop()
	}
	return &CreateOrderUseCase{
		repo:        repo,
		idGenerator: idGen,
		publisher:   publisher,
		log:         tel.Logger().With(observability.F("service", orderService)),
		reqCounter:  tel.Metrics().Counter(observability.MUsecaseRequests),
		durHist:     tel.Metrics().Histogram(observability.MUsecaseDuration),
	}
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderInput) (_ *CreateOrderResult, err error) {
	logger := logctx.FromOr(ctx, uc.log).With(
		observability.F("use_case", useCaseCreate),
		observability.F("customer_id", cmd.CustomerID),
	)

	start := time.Now()
	outcome := "success"
	defer func() {
		uc.reqCounter.Add(1,
			observability.L("use_case", useCaseCreate),
			observability.L("outcome", outcome),
		)
		uc.durHist.Observe(time.Since(start).Seconds(),
			observability.L("use_case", useCaseCreate),
		)
	}()

	ord := domain.New(uc.idGenerator.NewID(), cmd.CustomerID)

	if err := uc.repo.Save(ctx, ord); err != nil {
		outcome = "error"
		return nil, fmt.Errorf("repo.Save: %w", err)
	}

	if uc.publisher != nil {
		if pubErr := uc.publisher.Publish(ctx, domain.NewOrderCreatedEvent(ord)); pubErr != nil {
			logger.Warn("order_created_event_publish_failed",
				observability.F("error", pubErr.Error()),
			)
		}
	}

	logger.Info("order_created", observability.F("order_id", ord.ID()))

	return &CreateOrderResult{
		OrderID: ord.ID(),
		Status:  ord.Status(),
	}, nil
}
