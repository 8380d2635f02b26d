package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/minpay/orderpay/internal/domain/order"
	domoutbox "github.com/minpay/orderpay/internal/domain/outbox"
	"github.com/minpay/orderpay/internal/observability"
	"github.com/minpay/orderpay/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	orderService   = "order-service"
	useCasePay     = "order.pay"
	useCaseCreate  = "order.create"
	spanPrefix     = "UC."
	gatewayPeer    = "payment-gateway"
	chargeEndpoint = "charge"
)

// Messages surfaced on the structured result. The texts are part of the
// caller-facing contract.
const (
	MsgOrderNotFound     = "Order not found"
	MsgEmptyOrder        = "Cannot pay empty order"
	MsgAlreadyPaid       = "Order already paid"
	MsgPaymentFailed     = "Payment failed"
	MsgPaymentSuccessful = "Payment successful"
)

type PayOrderInput struct {
	OrderID string
}

// PayOrderResult is the structured outcome of a payment attempt. Domain
// rejections surface here instead of as errors.
type PayOrderResult struct {
	Success bool
	OrderID string
	Message string
}

// PayOrderUseCase orchestrates the payment workflow: load the order,
// perform the domain payment transition, charge through the gateway, and
// persist. Nothing is persisted until every step has succeeded, so a
// declined charge leaves the stored order untouched even though the
// in-memory aggregate was already marked paid.
type PayOrderUseCase struct {
	repo      domain.Repository
	gateway   PaymentGateway
	publisher domoutbox.Publisher
	tel       observability.Observability

	log        observability.Logger
	reqCounter observability.Counter
	durHist    observability.Histogram
	extCounter observability.Counter
	extHist    observability.Histogram
}

// NewPayOrderUseCase wires the dependencies required to execute the use
// case. The publisher is optional; without it no domain events are
// emitted.
func NewPayOrderUseCase(
	repo domain.Repository,
	gateway PaymentGateway,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *PayOrderUseCase {
	if tel == nil {
		tel = observability.Nop()
	}

	metrics := tel.Metrics()
	return &PayOrderUseCase{
		repo:       repo,
		gateway:    gateway,
		publisher:  publisher,
		tel:        tel,
		log:        tel.Logger().With(observability.F("service", orderService)),
		reqCounter: metrics.Counter(observability.MUsecaseRequests),
		durHist:    metrics.Histogram(observability.MUsecaseDuration),
		extCounter: metrics.Counter(observability.MExternalRequests),
		extHist:    metrics.Histogram(observability.MExternalRequestDuration),
	}
}

// Execute runs the payment workflow for one order id.
//
// Domain-level rejections (unknown order, empty order, double payment,
// declined charge) come back as a PayOrderResult with Success=false; they
// are expected outcomes, not errors. Repository, total-computation and
// gateway transport failures are returned as errors.
func (uc *PayOrderUseCase) Execute(ctx context.Context, cmd PayOrderInput) (_ *PayOrderResult, err error) {
	logger := logctx.FromOr(ctx, uc.log).With(
		observability.F("use_case", useCasePay),
		observability.F("order_id", cmd.OrderID),
	)

	ctx, span := uc.tel.Tracer().Start(ctx, spanPrefix+"PayOrder",
		attribute.String("use_case", useCasePay),
		attribute.String("order.id", cmd.OrderID),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	defer func() {
		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		latency := time.Since(start).Seconds()
		uc.reqCounter.Add(1,
			observability.L("use_case", useCasePay),
			observability.L("outcome", outcome),
		)
		uc.durHist.Observe(latency,
			observability.L("use_case", useCasePay),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", latency),
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	ord, err := uc.repo.Get(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			outcome, statusText = "rejected", "ORDER_NOT_FOUND"
			return uc.reject(cmd.OrderID, MsgOrderNotFound), nil
		}
		outcome, statusText = "error", "ORDER_LOOKUP_FAILED"
		return nil, fmt.Errorf("repo.Get: %w", err)
	}

	// The aggregate decides whether payment is allowed. A rejection here
	// leaves the stored order untouched because nothing is saved on this
	// path.
	if payErr := ord.Pay(); payErr != nil {
		outcome, statusText = "rejected", "PAYMENT_REJECTED"
		return uc.reject(cmd.OrderID, payFailureMessage(payErr)), nil
	}

	total, err := ord.Total()
	if err != nil {
		outcome, statusText = "error", "TOTAL_FAILED"
		return nil, fmt.Errorf("order.Total: %w", err)
	}
	span.SetAttributes(
		attribute.Int64("order.total_amount", total.Amount),
		attribute.String("order.currency", total.Currency),
	)

	charged, err := uc.charge(ctx, ord.ID(), total)
	if err != nil {
		outcome, statusText = "error", "GATEWAY_FAILED"
		return nil, fmt.Errorf("gateway.Charge: %w", err)
	}
	if !charged {
		// Deliberately discard the in-memory paid transition: the order
		// is not saved, so the repository keeps the unpaid state.
		outcome, statusText = "rejected", "PAYMENT_DECLINED"
		logger.Warn("payment_declined",
			observability.F("amount", total.Amount),
			observability.F("currency", total.Currency),
		)
		return uc.reject(cmd.OrderID, MsgPaymentFailed), nil
	}

	if err = uc.repo.Save(ctx, ord); err != nil {
		outcome, statusText = "error", "ORDER_SAVE_FAILED"
		return nil, fmt.Errorf("repo.Save: %w", err)
	}

	if uc.publisher != nil {
		if pubErr := uc.publisher.Publish(ctx, domain.NewOrderPaidEvent(ord, total)); pubErr != nil {
			logger.Warn("order_paid_event_publish_failed",
				observability.F("error", pubErr.Error()),
			)
		}
	}

	logger.Info("payment_success",
		observability.F("amount", total.Amount),
		observability.F("currency", total.Currency),
	)

	return &PayOrderResult{
		Success: true,
		OrderID: cmd.OrderID,
		Message: MsgPaymentSuccessful,
	}, nil
}

// charge calls the gateway and records external-call metrics around it.
func (uc *PayOrderUseCase) charge(ctx context.Context, orderID string, amount domain.Money) (bool, error) {
	start := time.Now()
	charged, err := uc.gateway.Charge(ctx, orderID, amount)

	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
	case !charged:
		outcome = "declined"
	}
	uc.extCounter.Add(1,
		observability.L("peer", gatewayPeer),
		observability.L("endpoint", chargeEndpoint),
		observability.L("outcome", outcome),
	)
	uc.extHist.Observe(time.Since(start).Seconds(),
		observability.L("peer", gatewayPeer),
		observability.L("endpoint", chargeEndpoint),
	)

	return charged, err
}

func (uc *PayOrderUseCase) reject(orderID, message string) *PayOrderResult {
	return &PayOrderResult{
		Success: false,
		OrderID: orderID,
		Message: message,
	}
}

// payFailureMessage maps domain payment rejections to their caller-facing
// texts.
func payFailureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		return MsgEmptyOrder
	case errors.Is(err, domain.ErrAlreadyPaid):
		return MsgAlreadyPaid
	default:
		return err.Error()
	}
}
