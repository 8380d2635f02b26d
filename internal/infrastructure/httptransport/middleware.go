package httptransport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/minpay/orderpay/internal/observability"
	"github.com/minpay/orderpay/internal/observability/logctx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Observe wraps a handler with:
//   - W3C trace context extraction
//   - request-scoped logger injection (dynamic fields only)
//   - X-Request-ID generation and echo
//   - HTTP metrics with low-cardinality labels
func Observe(base observability.Logger, tel observability.Observability, next http.Handler) http.Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	if base == nil {
		base = tel.Logger()
	}
	reqCounter := tel.Metrics().Counter(observability.MHTTPRequests)
	durHist := tel.Metrics().Histogram(observability.MHTTPRequestDuration)
	prop := otel.GetTextMapPropagator() // W3C by default

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		sc := trace.SpanContextFromContext(ctx)

		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)

		fields := []observability.Field{observability.F("request_id", rid)}
		if sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		ctx = logctx.With(ctx, base.With(fields...))

		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lrw, r.WithContext(ctx))

		// URL paths are templated routes here, so the label stays
		// low-cardinality.
		statusLabel := strconv.Itoa(lrw.status)
		reqCounter.Add(1,
			observability.L("method", r.Method),
			observability.L("route", r.URL.Path),
			observability.L("status", statusLabel),
		)
		durHist.Observe(time.Since(start).Seconds(),
			observability.L("method", r.Method),
			observability.L("route", r.URL.Path),
			observability.L("status", statusLabel),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
