package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appOrder "github.com/minpay/orderpay/internal/application/order"
	domain "github.com/minpay/orderpay/internal/domain/order"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

// Handler is a thin JSON adapter translating HTTP requests into calls on
// the application layer.
type Handler struct {
	orderService *appOrder.Service
	createOrder  *appOrder.CreateOrderUseCase
	payOrder     *appOrder.PayOrderUseCase
}

func NewHandler(
	orderService *appOrder.Service,
	createOrder *appOrder.CreateOrderUseCase,
	payOrder *appOrder.PayOrderUseCase,
) *Handler {
	return &Handler{
		orderService: orderService,
		createOrder:  createOrder,
		payOrder:     payOrder,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/order", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.handleCreateOrder(w, r)
		case http.MethodGet:
			h.handleGetOrder(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		}
	})
	mux.HandleFunc("/order/line", h.method(http.MethodPost, h.handleAddLine))
	mux.HandleFunc("/order/line/remove", h.method(http.MethodPost, h.handleRemoveLine))
	mux.HandleFunc("/order/pay", h.method(http.MethodPost, h.handlePayOrder))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

type createOrderRequest struct {
	CustomerID string `json:"customer_id"`
}

type createOrderResponse struct {
	OrderID string        `json:"order_id"`
	Status  domain.Status `json:"status"`
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.createOrder.Execute(r.Context(), appOrder.CreateOrderInput{
		CustomerID: req.CustomerID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createOrderResponse{
		OrderID: result.OrderID,
		Status:  result.Status,
	})
}

type addLineRequest struct {
	OrderID     string `json:"order_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitAmount  int64  `json:"unit_amount"`
	Currency    string `json:"currency"`
}

func (h *Handler) handleAddLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Currency codes arriving over the wire are validated as ISO 4217
	// before they reach the domain.
	if req.Currency != "" {
		unit, err := currency.ParseISO(req.Currency)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		req.Currency = unit.String()
	}

	err := h.orderService.AddLine(r.Context(), appOrder.AddLineInput{
		OrderID:     req.OrderID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		UnitAmount:  req.UnitAmount,
		Currency:    req.Currency,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type removeLineRequest struct {
	OrderID     string `json:"order_id"`
	ProductName string `json:"product_name"`
}

func (h *Handler) handleRemoveLine(w http.ResponseWriter, r *http.Request) {
	var req removeLineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.orderService.RemoveLine(r.Context(), req.OrderID, req.ProductName); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type payOrderRequest struct {
	OrderID string `json:"order_id"`
}

type payOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

func (h *Handler) handlePayOrder(w http.ResponseWriter, r *http.Request) {
	var req payOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.payOrder.Execute(r.Context(), appOrder.PayOrderInput{
		OrderID: req.OrderID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payOrderResponse{
		Success: result.Success,
		OrderID: result.OrderID,
		Message: result.Message,
	})
}

type lineResponse struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitAmount  int64  `json:"unit_amount"`
	Currency    string `json:"currency"`
}

type moneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type getOrderResponse struct {
	OrderID    string         `json:"order_id"`
	CustomerID string         `json:"customer_id"`
	Status     domain.Status  `json:"status"`
	Lines      []lineResponse `json:"lines"`
	Total      moneyResponse  `json:"total"`
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, errors.New("id query parameter is required"))
		return
	}

	ord, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	total, err := ord.Total()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	lines := lo.Map(ord.Lines(), func(l domain.Line, _ int) lineResponse {
		return lineResponse{
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitAmount:  l.UnitPrice.Amount,
			Currency:    l.UnitPrice.Currency,
		}
	})

	writeJSON(w, http.StatusOK, getOrderResponse{
		OrderID:    ord.ID(),
		CustomerID: ord.CustomerID(),
		Status:     ord.Status(),
		Lines:      lines,
		Total:      moneyResponse{Amount: total.Amount, Currency: total.Currency},
	})
}

func (h *Handler) method(method string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		handler(w, r)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrCurrencyMismatch):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrModifyPaidOrder),
		errors.Is(err, domain.ErrAlreadyPaid),
		errors.Is(err, domain.ErrEmptyOrder):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
