package order

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/topup-commerce/internal"
	"github.com/frahmantamala/topup-commerce/internal/auth"
	"github.com/frahmantamala/topup-commerce/internal/transport"
	"github.com/frahmantamala/topup-commerce/pkg/logger"
)

type ServiceAPI interface {
	CreateOrder(ctx context.Context, userID string, dto CreateOrderDTO) (*CreatedOrder, error)
	OrderLog(search string, limit, offset int) ([]*OrderLogEntry, error)
	LatestOrder(userID string) (*OrderDetail, error)
	GetOrder(orderID string) (*OrderDetail, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// CreateOrder handles checkout. On success it responds 201 with the new
// order and payment identifiers.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateOrder(r.Context(), user.ID, dto)
	if err != nil {
		if appErr, isApp := internal.IsAppError(err); isApp {
			h.WriteError(w, appErr.StatusCode, appErr.GetDetailedMessage())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "checkout failed")
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]string{
		"message":   "order created",
		"orderId":   created.OrderID,
		"paymentId": created.PaymentID,
	})
}

// LatestOrder returns the caller's most recent order with its payment.
func (h *Handler) LatestOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	detail, err := h.Service.LatestOrder(user.ID)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "no orders found")
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	detail, err := h.Service.GetOrder(orderID)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "order not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

// OrderLog is the admin order listing.
func (h *Handler) OrderLog(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	limit, offset := paginationParams(r)

	entries, err := h.Service.OrderLog(search, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"orders": entries,
		"count":  len(entries),
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var dto UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), orderID, dto.Status); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message":  "order status updated",
		"order_id": orderID,
		"status":   dto.Status,
	})
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
