package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quickbite/orders/internal/orders/app"
	"github.com/quickbite/orders/internal/orders/domain"
)

// Handler exposes the order use cases over HTTP.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the order routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/", h.listKitchenOrders)
		r.Get("/all", h.listAllOrders)
		r.Route("/{orderID}", func(r chi.Router) {
			r.Get("/", h.getOrder)
			r.Put("/status", h.updateStatus)
			r.Post("/checkout", h.checkout)
			r.Get("/payment-status", h.getPaymentStatus)
			r.Post("/items", h.addItem)
			r.Put("/items/{itemID}", h.updateItem)
			r.Delete("/items/{itemID}", h.deleteItem)
		})
	})
	r.Post("/v1/webhooks", h.paymentWebhook)
}

type createOrderRequest struct {
	CustomerID *int64 `json:"customerId"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.CreateOrder(r.Context(), payload.CustomerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, presentOrder(order))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderID")
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrder(order))
}

func (h *Handler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetOrdersAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrders(orders))
}

func (h *Handler) listKitchenOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetOrders(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrders(orders))
}

func (h *Handler) getPaymentStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderID")
	if !ok {
		return
	}

	status, err := h.service.GetPaymentStatus(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"paymentStatus": string(status)})
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderID")
	if !ok {
		return
	}

	var payload addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.AddItem(r.Context(), orderID, payload.ProductID, payload.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, presentOrder(order))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderID")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	var payload updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateItem(r.Context(), orderID, itemID, payload.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrder(order))
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderID")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(r.Context(), orderID, itemID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderID")
	if !ok {
		return
	}

	artifact, err := h.service.Checkout(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QRCodeResponse{QRCode: artifact})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderID")
	if !ok {
		return
	}

	var payload updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), orderID, payload.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentOrder(order))
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// writeDomainError maps domain failures onto HTTP statuses: missing
// resources become 404, business rule violations 422, everything else
// 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var notFound *domain.ResourceNotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var (
		closed     *domain.ClosedOrderError
		empty      *domain.EmptyOrderError
		transition *domain.InvalidStatusTransitionError
		forbidden  *domain.ForbiddenPaymentStatusChangeError
		finished   *domain.OrderFinishedError
		quantity   *domain.InvalidQuantityError
	)
	if errors.As(err, &closed) || errors.As(err, &empty) || errors.As(err, &transition) ||
		errors.As(err, &forbidden) || errors.As(err, &finished) || errors.As(err, &quantity) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
