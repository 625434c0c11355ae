package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

const topicPayment = "payment"

// paymentWebhook receives the provider's asynchronous payment
// notifications: POST /v1/webhooks?topic=payment&id=<paymentID>.
// Re-delivered notifications replay the stored response instead of
// re-running the use case.
func (h *Handler) paymentWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("topic") != topicPayment {
		writeError(w, http.StatusBadRequest, "unsupported webhook topic")
		return
	}

	paymentID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	key := fmt.Sprintf("payment:%d", paymentID)
	if stored, err := h.service.GetStoredNotification(ctx, key); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	} else if stored != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(stored.StatusCode)
		_, _ = w.Write(stored.Body)
		return
	}

	order, err := h.service.RecordPaymentResult(ctx, paymentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response := presentOrder(order)
	body, err := json.Marshal(response)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Only terminal outcomes are replayable; a payment still PENDING may
	// legitimately re-notify with a different result later.
	if order.PaymentStatus != domain.PaymentPending {
		stored := ports.StoredResponse{
			StatusCode: http.StatusOK,
			Body:       body,
			OrderID:    order.ID,
		}
		if err := h.service.SaveNotification(ctx, key, stored); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
