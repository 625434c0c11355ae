package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/quickbite/orders/internal/orders/ports"
)

// Gateway talks to the payment provider's REST API. The order id rides
// along as the provider's external reference so webhook notifications
// can be traced back to the order.
type Gateway struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewGateway(baseURL, token string) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type paymentRequestBody struct {
	ExternalReference string  `json:"external_reference"`
	TotalAmount       float64 `json:"total_amount"`
	Title             string  `json:"title"`
}

type paymentRequestResponse struct {
	QRData string `json:"qr_data"`
}

type paymentDetailsResponse struct {
	ID                int64  `json:"id"`
	ExternalReference string `json:"external_reference"`
	Status            string `json:"status"`
	ApprovalDate      string `json:"approval_date"`
}

func (g *Gateway) RequestPayment(ctx context.Context, req ports.PaymentRequest) (string, error) {
	body, err := json.Marshal(paymentRequestBody{
		ExternalReference: strconv.FormatInt(req.OrderID, 10),
		TotalAmount:       req.TotalAmount.InexactFloat64(),
		Title:             req.Title,
	})
	if err != nil {
		return "", fmt.Errorf("encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/payments/qr", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send payment request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var decoded paymentRequestResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode payment response: %w", err)
	}
	return decoded.QRData, nil
}

func (g *Gateway) FetchDetails(ctx context.Context, paymentID int64) (*ports.PaymentDetails, error) {
	url := fmt.Sprintf("%s/payments/%d", g.baseURL, paymentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build details request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch payment details: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var decoded paymentDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode payment details: %w", err)
	}

	orderID, err := strconv.ParseInt(decoded.ExternalReference, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse external reference %q: %w", decoded.ExternalReference, err)
	}

	details := &ports.PaymentDetails{
		PaymentID: decoded.ID,
		OrderID:   orderID,
		Status:    decoded.Status,
	}
	if decoded.ApprovalDate != "" {
		approvedAt, err := time.Parse(time.RFC3339, decoded.ApprovalDate)
		if err != nil {
			return nil, fmt.Errorf("parse approval date %q: %w", decoded.ApprovalDate, err)
		}
		details.ApprovedAt = &approvedAt
	}
	return details, nil
}
