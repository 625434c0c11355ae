package domain

// OrderStatus captures the fulfillment pipeline of an order. The
// pipeline is strictly linear: each status is reachable from exactly
// one predecessor.
type OrderStatus string

const (
	StatusCreated        OrderStatus = "CREATED"
	StatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	StatusPayed          OrderStatus = "PAYED"
	StatusReceived       OrderStatus = "RECEIVED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusDone           OrderStatus = "DONE"
	StatusFinished       OrderStatus = "FINISHED"
)

// ParseOrderStatus maps a raw string onto a known status. The second
// return is false for unrecognized input; callers treat that as a
// no-op rather than an error, matching the external API contract.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case StatusCreated, StatusPendingPayment, StatusPayed,
		StatusReceived, StatusPreparing, StatusDone, StatusFinished:
		return OrderStatus(raw), true
	default:
		return "", false
	}
}

// predecessor returns the single status an order must currently hold
// for a transition into s to be legal. CREATED has no predecessor.
func (s OrderStatus) predecessor() (OrderStatus, bool) {
	switch s {
	case StatusPendingPayment:
		return StatusCreated, true
	case StatusPayed:
		return StatusPendingPayment, true
	case StatusReceived:
		return StatusPayed, true
	case StatusPreparing:
		return StatusReceived, true
	case StatusDone:
		return StatusPreparing, true
	case StatusFinished:
		return StatusDone, true
	default:
		return "", false
	}
}

// rank orders statuses along the pipeline so callers can ask whether
// one stage lies at or beyond another.
func (s OrderStatus) rank() int {
	switch s {
	case StatusCreated:
		return 0
	case StatusPendingPayment:
		return 1
	case StatusPayed:
		return 2
	case StatusReceived:
		return 3
	case StatusPreparing:
		return 4
	case StatusDone:
		return 5
	case StatusFinished:
		return 6
	default:
		return -1
	}
}

// Reached reports whether s is at or past the given stage in the
// pipeline. Unknown statuses never reach anything.
func (s OrderStatus) Reached(stage OrderStatus) bool {
	sr, tr := s.rank(), stage.rank()
	return sr >= 0 && tr >= 0 && sr >= tr
}

// PaymentStatus is the tri-state outcome of the payment attempt. It is
// independent of the fulfillment pipeline; it only gates the PAYED
// transition.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentDenied   PaymentStatus = "DENIED"
)

// ParsePaymentStatus maps a raw string onto a known payment status.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	switch PaymentStatus(raw) {
	case PaymentPending, PaymentApproved, PaymentDenied:
		return PaymentStatus(raw), true
	default:
		return "", false
	}
}
