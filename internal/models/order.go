package models

import "time"

// OrderStatus represents the backend's order status. The backend uses
// Portuguese status labels; unknown values are carried and displayed as-is.
type OrderStatus string

const (
	OrderPending         OrderStatus = "pendente"
	OrderPaid            OrderStatus = "pago"
	OrderCourtesyPending OrderStatus = "cortesia_pendente"
)

// BillingType is the payment method chosen at checkout.
type BillingType string

const (
	BillingPix        BillingType = "PIX"
	BillingBoleto     BillingType = "BOLETO"
	BillingCreditCard BillingType = "CREDIT_CARD"
	BillingUndefined  BillingType = "UNDEFINED"
)

// BillingTypes is the fixed set offered on the checkout form, in display order.
var BillingTypes = []BillingType{BillingPix, BillingBoleto, BillingCreditCard}

// Label renders the billing type for display.
func (b BillingType) Label() string {
	switch b {
	case BillingPix:
		return "PIX"
	case BillingBoleto:
		return "Boleto bancário"
	case BillingCreditCard:
		return "Cartão de crédito"
	}
	return string(b)
}

// ValidBillingType reports whether s is an accepted payment method.
func ValidBillingType(s string) bool {
	switch BillingType(s) {
	case BillingPix, BillingBoleto, BillingCreditCard, BillingUndefined:
		return true
	}
	return false
}

// OrderItem is one ticket-class line of an order.
type OrderItem struct {
	ID            int    `json:"id"`
	TicketClassID int    `json:"ticket_class_id"`
	TicketClass   string `json:"ticket_class_name,omitempty"`
	Quantity      int    `json:"quantity"`
	UnitPrice     Cents  `json:"unit_price"`
	Subtotal      Cents  `json:"subtotal"`
}

// Order is created server-side at checkout and only ever read afterwards;
// the payment backend mutates it externally.
type Order struct {
	ID          int                    `json:"id"`
	TotalAmount Cents                  `json:"total_amount"`
	Status      OrderStatus            `json:"status"`
	BillingType BillingType            `json:"billing_type,omitempty"`
	PaymentID   string                 `json:"payment_id,omitempty"`
	PaymentData map[string]interface{} `json:"payment_data,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	PaidAt      *time.Time             `json:"paid_at,omitempty"`
	Items       []OrderItem            `json:"items"`
	Tickets     []Ticket               `json:"tickets"`
}

// IsPending reports whether the payment is still waiting on the backend.
// Polling is conditioned on this, not on a separate cancel signal.
func (o *Order) IsPending() bool {
	return o.Status == OrderPending
}

// IsPaid reports whether the order has settled.
func (o *Order) IsPaid() bool {
	return o.Status == OrderPaid
}

// PixCode extracts the copyable PIX payload from payment_data, empty when the
// payment method exposes no such code.
func (o *Order) PixCode() string {
	if o.PaymentData == nil {
		return ""
	}
	for _, key := range []string{"pix_copy_paste", "payload", "pixQrCode"} {
		if v, ok := o.PaymentData[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// StatusLabel renders the status for display.
func (o *Order) StatusLabel() string {
	switch o.Status {
	case OrderPending:
		return "Aguardando pagamento"
	case OrderPaid:
		return "Pago"
	}
	return string(o.Status)
}

// OrderItemRequest is one line of an order-creation request. Holders must
// contain exactly Quantity entries.
type OrderItemRequest struct {
	TicketClassID int           `json:"ticket_class_id"`
	Quantity      int           `json:"quantity"`
	Holders       []HolderInput `json:"holders"`
}

// OrderCreateRequest is the POST /orders/ payload.
type OrderCreateRequest struct {
	Items       []OrderItemRequest `json:"items"`
	BillingType BillingType        `json:"billing_type"`
	Reference   string             `json:"reference,omitempty"`
}

// Validate checks the cross-item invariant before the request leaves the
// client: each item must carry exactly Quantity holders.
func (req *OrderCreateRequest) Validate() error {
	if len(req.Items) == 0 {
		return ErrInvalidInput
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return ErrInvalidInput
		}
		if len(item.Holders) != item.Quantity {
			return ErrHolderCountWrong
		}
	}
	if !ValidBillingType(string(req.BillingType)) {
		return ErrInvalidInput
	}
	return nil
}

// PaymentStatus is the GET /orders/{id}/payment-status/ response.
type PaymentStatus struct {
	OrderID     int                    `json:"order_id"`
	Status      OrderStatus            `json:"status"`
	PaymentData map[string]interface{} `json:"payment_data,omitempty"`
	PaidAt      *time.Time             `json:"paid_at,omitempty"`
}
