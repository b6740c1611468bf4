package models

import "time"

// Ticket is one purchased seat. Holder fields are empty until the buyer
// assigns someone; unassigned is a normal post-purchase state.
type Ticket struct {
	ID              int    `json:"id"`
	OrderID         int    `json:"order_id"`
	OrderItemID     int    `json:"order_item_id"`
	TicketClassName string `json:"ticket_class_name,omitempty"`

	HolderName  string    `json:"holder_name,omitempty"`
	HolderEmail string    `json:"holder_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsAssigned reports whether a holder has been set. The account page hides
// the assign action once this is true.
func (t *Ticket) IsAssigned() bool {
	return t.HolderName != "" || t.HolderEmail != ""
}

// TicketAssignment is the PATCH /tickets/{id}/assign/ payload.
type TicketAssignment struct {
	HolderName  string `json:"holder_name" validate:"required"`
	HolderEmail string `json:"holder_email" validate:"required,email"`
}
