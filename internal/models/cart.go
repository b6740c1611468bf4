package models

// HolderInput is a per-ticket holder placeholder collected on the checkout form.
type HolderInput struct {
	HolderName  string `json:"holder_name" validate:"required"`
	HolderEmail string `json:"holder_email" validate:"required,email"`
}

// CartItem represents one ticket-class selection in the shopping cart.
// Holders is sized to Quantity when the cart is staged for checkout.
type CartItem struct {
	TicketClassID int           `json:"ticket_class_id"`
	TicketName    string        `json:"ticket_name"`
	UnitPrice     Cents         `json:"unit_price"`
	Quantity      int           `json:"quantity"`
	Holders       []HolderInput `json:"holders,omitempty"`
}

// Subtotal returns the display subtotal for this selection.
func (i CartItem) Subtotal() Cents {
	return i.UnitPrice * Cents(i.Quantity)
}

// Cart represents the client-only ticket selection for a single event.
// Items preserve first-insertion order; the backend never sees this shape.
type Cart struct {
	EventID   int        `json:"event_id"`
	EventName string     `json:"event_name"`
	Items     []CartItem `json:"items"`
}

// Increment raises the quantity for a ticket class by one, appending a new
// item on first selection.
func (c *Cart) Increment(class *TicketClass) {
	for i := range c.Items {
		if c.Items[i].TicketClassID == class.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		TicketClassID: class.ID,
		TicketName:    class.Name,
		UnitPrice:     class.Price,
		Quantity:      1,
	})
}

// Decrement lowers the quantity for a ticket class by one with a floor of
// zero. Reaching zero removes the entry entirely.
func (c *Cart) Decrement(ticketClassID int) {
	for i := range c.Items {
		if c.Items[i].TicketClassID != ticketClassID {
			continue
		}
		c.Items[i].Quantity--
		if c.Items[i].Quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		return
	}
}

// Quantity returns the current quantity for a ticket class, zero if absent.
func (c *Cart) Quantity(ticketClassID int) int {
	for _, item := range c.Items {
		if item.TicketClassID == ticketClassID {
			return item.Quantity
		}
	}
	return 0
}

// TotalQuantity returns the number of seats selected across all classes.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalAmount returns the display total, the sum of per-item subtotals.
// The authoritative total is whatever the backend returns on the order.
func (c *Cart) TotalAmount() Cents {
	var total Cents
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// IsEmpty reports whether the cart has no selections.
func (c *Cart) IsEmpty() bool {
	return c.TotalQuantity() == 0
}
