package models

import "time"

// TicketClass represents a priced admission category for an event.
type TicketClass struct {
	ID                int    `json:"id"`
	EventID           int    `json:"event_id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Price             Cents  `json:"price"`
	Type              string `json:"type"`
	AvailableQuantity *int   `json:"available_quantity,omitempty"`
}

// Event represents an event as returned by the backend, with its nested
// ticket classes and a backend-computed minimum price.
type Event struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Start         time.Time     `json:"start"`
	End           time.Time     `json:"end"`
	Location      string        `json:"location"`
	ImageURL      string        `json:"image_url,omitempty"`
	IsActive      bool          `json:"is_active"`
	TicketClasses []TicketClass `json:"ticket_classes"`
	MinPrice      Cents         `json:"min_price"`
}

// TicketClassByID finds a ticket class on the event, nil if absent.
func (e *Event) TicketClassByID(id int) *TicketClass {
	for i := range e.TicketClasses {
		if e.TicketClasses[i].ID == id {
			return &e.TicketClasses[i]
		}
	}
	return nil
}
