package api

import (
	"context"
	"fmt"
	"net/http"

	"event-storefront/internal/models"

	"github.com/cockroachdb/errors"
)

// AssignTicket sets the holder on an unassigned ticket. The backend refuses
// re-assignment with a 400, mapped to ErrTicketAssigned. Cached orders are
// invalidated so the assignment shows on the next account render.
func (c *Client) AssignTicket(ctx context.Context, id int, assignment *models.TicketAssignment) (*models.Ticket, error) {
	var ticket models.Ticket
	path := fmt.Sprintf("/tickets/%d/assign/", id)
	if err := c.send(ctx, http.MethodPatch, path, assignment, &ticket); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			return nil, errors.Wrap(models.ErrTicketAssigned, apiErr.Message)
		}
		return nil, asNotFound(err, models.ErrTicketNotFound)
	}
	c.invalidate("/orders/")
	return &ticket, nil
}
