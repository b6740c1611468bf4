package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"event-storefront/internal/models"
)

// EventFilters are the optional query parameters for the event listing.
type EventFilters struct {
	Search   string
	City     string
	Category string
	Limit    int
	Offset   int
}

func (f EventFilters) query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// ListEvents fetches the public event listing with nested ticket classes.
func (c *Client) ListEvents(ctx context.Context, filters EventFilters) ([]models.Event, error) {
	var events []models.Event
	cacheKey := "/events/?" + filters.query().Encode()
	if err := c.get(ctx, "/events/", filters.query(), cacheKey, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent fetches a single event with its ticket classes.
func (c *Client) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	var event models.Event
	path := fmt.Sprintf("/events/%d/", id)
	if err := c.get(ctx, path, nil, path, &event); err != nil {
		return nil, asNotFound(err, models.ErrEventNotFound)
	}
	return &event, nil
}
