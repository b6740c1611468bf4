package api

import (
	"context"
	"fmt"
	"net/http"

	"event-storefront/internal/models"
)

// CreateOrder submits the checkout payload and returns the created order,
// already carrying payment_data when the backend charged a provider. The
// user's cached order list is invalidated so the account page re-fetches.
func (c *Client) CreateOrder(ctx context.Context, req *models.OrderCreateRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var order models.Order
	if err := c.send(ctx, http.MethodPost, "/orders/", req, &order); err != nil {
		return nil, err
	}
	c.invalidate("/orders/")
	return &order, nil
}

// GetOrder fetches one of the current user's orders with items and tickets.
func (c *Client) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/orders/%d/", id)
	if err := c.get(ctx, path, nil, path, &order); err != nil {
		return nil, asNotFound(err, models.ErrOrderNotFound)
	}
	return &order, nil
}

// GetPaymentStatus fetches the current payment state of an order. Never
// cached: this is the polling endpoint and must always hit the backend.
func (c *Client) GetPaymentStatus(ctx context.Context, id int) (*models.PaymentStatus, error) {
	var status models.PaymentStatus
	path := fmt.Sprintf("/orders/%d/payment-status/", id)
	if err := c.get(ctx, path, nil, "", &status); err != nil {
		return nil, asNotFound(err, models.ErrOrderNotFound)
	}
	if status.OrderID == 0 {
		status.OrderID = id
	}
	return &status, nil
}

// ListOrders fetches the current user's orders with items and tickets.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/orders/", nil, "/orders/", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
