package api

import (
	"context"
	"net/http"

	"event-storefront/internal/models"
)

// Login exchanges credentials for the backend's {user, token} pair.
func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.send(ctx, http.MethodPost, "/auth/login/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the same {user, token} pair as
// Login so the storefront can sign the user in immediately.
func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.send(ctx, http.MethodPost, "/auth/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/users/me/", nil, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
