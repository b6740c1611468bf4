package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoStagedCart     = errors.New("no staged cart in session")
	ErrNoStagedOrder    = errors.New("no staged order in session")
	ErrTicketAssigned   = errors.New("ticket has already been assigned")
	ErrHolderCountWrong = errors.New("holder count does not match quantity")
)
