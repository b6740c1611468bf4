package services

import (
	"context"
	"strings"

	"event-storefront/internal/api"
	"event-storefront/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// AccountService lists the signed-in user's orders and handles ticket
// holder assignment.
type AccountService struct {
	validate *validator.Validate
	log      *logrus.Logger
}

func NewAccountService(log *logrus.Logger) *AccountService {
	return &AccountService{
		validate: validator.New(),
		log:      log,
	}
}

// Orders returns the user's orders with line items and tickets. Served
// through the API cache; assignment invalidates it.
func (s *AccountService) Orders(ctx context.Context, client *api.Client) ([]models.Order, error) {
	return client.ListOrders(ctx)
}

// ValidateAssignment checks the holder form before anything touches the
// network, returning inline per-field errors.
func (s *AccountService) ValidateAssignment(name, email string) (*models.TicketAssignment, map[string][]string) {
	assignment := &models.TicketAssignment{
		HolderName:  strings.TrimSpace(name),
		HolderEmail: strings.TrimSpace(email),
	}

	fieldErrors := make(map[string][]string)
	if err := s.validate.Struct(assignment); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			switch fe.Field() {
			case "HolderName":
				fieldErrors["holder_name"] = []string{"Nome do participante é obrigatório"}
			case "HolderEmail":
				if fe.Tag() == "required" {
					fieldErrors["holder_email"] = []string{"E-mail do participante é obrigatório"}
				} else {
					fieldErrors["holder_email"] = []string{"E-mail inválido"}
				}
			}
		}
	}
	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return assignment, nil
}

// AssignTicket PATCHes the holder onto one ticket. On failure the ticket
// stays unassigned and the error is surfaced; on success the cached order
// list has been invalidated so the next render reflects the holder.
func (s *AccountService) AssignTicket(ctx context.Context, client *api.Client, ticketID int, assignment *models.TicketAssignment) (*models.Ticket, error) {
	ticket, err := client.AssignTicket(ctx, ticketID, assignment)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"ticket_id":    ticket.ID,
		"holder_email": ticket.HolderEmail,
	}).Info("ticket assigned")

	return ticket, nil
}
