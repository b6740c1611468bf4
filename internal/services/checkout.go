package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"event-storefront/internal/api"
	"event-storefront/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HolderSlot is one holder sub-form on the checkout page. Slots are
// flattened across ticket classes in the order the classes were added, so N
// selected seats always yield exactly N slots.
type HolderSlot struct {
	Index      int
	TicketName string
}

// CheckoutForm is the parsed and validated checkout submission.
type CheckoutForm struct {
	Holders     []models.HolderInput
	BillingType models.BillingType
	Terms       bool
}

// CheckoutService validates the checkout form and turns the staged cart into
// an order-creation request.
type CheckoutService struct {
	validate *validator.Validate
	log      *logrus.Logger
}

func NewCheckoutService(log *logrus.Logger) *CheckoutService {
	return &CheckoutService{
		validate: validator.New(),
		log:      log,
	}
}

// HolderSlots flattens the cart into one slot per seat, preserving the order
// ticket classes were added in.
func (s *CheckoutService) HolderSlots(cart *models.Cart) []HolderSlot {
	slots := make([]HolderSlot, 0, cart.TotalQuantity())
	for _, item := range cart.Items {
		for i := 0; i < item.Quantity; i++ {
			slots = append(slots, HolderSlot{
				Index:      len(slots),
				TicketName: item.TicketName,
			})
		}
	}
	return slots
}

// ParseForm reads the submitted form values into a CheckoutForm and returns
// per-field validation errors. Validation failures never reach the network.
func (s *CheckoutService) ParseForm(form url.Values, cart *models.Cart) (*CheckoutForm, map[string][]string) {
	fieldErrors := make(map[string][]string)
	total := cart.TotalQuantity()

	holders := make([]models.HolderInput, 0, total)
	for i := 0; i < total; i++ {
		holder := models.HolderInput{
			HolderName:  strings.TrimSpace(form.Get(fmt.Sprintf("holder_name_%d", i))),
			HolderEmail: strings.TrimSpace(form.Get(fmt.Sprintf("holder_email_%d", i))),
		}
		if err := s.validate.Struct(holder); err != nil {
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "HolderName":
					fieldErrors[fmt.Sprintf("holder_name_%d", i)] = []string{"Nome do participante é obrigatório"}
				case "HolderEmail":
					if fe.Tag() == "required" {
						fieldErrors[fmt.Sprintf("holder_email_%d", i)] = []string{"E-mail do participante é obrigatório"}
					} else {
						fieldErrors[fmt.Sprintf("holder_email_%d", i)] = []string{"E-mail inválido"}
					}
				}
			}
		}
		holders = append(holders, holder)
	}

	billingType := form.Get("billing_type")
	if billingType == "" {
		fieldErrors["billing_type"] = []string{"Escolha uma forma de pagamento"}
	} else if !models.ValidBillingType(billingType) {
		fieldErrors["billing_type"] = []string{"Forma de pagamento inválida"}
	}

	terms := form.Get("terms") != ""
	if !terms {
		fieldErrors["terms"] = []string{"É preciso aceitar os termos para continuar"}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return &CheckoutForm{
		Holders:     holders,
		BillingType: models.BillingType(billingType),
		Terms:       terms,
	}, nil
}

// BuildOrderRequest maps the flat holder list back onto per-item groupings:
// each cart item claims the next contiguous slice of size Quantity, in order.
func (s *CheckoutService) BuildOrderRequest(cart *models.Cart, form *CheckoutForm) (*models.OrderCreateRequest, error) {
	if len(form.Holders) != cart.TotalQuantity() {
		return nil, models.ErrHolderCountWrong
	}

	req := &models.OrderCreateRequest{
		BillingType: form.BillingType,
		Reference:   uuid.New().String(),
	}

	next := 0
	for _, item := range cart.Items {
		req.Items = append(req.Items, models.OrderItemRequest{
			TicketClassID: item.TicketClassID,
			Quantity:      item.Quantity,
			Holders:       form.Holders[next : next+item.Quantity],
		})
		next += item.Quantity
	}

	return req, req.Validate()
}

// Submit issues the single order-creation call. On failure the caller keeps
// the cart intact for retry.
func (s *CheckoutService) Submit(ctx context.Context, client *api.Client, cart *models.Cart, form *CheckoutForm) (*models.Order, error) {
	req, err := s.BuildOrderRequest(cart, form)
	if err != nil {
		return nil, err
	}

	order, err := client.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"total_amount": order.TotalAmount.Decimal(),
		"billing_type": form.BillingType,
	}).Info("order created")

	return order, nil
}
