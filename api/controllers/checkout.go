package controllers

import (
	"net/http"

	"github.com/cafev2/storefront-backend/api/responses"
	"github.com/cafev2/storefront-backend/api/validators"
	checkoutsvc "github.com/cafev2/storefront-backend/internal/checkout"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/types"
)

type checkoutRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Phone       string `json:"phone" validate:"required,max=15"`
	Type        string `json:"type" validate:"required,oneof=delivery takeaway dining"`
	Address     string `json:"address" validate:"max=200"`
	TableNumber string `json:"table_number" validate:"max=10"`
}

type checkoutResponse struct {
	Message     string       `json:"message"`
	WhatsAppURL string       `json:"whatsapp_url"`
	UPILink     string       `json:"upi_link"`
	QRCodeURL   string       `json:"qr_code_url"`
	Total       types.Amount `json:"total"`
	Count       int          `json:"count"`
}

// Checkout places the order for a cart: renders the WhatsApp draft and
// payment links, then empties the cart.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), cartIDParam(r), checkoutsvc.OrderDetails{
			Name:        payload.Name,
			Phone:       payload.Phone,
			Type:        checkoutsvc.FulfillmentType(payload.Type),
			Address:     payload.Address,
			TableNumber: payload.TableNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutResponse{
			Message:     order.Message,
			WhatsAppURL: order.WhatsAppURL,
			UPILink:     order.UPILink,
			QRCodeURL:   order.QRCodeURL,
			Total:       types.NewAmount(order.Total),
			Count:       order.Count,
		})
	}
}
