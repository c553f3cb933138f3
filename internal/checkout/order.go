// Package checkout turns a cart into a ready-to-send order: a WhatsApp
// message draft, a UPI deep link, and a scannable QR code.
package checkout

import (
	"strings"

	pkgerrors "github.com/cafev2/storefront-backend/pkg/errors"
)

// FulfillmentType selects how the order reaches the customer.
type FulfillmentType string

const (
	FulfillmentDelivery FulfillmentType = "delivery"
	FulfillmentTakeaway FulfillmentType = "takeaway"
	FulfillmentDining   FulfillmentType = "dining"
)

// OrderDetails is the customer-entered checkout form. Exactly one of
// Address or TableNumber is required depending on Type.
type OrderDetails struct {
	Name        string          `json:"name" validate:"required,max=50"`
	Phone       string          `json:"phone" validate:"required,max=15"`
	Type        FulfillmentType `json:"type" validate:"required,oneof=delivery takeaway dining"`
	Address     string          `json:"address" validate:"max=200"`
	TableNumber string          `json:"table_number" validate:"max=10"`
}

// Business identifies the café receiving the order and the payment.
type Business struct {
	Name     string
	WhatsApp string
	UPIID    string
}

// ValidateDetails enforces the per-fulfillment required fields.
func ValidateDetails(details OrderDetails) error {
	if strings.TrimSpace(details.Name) == "" || strings.TrimSpace(details.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name and phone are required")
	}

	switch details.Type {
	case FulfillmentDelivery:
		if strings.TrimSpace(details.Address) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "address is required for delivery")
		}
	case FulfillmentDining:
		if strings.TrimSpace(details.TableNumber) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "table number is required for dining")
		}
	case FulfillmentTakeaway:
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown fulfillment type")
	}
	return nil
}
