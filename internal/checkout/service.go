package checkout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cafev2/storefront-backend/internal/availability"
	"github.com/cafev2/storefront-backend/internal/cart"
	"github.com/cafev2/storefront-backend/pkg/config"
	pkgerrors "github.com/cafev2/storefront-backend/pkg/errors"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/security"
)

// Order is the placed-order payload handed back to the storefront. The
// customer finishes the flow client-side: open the WhatsApp draft, pay
// via the UPI link or QR.
type Order struct {
	Message     string          `json:"message"`
	WhatsAppURL string          `json:"whatsapp_url"`
	UPILink     string          `json:"upi_link"`
	QRCodeURL   string          `json:"qr_code_url"`
	Total       decimal.Decimal `json:"total"`
	Count       int             `json:"count"`
}

type cartLedger interface {
	Get(ctx context.Context, cartID string) (cart.Snapshot, error)
	Clear(ctx context.Context, cartID string) error
}

type availabilityGate interface {
	Status() availability.Status
}

// Service places orders.
type Service interface {
	PlaceOrder(ctx context.Context, cartID string, details OrderDetails) (Order, error)
	PaymentFor(amount decimal.Decimal) (upiLink, qrCodeURL string)
}

type service struct {
	carts    cartLedger
	gate     availabilityGate
	logg     *logger.Logger
	business Business
}

// NewService builds a checkout service bound to the configured business.
func NewService(carts cartLedger, gate availabilityGate, logg *logger.Logger, cfg config.BusinessConfig) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if gate == nil {
		return nil, fmt.Errorf("availability service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts: carts,
		gate:  gate,
		logg:  logg,
		business: Business{
			Name:     cfg.Name,
			WhatsApp: cfg.WhatsApp,
			UPIID:    cfg.UPIID,
		},
	}, nil
}

// PlaceOrder validates the checkout form, renders the order links, and
// empties the cart. A closed store rejects the order outright; the badge
// can lag the schedule by one recheck so the server is the authority.
func (s *service) PlaceOrder(ctx context.Context, cartID string, details OrderDetails) (Order, error) {
	if !s.gate.Status().IsOpen {
		return Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "store is currently closed for orders")
	}

	details.Name = security.SanitizeText(details.Name)
	details.Phone = security.SanitizeText(details.Phone)
	details.Address = security.SanitizeText(details.Address)
	details.TableNumber = security.SanitizeText(details.TableNumber)
	if err := ValidateDetails(details); err != nil {
		return Order{}, err
	}

	snap, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return Order{}, err
	}
	if len(snap.Lines) == 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	message := FormatOrderMessage(snap.Lines, details, snap.Total, s.business)
	order := Order{
		Message:     message,
		WhatsAppURL: WhatsAppLink(s.business.WhatsApp, EncodeComponent(message)),
		UPILink:     UPILink(s.business.UPIID, s.business.Name, snap.Total),
		QRCodeURL:   QRCodeURL(s.business.UPIID, s.business.Name, snap.Total),
		Total:       snap.Total,
		Count:       snap.Count,
	}

	// The draft is already in the customer's hands; a failed clear must
	// not unwind the order.
	if err := s.carts.Clear(ctx, cartID); err != nil {
		s.logg.Error(ctx, "clearing cart after order failed", err)
	}

	return order, nil
}

// PaymentFor regenerates the payment artifacts for an arbitrary amount,
// backing the "pay again" surface.
func (s *service) PaymentFor(amount decimal.Decimal) (string, string) {
	return UPILink(s.business.UPIID, s.business.Name, amount),
		QRCodeURL(s.business.UPIID, s.business.Name, amount)
}
