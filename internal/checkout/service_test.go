package checkout

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cafev2/storefront-backend/internal/availability"
	"github.com/cafev2/storefront-backend/internal/cart"
	"github.com/cafev2/storefront-backend/pkg/config"
	pkgerrors "github.com/cafev2/storefront-backend/pkg/errors"
	"github.com/cafev2/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
}

func testBusinessConfig() config.BusinessConfig {
	return config.BusinessConfig{
		Name:     "Cafe V2",
		WhatsApp: "9111676448",
		UPIID:    "9111676448@ybl",
	}
}

type stubCarts struct {
	snap     cart.Snapshot
	clearErr error
	cleared  int
}

func (s *stubCarts) Get(ctx context.Context, cartID string) (cart.Snapshot, error) {
	return s.snap, nil
}

func (s *stubCarts) Clear(ctx context.Context, cartID string) error {
	s.cleared++
	return s.clearErr
}

type stubGate struct {
	open bool
}

func (s *stubGate) Status() availability.Status {
	return availability.Status{IsOpen: s.open}
}

func filledCart() cart.Snapshot {
	return cart.Snapshot{
		ID: "c1",
		Lines: []cart.Line{
			{ProductID: "1", Name: "Classic Cheese Burger", Price: amount("180"), Quantity: 1},
		},
		Count: 1,
		Total: amount("180"),
	}
}

func newTestCheckout(t *testing.T, carts *stubCarts, gate *stubGate) Service {
	t.Helper()
	svc, err := NewService(carts, gate, testLogger(), testBusinessConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	t.Parallel()

	carts := &stubCarts{snap: filledCart()}
	svc := newTestCheckout(t, carts, &stubGate{open: true})

	order, err := svc.PlaceOrder(context.Background(), "c1", OrderDetails{
		Name:  "Rahul",
		Phone: "9876543210",
		Type:  FulfillmentTakeaway,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(order.Message, "- 1x Classic Cheese Burger (Rs. 180)") {
		t.Fatalf("message missing order line:\n%s", order.Message)
	}
	if !strings.Contains(order.Message, "Style: Takeaway") {
		t.Fatalf("message missing fulfillment line:\n%s", order.Message)
	}
	if !strings.Contains(order.Message, "TOTAL AMOUNT: Rs. 180") {
		t.Fatalf("message missing total:\n%s", order.Message)
	}
	if order.UPILink != "upi://pay?pa=9111676448@ybl&pn=Cafe%20V2&am=180&cu=INR" {
		t.Fatalf("unexpected UPI link: %q", order.UPILink)
	}
	if !strings.HasPrefix(order.WhatsAppURL, "https://wa.me/9111676448?text=") {
		t.Fatalf("unexpected WhatsApp link: %q", order.WhatsAppURL)
	}
	if carts.cleared != 1 {
		t.Fatalf("expected cart cleared once, got %d", carts.cleared)
	}
}

func TestPlaceOrderRejectsWhenClosed(t *testing.T) {
	t.Parallel()

	carts := &stubCarts{snap: filledCart()}
	svc := newTestCheckout(t, carts, &stubGate{open: false})

	_, err := svc.PlaceOrder(context.Background(), "c1", OrderDetails{
		Name: "Rahul", Phone: "9876543210", Type: FulfillmentTakeaway,
	})
	if err == nil {
		t.Fatal("expected rejection while closed")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("unexpected error code: %v", err)
	}
	if carts.cleared != 0 {
		t.Fatal("rejected order must not clear the cart")
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	carts := &stubCarts{snap: cart.Snapshot{ID: "c1"}}
	svc := newTestCheckout(t, carts, &stubGate{open: true})

	_, err := svc.PlaceOrder(context.Background(), "c1", OrderDetails{
		Name: "Rahul", Phone: "9876543210", Type: FulfillmentTakeaway,
	})
	if err == nil {
		t.Fatal("expected rejection for empty cart")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestPlaceOrderSanitizesDetails(t *testing.T) {
	t.Parallel()

	carts := &stubCarts{snap: filledCart()}
	svc := newTestCheckout(t, carts, &stubGate{open: true})

	order, err := svc.PlaceOrder(context.Background(), "c1", OrderDetails{
		Name:  "<b>Rahul</b>",
		Phone: "9876543210",
		Type:  FulfillmentTakeaway,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(order.Message, "Name: Rahul") || strings.Contains(order.Message, "<b>") {
		t.Fatalf("expected sanitized name:\n%s", order.Message)
	}
}

func TestPlaceOrderClearFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	carts := &stubCarts{snap: filledCart(), clearErr: errors.New("redis down")}
	svc := newTestCheckout(t, carts, &stubGate{open: true})

	if _, err := svc.PlaceOrder(context.Background(), "c1", OrderDetails{
		Name: "Rahul", Phone: "9876543210", Type: FulfillmentTakeaway,
	}); err != nil {
		t.Fatalf("clear failure must not fail the order: %v", err)
	}
}

func TestPaymentFor(t *testing.T) {
	t.Parallel()

	svc := newTestCheckout(t, &stubCarts{}, &stubGate{open: true})

	upiLink, qrURL := svc.PaymentFor(amount("480"))
	if upiLink != "upi://pay?pa=9111676448@ybl&pn=Cafe%20V2&am=480&cu=INR" {
		t.Fatalf("unexpected UPI link: %q", upiLink)
	}
	if !strings.Contains(qrURL, "api.qrserver.com") {
		t.Fatalf("unexpected QR url: %q", qrURL)
	}
}
