package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cafev2/storefront-backend/internal/cart"
)

// The formatting helpers below are pure: the same inputs always yield
// the same strings, so a customer can regenerate a payment link from the
// same order at any time.

// FormatOrderMessage renders the plain-text order draft the customer
// sends over WhatsApp. Line totals and the grand total render without
// trailing zeros ("Rs. 180", not "Rs. 180.00").
func FormatOrderMessage(lines []cart.Line, details OrderDetails, total decimal.Decimal, business Business) string {
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		lineTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, fmt.Sprintf("- %dx %s (Rs. %s)", line.Quantity, line.Name, lineTotal.String()))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s, I would like to place an order!\n\n", business.Name)
	b.WriteString("- CUSTOMER DETAILS -\n")
	fmt.Fprintf(&b, "Name: %s\n", details.Name)
	fmt.Fprintf(&b, "Phone: %s\n", details.Phone)
	b.WriteString(fulfillmentLine(details))
	b.WriteString("\n\n- ORDER SUMMARY -\n")
	b.WriteString(strings.Join(items, "\n"))
	b.WriteString("\n\n--------------------------\n")
	fmt.Fprintf(&b, "TOTAL AMOUNT: Rs. %s\n", total.String())
	b.WriteString("--------------------------\n\n")
	b.WriteString("- PAYMENT VIA UPI -\n")
	b.WriteString(UPILink(business.UPIID, business.Name, total))
	b.WriteString("\n\nPlease confirm my order once you receive the payment. Thank you!")
	return b.String()
}

func fulfillmentLine(details OrderDetails) string {
	switch details.Type {
	case FulfillmentDining:
		return "Table Number: " + details.TableNumber
	case FulfillmentDelivery:
		return "Address: " + details.Address
	default:
		return "Style: Takeaway"
	}
}

// UPILink builds the upi://pay deep link. The payee name is the only
// percent-encoded field; VPAs and amounts are already URL-safe.
func UPILink(upiID, payeeName string, amount decimal.Decimal) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR", upiID, EncodeComponent(payeeName), amount.String())
}

// QRCodeURL returns a hosted QR image encoding the UPI deep link.
func QRCodeURL(upiID, payeeName string, amount decimal.Decimal) string {
	link := UPILink(upiID, payeeName, amount)
	return "https://api.qrserver.com/v1/create-qr-code/?size=250x250&data=" + EncodeComponent(link)
}

// WhatsAppLink returns a wa.me URL that opens a chat with the café,
// pre-filled with the encoded order message.
func WhatsAppLink(whatsAppNumber, encodedMessage string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", whatsAppNumber, encodedMessage)
}

// EncodeComponent percent-encodes a string for embedding in a URL query,
// using %20 for spaces rather than the form-encoding plus sign.
func EncodeComponent(raw string) string {
	return strings.ReplaceAll(url.QueryEscape(raw), "+", "%20")
}
