package notifications

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/angelmondragon/storefront-backend/pkg/whatsapp"
)

// OrderLine is one product line as shown in a message.
type OrderLine struct {
	Name       string
	Quantity   int
	Unit       string
	PriceCents int64
}

// OrderPlaced describes a freshly created order for messaging.
type OrderPlaced struct {
	OrderNumber      string
	StoreName        string
	VendorWhatsApp   string
	CustomerName     string
	CustomerWhatsApp string
	Address          string
	Items            []OrderLine
	TotalCents       int64
}

func itemsList(lines []OrderLine) string {
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, fmt.Sprintf("• %s x%d %s — %s", l.Name, l.Quantity, l.Unit, money.Format(money.Multiply(l.PriceCents, l.Quantity))))
	}
	return strings.Join(rows, "\n")
}

// CustomerMessage is the confirmation sent to the buyer.
func CustomerMessage(o OrderPlaced) string {
	return fmt.Sprintf(`✅ *Order Confirmed!*

Hi %s, your order *#%s* at *%s* has been placed!

📦 *Items:*
%s

💰 *Total: %s*
💵 *Payment: Cash on Delivery*

The vendor will contact you shortly on this number. Thank you for shopping! 🙏`,
		o.CustomerName, o.OrderNumber, o.StoreName, itemsList(o.Items), money.Format(o.TotalCents))
}

// VendorMessage alerts the store owner with a tap-to-chat link to the buyer.
func VendorMessage(o OrderPlaced) string {
	return fmt.Sprintf(`🔔 *New Order #%s!*

👤 *Customer:* %s
📱 *WhatsApp:* wa.me/%s

📦 *Items:*
%s

💰 *Total: %s*
📍 *Address:* %s

Tap the customer's WhatsApp link to confirm delivery.`,
		o.OrderNumber, o.CustomerName, whatsapp.NormalizeNumber(o.CustomerWhatsApp), itemsList(o.Items), money.Format(o.TotalCents), o.Address)
}
