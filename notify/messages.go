package notify

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/junaidrashid-git/fishparque-api/models"
)

// Formatter renders storefront events as email messages.
type Formatter struct {
	StoreName string
	Currency  string
}

// Amount renders a money value with thousands separators and at most two decimals.
func (f Formatter) Amount(v float64) string {
	return f.Currency + humanize.CommafWithDigits(v, 2)
}

// FormatNumber renders v without trailing zeros.
func FormatNumber(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func (f Formatter) OrderPlaced(order models.Order) Message {
	var items strings.Builder
	for _, item := range order.Items {
		unit := item.Unit
		if unit == "" {
			unit = "kg"
		}
		fmt.Fprintf(&items, "%s: %s%s @ %s/%s = %s\n",
			item.Name, FormatNumber(item.Quantity), unit,
			f.Amount(float64(item.Price)), unit, f.Amount(item.Subtotal))
	}

	return Message{
		Subject: fmt.Sprintf("🐟 New %s Order - %s", f.StoreName, order.OrderNumber),
		Message: fmt.Sprintf(`Order Number: %s
Date: %s

CUSTOMER INFORMATION:
Name: %s
Email: %s
Phone: %s
Address: %s

ORDER DETAILS:
%s
TOTAL: %s

✅ Order saved to database.
`, order.OrderNumber, order.Date,
			order.Customer.Name, order.Customer.Email, order.Customer.Phone, order.Customer.Address,
			items.String(), f.Amount(order.Total)),
	}
}

func (f Formatter) FeedbackReceived(fb models.Feedback) Message {
	return Message{
		Subject: fmt.Sprintf("📩 %s Feedback - %s", f.StoreName, fb.Category),
		Message: fmt.Sprintf(`Feedback ID: %s
Category: %s
From: %s (%s)
Date: %s

MESSAGE:
%s
`, fb.FeedbackID, fb.Category, fb.Name, fb.Email, fb.Date, fb.Message),
	}
}

// FeedbackReply is addressed back to the customer who left fb.
func (f Formatter) FeedbackReply(fb models.Feedback, reply string) Message {
	return Message{
		ReplyTo: fb.Email,
		Subject: fmt.Sprintf("Re: Your %s Feedback - %s", f.StoreName, fb.FeedbackID),
		Message: fmt.Sprintf(`Dear %s,

Thank you for contacting %s. Here is our response to your %s:

%s

Best regards,
%s Team

---
Original Message:
%s
`, fb.Name, f.StoreName, fb.Category, reply, f.StoreName, fb.Message),
	}
}
