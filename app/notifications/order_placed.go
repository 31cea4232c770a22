// Package notifications holds the concrete notification payloads and the
// dispatcher that fans them out off the request path.
package notifications

import (
	"fmt"

	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/pkg/notification"
)

// OrderConfirmation is mailed to the customer right after checkout.
type OrderConfirmation struct {
	Order models.Order
}

func (n *OrderConfirmation) Via() []string { return []string{"mail"} }

func (n *OrderConfirmation) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Your PlantNet order is confirmed",
		Body: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your order for %d plant(s) totalling $%.2f has been placed. "+
				"We'll let you know when the seller ships it.</p>",
			n.Order.Customer.Name, n.Order.Quantity, n.Order.Price),
		Text: fmt.Sprintf("Your order for %d plant(s) totalling $%.2f has been placed.",
			n.Order.Quantity, n.Order.Price),
	}
}

// SellerOrderAlert tells the seller they have a new order to fulfil.
type SellerOrderAlert struct {
	Order models.Order
}

func (n *SellerOrderAlert) Via() []string { return []string{"mail"} }

func (n *SellerOrderAlert) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "New order on PlantNet",
		Body: fmt.Sprintf(
			"<p>%s (%s) ordered %d plant(s) for $%.2f. Delivery address: %s.</p>",
			n.Order.Customer.Name, n.Order.Customer.Email,
			n.Order.Quantity, n.Order.Price, n.Order.Address),
		Text: fmt.Sprintf("%s ordered %d plant(s) for $%.2f.",
			n.Order.Customer.Email, n.Order.Quantity, n.Order.Price),
	}
}
