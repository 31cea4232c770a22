package notifications

import (
	"fmt"

	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/pkg/notification"
)

// SellerRequested pings the admin Slack channel when a user asks for seller
// status, so requests don't sit unnoticed in the dashboard.
type SellerRequested struct {
	User models.User
}

func (n *SellerRequested) Via() []string { return []string{"slack"} }

func (n *SellerRequested) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("%s (%s) requested to become a seller.", n.User.Name, n.User.Email),
	}
}
