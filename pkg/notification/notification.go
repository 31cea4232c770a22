// Package notification dispatches multi-channel notifications.
//
// Define a Notification:
//
//	type OrderPlaced struct{ Order models.Order }
//	func (n *OrderPlaced) Via() []string { return []string{"mail"} }
//	func (n *OrderPlaced) ToMail() notification.MailData {
//	    return notification.MailData{Subject: "Order confirmed", Body: "..."}
//	}
//
// Send:
//
//	notification.Send("customer@example.com", &OrderPlaced{Order: o})
//
// Send delivers synchronously. Callers on a request path hand it to a worker
// pool themselves (see app/notifications.Dispatcher) so responses never wait
// on a transport.
package notification

import (
	"fmt"
	"time"

	"github.com/plantnet-dev/plantnet/pkg/httpclient"
	"github.com/plantnet-dev/plantnet/pkg/logger"
	"github.com/plantnet-dev/plantnet/pkg/mail"
)

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// SlackData carries a Slack message payload.
type SlackData struct {
	WebhookURL string // override default if set
	Text       string
}

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names: "mail", "slack".
	Via() []string
}

// Mailable can be implemented to support the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Slackable can be implemented to support the Slack channel.
type Slackable interface {
	ToSlack() SlackData
}

// ─── Global config ────────────────────────────────────────────────────────────

var (
	defaultSlackWebhook string

	// mailFunc performs the actual mail delivery. Swappable in tests.
	mailFunc = func(to, subject, body string) error {
		return mail.To(to).Subject(subject).Body(body).Send()
	}
)

// SetSlackWebhook sets the default Slack incoming webhook URL.
func SetSlackWebhook(url string) { defaultSlackWebhook = url }

// SetMailFunc swaps the mail delivery function. Intended for tests.
func SetMailFunc(fn func(to, subject, body string) error) { mailFunc = fn }

// ─── Send ─────────────────────────────────────────────────────────────────────

// Send dispatches the notification through all channels returned by Via().
// Failures are logged and returned; they never panic.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(address, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

func dispatch(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

	case "slack":
		s, ok := n.(Slackable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Slackable", n)
		}
		return sendSlack(s.ToSlack())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

// ─── Mail channel ─────────────────────────────────────────────────────────────

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}

	body := d.Body
	if body == "" {
		body = d.Text
	}

	return mailFunc(to, d.Subject, body)
}

// ─── Slack channel ────────────────────────────────────────────────────────────

type slackPayload struct {
	Text string `json:"text,omitempty"`
}

func sendSlack(d SlackData) error {
	url := d.WebhookURL
	if url == "" {
		url = defaultSlackWebhook
	}
	if url == "" {
		return fmt.Errorf("notification: slack webhook URL not configured")
	}

	resp, err := httpclient.Post(url).
		Body(slackPayload{Text: d.Text}).
		Timeout(5 * time.Second).
		Retry(3, time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: slack post: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return fmt.Errorf("notification: slack: %w", err)
	}
	return nil
}
