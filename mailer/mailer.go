package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends operator alerts through SendGrid.
type Mailer struct {
	client *sendgrid.Client
	to     string
	from   string
}

func New(apiKey, to, from string) *Mailer {
	return &Mailer{
		client: sendgrid.NewSendClient(apiKey),
		to:     to,
		from:   from,
	}
}

// NotifyAuthFailure alerts the operator that Pocket rejected the access
// token during the given sync run.
func (m *Mailer) NotifyAuthFailure(runID string, cause error) error {
	body := fmt.Sprintf(
		"Authorization of the access token against getpocket.com failed during sync run %s.\n\nFull error: %v",
		runID, cause,
	)

	message := mail.NewSingleEmail(
		mail.NewEmail("pocket-lite", m.from),
		"Problem with the Pocket API",
		mail.NewEmail("", m.to),
		body,
		fmt.Sprintf("<strong>%s</strong>", body),
	)

	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("sending alert mail: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected alert mail: status %d", resp.StatusCode)
	}
	return nil
}
