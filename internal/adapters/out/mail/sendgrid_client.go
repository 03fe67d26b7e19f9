package mail

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridClient sends transactional storefront mail (order confirmations).
type SendGridClient struct {
	apiKey string
	from   string
}

func NewSendGridClient(apiKey, from string) *SendGridClient {
	return &SendGridClient{apiKey: apiKey, from: from}
}

// Send delivers one plain-text email.
func (c *SendGridClient) Send(ctx context.Context, to, subject, body string) error {
	if c == nil || c.apiKey == "" {
		return fmt.Errorf("sendgrid: api key is empty")
	}
	if strings.TrimSpace(c.from) == "" {
		return fmt.Errorf("sendgrid: from address is empty")
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("sendgrid: to address is empty")
	}

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail("Quickcart", c.from),
		subject,
		sgmail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	resp, err := sendgrid.NewSendClient(c.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: send: %w", err)
	}
	if resp.StatusCode >= 400 {
		log.Printf("[sendgrid] error status=%d body=%s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid: send failed: status=%d", resp.StatusCode)
	}

	log.Printf("[sendgrid] mail sent status=%d to=%s subject=%q", resp.StatusCode, to, subject)
	return nil
}
