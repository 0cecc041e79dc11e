package service

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/KosalaEhub/ticket-book/internal/model"
)

// EmailNotifier sends contact-form notifications to the site owner over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewEmailNotifier creates a notifier that mails the site owner at the
// given recipient address.
func NewEmailNotifier(smtpHost string, smtpPort int, smtpUser, smtpPassword, from, to string) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   from,
		to:     to,
	}
}

// NotifyContact sends one notification email for a stored contact message.
func (n *EmailNotifier) NotifyContact(msg model.ContactMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", fmt.Sprintf("New contact message: %s", msg.Subject))

	body := fmt.Sprintf(`
		<h3>New contact message</h3>
		<p><strong>From:</strong> %s (%s)</p>
		<p><strong>Subject:</strong> %s</p>
		<p>%s</p>
	`, msg.Name, msg.Email, msg.Subject, msg.Message)
	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	return nil
}
