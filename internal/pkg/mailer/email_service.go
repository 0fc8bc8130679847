package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCampaign(toEmail, toName, subject, body string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendCampaign(toEmail, toName, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", subject)

	htmlBody := fmt.Sprintf(`
		<div style="font-family: Georgia, serif; padding: 24px; color: #1a1a1a; max-width: 640px;">
			%s
			<hr style="border: none; border-top: 1px solid #ddd; margin-top: 32px;">
			<p style="font-size: 11px; color: #999;">Monarch &amp; Co | 2211 Norfolk St #650, Houston, TX 77098</p>
		</div>
	`, strings.ReplaceAll(body, "\n", "<br>"))

	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send campaign to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Campaign sent to %s\n", toEmail)
	return nil
}
