package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendAdminAlert(subject, title, body, link string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	adminEmail  string
}

func NewEmailService(host string, port int, username, password, senderEmail, adminEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		adminEmail:  adminEmail,
	}
}

// SendAdminAlert mails the configured admin inbox. Callers treat failures as
// best-effort; this never blocks a primary write path.
func (s *emailService) SendAdminAlert(subject, title, body, link string) error {
	if s.adminEmail == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.adminEmail)
	m.SetHeader("Subject", subject)

	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>%s</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open dashboard</a>
		</div>
	`, title, body, link)

	m.SetBody("text/html", html)

	return s.dialer.DialAndSend(m)
}
