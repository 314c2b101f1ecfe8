// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, username string) error
	SendPaymentReceipt(toEmail, planName, billingCycle string, amount float64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	clientURL   string // Added to construct links
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendWelcome(toEmail, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to PhotoPro")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to PhotoPro, %s!</h2>
			<p>Your account is ready. You are on the Free plan with 5 AI credits per month.</p>
			<p>Upgrade anytime from your account page to unlock unlimited edits.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Start Editing</a>
		</div>
	`, username, s.clientURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send welcome email to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Welcome email sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendPaymentReceipt(toEmail, planName, billingCycle string, amount float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your PhotoPro Payment Receipt")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment Received</h2>
			<p>Thanks for your purchase. Here is your receipt:</p>
			<table style="border-collapse: collapse;">
				<tr><td style="padding: 4px 12px 4px 0;">Plan</td><td><strong>%s</strong></td></tr>
				<tr><td style="padding: 4px 12px 4px 0;">Billing cycle</td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0;">Amount</td><td>$%.2f USD</td></tr>
			</table>
			<p>Your subscription is now active.</p>
		</div>
	`, planName, billingCycle, amount)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Receipt sent to %s\n", toEmail)
	return nil
}
