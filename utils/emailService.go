package utils

import (
	"fmt"
	"hub/config"
	"log"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through the configured SMTP relay.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Hub Support <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email to %v: %v", to, err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.content h2 { color: #1A1A2E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #4F8A10; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4F8A10; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>COMMUNITY HUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You received this email because of activity on your community hub account or ticket.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendGuestTicketEmail mails the tokenized access link for a guest ticket.
// Fired asynchronously so ticket creation never waits on SMTP.
func SendGuestTicketEmail(email, name, subject, token string) {
	link := fmt.Sprintf("%s/helpdesk/guest?token=%s", config.AppConfig.BaseURL, token)

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your support ticket <strong>%s</strong> has been created.</p>
		<div class="info-box">Keep this link private. Anyone with it can read and reply to your ticket.</div>
		<a class="btn" href="%s">View your ticket</a>
		<p>You will receive a reply from our team by email at this address.</p>
	`, name, subject, link)

	go SendEmail([]string{email}, "Your support ticket: "+subject, getEmailTemplate("Ticket Created", body))
}

// SendGuestReplyNotification tells a guest their ticket got a staff reply.
func SendGuestReplyNotification(email, name, subject, token string) {
	link := fmt.Sprintf("%s/helpdesk/guest?token=%s", config.AppConfig.BaseURL, token)

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Our team replied to your ticket <strong>%s</strong>.</p>
		<a class="btn" href="%s">Read the reply</a>
	`, name, subject, link)

	go SendEmail([]string{email}, "New reply on your ticket: "+subject, getEmailTemplate("New Reply", body))
}

// SendRankGrantedEmail confirms a donor rank purchase.
func SendRankGrantedEmail(email, name, rankName string, expiresAt string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Thank you for your donation! Your <strong>%s</strong> rank is now active.</p>
		<div class="info-box">Your rank is valid until <strong>%s</strong>.</div>
		<p>Perks are applied automatically on the website and in game.</p>
	`, name, rankName, expiresAt)

	go SendEmail([]string{email}, "Your "+rankName+" rank is active", getEmailTemplate("Rank Activated", body))
}
