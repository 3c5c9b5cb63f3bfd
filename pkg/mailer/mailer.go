package mailer

import (
	"fmt"
	"net/smtp"

	"naturehatch-backend/pkg/utils"

	"go.uber.org/zap"
)

type Mailer interface {
	SendVerificationEmail(to, verificationLink string) error
	SendPasswordResetOTP(to, otp string) error
	SendOrderConfirmation(to, orderNumber string, totalAmount float64) error
}

type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func New(config utils.EmailConfig, log *zap.Logger) Mailer {
	return &smtpMailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (m *smtpMailer) SendVerificationEmail(to, verificationLink string) error {
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
<h2 style="color: #2e7d32;">Welcome to Nature Hatch!</h2>
<p>Thank you for registering with <strong>Nature Hatch</strong>.</p>
<p>To complete your registration, please verify your email address:</p>
<p><a href="%s">Verify My Email</a></p>
<p>If the link above does not work, copy and paste it into your browser:</p>
<p>%s</p>
<p>If you did not create an account, you can safely ignore this email.</p>
</div>`, verificationLink, verificationLink)

	return m.send(to, "Verify Your Email Address", body, true)
}

func (m *smtpMailer) SendPasswordResetOTP(to, otp string) error {
	return m.send(to, "Password Reset OTP", fmt.Sprintf("Your OTP is %s", otp), false)
}

func (m *smtpMailer) SendOrderConfirmation(to, orderNumber string, totalAmount float64) error {
	body := fmt.Sprintf("Thank you for your order!\n\nOrder number: %s\nTotal amount: %.2f\n\nThe Nature Hatch Team",
		orderNumber, totalAmount)
	return m.send(to, "Order Confirmation - "+orderNumber, body, false)
}

func (m *smtpMailer) send(to, subject, body string, html bool) error {
	if m.config.Host == "" {
		// No SMTP configured (local development), log instead of failing
		m.log.Info("SMTP not configured, skipping email",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	contentType := "text/plain"
	if html {
		contentType = "text/html"
	}

	msg := "From: " + m.config.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: " + contentType + "; charset=utf-8\r\n\r\n" +
		body

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.User != "" {
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	}

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject))
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	return nil
}
