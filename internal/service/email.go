package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/config"
	"github.com/fleetnexa/fleetnexa-server/internal/logger"
)

type emailService struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewEmailService(cfg config.SendGridConfig) EmailService {
	return &emailService{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plain, html string) error {
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail(toName, to), plain, html)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("email rejected with status %d: %s", resp.StatusCode, resp.Body)
	}
	logger.Debug("email sent", "to", to, "subject", subject, "status", resp.StatusCode)
	return nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, to, customerName, vehicle string, netTotal decimal.Decimal, currency string) error {
	subject := "Your booking is confirmed"
	plain := fmt.Sprintf("Hi %s,\n\nYour booking for the %s is confirmed. Total: %s.\n\nSee you soon!",
		customerName, vehicle, FormatAmount(currency, netTotal))
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your booking for the <strong>%s</strong> is confirmed. Total: <strong>%s</strong>.</p><p>See you soon!</p>",
		customerName, vehicle, FormatAmount(currency, netTotal))
	return s.send(ctx, to, customerName, subject, plain, html)
}

func (s *emailService) SendBookingCompletion(ctx context.Context, to, customerName, vehicle string, netTotal decimal.Decimal, currency string) error {
	subject := "Thanks for renting with us"
	plain := fmt.Sprintf("Hi %s,\n\nYour rental of the %s is complete. Total charged: %s.\n\nWe hope to see you again.",
		customerName, vehicle, FormatAmount(currency, netTotal))
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your rental of the <strong>%s</strong> is complete. Total charged: <strong>%s</strong>.</p><p>We hope to see you again.</p>",
		customerName, vehicle, FormatAmount(currency, netTotal))
	return s.send(ctx, to, customerName, subject, plain, html)
}

func (s *emailService) SendBookingCancellation(ctx context.Context, to, customerName, vehicle string, fee decimal.Decimal, currency string) error {
	subject := "Your booking was cancelled"
	feeLine := "No cancellation fee applies."
	if fee.IsPositive() {
		feeLine = fmt.Sprintf("A cancellation fee of %s applies.", FormatAmount(currency, fee))
	}
	plain := fmt.Sprintf("Hi %s,\n\nYour booking for the %s has been cancelled. %s",
		customerName, vehicle, feeLine)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your booking for the <strong>%s</strong> has been cancelled. %s</p>",
		customerName, vehicle, feeLine)
	return s.send(ctx, to, customerName, subject, plain, html)
}

func (s *emailService) SendOverdueNotice(ctx context.Context, to, customerName, vehicle string, endDate time.Time) error {
	subject := "Your rental is overdue"
	plain := fmt.Sprintf("Hi %s,\n\nYour rental of the %s was due back on %s. Please return the vehicle or contact us.",
		customerName, vehicle, endDate.Format("January 2, 2006"))
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your rental of the <strong>%s</strong> was due back on <strong>%s</strong>. Please return the vehicle or contact us.</p>",
		customerName, vehicle, endDate.Format("January 2, 2006"))
	return s.send(ctx, to, customerName, subject, plain, html)
}
