package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"zemo-rental-backend/internal/logger"
	"zemo-rental-backend/internal/utils"
)

type sendgridEmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewEmailService builds the SendGrid-backed sender. With an empty API key it
// degrades to logging only, which is what local development wants.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	var client *sendgrid.Client
	if apiKey != "" {
		client = sendgrid.NewSendClient(apiKey)
	}
	return &sendgridEmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendgridEmailService) send(ctx context.Context, toEmail, subject, plainText string) error {
	if s.client == nil {
		logger.DebugContext(ctx, "email suppressed, no api key", "to", toEmail, "subject", subject)
		return nil
	}
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, "<p>"+plainText+"</p>")

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", response.StatusCode)
	}
	return nil
}

func (s *sendgridEmailService) SendBookingRequested(ctx context.Context, hostEmail, renterName, vehicleName, confirmationNumber string) error {
	subject := fmt.Sprintf("New booking request for your %s", vehicleName)
	body := fmt.Sprintf("%s requested to book your %s. Confirmation %s. Review the request in your host dashboard.", renterName, vehicleName, confirmationNumber)
	return s.send(ctx, hostEmail, subject, body)
}

func (s *sendgridEmailService) SendBookingConfirmed(ctx context.Context, renterEmail, vehicleName, hostName string) error {
	subject := fmt.Sprintf("Your booking for %s is confirmed", vehicleName)
	body := fmt.Sprintf("%s accepted your booking for %s. You are all set.", hostName, vehicleName)
	return s.send(ctx, renterEmail, subject, body)
}

func (s *sendgridEmailService) SendBookingRejected(ctx context.Context, renterEmail, vehicleName, reason string) error {
	subject := fmt.Sprintf("Your booking for %s was declined", vehicleName)
	body := fmt.Sprintf("The host declined your booking for %s. Reason: %s", vehicleName, reason)
	return s.send(ctx, renterEmail, subject, body)
}

func (s *sendgridEmailService) SendBookingCancelled(ctx context.Context, email, vehicleName, cancelledBy, reason string) error {
	subject := fmt.Sprintf("Booking for %s was cancelled", vehicleName)
	body := fmt.Sprintf("%s cancelled the booking for %s.", cancelledBy, vehicleName)
	if reason != "" {
		body += " Reason: " + reason
	}
	return s.send(ctx, email, subject, body)
}

func (s *sendgridEmailService) SendBookingCompleted(ctx context.Context, email, vehicleName string, finalReturnCents int64) error {
	subject := fmt.Sprintf("Trip with %s completed", vehicleName)
	body := fmt.Sprintf("The trip with %s is complete. Deposit returned: $%.2f.", vehicleName, float64(finalReturnCents)/100)
	return s.send(ctx, email, subject, body)
}

func (s *sendgridEmailService) SendExtensionRequested(ctx context.Context, hostEmail, renterName, vehicleName string, newEndDate time.Time) error {
	subject := fmt.Sprintf("Trip extension requested for %s", vehicleName)
	body := fmt.Sprintf("%s wants to keep %s until %s. Approve or decline from your host dashboard.", renterName, vehicleName, newEndDate.Format(utils.DateLayout))
	return s.send(ctx, hostEmail, subject, body)
}

func (s *sendgridEmailService) SendExtensionApproved(ctx context.Context, renterEmail, vehicleName string, newEndDate time.Time, addedCostCents int64) error {
	subject := fmt.Sprintf("Extension approved for %s", vehicleName)
	body := fmt.Sprintf("Your trip with %s now ends on %s. Additional charge: $%.2f.", vehicleName, newEndDate.Format(utils.DateLayout), float64(addedCostCents)/100)
	return s.send(ctx, renterEmail, subject, body)
}

func (s *sendgridEmailService) SendExtensionDeclined(ctx context.Context, renterEmail, vehicleName, reason string) error {
	subject := fmt.Sprintf("Extension declined for %s", vehicleName)
	body := fmt.Sprintf("Your extension request for %s was declined. Reason: %s", vehicleName, reason)
	return s.send(ctx, renterEmail, subject, body)
}

func (s *sendgridEmailService) SendLateReturnAlert(ctx context.Context, email, vehicleName string, hoursLate int, feeCents int64) error {
	subject := fmt.Sprintf("Late return: %s", vehicleName)
	body := fmt.Sprintf("%s is %d hour(s) past its return date. Late fees so far: $%.2f.", vehicleName, hoursLate, float64(feeCents)/100)
	return s.send(ctx, email, subject, body)
}
