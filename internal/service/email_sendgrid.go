package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"microfin-backend/internal/domain"
)

// sendGridEmailService sends mail through the SendGrid API.
type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendApprovalRequested(ctx context.Context, adminEmail, requesterName string, reqType domain.ApprovalType) error {
	subject, body := approvalRequestedMessage(requesterName, reqType)
	return s.send(adminEmail, subject, body)
}

func (s *sendGridEmailService) SendApprovalDecision(ctx context.Context, requesterEmail string, reqType domain.ApprovalType, status domain.ApprovalStatus, note string) error {
	subject, body := approvalDecisionMessage(reqType, status, note)
	return s.send(requesterEmail, subject, body)
}

func (s *sendGridEmailService) SendCollectionSummary(ctx context.Context, adminEmail string, day time.Time, totalAmount float64, totalCount int, perOffice []OfficeTotal) error {
	subject, body := collectionSummaryMessage(day, totalAmount, totalCount, perOffice)
	return s.send(adminEmail, subject, body)
}
