package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"microfin-backend/internal/domain"
)

// smtpEmailService sends mail through a plain SMTP relay.
type smtpEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

func NewSMTPEmailService(host string, port int, username, password, from, fromName string) EmailService {
	return &smtpEmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
	}
}

func (s *smtpEmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}
	return nil
}

func (s *smtpEmailService) SendApprovalRequested(ctx context.Context, adminEmail, requesterName string, reqType domain.ApprovalType) error {
	subject, body := approvalRequestedMessage(requesterName, reqType)
	return s.send(adminEmail, subject, body)
}

func (s *smtpEmailService) SendApprovalDecision(ctx context.Context, requesterEmail string, reqType domain.ApprovalType, status domain.ApprovalStatus, note string) error {
	subject, body := approvalDecisionMessage(reqType, status, note)
	return s.send(requesterEmail, subject, body)
}

func (s *smtpEmailService) SendCollectionSummary(ctx context.Context, adminEmail string, day time.Time, totalAmount float64, totalCount int, perOffice []OfficeTotal) error {
	subject, body := collectionSummaryMessage(day, totalAmount, totalCount, perOffice)
	return s.send(adminEmail, subject, body)
}

func approvalRequestedMessage(requesterName string, reqType domain.ApprovalType) (subject, body string) {
	subject = fmt.Sprintf("Approval needed: %s", approvalTypeLabel(reqType))
	body = fmt.Sprintf(
		"Hello,\n\n%s has submitted a %s request that needs your review.\n\nPlease open the approvals queue to decide it.\n",
		requesterName, approvalTypeLabel(reqType))
	return subject, body
}

func approvalDecisionMessage(reqType domain.ApprovalType, status domain.ApprovalStatus, note string) (subject, body string) {
	subject = fmt.Sprintf("Your %s request was %s", approvalTypeLabel(reqType), status)
	body = fmt.Sprintf("Hello,\n\nYour %s request has been %s.\n", approvalTypeLabel(reqType), status)
	if note != "" {
		body += fmt.Sprintf("\nNote from the reviewer: %s\n", note)
	}
	return subject, body
}

func collectionSummaryMessage(day time.Time, totalAmount float64, totalCount int, perOffice []OfficeTotal) (subject, body string) {
	subject = fmt.Sprintf("Collection summary for %s", day.Format("02 Jan 2006"))

	var b strings.Builder
	fmt.Fprintf(&b, "Collections recorded on %s:\n\n", day.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "Total: %.2f across %d payments\n", totalAmount, totalCount)
	if len(perOffice) > 0 {
		b.WriteString("\nBy office:\n")
		for _, o := range perOffice {
			name := o.Office
			if name == "" {
				name = "(unassigned)"
			}
			fmt.Fprintf(&b, "  %s: %.2f (%d payments)\n", name, o.Amount, o.Count)
		}
	}
	return subject, b.String()
}

func approvalTypeLabel(t domain.ApprovalType) string {
	switch t {
	case domain.ApprovalTypeRecordPayment:
		return "payment"
	case domain.ApprovalTypeUpdateCustomer:
		return "customer update"
	case domain.ApprovalTypeRenewLoan:
		return "loan renewal"
	case domain.ApprovalTypeDeleteLoan:
		return "loan deletion"
	default:
		return string(t)
	}
}
