package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func (s *sesSender) SendCreditNoteIssued(ctx context.Context, toEmail, toName string, note *domain.CreditNote) error {
	subject := fmt.Sprintf("Credit note %s issued", note.CreditNoteNumber)
	detailURL := fmt.Sprintf("%s/credit-notes/%s", s.frontendURL, note.ID)

	textBody := fmt.Sprintf(
		"Hi %s,\n\nCredit note %s for %s has been issued to your account.\n\nView it here:\n%s\n\n%s",
		toName, note.CreditNoteNumber, note.CreditAmount.StringFixed(2), detailURL, s.fromName)
	htmlBody := buildDocumentHTML(toName,
		fmt.Sprintf("Credit note <strong>%s</strong> for <strong>%s</strong> has been issued to your account.",
			note.CreditNoteNumber, note.CreditAmount.StringFixed(2)),
		detailURL, "View credit note", s.fromName)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendInvoiceIssued(ctx context.Context, toEmail, toName string, invoice *domain.Invoice) error {
	subject := fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, s.fromName)
	detailURL := fmt.Sprintf("%s/invoices/%s", s.frontendURL, invoice.ID)

	textBody := fmt.Sprintf(
		"Hi %s,\n\nInvoice %s for %s has been issued.\n\nView it here:\n%s\n\n%s",
		toName, invoice.InvoiceNumber, invoice.TotalAmount.StringFixed(2), detailURL, s.fromName)
	htmlBody := buildDocumentHTML(toName,
		fmt.Sprintf("Invoice <strong>%s</strong> for <strong>%s</strong> has been issued.",
			invoice.InvoiceNumber, invoice.TotalAmount.StringFixed(2)),
		detailURL, "View invoice", s.fromName)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func buildDocumentHTML(name, message, detailURL, linkText, fromName string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>Hi %s,</p>
  <p>%s</p>
  <p style="margin: 24px 0;">
    <a href="%s" style="background-color: #2563eb; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 4px;">%s</a>
  </p>
  <p style="color: #888; font-size: 12px;">%s</p>
</body>
</html>`, name, message, detailURL, linkText, fromName)
}
