// Package email delivers client and staff notifications over SMTP.
package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"zumarlaw_backend/platform/config"
)

const (
	subjectCertificateReady = "Your service is complete - Zumar Law Firm"
	subjectMonthlyReportFmt = "Accounts summary for %s"
)

// Attachment is a file to include with an email.
type Attachment struct {
	FileName string
	Content  []byte
}

// ReportSummary carries the figures for the monthly accounts email.
type ReportSummary struct {
	Period        string
	TotalRevenue  int64
	SalaryPaid    int64
	TotalProfit   int64
	PendingAmount int64
}

// Sender delivers notification emails.
type Sender interface {
	SendCertificateReadyEmail(ctx context.Context, toEmail, clientName, serviceTitle string, attachments ...Attachment) error
	SendMonthlyReportEmail(ctx context.Context, toEmail string, summary ReportSummary) error
}

// SMTPSender implements Sender using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendCertificateReadyEmail notifies a client that their service is complete,
// attaching the certificate when one exists.
func (s *SMTPSender) SendCertificateReadyEmail(ctx context.Context, toEmail, clientName, serviceTitle string, attachments ...Attachment) error {
	content, err := renderEmailTemplate("certificate_ready.html", certificateReadyData{
		baseEmailData: baseEmailData{
			Title:   "Service complete",
			Heading: "Your service is complete",
		},
		ClientName:    clientName,
		ServiceTitle:  serviceTitle,
		HasAttachment: len(attachments) > 0,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectCertificateReady, content, attachments...)
}

// SendMonthlyReportEmail delivers the accounts summary to the report
// recipient.
func (s *SMTPSender) SendMonthlyReportEmail(ctx context.Context, toEmail string, summary ReportSummary) error {
	content, err := renderEmailTemplate("monthly_report.html", monthlyReportData{
		baseEmailData: baseEmailData{
			Title:   "Monthly accounts summary",
			Heading: "Monthly accounts summary",
		},
		Period:        summary.Period,
		TotalRevenue:  formatCurrencyPKR(summary.TotalRevenue),
		SalaryPaid:    formatCurrencyPKR(summary.SalaryPaid),
		TotalProfit:   formatCurrencyPKR(summary.TotalProfit),
		PendingAmount: formatCurrencyPKR(summary.PendingAmount),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectMonthlyReportFmt, summary.Period), content)
}

// NoopSender discards all emails; used when SMTP is not configured.
type NoopSender struct{}

// SendCertificateReadyEmail implements Sender as a no-op.
func (NoopSender) SendCertificateReadyEmail(context.Context, string, string, string, ...Attachment) error {
	return nil
}

// SendMonthlyReportEmail implements Sender as a no-op.
func (NoopSender) SendMonthlyReportEmail(context.Context, string, ReportSummary) error {
	return nil
}

// Compile-time checks.
var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = NoopSender{}
)
