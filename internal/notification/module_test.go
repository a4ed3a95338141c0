package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"zumarlaw_backend/internal/events"
	"zumarlaw_backend/internal/notification/email"
	"zumarlaw_backend/platform/logger"
)

type recordedEmail struct {
	to          string
	clientName  string
	title       string
	attachments int
}

type recorderSender struct {
	sent []recordedEmail
	err  error
}

func (r *recorderSender) SendCertificateReadyEmail(_ context.Context, toEmail, clientName, serviceTitle string, attachments ...email.Attachment) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, recordedEmail{to: toEmail, clientName: clientName, title: serviceTitle, attachments: len(attachments)})
	return nil
}

func (r *recorderSender) SendMonthlyReportEmail(context.Context, string, email.ReportSummary) error {
	return nil
}

func completedEvent(clientEmail string) events.EngagementCompleted {
	return events.EngagementCompleted{
		BaseEvent:    events.NewBaseEvent(),
		EngagementID: uuid.New(),
		Source:       "direct",
		ServiceTitle: "Tax Filing",
		ClientName:   "Ali",
		ClientEmail:  clientEmail,
	}
}

func TestCompletedEngagementTriggersEmail(t *testing.T) {
	sender := &recorderSender{}
	module := NewModule(sender, nil, "certificates", logger.New("test"))
	bus := events.NewInMemoryBus(logger.New("test"))
	module.Subscribe(bus)

	if err := bus.PublishSync(context.Background(), completedEvent("ali@example.com")); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("got %d emails, want 1", len(sender.sent))
	}
	sent := sender.sent[0]
	if sent.to != "ali@example.com" || sent.clientName != "Ali" || sent.title != "Tax Filing" {
		t.Errorf("unexpected email: %+v", sent)
	}
	if sent.attachments != 0 {
		t.Errorf("no storage configured, expected no attachments, got %d", sent.attachments)
	}
}

func TestCompletedEngagementWithoutEmailIsSkipped(t *testing.T) {
	sender := &recorderSender{}
	module := NewModule(sender, nil, "certificates", logger.New("test"))
	bus := events.NewInMemoryBus(logger.New("test"))
	module.Subscribe(bus)

	if err := bus.PublishSync(context.Background(), completedEvent("")); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no email for missing address, got %d", len(sender.sent))
	}
}

func TestSendFailureSurfacesToBus(t *testing.T) {
	sender := &recorderSender{err: errors.New("smtp down")}
	module := NewModule(sender, nil, "certificates", logger.New("test"))
	bus := events.NewInMemoryBus(logger.New("test"))
	module.Subscribe(bus)

	err := bus.PublishSync(context.Background(), completedEvent("ali@example.com"))
	if err == nil {
		t.Error("expected handler error to propagate through PublishSync")
	}
}
