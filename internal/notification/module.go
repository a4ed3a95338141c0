// Package notification reacts to domain events with client emails. Delivery
// is best-effort: a failed email never fails the operation that raised the
// event.
package notification

import (
	"context"
	"fmt"
	"io"
	"path"

	"zumarlaw_backend/internal/adapters/storage"
	"zumarlaw_backend/internal/events"
	"zumarlaw_backend/internal/notification/email"
	"zumarlaw_backend/platform/logger"
)

// Module wires domain events to email delivery.
type Module struct {
	sender  email.Sender
	storage storage.StorageService
	bucket  string
	log     *logger.Logger
}

// NewModule creates the notification module. storageSvc may be nil; completed
// engagements are then announced without an attachment.
func NewModule(sender email.Sender, storageSvc storage.StorageService, bucket string, log *logger.Logger) *Module {
	return &Module{
		sender:  sender,
		storage: storageSvc,
		bucket:  bucket,
		log:     log,
	}
}

// Subscribe registers the module's event handlers on the bus.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.EngagementCompleted{}.EventName(), events.HandlerFunc(m.onEngagementCompleted))
}

func (m *Module) onEngagementCompleted(ctx context.Context, event events.Event) error {
	completed, ok := event.(events.EngagementCompleted)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", event, event.EventName())
	}

	if completed.ClientEmail == "" {
		m.log.Debug("completed engagement has no client email, skipping notification",
			"engagementId", completed.EngagementID, "source", completed.Source)
		return nil
	}

	attachments := m.certificateAttachment(ctx, completed)

	if err := m.sender.SendCertificateReadyEmail(ctx, completed.ClientEmail, completed.ClientName, completed.ServiceTitle, attachments...); err != nil {
		m.log.EmailEvent("certificate_ready", completed.ClientEmail, err)
		return fmt.Errorf("send certificate ready email: %w", err)
	}

	m.log.EmailEvent("certificate_ready", completed.ClientEmail, nil)
	return nil
}

// certificateAttachment downloads the certificate for the email. A download
// failure degrades to an email without attachment.
func (m *Module) certificateAttachment(ctx context.Context, completed events.EngagementCompleted) []email.Attachment {
	if m.storage == nil || completed.Certificate == "" {
		return nil
	}

	reader, err := m.storage.DownloadFile(ctx, m.bucket, completed.Certificate)
	if err != nil {
		m.log.Warn("certificate download failed, sending without attachment",
			"engagementId", completed.EngagementID, "fileKey", completed.Certificate, "error", err)
		return nil
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		m.log.Warn("certificate read failed, sending without attachment",
			"engagementId", completed.EngagementID, "fileKey", completed.Certificate, "error", err)
		return nil
	}

	return []email.Attachment{{
		FileName: path.Base(completed.Certificate),
		Content:  content,
	}}
}
