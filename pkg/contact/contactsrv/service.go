package contactsrv

import (
	"context"

	"github.com/casedesk/casedesk/pkg/contact"
	"github.com/casedesk/casedesk/pkg/logx"
	"github.com/casedesk/casedesk/pkg/notifx"
)

const inquiryTemplateName = "inquiry_received"

const inquiryTemplate = `<p>新しいお問い合わせが届きました。</p>
<p>お名前: {{.Name}}</p>
<p>メールアドレス: {{.Email}}</p>
<p>内容:</p>
<p>{{.Message}}</p>`

// Service handles contact inquiries. Every accepted inquiry is persisted
// and then announced to the configured recipients; notification failures
// do not fail the submission.
type Service struct {
	inquiries  contact.InquiryRepository
	notifier   *notifx.Client
	recipients []string
}

// NewService creates a contact service. notifier may be nil when no
// notification backend is configured.
func NewService(inquiries contact.InquiryRepository, notifier *notifx.Client, recipients []string) (*Service, error) {
	if notifier != nil {
		if err := notifier.RegisterTemplate(inquiryTemplateName, inquiryTemplate); err != nil {
			return nil, err
		}
	}
	return &Service{
		inquiries:  inquiries,
		notifier:   notifier,
		recipients: recipients,
	}, nil
}

// Submit validates and stores an inquiry, then notifies the staff mailbox.
func (s *Service) Submit(ctx context.Context, inquiry contact.Inquiry) (*contact.Inquiry, error) {
	if err := inquiry.Validate(); err != nil {
		return nil, err
	}

	created, err := s.inquiries.Create(ctx, inquiry)
	if err != nil {
		return nil, err
	}

	logx.Infof("contact: inquiry %d received from %s", created.ID, created.Email)
	s.notify(ctx, created)

	return created, nil
}

// Get returns one inquiry by ID.
func (s *Service) Get(ctx context.Context, id int64) (*contact.Inquiry, error) {
	return s.inquiries.FindByID(ctx, id)
}

// List returns all inquiries, newest first.
func (s *Service) List(ctx context.Context) ([]contact.Inquiry, error) {
	return s.inquiries.List(ctx)
}

func (s *Service) notify(ctx context.Context, inquiry *contact.Inquiry) {
	if s.notifier == nil || len(s.recipients) == 0 {
		return
	}

	msg := notifx.Message{
		To:      s.recipients,
		ReplyTo: inquiry.Email,
		Subject: "【お問い合わせ】" + inquiry.Name,
	}
	if err := s.notifier.SendTemplated(ctx, inquiryTemplateName, inquiry, msg); err != nil {
		logx.ErrorWith("contact: inquiry notification failed", err, logx.Fields{
			"inquiry_id": inquiry.ID,
		})
	}
}
