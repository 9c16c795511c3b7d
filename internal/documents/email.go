package documents

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"itam-service/internal/config"
)

// EmailService sends mail through an SMTP relay. The dialer upgrades the
// connection with STARTTLS when the relay offers it. When no credentials
// are configured sends are simulated and only logged.
type EmailService struct {
	cfg   config.SMTPConfig
	clock clock.Clock
	log   *zap.Logger
	send  func(*gomail.Message) error
}

func NewEmailService(cfg config.SMTPConfig, clk clock.Clock, log *zap.Logger) *EmailService {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &EmailService{cfg: cfg, clock: clk, log: log, send: func(m *gomail.Message) error {
		return dialer.DialAndSend(m)
	}}
}

// Send delivers msg once. It does not dial when ctx is already done.
// false means the failure has been logged.
func (s *EmailService) Send(ctx context.Context, msg Email) (Receipt, bool) {
	if err := ctx.Err(); err != nil {
		s.log.Warn("email not sent", zap.String("to", msg.To), zap.Error(err))
		return Receipt{}, false
	}
	if msg.To == "" {
		s.log.Error("email not sent: no recipient", zap.String("subject", msg.Subject))
		return Receipt{}, false
	}

	receipt := Receipt{MessageID: uuid.NewString(), SentAt: s.clock.Now()}
	if !s.cfg.Configured() {
		receipt.Simulated = true
		s.log.Info("email simulated",
			zap.String("message_id", receipt.MessageID),
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Strings("attachments", msg.Attachments))
		return receipt, true
	}

	if err := s.send(s.message(receipt.MessageID, msg)); err != nil {
		s.log.Error("email send failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.String("host", s.cfg.Host),
			zap.Error(err))
		return Receipt{}, false
	}
	s.log.Info("email sent", zap.String("message_id", receipt.MessageID), zap.String("to", msg.To))
	return receipt, true
}

func (s *EmailService) message(id string, msg Email) *gomail.Message {
	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", id, s.cfg.Host))
	m.SetDateHeader("Date", s.clock.Now())
	m.SetBody("text/plain", msg.Body)
	for _, path := range msg.Attachments {
		m.Attach(path)
	}
	return m
}
