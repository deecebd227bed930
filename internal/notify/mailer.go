package notify

import (
	"context"
	"fmt"

	"catering/internal/config"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// SMTPMailer sends order emails directly.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	client *mail.Client
	log    *zap.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, log *zap.Logger) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{cfg: cfg, client: client, log: log.Named("mailer")}, nil
}

// Compose builds the email for msg without sending it.
func Compose(from, to string, msg OrderPlaced) (*mail.Msg, error) {
	text, html, err := Render(msg)
	if err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	if msg.ClientEmail != "" {
		if err := m.ReplyTo(msg.ClientEmail); err != nil {
			return nil, fmt.Errorf("reply-to address: %w", err)
		}
	}
	m.Subject(Subject(msg))
	m.SetBodyString(mail.TypeTextPlain, text)
	m.AddAlternativeString(mail.TypeTextHTML, html)
	return m, nil
}

func (s *SMTPMailer) Notify(ctx context.Context, msg OrderPlaced) error {
	m, err := Compose(s.cfg.From, s.cfg.NotifyTo, msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send order %s: %w", msg.OrderID, err)
	}
	s.log.Info("order email sent", zap.String("orderID", msg.OrderID))
	return nil
}

// LogNotifier stands in when SMTP is not configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, msg OrderPlaced) error {
	n.log.Warn("smtp not configured, order notification not sent",
		zap.String("orderID", msg.OrderID),
		zap.String("client", msg.ClientName),
		zap.Int("portions", msg.TotalPortions),
	)
	return nil
}
