package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/phrazzld/core-api/internal/config"
	"github.com/phrazzld/core-api/internal/platform/logger"
	"github.com/phrazzld/core-api/internal/redact"
)

// BackendSMTP is the only transport this package implements.
const BackendSMTP = "smtp"

const dialTimeout = 10 * time.Second

var (
	ErrUnsupportedBackend = errors.New("unsupported mail backend")
	ErrNoRecipients       = errors.New("message has no recipients")
)

// Message is a single plain-text or HTML email.
type Message struct {
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// Sender delivers messages through one SMTP relay. The connection is opened
// per Send, so constructing a Sender never touches the network.
type Sender struct {
	client   *gomail.Client
	from     string
	password string
}

// NewSender builds a Sender from cfg. The SMTP login doubles as the envelope
// sender address.
func NewSender(cfg config.MailConfig) (*Sender, error) {
	if cfg.Backend != BackendSMTP {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(dialTimeout),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password.Reveal()),
	}
	if cfg.UseTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &Sender{client: client, from: cfg.Username, password: cfg.Password.Reveal()}, nil
}

// Addr returns the relay address as host:port.
func (s *Sender) Addr() string {
	return s.client.ServerAddr()
}

// Send delivers m. Errors never contain the SMTP password.
func (s *Sender) Send(ctx context.Context, m Message) error {
	msg, err := s.build(m)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		safe := redact.Values(err.Error(), s.password)
		logger.FromContext(ctx).Error("failed to send email",
			"error", safe,
			"relay", s.Addr(),
			"recipients", len(m.To))
		return fmt.Errorf("failed to send email via %s: %s", s.Addr(), safe)
	}

	return nil
}

func (s *Sender) build(m Message) (*gomail.Msg, error) {
	if len(m.To) == 0 {
		return nil, ErrNoRecipients
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(m.Subject)

	contentType := gomail.TypeTextPlain
	if m.HTML {
		contentType = gomail.TypeTextHTML
	}
	msg.SetBodyString(contentType, m.Body)

	return msg, nil
}
