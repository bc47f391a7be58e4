package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/Domenick1991/pawcare/config"
	"github.com/Domenick1991/pawcare/internal/notification"
	"go.uber.org/zap"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Sender mails the provider about a new booking request. Without an SMTP
// address the message is only logged.
type Sender struct {
	from   string
	addr   string
	auth   smtp.Auth
	logger *zap.Logger
	send   sendFunc
}

func NewSender(cfg config.EmailConfig, logger *zap.Logger) *Sender {
	s := &Sender{
		from:   cfg.From,
		addr:   cfg.SMTPAddr,
		logger: logger,
		send:   smtp.SendMail,
	}
	if cfg.Username != "" && cfg.SMTPAddr != "" {
		host, _, err := net.SplitHostPort(cfg.SMTPAddr)
		if err != nil {
			host = cfg.SMTPAddr
		}
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
	return s
}

func (s *Sender) NotifyBookingCreated(ctx context.Context, n notification.BookingNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := Render(s.from, n)
	if s.addr == "" {
		s.logger.Info("email (smtp disabled)",
			zap.String("to", n.ProviderEmail),
			zap.String("booking_id", n.BookingID),
		)
		return nil
	}

	if err := s.send(s.addr, s.auth, s.from, []string{n.ProviderEmail}, msg); err != nil {
		return fmt.Errorf("send booking email to %s: %w", n.ProviderEmail, err)
	}
	s.logger.Info("booking email sent", zap.String("to", n.ProviderEmail), zap.String("booking_id", n.BookingID))
	return nil
}

// Render builds the RFC 822 message sent to the provider.
func Render(from string, n notification.BookingNotification) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", n.ProviderEmail)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", n.CustomerEmail)
	fmt.Fprintf(&b, "Subject: New booking request: %s\r\n", n.ServiceType)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")

	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", n.ProviderName)
	fmt.Fprintf(&b, "%s has requested %s from %s to %s.\r\n\r\n", n.CustomerName, n.ServiceType, n.StartDate, n.EndDate)
	fmt.Fprintf(&b, "Number of dogs: %d\r\n", n.NumberOfDogs)
	if n.DogDetails != "" {
		fmt.Fprintf(&b, "Dog details: %s\r\n", n.DogDetails)
	}
	if n.Message != "" {
		fmt.Fprintf(&b, "Message: %s\r\n", n.Message)
	}
	fmt.Fprintf(&b, "\r\nCustomer contact: %s, %s, %s\r\n", n.CustomerName, n.CustomerEmail, n.CustomerPhone)
	fmt.Fprintf(&b, "Booking ID: %s\r\n", n.BookingID)
	return []byte(b.String())
}

var _ notification.Notifier = (*Sender)(nil)
