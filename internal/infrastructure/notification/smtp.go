package notification

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"tsmit_os/internal/infrastructure/config"
	"tsmit_os/internal/usecase/interfaces"
)

var ErrNoRecipient = errors.New("service order has no recipient email")

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier e-mails the order's contact, or the client when the order
// has no contact email.
type SMTPNotifier struct {
	addr     string
	host     string
	from     string
	auth     smtp.Auth
	sendMail sendMailFunc
}

var _ interfaces.INotifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(opts config.SMTPOptions) *SMTPNotifier {
	n := &SMTPNotifier{
		addr:     net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		host:     opts.Host,
		from:     opts.From,
		sendMail: smtp.SendMail,
	}
	if opts.User != "" {
		n.auth = smtp.PlainAuth("", opts.User, opts.Password, opts.Host)
	}
	return n
}

func (s *SMTPNotifier) Notify(ctx context.Context, n interfaces.StatusNotification) error {
	to := Recipient(n)
	if to == "" {
		return ErrNoRecipient
	}
	msg := BuildMessage(s.from, to, n, time.Now())

	// net/smtp has no context support; run it aside and stop waiting on ctx.
	errc := make(chan error, 1)
	go func() { errc <- s.sendMail(s.addr, s.auth, s.from, []string{to}, msg) }()
	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("send mail to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func Recipient(n interfaces.StatusNotification) string {
	if email := strings.TrimSpace(n.Order.Contact.Email); email != "" {
		return email
	}
	return strings.TrimSpace(n.Order.ClientSnapshot.Email)
}

// BuildMessage renders the RFC 5322 message for n.
func BuildMessage(from, to string, n interfaces.StatusNotification, now time.Time) []byte {
	o := n.Order
	name := strings.TrimSpace(o.Contact.Name)
	if name == "" {
		name = o.ClientSnapshot.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: OS #%d - %s\r\n", o.OrderNumber, n.Status.Name)
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Olá %s,\r\n\r\n", name)
	fmt.Fprintf(&b, "A ordem de serviço #%d mudou para o status \"%s\".\r\n\r\n", o.OrderNumber, n.Status.Name)
	fmt.Fprintf(&b, "Equipamento: %s %s %s\r\n", o.Equipment.Type, o.Equipment.Brand, o.Equipment.Model)
	if len(o.ContractedServices) > 0 {
		b.WriteString("Serviços realizados:\r\n")
		for _, cs := range o.ContractedServices {
			fmt.Fprintf(&b, "  - %s\r\n", cs.Name)
		}
	}
	if o.TechnicalSolution != "" {
		fmt.Fprintf(&b, "\r\nSolução técnica: %s\r\n", o.TechnicalSolution)
	}
	b.WriteString("\r\nTSMIT\r\n")
	return []byte(b.String())
}
