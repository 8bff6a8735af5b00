package notification

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"credshop/internal/pkg/config"
	"credshop/internal/usecase/shared"
)

// EmailNotifier sends the order-confirmation mail. Delivery is best effort:
// callers log and swallow errors, so a broken SMTP setup never fails a
// checkout.
type EmailNotifier struct {
	cfg config.SMTPConfig
}

func NewEmailNotifier(cfg config.SMTPConfig) shared.Notifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) SendOrderEmail(_ context.Context, email shared.OrderEmail) error {
	if !n.cfg.Enabled {
		slog.Info("smtp disabled, skipping order email",
			"order_id", email.OrderID,
			"to", email.CustomerEmail)
		return nil
	}

	msg := n.buildMessage(email)
	addr := n.cfg.Host + ":" + n.cfg.Port

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{email.CustomerEmail}, msg); err != nil {
		return fmt.Errorf("failed to send order email: %w", err)
	}
	return nil
}

func (n *EmailNotifier) buildMessage(email shared.OrderEmail) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", email.CustomerEmail)
	fmt.Fprintf(&b, "Subject: Order %s confirmation\r\n", email.OrderID)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")

	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", email.CustomerName)
	fmt.Fprintf(&b, "Your order %s is %s.\r\n\r\n", email.OrderID, email.Status)
	for _, line := range email.Lines {
		fmt.Fprintf(&b, "- %s: %d\r\n", line.UnitName, line.PriceCents)
	}
	fmt.Fprintf(&b, "\r\nTotal: %d\r\n", email.TotalCents)

	return []byte(b.String())
}
