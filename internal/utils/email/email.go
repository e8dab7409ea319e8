package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/Dan9191/kos-service/internal/config"
	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Reminder is the content of one overdue-payment notice
type Reminder struct {
	To            string
	TenantName    string
	InvoiceNumber string
	PaymentMonth  string
	DueDate       time.Time
	Amount        decimal.Decimal
}

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, a smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, a smtp.Auth) error {
			return e.Send(addr, a)
		},
	}
}

// SendPaymentReminder sends an overdue payment reminder
func (s *Sender) SendPaymentReminder(r Reminder) error {
	e := BuildReminder(s.cfg.SenderEmail, r)

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send reminder to %s: %v", r.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", r.To, e.Subject)
	return nil
}

// BuildReminder renders the reminder message
func BuildReminder(from string, r Reminder) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{r.To}
	e.Subject = fmt.Sprintf("Pembayaran %s terlambat", r.InvoiceNumber)

	body := fmt.Sprintf("Yth. %s,\n\n", r.TenantName)
	body += fmt.Sprintf(
		"Pembayaran sewa kamar untuk bulan %s sebesar %s (invoice %s)\n"+
			"telah jatuh tempo pada %s dan belum kami terima.\n"+
			"Mohon segera melakukan pembayaran.\n",
		r.PaymentMonth, FormatRupiah(r.Amount), r.InvoiceNumber, r.DueDate.Format("02-01-2006"),
	)
	body += "\nHormat kami,\nPengelola Kos"
	e.Text = []byte(body)
	return e
}

// FormatRupiah renders an amount as Rp 1.500.000
func FormatRupiah(amount decimal.Decimal) string {
	digits := amount.Round(0).Abs().String()
	var out []byte
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}
	sign := ""
	if amount.Round(0).IsNegative() {
		sign = "-"
	}
	return "Rp " + sign + string(out)
}
