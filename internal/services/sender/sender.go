// Package services содержит отправителя писем-напоминаний о поездках.
package services

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"github.com/magelanov/travel-booking/internal/config"
	"github.com/magelanov/travel-booking/internal/lib/sl"
	"github.com/magelanov/travel-booking/internal/models"
)

// SenderService отправляет письма-напоминания через SMTP со STARTTLS.
type SenderService struct {
	cfg *config.Config
	log *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(cfg *config.Config, log *slog.Logger) *SenderService {
	return &SenderService{
		cfg: cfg,
		log: log,
	}
}

// SendTripReminder разбирает событие напоминания и отправляет письмо владельцу поездки.
func (s *SenderService) SendTripReminder(body []byte) error {
	var message models.TripReminder
	if err := json.Unmarshal(body, &message); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}

	subject := "Напоминание о предстоящей поездке"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nВаша поездка «%s» в %s начинается завтра, %s.\n\nХорошего путешествия!",
		message.Name, message.TripName, message.CityName, message.StartDate.Format("02.01.2006"))

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", s.cfg.SMTPUser),
		fmt.Sprintf("To: %s", strings.Join(to, ";")),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		s.log.Error("failed to dial SMTP server", sl.Err(err))
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		s.log.Error("failed to create SMTP client", sl.Err(err))
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
	}
	ok, _ := client.Extension("STARTTLS")
	if !ok {
		s.log.Error("SMTP server does not support STARTTLS")
		return fmt.Errorf("smtp server does not support STARTTLS")
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		s.log.Error("failed to start TLS", sl.Err(err))
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err = client.Auth(auth); err != nil {
		s.log.Error("failed to authenticate", sl.Err(err))
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = client.Mail(s.cfg.SMTPUser); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	s.log.Info("trip reminder sent", slog.String("to", message.Email))
	return client.Quit()
}
