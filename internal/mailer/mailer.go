// Package mailer sends transactional email over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"

	mailyak "github.com/domodwyer/mailyak/v3"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/config"
)

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(conf *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		addr: conf.Host + ":" + conf.Port,
		auth: smtp.PlainAuth("", conf.Username, conf.Password, conf.Host),
		from: conf.FromEmail,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	mail := mailyak.New(m.addr, m.auth)

	mail.From(m.from)
	mail.To(to)
	mail.Subject(subject)
	mail.HTML().Set(htmlBody)

	if err := mail.Send(); err != nil {
		return fmt.Errorf("mail.Send -> %w", err)
	}

	return nil
}
