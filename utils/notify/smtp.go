package notify

import (
	"byway/utils/logger"
	"context"
	"fmt"
	"net/smtp"
)

type SMTPNotifier struct {
	host     string
	port     string
	from     string
	fromName string
	password string
	log      *logger.Logger
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(host, port, from, fromName, password string, log *logger.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		host:     host,
		port:     port,
		from:     from,
		fromName: fromName,
		password: password,
		log:      log.With("notifier", "smtp"),
		send:     smtp.SendMail,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: %s <%s>\r\n", n.fromName, n.from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", n.from, n.password, n.host)

	n.log.Debug("Sending email", "to", to, "subject", subject)
	if err := n.send(n.host+":"+n.port, auth, n.from, []string{to}, []byte(msg)); err != nil {
		n.log.Error("Error sending email", "to", to, "error", err)
		return err
	}
	return nil
}
