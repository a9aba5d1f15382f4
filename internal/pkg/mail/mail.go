package mail

import (
	"gopkg.in/gomail.v2"
)

// Sender delivers HTML mail over SMTP. A zero-config Sender (empty host)
// silently drops messages, which keeps local development mail-free.
type Sender struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSender(host string, port int, user, pass, from string) *Sender {
	return &Sender{host: host, port: port, user: user, pass: pass, from: from}
}

func (s *Sender) Send(to, subject, htmlBody string) error {
	if s == nil || s.host == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	return d.DialAndSend(m)
}
