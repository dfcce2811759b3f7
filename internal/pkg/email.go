package pkg

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// DecisionHTML 审批结果通知正文
func DecisionHTML(resourceName string, quantity int, action, comment string) string {
	body := fmt.Sprintf(`<p>Your request for <b>%d x %s</b> has been <b>%s</b>.</p>`, quantity, resourceName, action)
	if comment != "" {
		body += fmt.Sprintf(`<p>Admin comment: %s</p>`, comment)
	}
	return body
}
