package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendMailer struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendMailer(apiKey, fromName, fromEmail string) (*MailerSendMailer, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, errors.New("mailersend requires MAILERSEND_API_KEY and SMTP_FROM")
	}
	return &MailerSendMailer{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}, nil
}

func (m *MailerSendMailer) SendRecoveryCode(toEmail, toName, code string) error {
	subject := "TigerSOS password recovery"
	text := fmt.Sprintf("Your password recovery code is %s. It expires in 15 minutes.", code)
	html := fmt.Sprintf(`<p>Your password recovery code is <b style="font-size: 24px; letter-spacing: 5px;">%s</b></p><p>It expires in 15 minutes.</p>`, code)
	_, err := m.send(toEmail, toName, subject, text, html)
	return err
}

func (m *MailerSendMailer) SendWelcome(toEmail, toName string) error {
	subject := "Welcome to TigerSOS"
	text := fmt.Sprintf("Hi %s, your TigerSOS account is ready.", toName)
	html := fmt.Sprintf(`<p>Hi %s, your TigerSOS account is ready.</p>`, toName)
	_, err := m.send(toEmail, toName, subject, text, html)
	return err
}

func (m *MailerSendMailer) send(toEmail, toName, subject, text, html string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	// MailerSend uses X-Message-Id
	return res.Header.Get("X-Message-Id"), nil
}
