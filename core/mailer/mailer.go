package mailer

import (
	"bytes"
	"campusflow/core/config"
	"campusflow/core/logger"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

type Mailer interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	if m.cfg.Host == "" {
		logger.Warn("SMTPMailer:Send:Disabled", "to", strings.Join(to, ","), "subject", subject)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, to, msg.Bytes()); err != nil {
		logger.Error("SMTPMailer:Send", err)
		return err
	}
	return nil
}

var resetTemplate = template.Must(template.New("reset").Parse(`<p>Hi {{.Name}},</p>
<p>Your CampusFlow password reset code is <strong>{{.Code}}</strong>.</p>
<p>It expires in {{.Minutes}} minutes. If you did not ask for this you can ignore this email.</p>`))

type ResetData struct {
	Name    string
	Code    string
	Minutes int
}

func RenderReset(data ResetData) (string, error) {
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Recorder keeps sent mail in memory.
type Recorder struct {
	Sent []Sent
}

type Sent struct {
	To      []string
	Subject string
	Body    string
}

func (r *Recorder) Send(_ context.Context, to []string, subject, htmlBody string) error {
	r.Sent = append(r.Sent, Sent{To: to, Subject: subject, Body: htmlBody})
	return nil
}
