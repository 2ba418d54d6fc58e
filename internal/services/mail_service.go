package services

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type MailServiceInterface interface {
	// SendReport mails a generated PDF report as an attachment.
	SendReport(to, subject, intro, filename string, attachment []byte) error
}

// SMTPConfig holds SMTP and branding settings.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@goforms.app"
	FromName   string // display name
	UseSSL     bool   // true for SMTPS 465
	RequireTLS bool   // fail if STARTTLS is unavailable

	AppName string // used in the email footer
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (MailServiceInterface, error) {
	if cfg.AppName == "" {
		cfg.AppName = "GoForms"
	}
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("reportHTML").Parse(reportHTMLTemplate)),
		textTpl: template.Must(template.New("reportText").Parse(reportTextTemplate)),
	}, nil
}

type emailData struct {
	Title   string
	Intro   string
	AppName string
	Year    int
}

const reportHTMLTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:24px;background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#1f2937">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;border:1px solid #e5e7eb;padding:32px">
    <h1 style="margin:0 0 16px;font-size:22px;color:#111827">{{.Title}}</h1>
    <p style="line-height:1.6;margin:0 0 16px">{{.Intro}}</p>
    <p style="line-height:1.6;margin:0">Your full report is attached to this email as a PDF.</p>
  </div>
  <p style="max-width:560px;margin:16px auto 0;text-align:center;font-size:12px;color:#9ca3af">
    &copy; {{.Year}} {{.AppName}}. All rights reserved.
  </p>
</body>
</html>`

const reportTextTemplate = `{{.Title}}

{{.Intro}}

Your full report is attached to this email as a PDF.

-- {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) SendReport(to, subject, intro, filename string, attachment []byte) error {
	data := emailData{
		Title:   subject,
		Intro:   intro,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	}
	var htmlBody, textBody bytes.Buffer
	if err := s.htmlTpl.Execute(&htmlBody, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&textBody, data); err != nil {
		return err
	}
	msg := s.buildMessage(to, subject, htmlBody.String(), textBody.String(), filename, attachment)
	return s.send(to, msg)
}

// buildMessage assembles a multipart/mixed MIME message: an alternative
// text/html pair plus the base64-encoded PDF attachment.
func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody, filename string, attachment []byte) []byte {
	mixed := fmt.Sprintf("mixed_%d", time.Now().UnixNano())
	alt := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.fromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mixed)

	write("--%s\r\n", mixed)
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", alt)

	write("--%s\r\n", alt)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", alt)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)
	write("--%s--\r\n", alt)

	write("--%s\r\n", mixed)
	write("Content-Type: application/pdf; name=%q\r\n", filename)
	write("Content-Disposition: attachment; filename=%q\r\n", filename)
	write("Content-Transfer-Encoding: base64\r\n\r\n")
	encoded := base64.StdEncoding.EncodeToString(attachment)
	for len(encoded) > 76 {
		write("%s\r\n", encoded[:76])
		encoded = encoded[76:]
	}
	write("%s\r\n", encoded)
	write("--%s--\r\n", mixed)

	return msg.Bytes()
}

func (s *smtpMailService) send(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var client *smtp.Client
	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		client, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
	} else {
		// STARTTLS path (typically port 587)
		dialer := &net.Dialer{Timeout: 10 * time.Second}
		conn, err := dialer.Dial("tcp", addr)
		if err != nil {
			return err
		}
		client, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err = client.StartTLS(tlsCfg); err != nil {
				client.Quit()
				return err
			}
		} else if s.cfg.RequireTLS {
			client.Quit()
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) fromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}
