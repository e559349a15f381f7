// services/mail_service.go
package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

type IMailService interface {
	SendOtpMail(to, purpose, code string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // e.g. 587 (STARTTLS) or 465 (SMTPS)
	Username   string // SMTP username / login
	Password   string // SMTP password / app password
	From       string // envelope from, e.g. "no-reply@yourapp.com"
	FromName   string // display name, e.g. "Your App"
	UseSSL     bool   // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool   // if true, fail if STARTTLS not available

	AppName string // used in footer, header
}

type smtpMailService struct {
	cfg     SMTPConfig
	otpHTML *template.Template
	otpText *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	otpHTML := template.Must(template.New("otpHTML").Parse(otpHTMLTemplate))
	otpText := template.Must(template.New("otpText").Parse(otpTextTemplate))

	return &smtpMailService{
		cfg:     cfg,
		otpHTML: otpHTML,
		otpText: otpText,
	}, nil
}

// ------------------- Public API -------------------

func (s *smtpMailService) SendOtpMail(to, purpose, code string) error {
	subject := fmt.Sprintf("Your %s verification code", s.cfg.AppName)

	html, text, err := s.renderEmail(otpEmailData{
		Purpose: purpose,
		Code:    code,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

// ------------------- Rendering -------------------

type otpEmailData struct {
	Purpose string
	Code    string
	AppName string
	Year    int
}

const otpHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>Verification code</title>
  <style>
    body { margin: 0; padding: 0; background: #f8fafc; color: #0f172a;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 40px auto; background: #ffffff;
      border-radius: 12px; overflow: hidden; border: 1px solid #e2e8f0; }
    .header { padding: 24px 32px; border-bottom: 1px solid #e2e8f0; font-weight: 700;
      font-size: 20px; color: #1e40af; }
    .hero { padding: 32px; }
    p { margin: 0 0 16px; line-height: 1.7; color: #475569; font-size: 15px; }
    .code { display: inline-block; padding: 14px 28px; background: #eff6ff;
      border: 1px solid #bfdbfe; border-radius: 8px; font-size: 28px;
      font-weight: 700; letter-spacing: 8px; color: #1e40af; }
    .footer { padding: 20px 32px; color: #64748b; font-size: 13px;
      border-top: 1px solid #e2e8f0; text-align: center; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="hero">
      <p>Your verification code for {{.Purpose}}:</p>
      <div class="code">{{.Code}}</div>
      <p style="margin-top: 24px;">The code is valid for 10 minutes. If you did not request it, you can safely ignore this email.</p>
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}. All rights reserved.</div>
  </div>
</body>
</html>`

const otpTextTemplate = `Your verification code for {{.Purpose}}: {{.Code}}

The code is valid for 10 minutes. If you did not request it, you can safely ignore this email.

— {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data otpEmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer

	if err = s.otpHTML.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.otpText.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// ------------------- SMTP Send -------------------

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	fromHeader := s.formatFromHeader()
	date := time.Now().Format(time.RFC1123Z)
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	// Headers
	write("From: %s\r\n", fromHeader)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", date)
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	// Plaintext part
	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	// HTML part
	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	// End
	write("--%s--\r\n", boundary)

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		if err = c.Auth(auth); err != nil {
			return err
		}
		if err = c.Mail(s.cfg.From); err != nil {
			return err
		}
		if err = c.Rcpt(to); err != nil {
			return err
		}
		w, err := c.Data()
		if err != nil {
			return err
		}
		if _, err = w.Write(msg.Bytes()); err != nil {
			return err
		}
		return w.Close()
	}

	// STARTTLS path (typically port 587)
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	// Upgrade to TLS if supported
	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	} else if s.cfg.RequireTLS {
		return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
	}

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mimeQuote(name), s.cfg.From)
}

// Basic RFC 2047 compliant encoding for non-ASCII display names.
func mimeQuote(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return fmt.Sprintf("=?UTF-8?B?%s?=", toBase64UTF8(s))
		}
	}
	return s
}

func toBase64UTF8(s string) string {
	const base64 = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	var b bytes.Buffer
	data := []byte(s)
	for i := 0; i < len(data); i += 3 {
		var c1, c2, c3 byte
		c1 = data[i]
		var c2Present, c3Present bool
		if i+1 < len(data) {
			c2 = data[i+1]
			c2Present = true
		}
		if i+2 < len(data) {
			c3 = data[i+2]
			c3Present = true
		}
		b.WriteByte(base64[c1>>2])
		b.WriteByte(base64[((c1&0x03)<<4)|((c2&0xF0)>>4)])
		if c2Present {
			b.WriteByte(base64[((c2&0x0F)<<2)|((c3&0xC0)>>6)])
		} else {
			b.WriteByte('=')
		}
		if c3Present {
			b.WriteByte(base64[c3&0x3F])
		} else {
			b.WriteByte('=')
		}
	}
	return b.String()
}
