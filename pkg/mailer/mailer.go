package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/teamkick/teamkick/pkg/logger"
)

// Mailer sends transactional email over SMTP. When Host is empty the
// mailer is disabled and Send becomes a no-op, so local development
// works without an SMTP server.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// New creates a mailer from SMTP settings.
func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

// Enabled reports whether the mailer has an SMTP host configured.
func (m *Mailer) Enabled() bool {
	return m.Host != ""
}

// Send delivers an HTML email to the recipients. Returns nil without
// sending when the mailer is disabled or there are no recipients.
func (m *Mailer) Send(to []string, subject, body string) error {
	if !m.Enabled() || len(to) == 0 {
		return nil
	}

	headers := map[string]string{
		"From":         m.From,
		"To":           strings.Join(to, ","),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)

	var auth smtp.Auth
	if m.Username != "" && m.Password != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	if err := smtp.SendMail(addr, auth, m.From, to, []byte(message.String())); err != nil {
		logger.Errorf("[mailer] failed to send to %v: %v", to, err)
		return err
	}

	logger.Infof("[mailer] sent %q to %v", subject, to)
	return nil
}

// SendInvitation sends a team invitation email with the accept link.
func (m *Mailer) SendInvitation(to, teamName, inviterName, acceptURL string) error {
	subject := fmt.Sprintf("You are invited to join %s on TeamKick", teamName)

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Join %s</h2>", teamName))
	sb.WriteString(fmt.Sprintf("<p>%s invited you to join the team <strong>%s</strong> on TeamKick.</p>", inviterName, teamName))
	sb.WriteString(fmt.Sprintf("<p><a href=\"%s\">Accept the invitation</a></p>", acceptURL))
	sb.WriteString("<p style=\"color: #888; font-size: 12px;\">If you were not expecting this invitation you can ignore this email.</p>")
	sb.WriteString("</body></html>")

	return m.Send([]string{to}, subject, sb.String())
}
