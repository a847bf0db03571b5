package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// Configured é falso quando não há SMTP; o main então não injeta o sender.
func (s *EmailSender) Configured() bool {
	return s.Host != ""
}

func (s *EmailSender) SendAnalysisReady(to, domain, dashboardURL string) error {
	data := AnalysisReadyEmailData{Domain: domain, DashboardURL: dashboardURL}
	return s.send(to, fmt.Sprintf("Sua análise de %s está pronta 📊", domain), "analysis_ready.html", data)
}

func (s *EmailSender) SendWaitlistConfirmation(to, name string) error {
	return s.send(to, "Você está na lista de espera da PromptMetrics!", "waitlist_confirmation.html", WaitlistEmailData{Name: name})
}

func (s *EmailSender) send(to, subject, tmpl string, data any) error {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}
