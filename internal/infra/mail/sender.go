package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

const runSummaryTemplate = `
<h2>Outreach run finished: {{.CampaignName}}</h2>
<p>
  Messages sent: <strong>{{.Sent}}</strong><br>
  Failures: <strong>{{.Failed}}</strong>
</p>
<p>Failed prospects stay eligible and will be retried on the next run.</p>
`

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendRunSummary mails the operator a short digest after a scheduler run.
func (s *EmailSender) SendRunSummary(to, campaignName string, sent, failed int) error {
	data := RunSummaryData{
		CampaignName: campaignName,
		Sent:         sent,
		Failed:       failed,
	}

	t, err := template.New("run_summary").Parse(runSummaryTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse summary template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render summary template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Campaign %q: %d sent, %d failed", campaignName, sent, failed))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send summary email: %w", err)
	}

	return nil
}
