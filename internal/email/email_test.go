package email

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_ReviewDecision(t *testing.T) {
	tm := NewTemplateManager()

	html, err := tm.Render(TemplateReviewDecision, TemplateData{
		"DesignerName": "Ada",
		"WorkTitle":    "Blue <Vase>",
		"Status":       "approved",
		"Comment":      "Lovely glaze",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Hello Ada")
	assert.Contains(t, html, "Blue &lt;Vase&gt;")
	assert.Contains(t, html, "Lovely glaze")

	html, err = tm.Render(TemplateReviewDecision, TemplateData{"WorkTitle": "x", "Status": "rejected"})
	require.NoError(t, err)
	assert.NotContains(t, html, "Reviewer comment")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestSMTPProvider_Validate(t *testing.T) {
	assert.Error(t, NewSMTPProvider(&SMTPConfig{Port: 587, FromEmail: "a@b.c"}).Validate())
	assert.Error(t, NewSMTPProvider(&SMTPConfig{Host: "smtp", Port: 0, FromEmail: "a@b.c"}).Validate())
	assert.Error(t, NewSMTPProvider(&SMTPConfig{Host: "smtp", Port: 587}).Validate())
	assert.NoError(t, NewSMTPProvider(&SMTPConfig{Host: "smtp", Port: 587, FromEmail: "a@b.c"}).Validate())
}

func TestSMTPProvider_BuildMessage(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp", Port: 587, FromEmail: "no-reply@museworks.local", FromName: "MuseWorks"})

	m := p.buildMessage(&Email{
		To:       []string{"designer@example.com"},
		Subject:  "Your work was approved",
		Body:     "plain",
		HTMLBody: "<p>html</p>",
	})

	assert.Equal(t, []string{"designer@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Your work was approved"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no-reply@museworks.local")
	assert.Contains(t, buf.String(), "text/html")
}

func TestSMTPProvider_SendWithoutRecipients(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp", Port: 587, FromEmail: "a@b.c"})
	assert.Error(t, p.Send(&Email{Subject: "x"}))
}
