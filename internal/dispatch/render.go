package dispatch

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/capilize/capilize/internal/diagnosis"
	"github.com/capilize/capilize/internal/quiz"
)

var notificationTmpl = template.Must(template.New("notification").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #0f766e;">New Capilize diagnosis</h1>
  <div style="background: #f0fdfa; padding: 20px; border-radius: 10px; margin: 20px 0;">
    <h3 style="color: #0f766e;">Customer email:</h3>
    <p style="font-size: 18px;"><strong>{{.Email}}</strong></p>
  </div>
  <h2>Questionnaire answers:</h2>
  <ul>
    <li><strong>Scalp oiliness:</strong> {{.OilScalp}}</li>
    <li><strong>Chemical treatments:</strong> {{.ChemicalFrequency}}</li>
    <li><strong>Strand condition:</strong> {{.StrandCondition}}</li>
    <li><strong>Difficulties:</strong> {{.Difficulties}}</li>
  </ul>
  <h2>Diagnosis shown:</h2>
  <p><strong>{{.Headline}}</strong></p>
  <p>{{.Recommendation}}</p>
{{- if .Photo}}
  <div style="margin: 20px 0;">
    <h3>Hair photo:</h3>
    <img src="{{.Photo}}" alt="Hair photo" style="max-width: 100%; border-radius: 10px;" />
  </div>
{{- end}}
  <hr style="margin: 30px 0;" />
  <p style="color: #64748b; font-size: 14px;">This email was generated automatically by Capilize.</p>
</div>
`))

type notificationView struct {
	Email             string
	OilScalp          string
	ChemicalFrequency string
	StrandCondition   string
	Difficulties      string
	Headline          string
	Recommendation    string
	Photo             template.URL
}

// Subject returns the notification subject line for a visitor email.
func Subject(email string) string {
	return "New hair diagnosis - " + email
}

// RenderNotification renders the operator email for a payload.
func RenderNotification(email string, a quiz.Answers, photo string) (string, error) {
	d := diagnosis.Derive(a)

	labels := make([]string, 0, a.DifficultyCount())
	for _, diff := range a.Difficulties() {
		labels = append(labels, quiz.DifficultyLabel(diff))
	}

	view := notificationView{
		Email:             email,
		OilScalp:          quiz.Label(quiz.CoreQuestions[0].Options, string(a.OilScalp)),
		ChemicalFrequency: quiz.Label(quiz.CoreQuestions[1].Options, string(a.ChemicalFrequency)),
		StrandCondition:   quiz.Label(quiz.CoreQuestions[2].Options, string(a.StrandCondition)),
		Difficulties:      strings.Join(labels, ", "),
		Headline:          d.Headline,
		Recommendation:    d.Recommendation,
	}
	if photo != "" {
		// html/template rejects data: URIs unless they are marked safe.
		if !strings.HasPrefix(photo, "data:image/") {
			return "", fmt.Errorf("photo is not an image data URI")
		}
		view.Photo = template.URL(photo)
	}

	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render notification: %w", err)
	}
	return buf.String(), nil
}
