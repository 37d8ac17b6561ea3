package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names understood by the email worker.
const (
	Welcome = "welcome"
)

var welcomeHTML = template.Must(template.New(Welcome).Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #1f2933; margin: 0; padding: 24px;">
    <h2 style="margin-top: 0;">Welcome to {{.AppName}}, {{.Name}}!</h2>
    <p>Your account <strong>{{.Email}}</strong> is ready.</p>
    <p>Create your first list and start checking things off.</p>
    <p style="color: #7b8794; font-size: 12px;">You are receiving this because an account was registered with this address.</p>
  </body>
</html>`))

// Render renders the named template into subject, text and HTML bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case Welcome:
		var buf bytes.Buffer
		if err := welcomeHTML.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = fmt.Sprintf("Welcome to %v", data["AppName"])
		text = fmt.Sprintf("Welcome to %v, %v! Your account %v is ready.", data["AppName"], data["Name"], data["Email"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
