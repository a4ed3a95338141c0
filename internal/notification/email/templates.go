package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title   string
	Heading string
}

type certificateReadyData struct {
	baseEmailData
	ClientName    string
	ServiceTitle  string
	HasAttachment bool
}

type monthlyReportData struct {
	baseEmailData
	Period        string
	TotalRevenue  string
	SalaryPaid    string
	TotalProfit   string
	PendingAmount string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyPKR(amount int64) string {
	return fmt.Sprintf("Rs %d", amount)
}
