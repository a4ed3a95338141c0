package email

import (
	"strings"
	"testing"
)

func TestRenderCertificateReadyTemplate(t *testing.T) {
	html, err := renderEmailTemplate("certificate_ready.html", certificateReadyData{
		baseEmailData: baseEmailData{Title: "Service complete", Heading: "Your service is complete"},
		ClientName:    "Ali",
		ServiceTitle:  "Tax Filing",
		HasAttachment: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"Ali", "Tax Filing", "certificate is attached", "Your service is complete"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}
}

func TestRenderCertificateReadyWithoutAttachment(t *testing.T) {
	html, err := renderEmailTemplate("certificate_ready.html", certificateReadyData{
		baseEmailData: baseEmailData{Title: "Service complete", Heading: "Your service is complete"},
		ClientName:    "Ali",
		ServiceTitle:  "Tax Filing",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "attached") {
		t.Error("attachment wording must be absent when no attachment exists")
	}
}

func TestRenderMonthlyReportTemplate(t *testing.T) {
	html, err := renderEmailTemplate("monthly_report.html", monthlyReportData{
		baseEmailData: baseEmailData{Title: "Monthly accounts summary", Heading: "Monthly accounts summary"},
		Period:        "March 2026",
		TotalRevenue:  "Rs 2500",
		SalaryPaid:    "Rs 600",
		TotalProfit:   "Rs 1900",
		PendingAmount: "Rs 2000",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"March 2026", "Rs 2500", "Rs 600", "Rs 1900", "Rs 2000"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}
