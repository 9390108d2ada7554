package certificates

import (
	"bytes"
	"html/template"
	"strings"
	"time"
)

// IssueDateLayout matches the long-form date printed on the certificate,
// e.g. "5 June 2026".
const IssueDateLayout = "2 January 2006"

// CertificateData parameterizes the certificate document.
type CertificateData struct {
	Annotation  string // honorific prefix, may be empty
	Name        string
	CompanyName string
	IssueDate   string // formatted with IssueDateLayout
}

var certificateTmpl = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8"/>
  <title>Certificate of Participation</title>
  <style>
    @page { size: A4 landscape; margin: 0; }
    body {
      font-family: Calibri, "Segoe UI", sans-serif;
      margin: 0;
      padding: 0;
      display: flex;
      justify-content: center;
      align-items: center;
      min-height: 100vh;
      background-color: #f0f4f7;
      -webkit-print-color-adjust: exact;
      print-color-adjust: exact;
    }
    .certificate-container {
      width: 277mm;
      min-height: 190mm;
      border: 16px solid #003366;
      border-radius: 10px;
      padding: 18px 28px;
      background-color: #ffffff;
      display: flex;
      flex-direction: column;
      align-items: center;
      text-align: center;
      box-sizing: border-box;
    }
    h1 {
      font-family: Georgia, "Times New Roman", serif;
      font-size: 3em;
      letter-spacing: 0.35em;
      color: #003366;
      margin: 18px 0 4px;
    }
    .subtitle { font-size: 1.3em; color: #555; margin: 0 0 24px; }
    .awarded-text { font-size: 1.2em; color: #444; margin: 12px 0 2px; }
    .recipient-name {
      font-family: Georgia, "Times New Roman", serif;
      font-size: 2.4em;
      color: #0b2545;
      border-bottom: 2px solid #c9a227;
      padding: 0 40px 6px;
      margin: 6px 0;
    }
    .company-name { font-size: 1.25em; color: #333; margin: 4px 0 14px; }
    .participation-text { font-size: 1.15em; color: #444; margin: 8px 0 2px; }
    .event-name {
      font-family: Georgia, "Times New Roman", serif;
      font-size: 1.9em;
      color: #1b6b2f;
      margin: 4px 0;
    }
    .organization-name { font-size: 1.2em; color: #003366; margin: 2px 0 28px; }
    .issue-note { font-size: 0.95em; color: #555; margin: 26px 0 2px; }
    .disclaimer { font-size: 0.8em; color: #888; margin: 2px 0 0; }
  </style>
</head>
<body>
  <div class="certificate-container">
    <h1>CERTIFICATE</h1>
    <p class="subtitle">of Participation</p>
    <p class="awarded-text">This certificate is proudly presented to</p>
    <p class="recipient-name">{{.Annotation}}{{.Name}}</p>
    <p class="company-name">{{.CompanyName}}</p>
    <p class="participation-text">for successfully participating in</p>
    <p class="event-name">World Pest Day</p>
    <p class="organization-name">Indian Pest Control Association</p>
    <p class="issue-note">*This certificate is issued on {{.IssueDate}} on account of celebrating World Pest Day.</p>
    <p class="disclaimer">*This certificate cannot and must not be used for licensing purposes or misrepresented as a certificate of membership of IPCA.</p>
  </div>
</body>
</html>
`))

// GenerateHTML renders the certificate HTML for a registrant. The issue date
// is always the generation time, so a re-issued certificate carries a fresh
// date.
func GenerateHTML(annotation, name, companyName string, issuedAt time.Time) (string, error) {
	prefix := strings.TrimSpace(annotation)
	if prefix != "" {
		prefix += " "
	}
	if strings.TrimSpace(name) == "" {
		name = "Unknown Participant"
	}
	if strings.TrimSpace(companyName) == "" {
		companyName = "N/A"
	}
	data := CertificateData{
		Annotation:  prefix,
		Name:        name,
		CompanyName: companyName,
		IssueDate:   issuedAt.Format(IssueDateLayout),
	}
	var buf bytes.Buffer
	if err := certificateTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
