package service

import (
	"html/template"
	"io"

	"github.com/webqual/webgate/domain"
)

// htmlReportData is the view model for the HTML report template
type htmlReportData struct {
	Report    *GateReport
	GateNames []string
	Blocked   bool
}

// WriteHTML writes the report as a self-contained HTML document
func (w *ReportWriterImpl) WriteHTML(report *GateReport, writer io.Writer) error {
	funcMap := template.FuncMap{
		"verdict": func(passed bool) string {
			if passed {
				return "PASS"
			}
			return "FAIL"
		},
		"scoreClass": func(score int) string {
			switch {
			case score >= 85:
				return "score-good"
			case score >= 70:
				return "score-fair"
			default:
				return "score-poor"
			}
		},
		"severityClass": func(severity domain.Severity) string {
			switch severity {
			case domain.SeverityCritical:
				return "sev-critical"
			case domain.SeverityHigh:
				return "sev-high"
			case domain.SeverityMedium:
				return "sev-medium"
			default:
				return "sev-low"
			}
		},
	}

	data := htmlReportData{
		Report:    report,
		GateNames: sortedGateNames(report.QualityGates),
		Blocked:   report.Summary.DeploymentBlocked,
	}

	tmpl := template.Must(template.New("gate").Funcs(funcMap).Parse(htmlTemplate))
	return tmpl.Execute(writer, data)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Quality Gate Report</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #f5f6fa;
        }
        .container { max-width: 960px; margin: 0 auto; padding: 20px; }
        .header {
            background: white;
            border-radius: 10px;
            padding: 30px;
            margin-bottom: 20px;
            box-shadow: 0 4px 12px rgba(0,0,0,0.08);
        }
        .header h1 { color: #2c3e50; margin-bottom: 6px; }
        .meta { color: #7f8c8d; font-size: 0.9em; }
        .verdict { display: inline-block; padding: 4px 14px; border-radius: 16px; font-weight: 600; }
        .verdict.ready { background: #d4efdf; color: #1e8449; }
        .verdict.blocked { background: #fadbd8; color: #c0392b; }
        .card {
            background: white;
            border-radius: 10px;
            padding: 24px;
            margin-bottom: 20px;
            box-shadow: 0 4px 12px rgba(0,0,0,0.08);
        }
        .card h2 { margin-bottom: 12px; color: #2c3e50; font-size: 1.2em; }
        table { width: 100%; border-collapse: collapse; }
        th, td { padding: 8px 12px; text-align: left; border-bottom: 1px solid #ecf0f1; }
        th { color: #7f8c8d; font-weight: 600; font-size: 0.85em; text-transform: uppercase; }
        .score-good { color: #1e8449; font-weight: 600; }
        .score-fair { color: #b9770e; font-weight: 600; }
        .score-poor { color: #c0392b; font-weight: 600; }
        .sev-critical { color: #c0392b; font-weight: 700; }
        .sev-high { color: #e74c3c; font-weight: 600; }
        .sev-medium { color: #b9770e; }
        .sev-low { color: #7f8c8d; }
        ul { padding-left: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Quality Gate Report</h1>
            <p class="meta">Generated {{.Report.Timestamp}}{{if .Report.TargetURL}} &middot; {{.Report.TargetURL}}{{end}} &middot; v{{.Report.Version}}</p>
            <p style="margin-top: 12px;">
                {{if .Blocked}}<span class="verdict blocked">DEPLOYMENT BLOCKED</span>{{else}}<span class="verdict ready">READY TO DEPLOY</span>{{end}}
                <span style="margin-left: 12px;" class="{{scoreClass .Report.Summary.OverallScore}}">Score {{.Report.Summary.OverallScore}}/100</span>
                <span style="margin-left: 12px;">Coverage {{.Report.Summary.Coverage}}%</span>
            </p>
        </div>

        <div class="card">
            <h2>Quality Gates</h2>
            <table>
                <tr><th>Category</th><th>Score</th><th>Threshold</th><th>Result</th><th>Blocking</th></tr>
                {{range $name := .GateNames}}{{$gate := index $.Report.QualityGates $name}}
                <tr>
                    <td>{{$name}}</td>
                    <td class="{{scoreClass $gate.Score}}">{{$gate.Score}}</td>
                    <td>{{if $gate.Weighted}}{{$gate.MinimumScore}}{{else}}&ndash;{{end}}</td>
                    <td>{{if $gate.Weighted}}{{verdict $gate.Passed}}{{else}}unweighted{{end}}</td>
                    <td>{{if $gate.Blocking}}yes{{else}}no{{end}}</td>
                </tr>
                {{end}}
            </table>
        </div>

        <div class="card">
            <h2>Issues</h2>
            <table>
                <tr><th>Critical</th><th>High</th><th>Medium</th><th>Low</th></tr>
                <tr>
                    <td class="sev-critical">{{.Report.Issues.Critical}}</td>
                    <td class="sev-high">{{.Report.Issues.High}}</td>
                    <td class="sev-medium">{{.Report.Issues.Medium}}</td>
                    <td class="sev-low">{{.Report.Issues.Low}}</td>
                </tr>
            </table>
        </div>

        {{if .Report.Failures}}
        <div class="card">
            <h2>Failures</h2>
            <table>
                <tr><th>Severity</th><th>Category</th><th>Description</th></tr>
                {{range .Report.Failures}}
                <tr>
                    <td class="{{severityClass .Severity}}">{{.Severity}}</td>
                    <td>{{.Category}}</td>
                    <td>{{.Description}}</td>
                </tr>
                {{end}}
            </table>
        </div>
        {{end}}

        {{if .Blocked}}
        <div class="card">
            <h2>Blockers</h2>
            <ul>
                {{range .Report.ProductionReadiness.Blockers}}<li>{{.}}</li>{{end}}
            </ul>
            {{if .Report.ProductionReadiness.Recommendations}}
            <h2 style="margin-top: 16px;">Recommendations</h2>
            <ul>
                {{range .Report.ProductionReadiness.Recommendations}}<li>{{.}}</li>{{end}}
            </ul>
            {{end}}
        </div>
        {{end}}
    </div>
</body>
</html>
`
