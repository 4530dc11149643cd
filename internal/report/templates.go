package report

import "html/template"

type pageData struct {
	Title     string
	Generated string
	Body      template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, Helvetica, Arial, sans-serif; margin: 2rem auto; max-width: 900px; color: #1f2933; }
  h1 { border-bottom: 2px solid #2563eb; padding-bottom: 0.3rem; }
  h2 { margin-top: 2rem; color: #2563eb; }
  .meta { color: #6b7280; font-size: 0.9rem; }
  .stats { display: flex; gap: 2rem; flex-wrap: wrap; margin: 1rem 0; }
  .stat { background: #f3f4f6; border-radius: 8px; padding: 1rem 1.5rem; }
  .stat .num { font-size: 1.6rem; font-weight: 700; }
  .stat .label { color: #6b7280; font-size: 0.85rem; }
  table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
  th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #e5e7eb; }
  th { color: #6b7280; font-size: 0.85rem; text-transform: uppercase; }
  svg text { font-size: 12px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated {{.Generated}} by recruitiq</p>
{{.Body}}
</body>
</html>
`))

var barChartTemplate = `
{{define "barchart"}}
<svg width="640" height="{{len . | svgHeight}}" role="img">
  {{range $i, $row := .}}
  <g transform="translate(0,{{rowY $i}})">
    <text x="0" y="14" fill="#1f2933">{{$row.Label}}</text>
    <rect x="170" y="2" width="{{$row.Width}}" height="16" fill="#2563eb" rx="3"></rect>
    <text x="{{barEnd $row.Width}}" y="14" fill="#6b7280">{{$row.Count}}{{with $row.Note}} ({{.}}){{end}}</text>
  </g>
  {{end}}
</svg>
{{end}}
`

var chartFuncs = template.FuncMap{
	"svgHeight": func(n int) int { return n*24 + 8 },
	"rowY":      func(i int) int { return i * 24 },
	"barEnd":    func(w int) int { return 178 + w },
}

func sectionTemplate(name, body string) *template.Template {
	t := template.New(name).Funcs(chartFuncs)
	template.Must(t.Parse(barChartTemplate))
	return template.Must(t.Parse(body))
}

var executiveTemplate = sectionTemplate("executive", `
<div class="stats">
  <div class="stat"><div class="num">{{.Overview.Total}}</div><div class="label">total postings</div></div>
  <div class="stat"><div class="num">{{.Overview.RecentWeek}}</div><div class="label">last 7 days</div></div>
  {{if gt .Overview.Salaries.Count 0}}
  <div class="stat"><div class="num">${{printf "%.0f" .Overview.Salaries.Median}}</div><div class="label">median salary</div></div>
  {{end}}
</div>

{{if .Titles}}
<h2>Top Job Titles</h2>
{{template "barchart" .Titles}}
{{end}}

{{if .Skills}}
<h2>Skills in Demand</h2>
{{template "barchart" .Skills}}
{{end}}

{{if .Overview.Platforms}}
<h2>Postings by Platform</h2>
<table>
<tr><th>Platform</th><th>Postings</th></tr>
{{range .Overview.Platforms}}<tr><td>{{.Value}}</td><td>{{.Count}}</td></tr>
{{end}}
</table>
{{end}}
`)

var salaryTemplate = sectionTemplate("salary", `
{{if gt .Stats.Count 0}}
<div class="stats">
  <div class="stat"><div class="num">{{.Stats.Count}}</div><div class="label">postings with salary</div></div>
  <div class="stat"><div class="num">${{printf "%.0f" .Stats.Average}}</div><div class="label">average</div></div>
  <div class="stat"><div class="num">${{printf "%.0f" .Stats.Median}}</div><div class="label">median</div></div>
  <div class="stat"><div class="num">${{printf "%.0f" .Stats.Min}} - ${{printf "%.0f" .Stats.Max}}</div><div class="label">range</div></div>
</div>
{{else}}
<p>No salary data recorded yet. Run <code>recruitiq salary enrich</code> first.</p>
{{end}}

{{if .Insights}}
<h2>Salary by Title</h2>
<table>
<tr><th>Title</th><th>Postings</th><th>Average</th><th>Median</th><th>Range</th><th>Estimated</th></tr>
{{range .Insights}}
<tr>
  <td>{{.Title}}</td>
  <td>{{.Count}}</td>
  <td>${{printf "%.0f" .Average}}</td>
  <td>${{printf "%.0f" .Median}}</td>
  <td>${{printf "%.0f" .Min}} - ${{printf "%.0f" .Max}}</td>
  <td>{{.Estimated}}</td>
</tr>
{{end}}
</table>
{{end}}
`)

var skillsTemplate = sectionTemplate("skills", `
{{if .Skills}}
{{template "barchart" .Skills}}
{{else}}
<p>No skills detected yet. Scrape some postings first.</p>
{{end}}
`)

var marketTemplate = sectionTemplate("market", `
<div class="stats">
  <div class="stat"><div class="num">{{.Overview.Total}}</div><div class="label">total postings</div></div>
  <div class="stat"><div class="num">{{.Overview.RecentWeek}}</div><div class="label">last 7 days</div></div>
</div>

{{if .Locations}}
<h2>Hiring Locations</h2>
{{template "barchart" .Locations}}
{{end}}

{{if .Overview.Employment}}
<h2>Employment Types</h2>
<table>
<tr><th>Type</th><th>Postings</th></tr>
{{range .Overview.Employment}}<tr><td>{{.Value}}</td><td>{{.Count}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Trends}}
<h2>Postings per Day (last 30 days)</h2>
{{template "barchart" .Trends}}
{{end}}

{{if .Overview.Platforms}}
<h2>Postings by Platform</h2>
<table>
<tr><th>Platform</th><th>Postings</th></tr>
{{range .Overview.Platforms}}<tr><td>{{.Value}}</td><td>{{.Count}}</td></tr>
{{end}}
</table>
{{end}}
`)

var companyTemplate = sectionTemplate("company", `
{{if .Companies}}
<h2>Most Active Employers</h2>
{{template "barchart" .Companies}}
{{else}}
<p>No company data recorded yet. Scrape some postings first.</p>
{{end}}

{{if .Insights}}
<h2>Hiring Footprint</h2>
<table>
<tr><th>Company</th><th>Postings</th><th>Avg Salary</th><th>Locations</th><th>Platforms</th></tr>
{{range .Insights}}
<tr>
  <td>{{.Company}}</td>
  <td>{{.Postings}}</td>
  <td>{{if gt .AvgSalary 0.0}}${{printf "%.0f" .AvgSalary}}{{else}}-{{end}}</td>
  <td>{{.Locations}}</td>
  <td>{{.Platforms}}</td>
</tr>
{{end}}
</table>
{{end}}
`)
