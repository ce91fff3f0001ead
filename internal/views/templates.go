package views

import (
	"bytes"
	"html/template"
)

// pageTemplates defines one named template per page. Each is executed with
// its view model only.
const pageTemplates = `
{{define "dashboard"}}
<h2>Dashboard</h2>
<div class="stats">
  <div class="stat-card">
    <h3>Total Papers</h3>
    <div class="value">{{.TotalPapers}}</div>
  </div>
  <div class="stat-card">
    <h3>Categories</h3>
    <div class="value">{{.TotalCategories}}</div>
  </div>
  <div class="stat-card">
    <h3>This Week</h3>
    <div class="value">{{.PapersThisWeek}}</div>
  </div>
</div>
<div class="card">
  <h3>Recent Papers</h3>
  <table>
    <thead>
      <tr><th>Title</th><th>Category</th><th>Date</th></tr>
    </thead>
    <tbody>
      {{- range .Recent}}
      <tr>
        <td><a href="{{.Href}}">{{.Title}}</a></td>
        <td>{{.Category}}</td>
        <td>{{.Date}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>
</div>
{{end}}

{{define "papers"}}
<h2>Papers</h2>
<div class="search-bar">
  <input type="text" id="searchInput" placeholder="Search papers...">
</div>
<div class="card">
  <table>
    <thead>
      <tr><th>Title</th><th>Authors</th><th>Category</th><th>Published</th><th>Actions</th></tr>
    </thead>
    <tbody id="papersTable">
      {{- range .Rows}}
      <tr>
        <td><a href="{{.Href}}">{{.Title}}</a></td>
        <td>{{.Authors}}</td>
        <td>{{.Category}}</td>
        <td>{{.Date}}</td>
        <td><button class="btn btn-primary" data-nav="{{.Href}}">View</button></td>
      </tr>
      {{- end}}
    </tbody>
  </table>
</div>
{{end}}

{{define "paper"}}
<div class="card">
  <h2>{{.Title}}</h2>
  <p><strong>Authors:</strong> {{.Authors}}</p>
  <p><strong>Published:</strong> {{.Date}}</p>
  <p><strong>Categories:</strong> {{.Categories}}</p>
  <p><strong>PDF URL:</strong> {{if .PDFURL}}<a href="{{.PDFURL}}" target="_blank" rel="noopener">{{.PDFURL}}</a>{{else}}<a href="#" target="_blank">Not available</a>{{end}}</p>

  <h3>Summary</h3>
  <div class="markdown">{{.Summary}}</div>

  <h3>Abstract</h3>
  <div class="markdown">{{.Abstract}}</div>

  <button class="btn btn-secondary" data-back>Back</button>
</div>
{{end}}

{{define "categories"}}
<h2>Categories</h2>
<div class="card">
  <table>
    <thead>
      <tr><th>Category</th><th>Paper Count</th></tr>
    </thead>
    <tbody>
      {{- range .Rows}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{.Count}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>
</div>
{{end}}

{{define "reports"}}
<h2>Reports</h2>
<div class="card">
  <table>
    <thead>
      <tr><th>Report Type</th><th>Date</th><th>Actions</th></tr>
    </thead>
    <tbody>
      {{- range .Rows}}
      <tr>
        <td>{{.Type}}</td>
        <td>{{.Date}}</td>
        <td><button class="btn btn-primary">Download</button></td>
      </tr>
      {{- end}}
    </tbody>
  </table>
</div>
{{end}}

{{define "jobs"}}
<h2>Jobs</h2>
<div class="stats">
  <div class="stat-card">
    <h3>Total Papers</h3>
    <div class="value">{{.TotalPapers}}</div>
  </div>
  <div class="stat-card">
    <h3>Processed</h3>
    <div class="value">{{.Processed}}</div>
  </div>
  <div class="stat-card">
    <h3>Unprocessed</h3>
    <div class="value">{{.Unprocessed}}</div>
  </div>
</div>
{{end}}
`

var templates = template.Must(template.New("views").Parse(pageTemplates))

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// View models. Every field is already formatted for display.

type dashboardModel struct {
	TotalPapers     int
	TotalCategories int
	PapersThisWeek  int
	Recent          []paperRow
}

type paperRow struct {
	Href     string
	Title    string
	Authors  string
	Category string
	Date     string
}

type papersModel struct {
	Rows []paperRow
}

type paperModel struct {
	Title      string
	Authors    string
	Date       string
	Categories string
	PDFURL     string
	Summary    template.HTML
	Abstract   template.HTML
}

type categoryRow struct {
	Name  string
	Count int
}

type categoriesModel struct {
	Rows []categoryRow
}

type reportRow struct {
	Type string
	Date string
}

type reportsModel struct {
	Rows []reportRow
}

type jobsModel struct {
	TotalPapers int
	Processed   int
	Unprocessed int
}

func renderDashboard(m dashboardModel) (template.HTML, error)   { return execute("dashboard", m) }
func renderPapers(m papersModel) (template.HTML, error)         { return execute("papers", m) }
func renderPaper(m paperModel) (template.HTML, error)           { return execute("paper", m) }
func renderCategories(m categoriesModel) (template.HTML, error) { return execute("categories", m) }
func renderReports(m reportsModel) (template.HTML, error)       { return execute("reports", m) }
func renderJobs(m jobsModel) (template.HTML, error)             { return execute("jobs", m) }
