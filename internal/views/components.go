package views

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/ziadkadry99/paperdesk/internal/models"
)

const (
	uncategorized = "Uncategorized"
	notAvailable  = "N/A"
)

// Dashboard renders the counters and the most recent papers.
func (v *Views) Dashboard(ctx context.Context) template.HTML {
	var stats models.Stats
	if err := v.api.Get(ctx, "/stats", &stats); err != nil {
		return v.failed("dashboard", err)
	}
	var recent []models.Paper
	if err := v.api.Get(ctx, fmt.Sprintf("/papers?limit=%d", v.opts.RecentLimit), &recent); err != nil {
		return v.failed("dashboard", err)
	}
	if len(recent) > v.opts.RecentLimit {
		recent = recent[:v.opts.RecentLimit]
	}

	m := dashboardModel{
		TotalPapers:     stats.TotalPapers,
		TotalCategories: stats.TotalCategories,
		PapersThisWeek:  stats.PapersThisWeek,
		Recent:          make([]paperRow, 0, len(recent)),
	}
	for _, p := range recent {
		m.Recent = append(m.Recent, v.paperRow(p))
	}

	out, err := renderDashboard(m)
	if err != nil {
		return v.failed("dashboard", err)
	}
	return out
}

// PapersList renders every paper in a table. The search box is a plain input
// with no filtering behind it.
func (v *Views) PapersList(ctx context.Context) template.HTML {
	var papers []models.Paper
	if err := v.api.Get(ctx, "/papers", &papers); err != nil {
		return v.failed("papers", err)
	}

	m := papersModel{Rows: make([]paperRow, 0, len(papers))}
	for _, p := range papers {
		m.Rows = append(m.Rows, v.paperRow(p))
	}

	out, err := renderPapers(m)
	if err != nil {
		return v.failed("papers", err)
	}
	return out
}

// PaperDetail renders the full metadata of one paper.
func (v *Views) PaperDetail(ctx context.Context, id string) template.HTML {
	var p models.Paper
	if err := v.api.Get(ctx, "/papers/"+url.PathEscape(id), &p); err != nil {
		return v.failed("paper", err)
	}

	summary, err := v.md.Render(p.Summary, "No summary available")
	if err != nil {
		return v.failed("paper", err)
	}
	abstract, err := v.md.Render(p.Abstract, "No abstract available")
	if err != nil {
		return v.failed("paper", err)
	}

	m := paperModel{
		Title:      p.Title,
		Authors:    joinOr(p.Authors, notAvailable),
		Date:       p.PublishedDate.Format(v.opts.DateLayout),
		Categories: joinOr(p.Categories, uncategorized),
		PDFURL:     p.PDFURL,
		Summary:    summary,
		Abstract:   abstract,
	}

	out, err := renderPaper(m)
	if err != nil {
		return v.failed("paper", err)
	}
	return out
}

// Categories renders the category name/count table.
func (v *Views) Categories(ctx context.Context) template.HTML {
	var cats []models.Category
	if err := v.api.Get(ctx, "/categories", &cats); err != nil {
		return v.failed("categories", err)
	}

	m := categoriesModel{Rows: make([]categoryRow, 0, len(cats))}
	for _, c := range cats {
		m.Rows = append(m.Rows, categoryRow{Name: c.Name, Count: c.Count})
	}

	out, err := renderCategories(m)
	if err != nil {
		return v.failed("categories", err)
	}
	return out
}

// Reports renders the report list. The Download button is inert.
func (v *Views) Reports(ctx context.Context) template.HTML {
	var reports []models.Report
	if err := v.api.Get(ctx, "/reports", &reports); err != nil {
		return v.failed("reports", err)
	}

	m := reportsModel{Rows: make([]reportRow, 0, len(reports))}
	for _, r := range reports {
		m.Rows = append(m.Rows, reportRow{Type: r.Type, Date: r.CreatedAt.Format(v.opts.DateLayout)})
	}

	out, err := renderReports(m)
	if err != nil {
		return v.failed("reports", err)
	}
	return out
}

// Jobs renders the backend's paper processing status.
func (v *Views) Jobs(ctx context.Context) template.HTML {
	var status models.JobStatus
	if err := v.api.Get(ctx, "/jobs/status", &status); err != nil {
		return v.failed("jobs", err)
	}

	out, err := renderJobs(jobsModel{
		TotalPapers: status.TotalPapers,
		Processed:   status.Processed,
		Unprocessed: status.Unprocessed,
	})
	if err != nil {
		return v.failed("jobs", err)
	}
	return out
}

func (v *Views) paperRow(p models.Paper) paperRow {
	authors := p.Authors
	if len(authors) > v.opts.AuthorsShown {
		authors = authors[:v.opts.AuthorsShown]
	}
	category := p.PrimaryCategory()
	if category == "" {
		category = uncategorized
	}
	return paperRow{
		Href:     v.opts.Link(p.ID),
		Title:    p.Title,
		Authors:  joinOr(authors, notAvailable),
		Category: category,
		Date:     p.PublishedDate.Format(v.opts.DateLayout),
	}
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
