// Package views holds the page components. Each component fetches its own
// data, maps it to a view model and renders the model with a pure template
// function. Components never return errors: a failure becomes an inline
// error card in place of the page content.
package views

import (
	"context"
	"html/template"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/paperdesk/internal/router"
)

// Fetcher is the subset of the API client the views need.
type Fetcher interface {
	Get(ctx context.Context, path string, out any) error
}

// Linker maps a paper id to the hash route of its detail page. It is the
// navigation hook handed to components that link to another page.
type Linker func(id string) string

// Options tunes how the views present data.
type Options struct {
	DateLayout   string // Go layout used for every date cell
	RecentLimit  int    // papers shown on the dashboard
	AuthorsShown int    // authors listed per row on the papers page
	Link         Linker
	Logger       logrus.FieldLogger
}

// DefaultOptions mirrors en-US short dates, five recent papers and two
// authors per row.
func DefaultOptions() Options {
	return Options{
		DateLayout:   "1/2/2006",
		RecentLimit:  5,
		AuthorsShown: 2,
		Link:         router.PaperHash,
	}
}

// Views renders every page of the frontend.
type Views struct {
	api  Fetcher
	md   *Markdown
	opts Options
	log  logrus.FieldLogger
}

// New creates the view set. Zero-valued options fall back to defaults.
func New(api Fetcher, opts Options) *Views {
	def := DefaultOptions()
	if opts.DateLayout == "" {
		opts.DateLayout = def.DateLayout
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = def.RecentLimit
	}
	if opts.AuthorsShown <= 0 {
		opts.AuthorsShown = def.AuthorsShown
	}
	if opts.Link == nil {
		opts.Link = def.Link
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Views{api: api, md: NewMarkdown(), opts: opts, log: log}
}

// failed logs err and returns the inline error card for what.
func (v *Views) failed(what string, err error) template.HTML {
	v.log.WithError(err).WithField("view", what).Warn("view render failed")
	return ErrorCard(what, err)
}

// ErrorCard is the fixed fallback markup of a failed component.
func ErrorCard(what string, err error) template.HTML {
	return template.HTML(`<div class="card">Error loading ` + template.HTMLEscapeString(what) +
		`: ` + template.HTMLEscapeString(err.Error()) + `</div>`)
}
