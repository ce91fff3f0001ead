// Package dashboard serves the browser shell and pushes rendered pages to it.
package dashboard

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/paperdesk/internal/api"
	"github.com/ziadkadry99/paperdesk/internal/router"
	"github.com/ziadkadry99/paperdesk/internal/views"
)

// Settings controls how the dashboard reaches the backend and presents data.
type Settings struct {
	// APIBase overrides the backend URL. When empty it is derived from the
	// host the page was requested on.
	APIBase string
	APIPort int
	Views   views.Options
}

// Dashboard provides the hash-routed paper browser.
type Dashboard struct {
	settings Settings
	http     *http.Client
	log      logrus.FieldLogger
}

// New creates a new Dashboard.
func New(settings Settings, log logrus.FieldLogger) *Dashboard {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if settings.Views.Logger == nil {
		settings.Views.Logger = log
	}
	return &Dashboard{settings: settings, http: &http.Client{}, log: log}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/fragment", d.handleFragment)
	r.Get("/ws/navigate", d.handleWebSocket)
}

// NewRegistry binds every page of v to its hash route.
func NewRegistry(v *views.Views) *router.Registry {
	return router.NewRegistry().
		Register("dashboard", v.Dashboard).
		Register("papers", v.PapersList).
		Register("categories", v.Categories).
		Register("reports", v.Reports).
		Register("jobs", v.Jobs).
		SetDetail(router.DetailPage, v.PaperDetail)
}

// viewsFor builds the view set against the backend that serves r's page.
func (d *Dashboard) viewsFor(r *http.Request) (*views.Views, string) {
	base := api.ResolveBaseURL(d.settings.APIBase, r.Host, d.settings.APIPort)
	client := api.New(base, api.WithHTTPClient(d.http), api.WithLogger(d.log))
	return views.New(client, d.settings.Views), base
}

func (d *Dashboard) handleFragment(w http.ResponseWriter, r *http.Request) {
	v, _ := d.viewsFor(r)
	rt := router.New(NewRegistry(v), discard{}, d.log)
	html := rt.Resolve(r.Context(), r.URL.Query().Get("hash"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// discard is the container of one-shot resolutions.
type discard struct{}

func (discard) SetContent(template.HTML) error { return nil }
