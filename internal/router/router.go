// Package router maps URL hash fragments to page components and swaps their
// output into a content container.
package router

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultPage is used for an empty hash and for unknown pages.
	DefaultPage = "dashboard"
	// DetailPage is the only page token that takes a parameter.
	DetailPage = "paper"

	// Loading is pushed before a component is awaited.
	Loading template.HTML = `<div class="loading">Loading...</div>`
)

// Page renders a parameterless page.
type Page func(ctx context.Context) template.HTML

// Detail renders a page for one item.
type Detail func(ctx context.Context, id string) template.HTML

// Container is the single content area the router writes into.
type Container interface {
	SetContent(html template.HTML) error
}

// Registry is the static route table.
type Registry struct {
	pages       map[string]Page
	order       []string
	detailToken string
	detail      Detail
	fallback    string
}

// NewRegistry returns an empty registry whose default route is DefaultPage.
func NewRegistry() *Registry {
	return &Registry{
		pages:       make(map[string]Page),
		detailToken: DetailPage,
		fallback:    DefaultPage,
	}
}

// Register binds a page token to a component.
func (r *Registry) Register(token string, p Page) *Registry {
	if _, ok := r.pages[token]; !ok {
		r.order = append(r.order, token)
	}
	r.pages[token] = p
	return r
}

// SetDetail binds the parameterised route.
func (r *Registry) SetDetail(token string, d Detail) *Registry {
	r.detailToken = token
	r.detail = d
	return r
}

// Pages lists the registered page tokens in registration order.
func (r *Registry) Pages() []string {
	return append([]string(nil), r.order...)
}

// lookup returns the component for page, or the default route.
func (r *Registry) lookup(page string) (Page, bool) {
	if p, ok := r.pages[page]; ok {
		return p, true
	}
	p, ok := r.pages[r.fallback]
	return p, ok
}

// ParseHash splits "#page/param/..." into its page token and first parameter.
// An empty hash is the default page. The parameter is path-unescaped.
func ParseHash(hash string) (page, param string) {
	hash = strings.TrimPrefix(hash, "#")
	if hash == "" {
		return DefaultPage, ""
	}
	parts := strings.Split(hash, "/")
	page = parts[0]
	if len(parts) > 1 {
		param = parts[1]
		if p, err := url.PathUnescape(param); err == nil {
			param = p
		}
	}
	return page, param
}

// PaperHash is the hash route of a paper's detail page.
func PaperHash(id string) string {
	return "#" + DetailPage + "/" + url.PathEscape(id)
}

// Router renders hash routes into a container. Navigations may overlap; only
// the newest one is allowed to write its result.
type Router struct {
	routes    *Registry
	container Container
	log       logrus.FieldLogger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// New creates a router over routes writing into container.
func New(routes *Registry, container Container, log logrus.FieldLogger) *Router {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Router{routes: routes, container: container, log: log}
}

// Resolve renders the component selected by hash. A panicking component
// yields a generic error card.
func (r *Router) Resolve(ctx context.Context, hash string) (out template.HTML) {
	page, param := ParseHash(hash)

	defer func() {
		if rec := recover(); rec != nil {
			r.log.WithFields(logrus.Fields{"hash": hash, "panic": rec}).Error("component panicked")
			out = errorCard(fmt.Sprint(rec))
		}
	}()

	if page == r.routes.detailToken && param != "" && r.routes.detail != nil {
		return r.routes.detail(ctx, param)
	}
	component, ok := r.routes.lookup(page)
	if !ok {
		return errorCard("no route for " + page)
	}
	return component(ctx)
}

// Navigate shows the loading placeholder, renders hash and swaps the result
// in, unless a newer navigation started in the meantime. It returns the
// generation assigned to this navigation.
func (r *Router) Navigate(ctx context.Context, hash string) uint64 {
	gen, ctx, cancel := r.begin(ctx)
	r.finish(ctx, cancel, gen, hash)
	return gen
}

// Go is Navigate in the background. The generation is assigned before Go
// returns, so navigations issued in order supersede each other in order.
func (r *Router) Go(ctx context.Context, hash string) uint64 {
	gen, ctx, cancel := r.begin(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.finish(ctx, cancel, gen, hash)
	}()
	return gen
}

func (r *Router) begin(parent context.Context) (uint64, context.Context, context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
	r.generation++
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.write(r.generation, Loading)
	return r.generation, ctx, cancel
}

func (r *Router) finish(ctx context.Context, cancel context.CancelFunc, gen uint64, hash string) {
	defer cancel()
	content := r.Resolve(ctx, hash)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		r.log.WithFields(logrus.Fields{"hash": hash, "generation": gen}).Debug("discarding stale render")
		return
	}
	r.write(gen, content)
	r.cancel = nil
}

// Close cancels any in-flight render and waits for background navigations.
func (r *Router) Close() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.generation++
	r.mu.Unlock()
	r.wg.Wait()
}

// write must be called with mu held.
func (r *Router) write(gen uint64, html template.HTML) {
	if err := r.container.SetContent(html); err != nil {
		r.log.WithError(err).WithField("generation", gen).Warn("writing content")
	}
}

func errorCard(msg string) template.HTML {
	return template.HTML(`<div class="card">Error: ` + template.HTMLEscapeString(msg) + `</div>`)
}
