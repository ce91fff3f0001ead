// Package models defines the records paperdesk fetches from the backend.
//
// The backend and older frontends disagree on a few field shapes, so the
// decoders here accept the known alternates and normalise them into one
// canonical form per entity.
package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

// Paper is the canonical paper shape used by every view.
type Paper struct {
	ID            string   `json:"id"`
	ArxivID       string   `json:"arxiv_id,omitempty"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Categories    []string `json:"categories"`
	PublishedDate Date     `json:"published_date"`
	Summary       string   `json:"summary,omitempty"`
	Abstract      string   `json:"abstract,omitempty"`
	PDFURL        string   `json:"pdf_url,omitempty"`
}

// paperWire mirrors every field name the backend has been seen to send.
type paperWire struct {
	ID            flexString      `json:"id"`
	ArxivID       string          `json:"arxiv_id"`
	Title         string          `json:"title"`
	Authors       json.RawMessage `json:"authors"`
	Category      string          `json:"category"`
	Categories    json.RawMessage `json:"categories"`
	PublishedDate Date            `json:"published_date"`
	Summary       string          `json:"summary"`
	Abstract      string          `json:"abstract"`
	PDFURL        string          `json:"pdf_url"`
	URL           string          `json:"url"`
}

// UnmarshalJSON decodes a paper, accepting authors as a list or a
// comma-delimited string, categories as strings or {name} objects with a
// singular category as fallback, and url when pdf_url is missing.
func (p *Paper) UnmarshalJSON(data []byte) error {
	var w paperWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	authors, err := decodeAuthors(w.Authors)
	if err != nil {
		return err
	}
	categories, err := decodeCategoryNames(w.Categories)
	if err != nil {
		return err
	}
	if len(categories) == 0 && strings.TrimSpace(w.Category) != "" {
		categories = []string{strings.TrimSpace(w.Category)}
	}

	pdf := w.PDFURL
	if pdf == "" {
		pdf = w.URL
	}

	*p = Paper{
		ID:            string(w.ID),
		ArxivID:       w.ArxivID,
		Title:         w.Title,
		Authors:       authors,
		Categories:    categories,
		PublishedDate: w.PublishedDate,
		Summary:       w.Summary,
		Abstract:      w.Abstract,
		PDFURL:        pdf,
	}
	return nil
}

// PrimaryCategory returns the first category, or "" when there is none.
func (p Paper) PrimaryCategory() string {
	if len(p.Categories) == 0 {
		return ""
	}
	return p.Categories[0]
}

// Category is a paper category with its paper count.
type Category struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count"`
}

// UnmarshalJSON reads count, falling back to paper_count.
func (c *Category) UnmarshalJSON(data []byte) error {
	var w struct {
		ID          flexString `json:"id"`
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Count       *int       `json:"count"`
		PaperCount  *int       `json:"paper_count"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = Category{ID: string(w.ID), Name: w.Name, Description: w.Description}
	switch {
	case w.Count != nil:
		c.Count = *w.Count
	case w.PaperCount != nil:
		c.Count = *w.PaperCount
	}
	return nil
}

// Report is a generated report entry.
type Report struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type"`
	CreatedAt Date   `json:"created_at"`
	Content   string `json:"content,omitempty"`
}

// UnmarshalJSON reads type, falling back to report_type.
func (r *Report) UnmarshalJSON(data []byte) error {
	var w struct {
		ID         flexString `json:"id"`
		Type       string     `json:"type"`
		ReportType string     `json:"report_type"`
		CreatedAt  Date       `json:"created_at"`
		Content    string     `json:"content"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	typ := w.Type
	if typ == "" {
		typ = w.ReportType
	}
	*r = Report{ID: string(w.ID), Type: typ, CreatedAt: w.CreatedAt, Content: w.Content}
	return nil
}

// Stats holds the dashboard counters. Missing counters decode as zero.
type Stats struct {
	TotalPapers     int `json:"total_papers"`
	TotalCategories int `json:"total_categories"`
	PapersThisWeek  int `json:"papers_this_week"`
}

// JobStatus is the processing summary served by /jobs/status.
type JobStatus struct {
	TotalPapers int `json:"total_papers"`
	Processed   int `json:"processed"`
	Unprocessed int `json:"unprocessed"`
}

// ScrapeRequest describes a manual scrape run.
type ScrapeRequest struct {
	Source     string `json:"source"`
	MaxResults int    `json:"max_results"`
	Query      string `json:"query,omitempty"`
}

// ScrapeResult is the backend's answer to a scrape or process trigger.
type ScrapeResult struct {
	Status        string `json:"status"`
	Source        string `json:"source,omitempty"`
	PapersScraped int    `json:"papers_scraped,omitempty"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Date is a calendar timestamp that tolerates the formats the backend emits.
// Unparseable or null input decodes to the zero value.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses s with the accepted layouts.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, true
		}
	}
	return Date{}, false
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = Date{}
		return nil
	}
	*d, _ = ParseDate(s)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Format renders the date with layout, or "-" when unknown.
func (d Date) Format(layout string) string {
	if d.IsZero() {
		return "-"
	}
	return d.Time.Format(layout)
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// SplitAuthors splits a delimited author string into trimmed names.
func SplitAuthors(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func decodeAuthors(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return SplitAuthors(s), nil
	case '[':
		return decodeNameList(raw)
	}
	return nil, &json.UnmarshalTypeError{Value: string(raw), Type: reflect.TypeOf([]string(nil))}
}

func decodeCategoryNames(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	return decodeNameList(raw)
}

// decodeNameList reads a JSON array whose items are names or {name} objects.
// Null and blank items are dropped.
func decodeNameList(raw json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	var names []string
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err != nil {
			var obj struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				return nil, err
			}
			name = obj.Name
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
