package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPaperDecodeAuthorsList(t *testing.T) {
	var p Paper
	err := json.Unmarshal([]byte(`{"id":"1","title":"A","authors":["X","Y"],"category":"cs","published_date":"2024-01-01"}`), &p)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != "1" || p.Title != "A" {
		t.Errorf("id/title = %q/%q", p.ID, p.Title)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "X" || p.Authors[1] != "Y" {
		t.Errorf("authors = %v", p.Authors)
	}
	if len(p.Categories) != 1 || p.Categories[0] != "cs" {
		t.Errorf("categories = %v, want [cs]", p.Categories)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !p.PublishedDate.Equal(want) {
		t.Errorf("published = %v, want %v", p.PublishedDate.Time, want)
	}
}

func TestPaperDecodeBackendShape(t *testing.T) {
	var p Paper
	raw := `{
		"id": 42,
		"arxiv_id": "2401.00001",
		"title": "Transformers",
		"authors": "Alice Smith, Bob Jones ,  ,Carol",
		"categories": [{"id": 1, "name": "cs.LG"}, {"id": 2, "name": "stat.ML"}],
		"category": "ignored",
		"published_date": "2024-03-05T10:11:12",
		"url": "https://example.org/abs",
		"pdf_url": "https://example.org/pdf"
	}`
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != "42" {
		t.Errorf("id = %q, want 42", p.ID)
	}
	wantAuthors := []string{"Alice Smith", "Bob Jones", "Carol"}
	if len(p.Authors) != len(wantAuthors) {
		t.Fatalf("authors = %v, want %v", p.Authors, wantAuthors)
	}
	for i := range wantAuthors {
		if p.Authors[i] != wantAuthors[i] {
			t.Errorf("authors[%d] = %q, want %q", i, p.Authors[i], wantAuthors[i])
		}
	}
	if len(p.Categories) != 2 || p.Categories[0] != "cs.LG" || p.Categories[1] != "stat.ML" {
		t.Errorf("categories = %v", p.Categories)
	}
	if p.PDFURL != "https://example.org/pdf" {
		t.Errorf("pdf_url = %q", p.PDFURL)
	}
	if p.PublishedDate.Day() != 5 || p.PublishedDate.Hour() != 10 {
		t.Errorf("published = %v", p.PublishedDate.Time)
	}
}

func TestPaperDecodeFallbacks(t *testing.T) {
	var p Paper
	if err := json.Unmarshal([]byte(`{"id":"7","categories":["q-bio"],"url":"https://x/y","published_date":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.PDFURL != "https://x/y" {
		t.Errorf("pdf_url = %q, want url fallback", p.PDFURL)
	}
	if p.PrimaryCategory() != "q-bio" {
		t.Errorf("primary category = %q", p.PrimaryCategory())
	}
	if !p.PublishedDate.IsZero() {
		t.Errorf("expected zero date, got %v", p.PublishedDate.Time)
	}
	if p.Authors != nil {
		t.Errorf("authors = %v, want nil", p.Authors)
	}
}

func TestPaperDecodeRejectsBadAuthors(t *testing.T) {
	var p Paper
	if err := json.Unmarshal([]byte(`{"id":"1","authors":12}`), &p); err == nil {
		t.Error("expected error for numeric authors")
	}
}

func TestPaperDecodeEmptyCategoriesUsesSingular(t *testing.T) {
	var p Paper
	if err := json.Unmarshal([]byte(`{"id":1,"title":"A","categories":[],"category":"cs"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(p.Categories) != 1 || p.Categories[0] != "cs" {
		t.Errorf("categories = %v, want [cs]", p.Categories)
	}
	if p.PrimaryCategory() != "cs" {
		t.Errorf("primary category = %q", p.PrimaryCategory())
	}
}

func TestPaperDecodeAuthorsDropsBlankEntries(t *testing.T) {
	var p Paper
	if err := json.Unmarshal([]byte(`{"id":"1","authors":["X", null, "  ", "Y"]}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "X" || p.Authors[1] != "Y" {
		t.Errorf("authors = %q, want [X Y]", p.Authors)
	}
}

func TestPaperDecodeAuthorObjects(t *testing.T) {
	var papers []Paper
	raw := `[{"id":"1","authors":[{"name":"X"},{"name":"Y","affiliation":"Z"}]},{"id":"2","authors":["W"]}]`
	if err := json.Unmarshal([]byte(raw), &papers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("papers = %d, want 2", len(papers))
	}
	if got := papers[0].Authors; len(got) != 2 || got[0] != "X" || got[1] != "Y" {
		t.Errorf("authors = %v, want [X Y]", got)
	}
	if got := papers[1].Authors; len(got) != 1 || got[0] != "W" {
		t.Errorf("authors = %v, want [W]", got)
	}
}

func TestCategoryCountFallback(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{"name":"cs","count":3}`, 3},
		{`{"name":"cs","paper_count":9}`, 9},
		{`{"name":"cs","count":0,"paper_count":9}`, 0},
		{`{"name":"cs"}`, 0},
	}
	for _, tt := range tests {
		var c Category
		if err := json.Unmarshal([]byte(tt.raw), &c); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.raw, err)
		}
		if c.Count != tt.want {
			t.Errorf("%s: count = %d, want %d", tt.raw, c.Count, tt.want)
		}
	}
}

func TestReportTypeFallback(t *testing.T) {
	var reports []Report
	raw := `[{"id":1,"type":"weekly","created_at":"2024-02-01T00:00:00Z"},{"id":2,"report_type":"daily","created_at":"garbage"}]`
	if err := json.Unmarshal([]byte(raw), &reports); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if reports[0].Type != "weekly" || reports[1].Type != "daily" {
		t.Errorf("types = %q, %q", reports[0].Type, reports[1].Type)
	}
	if reports[0].ID != "1" {
		t.Errorf("id = %q", reports[0].ID)
	}
	if !reports[1].CreatedAt.IsZero() {
		t.Errorf("garbage date should decode to zero, got %v", reports[1].CreatedAt.Time)
	}
}

func TestDateFormat(t *testing.T) {
	d, ok := ParseDate("2024-01-01")
	if !ok {
		t.Fatal("ParseDate failed")
	}
	if got := d.Format("1/2/2006"); got != "1/1/2024" {
		t.Errorf("Format = %q, want 1/1/2024", got)
	}
	if got := (Date{}).Format("1/2/2006"); got != "-" {
		t.Errorf("zero Format = %q, want -", got)
	}
}

func TestSplitAuthors(t *testing.T) {
	got := SplitAuthors(" A , B,,C ")
	if len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Errorf("SplitAuthors = %v", got)
	}
	if SplitAuthors("") != nil {
		t.Error("empty input should give nil")
	}
}
