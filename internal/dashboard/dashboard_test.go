package dashboard

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/paperdesk/internal/logging"
	"github.com/ziadkadry99/paperdesk/internal/router"
	"github.com/ziadkadry99/paperdesk/internal/views"
)

// newBackend serves canned JSON per path; unknown paths are 404.
func newBackend(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.RequestURI()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupRouter(t *testing.T, backend *httptest.Server) chi.Router {
	t.Helper()
	d := New(Settings{APIBase: backend.URL, Views: views.DefaultOptions()}, logging.Discard())
	r := chi.NewRouter()
	d.RegisterRoutes(r)
	return r
}

func dial(t *testing.T, r chi.Router) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/navigate"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	return conn
}

func readPush(t *testing.T, conn *websocket.Conn) pushMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg pushMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWebSocketNavigatePushesLoadingThenContent(t *testing.T) {
	backend := newBackend(t, map[string]string{
		"/papers": `[{"id":"1","title":"Attention Is All You Need","authors":["Vaswani"],"category":"cs.CL","published_date":"2017-06-12"}]`,
	})
	conn := dial(t, setupRouter(t, backend))

	if err := conn.WriteJSON(navigateRequest{Type: "navigate", Hash: "#papers"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	loading := readPush(t, conn)
	if loading.Type != "content" || loading.HTML != string(router.Loading) {
		t.Errorf("first push = %+v, want loading placeholder", loading)
	}
	if loading.SessionID == "" {
		t.Error("expected a session id")
	}

	content := readPush(t, conn)
	if content.Type != "content" {
		t.Fatalf("expected content, got %+v", content)
	}
	if content.SessionID != loading.SessionID {
		t.Errorf("session id changed: %q then %q", loading.SessionID, content.SessionID)
	}
	for _, want := range []string{`<a href="#paper/1">Attention Is All You Need</a>`, "<td>Vaswani</td>", "<td>6/12/2017</td>"} {
		if !strings.Contains(content.HTML, want) {
			t.Errorf("content missing %q\n%s", want, content.HTML)
		}
	}
}

func TestWebSocketBackendFailureRendersErrorCard(t *testing.T) {
	backend := newBackend(t, map[string]string{})
	conn := dial(t, setupRouter(t, backend))

	conn.WriteJSON(navigateRequest{Type: "navigate", Hash: "#categories"})
	readPush(t, conn) // loading
	content := readPush(t, conn)

	want := `<div class="card">Error loading categories: API error: Not Found</div>`
	if content.HTML != want {
		t.Errorf("html = %q, want %q", content.HTML, want)
	}
}

func TestWebSocketInvalidMessage(t *testing.T) {
	conn := dial(t, setupRouter(t, newBackend(t, nil)))

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	resp := readPush(t, conn)
	if resp.Type != "error" || resp.Error != "invalid message format" {
		t.Errorf("got %+v", resp)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	conn := dial(t, setupRouter(t, newBackend(t, nil)))

	conn.WriteJSON(navigateRequest{Type: "refresh", Hash: "#papers"})
	resp := readPush(t, conn)
	if resp.Type != "error" {
		t.Errorf("expected error type, got %q", resp.Type)
	}
	if !strings.Contains(resp.Error, "unknown message type") {
		t.Errorf("expected unknown type error, got %q", resp.Error)
	}
}

func TestFragmentEndpoint(t *testing.T) {
	backend := newBackend(t, map[string]string{
		"/stats":          `{"total_papers":7,"total_categories":2,"papers_this_week":1}`,
		"/papers?limit=5": `[]`,
		"/papers/42":      `{"id":42,"title":"Graph Nets"}`,
	})
	r := setupRouter(t, backend)

	tests := []struct {
		hash string
		want string
	}{
		{"#paper/42", "<h2>Graph Nets</h2>"},
		{"#dashboard", `<div class="value">7</div>`},
		{"#nowhere", "<h2>Dashboard</h2>"},
		{"", "<h2>Dashboard</h2>"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/fragment?hash="+url.QueryEscape(tt.hash), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d", tt.hash, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
			t.Errorf("%q: content type %q", tt.hash, ct)
		}
		if !strings.Contains(w.Body.String(), tt.want) {
			t.Errorf("%q: body missing %q\n%s", tt.hash, tt.want, w.Body.String())
		}
	}
}

func TestNewRegistryPages(t *testing.T) {
	reg := NewRegistry(views.New(nil, views.DefaultOptions()))
	got := strings.Join(reg.Pages(), ",")
	if got != "dashboard,papers,categories,reports,jobs" {
		t.Errorf("Pages = %s", got)
	}
}

func TestServeIndex(t *testing.T) {
	r := setupRouter(t, newBackend(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("expected text/html content type, got %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"Research Paper Dashboard", `<main id="app">`, `data-page="papers"`, "/ws/navigate"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected HTML to contain %q", want)
		}
	}
}
