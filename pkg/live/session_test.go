package live

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dealdeck/dealdeck/pkg/urlparam"
)

// dialTestServer starts an httptest server around Handler and dials it.
// The returned channel delivers the server-side session once the handshake
// completes.
func dialTestServer(t *testing.T, initialURL string) (*websocket.Conn, chan *Session) {
	t.Helper()

	sessions := make(chan *Session, 1)
	srv := httptest.NewServer(Handler(func(s *Session) {
		sessions <- s
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if initialURL != "" {
		if err := conn.WriteJSON(Frame{Type: FrameLocation, URL: initialURL}); err != nil {
			t.Fatalf("handshake write: %v", err)
		}
	}
	return conn, sessions
}

func waitSession(t *testing.T, sessions chan *Session) *Session {
	t.Helper()
	select {
	case s := <-sessions:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session handshake")
		return nil
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func TestSessionHandshakeSetsInitialLocation(t *testing.T) {
	_, sessions := dialTestServer(t, "/deals?sort=desc&page=2")
	session := waitSession(t, sessions)

	u := session.Location()
	if u.Path != "/deals" || u.Query().Get("sort") != "desc" || u.Query().Get("page") != "2" {
		t.Fatalf("Location after handshake: got %q", u.String())
	}
}

func TestServerPushSendsHistoryFrame(t *testing.T) {
	conn, sessions := dialTestServer(t, "/deals?sort=desc")
	session := waitSession(t, sessions)

	sort := urlparam.NewStore(session, "sort", "asc")
	sort.Set("asc")

	f := readFrame(t, conn)
	if f.Type != FrameURLPush {
		t.Fatalf("frame type: got %q, want %q", f.Type, FrameURLPush)
	}
	if f.URL != "/deals?sort=asc" {
		t.Fatalf("frame URL: got %q, want /deals?sort=asc", f.URL)
	}
	if got := sort.Get(); got != "asc" {
		t.Fatalf("Get after Set: got %q, want asc", got)
	}
}

func TestReplaceModeSendsReplaceFrame(t *testing.T) {
	conn, sessions := dialTestServer(t, "/deals")
	session := waitSession(t, sessions)

	q := urlparam.NewStore(session, "q", "", urlparam.Replace)
	q.Set("lakeside")

	f := readFrame(t, conn)
	if f.Type != FrameURLReplace {
		t.Fatalf("frame type: got %q, want %q", f.Type, FrameURLReplace)
	}
	if f.URL != "/deals?q=lakeside" {
		t.Fatalf("frame URL: got %q", f.URL)
	}
}

func TestClientLocationFrameNotifiesSubscribers(t *testing.T) {
	conn, sessions := dialTestServer(t, "/deals")
	session := waitSession(t, sessions)

	changes := make(chan string, 1)
	session.Subscribe(func() {
		changes <- session.Location().String()
	})

	// Simulates the browser's popstate after back/forward navigation.
	if err := conn.WriteJSON(Frame{Type: FrameLocation, URL: "/deals?page=3"}); err != nil {
		t.Fatalf("write location frame: %v", err)
	}

	select {
	case got := <-changes:
		if got != "/deals?page=3" {
			t.Fatalf("location change: got %q, want /deals?page=3", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for location notification")
	}
}

func TestSendDeliversApplicationFrame(t *testing.T) {
	conn, sessions := dialTestServer(t, "/deals")
	session := waitSession(t, sessions)

	type page struct {
		Total int `json:"total"`
	}
	if err := session.Send("deals", page{Total: 7}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	f := readFrame(t, conn)
	if f.Type != "deals" {
		t.Fatalf("frame type: got %q, want deals", f.Type)
	}
	var got page
	if err := json.Unmarshal(f.Data, &got); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if got.Total != 7 {
		t.Fatalf("payload: got total=%d, want 7", got.Total)
	}
}

func TestDoneClosesAfterDisconnect(t *testing.T) {
	conn, sessions := dialTestServer(t, "/deals")
	session := waitSession(t, sessions)

	if err := conn.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	select {
	case <-session.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed after client disconnect")
	}
}

func TestHandshakeRejectsNonLocationFrame(t *testing.T) {
	sessions := make(chan *Session, 1)
	srv := httptest.NewServer(Handler(func(s *Session) {
		sessions <- s
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(Frame{Type: "deals"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	// The server must close the connection without establishing a session.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err == nil {
		t.Fatalf("expected close, got frame %+v", f)
	}
	select {
	case <-sessions:
		t.Fatal("session established despite bad handshake")
	default:
	}
}
