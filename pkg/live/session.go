package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dealdeck/dealdeck/pkg/urlparam"
)

// Frame types exchanged with the thin client. Application frames use their
// own type strings and carry a payload in Data.
const (
	FrameLocation   = "location"
	FrameURLPush    = "url_push"
	FrameURLReplace = "url_replace"
)

// Frame is the wire format for all session traffic.
type Frame struct {
	Type string          `json:"type"`
	URL  string          `json:"url,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Session is a urlparam.Navigator backed by a connected browser. The
// session's URL mirrors the browser's address bar: server writes go out as
// history frames, browser navigations come back as location frames, and
// both sides of that exchange notify subscribers through one hub.
type Session struct {
	conn *websocket.Conn
	ctx  context.Context
	done chan struct{}

	writeMu sync.Mutex

	mu      sync.Mutex
	current *url.URL

	hub urlparam.Hub
}

func newSession(ctx context.Context, conn *websocket.Conn, initial *url.URL) *Session {
	return &Session{conn: conn, ctx: ctx, current: initial, done: make(chan struct{})}
}

// Context returns the context of the HTTP request that opened the session.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Done is closed once the read loop has ended and no further notifications
// will be delivered.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Location returns a copy of the session's current URL.
func (s *Session) Location() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *s.current
	return &clone
}

// Push makes u the current URL, notifies subscribers, and instructs the
// client to push a new history entry. The local update happens regardless
// of whether the frame can be delivered, so reads stay consistent with
// writes even on a dying connection.
func (s *Session) Push(u *url.URL) {
	s.navigate(u, FrameURLPush)
}

// Replace behaves like Push but replaces the client's current history entry.
func (s *Session) Replace(u *url.URL) {
	s.navigate(u, FrameURLReplace)
}

func (s *Session) navigate(u *url.URL, frameType string) {
	clone := *u
	s.mu.Lock()
	s.current = &clone
	s.mu.Unlock()

	if err := s.writeFrame(Frame{Type: frameType, URL: clone.String()}); err != nil {
		slog.Warn("live: failed to send history frame", "type", frameType, "error", err)
	}

	s.hub.Notify()
}

// Subscribe registers fn for location changes from either side.
func (s *Session) Subscribe(fn func()) (cancel func()) {
	return s.hub.Subscribe(fn)
}

// Send delivers an application frame of the given type to the client.
func (s *Session) Send(frameType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("live: marshal %s frame: %w", frameType, err)
	}
	return s.writeFrame(Frame{Type: frameType, Data: data})
}

func (s *Session) writeFrame(f Frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(f)
}

// Close closes the underlying connection. The read loop returns shortly
// after.
func (s *Session) Close() error {
	return s.conn.Close()
}

// readLoop consumes client frames until the connection closes. Location
// frames update the current URL and notify subscribers; unknown frame
// types are ignored so clients can be newer than the server.
func (s *Session) readLoop() error {
	for {
		var f Frame
		if err := s.conn.ReadJSON(&f); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		if f.Type != FrameLocation {
			continue
		}

		u, err := url.Parse(f.URL)
		if err != nil {
			slog.Warn("live: dropping unparsable location frame", "url", f.URL, "error", err)
			continue
		}

		s.mu.Lock()
		s.current = u
		s.mu.Unlock()

		s.hub.Notify()
	}
}
