package live

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

const handshakeTimeout = 10 * time.Second

// Handler returns an http.Handler that upgrades the request to a WebSocket,
// waits for the client's initial location frame, and runs the session until
// the connection closes. onSession is called once per connection after the
// handshake, before any further frames are processed; use it to attach
// subscribers and push initial data.
func Handler(onSession func(*Session)) http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote the error response.
			slog.Debug("live: upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		initial, err := readHandshake(conn)
		if err != nil {
			slog.Warn("live: handshake failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		session := newSession(r.Context(), conn, initial)
		defer close(session.done)
		if onSession != nil {
			onSession(session)
		}

		if err := session.readLoop(); err != nil {
			slog.Debug("live: session ended", "remote", r.RemoteAddr, "error", err)
		}
	})
}

// readHandshake reads the mandatory initial location frame.
func readHandshake(conn *websocket.Conn) (*url.URL, error) {
	if err := conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		return nil, err
	}
	defer conn.SetReadDeadline(time.Time{})

	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		return nil, err
	}
	if f.Type != FrameLocation {
		return nil, errNotLocation(f.Type)
	}
	return url.Parse(f.URL)
}

type errNotLocation string

func (e errNotLocation) Error() string {
	return "live: expected location frame, got " + string(e)
}
