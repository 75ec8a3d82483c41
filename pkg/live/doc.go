// Package live bridges a browser to server-side urlparam stores over a
// WebSocket connection.
//
// A Session implements urlparam.Navigator. Server-side writes (Push,
// Replace) update the session's view of the URL, notify local subscribers,
// and send a url_push or url_replace frame so the thin client applies the
// same change to the address bar via the History API without a reload.
// Browser-originated changes (back/forward, link clicks handled by the
// client) arrive as location frames and feed the same notification path.
//
// The wire format is a small JSON frame:
//
//	{"type":"location","url":"/deals?sort=desc"}   client → server
//	{"type":"url_push","url":"/deals?sort=asc"}    server → client
//	{"type":"url_replace","url":"/deals"}          server → client
//	{"type":"deals","data":{...}}                  server → client (app frames)
//
// The first frame on a connection must be a location frame announcing the
// browser's current URL; Handler rejects connections that do not send one.
package live
