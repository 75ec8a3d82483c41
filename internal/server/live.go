package server

import (
	"log/slog"
	"net/http"

	"github.com/dealdeck/dealdeck/internal/domain"
	"github.com/dealdeck/dealdeck/internal/metrics"
	"github.com/dealdeck/dealdeck/pkg/live"
	"github.com/dealdeck/dealdeck/pkg/urlparam"
)

// liveDealsFrame carries a deals page to the client.
const liveDealsFrame = "deals"

func (s *Server) liveHandler() http.Handler {
	return live.Handler(s.handleLiveSession)
}

// handleLiveSession streams a fresh deals page to the client whenever the
// browser URL changes. Filter state lives entirely in the query string,
// read through the same typed params the rest of the application uses, so
// a shared link reproduces the exact view.
func (s *Server) handleLiveSession(sess *live.Session) {
	metrics.LiveSessionsActive.Inc()

	city := urlparam.New[string](sess, "city", "")
	roomType := urlparam.New[string](sess, "room_type", "")
	available := urlparam.New[bool](sess, "available", false)
	minRating := urlparam.New[int](sess, "min_rating", 0)
	sortBy := urlparam.New[string](sess, "sort_by", "")
	order := urlparam.New[string](sess, "order", "asc")
	skip := urlparam.New[int](sess, "skip", 0)
	limit := urlparam.New[int](sess, "limit", defaultLimit)

	push := func() {
		f := domain.DealFilter{
			City:       city.Get(),
			RoomType:   roomType.Get(),
			MinRating:  minRating.Get(),
			SortBy:     sortBy.Get(),
			Descending: order.Get() == "desc",
		}
		if available.IsSet() {
			v := available.Get()
			f.Available = &v
		}
		sk := skip.Get()
		if sk < 0 {
			sk = 0
		}
		lim := limit.Get()
		if lim < 1 || lim > maxLimit {
			lim = defaultLimit
		}

		page, err := s.deals.List(sess.Context(), f, sk, lim)
		if err != nil {
			slog.Warn("live deals query failed", "error", err)
			if err := sess.Send("error", errorDetail{Code: "query_failed", Message: "could not load deals"}); err != nil {
				slog.Debug("live error frame not delivered", "error", err)
			}
			return
		}
		if err := sess.Send(liveDealsFrame, toPageResponse(page)); err != nil {
			slog.Debug("live deals frame not delivered", "error", err)
		}
	}

	// All params share the session's hub, so one subscription re-renders
	// on any URL change from either side.
	cancel := sess.Subscribe(push)
	go func() {
		<-sess.Done()
		cancel()
		metrics.LiveSessionsActive.Dec()
	}()

	push()
}
