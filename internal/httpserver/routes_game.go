// internal/httpserver/routes_game.go
//
// HTTP routes for a running round:
//   - POST   /game/new              → start a round
//   - GET    /game/{id}             → current snapshot (+ resultToken once finished)
//   - POST   /game/{id}/correct     → word guessed (+1)
//   - POST   /game/{id}/skip        → word skipped (-1)
//   - POST   /game/{id}/finish/ack  → finish event handled
//   - POST   /game/{id}/buzz/ack    → buzz played
//   - DELETE /game/{id}             → tear the round down
//   - GET    /game/{id}/ws          → WebSocket stream of snapshots
//
// Rounds live in the holder store; finished rounds are recorded on the board.

package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guesstheword/apps/go-server/internal/game"
	"github.com/robalobadob/guesstheword/apps/go-server/internal/holder"
	"github.com/robalobadob/guesstheword/apps/go-server/internal/store"
)

// mountGame registers all /game routes except the stream.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Get("/{id}", s.handleGetGame)
		r.Post("/{id}/correct", s.handleCorrect)
		r.Post("/{id}/skip", s.handleSkip)
		r.Post("/{id}/finish/ack", s.handleFinishAck)
		r.Post("/{id}/buzz/ack", s.handleBuzzAck)
		r.Delete("/{id}", s.handleDeleteGame)
	})
}

// gameRes is the snapshot payload of every /game route.
type gameRes struct {
	game.Snapshot
	ResultToken string `json:"resultToken,omitempty"`
}

// lookupGame resolves {id} to a round.
func (s *Server) lookupGame(r *http.Request) (*game.Session, error) {
	h, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	g, ok := h.(holder.Game)
	if !ok {
		return nil, store.ErrNotFound
	}
	return g.Session, nil
}

// respondGame writes snap, attaching a result token once the round is over.
func (s *Server) respondGame(w http.ResponseWriter, status int, g *game.Session, snap game.Snapshot) {
	res := gameRes{Snapshot: snap}
	if result, ok := g.Result(); ok {
		tok, err := s.tokens.Sign(result)
		if err != nil {
			log.Error().Err(err).Str("gameId", g.ID()).Msg("sign result token")
		}
		res.ResultToken = tok
	}
	writeJSON(w, status, res)
}

// recordRound stores a finished round on the board (best effort).
func (s *Server) recordRound(res game.Result) {
	if s.board == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.board.Record(ctx, res); err != nil {
		log.Warn().Err(err).Str("gameId", res.GameID).Msg("record round")
	}
}

// handleNewGame starts a round and returns its first snapshot.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	opts := append([]game.Option{}, s.opts.GameOptions...)
	opts = append(opts, game.WithOnFinish(s.recordRound))

	h, err := holder.New(holder.KindGame, holder.Params{GameOptions: opts})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), h); err != nil {
		h.Close()
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	g := h.(holder.Game).Session
	s.respondGame(w, http.StatusCreated, g, g.Snapshot())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookupGame(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.respondGame(w, http.StatusOK, g, g.Snapshot())
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	s.applyAction(w, r, (*game.Session).Correct)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.applyAction(w, r, (*game.Session).Skip)
}

// applyAction runs a player action; a finished round answers 409.
func (s *Server) applyAction(w http.ResponseWriter, r *http.Request, act func(*game.Session) (game.Snapshot, error)) {
	g, err := s.lookupGame(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	snap, err := act(g)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.respondGame(w, http.StatusOK, g, snap)
}

func (s *Server) handleFinishAck(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookupGame(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.respondGame(w, http.StatusOK, g, g.AcknowledgeFinish())
}

func (s *Server) handleBuzzAck(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookupGame(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.respondGame(w, http.StatusOK, g, g.AcknowledgeBuzz())
}

// handleDeleteGame removes the round and cancels its countdown.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if _, err := s.lookupGame(r); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -----------------------------------------------------------------------------
// /game/{id}/ws

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

// handleGameStream upgrades to a WebSocket and pushes a snapshot after every
// change until the round is torn down or the client goes away.
func (s *Server) handleGameStream(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookupGame(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == s.opts.ClientOrigin
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID()).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	snaps, unsubscribe := g.Subscribe()
	defer unsubscribe()

	// Reader: only control frames are expected; any error ends the stream.
	gone := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()

	log.Debug().Str("gameId", g.ID()).Msg("stream opened")
	for {
		select {
		case snap, ok := <-snaps:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			res := gameRes{Snapshot: snap}
			if result, done := g.Result(); done {
				tok, err := s.tokens.Sign(result)
				if err != nil {
					log.Error().Err(err).Str("gameId", g.ID()).Msg("sign result token")
				}
				res.ResultToken = tok
			}
			if err := conn.WriteJSON(res); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			log.Debug().Str("gameId", g.ID()).Msg("stream closed by client")
			return
		}
	}
}
