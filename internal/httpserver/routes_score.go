// internal/httpserver/routes_score.go
//
// HTTP routes for the results screen and the finished-round board:
//   - POST /score/new                 → results screen from a result token
//   - GET  /score/{id}                → final score + play-again event
//   - POST /score/{id}/play-again     → raise the play-again event
//   - POST /score/{id}/play-again/ack → clear it
//   - GET  /rounds/top?limit=N        → best finished rounds

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/guesstheword/apps/go-server/internal/history"
	"github.com/robalobadob/guesstheword/apps/go-server/internal/holder"
	"github.com/robalobadob/guesstheword/apps/go-server/internal/score"
	"github.com/robalobadob/guesstheword/apps/go-server/internal/store"
)

// mountScore registers /score and /rounds routes.
func (s *Server) mountScore(r chi.Router) {
	r.Route("/score", func(r chi.Router) {
		r.Post("/new", s.handleNewScore)
		r.Get("/{id}", s.handleGetScore)
		r.Post("/{id}/play-again", s.handlePlayAgain)
		r.Post("/{id}/play-again/ack", s.handlePlayAgainAck)
	})
	r.Get("/rounds/top", s.handleTopRounds)
}

// newScoreReq is the request payload for /score/new.
type newScoreReq struct {
	ResultToken string `json:"resultToken"`
	Kind        string `json:"kind,omitempty"` // defaults to "score"
}

// handleNewScore verifies the token and builds the results holder.
func (s *Server) handleNewScore(w http.ResponseWriter, r *http.Request) {
	var req newScoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	claims, err := s.tokens.Verify(req.ResultToken)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	kind := holder.KindScore
	if req.Kind != "" {
		kind = holder.Kind(req.Kind)
	}
	// A results screen cannot be a round.
	if kind == holder.KindGame {
		writeDomainError(w, holder.ErrUnsupportedKind)
		return
	}
	h, err := holder.New(kind, holder.Params{FinalScore: claims.Score})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), h); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, h.(holder.Score).Snapshot())
}

// lookupScore resolves {id} to a results session.
func (s *Server) lookupScore(r *http.Request) (*score.Session, error) {
	h, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	sc, ok := h.(holder.Score)
	if !ok {
		return nil, store.ErrNotFound
	}
	return sc.Session, nil
}

func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	sc, err := s.lookupScore(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc.Snapshot())
}

func (s *Server) handlePlayAgain(w http.ResponseWriter, r *http.Request) {
	sc, err := s.lookupScore(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc.PlayAgain())
}

func (s *Server) handlePlayAgainAck(w http.ResponseWriter, r *http.Request) {
	sc, err := s.lookupScore(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc.PlayAgainComplete())
}

// topRes is returned by /rounds/top.
type topRes struct {
	Top []history.Round `json:"top"`
}

func (s *Server) handleTopRounds(w http.ResponseWriter, r *http.Request) {
	if s.board == nil {
		writeJSON(w, http.StatusOK, topRes{Top: []history.Round{}})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > history.MaxLimit {
		limit = history.MaxLimit
	}
	rows, err := s.board.Top(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, topRes{Top: rows})
}
