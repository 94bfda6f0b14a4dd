package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/boardparity/internal/geometry"
	"github.com/robalobadob/boardparity/internal/keymap"
	"github.com/robalobadob/boardparity/internal/labels"
	"github.com/robalobadob/boardparity/internal/quiz"
	"github.com/robalobadob/boardparity/internal/store"
)

// actionRes is returned by every session mutation.
type actionRes struct {
	State    stateView   `json:"state"`
	Action   string      `json:"action,omitempty"`
	Accepted *bool       `json:"accepted,omitempty"` // answers only
	Result   *resultView `json:"result,omitempty"`
	Status   string      `json:"status,omitempty"` // ready/paused prompt after a toggle
}

// catalog picks labels from ?lang=, then Accept-Language, then the default.
func (s *Server) catalog(r *http.Request) labels.Catalog {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return labels.Lookup(lang)
	}
	return labels.Negotiate(r.Header.Get("Accept-Language"), s.opts.DefaultLang)
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// storeFailed maps store errors to responses.
func (s *Server) storeFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.clearSessionCookie(w)
		writeError(w, http.StatusNotFound, "session_not_found")
		return
	}
	hlog.FromRequest(r).Error().Err(err).Str("session", sessionID(r.Context())).Msg("session store")
	writeError(w, http.StatusInternalServerError, "store_failed")
}

// update runs fn on the request's session and writes the common response.
// extra may decorate the response once the update has committed.
func (s *Server) update(w http.ResponseWriter, r *http.Request, fn func(*quiz.Session), extra func(*actionRes)) {
	snap, err := s.store.Update(r.Context(), sessionID(r.Context()), func(sess *quiz.Session) error {
		fn(sess)
		return nil
	})
	if err != nil {
		s.storeFailed(w, r, err)
		return
	}
	res := actionRes{State: viewState(snap, s.catalog(r))}
	if extra != nil {
		extra(&res)
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ SESSIONS -----------------------------------

// createReq is the optional body of POST /api/sessions.
type createReq struct {
	Mode string  `json:"mode"` // "file" (default) | "rank" | "square"
	Seed *uint64 `json:"seed"` // fixed question sequence (testing, drills)
}

type createRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	State     stateView `json:"state"`
}

// handleCreateSession starts a session, signs its token and sets the cookie.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	mode := quiz.ByFile
	if req.Mode != "" {
		m, err := quiz.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_mode")
			return
		}
		mode = m
	}
	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	id := uuid.NewString()
	snap, err := s.store.Create(r.Context(), id, seed)
	if err != nil {
		s.storeFailed(w, r, err)
		return
	}
	if mode != quiz.ByFile {
		snap, err = s.store.Update(r.Context(), id, func(sess *quiz.Session) error {
			sess.SetMode(mode)
			return nil
		})
		if err != nil {
			s.storeFailed(w, r, err)
			return
		}
	}

	tok, exp, err := s.tokens.sign(id, time.Now())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	hlog.FromRequest(r).Debug().Str("session", id).Str("mode", mode.String()).Msg("session created")
	writeJSON(w, http.StatusCreated, createRes{Token: tok, ExpiresAt: exp, State: viewState(snap, s.catalog(r))})
}

func (s *Server) newSeed() uint64 {
	if s.opts.Seed != nil {
		return s.opts.Seed()
	}
	return rand.Uint64()
}

// handleState returns the current session state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), sessionID(r.Context()))
	if err != nil {
		s.storeFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewState(snap, s.catalog(r)))
}

// handleEndSession drops the session and clears the cookie.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), sessionID(r.Context())); err != nil {
		s.storeFailed(w, r, err)
		return
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ------------------------------ ACTIONS ------------------------------------

type modeReq struct {
	Mode string `json:"mode"`
}

// handleMode switches quiz and resets the score.
func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req modeReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	m, err := quiz.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}
	s.update(w, r, func(sess *quiz.Session) { sess.SetMode(m) }, nil)
}

// handleToggle starts or pauses answering.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(sess *quiz.Session) { sess.ToggleRunning() }, func(res *actionRes) {
		res.Status = s.catalog(r).Status(res.State.Running)
	})
}

// handleNext skips to a new question.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(sess *quiz.Session) { sess.NextQuestion() }, nil)
}

type answerReq struct {
	Side string `json:"side"`
}

// handleAnswer scores an answer. While paused it reports accepted=false
// and changes nothing.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	side, err := quiz.ParseSide(req.Side)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_side")
		return
	}
	var (
		result   quiz.Result
		accepted bool
	)
	s.update(w, r, func(sess *quiz.Session) {
		result, accepted = sess.SubmitAnswer(side)
	}, func(res *actionRes) {
		res.Accepted = &accepted
		if accepted {
			res.Result = viewResult(result, s.catalog(r))
		}
	})
}

type keyReq struct {
	Key string `json:"key"`
}

// handleKey resolves a keyboard key through the shared key map.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	action, ok := keymap.Lookup(req.Key)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_key")
		return
	}
	var out keymap.Outcome
	s.update(w, r, func(sess *quiz.Session) {
		out = keymap.Apply(sess, action)
	}, func(res *actionRes) {
		text := s.catalog(r)
		res.Action = action.String()
		switch action {
		case keymap.ToggleRunning:
			res.Status = text.Status(out.Running)
		case keymap.AnswerLeft, keymap.AnswerRight:
			accepted := out.Result != nil
			res.Accepted = &accepted
			if accepted {
				res.Result = viewResult(*out.Result, text)
			}
		}
	})
}

// ------------------------------ LOOKUPS ------------------------------------

type squareRes struct {
	Facts geometry.Facts `json:"facts"`
	Text  string         `json:"text"`
}

// handleSquare explains any square, e.g. GET /api/squares/c4.
func (s *Server) handleSquare(w http.ResponseWriter, r *http.Request) {
	sq, err := geometry.ParseSquare(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_square")
		return
	}
	q := quiz.Question{Mode: quiz.BySquare, File: sq.File, Rank: sq.Rank, Highlight: sq}
	writeJSON(w, http.StatusOK, squareRes{
		Facts: geometry.Describe(sq),
		Text:  s.catalog(r).Explain(quiz.Explain(q)),
	})
}

// handleLabels returns the label catalog for the negotiated language.
func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog(r))
}
