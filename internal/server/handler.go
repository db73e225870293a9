// Package server exposes a learner session over HTTP as JSON.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/at-ishikawa/parlami/internal/gamification"
	"github.com/at-ishikawa/parlami/internal/learner"
	"github.com/at-ishikawa/parlami/internal/profile"
	"github.com/at-ishikawa/parlami/internal/progress"
	"github.com/at-ishikawa/parlami/internal/quiz"
	"github.com/at-ishikawa/parlami/internal/translation"
)

// maxRequestBytes bounds request bodies.
const maxRequestBytes = 64 << 10

// Handler serves one learner session. Requests are handled one at a time.
type Handler struct {
	mu         sync.Mutex
	session    *learner.Session
	translator *translation.Service
}

func NewHandler(session *learner.Session, translator *translation.Service) *Handler {
	return &Handler{session: session, translator: translator}
}

// Routes returns the API routes.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/levels", h.getLevels)
	mux.HandleFunc("GET /api/stats", h.getStats)
	mux.HandleFunc("GET /api/progress", h.getProgress)
	mux.HandleFunc("GET /api/profile", h.getProfile)
	mux.HandleFunc("PUT /api/profile", h.putProfile)
	mux.HandleFunc("POST /api/quiz/start", h.startQuiz)
	mux.HandleFunc("POST /api/quiz/answer", h.answerQuestion)
	mux.HandleFunc("POST /api/quiz/retake", h.retakeQuiz)
	mux.HandleFunc("POST /api/translate", h.translate)
	mux.HandleFunc("POST /api/sentence", h.buildSentence)
	return mux
}

type levelsResponse struct {
	OverallProgress int                    `json:"overallProgress"`
	Levels          []learner.LevelSummary `json:"levels"`
}

func (h *Handler) getLevels(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, levelsResponse{
		OverallProgress: h.session.CalculateOverallProgress(),
		Levels:          h.session.LevelSummaries(),
	})
}

type statsResponse struct {
	Stats        gamification.Ledger              `json:"stats"`
	Achievements []gamification.AchievementStatus `json:"achievements"`
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	stats := h.session.LoadUserStats()
	writeJSON(w, http.StatusOK, statsResponse{
		Stats:        stats,
		Achievements: gamification.Statuses(stats),
	})
}

type progressResponse struct {
	OverallProgress int             `json:"overallProgress"`
	Progress        progress.Record `json:"progress"`
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, progressResponse{
		OverallProgress: h.session.CalculateOverallProgress(),
		Progress:        h.session.LoadProgress(),
	})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.session.Profile()
	if p == nil {
		writeError(w, http.StatusNotFound, errors.New("onboarding has not been completed"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) putProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	if !readJSON(w, r, &p) {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.session.SaveProfile(r.Context(), p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, h.session.Profile())
}

type questionResponse struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type quizResponse struct {
	LessonID string            `json:"lessonId"`
	State    string            `json:"state"`
	Score    quiz.Score        `json:"score"`
	Question *questionResponse `json:"question,omitempty"`
	Answer   *quiz.Answer      `json:"answer,omitempty"`
	Outcome  *quiz.Outcome     `json:"outcome,omitempty"`
}

func newQuizResponse(attempt *quiz.Attempt) quizResponse {
	resp := quizResponse{
		LessonID: attempt.Lesson().ID,
		State:    attempt.State().String(),
		Score:    attempt.Score(),
	}
	if index, question, ok := attempt.Current(); ok {
		resp.Question = &questionResponse{
			Index:   index,
			Prompt:  question.Prompt,
			Options: question.Options,
		}
	}
	return resp
}

type startQuizRequest struct {
	LessonID string `json:"lessonId"`
}

func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if !readJSON(w, r, &req) {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	attempt, err := h.session.StartQuiz(req.LessonID)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	h.respondQuiz(w, r, attempt, nil)
}

type answerRequest struct {
	Index  int    `json:"index"`
	Option string `json:"option"`
}

// answerQuestion answers the current question. Answering the last one
// completes the attempt and applies it. Answering a question again returns
// the first answer and leaves the attempt as it is.
func (h *Handler) answerQuestion(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !readJSON(w, r, &req) {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	answer, err := h.session.AnswerQuestion(req.Index, req.Option)
	if errors.Is(err, quiz.ErrAlreadyAnswered) {
		resp := newQuizResponse(h.session.Attempt())
		resp.Answer = &answer
		writeJSON(w, http.StatusOK, resp)
		return
	}
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	h.respondQuiz(w, r, h.session.Attempt(), &answer)
}

func (h *Handler) retakeQuiz(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	attempt, err := h.session.RetakeQuiz()
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	h.respondQuiz(w, r, attempt, nil)
}

// respondQuiz writes the attempt, applying it first once it is completed.
func (h *Handler) respondQuiz(w http.ResponseWriter, r *http.Request, attempt *quiz.Attempt, answer *quiz.Answer) {
	resp := newQuizResponse(attempt)
	resp.Answer = answer
	if attempt.State() == quiz.Completed {
		outcome, err := h.session.CompleteQuizAttempt(r.Context())
		if err != nil {
			writeError(w, statusOf(err), err)
			return
		}
		resp.Outcome = &outcome
	}
	writeJSON(w, http.StatusOK, resp)
}

type translateRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

type translateResponse struct {
	translation.Translation
	Cached bool `json:"cached"`
}

func (h *Handler) translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if !readJSON(w, r, &req) {
		return
	}
	// The translator has its own lock and does not touch the session.
	result, err := h.translator.Translate(r.Context(), req.Text, req.From, req.To)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, translateResponse{Translation: result, Cached: result.Cached})
}

type sentenceRequest struct {
	Text string `json:"text"`
	To   string `json:"to"`
}

type sentenceResponse struct {
	translation.Sentence
	Cached bool `json:"cached"`
}

// buildSentence translates an English sentence and breaks it down word by
// word.
func (h *Handler) buildSentence(w http.ResponseWriter, r *http.Request) {
	var req sentenceRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.To == "" {
		writeError(w, http.StatusBadRequest, errors.New("to is required"))
		return
	}
	sentence, err := h.translator.BuildSentence(r.Context(), req.Text, req.To)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sentenceResponse{Sentence: sentence, Cached: sentence.Cached})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, learner.ErrUnknownLesson):
		return http.StatusNotFound
	case errors.Is(err, learner.ErrLevelLocked):
		return http.StatusForbidden
	case errors.Is(err, learner.ErrNoActiveQuiz),
		errors.Is(err, quiz.ErrNotInProgress),
		errors.Is(err, quiz.ErrOutOfOrder),
		errors.Is(err, quiz.ErrAlreadyCompleted):
		return http.StatusConflict
	case errors.Is(err, translation.ErrEmptyText),
		errors.Is(err, translation.ErrTextTooLong):
		return http.StatusBadRequest
	case errors.Is(err, translation.ErrTranslationFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.Default().Error("request failed", slog.Int("status", status), slog.Any("error", err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Warn("failed to write a response", slog.Any("error", err))
	}
}
