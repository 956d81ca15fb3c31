// Package api serves the leaderboard and user endpoints.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/automoto/gradius/shared/leaderboard"
	"github.com/rs/zerolog"
)

const maxRequestBody = 1 << 16 // 64 KB

type messageResponse struct {
	Message string `json:"message"`
}

type submitResponse struct {
	Message   string            `json:"message"`
	HighScore leaderboard.Entry `json:"highScore"`
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Int("status", status).Msg("encode response")
	}
}

func writeMessage(w http.ResponseWriter, log zerolog.Logger, status int, msg string) {
	writeJSON(w, log, status, messageResponse{Message: msg})
}

// ListScores returns the top scores, best first.
func ListScores(board *leaderboard.Board, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, log, http.StatusOK, board.List())
	}
}

// SubmitScore validates and records a score.
func SubmitScore(board *leaderboard.Board, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeMessage(w, log, http.StatusBadRequest, "Request body too large")
			return
		}

		sub, err := leaderboard.ParseSubmission(body)
		if err != nil {
			var verr *leaderboard.ValidationError
			switch {
			case errors.As(err, &verr):
				log.Debug().Str("reason", verr.Error()).Msg("score rejected")
				writeMessage(w, log, http.StatusBadRequest, verr.Error())
			case errors.Is(err, leaderboard.ErrMalformed):
				writeMessage(w, log, http.StatusBadRequest, "Invalid JSON body")
			default:
				log.Error().Err(err).Msg("submit score")
				writeMessage(w, log, http.StatusInternalServerError, "Failed to submit score")
			}
			return
		}

		entry, placed := board.Submit(sub)
		log.Info().Str("name", entry.Name).Int("score", entry.Score).Bool("placed", placed).Msg("score submitted")
		writeJSON(w, log, http.StatusCreated, submitResponse{
			Message:   "Score submitted successfully",
			HighScore: entry,
		})
	}
}

// Health reports liveness.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
