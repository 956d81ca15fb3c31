package api

import (
	"net/http"
	"time"

	"github.com/automoto/gradius/shared/leaderboard"
	"github.com/rs/zerolog"
)

// NewMux wires every endpoint.
func NewMux(board *leaderboard.Board, users *UserStore, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/leaderboard", ListScores(board, log))
	mux.HandleFunc("POST /api/leaderboard", SubmitScore(board, log))
	mux.HandleFunc("POST /api/users/register", RegisterUser(users, log))
	mux.HandleFunc("POST /api/users/login", LoginUser(users, log))
	mux.HandleFunc("GET /health", Health())
	return recoverer(requestLogger(mux, log), log)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func recoverer(next http.Handler, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				log.Error().Interface("panic", v).Str("path", r.URL.Path).Msg("handler panic")
				writeMessage(w, log, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
