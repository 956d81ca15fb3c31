package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is the public view of an account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type userRecord struct {
	User
	hash []byte
}

// UserStore is an in-memory account registry.
type UserStore struct {
	mu     sync.RWMutex
	users  map[string]*userRecord
	nextID int
	cost   int
}

// NewUserStore returns an empty registry.
func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[string]*userRecord),
		nextID: 1,
		cost:   bcrypt.DefaultCost,
	}
}

// Register creates an account.
func (s *UserStore) Register(username, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return User{}, ErrUserExists
	}
	rec := &userRecord{User: User{ID: s.nextID, Username: username}, hash: hash}
	s.nextID++
	s.users[username] = rec
	return rec.User, nil
}

// Authenticate checks a username and password.
func (s *UserStore) Authenticate(username, password string) (User, error) {
	s.mu.RLock()
	rec, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return rec.User, nil
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, false
	}
	return req, req.Username != "" && req.Password != ""
}

// RegisterUser creates an account.
func RegisterUser(users *UserStore, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCredentials(w, r)
		if !ok {
			writeMessage(w, log, http.StatusBadRequest, "Username and password are required")
			return
		}
		user, err := users.Register(req.Username, req.Password)
		switch {
		case errors.Is(err, ErrUserExists):
			writeMessage(w, log, http.StatusConflict, "Username already exists")
			return
		case err != nil:
			log.Error().Err(err).Msg("register user")
			writeMessage(w, log, http.StatusInternalServerError, "Registration failed")
			return
		}
		log.Info().Str("username", user.Username).Int("id", user.ID).Msg("user registered")
		writeJSON(w, log, http.StatusCreated, userResponse{Message: "User registered successfully", User: user})
	}
}

// LoginUser checks credentials.
func LoginUser(users *UserStore, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCredentials(w, r)
		if !ok {
			writeMessage(w, log, http.StatusBadRequest, "Username and password are required")
			return
		}
		user, err := users.Authenticate(req.Username, req.Password)
		if err != nil {
			writeMessage(w, log, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeJSON(w, log, http.StatusOK, userResponse{Message: "Authentication successful", User: user})
	}
}
