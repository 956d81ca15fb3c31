// Package network talks to the leaderboard service and falls back to a
// local table when it cannot be reached.
package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/automoto/gradius/shared/leaderboard"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrRejected is returned when the service refuses a submission.
var ErrRejected = errors.New("submission rejected")

// Cache persists the last table the client saw.
type Cache interface {
	Load() ([]leaderboard.Entry, bool)
	Save(entries []leaderboard.Entry)
}

// Result is the outcome of a fetch or a submit.
type Result struct {
	Entries []leaderboard.Entry
	Offline bool // served from the local table
	Placed  bool // the submitted score made the table
}

// LeaderboardClient calls the leaderboard HTTP API.
type LeaderboardClient struct {
	baseURL string
	http    *http.Client
	cache   Cache
	log     zerolog.Logger
	now     func() time.Time
}

// NewLeaderboardClient returns a client for the service at baseURL.
// cache may be nil.
func NewLeaderboardClient(baseURL string, timeout time.Duration, cache Cache) *LeaderboardClient {
	return &LeaderboardClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
		log:     log.With().Str("component", "client").Logger(),
		now:     time.Now,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// Fetch returns the current table. When the service is unreachable it
// returns the cached table, or the seed entries, marked offline.
func (c *LeaderboardClient) Fetch(ctx context.Context) Result {
	entries, err := c.list(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("leaderboard fetch failed, using local table")
		return Result{Entries: c.local(), Offline: true}
	}
	c.save(entries)
	return Result{Entries: entries}
}

// Submit posts a score. Validation failures are returned as errors, with a
// *leaderboard.ValidationError for locally detected problems and
// ErrRejected for ones the service reports. Transport failures record the
// score in the local table instead.
func (c *LeaderboardClient) Submit(ctx context.Context, name string, score int) (Result, error) {
	sub := leaderboard.Submission{Name: name, Score: score}
	if err := leaderboard.Validate(sub); err != nil {
		return Result{}, err
	}

	created, err := c.post(ctx, sub)
	if errors.Is(err, ErrRejected) {
		return Result{}, err
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("leaderboard submit failed, recording locally")
		return c.submitLocal(sub), nil
	}

	res := c.Fetch(ctx)
	res.Placed = slices.ContainsFunc(res.Entries, func(e leaderboard.Entry) bool {
		return e.ID == created.ID
	})
	return res, nil
}

func (c *LeaderboardClient) list(ctx context.Context) ([]leaderboard.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/leaderboard", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard returned status %d", resp.StatusCode)
	}
	var entries []leaderboard.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return entries, nil
}

// post submits sub and returns the entry the service created for it.
func (c *LeaderboardClient) post(ctx context.Context, sub leaderboard.Submission) (leaderboard.Entry, error) {
	var none leaderboard.Entry
	body, err := json.Marshal(sub)
	if err != nil {
		return none, fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/leaderboard", bytes.NewReader(body))
	if err != nil {
		return none, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return none, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	switch {
	case resp.StatusCode == http.StatusCreated:
		var created struct {
			HighScore leaderboard.Entry `json:"highScore"`
		}
		if err := json.Unmarshal(data, &created); err != nil {
			return none, fmt.Errorf("decode submit response: %w", err)
		}
		return created.HighScore, nil
	case resp.StatusCode == http.StatusBadRequest:
		var msg messageResponse
		_ = json.Unmarshal(data, &msg)
		return none, fmt.Errorf("%w: %s", ErrRejected, msg.Message)
	default:
		return none, fmt.Errorf("leaderboard returned status %d", resp.StatusCode)
	}
}

// submitLocal inserts sub into the local table the same way the service would.
func (c *LeaderboardClient) submitLocal(sub leaderboard.Submission) Result {
	now := c.now()
	e := leaderboard.Entry{
		ID:    now.UnixMilli(),
		Name:  sub.Name,
		Score: sub.Score,
		Date:  now.Format(leaderboard.DateLayout),
	}
	entries, placed := leaderboard.Insert(c.local(), e, tuning.MaxHighScores)
	c.save(entries)
	return Result{Entries: entries, Offline: true, Placed: placed}
}

func (c *LeaderboardClient) local() []leaderboard.Entry {
	if c.cache != nil {
		if entries, ok := c.cache.Load(); ok {
			return entries
		}
	}
	return leaderboard.DefaultEntries()
}

func (c *LeaderboardClient) save(entries []leaderboard.Entry) {
	if c.cache != nil {
		c.cache.Save(entries)
	}
}
