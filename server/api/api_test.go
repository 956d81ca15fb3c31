package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/automoto/gradius/shared/leaderboard"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) (*httptest.Server, *leaderboard.Board) {
	t.Helper()
	board := leaderboard.NewBoard(leaderboard.DefaultEntries())
	users := NewUserStore()
	users.cost = bcrypt.MinCost
	srv := httptest.NewServer(NewMux(board, users, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv, board
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, out
}

func TestListScores(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/leaderboard")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var entries []leaderboard.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 || entries[0].Name != "ACE" || entries[0].Score != 15000 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestSubmitScore(t *testing.T) {
	srv, board := newTestServer(t)
	resp, out := post(t, srv.URL+"/api/leaderboard", `{"name":"ZED","score":9000}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%v)", resp.StatusCode, out)
	}
	if out["message"] != "Score submitted successfully" {
		t.Fatalf("message = %v", out["message"])
	}
	hs, ok := out["highScore"].(map[string]any)
	if !ok || hs["name"] != "ZED" || hs["score"] != float64(9000) {
		t.Fatalf("highScore = %v", out["highScore"])
	}
	if got := board.List()[3]; got.Name != "ZED" {
		t.Fatalf("row 3 = %+v, want ZED", got)
	}
}

func TestSubmitScoreRejectsLongName(t *testing.T) {
	srv, board := newTestServer(t)
	before := board.List()

	resp, out := post(t, srv.URL+"/api/leaderboard", `{"name":"AAAAAAAAAAA","score":100}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	msg, _ := out["message"].(string)
	if !strings.Contains(msg, "at most 10") {
		t.Fatalf("message = %q, want a length error", msg)
	}

	after := board.List()
	if len(after) != len(before) {
		t.Fatalf("board changed: %d rows, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("row %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestSubmitScoreBadBodies(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, body := range []string{`{`, `{"name":"ACE"}`, `{"name":"ACE","score":-1}`, `{"name":"ACE","score":2.5}`} {
		resp, out := post(t, srv.URL+"/api/leaderboard", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", body, resp.StatusCode)
		}
		if msg, _ := out["message"].(string); msg == "" {
			t.Fatalf("%s: empty message", body)
		}
	}
}

func TestUserRegisterAndLogin(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, out := post(t, srv.URL+"/api/users/register", `{"username":"pilot","password":"hunter2"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201 (%v)", resp.StatusCode, out)
	}

	resp, _ = post(t, srv.URL+"/api/users/register", `{"username":"pilot","password":"other"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", resp.StatusCode)
	}

	resp, _ = post(t, srv.URL+"/api/users/register", `{"username":"pilot"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing password status = %d, want 400", resp.StatusCode)
	}

	resp, out = post(t, srv.URL+"/api/users/login", `{"username":"pilot","password":"hunter2"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	user, _ := out["user"].(map[string]any)
	if user["username"] != "pilot" {
		t.Fatalf("user = %v", out["user"])
	}

	resp, _ = post(t, srv.URL+"/api/users/login", `{"username":"pilot","password":"wrong"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
