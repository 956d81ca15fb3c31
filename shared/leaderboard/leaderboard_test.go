package leaderboard

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestBoardSubmitInsertsInOrder(t *testing.T) {
	b := NewBoard(DefaultEntries())
	b.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }

	e, placed := b.Submit(Submission{Name: "ZED", Score: 11000})
	if !placed {
		t.Fatal("11000 should make the board")
	}
	if e.Date != "2024-03-09" {
		t.Fatalf("date = %q, want 2024-03-09", e.Date)
	}

	got := b.List()
	want := []string{"ACE", "NOVA", "ZED", "VIPER", "ECHO", "PHANTOM"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("row %d = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestBoardKeepsTopTen(t *testing.T) {
	b := NewBoard(nil)
	for i := 1; i <= 12; i++ {
		b.Submit(Submission{Name: fmt.Sprintf("P%d", i), Score: i * 100})
	}
	got := b.List()
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if got[0].Score != 1200 || got[9].Score != 300 {
		t.Fatalf("range = %d..%d, want 1200..300", got[0].Score, got[9].Score)
	}

	_, placed := b.Submit(Submission{Name: "LOW", Score: 50})
	if placed {
		t.Fatal("50 should not make a full board")
	}
	if b.Len() != 10 {
		t.Fatalf("len = %d after low score, want 10", b.Len())
	}
}

func TestBoardTieGoesAfterExisting(t *testing.T) {
	b := NewBoard(DefaultEntries())
	b.Submit(Submission{Name: "TWIN", Score: 10000})
	got := b.List()
	if got[2].Name != "VIPER" || got[3].Name != "TWIN" {
		t.Fatalf("rows = %v, want VIPER before TWIN", got[:4])
	}
}

func TestBoardIDsIncrease(t *testing.T) {
	b := NewBoard(nil)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }
	a, _ := b.Submit(Submission{Name: "A", Score: 10})
	c, _ := b.Submit(Submission{Name: "B", Score: 20})
	if c.ID <= a.ID {
		t.Fatalf("ids %d then %d, want increasing", a.ID, c.ID)
	}
}

func TestParseSubmission(t *testing.T) {
	tests := []struct {
		body    string
		wantErr string
	}{
		{`{"name":"ACE","score":100}`, ""},
		{`{"name":"AAAAAAAAAA","score":1}`, ""},
		{`{"name":"AAAAAAAAAAA","score":100}`, `String must contain at most 10 character(s) at "name"`},
		{`{"name":"","score":100}`, `String must contain at least 1 character(s) at "name"`},
		{`{"score":100}`, `Required at "name"`},
		{`{"name":"ACE","score":0}`, `Number must be greater than 0 at "score"`},
		{`{"name":"ACE","score":-5}`, `Number must be greater than 0 at "score"`},
		{`{"name":"ACE","score":1.5}`, `Expected integer, received float at "score"`},
		{`{"name":"ACE","score":"100"}`, `Expected number, received string at "score"`},
		{`{"name":7,"score":100}`, `Expected string, received number at "name"`},
	}
	for _, tt := range tests {
		sub, err := ParseSubmission([]byte(tt.body))
		if tt.wantErr == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tt.body, err)
			}
			if sub.Name == "" || sub.Score <= 0 {
				t.Fatalf("%s: got %+v", tt.body, sub)
			}
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: err = %v, want ValidationError", tt.body, err)
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Fatalf("%s: err = %q, want it to contain %q", tt.body, err.Error(), tt.wantErr)
		}
	}
}

func TestParseSubmissionCollectsAllIssues(t *testing.T) {
	_, err := ParseSubmission([]byte(`{"name":"","score":0}`))
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Issues) != 2 {
		t.Fatalf("err = %v, want two issues", err)
	}
}

func TestParseSubmissionMalformed(t *testing.T) {
	for _, body := range []string{`not json`, `null`, `[1,2]`} {
		_, err := ParseSubmission([]byte(body))
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: err = %v, want ErrMalformed", body, err)
		}
	}
}

func TestInsertAndQualifies(t *testing.T) {
	entries := DefaultEntries()
	if pos := Position(9000, entries); pos != 3 {
		t.Fatalf("Position(9000) = %d, want 3", pos)
	}
	if pos := Position(100, entries); pos != 5 {
		t.Fatalf("Position(100) = %d, want 5", pos)
	}
	if !Qualifies(100, entries, 10) {
		t.Fatal("100 should qualify for a half empty board")
	}
	if Qualifies(100, entries, 5) {
		t.Fatal("100 should not qualify for a full board of five")
	}

	out, ok := Insert(entries, Entry{Name: "NEW", Score: 20000}, 5)
	if !ok || len(out) != 5 || out[0].Name != "NEW" || out[4].Name != "ECHO" {
		t.Fatalf("Insert = %v, %v", out, ok)
	}
	if entries[0].Name != "ACE" {
		t.Fatal("Insert mutated its input")
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 15000: "15,000", 1234567: "1,234,567", -4500: "-4,500"}
	for n, want := range tests {
		if got := FormatScore(n); got != want {
			t.Fatalf("FormatScore(%d) = %q, want %q", n, got, want)
		}
	}
}
