package model

import (
	"errors"
	"testing"
)

func TestLeagueIDFromTeamKey(t *testing.T) {
	id, err := LeagueIDFromTeamKey("388.l.27081.t.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "388.l.27081" {
		t.Errorf("wanted 388.l.27081 but got %s", id)
	}

	prefix, err := GamePrefix(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefix != "388" {
		t.Errorf("wanted 388 but got %s", prefix)
	}
}

func TestLeagueIDFromTeamKey_malformed(t *testing.T) {
	for _, key := range []string{"388.l.27081", "", ".t.5", "just-a-name"} {
		_, err := LeagueIDFromTeamKey(key)
		if err == nil {
			t.Fatalf("expected an error for %q, but got none", key)
		}
		var malformed *MalformedIdentifierError
		if !errors.As(err, &malformed) {
			t.Errorf("wanted MalformedIdentifierError for %q, got %T", key, err)
		}
	}
}

func TestPlayerIDFromKey(t *testing.T) {
	id, err := PlayerIDFromKey("388.p.10730")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 10730 {
		t.Errorf("wanted 10730 but got %d", id)
	}
}

func TestPlayerIDFromKey_malformed(t *testing.T) {
	for _, key := range []string{"388.l.27081.t.9", "p.10730", "388.p.", "388.p.x1"} {
		if _, err := PlayerIDFromKey(key); err == nil {
			t.Fatalf("expected an error for %q, but got none", key)
		}
	}
}

func TestPlayerKey(t *testing.T) {
	if k := PlayerKey("399", 9265); k != "399.p.9265" {
		t.Errorf("wanted 399.p.9265 but got %s", k)
	}
}
