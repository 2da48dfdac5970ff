package profile

import (
	"testing"
)

func TestCanonicalPair(t *testing.T) {
	tests := []struct {
		name      string
		a, b      uint
		low, high uint
	}{
		{"ordered", 1, 2, 1, 2},
		{"reversed", 9, 4, 4, 9},
		{"equal", 7, 7, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := CanonicalPair(tt.a, tt.b)
			if low != tt.low || high != tt.high {
				t.Fatalf("CanonicalPair(%d,%d) = (%d,%d), want (%d,%d)",
					tt.a, tt.b, low, high, tt.low, tt.high)
			}
		})
	}
}

func TestValidPosition(t *testing.T) {
	for _, p := range []Position{PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionStriker, PositionAny} {
		if !ValidPosition(p) {
			t.Errorf("ValidPosition(%q) = false", p)
		}
	}
	for _, p := range []Position{"", "WINGER", "goalkeeper"} {
		if ValidPosition(p) {
			t.Errorf("ValidPosition(%q) = true", p)
		}
	}
}

func TestLikeEscaperKeepsSearchLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "alice", "alice"},
		{"percent", "al%ice", `al\%ice`},
		{"underscore", "al_ice", `al\_ice`},
		{"backslash", `al\ice`, `al\\ice`},
		{"all wildcards", `%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := likeEscaper.Replace(tt.in); got != tt.want {
				t.Fatalf("escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPositionListRoundTrip(t *testing.T) {
	in := PositionList{PositionDefender, PositionMidfielder}
	value, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var out PositionList
	if err := out.Scan(value.([]byte)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != 2 || out[0] != PositionDefender || out[1] != PositionMidfielder {
		t.Fatalf("round trip mangled positions: %v", out)
	}
}
