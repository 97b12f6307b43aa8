package matching

import (
	"strings"
	"testing"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/draughts"
	derrors "github.com/lgbarn/draughts-go/internal/errors"
	"github.com/lgbarn/draughts-go/internal/notation"
	"github.com/lgbarn/draughts-go/internal/processing"
	"github.com/lgbarn/draughts-go/internal/testutil"
)

func analyze(t *testing.T, setup draughts.SetupProvider, text string) *processing.GameAnalysis {
	t.Helper()
	games, err := notation.ParseGames(strings.NewReader(text), "test")
	testutil.AssertNoError(t, err)
	opts := processing.OptionsFromConfig(config.NewConfig(), "test")
	opts.Setup = setup
	a := processing.AnalyzeGame(games[0], opts)
	testutil.AssertNoError(t, a.Err)
	return a
}

// redWin: a single capture ends the game.
func redWin(t *testing.T) *processing.GameAnalysis {
	return analyze(t, testutil.MustPosition(t, "r1@11 b20@15"), "11x18\n")
}

// opening: four quiet moves from the standard position.
func opening(t *testing.T) *processing.GameAnalysis {
	return analyze(t, nil, "9-13 22-18 10-15 24-20\n")
}

type fixed bool

func (f fixed) Match(*processing.GameAnalysis) bool { return bool(f) }
func (f fixed) Name() string {
	if f {
		return "yes"
	}
	return "no"
}

func TestCompositeMatcher(t *testing.T) {
	tests := []struct {
		name string
		c    *CompositeMatcher
		want bool
	}{
		{"empty AND", NewCompositeMatcher(MatchAll), true},
		{"empty OR", NewCompositeMatcher(MatchAny), false},
		{"AND all true", NewCompositeMatcher(MatchAll, fixed(true), fixed(true)), true},
		{"AND one false", NewCompositeMatcher(MatchAll, fixed(true), fixed(false)), false},
		{"OR one true", NewCompositeMatcher(MatchAny, fixed(false), fixed(true)), true},
		{"OR all false", NewCompositeMatcher(MatchAny, fixed(false), fixed(false)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Match(&processing.GameAnalysis{}); got != tt.want {
				t.Errorf("Match() = %v; want %v", got, tt.want)
			}
		})
	}

	c := NewCompositeMatcher(MatchAny, fixed(true))
	c.Add(Invert{fixed(true)})
	testutil.AssertEqual(t, c.Name(), "CompositeMatcher(OR: yes, NOT yes)")
	if c.Len() != 2 {
		t.Errorf("Len() = %d; want 2", c.Len())
	}
}

func TestNewMaterialMatcher(t *testing.T) {
	mm, err := NewMaterialMatcher("rrR:b", false)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, mm.counts, [draughts.NumSides][2]int{{2, 1}, {1, 0}})

	for _, bad := range []string{"rr", "rx:b", "r:R"} {
		_, err := NewMaterialMatcher(bad, false)
		testutil.AssertErrorIs(t, err, derrors.ErrInvalidConfig, "pattern %q", bad)
	}
}

func TestMaterialMatcher(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		exact   bool
		want    bool
	}{
		{"at least one man each", "r:b", false, true},
		{"exact start", "r:b", true, true},
		{"exact end", "r:", true, true},
		{"never more men", "rr:", false, false},
		{"no kings", "R:", false, false},
	}
	a := redWin(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mm, err := NewMaterialMatcher(tt.pattern, tt.exact)
			testutil.AssertNoError(t, err)
			if got := mm.Match(a); got != tt.want {
				t.Errorf("%s.Match() = %v; want %v", mm.Name(), got, tt.want)
			}
		})
	}
}

func TestMaterialMatcherStandardOpening(t *testing.T) {
	full := strings.Repeat("r", 12) + ":" + strings.Repeat("b", 12)
	mm, err := NewMaterialMatcher(full, true)
	testutil.AssertNoError(t, err)
	if !mm.Match(opening(t)) {
		t.Error("full material should match the opening")
	}
}

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		in   string
		want Outcome
	}{
		{"", AnyOutcome},
		{"Red", RedWin},
		{"b", BlackWin},
		{"none", Unfinished},
	}
	for _, tt := range tests {
		got, err := ParseOutcome(tt.in)
		testutil.AssertNoError(t, err)
		if got != tt.want {
			t.Errorf("ParseOutcome(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
	_, err := ParseOutcome("draw")
	testutil.AssertErrorIs(t, err, derrors.ErrInvalidConfig)
}

func TestGameFilter(t *testing.T) {
	won := redWin(t)
	open := opening(t)

	tests := []struct {
		name     string
		filter   GameFilter
		wantWon  bool
		wantOpen bool
	}{
		{"no criteria", GameFilter{}, true, true},
		{"red wins", GameFilter{Outcome: RedWin}, true, false},
		{"black wins", GameFilter{Outcome: BlackWin}, false, false},
		{"unfinished", GameFilter{Outcome: Unfinished}, false, true},
		{"at least two turns", GameFilter{MinTurns: 2}, false, true},
		{"at most two turns", GameFilter{MaxTurns: 2}, true, false},
		{"a capture", GameFilter{MinChain: 1}, true, false},
		{"a promotion", GameFilter{Promotion: true}, false, false},
		{"repetition", GameFilter{Repetition: true}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filter
			if got := f.Match(won); got != tt.wantWon {
				t.Errorf("Match(won) = %v; want %v", got, tt.wantWon)
			}
			if got := f.Match(open); got != tt.wantOpen {
				t.Errorf("Match(open) = %v; want %v", got, tt.wantOpen)
			}
		})
	}

	if NewGameFilter().HasCriteria() {
		t.Error("new filter should have no criteria")
	}
	if !(&GameFilter{Blocked: true}).HasCriteria() {
		t.Error("Blocked should count as a criterion")
	}
}
