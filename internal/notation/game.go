package notation

import (
	"bufio"
	"io"
	"strings"

	"github.com/lgbarn/draughts-go/internal/errors"
)

// Game is one line of a game file.
type Game struct {
	Index int // 1-based position in the file
	Line  int
	Moves []Move
	Text  []string // the move tokens as written
}

// ParseGames reads a game file: one game per non-empty line, moves separated
// by white space, "#" to end of line is a comment. Move numbers such as "12."
// are skipped. name is used in error positions.
func ParseGames(r io.Reader, name string) ([]Game, error) {
	var games []Game
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		tokens := strings.Fields(text)
		if len(tokens) == 0 {
			continue
		}

		g := Game{Index: len(games) + 1, Line: line}
		for _, tok := range tokens {
			if isMoveNumber(tok) {
				continue
			}
			mv, err := ParseMove(tok)
			if err != nil {
				return nil, &errors.ParseError{
					Err:    errors.ErrNotation,
					File:   name,
					Line:   line,
					Column: strings.Index(scanner.Text(), tok) + 1,
					Got:    tok,
				}
			}
			g.Moves = append(g.Moves, mv)
			g.Text = append(g.Text, tok)
		}
		games = append(games, g)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return games, nil
}

func isMoveNumber(tok string) bool {
	if len(tok) < 2 || tok[len(tok)-1] != '.' {
		return false
	}
	for _, r := range tok[:len(tok)-1] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
