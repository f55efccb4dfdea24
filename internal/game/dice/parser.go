package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSides is used when an expression omits the die size, as in "4d+1".
const DefaultSides = 6

// Upper bounds on a single expression. A roll allocates one slot per die.
const (
	MaxCount = 1000
	MaxSides = 1000
)

// SelectMode picks which dice of a roll count toward its value.
type SelectMode int

const (
	SelectAll SelectMode = iota
	KeepHighest
	KeepLowest
	DropHighest
	DropLowest
)

// Selection is a keep/drop suffix such as "kh3" or "dl1".
type Selection struct {
	Mode SelectMode
	N    int
}

// Expression represents a parsed dice expression ready to be rolled.
// Precondition: 1 <= Count <= MaxCount, 2 <= Sides <= MaxSides after successful Parse.
type Expression struct {
	Raw      string // original input string
	Count    int    // number of dice
	Sides    int    // faces per die
	Modifier int    // flat modifier (may be negative)
	Select   Selection
}

// Kept returns how many dice count toward the value.
func (e Expression) Kept() int {
	switch e.Select.Mode {
	case KeepHighest, KeepLowest:
		return e.Select.N
	case DropHighest, DropLowest:
		return e.Count - e.Select.N
	default:
		return e.Count
	}
}

// Parse parses a dice expression string into an Expression.
// Supported forms: "d20", "2d6", "2d6+3", "4d8-2", "d%", "4d+1" and the
// selection suffixes k/kh, kl, d/dl and dh, each with an optional count
// defaulting to 1 ("4d6kh3", "2d20kl", "4d6d1"). Whitespace is ignored.
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	raw := strings.TrimSpace(expr)
	if raw == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	s := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	p := scanner{src: s}

	count, ok, err := p.integer()
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
	}
	if !ok {
		count = 1
	}
	if count <= 0 {
		return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", raw)
	}
	if count > MaxCount {
		return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be <= %d", raw, MaxCount)
	}
	if !p.consume("d") {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", raw)
	}

	sides := DefaultSides
	if p.consume("%") {
		sides = 100
	} else if n, ok, err := p.integer(); err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
	} else if ok {
		sides = n
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", raw)
	}
	if sides > MaxSides {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be <= %d", raw, MaxSides)
	}

	sel, err := p.selection()
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid selection in %q: %w", raw, err)
	}
	if sel.Mode != SelectAll && (sel.N <= 0 || sel.N >= count) {
		return Expression{}, fmt.Errorf("dice: selection count %d must be > 0 and < count %d in %q", sel.N, count, raw)
	}

	modifier := 0
	if rest := p.rest(); rest != "" {
		if rest[0] != '+' && rest[0] != '-' {
			return Expression{}, fmt.Errorf("dice: unexpected %q in %q", rest, raw)
		}
		modifier, err = strconv.Atoi(rest)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", raw, err)
		}
	}

	return Expression{
		Raw:      raw,
		Count:    count,
		Sides:    sides,
		Modifier: modifier,
		Select:   sel,
	}, nil
}

// MustParse parses expr and panics on error. Useful for package-level constants.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}

type scanner struct {
	src string
	pos int
}

func (p *scanner) rest() string { return p.src[p.pos:] }

func (p *scanner) consume(prefix string) bool {
	if strings.HasPrefix(p.rest(), prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

// integer reads a run of digits. ok is false when none are present.
func (p *scanner) integer() (n int, ok bool, err error) {
	end := p.pos
	for end < len(p.src) && p.src[end] >= '0' && p.src[end] <= '9' {
		end++
	}
	if end == p.pos {
		return 0, false, nil
	}
	n, err = strconv.Atoi(p.src[p.pos:end])
	if err != nil {
		return 0, false, err
	}
	p.pos = end
	return n, true, nil
}

func (p *scanner) selection() (Selection, error) {
	var mode SelectMode
	switch {
	case p.consume("kh"):
		mode = KeepHighest
	case p.consume("kl"):
		mode = KeepLowest
	case p.consume("k"):
		mode = KeepHighest
	case p.consume("dh"):
		mode = DropHighest
	case p.consume("dl"), p.consume("d"):
		mode = DropLowest
	default:
		return Selection{}, nil
	}
	n, ok, err := p.integer()
	if err != nil {
		return Selection{}, err
	}
	if !ok {
		n = 1
	}
	return Selection{Mode: mode, N: n}, nil
}
