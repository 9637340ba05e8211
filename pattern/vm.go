package pattern

import (
	"errors"
	"strings"
	"unicode"

	"github.com/wfl-lang/wfl/compiler/ast"
)

// ErrStepLimitExceeded is raised when a match attempt exceeds the
// configured maximum instruction-step count.
var ErrStepLimitExceeded = errors.New("pattern: step limit exceeded")

// ErrDepthLimitExceeded is raised when nested lookaround assertions
// exceed the configured maximum recursion depth.
var ErrDepthLimitExceeded = errors.New("pattern: lookaround recursion depth limit exceeded")

const (
	defaultMaxSteps = 1_000_000
	defaultMaxDepth = 64
)

// Match is one successful match of a compiled pattern against text.
// Captures that did not participate in the match map to a nil pointer,
// per spec.md's `Map<Text, Option<Text>>` capture contract.
type Match struct {
	Text     string
	Start    int
	End      int
	Captures map[string]*string
}

type undoEntry struct {
	slot       int
	start, end int
}

// vm is one backtracking thread over a single Program. Split pursues
// both branches depth-first via Go's own call stack: a failed
// recursive exec simply returns false and the caller tries its other
// branch.
type vm struct {
	prog  *Program
	runes []rune

	maxSteps int
	maxDepth int
	steps    int
	depth    int

	capStart []int
	capEnd   []int
	undo     []undoEntry

	wantEnd   int // -1 unless constrained by a lookbehind probe
	matchedAt int
}

func newVM(prog *Program, runes []rune) *vm {
	cs := make([]int, prog.NumCaptures)
	ce := make([]int, prog.NumCaptures)
	for i := range cs {
		cs[i], ce[i] = -1, -1
	}
	return &vm{
		prog:     prog,
		runes:    runes,
		maxSteps: defaultMaxSteps,
		maxDepth: defaultMaxDepth,
		capStart: cs,
		capEnd:   ce,
		wantEnd:  -1,
	}
}

//nolint:gocyclo,cyclop // opcode dispatch is inherently a big switch
func (m *vm) exec(pc, pos int) (bool, error) {
	m.steps++
	if m.steps > m.maxSteps {
		return false, ErrStepLimitExceeded
	}
	instr := m.prog.Instrs[pc]
	switch instr.Op {
	case OpChar:
		if pos >= len(m.runes) || m.runes[pos] != instr.Rune {
			return false, nil
		}
		return m.exec(pc+1, pos+1)
	case OpCharClass:
		if pos >= len(m.runes) || !classMatches(instr.Class, m.runes[pos]) {
			return false, nil
		}
		return m.exec(pc+1, pos+1)
	case OpJump:
		return m.exec(instr.A, pos)
	case OpSplit:
		ok, err := m.exec(instr.A, pos)
		if err != nil || ok {
			return ok, err
		}
		return m.exec(instr.B, pos)
	case OpMatch:
		if m.wantEnd >= 0 && pos != m.wantEnd {
			return false, nil
		}
		m.matchedAt = pos
		return true, nil
	case OpStartCapture:
		prev := m.capStart[instr.A]
		m.capStart[instr.A] = pos
		ok, err := m.exec(pc+1, pos)
		if !ok {
			m.capStart[instr.A] = prev
		}
		return ok, err
	case OpEndCapture:
		prev := m.capEnd[instr.A]
		m.capEnd[instr.A] = pos
		ok, err := m.exec(pc+1, pos)
		if !ok {
			m.capEnd[instr.A] = prev
		}
		return ok, err
	case OpSave:
		mark := len(m.undo)
		m.undo = append(m.undo, undoEntry{slot: instr.A, start: m.capStart[instr.A], end: m.capEnd[instr.A]})
		ok, err := m.exec(pc+1, pos)
		if !ok {
			m.rollback(mark)
		}
		return ok, err
	case OpRestore:
		return m.exec(pc+1, pos)
	case OpBackref:
		return false, errors.New("pattern: backreferences are not implemented")
	case OpLookaround:
		return m.execLookaround(instr, pc, pos)
	default:
		return false, errors.New("pattern: unknown opcode")
	}
}

func (m *vm) rollback(toMark int) {
	for i := len(m.undo) - 1; i >= toMark; i-- {
		e := m.undo[i]
		m.capStart[e.slot] = e.start
		m.capEnd[e.slot] = e.end
	}
	m.undo = m.undo[:toMark]
}

func (m *vm) execLookaround(instr Instr, pc, pos int) (bool, error) {
	m.depth++
	if m.depth > m.maxDepth {
		m.depth--
		return false, ErrDepthLimitExceeded
	}
	var satisfied bool
	var err error
	if instr.Behind {
		satisfied, err = lookbehindSatisfied(instr.Sub, m.runes, pos)
	} else {
		satisfied, err = lookaheadSatisfied(instr.Sub, m.runes, pos)
	}
	m.depth--
	if err != nil {
		return false, err
	}
	if satisfied == instr.Negate {
		return false, nil
	}
	return m.exec(pc+1, pos)
}

func lookaheadSatisfied(sub *Program, runes []rune, pos int) (bool, error) {
	inner := newVM(sub, runes)
	return inner.exec(0, pos)
}

// lookbehindSatisfied asks whether sub can match some span ending
// exactly at pos, trying every candidate start position back to the
// beginning of input. This is the naive approach (no fixed-width
// analysis) but matches the spec's instruction set without imposing
// extra restrictions on what may appear inside a lookbehind.
func lookbehindSatisfied(sub *Program, runes []rune, pos int) (bool, error) {
	for start := pos; start >= 0; start-- {
		inner := newVM(sub, runes)
		inner.wantEnd = pos
		ok, err := inner.exec(0, start)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func classMatches(class ast.CharClassKind, r rune) bool {
	switch class {
	case ast.ClassDigit:
		return r < 128 && unicode.IsDigit(r)
	case ast.ClassLetter:
		return r < 128 && unicode.IsLetter(r)
	case ast.ClassWhitespace:
		return r < 128 && unicode.IsSpace(r)
	case ast.ClassPunctuation:
		return r < 128 && unicode.IsPunct(r)
	case ast.ClassAny:
		return true
	default:
		return false
	}
}

func (m *vm) buildMatch(start int) *Match {
	captures := make(map[string]*string, len(m.prog.CaptureNames))
	for name, slot := range m.prog.CaptureNames {
		if m.capStart[slot] < 0 || m.capEnd[slot] < 0 {
			captures[name] = nil
			continue
		}
		text := string(m.runes[m.capStart[slot]:m.capEnd[slot]])
		captures[name] = &text
	}
	return &Match{
		Text:     string(m.runes[start:m.matchedAt]),
		Start:    start,
		End:      m.matchedAt,
		Captures: captures,
	}
}

// Matches reports whether prog matches somewhere in text (anchored at
// the first viable position unless the pattern itself anchors).
func Matches(prog *Program, text string) (bool, error) {
	m, err := Find(prog, text)
	return m != nil, err
}

// Find returns the first match of prog in text, or nil if none exists.
func Find(prog *Program, text string) (*Match, error) {
	runes := []rune(text)
	limit := len(runes)
	for start := 0; start <= limit; start++ {
		m := newVM(prog, runes)
		ok, err := m.exec(0, start)
		if err != nil {
			return nil, err
		}
		if ok {
			return m.buildMatch(start), nil
		}
		if prog.AnchoredStart {
			break
		}
	}
	return nil, nil
}

// FindAll returns every non-overlapping match of prog in text, scanning
// forward from the end of each match (or one past a zero-width match).
func FindAll(prog *Program, text string) ([]*Match, error) {
	runes := []rune(text)
	var matches []*Match
	pos := 0
	for pos <= len(runes) {
		var found *Match
		for start := pos; start <= len(runes); start++ {
			m := newVM(prog, runes)
			ok, err := m.exec(0, start)
			if err != nil {
				return nil, err
			}
			if ok {
				found = m.buildMatch(start)
				break
			}
			if prog.AnchoredStart {
				break
			}
		}
		if found == nil {
			break
		}
		matches = append(matches, found)
		if found.End > found.Start {
			pos = found.End
		} else {
			pos = found.End + 1
		}
	}
	return matches, nil
}

// Replace substitutes every non-overlapping match of prog in source
// with replacement.
func Replace(prog *Program, source, replacement string) (string, error) {
	matches, err := FindAll(prog, source)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return source, nil
	}
	runes := []rune(source)
	var b strings.Builder
	cursor := 0
	for _, mt := range matches {
		b.WriteString(string(runes[cursor:mt.Start]))
		b.WriteString(replacement)
		cursor = mt.End
	}
	b.WriteString(string(runes[cursor:]))
	return b.String(), nil
}

// Split returns the segments of text between successive matches of
// prog (matches themselves are discarded).
func Split(prog *Program, text string) ([]string, error) {
	matches, err := FindAll(prog, text)
	if err != nil {
		return nil, err
	}
	runes := []rune(text)
	if len(matches) == 0 {
		return []string{text}, nil
	}
	segments := make([]string, 0, len(matches)+1)
	cursor := 0
	for _, mt := range matches {
		segments = append(segments, string(runes[cursor:mt.Start]))
		cursor = mt.End
	}
	segments = append(segments, string(runes[cursor:]))
	return segments, nil
}
