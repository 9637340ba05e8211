// Package pattern compiles the pattern DSL AST (compiler/ast's
// PatternNode tree) into bytecode and executes it with a backtracking
// NFA virtual machine, per the closed instruction set: Char, CharClass,
// Jump, Split, Match, StartCapture/EndCapture, Save/Restore, Backref
// (reserved, unimplemented), and the four lookaround assertions.
package pattern

import "github.com/wfl-lang/wfl/compiler/ast"

// Opcode identifies one pattern bytecode instruction.
type Opcode int

const (
	OpChar Opcode = iota
	OpCharClass
	OpJump
	OpSplit
	OpMatch
	OpStartCapture
	OpEndCapture
	OpSave
	OpRestore
	OpBackref
	OpLookaround
)

// Instr is one bytecode instruction. Field meaning depends on Op:
//
//	OpChar:        Rune
//	OpCharClass:   Class
//	OpJump:        A (target pc)
//	OpSplit:       A, B (both target pcs, tried in order)
//	OpStartCapture, OpEndCapture, OpSave, OpRestore: A (slot)
//	OpBackref:     A (slot, reserved — never emitted by Compile)
//	OpLookaround:  Negate, Behind, Sub (nested program)
type Instr struct {
	Op     Opcode
	Rune   rune
	Class  ast.CharClassKind
	A, B   int
	Negate bool
	Behind bool
	Sub    *Program
}

// Program is a compiled pattern: a linear instruction sequence plus
// capture-slot bookkeeping and start-anchoring metadata.
type Program struct {
	Instrs        []Instr
	NumCaptures   int
	CaptureNames  map[string]int // name -> slot, in declaration order of first use
	AnchoredStart bool           // true if the pattern opens with `start of text`
}
