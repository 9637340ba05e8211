package pattern

import (
	"fmt"

	"github.com/wfl-lang/wfl/compiler/ast"
)

// Compile translates a pattern AST into a bytecode Program ready for
// the VM. It is grounded on the classic Thompson-construction compiler
// shape: emit straight-line code for literals/classes, patch Jump/Split
// targets once the sub-expression they bracket has been emitted.
func Compile(node ast.PatternNode) (*Program, error) {
	c := &compiler{prog: &Program{CaptureNames: make(map[string]int)}}
	if anchor, ok := leadingAnchor(node); ok {
		c.prog.AnchoredStart = true
		node = anchor
	}
	if err := c.compileNode(node); err != nil {
		return nil, err
	}
	c.emit(Instr{Op: OpMatch})
	return c.prog, nil
}

// leadingAnchor strips a leading `start of text` anchor from a
// sequence (or a bare anchor pattern), returning the remainder to
// compile and whether an anchor was found. Anchoring is modeled as
// Program metadata rather than a bytecode instruction: the driver
// (Matches/Find) only tries input position 0 when AnchoredStart is set.
func leadingAnchor(node ast.PatternNode) (ast.PatternNode, bool) {
	switch n := node.(type) {
	case *ast.PatternAnchor:
		return &ast.PatternSequence{}, true
	case *ast.PatternSequence:
		if len(n.Elements) == 0 {
			return node, false
		}
		if _, ok := n.Elements[0].(*ast.PatternAnchor); ok {
			return &ast.PatternSequence{Elements: n.Elements[1:], Loc: n.Loc}, true
		}
	}
	return node, false
}

type compiler struct {
	prog *Program
}

func (c *compiler) emit(i Instr) int {
	c.prog.Instrs = append(c.prog.Instrs, i)
	return len(c.prog.Instrs) - 1
}

func (c *compiler) pc() int { return len(c.prog.Instrs) }

//nolint:gocyclo,cyclop // pattern-node dispatch is inherently a big switch
func (c *compiler) compileNode(node ast.PatternNode) error {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.PatternLiteral:
		for _, r := range n.Text {
			c.emit(Instr{Op: OpChar, Rune: r})
		}
		return nil
	case *ast.PatternCharClass:
		c.emit(Instr{Op: OpCharClass, Class: n.Class})
		return nil
	case *ast.PatternSequence:
		for _, el := range n.Elements {
			if err := c.compileNode(el); err != nil {
				return err
			}
		}
		return nil
	case *ast.PatternAlternation:
		return c.compileAlternation(n.Options)
	case *ast.PatternQuantifier:
		return c.compileQuantifier(n)
	case *ast.PatternCapture:
		return c.compileCapture(n)
	case *ast.PatternAnchor:
		// Reaching this case means the anchor wasn't the leading element
		// of its enclosing sequence (leadingAnchor already strips that
		// common case into Program.AnchoredStart). There's no bytecode
		// anchor instruction in the closed set, so treat a stray
		// mid-pattern anchor as a zero-width no-op rather than adding
		// one; authors are expected to only ever write it leading.
		return nil
	case *ast.PatternLookaround:
		return c.compileLookaround(n)
	default:
		return fmt.Errorf("pattern: unsupported node type %T", node)
	}
}

// compileAlternation emits a Split fan-out across every option, each
// followed by a Jump to the shared exit point.
func (c *compiler) compileAlternation(options []ast.PatternNode) error {
	if len(options) == 0 {
		return nil
	}
	if len(options) == 1 {
		return c.compileNode(options[0])
	}
	var jumpsToEnd []int
	for i, opt := range options {
		last := i == len(options)-1
		var splitIdx int
		if !last {
			splitIdx = c.emit(Instr{Op: OpSplit})
		}
		branchStart := c.pc()
		if err := c.compileNode(opt); err != nil {
			return err
		}
		if !last {
			jumpsToEnd = append(jumpsToEnd, c.emit(Instr{Op: OpJump}))
			nextBranch := c.pc()
			c.prog.Instrs[splitIdx].A = branchStart
			c.prog.Instrs[splitIdx].B = nextBranch
		}
	}
	end := c.pc()
	for _, idx := range jumpsToEnd {
		c.prog.Instrs[idx].A = end
	}
	return nil
}

//nolint:gocyclo,cyclop // quantifier-kind dispatch is inherently a big switch
func (c *compiler) compileQuantifier(q *ast.PatternQuantifier) error {
	switch q.Kind {
	case ast.QuantOptional:
		return c.compileOptional(q.Inner)
	case ast.QuantZeroOrMore:
		return c.compileStar(q.Inner)
	case ast.QuantOneOrMore:
		return c.compilePlus(q.Inner)
	case ast.QuantExactly:
		return c.compileRepeatExact(q.Inner, q.Min)
	case ast.QuantAtLeast:
		if err := c.compileRepeatExact(q.Inner, q.Min); err != nil {
			return err
		}
		return c.compileStar(q.Inner)
	case ast.QuantAtMost:
		return c.compileRepeatOptional(q.Inner, q.Max)
	case ast.QuantRange:
		if err := c.compileRepeatExact(q.Inner, q.Min); err != nil {
			return err
		}
		return c.compileRepeatOptional(q.Inner, q.Max-q.Min)
	default:
		return fmt.Errorf("pattern: unsupported quantifier kind %v", q.Kind)
	}
}

func (c *compiler) compileOptional(inner ast.PatternNode) error {
	splitIdx := c.emit(Instr{Op: OpSplit})
	branch := c.pc()
	if err := c.compileNode(inner); err != nil {
		return err
	}
	end := c.pc()
	c.prog.Instrs[splitIdx].A = branch
	c.prog.Instrs[splitIdx].B = end
	return nil
}

func (c *compiler) compileStar(inner ast.PatternNode) error {
	splitPc := c.pc()
	splitIdx := c.emit(Instr{Op: OpSplit})
	body := c.pc()
	if err := c.compileNode(inner); err != nil {
		return err
	}
	c.emit(Instr{Op: OpJump, A: splitPc})
	end := c.pc()
	c.prog.Instrs[splitIdx].A = body
	c.prog.Instrs[splitIdx].B = end
	return nil
}

func (c *compiler) compilePlus(inner ast.PatternNode) error {
	body := c.pc()
	if err := c.compileNode(inner); err != nil {
		return err
	}
	splitIdx := c.emit(Instr{Op: OpSplit})
	end := c.pc()
	c.prog.Instrs[splitIdx].A = body
	c.prog.Instrs[splitIdx].B = end
	return nil
}

func (c *compiler) compileRepeatExact(inner ast.PatternNode, n int) error {
	for i := 0; i < n; i++ {
		if err := c.compileNode(inner); err != nil {
			return err
		}
	}
	return nil
}

// compileRepeatOptional emits up to n further optional copies of inner,
// nested so each copy's presence doesn't require the ones after it.
func (c *compiler) compileRepeatOptional(inner ast.PatternNode, n int) error {
	if n <= 0 {
		return nil
	}
	var splits []int
	for i := 0; i < n; i++ {
		splits = append(splits, c.emit(Instr{Op: OpSplit}))
		branch := c.pc()
		c.prog.Instrs[splits[i]].A = branch
		if err := c.compileNode(inner); err != nil {
			return err
		}
	}
	end := c.pc()
	for _, idx := range splits {
		c.prog.Instrs[idx].B = end
	}
	return nil
}

func (c *compiler) compileCapture(cap *ast.PatternCapture) error {
	slot, ok := c.prog.CaptureNames[cap.Name]
	if !ok {
		slot = len(c.prog.CaptureNames)
		c.prog.CaptureNames[cap.Name] = slot
	}
	if slot+1 > c.prog.NumCaptures {
		c.prog.NumCaptures = slot + 1
	}
	c.emit(Instr{Op: OpSave, A: slot})
	c.emit(Instr{Op: OpStartCapture, A: slot})
	if err := c.compileNode(cap.Inner); err != nil {
		return err
	}
	c.emit(Instr{Op: OpEndCapture, A: slot})
	c.emit(Instr{Op: OpRestore, A: slot})
	return nil
}

func (c *compiler) compileLookaround(la *ast.PatternLookaround) error {
	sub, err := Compile(la.Inner)
	if err != nil {
		return err
	}
	negate := la.Kind == ast.LookaheadNegative || la.Kind == ast.LookbehindNegative
	behind := la.Kind == ast.LookbehindPositive || la.Kind == ast.LookbehindNegative
	c.emit(Instr{Op: OpLookaround, Negate: negate, Behind: behind, Sub: sub})
	return nil
}
