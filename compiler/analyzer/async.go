package analyzer

import "github.com/wfl-lang/wfl/compiler/ast"

// computeAsync walks every statement reachable from stmts, and for each
// ActionDefine it finds sets IsAsync according to whether that action's
// own body (not the bodies of actions nested inside it) suspends at a
// wait-for point.
func (a *Analyzer) computeAsync(stmts []ast.StmtNode) {
	for _, stmt := range stmts {
		if action, ok := stmt.(*ast.ActionDefine); ok {
			action.IsAsync = bodySuspends(action.Body)
		}
		for _, nested := range nestedBlocks(stmt) {
			a.computeAsync(nested)
		}
	}
}

// bodySuspends reports whether body contains a suspension point,
// without looking inside nested action definitions (those compute their
// own async-ness independently).
func bodySuspends(body []ast.StmtNode) bool {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.ActionDefine:
			continue
		case *ast.WaitFor, *ast.WaitForRequest, *ast.WaitForProcess:
			return true
		default:
			for _, nested := range nestedBlocks(s) {
				if bodySuspends(nested) {
					return true
				}
			}
		}
	}
	return false
}

// nestedBlocks returns every statement list directly owned by stmt, so
// both computeAsync and bodySuspends can recurse generically over the
// statement tree's shape.
func nestedBlocks(stmt ast.StmtNode) [][]ast.StmtNode {
	switch s := stmt.(type) {
	case *ast.If:
		return [][]ast.StmtNode{s.ThenBranch, s.ElseBranch}
	case *ast.CountLoop:
		return [][]ast.StmtNode{s.Body}
	case *ast.ForEachLoop:
		return [][]ast.StmtNode{s.Body}
	case *ast.WhileLoop:
		return [][]ast.StmtNode{s.Body}
	case *ast.UntilLoop:
		return [][]ast.StmtNode{s.Body}
	case *ast.ForeverLoop:
		return [][]ast.StmtNode{s.Body}
	case *ast.MainLoop:
		return [][]ast.StmtNode{s.Body}
	case *ast.ActionDefine:
		return [][]ast.StmtNode{s.Body}
	case *ast.TryBlock:
		blocks := [][]ast.StmtNode{s.Body, s.Catch, s.Finally}
		for _, when := range s.When {
			blocks = append(blocks, when.Body)
		}
		return blocks
	case *ast.SeqStmt:
		return [][]ast.StmtNode{s.Statements}
	case *ast.EventHandler:
		return [][]ast.StmtNode{s.Body}
	case *ast.ContainerDefine:
		blocks := make([][]ast.StmtNode, 0, len(s.Methods))
		for _, m := range s.Methods {
			blocks = append(blocks, m.Body)
		}
		return blocks
	default:
		return nil
	}
}
