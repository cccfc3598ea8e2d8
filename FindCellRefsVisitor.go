package main

import (
	"github.com/expr-lang/expr/ast"
)

// FindCellRefsVisitor collects identifier nodes from a formula AST. Call
// targets (function names such as min or sum) are recorded separately and
// excluded from the reference list.
type FindCellRefsVisitor struct {
	identifiers []string
	callees     map[string]bool
}

func (v *FindCellRefsVisitor) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		v.identifiers = append(v.identifiers, n.Value)

	case *ast.CallNode:
		if identifierNode, ok := n.Callee.(*ast.IdentifierNode); ok {
			if v.callees == nil {
				v.callees = map[string]bool{}
			}
			v.callees[identifierNode.Value] = true
		}
	}
}

// CellRefs returns the collected identifier names deduplicated in order of
// first appearance.
func (v *FindCellRefsVisitor) CellRefs() []string {
	refs := make([]string, 0, len(v.identifiers))
	seen := map[string]bool{}

	for _, name := range v.identifiers {
		if v.callees[name] || seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, name)
	}

	return refs
}
