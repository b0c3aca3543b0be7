package ast

import (
	"testing"

	"github.com/bpl-lang/bpl/token"
)

func TestWalk(t *testing.T) {
	// Build: যোগফল = ১ + ২
	program := &Program{
		Stmts: []Node{
			&Assign{
				Name: &Ident{
					NamePos: token.Position{Line: 0, Column: 0},
					Name:    "যোগফল",
				},
				OpPos: token.Position{Line: 0, Column: 6},
				Value: &Infix{
					X: &Int{
						ValuePos: token.Position{Line: 0, Column: 8},
						Literal:  "১",
						Value:    1,
					},
					OpPos: token.Position{Line: 0, Column: 10},
					Op:    "+",
					Y: &Int{
						ValuePos: token.Position{Line: 0, Column: 12},
						Literal:  "২",
						Value:    2,
					},
				},
			},
		},
	}

	var visited []string
	Inspect(program, func(n Node) bool {
		switch node := n.(type) {
		case *Program:
			visited = append(visited, "Program")
		case *Assign:
			visited = append(visited, "Assign")
		case *Ident:
			visited = append(visited, "Ident:"+node.Name)
		case *Infix:
			visited = append(visited, "Infix:"+node.Op)
		case *Int:
			visited = append(visited, "Int")
		}
		return true
	})

	expected := []string{"Program", "Assign", "Ident:যোগফল", "Infix:+", "Int", "Int"}
	if len(visited) != len(expected) {
		t.Errorf("expected %d nodes, got %d: %v", len(expected), len(visited), visited)
		return
	}
	for i, v := range expected {
		if visited[i] != v {
			t.Errorf("expected %q at index %d, got %q", v, i, visited[i])
		}
	}
}

func TestWalkFunc(t *testing.T) {
	fn := &Func{
		FuncPos: token.Position{Line: 0, Column: 0},
		Name: &Ident{
			NamePos: token.Position{Line: 0, Column: 7},
			Name:    "বর্গ",
		},
		Params: []*Ident{
			{NamePos: token.Position{Line: 0, Column: 12}, Name: "ন"},
		},
		Body: &Block{
			Colon: token.Position{Line: 0, Column: 14},
			Stmts: []Node{
				&Return{
					ReturnPos: token.Position{Line: 1, Column: 4},
					ReturnEnd: token.Position{Line: 1, Column: 8},
					Value: &Infix{
						X: &Ident{
							NamePos: token.Position{Line: 1, Column: 10},
							Name:    "ন",
						},
						OpPos: token.Position{Line: 1, Column: 12},
						Op:    "*",
						Y: &Ident{
							NamePos: token.Position{Line: 1, Column: 14},
							Name:    "ন",
						},
					},
				},
			},
		},
	}

	count := 0
	Inspect(fn, func(n Node) bool {
		count++
		return true
	})

	// Func, name, param, block, return, infix, two idents
	if count != 8 {
		t.Errorf("expected 8 nodes, got %d", count)
	}
}

func TestWalkPrune(t *testing.T) {
	stmt := &While{
		WhilePos: token.Position{Line: 0, Column: 0},
		Cond: &Bool{
			ValuePos: token.Position{Line: 0, Column: 4},
			ValueEnd: token.Position{Line: 0, Column: 7},
			Literal:  "সত্য",
			Value:    true,
		},
		Body: &Block{
			Colon: token.Position{Line: 0, Column: 8},
			Stmts: []Node{
				&Int{
					ValuePos: token.Position{Line: 1, Column: 4},
					Literal:  "১",
					Value:    1,
				},
			},
		},
	}

	// Returning false stops descent, so the block contents are skipped.
	var visited []string
	Inspect(stmt, func(n Node) bool {
		switch n.(type) {
		case *While:
			visited = append(visited, "While")
			return true
		case *Bool:
			visited = append(visited, "Bool")
			return true
		case *Block:
			visited = append(visited, "Block")
			return false
		default:
			visited = append(visited, "other")
			return true
		}
	})

	expected := []string{"While", "Bool", "Block"}
	if len(visited) != len(expected) {
		t.Errorf("expected %v, got %v", expected, visited)
	}
}
