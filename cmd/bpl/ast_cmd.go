package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/bpl-lang/bpl"
	"github.com/bpl-lang/bpl/ast"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the syntax tree of a program",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, filename, err := getCode(cmd, args)
		if err != nil {
			return err
		}
		program, err := bpl.Parse(context.Background(), code, bpl.WithFilename(filename))
		if err != nil {
			return err
		}
		if format, _ := cmd.Flags().GetString("output"); format == "json" {
			return printASTJSON(program)
		}
		printAST(program)
		return nil
	},
}

func init() {
	astCmd.Flags().String("output", "", "output format (json)")
}

// ASTNode is the JSON form of a syntax tree node.
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

func printASTJSON(program *ast.Program) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(nodeToJSON(program))
}

func nodeToJSON(node ast.Node) *ASTNode {
	if node == nil {
		return nil
	}
	result := &ASTNode{Type: nodeTypeName(node)}

	switch n := node.(type) {
	case *ast.Program:
		for _, stmt := range n.Stmts {
			result.Children = append(result.Children, nodeToJSON(stmt))
		}

	case *ast.Ident:
		result.Value = n.Name

	case *ast.Int:
		result.Value = n.Value

	case *ast.Float:
		result.Value = n.Value

	case *ast.Bool:
		result.Value = n.Value

	case *ast.String:
		result.Value = n.Value

	case *ast.Nil:
		result.Value = nil

	case *ast.Assign:
		result.Value = n.Name.Name
		result.Children = append(result.Children, nodeToJSON(n.Value))

	case *ast.Prefix:
		result.Value = n.Op
		result.Children = append(result.Children, nodeToJSON(n.X))

	case *ast.Infix:
		result.Value = n.Op
		result.Children = append(result.Children, nodeToJSON(n.X), nodeToJSON(n.Y))

	case *ast.Call:
		result.Value = n.Fun.Name
		for _, arg := range n.Args {
			result.Children = append(result.Children, nodeToJSON(arg))
		}

	case *ast.Func:
		result.Value = n.Name.Name
		params := &ASTNode{Type: "Params"}
		for _, p := range n.Params {
			params.Children = append(params.Children, nodeToJSON(p))
		}
		result.Children = append(result.Children, params, nodeToJSON(n.Body))

	case *ast.If:
		result.Children = append(result.Children, &ASTNode{
			Type:     "Condition",
			Children: []*ASTNode{nodeToJSON(n.Cond)},
		})
		result.Children = append(result.Children, &ASTNode{
			Type:     "Then",
			Children: []*ASTNode{nodeToJSON(n.Body)},
		})
		if n.Else != nil {
			result.Children = append(result.Children, &ASTNode{
				Type:     "Else",
				Children: []*ASTNode{nodeToJSON(n.Else)},
			})
		}

	case *ast.While:
		result.Children = append(result.Children, &ASTNode{
			Type:     "Condition",
			Children: []*ASTNode{nodeToJSON(n.Cond)},
		})
		result.Children = append(result.Children, &ASTNode{
			Type:     "Body",
			Children: []*ASTNode{nodeToJSON(n.Body)},
		})

	case *ast.Return:
		if n.Value != nil {
			result.Children = append(result.Children, nodeToJSON(n.Value))
		}

	case *ast.Block:
		for _, stmt := range n.Stmts {
			result.Children = append(result.Children, nodeToJSON(stmt))
		}
	}

	return result
}

func nodeTypeName(node ast.Node) string {
	return reflect.TypeOf(node).Elem().Name()
}

// Color styles for the tree display.
var (
	astNodeColor    = color.New(color.FgHiBlue, color.Bold)
	astFieldColor   = color.New(color.FgMagenta)
	astValueColor   = color.New(color.FgGreen)
	astLiteralColor = color.New(color.FgYellow)
	astMutedColor   = color.New(color.FgHiBlack)
)

func printAST(program *ast.Program) {
	fmt.Println(astNodeColor.Sprint("Program"))
	for i, stmt := range program.Stmts {
		printNode(stmt, "  ", i == len(program.Stmts)-1)
	}
}

func printNode(node ast.Node, indent string, isLast bool) {
	if node == nil {
		return
	}

	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}
	prefix := astMutedColor.Sprint(indent+connector) + astNodeColor.Sprint(nodeTypeName(node))

	switch n := node.(type) {
	case *ast.Ident:
		fmt.Printf("%s %s\n", prefix, astLiteralColor.Sprintf("%q", n.Name))

	case *ast.Int:
		fmt.Printf("%s %s\n", prefix, astLiteralColor.Sprint(n.Literal))

	case *ast.Float:
		fmt.Printf("%s %s\n", prefix, astLiteralColor.Sprint(n.Literal))

	case *ast.Bool:
		fmt.Printf("%s %s\n", prefix, astLiteralColor.Sprint(n.Literal))

	case *ast.String:
		val := n.Value
		if runes := []rune(val); len(runes) > 30 {
			val = string(runes[:27]) + "..."
		}
		fmt.Printf("%s %s\n", prefix, astLiteralColor.Sprintf("%q", val))

	case *ast.Nil:
		fmt.Println(prefix)

	case *ast.Assign:
		fmt.Printf("%s %s\n", prefix, astValueColor.Sprint(n.Name.Name))
		printNode(n.Value, childIndent, true)

	case *ast.Prefix:
		fmt.Printf("%s %s\n", prefix, astFieldColor.Sprint(n.Op))
		printNode(n.X, childIndent, true)

	case *ast.Infix:
		fmt.Printf("%s %s\n", prefix, astFieldColor.Sprint(n.Op))
		printNode(n.X, childIndent, false)
		printNode(n.Y, childIndent, true)

	case *ast.Call:
		fmt.Printf("%s %s\n", prefix, astValueColor.Sprint(n.Fun.Name))
		for i, arg := range n.Args {
			printNode(arg, childIndent, i == len(n.Args)-1)
		}

	case *ast.Func:
		params := make([]string, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, p.Name)
		}
		sig := fmt.Sprintf("%s(%s)", n.Name.Name, strings.Join(params, ", "))
		fmt.Printf("%s %s\n", prefix, astValueColor.Sprint(sig))
		printNode(n.Body, childIndent, true)

	case *ast.If:
		fmt.Println(prefix)
		printBranch(childIndent, "condition", n.Cond, false)
		printBranch(childIndent, "then", n.Body, n.Else == nil)
		if n.Else != nil {
			printBranch(childIndent, "else", n.Else, true)
		}

	case *ast.While:
		fmt.Println(prefix)
		printBranch(childIndent, "condition", n.Cond, false)
		printBranch(childIndent, "body", n.Body, true)

	case *ast.Return:
		fmt.Println(prefix)
		if n.Value != nil {
			printNode(n.Value, childIndent, true)
		}

	case *ast.Block:
		fmt.Printf("%s %s\n", prefix, astMutedColor.Sprintf("(%d stmts)", len(n.Stmts)))
		for i, stmt := range n.Stmts {
			printNode(stmt, childIndent, i == len(n.Stmts)-1)
		}

	default:
		fmt.Println(prefix)
	}
}

// printBranch prints a labeled child such as an if condition or loop body.
func printBranch(indent string, label string, node ast.Node, isLast bool) {
	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}
	fmt.Printf("%s%s\n", astMutedColor.Sprint(indent+connector), astFieldColor.Sprint(label))
	printNode(node, childIndent, true)
}
