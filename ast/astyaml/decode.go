// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package astyaml decodes syntax trees from YAML dumps produced by an external parser.
//
// Every node is a mapping with a `kind` key. Scalars are accepted as shorthand: an integer
// is an int literal, `_` is a wildcard pattern, a name starting with a quote is a type
// variable, and any other name is a variable, constructor or type constructor. Source
// positions are read from `line` and `col` keys, or taken from the YAML node itself.
//
//	decls:
//	  - kind: val
//	    pattern: {kind: record, flexible: true, fields: [{label: x}, {label: y}]}
//	    expr: record
package astyaml

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wdamron/elab/ast"
)

// DecodeFile reads and decodes a YAML program dump.
func DecodeFile(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	prog, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return prog, nil
}

// Decode decodes a program from a YAML document. The document is either a sequence of
// declarations or a mapping with a `decls` sequence.
func Decode(data []byte) (*ast.Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &ast.Program{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind == yaml.MappingNode {
		root = field(root, "decls")
		if root == nil {
			return &ast.Program{}, nil
		}
	}
	decls, err := decodeDecls(root)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Decls: decls}, nil
}

// DecodeExpr decodes a single expression from a YAML document.
func DecodeExpr(data []byte) (ast.Expr, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return decodeExpr(doc.Content[0])
}

type nodeError struct {
	node *yaml.Node
	msg  string
}

func (e *nodeError) Error() string {
	return "line " + strconv.Itoa(e.node.Line) + ", column " + strconv.Itoa(e.node.Column) + ": " + e.msg
}

func errorf(n *yaml.Node, format string, args ...any) error {
	return &nodeError{node: n, msg: fmt.Sprintf(format, args...)}
}

func field(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func kind(n *yaml.Node) (string, error) {
	k := field(n, "kind")
	if k == nil || k.Kind != yaml.ScalarNode {
		return "", errorf(n, "node has no kind")
	}
	return k.Value, nil
}

func str(n *yaml.Node, key string) (string, error) {
	v := field(n, key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return "", errorf(n, "missing %s", key)
	}
	return v.Value, nil
}

func optStr(n *yaml.Node, key string) string {
	if v := field(n, key); v != nil && v.Kind == yaml.ScalarNode {
		return v.Value
	}
	return ""
}

func flag(n *yaml.Node, key string) bool {
	v := field(n, key)
	if v == nil {
		return false
	}
	var b bool
	return v.Decode(&b) == nil && b
}

func seq(n *yaml.Node, key string) []*yaml.Node {
	v := field(n, key)
	if v == nil {
		return nil
	}
	if v.Kind == yaml.SequenceNode {
		return v.Content
	}
	return []*yaml.Node{v}
}

func strs(n *yaml.Node, key string) []string {
	var out []string
	for _, v := range seq(n, key) {
		out = append(out, v.Value)
	}
	return out
}

func span(n *yaml.Node) ast.Span {
	pos := ast.Pos{Line: n.Line, Col: n.Column}
	if line := field(n, "line"); line != nil {
		pos.Line, _ = strconv.Atoi(line.Value)
		pos.Col = 1
	}
	if col := field(n, "col"); col != nil {
		pos.Col, _ = strconv.Atoi(col.Value)
	}
	return ast.Span{Start: pos, End: pos}
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func decodeDecls(n *yaml.Node) ([]ast.Decl, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "expected a sequence of declarations")
	}
	decls := make([]ast.Decl, 0, len(n.Content))
	for _, item := range n.Content {
		d, err := decodeDecl(item)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func decodeDecl(n *yaml.Node) (ast.Decl, error) {
	k, err := kind(n)
	if err != nil {
		return nil, err
	}
	sp := span(n)
	switch k {
	case "val":
		p, err := decodePattern(field(n, "pattern"), n)
		if err != nil {
			return nil, err
		}
		e, err := decodeExprField(n, "expr")
		if err != nil {
			return nil, err
		}
		return &ast.Val{Span: sp, Rec: flag(n, "rec"), Pattern: p, Expr: e}, nil

	case "fun":
		d := &ast.Fun{Span: sp}
		for _, b := range seq(n, "bindings") {
			name, err := str(b, "name")
			if err != nil {
				return nil, err
			}
			fb := ast.FunBinding{Span: span(b), Name: name}
			for _, c := range seq(b, "clauses") {
				clause := ast.FunClause{Span: span(c)}
				for _, p := range seq(c, "params") {
					param, err := decodePattern(p, c)
					if err != nil {
						return nil, err
					}
					clause.Params = append(clause.Params, param)
				}
				if r := field(c, "result"); r != nil {
					if clause.Result, err = decodeType(r); err != nil {
						return nil, err
					}
				}
				if clause.Body, err = decodeExprField(c, "body"); err != nil {
					return nil, err
				}
				fb.Clauses = append(fb.Clauses, clause)
			}
			d.Bindings = append(d.Bindings, fb)
		}
		return d, nil

	case "datatype":
		d := &ast.Datatype{Span: sp}
		for _, b := range seq(n, "bindings") {
			name, err := str(b, "name")
			if err != nil {
				return nil, err
			}
			cons, err := decodeConBindings(seq(b, "constructors"))
			if err != nil {
				return nil, err
			}
			d.Bindings = append(d.Bindings, ast.DatatypeBinding{Span: span(b), Params: strs(b, "params"), Name: name, Constructors: cons})
		}
		return d, nil

	case "type":
		name, err := str(n, "name")
		if err != nil {
			return nil, err
		}
		t := field(n, "type")
		if t == nil {
			return nil, errorf(n, "missing type")
		}
		body, err := decodeType(t)
		if err != nil {
			return nil, err
		}
		return &ast.TypeAlias{Span: sp, Params: strs(n, "params"), Name: name, Type: body}, nil

	case "exception":
		cons, err := decodeConBindings(seq(n, "constructors"))
		if err != nil {
			return nil, err
		}
		return &ast.Exception{Span: sp, Bindings: cons}, nil

	case "local":
		d := &ast.Local{Span: sp}
		if v := field(n, "decls"); v != nil {
			if d.Decls, err = decodeDecls(v); err != nil {
				return nil, err
			}
		}
		if v := field(n, "body"); v != nil {
			if d.Body, err = decodeDecls(v); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return nil, errorf(n, "unknown declaration kind %q", k)
}

func decodeConBindings(nodes []*yaml.Node) ([]ast.ConBinding, error) {
	cons := make([]ast.ConBinding, 0, len(nodes))
	for _, c := range nodes {
		if c.Kind == yaml.ScalarNode {
			cons = append(cons, ast.ConBinding{Span: span(c), Name: c.Value})
			continue
		}
		name, err := str(c, "name")
		if err != nil {
			return nil, err
		}
		con := ast.ConBinding{Span: span(c), Name: name}
		if arg := field(c, "arg"); arg != nil {
			if con.Arg, err = decodeType(arg); err != nil {
				return nil, err
			}
		}
		cons = append(cons, con)
	}
	return cons, nil
}

func decodeExprField(n *yaml.Node, key string) (ast.Expr, error) {
	v := field(n, key)
	if v == nil {
		return nil, errorf(n, "missing %s", key)
	}
	return decodeExpr(v)
}

func decodeExprs(nodes []*yaml.Node) ([]ast.Expr, error) {
	exprs := make([]ast.Expr, 0, len(nodes))
	for _, item := range nodes {
		e, err := decodeExpr(item)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

func decodeRules(nodes []*yaml.Node) ([]ast.Rule, error) {
	rules := make([]ast.Rule, 0, len(nodes))
	for _, r := range nodes {
		p, err := decodePattern(field(r, "pattern"), r)
		if err != nil {
			return nil, err
		}
		rule := ast.Rule{Span: span(r), Pattern: p}
		if g := field(r, "guard"); g != nil {
			if rule.Guard, err = decodeExpr(g); err != nil {
				return nil, err
			}
		}
		if rule.Body, err = decodeExprField(r, "body"); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func decodeExpr(n *yaml.Node) (ast.Expr, error) {
	sp := span(n)
	if n.Kind == yaml.ScalarNode {
		if isInt(n.Value) {
			return &ast.Literal{Span: sp, Kind: ast.IntLit, Value: n.Value}, nil
		}
		return &ast.Var{Span: sp, Name: n.Value}, nil
	}
	k, err := kind(n)
	if err != nil {
		return nil, err
	}
	switch k {
	case "int", "real", "string", "char":
		lit := &ast.Literal{Span: sp, Value: optStr(n, "value")}
		switch k {
		case "int":
			lit.Kind = ast.IntLit
		case "real":
			lit.Kind = ast.RealLit
		case "string":
			lit.Kind = ast.StringLit
		case "char":
			lit.Kind = ast.CharLit
		}
		return lit, nil

	case "var":
		name, err := str(n, "name")
		if err != nil {
			return nil, err
		}
		return &ast.Var{Span: sp, Name: name}, nil

	case "app":
		f, err := decodeExprField(n, "func")
		if err != nil {
			return nil, err
		}
		args := seq(n, "args")
		if arg := field(n, "arg"); arg != nil {
			args = []*yaml.Node{arg}
		}
		if len(args) == 0 {
			return nil, errorf(n, "application has no argument")
		}
		for _, a := range args {
			arg, err := decodeExpr(a)
			if err != nil {
				return nil, err
			}
			f = &ast.App{Span: sp, Func: f, Arg: arg}
		}
		return f, nil

	case "fn":
		rules, err := decodeRules(seq(n, "rules"))
		if err != nil {
			return nil, err
		}
		return &ast.Fn{Span: sp, Rules: rules}, nil

	case "case":
		e, err := decodeExprField(n, "expr")
		if err != nil {
			return nil, err
		}
		rules, err := decodeRules(seq(n, "rules"))
		if err != nil {
			return nil, err
		}
		return &ast.Case{Span: sp, Scrutinee: e, Rules: rules}, nil

	case "let":
		var decls []ast.Decl
		if v := field(n, "decls"); v != nil {
			if decls, err = decodeDecls(v); err != nil {
				return nil, err
			}
		}
		body, err := decodeExprField(n, "body")
		if err != nil {
			return nil, err
		}
		return &ast.Let{Span: sp, Decls: decls, Body: body}, nil

	case "tuple", "unit":
		elems, err := decodeExprs(seq(n, "elems"))
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{Span: sp, Elems: elems}, nil

	case "record":
		rec := &ast.Record{Span: sp}
		for _, f := range seq(n, "fields") {
			label, err := str(f, "label")
			if err != nil {
				return nil, err
			}
			v, err := decodeExprField(f, "value")
			if err != nil {
				return nil, err
			}
			rec.Fields = append(rec.Fields, ast.Field{Label: label, Value: v})
		}
		return rec, nil

	case "select":
		label, err := str(n, "label")
		if err != nil {
			return nil, err
		}
		return &ast.Selector{Span: sp, Label: label}, nil

	case "list":
		elems, err := decodeExprs(seq(n, "elems"))
		if err != nil {
			return nil, err
		}
		return &ast.List{Span: sp, Elems: elems}, nil

	case "seq":
		exprs, err := decodeExprs(seq(n, "exprs"))
		if err != nil {
			return nil, err
		}
		return &ast.Seq{Span: sp, Exprs: exprs}, nil

	case "if":
		cond, err := decodeExprField(n, "cond")
		if err != nil {
			return nil, err
		}
		then, err := decodeExprField(n, "then")
		if err != nil {
			return nil, err
		}
		els, err := decodeExprField(n, "else")
		if err != nil {
			return nil, err
		}
		return &ast.If{Span: sp, Cond: cond, Then: then, Else: els}, nil

	case "andalso", "orelse":
		left, err := decodeExprField(n, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExprField(n, "right")
		if err != nil {
			return nil, err
		}
		if k == "andalso" {
			return &ast.Andalso{Span: sp, Left: left, Right: right}, nil
		}
		return &ast.Orelse{Span: sp, Left: left, Right: right}, nil

	case "raise":
		e, err := decodeExprField(n, "expr")
		if err != nil {
			return nil, err
		}
		return &ast.Raise{Span: sp, Expr: e}, nil

	case "handle":
		e, err := decodeExprField(n, "expr")
		if err != nil {
			return nil, err
		}
		rules, err := decodeRules(seq(n, "rules"))
		if err != nil {
			return nil, err
		}
		return &ast.Handle{Span: sp, Expr: e, Rules: rules}, nil

	case "annot":
		e, err := decodeExprField(n, "expr")
		if err != nil {
			return nil, err
		}
		t := field(n, "type")
		if t == nil {
			return nil, errorf(n, "missing type")
		}
		ty, err := decodeType(t)
		if err != nil {
			return nil, err
		}
		return &ast.Constraint{Span: sp, Expr: e, Type: ty}, nil
	}
	return nil, errorf(n, "unknown expression kind %q", k)
}

// parent is used for error positions when n is missing
func decodePattern(n, parent *yaml.Node) (ast.Pattern, error) {
	if n == nil {
		return nil, errorf(parent, "missing pattern")
	}
	sp := span(n)
	if n.Kind == yaml.ScalarNode {
		switch {
		case n.Value == "_":
			return &ast.Wildcard{Span: sp}, nil
		case isInt(n.Value):
			return &ast.PatLiteral{Span: sp, Kind: ast.IntLit, Value: n.Value}, nil
		}
		return &ast.PatVar{Span: sp, Name: n.Value}, nil
	}
	k, err := kind(n)
	if err != nil {
		return nil, err
	}
	switch k {
	case "wild":
		return &ast.Wildcard{Span: sp}, nil

	case "var":
		name, err := str(n, "name")
		if err != nil {
			return nil, err
		}
		return &ast.PatVar{Span: sp, Name: name}, nil

	case "int", "string", "char":
		lit := &ast.PatLiteral{Span: sp, Kind: ast.IntLit, Value: optStr(n, "value")}
		switch k {
		case "string":
			lit.Kind = ast.StringLit
		case "char":
			lit.Kind = ast.CharLit
		}
		return lit, nil

	case "con":
		name, err := str(n, "name")
		if err != nil {
			return nil, err
		}
		p := &ast.PatCon{Span: sp, Name: name}
		if arg := field(n, "arg"); arg != nil {
			if p.Arg, err = decodePattern(arg, n); err != nil {
				return nil, err
			}
		}
		return p, nil

	case "tuple", "unit", "list":
		var elems []ast.Pattern
		for _, e := range seq(n, "elems") {
			p, err := decodePattern(e, n)
			if err != nil {
				return nil, err
			}
			elems = append(elems, p)
		}
		if k == "list" {
			return &ast.PatList{Span: sp, Elems: elems}, nil
		}
		return &ast.PatTuple{Span: sp, Elems: elems}, nil

	case "record":
		rec := &ast.PatRecord{Span: sp, Flexible: flag(n, "flexible")}
		for _, f := range seq(n, "fields") {
			label, err := str(f, "label")
			if err != nil {
				return nil, err
			}
			var p ast.Pattern = &ast.PatVar{Span: span(f), Name: label}
			if v := field(f, "pattern"); v != nil {
				if p, err = decodePattern(v, f); err != nil {
					return nil, err
				}
			}
			rec.Fields = append(rec.Fields, ast.PatField{Label: label, Pattern: p})
		}
		return rec, nil

	case "as":
		name, err := str(n, "name")
		if err != nil {
			return nil, err
		}
		p, err := decodePattern(field(n, "pattern"), n)
		if err != nil {
			return nil, err
		}
		return &ast.PatAs{Span: sp, Name: name, Pattern: p}, nil

	case "annot":
		p, err := decodePattern(field(n, "pattern"), n)
		if err != nil {
			return nil, err
		}
		t := field(n, "type")
		if t == nil {
			return nil, errorf(n, "missing type")
		}
		ty, err := decodeType(t)
		if err != nil {
			return nil, err
		}
		return &ast.PatConstraint{Span: sp, Pattern: p, Type: ty}, nil
	}
	return nil, errorf(n, "unknown pattern kind %q", k)
}

func decodeTypes(nodes []*yaml.Node) ([]ast.TypeExpr, error) {
	var ts []ast.TypeExpr
	for _, item := range nodes {
		t, err := decodeType(item)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

func decodeType(n *yaml.Node) (ast.TypeExpr, error) {
	sp := span(n)
	if n.Kind == yaml.ScalarNode {
		if len(n.Value) > 0 && n.Value[0] == '\'' {
			return &ast.TyVar{Span: sp, Name: n.Value}, nil
		}
		return &ast.TyCon{Span: sp, Name: n.Value}, nil
	}
	k, err := kind(n)
	if err != nil {
		return nil, err
	}
	switch k {
	case "var":
		name, err := str(n, "name")
		if err != nil {
			return nil, err
		}
		return &ast.TyVar{Span: sp, Name: name}, nil

	case "con":
		name, err := str(n, "name")
		if err != nil {
			return nil, err
		}
		args, err := decodeTypes(seq(n, "args"))
		if err != nil {
			return nil, err
		}
		return &ast.TyCon{Span: sp, Name: name, Args: args}, nil

	case "arrow":
		arg := field(n, "arg")
		ret := field(n, "return")
		if arg == nil || ret == nil {
			return nil, errorf(n, "arrow type requires arg and return")
		}
		a, err := decodeType(arg)
		if err != nil {
			return nil, err
		}
		r, err := decodeType(ret)
		if err != nil {
			return nil, err
		}
		return &ast.TyArrow{Span: sp, Arg: a, Return: r}, nil

	case "tuple":
		elems, err := decodeTypes(seq(n, "elems"))
		if err != nil {
			return nil, err
		}
		return &ast.TyTuple{Span: sp, Elems: elems}, nil

	case "record":
		rec := &ast.TyRecord{Span: sp}
		for _, f := range seq(n, "fields") {
			label, err := str(f, "label")
			if err != nil {
				return nil, err
			}
			t := field(f, "type")
			if t == nil {
				return nil, errorf(f, "missing type")
			}
			ty, err := decodeType(t)
			if err != nil {
				return nil, err
			}
			rec.Fields = append(rec.Fields, ast.TyField{Label: label, Type: ty})
		}
		return rec, nil
	}
	return nil, errorf(n, "unknown type kind %q", k)
}
