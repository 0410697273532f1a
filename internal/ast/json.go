package ast

import (
	"encoding/json"
	"fmt"
)

// Reparser re-lexes and re-parses an embedded source fragment. Actual
// lexing/parsing is an external collaborator (spec.md §1); this interface
// is the seam DecodeProgram uses when a JSON AST document contains a
// `{source, file?}` fragment node instead of a fully structured sub-tree.
type Reparser interface {
	ReparseExpr(source string, file string) (Expr, error)
}

// ErrNeedsReparser is returned by DecodeProgram when it encounters a
// fragment node and no Reparser was supplied.
type ErrNeedsReparser struct {
	Source string
	File   string
}

func (e *ErrNeedsReparser) Error() string {
	return fmt.Sprintf("ast: fragment node requires a reparser (file=%q)", e.File)
}

// jsonNode is the generic wire shape every node (or fragment) decodes into
// before kind-specific decoding: `{kind, span?, source?, file?, ...fields}`.
type jsonNode = map[string]any

type decoder struct {
	files    []*File
	fileIdx  map[string]int
	reparser Reparser
}

// DecodeProgram parses the JSON AST document described in spec.md §6 into
// a *Program with stable node IDs already assigned. reparser may be nil;
// it is only consulted if the document contains a reparse-fragment node.
func DecodeProgram(data []byte, reparser Reparser) (*Program, error) {
	var raw struct {
		Decls []jsonNode `json:"decls"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: invalid JSON AST document: %w", err)
	}
	d := &decoder{fileIdx: map[string]int{}, reparser: reparser}
	decls := make([]Decl, 0, len(raw.Decls))
	for _, dn := range raw.Decls {
		decl, err := d.decodeDecl(dn)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	prog := &Program{Files: d.files, Decls: decls}
	AssignIDs(prog)
	return prog, nil
}

func (d *decoder) fileIndex(path string) int {
	if path == "" {
		return 0
	}
	if i, ok := d.fileIdx[path]; ok {
		return i
	}
	i := len(d.files)
	d.files = append(d.files, &File{Path: path})
	d.fileIdx[path] = i
	return i
}

func (d *decoder) decodeSpan(n jsonNode) Span {
	sp, _ := n["span"].(jsonNode)
	if sp == nil {
		return Span{}
	}
	file, _ := sp["file"].(string)
	start := decodePos(sp["start"])
	end := decodePos(sp["end"])
	return Span{File: d.fileIndex(file), Start: start, End: end}
}

func decodePos(v any) Pos {
	m, ok := v.(jsonNode)
	if !ok {
		return Pos{}
	}
	p := Pos{}
	if f, ok := m["line"].(float64); ok {
		p.Line = int(f)
	}
	if f, ok := m["col"].(float64); ok {
		p.Column = int(f)
	}
	if f, ok := m["offset"].(float64); ok {
		p.Offset = int(f)
	}
	return p
}

func kindOf(n jsonNode) string {
	k, _ := n["kind"].(string)
	return k
}

// isFragment reports whether n is a `{source, file?}` reparse fragment
// rather than a structured node.
func isFragment(n jsonNode) bool {
	_, hasSource := n["source"]
	_, hasKind := n["kind"]
	return hasSource && !hasKind
}

func (d *decoder) decodeExpr(n jsonNode) (Expr, error) {
	if isFragment(n) {
		source, _ := n["source"].(string)
		file, _ := n["file"].(string)
		if d.reparser == nil {
			return nil, &ErrNeedsReparser{Source: source, File: file}
		}
		return d.reparser.ReparseExpr(source, file)
	}
	span := d.decodeSpan(n)
	switch kindOf(n) {
	case "Literal":
		return d.decodeLiteral(n, span)
	case "Ident":
		name, _ := n["name"].(string)
		return &Ident{base: base{span: span}, Name: name}, nil
	case "Binary":
		left, err := d.decodeExprField(n, "left")
		if err != nil {
			return nil, err
		}
		right, err := d.decodeExprField(n, "right")
		if err != nil {
			return nil, err
		}
		op, _ := n["op"].(string)
		return &Binary{base: base{span: span}, Op: op, Left: left, Right: right}, nil
	case "Unary":
		operand, err := d.decodeExprField(n, "operand")
		if err != nil {
			return nil, err
		}
		op, _ := n["op"].(string)
		return &Unary{base: base{span: span}, Op: op, Operand: operand}, nil
	case "Call":
		callee, err := d.decodeExprField(n, "callee")
		if err != nil {
			return nil, err
		}
		args, err := d.decodeExprList(n, "args")
		if err != nil {
			return nil, err
		}
		return &Call{base: base{span: span}, Callee: callee, Args: args}, nil
	case "Lambda":
		params, err := d.decodeParams(n)
		if err != nil {
			return nil, err
		}
		body, err := d.decodeExprField(n, "body")
		if err != nil {
			return nil, err
		}
		return &Lambda{base: base{span: span}, Params: params, Body: body}, nil
	case "If":
		cond, err := d.decodeExprField(n, "cond")
		if err != nil {
			return nil, err
		}
		then, err := d.decodeExprField(n, "then")
		if err != nil {
			return nil, err
		}
		var elseExpr Expr
		if raw, ok := n["else"]; ok && raw != nil {
			elseExpr, err = d.decodeExpr(raw.(jsonNode))
			if err != nil {
				return nil, err
			}
		}
		return &If{base: base{span: span}, Cond: cond, Then: then, Else: elseExpr}, nil
	case "Match":
		scrutinee, err := d.decodeExprField(n, "scrutinee")
		if err != nil {
			return nil, err
		}
		rawArms, _ := n["arms"].([]any)
		arms := make([]MatchArm, 0, len(rawArms))
		for _, ra := range rawArms {
			am := ra.(jsonNode)
			pat, err := d.decodePattern(am["pattern"].(jsonNode))
			if err != nil {
				return nil, err
			}
			var guard Expr
			if g, ok := am["guard"]; ok && g != nil {
				guard, err = d.decodeExpr(g.(jsonNode))
				if err != nil {
					return nil, err
				}
			}
			body, err := d.decodeExpr(am["body"].(jsonNode))
			if err != nil {
				return nil, err
			}
			arms = append(arms, MatchArm{Pattern: pat, Guard: guard, Body: body})
		}
		return &Match{base: base{span: span}, Scrutinee: scrutinee, Arms: arms}, nil
	case "Block":
		rawStmts, _ := n["stmts"].([]any)
		stmts := make([]Stmt, 0, len(rawStmts))
		for _, rs := range rawStmts {
			s, err := d.decodeStmt(rs.(jsonNode))
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
		}
		var tail Expr
		if t, ok := n["tail"]; ok && t != nil {
			var err error
			tail, err = d.decodeExpr(t.(jsonNode))
			if err != nil {
				return nil, err
			}
		}
		return &Block{base: base{span: span}, Stmts: stmts, Tail: tail}, nil
	case "ArrayLit":
		elems, err := d.decodeExprList(n, "elements")
		if err != nil {
			return nil, err
		}
		return &ArrayLit{base: base{span: span}, Elements: elems}, nil
	case "TupleLit":
		elems, err := d.decodeExprList(n, "elements")
		if err != nil {
			return nil, err
		}
		return &TupleLit{base: base{span: span}, Elements: elems}, nil
	case "RecordLit":
		rawFields, _ := n["fields"].([]any)
		fields := make([]RecordFieldInit, 0, len(rawFields))
		for _, rf := range rawFields {
			fm := rf.(jsonNode)
			name, _ := fm["name"].(string)
			val, err := d.decodeExpr(fm["value"].(jsonNode))
			if err != nil {
				return nil, err
			}
			fields = append(fields, RecordFieldInit{Name: name, Value: val})
		}
		return &RecordLit{base: base{span: span}, Fields: fields}, nil
	case "Index":
		target, err := d.decodeExprField(n, "target")
		if err != nil {
			return nil, err
		}
		idx, err := d.decodeExprField(n, "index")
		if err != nil {
			return nil, err
		}
		return &Index{base: base{span: span}, Target: target, Idx: idx}, nil
	case "Field":
		target, err := d.decodeExprField(n, "target")
		if err != nil {
			return nil, err
		}
		name, _ := n["name"].(string)
		return &Field{base: base{span: span}, Target: target, Name: name}, nil
	case "Propagate":
		operand, err := d.decodeExprField(n, "operand")
		if err != nil {
			return nil, err
		}
		return &Propagate{base: base{span: span}, Operand: operand}, nil
	case "Range":
		start, err := d.decodeExprField(n, "start")
		if err != nil {
			return nil, err
		}
		end, err := d.decodeExprField(n, "end")
		if err != nil {
			return nil, err
		}
		return &Range{base: base{span: span}, Start: start, End: end}, nil
	case "Pipe":
		left, err := d.decodeExprField(n, "left")
		if err != nil {
			return nil, err
		}
		right, err := d.decodeExprField(n, "right")
		if err != nil {
			return nil, err
		}
		return &Pipe{base: base{span: span}, Left: left, Right: right}, nil
	default:
		return nil, fmt.Errorf("ast: unknown expression kind %q", kindOf(n))
	}
}

func (d *decoder) decodeLiteral(n jsonNode, span Span) (*Literal, error) {
	kindStr, _ := n["litKind"].(string)
	lit := &Literal{base: base{span: span}}
	switch kindStr {
	case "int":
		lit.LKind = IntLit
		lit.IntValue, _ = n["value"].(string)
		lit.IntSuffix, _ = n["suffix"].(string)
	case "float":
		lit.LKind = FloatLit
		if f, ok := n["value"].(float64); ok {
			lit.FloatVal = f
		}
	case "string":
		lit.LKind = StringLit
		lit.StringVal, _ = n["value"].(string)
	case "bool":
		lit.LKind = BoolLit
		lit.BoolVal, _ = n["value"].(bool)
	case "unit":
		lit.LKind = UnitLit
	default:
		return nil, fmt.Errorf("ast: unknown literal kind %q", kindStr)
	}
	return lit, nil
}

func (d *decoder) decodeExprField(n jsonNode, field string) (Expr, error) {
	raw, ok := n[field]
	if !ok || raw == nil {
		return nil, fmt.Errorf("ast: %s node missing field %q", kindOf(n), field)
	}
	return d.decodeExpr(raw.(jsonNode))
}

func (d *decoder) decodeExprList(n jsonNode, field string) ([]Expr, error) {
	raw, _ := n[field].([]any)
	out := make([]Expr, 0, len(raw))
	for _, r := range raw {
		e, err := d.decodeExpr(r.(jsonNode))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (d *decoder) decodeParams(n jsonNode) ([]*Param, error) {
	raw, _ := n["params"].([]any)
	out := make([]*Param, 0, len(raw))
	for _, r := range raw {
		pm := r.(jsonNode)
		span := d.decodeSpan(pm)
		name, _ := pm["name"].(string)
		var typ TypeExpr
		if t, ok := pm["type"]; ok && t != nil {
			var err error
			typ, err = d.decodeTypeExpr(t.(jsonNode))
			if err != nil {
				return nil, err
			}
		}
		out = append(out, &Param{base: base{span: span}, Name: name, Type: typ})
	}
	return out, nil
}

func (d *decoder) decodeStmt(n jsonNode) (Stmt, error) {
	span := d.decodeSpan(n)
	switch kindOf(n) {
	case "LetStmt":
		pat, err := d.decodePattern(n["pattern"].(jsonNode))
		if err != nil {
			return nil, err
		}
		var typ TypeExpr
		if t, ok := n["type"]; ok && t != nil {
			typ, err = d.decodeTypeExpr(t.(jsonNode))
			if err != nil {
				return nil, err
			}
		}
		mutable, _ := n["mutable"].(bool)
		init, err := d.decodeExprField(n, "init")
		if err != nil {
			return nil, err
		}
		return &LetStmt{base: base{span: span}, Pattern: pat, Type: typ, Mutable: mutable, Init: init}, nil
	case "AssignStmt":
		target, err := d.decodeExprField(n, "target")
		if err != nil {
			return nil, err
		}
		value, err := d.decodeExprField(n, "value")
		if err != nil {
			return nil, err
		}
		return &AssignStmt{base: base{span: span}, Target: target, Value: value}, nil
	case "ForStmt":
		pat, err := d.decodePattern(n["pattern"].(jsonNode))
		if err != nil {
			return nil, err
		}
		iterable, err := d.decodeExprField(n, "iterable")
		if err != nil {
			return nil, err
		}
		body, err := d.decodeExprField(n, "body")
		if err != nil {
			return nil, err
		}
		return &ForStmt{base: base{span: span}, Pattern: pat, Iterable: iterable, Body: body}, nil
	case "WhileStmt":
		cond, err := d.decodeExprField(n, "cond")
		if err != nil {
			return nil, err
		}
		body, err := d.decodeExprField(n, "body")
		if err != nil {
			return nil, err
		}
		return &WhileStmt{base: base{span: span}, Cond: cond, Body: body}, nil
	case "ReturnStmt":
		var value Expr
		if v, ok := n["value"]; ok && v != nil {
			var err error
			value, err = d.decodeExpr(v.(jsonNode))
			if err != nil {
				return nil, err
			}
		}
		return &ReturnStmt{base: base{span: span}, Value: value}, nil
	case "AssertStmt":
		cond, err := d.decodeExprField(n, "cond")
		if err != nil {
			return nil, err
		}
		return &AssertStmt{base: base{span: span}, Cond: cond}, nil
	case "ExprStmt":
		e, err := d.decodeExprField(n, "expr")
		if err != nil {
			return nil, err
		}
		return &ExprStmt{base: base{span: span}, Expr: e}, nil
	default:
		return nil, fmt.Errorf("ast: unknown statement kind %q", kindOf(n))
	}
}

func (d *decoder) decodePattern(n jsonNode) (Pattern, error) {
	span := d.decodeSpan(n)
	switch kindOf(n) {
	case "WildcardPattern":
		return &WildcardPattern{base: base{span: span}}, nil
	case "Ident":
		name, _ := n["name"].(string)
		return &Ident{base: base{span: span}, Name: name}, nil
	case "LiteralPattern":
		lit, err := d.decodeLiteral(n["value"].(jsonNode), d.decodeSpan(n["value"].(jsonNode)))
		if err != nil {
			return nil, err
		}
		return &LiteralPattern{base: base{span: span}, Value: lit}, nil
	case "VariantPattern":
		rawArgs, _ := n["args"].([]any)
		args := make([]Pattern, 0, len(rawArgs))
		for _, ra := range rawArgs {
			p, err := d.decodePattern(ra.(jsonNode))
			if err != nil {
				return nil, err
			}
			args = append(args, p)
		}
		variant, _ := n["variant"].(string)
		return &VariantPattern{base: base{span: span}, Variant: variant, Args: args}, nil
	case "TuplePattern":
		rawElems, _ := n["elements"].([]any)
		elems := make([]Pattern, 0, len(rawElems))
		for _, re := range rawElems {
			p, err := d.decodePattern(re.(jsonNode))
			if err != nil {
				return nil, err
			}
			elems = append(elems, p)
		}
		return &TuplePattern{base: base{span: span}, Elements: elems}, nil
	default:
		return nil, fmt.Errorf("ast: unknown pattern kind %q", kindOf(n))
	}
}

func (d *decoder) decodeTypeExpr(n jsonNode) (TypeExpr, error) {
	span := d.decodeSpan(n)
	switch kindOf(n) {
	case "TypeName":
		name, _ := n["name"].(string)
		return &TypeName{base: base{span: span}, Name: name}, nil
	case "TypeAppExpr":
		name, _ := n["name"].(string)
		rawArgs, _ := n["args"].([]any)
		args := make([]TypeExpr, 0, len(rawArgs))
		for _, ra := range rawArgs {
			t, err := d.decodeTypeExpr(ra.(jsonNode))
			if err != nil {
				return nil, err
			}
			args = append(args, t)
		}
		return &TypeAppExpr{base: base{span: span}, Name: name, Args: args}, nil
	case "TypeFnExpr":
		rawParams, _ := n["params"].([]any)
		params := make([]TypeExpr, 0, len(rawParams))
		for _, rp := range rawParams {
			t, err := d.decodeTypeExpr(rp.(jsonNode))
			if err != nil {
				return nil, err
			}
			params = append(params, t)
		}
		ret, err := d.decodeTypeExpr(n["return"].(jsonNode))
		if err != nil {
			return nil, err
		}
		var effects []string
		if rawEff, ok := n["effects"].([]any); ok {
			for _, e := range rawEff {
				if s, ok := e.(string); ok {
					effects = append(effects, s)
				}
			}
		}
		return &TypeFnExpr{base: base{span: span}, Params: params, Return: ret, Effects: effects}, nil
	case "TypeTupleExpr":
		rawElems, _ := n["elements"].([]any)
		elems := make([]TypeExpr, 0, len(rawElems))
		for _, re := range rawElems {
			t, err := d.decodeTypeExpr(re.(jsonNode))
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
		}
		return &TypeTupleExpr{base: base{span: span}, Elements: elems}, nil
	case "TypeArrayExpr":
		elem, err := d.decodeTypeExpr(n["element"].(jsonNode))
		if err != nil {
			return nil, err
		}
		return &TypeArrayExpr{base: base{span: span}, Element: elem}, nil
	case "TypeRecordExpr":
		rawFields, _ := n["fields"].([]any)
		fields := make([]TypeRecordFieldExpr, 0, len(rawFields))
		for _, rf := range rawFields {
			fm := rf.(jsonNode)
			name, _ := fm["name"].(string)
			t, err := d.decodeTypeExpr(fm["type"].(jsonNode))
			if err != nil {
				return nil, err
			}
			fields = append(fields, TypeRecordFieldExpr{Name: name, Type: t})
		}
		isOpen, _ := n["isOpen"].(bool)
		return &TypeRecordExpr{base: base{span: span}, Fields: fields, IsOpen: isOpen}, nil
	case "TypeRefinedExpr":
		base_, err := d.decodeTypeExpr(n["baseType"].(jsonNode))
		if err != nil {
			return nil, err
		}
		varName, _ := n["varName"].(string)
		pred, err := d.decodeExprField(n, "pred")
		if err != nil {
			return nil, err
		}
		return &TypeRefinedExpr{base: base{span: span}, BaseType: base_, VarName: varName, Pred: pred}, nil
	default:
		return nil, fmt.Errorf("ast: unknown type expression kind %q", kindOf(n))
	}
}

func (d *decoder) decodeDecl(n jsonNode) (Decl, error) {
	span := d.decodeSpan(n)
	switch kindOf(n) {
	case "FuncDecl":
		name, _ := n["name"].(string)
		var typeParams []string
		if raw, ok := n["typeParams"].([]any); ok {
			for _, r := range raw {
				if s, ok := r.(string); ok {
					typeParams = append(typeParams, s)
				}
			}
		}
		params, err := d.decodeParams(n)
		if err != nil {
			return nil, err
		}
		var retType TypeExpr
		if rt, ok := n["returnType"]; ok && rt != nil {
			retType, err = d.decodeTypeExpr(rt.(jsonNode))
			if err != nil {
				return nil, err
			}
		}
		var effects []string
		if raw, ok := n["effects"].([]any); ok {
			for _, r := range raw {
				if s, ok := r.(string); ok {
					effects = append(effects, s)
				}
			}
		}
		body, err := d.decodeExprField(n, "body")
		if err != nil {
			return nil, err
		}
		return &FuncDecl{base: base{span: span}, Name: name, TypeParams: typeParams, Params: params, ReturnType: retType, Effects: effects, Body: body}, nil
	case "AliasDecl":
		name, _ := n["name"].(string)
		target, err := d.decodeTypeExpr(n["target"].(jsonNode))
		if err != nil {
			return nil, err
		}
		return &AliasDecl{base: base{span: span}, Name: name, Target: target}, nil
	case "RecordDecl":
		name, _ := n["name"].(string)
		rawFields, _ := n["fields"].([]any)
		fields := make([]RecordField, 0, len(rawFields))
		for _, rf := range rawFields {
			fm := rf.(jsonNode)
			fname, _ := fm["name"].(string)
			t, err := d.decodeTypeExpr(fm["type"].(jsonNode))
			if err != nil {
				return nil, err
			}
			fields = append(fields, RecordField{Name: fname, Type: t})
		}
		return &RecordDecl{base: base{span: span}, Name: name, Fields: fields}, nil
	case "SumDecl":
		name, _ := n["name"].(string)
		rawVariants, _ := n["variants"].([]any)
		variants := make([]SumVariant, 0, len(rawVariants))
		for _, rv := range rawVariants {
			vm := rv.(jsonNode)
			vname, _ := vm["name"].(string)
			var fieldNames []string
			if raw, ok := vm["fieldNames"].([]any); ok {
				for _, r := range raw {
					if s, ok := r.(string); ok {
						fieldNames = append(fieldNames, s)
					}
				}
			}
			rawFields, _ := vm["fields"].([]any)
			fields := make([]TypeExpr, 0, len(rawFields))
			for _, rf := range rawFields {
				t, err := d.decodeTypeExpr(rf.(jsonNode))
				if err != nil {
					return nil, err
				}
				fields = append(fields, t)
			}
			variants = append(variants, SumVariant{Name: vname, Fields: fields, FieldNames: fieldNames})
		}
		return &SumDecl{base: base{span: span}, Name: name, Variants: variants}, nil
	default:
		return nil, fmt.Errorf("ast: unknown declaration kind %q", kindOf(n))
	}
}
