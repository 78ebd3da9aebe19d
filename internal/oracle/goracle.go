// Copyright 2025 AxonFlow
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package oracle

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const directivePrefix = "sagagen:"

// parsedFile is one parsed source file and the modification time it was
// read at.
type parsedFile struct {
	path    string
	modTime int64
	file    *ast.File
}

// GoOracle implements SyntaxOracle over a set of parsed Go files sharing
// one *token.FileSet.
type GoOracle struct {
	fset    *token.FileSet
	files   []*parsedFile
	pkgName string
	// enumTypes names declared via a const ( ... Type = iota ... ) block.
	enumTypes map[string]bool
	// funcDecls indexes top-level function/method declarations by name
	// for ResolveMethodReference.
	funcDecls map[string]*ast.FuncDecl
}

// Load parses the given Go source files into one GoOracle. Every call
// parses each path afresh into a new FileSet; no AST is reused across
// calls, even for an unchanged file.
func Load(paths ...string) (*GoOracle, error) {
	o := &GoOracle{
		fset:      token.NewFileSet(),
		enumTypes: map[string]bool{},
		funcDecls: map[string]*ast.FuncDecl{},
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		f, err := parser.ParseFile(o.fset, p, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		o.files = append(o.files, &parsedFile{path: p, modTime: info.ModTime().UnixNano(), file: f})
		if o.pkgName == "" {
			o.pkgName = f.Name.Name
		}
		o.indexFile(f)
	}
	return o, nil
}

func (o *GoOracle) indexFile(f *ast.File) {
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok == token.CONST {
				o.indexConstBlock(d)
			}
		case *ast.FuncDecl:
			o.funcDecls[funcDeclKey(d)] = d
		}
	}
}

func funcDeclKey(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return d.Name.Name
	}
	return receiverTypeName(d.Recv.List[0].Type) + "." + d.Name.Name
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	default:
		return ""
	}
}

// indexConstBlock records the declared type of a const group as an enum
// candidate when every spec shares one named type (the idiomatic Go
// enum shape: `type Status string; const ( Pending Status = iota; ... )`).
func (o *GoOracle) indexConstBlock(d *ast.GenDecl) {
	var lastType string
	for _, spec := range d.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if vs.Type != nil {
			if id, ok := vs.Type.(*ast.Ident); ok {
				lastType = id.Name
			}
		}
		if lastType != "" {
			o.enumTypes[lastType] = true
		}
	}
}

// TypesWithAttribute scans all loaded files for type declarations whose
// doc comment carries "// sagagen:<directiveName> ...".
func (o *GoOracle) TypesWithAttribute(directiveName string) []TypeDeclaration {
	var out []TypeDeclaration
	for _, pf := range o.files {
		for _, decl := range pf.file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			doc := gd.Doc
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if ts.Doc != nil {
					doc = ts.Doc
				}
				if doc == nil {
					continue
				}
				dir, ok := parseDirective(doc, directiveName)
				if !ok {
					continue
				}
				out = append(out, TypeDeclaration{
					Name:      ts.Name.Name,
					Directive: dir,
					Spec:      ts,
					File:      pf.file,
					Pos:       ts.Pos(),
				})
			}
		}
	}
	return out
}

func parseDirective(doc *ast.CommentGroup, name string) (Directive, bool) {
	for _, c := range doc.List {
		text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
		if !strings.HasPrefix(text, directivePrefix) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(text, directivePrefix))
		fields := splitDirectiveFields(rest)
		if len(fields) == 0 || fields[0] != name {
			continue
		}
		args := map[string]string{}
		for _, f := range fields[1:] {
			kv := strings.SplitN(f, "=", 2)
			if len(kv) != 2 {
				continue
			}
			args[kv[0]] = strings.Trim(kv[1], `"`)
		}
		return Directive{Name: name, Args: args}, true
	}
	return Directive{}, false
}

// splitDirectiveFields splits "workflow name=\"process-order\" version=1"
// on whitespace outside quotes.
func splitDirectiveFields(s string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ' ' && !inQuotes:
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

// Invocations returns every method-call expression within scope, in
// source order.
func (o *GoOracle) Invocations(scope ast.Node) []Invocation {
	var out []Invocation
	var stack []ast.Node
	ast.Inspect(scope, func(n ast.Node) bool {
		if n == nil {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			return false
		}
		if call, ok := n.(*ast.CallExpr); ok {
			if inv, ok := o.asInvocation(call); ok {
				inv.EnclosingLambda = enclosingFuncLit(stack)
				out = append(out, inv)
			}
		}
		stack = append(stack, n)
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}

// enclosingFuncLit finds the nearest *ast.FuncLit on the current
// ancestor stack (the call node itself is not yet pushed).
func enclosingFuncLit(stack []ast.Node) *ast.FuncLit {
	for i := len(stack) - 1; i >= 0; i-- {
		if fl, ok := stack[i].(*ast.FuncLit); ok {
			return fl
		}
	}
	return nil
}

func (o *GoOracle) asInvocation(call *ast.CallExpr) (Invocation, bool) {
	fun := call.Fun
	var methodName string
	var receiver ast.Expr
	var typeArgs []string
	var isGeneric bool

	switch f := fun.(type) {
	case *ast.SelectorExpr:
		methodName = f.Sel.Name
		receiver = f.X
	case *ast.IndexExpr:
		// generic free function: pkg.Func[T](...) or Func[T](...)
		isGeneric = true
		typeArgs = append(typeArgs, typeArgName(f.Index))
		switch inner := f.X.(type) {
		case *ast.SelectorExpr:
			methodName = inner.Sel.Name
		case *ast.Ident:
			methodName = inner.Name
		default:
			return Invocation{}, false
		}
	case *ast.IndexListExpr:
		isGeneric = true
		for _, idx := range f.Indices {
			typeArgs = append(typeArgs, typeArgName(idx))
		}
		switch inner := f.X.(type) {
		case *ast.SelectorExpr:
			methodName = inner.Sel.Name
		case *ast.Ident:
			methodName = inner.Name
		default:
			return Invocation{}, false
		}
	case *ast.Ident:
		methodName = f.Name
	default:
		return Invocation{}, false
	}

	inv := Invocation{
		MethodName:    methodName,
		IsGeneric:     isGeneric,
		TypeArguments: typeArgs,
		Receiver:      receiver,
		RawArgs:       call.Args,
		Call:          call,
		Pos:           call.Lparen,
	}
	for _, arg := range call.Args {
		switch a := arg.(type) {
		case *ast.BasicLit:
			if a.Kind == token.STRING {
				if s, err := strconv.Unquote(a.Value); err == nil {
					inv.LiteralArguments = append(inv.LiteralArguments, s)
				}
			} else {
				inv.LiteralArguments = append(inv.LiteralArguments, a.Value)
			}
		case *ast.FuncLit:
			inv.LambdaArguments = append(inv.LambdaArguments, a)
		case *ast.CallExpr:
			// a nested generic call such as dsl.Step[ValidateOrder]("name")
			// surfaces its own type arguments onto this invocation, since
			// extractors resolve a step's type one call down from the
			// method's own argument list (see SPEC_FULL.md's DSL note).
			if nestedInv, ok := o.asInvocation(a); ok && nestedInv.IsGeneric {
				inv.TypeArguments = append(inv.TypeArguments, nestedInv.TypeArguments...)
				inv.LiteralArguments = append(inv.LiteralArguments, nestedInv.LiteralArguments...)
			}
		}
	}
	return inv, true
}

func typeArgName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	default:
		return ""
	}
}

// ResolveType resolves a type expression to its simple/fully-qualified
// name and classifies it.
func (o *GoOracle) ResolveType(expr ast.Expr) TypeInfo {
	switch t := expr.(type) {
	case *ast.Ident:
		kind := KindStruct
		if o.enumTypes[t.Name] {
			kind = KindEnum
		} else if isPrimitiveName(t.Name) {
			kind = KindPrimitive
		}
		return TypeInfo{
			SimpleName:         t.Name,
			FullyQualifiedName: o.pkgName + "." + t.Name,
			IsEnum:             o.enumTypes[t.Name],
			Kind:               kind,
		}
	case *ast.SelectorExpr:
		pkgIdent, _ := t.X.(*ast.Ident)
		pkg := ""
		if pkgIdent != nil {
			pkg = pkgIdent.Name
		}
		return TypeInfo{
			SimpleName:         t.Sel.Name,
			FullyQualifiedName: strings.TrimPrefix(pkg+"."+t.Sel.Name, "."),
			Kind:               KindStruct,
		}
	default:
		return TypeInfo{}
	}
}

func isPrimitiveName(name string) bool {
	switch name {
	case "string", "int", "int32", "int64", "float64", "float32", "bool":
		return true
	default:
		return false
	}
}

// ResolvePropertyPath resolves a lambda such as `func(s State) any {
// return s.X.Y }` to the dotted path "X.Y", or `func(s State) any {
// return s.M() }` to "M()".
func (o *GoOracle) ResolvePropertyPath(expr ast.Expr) (string, bool) {
	fn, ok := expr.(*ast.FuncLit)
	if !ok || fn.Body == nil || len(fn.Body.List) == 0 {
		return "", false
	}
	ret, ok := lastReturn(fn.Body)
	if !ok || len(ret.Results) != 1 {
		return "", false
	}
	return propertyPathOf(ret.Results[0])
}

func lastReturn(body *ast.BlockStmt) (*ast.ReturnStmt, bool) {
	if len(body.List) == 0 {
		return nil, false
	}
	rs, ok := body.List[len(body.List)-1].(*ast.ReturnStmt)
	return rs, ok
}

func propertyPathOf(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.SelectorExpr:
		base, ok := propertyPathOf(e.X)
		if !ok {
			// base is the lambda parameter itself (e.g. "s"); path starts here.
			return e.Sel.Name, true
		}
		return base + "." + e.Sel.Name, true
	case *ast.CallExpr:
		sel, ok := e.Fun.(*ast.SelectorExpr)
		if !ok {
			return "", false
		}
		return sel.Sel.Name + "()", true
	case *ast.Ident:
		return "", false
	default:
		return "", false
	}
}

// ResolveMethodReference resolves a bare function/method identifier
// (used as a discriminator without a lambda wrapper) to its name and
// declared return type text.
func (o *GoOracle) ResolveMethodReference(expr ast.Expr) (MethodRef, bool) {
	id, ok := expr.(*ast.Ident)
	if !ok {
		return MethodRef{}, false
	}
	decl, ok := o.funcDecls[id.Name]
	if !ok {
		return MethodRef{}, false
	}
	if decl.Type.Results == nil || len(decl.Type.Results.List) == 0 {
		return MethodRef{Name: id.Name, ReturnType: ""}, true
	}
	return MethodRef{Name: id.Name, ReturnType: exprString(decl.Type.Results.List[0].Type)}, true
}

func exprString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return exprString(e.X) + "." + e.Sel.Name
	case *ast.StarExpr:
		return "*" + exprString(e.X)
	default:
		return ""
	}
}

// EnclosingNamespace returns the declaring file's package name, the Go
// stand-in for spec §4.1's "enclosing namespace" (Go has no nested
// namespaces; the package is the unit AGWF004 cares about).
func (o *GoOracle) EnclosingNamespace(decl TypeDeclaration) (string, bool) {
	if decl.File == nil || decl.File.Name == nil || decl.File.Name.Name == "" {
		return "", false
	}
	return decl.File.Name.Name, true
}

// IsReceiverOf reports whether a's call expression is the immediate
// syntactic receiver of b.
func (o *GoOracle) IsReceiverOf(a, b Invocation) bool {
	bCall, ok := b.Receiver.(*ast.CallExpr)
	if !ok {
		return false
	}
	return bCall == a.Call
}

// StructFields returns typeName's fields, in declaration order, so the
// state-properties extractor can read each field's sagagen struct tag
// (`sagagen:"append"` / `sagagen:"merge"`) without needing a full type
// checker.
func (o *GoOracle) StructFields(typeName string) []StructFieldInfo {
	for _, pf := range o.files {
		for _, decl := range pf.file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name.Name != typeName {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok || st.Fields == nil {
					continue
				}
				return structFieldsOf(st)
			}
		}
	}
	return nil
}

func structFieldsOf(st *ast.StructType) []StructFieldInfo {
	var out []StructFieldInfo
	for _, f := range st.Fields.List {
		tag := ""
		if f.Tag != nil {
			unquoted, err := strconv.Unquote(f.Tag.Value)
			if err == nil {
				tag = reflect.StructTag(unquoted).Get("sagagen")
			}
		}
		typeName := typeExprString(f.Type)
		if len(f.Names) == 0 {
			// embedded field: its own type name is also its field name
			out = append(out, StructFieldInfo{Name: typeName, TypeName: typeName, Tag: tag})
			continue
		}
		for _, n := range f.Names {
			out = append(out, StructFieldInfo{Name: n.Name, TypeName: typeName, Tag: tag})
		}
	}
	return out
}

func typeExprString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return typeExprString(e.X) + "." + e.Sel.Name
	case *ast.StarExpr:
		return "*" + typeExprString(e.X)
	case *ast.ArrayType:
		return "[]" + typeExprString(e.Elt)
	case *ast.MapType:
		return "map[" + typeExprString(e.Key) + "]" + typeExprString(e.Value)
	default:
		return ""
	}
}

var _ SyntaxOracle = (*GoOracle)(nil)
