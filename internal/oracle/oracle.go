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

/*
Package oracle wraps Go's own go/parser and go/ast as the SyntaxOracle
the rest of the compiler pipeline consumes (spec §4.1/§6) — the direct
Go analogue of the Roslyn SyntaxTree/SemanticModel the original system
was built against. No corpus dependency supersedes the standard compiler
packages for Go source/type analysis, so this is the one deliberately
stdlib-only layer of the pipeline.

The oracle is read-only: every Invocation/TypeDeclaration it derives
points into the one parse Load made. Load keeps no cache between calls;
a second Load of an unchanged file parses it again and yields new AST
nodes.
*/
package oracle

import (
	"go/ast"
	"go/token"
)

// TypeKind classifies a resolved type for the extractors that need it
// (is_enum, struct vs primitive).
type TypeKind int

const (
	KindUnknown TypeKind = iota
	KindStruct
	KindEnum
	KindPrimitive
	KindInterface
)

// TypeInfo is the result of ResolveType.
type TypeInfo struct {
	SimpleName         string
	FullyQualifiedName string // package-qualified, no leading qualifier
	IsEnum             bool
	Kind               TypeKind
}

// MethodRef is the result of ResolveMethodReference.
type MethodRef struct {
	Name       string
	ReturnType string
}

// TypeDeclaration is a type marked with a sagagen directive comment.
type TypeDeclaration struct {
	Name      string
	Directive Directive
	Spec      *ast.TypeSpec
	File      *ast.File
	Pos       token.Pos
}

// Directive is a parsed "sagagen:<name> key="value" ..." doc comment.
type Directive struct {
	Name string
	Args map[string]string
}

// Invocation is one method-call node in a fluent chain (spec §4.1).
type Invocation struct {
	MethodName       string
	IsGeneric        bool
	TypeArguments    []string // simple names of generic type arguments
	LiteralArguments []string // literal argument texts in order (strings unquoted, numbers as written)
	LambdaArguments  []*ast.FuncLit
	Receiver         ast.Expr // the expression this call was invoked on, nil for a free function call
	RawArgs          []ast.Expr
	Call             *ast.CallExpr
	Pos              token.Pos // the call's opening parenthesis, distinct for each call of a chain
	// EnclosingLambda is the nearest strictly-enclosing function literal
	// this call is directly inside, or nil if it is at the top level of
	// the scope Invocations was called with. Extractors use this to
	// implement "excluding those inside any strictly nested lambda"
	// (spec §4.3's collect_invocations_in_lambda).
	EnclosingLambda *ast.FuncLit
}

// StructFieldInfo is one field of a struct type declaration, carrying
// whatever sagagen struct tag it was declared with.
type StructFieldInfo struct {
	Name     string
	TypeName string
	Tag      string // the field's `sagagen:"..."` tag value, or "" if absent
}

// SyntaxOracle is the contract the rest of the pipeline depends on. See
// spec §4.1.
type SyntaxOracle interface {
	TypesWithAttribute(directiveName string) []TypeDeclaration
	Invocations(scope ast.Node) []Invocation
	ResolveType(expr ast.Expr) TypeInfo
	ResolvePropertyPath(expr ast.Expr) (string, bool)
	ResolveMethodReference(expr ast.Expr) (MethodRef, bool)
	EnclosingNamespace(decl TypeDeclaration) (string, bool)
	IsReceiverOf(a, b Invocation) bool
	StructFields(typeName string) []StructFieldInfo
}
