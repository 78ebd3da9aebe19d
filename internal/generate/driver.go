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
Package generate is the Generator Driver of spec §4.7: it discovers
sagagen:workflow-marked declarations via the oracle, runs them through
extraction and diagnostics, and hands the assembled IR to every emitter
in package emit. Declarations are independent of one another, so the
driver fans out across them with an errgroup-bounded worker pool (spec
§5's "optional embarrassing parallelism across independent
declarations") while staying single-threaded within one declaration.
*/
package generate

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/axonflow/sagagen/internal/cache"
	"github.com/axonflow/sagagen/internal/diag"
	"github.com/axonflow/sagagen/internal/extract"
	"github.com/axonflow/sagagen/runtime/genlog"
	"github.com/axonflow/sagagen/internal/ir"
	"github.com/axonflow/sagagen/internal/metrics"
	"github.com/axonflow/sagagen/internal/oracle"
	"github.com/axonflow/sagagen/internal/parsectx"
)

var driverLog = genlog.New("sagagen-driver")

// Artifact is one named, formatted output file produced for a workflow
// declaration.
type Artifact struct {
	FileName string
	Content  string
}

// Result is one declaration's outcome: either a full artifact set, or
// the fatal diagnostics that caused it to be skipped (spec §7.1).
type Result struct {
	WorkflowName string
	Artifacts    []Artifact
	Diagnostics  []diag.Diagnostic
	Skipped      bool
	Err          error
}

// MaxConcurrency bounds how many declarations are processed in
// parallel. 0 lets errgroup.SetLimit leave it unbounded.
var MaxConcurrency = 8

// Run discovers every sagagen:workflow declaration the oracle has
// loaded and generates each one's artifacts concurrently, with no
// incremental build cache.
func Run(ctx context.Context, o oracle.SyntaxOracle) ([]Result, error) {
	return RunWithCache(ctx, o, nil)
}

// RunWithCache is Run, but consults store (when non-nil) before
// re-running a declaration's pipeline: an unchanged Define method body
// returns its previously cached artifacts without re-extracting,
// re-diagnosing, or re-emitting anything.
func RunWithCache(ctx context.Context, o oracle.SyntaxOracle, store cache.Store) ([]Result, error) {
	decls := o.TypesWithAttribute("workflow")
	results := make([]Result, len(decls))

	g, gctx := errgroup.WithContext(ctx)
	if MaxConcurrency > 0 {
		g.SetLimit(MaxConcurrency)
	}
	for i, decl := range decls {
		i, decl := i, decl
		g.Go(func() error {
			results[i] = generateOne(gctx, o, decl, store)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// generateOne runs the full single-declaration pipeline: locate Define,
// extract, diagnose, assemble, emit. It never returns an error for a
// workflow-shaped problem — those surface as Skipped/Diagnostics — only
// for a genuinely unexpected failure (e.g. a missing Define method).
func generateOne(ctx context.Context, o oracle.SyntaxOracle, decl oracle.TypeDeclaration, store cache.Store) Result {
	name := decl.Directive.Args["name"]
	started := time.Now()
	defineBody, ok := findDefineBody(decl)
	if !ok {
		return Result{WorkflowName: name, Err: fmt.Errorf("generate: %s has no Define method body", decl.Name)}
	}

	version := 1
	if v, ok := decl.Directive.Args["version"]; ok {
		fmt.Sscanf(v, "%d", &version)
	}
	fingerprint := cache.Fingerprint(name, version, defineBodySourceText(defineBody))
	if store != nil {
		if entry, ok, err := store.Get(ctx, fingerprint); err == nil && ok {
			metrics.GenerationsTotal.WithLabelValues(name, "cached").Inc()
			metrics.CacheHitsTotal.Inc()
			driverLog.Info(name, decl.Name, "workflow unchanged, using cached artifacts", map[string]interface{}{"artifacts": len(entry.Artifacts)})
			return Result{WorkflowName: name, Artifacts: artifactsFromEntry(entry)}
		}
		metrics.CacheMissesTotal.Inc()
	}

	pctx := parsectx.Create(ctx, o, decl, defineBody)

	dedupSteps, rawSteps := extract.Steps(pctx)
	loops := extract.Loops(pctx)
	branches := extract.Branches(pctx, o)
	forks := extract.Forks(pctx)
	approvals := extract.Approvals(pctx)
	failureHandlers := extract.FailureHandlers(pctx)
	stateTypeName := extract.StateTypeName(pctx)
	contexts := extract.Contexts(pctx, o)

	namespace, hasNamespace := o.EnclosingNamespace(decl)

	model := ir.WorkflowModel{
		WorkflowName:     name,
		Namespace:        namespace,
		Version:          version,
		StateTypeName:    stateTypeName,
		Steps:            dedupSteps,
		Loops:            loops,
		Branches:         branches,
		Forks:            forks,
		Approvals:        approvals,
		FailureHandlers:  failureHandlers,
		Contexts:         contexts,
		HasAnyValidation: anyValidation(dedupSteps),
	}

	diagnostics := diag.Run(diag.Input{
		Model:        model,
		RawSteps:     rawSteps,
		Namespace:    namespace,
		HasNamespace: hasNamespace,
		HasFinally:   pctx.Finally != nil,
		Properties:   extract.StateProperties(o, stateTypeName),
	})
	recordDiagnosticMetrics(diagnostics)
	for _, d := range diagnostics {
		if d.Fatal() {
			driverLog.Warn(name, decl.Name, "workflow skipped: "+d.Message, map[string]interface{}{"code": string(d.Code)})
			metrics.GenerationsTotal.WithLabelValues(name, "skipped").Inc()
			return Result{WorkflowName: name, Diagnostics: diagnostics, Skipped: true}
		}
	}

	artifacts, err := emitAll(model, extract.StateProperties(o, stateTypeName))
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(name, "failed").Inc()
		return Result{WorkflowName: name, Diagnostics: diagnostics, Err: err}
	}
	metrics.GenerationsTotal.WithLabelValues(name, "generated").Inc()
	metrics.GenerationDurationSeconds.WithLabelValues(name).Observe(time.Since(started).Seconds())
	metrics.ArtifactsWrittenTotal.Add(float64(len(artifacts)))
	driverLog.Info(name, decl.Name, "workflow generated", map[string]interface{}{"artifacts": len(artifacts)})

	if store != nil {
		if err := store.Put(ctx, fingerprint, entryFromArtifacts(fingerprint, artifacts)); err != nil {
			driverLog.Warn(name, decl.Name, "failed to persist cache entry: "+err.Error(), nil)
		}
	}
	return Result{WorkflowName: name, Artifacts: artifacts, Diagnostics: diagnostics}
}

// defineBodySourceText renders a Define method body back to source
// text for cache fingerprinting — a throwaway FileSet is sufficient
// since only the text, not its position, matters here.
func defineBodySourceText(body *ast.BlockStmt) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), body); err != nil {
		return ""
	}
	return buf.String()
}

func entryFromArtifacts(fingerprint string, artifacts []Artifact) cache.Entry {
	m := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		m[a.FileName] = a.Content
	}
	return cache.Entry{Fingerprint: fingerprint, Artifacts: m}
}

func artifactsFromEntry(entry cache.Entry) []Artifact {
	out := make([]Artifact, 0, len(entry.Artifacts))
	for name, content := range entry.Artifacts {
		out = append(out, Artifact{FileName: name, Content: content})
	}
	return out
}

func recordDiagnosticMetrics(diagnostics []diag.Diagnostic) {
	pairs := make([][2]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		pairs = append(pairs, [2]string{string(d.Code), d.Severity.String()})
	}
	metrics.RecordDiagnostics(pairs)
}

// findDefineBody locates the marked declaration's Define method body
// among the file it was declared in. The method is resolved by
// receiver-type name, not by package-qualified lookup, mirroring
// oracle.ResolveMethodReference's simple-name approach.
func findDefineBody(decl oracle.TypeDeclaration) (*ast.BlockStmt, bool) {
	if decl.File == nil {
		return nil, false
	}
	for _, d := range decl.File.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "Define" || fn.Recv == nil || len(fn.Recv.List) == 0 {
			continue
		}
		if receiverTypeName(fn.Recv.List[0].Type) != decl.Name {
			continue
		}
		return fn.Body, true
	}
	return nil, false
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return ""
	}
}

func anyValidation(steps []ir.StepModel) bool {
	for _, s := range steps {
		if s.HasValidation() {
			return true
		}
	}
	return false
}
