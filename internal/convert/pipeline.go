// Package convert sequences one conversion: load, parse, render, write.
package convert

import (
	"context"
	"fmt"
	"time"

	"github.com/agentic-research/astdump/internal/logging"
	"github.com/agentic-research/astdump/internal/render"
	"github.com/agentic-research/astdump/internal/source"
	"github.com/agentic-research/astdump/internal/syntax"
)

// Loader reads the input document.
type Loader interface {
	Load(path string) (*source.Document, error)
}

// Renderer renders a tree to an artifact.
type Renderer interface {
	Render(tree *syntax.Tree) (string, error)
	Format() render.Format
}

// Writer persists an artifact.
type Writer interface {
	Write(path, content string) error
}

// Selector narrows a tree before rendering.
type Selector interface {
	Select(tree *syntax.Tree) (*syntax.Tree, error)
}

// Recorder is told about every successful conversion.
type Recorder interface {
	Record(ctx context.Context, tree *syntax.Tree, output, format, artifact string) error
}

// ParserFor returns the parser to use for an input path.
type ParserFor func(path string) syntax.Parser

// Pipeline runs conversions. It holds no per-run state.
type Pipeline struct {
	loader   Loader
	parsers  ParserFor
	renderer Renderer
	writer   Writer
	selector Selector
	recorder Recorder
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSelector renders only the sub-trees chosen by s.
func WithSelector(s Selector) Option {
	return func(p *Pipeline) {
		p.selector = s
	}
}

// WithRecorder reports each successful conversion to r.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) {
		p.recorder = r
	}
}

// New builds a Pipeline from its four stages.
func New(loader Loader, parsers ParserFor, renderer Renderer, writer Writer, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:   loader,
		parsers:  parsers,
		renderer: renderer,
		writer:   writer,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Request names one input/output pair.
type Request struct {
	Input  string
	Output string
}

// Result describes a finished run, successful or not.
type Result struct {
	Input    string
	Output   string
	Language string
	State    State
	Nodes    int
	Bytes    int
	Elapsed  time.Duration
}

// Run converts req.Input into req.Output. The first failing stage stops the
// run: it is logged as a single diagnostic line and returned as a
// *StageError. Nothing is written unless every earlier stage succeeded.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	log := logging.FromContext(ctx)
	start := time.Now()
	res := &Result{Input: req.Input, Output: req.Output, State: StateStart}

	doc, err := p.loader.Load(req.Input)
	if err != nil {
		return res, p.fail(ctx, res, StepLoad, req.Input, err)
	}
	res.State = StateLoaded
	log.Debug("loaded", "path", doc.Path, "bytes", len(doc.Content))

	tree, err := p.parsers(req.Input).Parse(ctx, doc)
	if err != nil {
		return res, p.fail(ctx, res, StepParse, req.Input, err)
	}
	res.State = StateParsed
	res.Language = tree.Language
	res.Nodes = tree.Count()
	log.Debug("parsed", "path", tree.Path, "language", tree.Language, "nodes", res.Nodes, "depth", tree.Depth())

	if p.selector != nil {
		tree, err = p.selector.Select(tree)
		if err != nil {
			return res, p.fail(ctx, res, StepRender, req.Input, err)
		}
		log.Debug("selected", "path", tree.Path, "matches", len(tree.Root.Children))
	}

	artifact, err := p.renderer.Render(tree)
	if err != nil {
		return res, p.fail(ctx, res, StepRender, req.Input, err)
	}
	res.State = StateRendered
	res.Bytes = len(artifact)

	if err := p.writer.Write(req.Output, artifact); err != nil {
		return res, p.fail(ctx, res, StepWrite, req.Output, err)
	}
	res.State = StateWritten
	res.Elapsed = time.Since(start)

	if p.recorder != nil {
		if err := p.recorder.Record(ctx, tree, req.Output, string(p.renderer.Format()), artifact); err != nil {
			log.Warn(fmt.Sprintf("catalog file %s failed", req.Input), "error", err)
		}
	}

	log.Info("converted", "input", req.Input, "output", req.Output, "language", res.Language,
		"nodes", res.Nodes, "bytes", res.Bytes, "elapsed", res.Elapsed)
	return res, nil
}

func (p *Pipeline) fail(ctx context.Context, res *Result, step Step, path string, err error) error {
	res.State = StateFailed
	se := &StageError{Step: step, Path: path, Err: err}
	logging.FromContext(ctx).Error(se.Diagnostic(), "error", err)
	return se
}
