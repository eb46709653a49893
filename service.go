package pastemd

import (
	"context"
	"fmt"

	"github.com/pastemd/pastemd/internal/pandoc"
	"github.com/pastemd/pastemd/internal/pipeline"
	"github.com/pastemd/pastemd/internal/rules"
	"github.com/pastemd/pastemd/internal/tabular"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownNormalizer = (*pipeline.CommonMarkNormalizer)(nil)
	_ engine                      = (*pandoc.Engine)(nil)
)

// engine abstracts the external conversion engine for testability.
type engine interface {
	Probe(ctx context.Context) (string, error)
	Convert(ctx context.Context, markdown string, target pandoc.Target, rewrite pandoc.MathRewriter, opts *pandoc.Options) ([]byte, error)
}

// Service orchestrates the markdown-to-document pipeline: normalization,
// engine invocation with the math correction hook, and delivery.
//
// A Service carries no per-job state beyond its immutable rule set, so it
// is safe to run jobs concurrently from multiple goroutines.
type Service struct {
	cfg        serviceConfig
	set        *rules.Set
	normalizer pipeline.MarkdownNormalizer
	engine     engine
}

// New creates a Service. Rule configuration errors surface here, once,
// rather than per job.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg:        serviceConfig{timeout: defaultTimeout},
		normalizer: &pipeline.CommonMarkNormalizer{},
	}

	for _, opt := range opts {
		opt(s)
	}

	var err error
	switch {
	case s.cfg.ruleFile != "":
		s.set, err = rules.Load(s.cfg.ruleFile)
	case s.cfg.ruleList != nil:
		s.set, err = rules.Compile(s.cfg.ruleList)
	default:
		s.set = rules.Default()
	}
	if err != nil {
		return nil, err
	}

	// Create the engine if not injected (e.g., by tests)
	if s.engine == nil {
		s.engine = pandoc.NewEngine(s.cfg.enginePath)
	}

	return s, nil
}

// Rules returns the active correction rules in application order.
func (s *Service) Rules() []Rule {
	return s.set.Rules()
}

// Probe checks that the external engine is reachable and returns its
// version string. A missing engine is reported as ErrEngineMissing.
func (s *Service) Probe(ctx context.Context) (string, error) {
	return s.engine.Probe(ctx)
}

// Convert runs one job and returns the serialized document.
// The context is used for cancellation; the configured timeout caps the
// job on top of any caller deadline.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	md := s.normalizer.Normalize(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch input.Format {
	case FormatExcelTable:
		return s.convertExcel(md)
	case FormatWord:
		return s.convertWord(ctx, md, input.ReferenceDocx)
	default:
		return s.convertHTML(ctx, md)
	}
}

// Deliver converts and hands the result to the sink. The sink is never
// touched when conversion fails; a sink failure is reported as
// ErrSinkWrite, with the Result still returned so callers know the
// document itself was producible.
func (s *Service) Deliver(ctx context.Context, input Input, sink Sink) (*Result, error) {
	result, err := s.Convert(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := sink.Write(result); err != nil {
		return result, fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	return result, nil
}

// convertExcel builds the spreadsheet payload locally. The precondition
// check runs before the engine would be touched.
func (s *Service) convertExcel(md string) (*Result, error) {
	table, ok := tabular.Extract(md)
	if !ok {
		return nil, fmt.Errorf("%w: excel target needs at least one table", ErrUnsupportedContent)
	}
	return &Result{
		Format:  FormatExcelTable,
		Payload: []byte(table.HTML()),
		Plain:   table.TSV(),
	}, nil
}

func (s *Service) convertWord(ctx context.Context, md, referenceDocx string) (*Result, error) {
	opts := &pandoc.Options{ReferenceDocx: referenceDocx}
	payload, err := s.engine.Convert(ctx, md, pandoc.TargetDocx, s.rewriteMath, opts)
	if err != nil {
		return nil, err
	}
	return &Result{
		Format:  FormatWord,
		Payload: payload,
		Plain:   md,
		Binary:  true,
	}, nil
}

func (s *Service) convertHTML(ctx context.Context, md string) (*Result, error) {
	payload, err := s.engine.Convert(ctx, md, pandoc.TargetHTML, s.rewriteMath, nil)
	if err != nil {
		return nil, err
	}
	return &Result{
		Format:  FormatHTML,
		Payload: payload,
		Plain:   md,
	}, nil
}

// rewriteMath is the node-transform hook the engine invokes per math
// node. Inline and display expressions run through the same rule set;
// only the payload changes, never the display tag.
func (s *Service) rewriteMath(expr string, _ bool) string {
	return s.set.Apply(expr)
}

// validateInput checks that required fields are present and valid.
func (s *Service) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if !input.Format.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, input.Format)
	}
	return nil
}
