package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/toyz/serialgen/internal/annotations"
	"github.com/toyz/serialgen/internal/binding"
	"github.com/toyz/serialgen/internal/errors"
	"github.com/toyz/serialgen/internal/generator"
	"github.com/toyz/serialgen/internal/injector"
	"github.com/toyz/serialgen/internal/models"
	"github.com/toyz/serialgen/internal/parser"
	"github.com/toyz/serialgen/internal/registry"
	"github.com/toyz/serialgen/internal/utils"
	"github.com/toyz/serialgen/internal/utils/fileops"
)

// enumMarkerName selects enums regardless of the class annotation
const enumMarkerName = "Serializable"

// DeclarationResult records what happened to one annotated declaration
type DeclarationResult struct {
	File    string
	Line    int // marker line at the time it was handled
	Subject models.Subject
	Name    string
	Outcome models.Outcome
	Fields  int
	Rules   int
	Detail  string
	Code    string // generated block, kept for dry-run output
}

// RunResult summarises a processing run
type RunResult struct {
	RunID          string
	DryRun         bool
	Files          int
	Rules          int
	Processed      int
	AlreadyPresent int
	Skipped        int
	Failed         int
	FilesChanged   []string
	Outcomes       []DeclarationResult
	Errors         *errors.MultipleErrors
	Duration       time.Duration
}

func (r *RunResult) record(outcome DeclarationResult, err error) {
	r.Outcomes = append(r.Outcomes, outcome)

	switch outcome.Outcome {
	case models.OutcomeInjected:
		r.Processed++
	case models.OutcomeAlreadyPresent:
		r.Processed++
		r.AlreadyPresent++
	case models.OutcomeSkipped:
		r.Skipped++
	case models.OutcomeFailed:
		r.Failed++
	}

	if err != nil {
		r.addError(err)
	}
}

func (r *RunResult) addError(err error) {
	var procErr errors.ProcessorError
	if stderrors.As(err, &procErr) {
		r.Errors.Add(procErr)
		return
	}
	r.Errors.Add(errors.Wrap(errors.UnknownErrorCode, "unexpected failure", err))
}

// Processor runs the annotation pipeline over a set of headers
type Processor struct {
	cfg         *Config
	fileOps     *fileops.FileOps
	generator   *generator.Generator
	diagnostics *utils.DiagnosticSystem
}

// NewProcessor creates a processor for the configuration
func NewProcessor(cfg *Config, diagnostics *utils.DiagnosticSystem) *Processor {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(cfg.DiagnosticLevel())
	}
	return &Processor{
		cfg:         cfg,
		fileOps:     fileops.NewFileOps(),
		generator:   generator.NewGenerator(generator.Options{ValidationNamespace: cfg.ValidationNamespace}),
		diagnostics: diagnostics,
	}
}

// FileOps exposes the cached file access shared by the run
func (p *Processor) FileOps() *fileops.FileOps {
	return p.fileOps
}

// DiscoverRules builds the validation rule registry over the file set
func (p *Processor) DiscoverRules(ctx context.Context, files []string) (*registry.MacroRegistry, []error) {
	rules, errs := registry.NewDiscoverer(p.fileOps, p.cfg.Workers).Discover(ctx, files)
	for _, override := range rules.Overrides() {
		p.diagnostics.Warn("validation rule %s redefined at %s:%d (was %s:%d)",
			override.Current.Rule, override.Current.Source, override.Current.Line,
			override.Previous.Source, override.Previous.Line)
	}
	return rules, errs
}

// Run processes every header in order. Per-declaration problems are collected in the
// result; only an empty file set or cancellation makes Run itself fail.
func (p *Processor) Run(ctx context.Context, files []string) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{
		RunID:  p.diagnostics.RunID(),
		DryRun: p.cfg.DryRun,
		Files:  len(files),
		Errors: errors.NewMultipleErrors(),
	}

	if len(files) == 0 {
		return result, errors.New(errors.FileSystemErrorCode, "no header files to process").
			WithSuggestions(
				"Check the scanned roots and the extensions setting",
				"Run from the project root or pass --project",
			)
	}

	p.diagnostics.StartProgress("Discovering validation rules")
	rules, errs := p.DiscoverRules(ctx, files)
	p.diagnostics.EndProgress("Discovering validation rules")
	for _, err := range errs {
		if ctx.Err() != nil && stderrors.Is(err, ctx.Err()) {
			continue
		}
		p.diagnostics.Warn("%v", err)
		result.addError(err)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	result.Rules = rules.Len()
	p.diagnostics.Verbose("Found %d validation rules", rules.Len())
	if p.diagnostics.IsVerbose() {
		p.diagnostics.Indent()
		for _, rule := range rules.Rules() {
			p.diagnostics.List(rule)
		}
		p.diagnostics.Unindent()
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}
		p.processFile(file, rules, result)
	}

	stats := p.fileOps.Cache().Stats()
	p.diagnostics.Debug("Header cache: %d hits, %d misses", stats.Hits, stats.Misses)

	result.Duration = time.Since(start)
	return result, nil
}

// processFile handles every unprocessed marker of one header and writes it at most once
func (p *Processor) processFile(path string, rules *registry.MacroRegistry, result *RunResult) {
	editor, err := injector.Open(p.fileOps, path)
	if err != nil {
		p.diagnostics.Warn("%v", err)
		result.addError(err)
		return
	}

	// verbose runs group each header's output under its path
	if p.diagnostics.IsVerbose() {
		p.diagnostics.Subsection(path)
		p.diagnostics.Indent()
		defer p.diagnostics.Unindent()
	}

	p.processMarkers(editor, enumMarkerName, models.SubjectEnum, rules, result)
	p.processMarkers(editor, p.cfg.ClassMarkerName(), models.SubjectClass, rules, result)

	written, err := editor.Commit(p.cfg.DryRun)
	if err != nil {
		p.diagnostics.Error("%v", err)
		result.addError(err)
		return
	}
	if written {
		result.FilesChanged = append(result.FilesChanged, path)
		if p.cfg.DryRun {
			p.diagnostics.PhaseProgress("Would write " + path)
		} else {
			p.diagnostics.PhaseProgress("Writing " + path)
		}
	}
}

// processMarkers handles markers one at a time against a freshly classified buffer since
// each edit shifts the lines below it. Markers that fail stay unprocessed and are passed over.
func (p *Processor) processMarkers(editor *injector.Editor, name string, subject models.Subject, rules *registry.MacroRegistry, result *RunResult) {
	passed := 0
	for {
		pending := unprocessed(annotations.FindMarkers(editor.Lines(), name, subject))
		if passed >= len(pending) {
			return
		}
		marker := pending[passed]

		var (
			lines   []string
			outcome DeclarationResult
			err     error
		)
		if subject == models.SubjectEnum {
			lines, outcome, err = p.processEnum(editor.Lines(), marker)
		} else {
			lines, outcome, err = p.processClass(editor.Lines(), marker, rules)
		}
		outcome.File = editor.Path()
		attachFile(err, editor.Path())

		if outcome.Outcome.Succeeded() {
			editor.Apply(lines)
			p.diagnostics.PhaseItem(fmt.Sprintf("%s %s (%s)", subject, marker.Declaration, outcome.Outcome))
			if p.cfg.DryRun && outcome.Code != "" {
				p.diagnostics.Verbose("Generated for %s:\n%s", marker.Declaration, outcome.Code)
			}
		} else {
			passed++
			if err != nil {
				p.diagnostics.Warn("%s %s skipped: %v", subject, marker.Declaration, err)
			}
		}

		result.record(outcome, err)
	}
}

func unprocessed(markers []models.Marker) []models.Marker {
	var pending []models.Marker
	for _, marker := range markers {
		if marker.Kind == models.MarkerUnprocessed {
			pending = append(pending, marker)
		}
	}
	return pending
}

func locationOf(marker models.Marker) errors.SourceLocation {
	return errors.SourceLocation{Line: marker.DeclarationLine}
}

// attachFile fills in the header path on errors raised from line buffers
func attachFile(err error, path string) {
	var structErr *errors.StructureError
	if stderrors.As(err, &structErr) {
		if structErr.Loc.File == "" {
			structErr.Loc.File = path
		}
		return
	}
	var baseErr *errors.BaseError
	if stderrors.As(err, &baseErr) && baseErr.Loc.File == "" {
		baseErr.Loc.File = path
	}
}

// processEnum locates, extracts, generates and injects one enum
func (p *Processor) processEnum(lines []string, marker models.Marker) ([]string, DeclarationResult, error) {
	outcome := DeclarationResult{
		Line:    marker.Line,
		Subject: models.SubjectEnum,
		Name:    marker.Declaration,
		Outcome: models.OutcomeSkipped,
	}

	boundary, err := parser.LocateFrom(lines, parser.DeclEnum, marker.Declaration, marker.Line)
	if err != nil {
		outcome.Detail = "declaration not found"
		return lines, outcome, err
	}

	enum := parser.ExtractEnum(lines, boundary, marker.Declaration)
	outcome.Fields = len(enum.Values)
	if len(enum.Values) == 0 {
		outcome.Detail = "no values"
		return lines, outcome, errors.NewEmptyEnumError(marker.Declaration, locationOf(marker))
	}

	code, err := p.generator.GenerateEnum(enum.Name, enum.Values)
	if err != nil {
		outcome.Outcome = models.OutcomeFailed
		outcome.Detail = "generation failed"
		return lines, outcome, err
	}
	outcome.Code = code

	return p.finish(lines, marker, outcome, func(flipped []string) ([]string, models.Outcome) {
		return injector.InjectEnum(flipped, enum.Name, code)
	}, injector.EnumIncludes())
}

// processClass locates, extracts, binds, generates and injects one class
func (p *Processor) processClass(lines []string, marker models.Marker, rules *registry.MacroRegistry) ([]string, DeclarationResult, error) {
	outcome := DeclarationResult{
		Line:    marker.Line,
		Subject: models.SubjectClass,
		Name:    marker.Declaration,
		Outcome: models.OutcomeSkipped,
	}

	boundary, err := parser.LocateFrom(lines, parser.DeclClass, marker.Declaration, marker.Line)
	if err != nil {
		outcome.Detail = "declaration not found"
		return lines, outcome, err
	}

	stream := annotations.ClassifyRange(lines, boundary)
	fields := parser.ExtractFieldsFrom(stream)
	outcome.Fields = len(fields)
	if len(fields) == 0 {
		outcome.Detail = "no fields"
		return lines, outcome, errors.NewFieldExtractionEmptyError(marker.Declaration, locationOf(marker))
	}

	bindings := binding.BindStream(stream, rules)
	outcome.Rules = bindings.Len()
	if bindings.Len() > 0 {
		p.diagnostics.Verbose("%s validates %s", marker.Declaration, strings.Join(bindings.Rules(), ", "))
	}

	code, err := p.generator.GenerateClass(marker.Declaration, fields, bindings)
	if err != nil {
		outcome.Outcome = models.OutcomeFailed
		outcome.Detail = "generation failed"
		return lines, outcome, err
	}
	outcome.Code = code

	return p.finish(lines, marker, outcome, func(flipped []string) ([]string, models.Outcome) {
		return injector.InjectClass(flipped, boundary, code)
	}, injector.ClassIncludes(fields))
}

// finish applies an injection and its includes. The marker is rewritten in place first so
// its line number still holds, but nothing is kept unless the injection succeeds.
func (p *Processor) finish(lines []string, marker models.Marker, outcome DeclarationResult, inject func([]string) ([]string, models.Outcome), includes []string) ([]string, DeclarationResult, error) {
	flipped, ok := annotations.MarkProcessed(lines, marker)
	if !ok {
		outcome.Outcome = models.OutcomeFailed
		outcome.Detail = "marker could not be rewritten"
		return lines, outcome, errors.Newf(errors.GenerationErrorCode, "marker for '%s' moved before it could be rewritten", marker.Declaration).
			WithLocation(errors.SourceLocation{Line: marker.Line})
	}

	injected, injectOutcome := inject(flipped)
	outcome.Outcome = injectOutcome

	switch injectOutcome {
	case models.OutcomeFailed:
		outcome.Detail = "no insertion point"
		err := errors.Newf(errors.GenerationErrorCode, "no place to insert generated code for %s '%s'", marker.Subject, marker.Declaration).
			WithLocation(locationOf(marker))
		if marker.Subject == models.SubjectEnum {
			err.WithSuggestion("Enum code is inserted before the last #endif; add an include guard")
		} else {
			err.WithSuggestion("Open and close the class body on separate lines")
		}
		return lines, outcome, err
	case models.OutcomeAlreadyPresent:
		outcome.Detail = "methods already present"
		outcome.Code = ""
		return injected, outcome, nil
	}

	withIncludes, added := injector.EnsureIncludes(injected, includes...)
	if added > 0 {
		outcome.Detail = fmt.Sprintf("%d include(s) added", added)
	}
	return withIncludes, outcome, nil
}
