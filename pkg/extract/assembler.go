// Package extract turns a parsed CELLAR tree notice into a metadata record.
//
// The notice embeds the act together with related documents, so extraction
// first resolves which work node is the act itself and then resolves every
// field relative to it, falling back to tree-wide paths when no work node can
// be found. All paths come from a mapping.Mapping; this package only knows
// field keys.
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mnov88/marked/pkg/mapping"
	"github.com/mnov88/marked/pkg/notice"
)

// DefaultLanguage is the working language when none is configured.
const DefaultLanguage = "eng"

// Assembler runs every field group over a notice. It holds no per-document
// state and is safe for concurrent use.
type Assembler struct {
	mapping  *mapping.Mapping
	language string
	clock    func() time.Time
	trace    bool
	logger   *slog.Logger
}

// Option configures an Assembler.
type Option func(assembler *Assembler)

// WithLanguage sets the working language as a lower-case ISO 639-2 code.
func WithLanguage(language string) Option {
	return func(assembler *Assembler) {
		assembler.language = language
	}
}

// WithClock replaces time.Now for the extraction timestamp.
func WithClock(clock func() time.Time) Option {
	return func(assembler *Assembler) {
		assembler.clock = clock
	}
}

// WithTrace records which scope and path produced each field.
func WithTrace(trace bool) Option {
	return func(assembler *Assembler) {
		assembler.trace = trace
	}
}

// WithLogger sets the logger for fallback warnings and debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(assembler *Assembler) {
		assembler.logger = logger
	}
}

// NewAssembler checks that fieldMapping declares every field the extractor
// reads. A mapping that does not is a configuration error.
func NewAssembler(fieldMapping *mapping.Mapping, opts ...Option) (*Assembler, error) {
	if fieldMapping == nil {
		return nil, errors.New("mapping cannot be nil")
	}
	if err := fieldMapping.Validate(Requirements()); err != nil {
		return nil, err
	}

	assembler := &Assembler{
		mapping:  fieldMapping,
		language: DefaultLanguage,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(assembler)
	}
	if assembler.logger == nil {
		assembler.logger = slog.Default()
	}
	return assembler, nil
}

// Language returns the working language.
func (assembler *Assembler) Language() string {
	return assembler.language
}

// Assemble extracts a record from tree. hint, when non-empty, is the CELEX
// identifier of the act the caller expects the notice to describe.
func (assembler *Assembler) Assemble(tree *notice.Tree, hint string) (*Record, error) {
	if tree == nil {
		return nil, fmt.Errorf("failed to assemble record: tree cannot be nil")
	}

	languages := DetectLanguages(tree, assembler.mapping)

	candidates := CollectCandidates(tree, assembler.mapping)
	mainWork := SelectMainWork(candidates, hint)

	var provenance Provenance
	if assembler.trace {
		provenance = Provenance{}
	}
	fieldScope := newFieldScope(assembler.mapping, tree, mainWork, provenance)

	document := Document{
		Languages:      languages,
		Title:          extractTitle(fieldScope, assembler.language),
		Dates:          extractDates(fieldScope),
		Identifiers:    extractIdentifiers(fieldScope),
		Eurovoc:        extractClassification(fieldScope),
		CaseLaw:        extractCaseLaw(fieldScope),
		Implementation: extractImplementation(fieldScope),
		LegalRelations: AggregateRelations(collectRelations(fieldScope)),
		Metadata:       extractAdministrative(fieldScope),
	}

	record := &Record{
		ExtractionTimestamp: assembler.clock().Format(time.RFC3339),
		SelectedLanguage:    assembler.language,
		AvailableLanguages:  languages,
		Extraction: Extraction{
			Mode:          fieldScope.mode(),
			MainWorkCELEX: mainWork.CELEX(),
			Candidates:    len(candidates),
			Hint:          hint,
			Mapping:       assembler.mapping.Source(),
			Provenance:    provenance,
		},
		Document: document,
		Stats:    ComputeStats(&document),
		celex:    ActingCELEX(mainWork, hint),
	}

	if record.Extraction.Mode == ModeTreeFallback {
		assembler.logger.Warn("no main work resolved, using tree-wide paths",
			"source", tree.Source(), "hint", hint)
	}
	assembler.logger.Debug("assembled record",
		"celex", record.celex,
		"mode", record.Extraction.Mode,
		"candidates", len(candidates),
		"cases", record.Stats.Cases,
		"relations", record.Stats.Relations)

	return record, nil
}
