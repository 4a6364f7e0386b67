package docgen

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/bps3210/simkak/internal/utils"
	"github.com/bps3210/simkak/pkg/docx"
	"github.com/bps3210/simkak/pkg/kak"
	log "github.com/sirupsen/logrus"
)

type Stage string

const (
	StageIdle            Stage = "idle"
	StageResolvingSource Stage = "resolving_source"
	StageValidating      Stage = "validating"
	StageMapping         Stage = "mapping"
	StageRendering       Stage = "rendering"

	StageDone              Stage = "DONE"
	StageSourceUnavailable Stage = "SOURCE_UNAVAILABLE"
	StageTemplateInvalid   Stage = "TEMPLATE_INVALID"
	StageRenderFailed      Stage = "RENDER_FAILED"
)

var (
	ErrSourceUnavailable = errors.New("no template source available")
	ErrUnknownProfile    = errors.New("unknown mapping profile")
)

type TemplateInvalidError struct {
	Issues []string
}

func (e *TemplateInvalidError) Error() string {
	return fmt.Sprintf("template invalid: %v", e.Issues)
}

// RenderFailedError is a template authoring defect. Retrying does not help.
type RenderFailedError struct {
	Diagnostic Diagnostic
	Err        error
}

func (e *RenderFailedError) Error() string {
	return fmt.Sprintf("render failed: %v", e.Err)
}

func (e *RenderFailedError) Unwrap() error {
	return e.Err
}

// StageError carries the terminal stage a generation stopped in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type TemplateResolver interface {
	Resolve(ctx context.Context, explicitPath string) (ResolvedTemplate, error)
}

type Request struct {
	Proposal     kak.Proposal
	TemplatePath string
	// ProfileId overrides the profile recorded for the template.
	ProfileId string
}

type Document struct {
	Filename string
	Content  []byte
	Source   string
	Template string
	Profile  string
}

type Generator struct {
	resolver       TemplateResolver
	validator      *Validator
	mapper         *Mapper
	reporter       *Reporter
	clock          utils.Clock
	defaultProfile string
}

func NewGenerator(resolver TemplateResolver, validator *Validator, mapper *Mapper, reporter *Reporter,
	clock utils.Clock, defaultProfile string) *Generator {
	return &Generator{
		resolver:       resolver,
		validator:      validator,
		mapper:         mapper,
		reporter:       reporter,
		clock:          clock,
		defaultProfile: defaultProfile,
	}
}

type generation struct {
	id    string
	stage Stage
}

func (g *generation) enter(next Stage) {
	log.Debugf("Document generation for %s: %s -> %s", g.id, g.stage, next)
	g.stage = next
}

func (g *generation) fail(terminal Stage, err error) error {
	g.enter(terminal)
	return &StageError{Stage: terminal, Err: err}
}

// Generate runs one document generation from template resolution to the rendered file.
func (g *Generator) Generate(ctx context.Context, req Request) (Document, error) {
	run := &generation{id: req.Proposal.Id.String(), stage: StageIdle}
	if req.ProfileId != "" && !HasProfile(req.ProfileId) {
		return Document{}, fmt.Errorf("%w: %s", ErrUnknownProfile, req.ProfileId)
	}

	run.enter(StageResolvingSource)
	resolved, err := g.resolver.Resolve(ctx, req.TemplatePath)
	if err != nil {
		log.Warnf("No template source available: %v", err)
		return Document{}, run.fail(StageSourceUnavailable, fmt.Errorf("%w: %w", ErrSourceUnavailable, err))
	}

	run.enter(StageValidating)
	if result := g.validator.Validate(resolved.Content); !result.Valid {
		return Document{}, run.fail(StageTemplateInvalid, &TemplateInvalidError{Issues: result.Issues})
	}

	run.enter(StageMapping)
	profile := g.selectProfile(req.ProfileId, resolved.Profile)
	bag := g.mapper.Map(req.Proposal, profile)

	run.enter(StageRendering)
	content, err := docx.Merge(resolved.Content, bag, docx.Options{
		Delimiters: profile.Delimiters,
		LineBreaks: true,
		OnMissing: func(part, name string) {
			log.Warnf("Mapping degraded: placeholder %s in %s has no value", name, part)
		},
	})
	if err != nil {
		diagnostic := g.reporter.Report(err, profile.Delimiters)
		log.Warnf("Rendering %s failed: %s", resolved.Path, diagnostic.Summary)
		return Document{}, run.fail(StageRenderFailed, &RenderFailedError{Diagnostic: diagnostic, Err: err})
	}

	run.enter(StageDone)
	return Document{
		Filename: Filename(req.Proposal.JenisKAK, g.clock),
		Content:  content,
		Source:   resolved.Source,
		Template: resolved.Path,
		Profile:  profile.Id,
	}, nil
}

func (g *Generator) selectProfile(requested, recorded string) Profile {
	for _, id := range []string{requested, recorded, g.defaultProfile} {
		if p, ok := LookupProfile(id); ok {
			return p
		}
		if id != "" {
			log.Warnf("Unknown mapping profile %q, trying next", id)
		}
	}
	return CamelV1
}

type CheckResult struct {
	Valid        bool        `json:"valid"`
	Issues       []string    `json:"issues,omitempty"`
	Placeholders []string    `json:"placeholders,omitempty"`
	Unknown      []string    `json:"unknown,omitempty"`
	Diagnostic   *Diagnostic `json:"diagnostic,omitempty"`
}

// Check validates a template and lexes its placeholders without rendering anything.
func (g *Generator) Check(content []byte, profileId string) CheckResult {
	profile := g.selectProfile(profileId, "")
	if result := g.validator.Validate(content); !result.Valid {
		return CheckResult{Issues: result.Issues}
	}
	names, err := docx.Inspect(content, profile.Delimiters)
	result := CheckResult{Valid: err == nil, Placeholders: names}
	if err != nil {
		diagnostic := g.reporter.Report(err, profile.Delimiters)
		result.Diagnostic = &diagnostic
	}
	known := profile.KnownKeys()
	for _, name := range names {
		if !known[name] {
			result.Unknown = append(result.Unknown, name)
		}
	}
	return result
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename is KAK_<jenis with whitespace as underscores>_<YYYY-MM-DD>.docx.
func Filename(jenis string, clock utils.Clock) string {
	return fmt.Sprintf("KAK_%s_%s.docx", whitespace.ReplaceAllString(jenis, "_"), utils.Today(clock).Format("2006-01-02"))
}
