package mvpbuild

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mvpbuild/internal/assets"
	"github.com/alnah/go-mvpbuild/internal/pipeline"
	"github.com/alnah/go-mvpbuild/internal/sanitize"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.TrackingInjector   = (*pipeline.TrackingInjection)(nil)
	_ pipeline.DocumentAssembler  = (*pipeline.DocumentAssembly)(nil)
	_ pipeline.StructureValidator = pipeline.CTAValidator{}
	_ pipeline.MarkdownConverter  = (*pipeline.GoldmarkConverter)(nil)
)

// Builder turns editor input into a published landing page.
// A Builder holds only immutable configuration and is safe for concurrent use.
type Builder struct {
	logger          *zap.Logger
	targetOrigin    string
	stylesheetURL   string
	acknowledgement string
	highlightStyle  string

	assembler    pipeline.DocumentAssembler
	validator    pipeline.StructureValidator
	markdown     pipeline.MarkdownConverter
	highlightCSS string
}

// NewBuilder creates a Builder with default configuration.
// Returns error if the tracking template cannot be loaded or parsed.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		logger:          zap.NewNop(),
		targetOrigin:    pipeline.DefaultTargetOrigin,
		stylesheetURL:   pipeline.DefaultStylesheetURL,
		acknowledgement: pipeline.DefaultAcknowledgement,
		highlightStyle:  pipeline.DefaultHighlightStyle,
		validator:       pipeline.CTAValidator{},
	}

	for _, opt := range opts {
		opt(b)
	}

	tmpl, err := assets.LoadTemplate(assets.TrackingTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading tracking template: %w", err)
	}
	tracking, err := pipeline.NewTrackingInjection(tmpl)
	if err != nil {
		return nil, fmt.Errorf("initializing tracking injector: %w", err)
	}
	b.assembler = pipeline.NewDocumentAssembly(tracking)

	gm := pipeline.NewGoldmarkConverter(b.highlightStyle)
	b.markdown = gm
	b.highlightCSS, err = gm.HighlightCSS()
	if err != nil {
		return nil, fmt.Errorf("generating highlight CSS: %w", err)
	}

	return b, nil
}

// Build runs sanitize, assemble, inject and validate for one page.
// It never returns an error: every failure becomes an invalid result.
// Recovers from internal panics so one bad page cannot take down a server.
func (b *Builder) Build(ctx context.Context, spec PageSpec) (result ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("build panicked", zap.String("ideaId", spec.IdeaID), zap.Any("panic", r))
			result = invalidResult(GenericFailureMessage)
		}
	}()

	if err := ctx.Err(); err != nil {
		return invalidResult(err.Error())
	}
	if err := spec.Validate(); err != nil {
		return invalidResult(err.Error())
	}

	body := spec.BodyContent
	css := spec.Styles
	if strings.EqualFold(spec.Format, FormatMarkdown) {
		converted, err := b.markdown.ToHTML(ctx, body)
		if isContextErr(err) {
			return invalidResult(err.Error())
		}
		if err != nil {
			b.logger.Error("markdown conversion failed", zap.String("ideaId", spec.IdeaID), zap.Error(err))
			return invalidResult(GenericFailureMessage)
		}
		body = converted
		css = b.highlightCSS + "\n" + css
	}

	html, err := b.assembler.Assemble(ctx, pipeline.DocumentParts{
		Body:            sanitize.HTML(body),
		CSS:             css,
		MetaTitle:       spec.MetaTitle,
		MetaDescription: spec.MetaDescription,
		StylesheetURL:   b.stylesheetURL,
		Tracking: &pipeline.TrackingData{
			IdeaID:          spec.IdeaID,
			MVPID:           spec.MVPID,
			CTAElementID:    spec.CTAButtonID,
			TargetOrigin:    b.targetOrigin,
			Acknowledgement: b.acknowledgement,
		},
	})
	if isContextErr(err) {
		return invalidResult(err.Error())
	}
	if err != nil {
		b.logger.Error("document assembly failed", zap.String("ideaId", spec.IdeaID), zap.Error(err))
		return invalidResult(GenericFailureMessage)
	}

	return b.check(ctx, html, spec.CTAButtonID, spec.IdeaID)
}

// Validate runs only the structural check on an already assembled page.
func (b *Builder) Validate(ctx context.Context, html, ctaID string) ValidationResult {
	return b.check(ctx, html, ctaID, "")
}

func (b *Builder) check(ctx context.Context, html, ctaID, ideaID string) ValidationResult {
	err := b.validator.Validate(ctx, html, ctaID)
	if err == nil {
		return validResult(html)
	}

	var structErr *pipeline.StructureError
	if errors.As(err, &structErr) {
		b.logger.Debug("page rejected",
			zap.String("ideaId", ideaID),
			zap.String("ctaButtonId", ctaID),
			zap.String("reason", structErr.Message))
		return invalidResult(structErr.Message)
	}

	if isContextErr(err) {
		return invalidResult(err.Error())
	}
	b.logger.Error("structural validation failed",
		zap.String("ideaId", ideaID),
		zap.Error(err))
	return invalidResult(GenericFailureMessage)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
