package mvpbuild

import (
	"fmt"
	"strings"
)

// Body formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Field length limits. Pages are built on every editor save, so oversized
// input is rejected before any parsing happens.
const (
	MaxIDLength          = 128
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxBodyLength        = 512 << 10
	MaxStylesLength      = 128 << 10
)

// PageSpec is the editor's input for one build.
type PageSpec struct {
	IdeaID          string  `json:"ideaId" yaml:"ideaId"`
	MVPID           *string `json:"mvpId,omitempty" yaml:"mvpId,omitempty"`
	BodyContent     string  `json:"bodyContent" yaml:"bodyContent"`           // untrusted
	Styles          string  `json:"styles,omitempty" yaml:"styles,omitempty"` // untrusted, not sanitized
	MetaTitle       string  `json:"metaTitle" yaml:"metaTitle"`
	MetaDescription string  `json:"metaDescription" yaml:"metaDescription"`
	CTAButtonID     string  `json:"ctaButtonId" yaml:"ctaButtonId"`
	Format          string  `json:"format,omitempty" yaml:"format,omitempty"` // "", "html" or "markdown"
}

// Validate checks required fields, lengths and the body format.
// Does not inspect the markup itself; that is the pipeline's job.
func (p *PageSpec) Validate() error {
	if strings.TrimSpace(p.IdeaID) == "" {
		return ErrEmptyIdeaID
	}
	if strings.TrimSpace(p.CTAButtonID) == "" {
		return ErrEmptyCTAButtonID
	}

	limits := []struct {
		field string
		value string
		max   int
	}{
		{"ideaId", p.IdeaID, MaxIDLength},
		{"ctaButtonId", p.CTAButtonID, MaxIDLength},
		{"metaTitle", p.MetaTitle, MaxTitleLength},
		{"metaDescription", p.MetaDescription, MaxDescriptionLength},
		{"bodyContent", p.BodyContent, MaxBodyLength},
		{"styles", p.Styles, MaxStylesLength},
	}
	if p.MVPID != nil {
		limits = append(limits, struct {
			field string
			value string
			max   int
		}{"mvpId", *p.MVPID, MaxIDLength})
	}
	for _, l := range limits {
		if len(l.value) > l.max {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, l.field, len(l.value), l.max)
		}
	}

	if !isValidFormat(p.Format) {
		return fmt.Errorf("%w: %q (must be html or markdown)", ErrInvalidFormat, p.Format)
	}
	return nil
}

// isValidFormat checks the body format (case-insensitive, empty = html).
func isValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "", FormatHTML, FormatMarkdown:
		return true
	}
	return false
}

// ValidationResult is the outcome of a build. Exactly one of two shapes
// holds: {HTML set, IsValid} or {HTML empty, !IsValid, ErrorMessage set}.
type ValidationResult struct {
	HTML         string `json:"html"`
	IsValid      bool   `json:"isValid"`
	ErrorMessage string `json:"errorMessage"`
}

func validResult(html string) ValidationResult {
	return ValidationResult{HTML: html, IsValid: true}
}

func invalidResult(msg string) ValidationResult {
	if msg == "" {
		msg = GenericFailureMessage
	}
	return ValidationResult{ErrorMessage: msg}
}
