package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

// Sentinel errors for structural validation.
var (
	ErrMissingCTA   = errors.New("no CTA button")
	ErrCTANotButton = errors.New("CTA id on non-button element")
	ErrParse        = errors.New("HTML validation failed")
)

// StructureError is a validation failure that can be shown to page authors.
type StructureError struct {
	Kind    error  // ErrMissingCTA or ErrCTANotButton
	Message string // author-facing text
}

func (e *StructureError) Error() string { return e.Message }

func (e *StructureError) Unwrap() error { return e.Kind }

func missingCTA(id string) *StructureError {
	return &StructureError{
		Kind:    ErrMissingCTA,
		Message: fmt.Sprintf("Landing page must have at least one <button> with id='%s' for tracking to work.", id),
	}
}

func ctaNotButton(id string) *StructureError {
	return &StructureError{
		Kind:    ErrCTANotButton,
		Message: fmt.Sprintf("The id '%s' can only be used on <button> elements.", id),
	}
}

// StructureValidator defines the contract for validating an assembled page.
type StructureValidator interface {
	Validate(ctx context.Context, htmlContent, ctaID string) error
}

// CTAValidator checks the CTA button constraints with goquery.
type CTAValidator struct{}

// Validate parses htmlContent and checks every element whose id equals
// ctaID: there must be at least one and all of them must be <button>s.
// Several buttons sharing the id are accepted.
// Returns a *StructureError for author mistakes and an error wrapping
// ErrParse when the document cannot be parsed.
func (CTAValidator) Validate(ctx context.Context, htmlContent, ctaID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}

	if ctaID == "" {
		return missingCTA(ctaID)
	}

	matches := doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == ctaID
	})
	if matches.Length() == 0 {
		return missingCTA(ctaID)
	}

	for _, n := range matches.Nodes {
		if n.DataAtom != atom.Button {
			return ctaNotButton(ctaID)
		}
	}
	return nil
}
