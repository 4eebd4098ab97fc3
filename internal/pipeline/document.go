package pipeline

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// DefaultStylesheetURL is the pinned utility CSS linked from every page.
const DefaultStylesheetURL = "https://cdn.jsdelivr.net/npm/tailwindcss@2.2.19/dist/tailwind.min.css"

// documentTemplate is the fixed skeleton of a landing page.
// Arguments: title, description, stylesheet URL, CSS, body, tracking script.
const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<meta name="description" content="%s">
<link href="%s" rel="stylesheet">
<style>%s</style>
</head>
<body>
%s
%s
</body>
</html>`

// DocumentParts holds the already sanitized pieces of a landing page.
type DocumentParts struct {
	Body            string // sanitized body markup
	CSS             string // caller CSS, not sanitized
	MetaTitle       string
	MetaDescription string
	StylesheetURL   string        // empty = DefaultStylesheetURL
	Tracking        *TrackingData // nil = no tracking script
}

// DocumentAssembler defines the contract for wrapping a body into a page.
type DocumentAssembler interface {
	Assemble(ctx context.Context, parts DocumentParts) (string, error)
}

// DocumentAssembly builds landing page documents.
type DocumentAssembly struct {
	tracking TrackingInjector
}

// NewDocumentAssembly creates a DocumentAssembly that renders tracking
// scripts with the given injector.
func NewDocumentAssembly(tracking TrackingInjector) *DocumentAssembly {
	return &DocumentAssembly{tracking: tracking}
}

// Assemble emits the complete document. The tracking script is appended
// before </body> unless the body already contains the tracking marker.
// Only a failing tracking template yields an error.
func (d *DocumentAssembly) Assemble(ctx context.Context, parts DocumentParts) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stylesheet := parts.StylesheetURL
	if stylesheet == "" {
		stylesheet = DefaultStylesheetURL
	}

	var script string
	if parts.Tracking != nil && !HasTrackingScript(parts.Body) {
		var err error
		script, err = d.tracking.Script(parts.Tracking)
		if err != nil {
			return "", fmt.Errorf("rendering tracking script: %w", err)
		}
	}

	return fmt.Sprintf(documentTemplate,
		html.EscapeString(parts.MetaTitle),
		html.EscapeString(parts.MetaDescription),
		html.EscapeString(stylesheet),
		sanitizeCSS(parts.CSS),
		parts.Body,
		script,
	), nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
// The rest of the CSS is kept verbatim.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
