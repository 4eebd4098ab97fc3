// Package pipeline implements the landing page build stages.
//
// A page body moves through these stages:
//   - Markdown conversion via goldmark (only for markdown bodies)
//   - Document assembly: head metadata, utility stylesheet, page CSS
//   - Tracking script injection, skipped when the body already carries one
//   - Structural validation of the assembled document (CTA button checks)
//
// Sanitization lives in the sibling sanitize package and runs between
// conversion and assembly. Every stage is a pure function of its inputs and
// safe for concurrent use.
package pipeline
