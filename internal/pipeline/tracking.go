package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// TrackingMarker is the attribute identifying an injected tracking script.
const TrackingMarker = `data-founder-signal-script="true"`

// Defaults for tracking script rendering.
const (
	DefaultTargetOrigin    = "http://localhost:3000"
	DefaultAcknowledgement = "Thanks for your interest! We'll be in touch soon."
)

// ErrTrackingRender indicates the tracking template failed to execute.
var ErrTrackingRender = errors.New("tracking script rendering failed")

// TrackingData parameterizes the analytics script of one page.
type TrackingData struct {
	IdeaID          string
	MVPID           *string // nil renders as null
	CTAElementID    string
	TargetOrigin    string // postMessage target origin
	Acknowledgement string // alert text shown after a CTA click
}

// TrackingInjector defines the contract for rendering the tracking script.
type TrackingInjector interface {
	Script(data *TrackingData) (string, error)
}

// TrackingInjection renders the tracking script from an html/template, so
// every value is JS-escaped by the template engine.
type TrackingInjection struct {
	tmpl *template.Template
}

// NewTrackingInjection creates a TrackingInjection from template content.
// Returns error if the template cannot be parsed.
func NewTrackingInjection(tmplContent string) (*TrackingInjection, error) {
	tmpl, err := template.New("tracking").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing tracking template: %w", err)
	}
	return &TrackingInjection{tmpl: tmpl}, nil
}

// trackingView is what the template sees. MVPID is an interface so a
// missing id marshals to null.
type trackingView struct {
	IdeaID          string
	MVPID           any
	CTAElementID    string
	TargetOrigin    string
	Acknowledgement string
}

// Script renders the tracking <script> block for data.
func (t *TrackingInjection) Script(data *TrackingData) (string, error) {
	if data == nil {
		return "", nil
	}

	view := trackingView{
		IdeaID:          data.IdeaID,
		CTAElementID:    data.CTAElementID,
		TargetOrigin:    data.TargetOrigin,
		Acknowledgement: data.Acknowledgement,
	}
	if data.MVPID != nil {
		view.MVPID = *data.MVPID
	}
	if view.TargetOrigin == "" {
		view.TargetOrigin = DefaultTargetOrigin
	}
	if view.Acknowledgement == "" {
		view.Acknowledgement = DefaultAcknowledgement
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTrackingRender, err)
	}
	return buf.String(), nil
}

// HasTrackingScript reports whether body already carries the tracking marker.
func HasTrackingScript(body string) bool {
	return strings.Contains(body, TrackingMarker)
}
