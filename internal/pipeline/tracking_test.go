package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingInjection_InvalidTemplate(t *testing.T) {
	t.Parallel()

	_, err := NewTrackingInjection("<script>{{.Broken</script>")
	assert.Error(t, err)
}

func TestTrackingInjection_Script(t *testing.T) {
	t.Parallel()

	inj := newTestTracking(t)

	tests := []struct {
		name        string
		data        *TrackingData
		contains    []string
		notContains []string
		matches     []string
	}{
		{
			name: "substitutes values",
			data: &TrackingData{IdeaID: "idea-42", CTAElementID: "cta", TargetOrigin: "https://app.example.com"},
			contains: []string{
				TrackingMarker,
				`var ideaId = "idea-42";`,
				`var ctaElementId = "cta";`,
				`var targetOrigin = "https://app.example.com";`,
			},
			matches: []string{`var mvpId =\s*null\s*;`},
		},
		{
			name:     "mvp id rendered as string",
			data:     &TrackingData{IdeaID: "i", MVPID: strPtr("mvp-7"), CTAElementID: "cta"},
			contains: []string{`var mvpId = "mvp-7";`},
		},
		{
			name:     "defaults applied",
			data:     &TrackingData{IdeaID: "i", CTAElementID: "cta"},
			contains: []string{`"` + DefaultTargetOrigin + `"`, "Thanks for your interest!"},
		},
		{
			name:        "hostile values are js escaped",
			data:        &TrackingData{IdeaID: `</script><script>alert(1)</script>`, CTAElementID: `"; alert(2); "`},
			notContains: []string{"<script>alert(1)", `""; alert(2)`},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := inj.Script(tt.data)
			require.NoError(t, err)
			assert.Equal(t, 1, strings.Count(got, "</script>"))
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
			for _, re := range tt.matches {
				assert.Regexp(t, re, got)
			}
		})
	}
}

func TestTrackingInjection_NilData(t *testing.T) {
	t.Parallel()

	got, err := newTestTracking(t).Script(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHasTrackingScript(t *testing.T) {
	t.Parallel()

	assert.True(t, HasTrackingScript(`<script `+TrackingMarker+`></script>`))
	assert.False(t, HasTrackingScript(`<div data-founder-signal-script="false"></div>`))
	assert.False(t, HasTrackingScript(""))
}
