package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alnah/go-mvpbuild/internal/assets"
)

// newTestTracking builds a TrackingInjection from the embedded template.
func newTestTracking(t *testing.T) *TrackingInjection {
	t.Helper()

	content, err := assets.LoadTemplate(assets.TrackingTemplateName)
	require.NoError(t, err)

	inj, err := NewTrackingInjection(content)
	require.NoError(t, err)
	return inj
}

func strPtr(s string) *string { return &s }
