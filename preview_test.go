package mvpbuild

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// These paths return before a browser is launched.

func TestViewport_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		vp      Viewport
		wantErr bool
	}{
		{name: "default", vp: Viewport{Width: DefaultPreviewWidth, Height: DefaultPreviewHeight}},
		{name: "max", vp: Viewport{Width: MaxPreviewDimension, Height: MaxPreviewDimension}},
		{name: "zero width", vp: Viewport{Width: 0, Height: 100}, wantErr: true},
		{name: "negative height", vp: Viewport{Width: 100, Height: -1}, wantErr: true},
		{name: "too wide", vp: Viewport{Width: MaxPreviewDimension + 1, Height: 100}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.vp.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSize)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPreviewer_ScreenshotRejectsBeforeLaunch(t *testing.T) {
	t.Parallel()

	p := NewPreviewer(time.Second)

	_, err := p.Screenshot(context.Background(), "<p>x</p>", &Viewport{Width: 0, Height: 0})
	assert.ErrorIs(t, err, ErrInvalidSize)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Screenshot(ctx, "<p>x</p>", nil)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Nil(t, p.browser, "no browser launched")
	assert.NoError(t, p.Close())
}

func TestNewPreviewer_DefaultTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultPreviewTimeout, NewPreviewer(0).timeout)
	assert.Equal(t, 5*time.Second, NewPreviewer(5*time.Second).timeout)
}
