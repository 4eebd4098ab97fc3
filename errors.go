package mvpbuild

import "errors"

// GenericFailureMessage is shown to authors when a build fails for a reason
// they cannot fix (parse failure, internal error). The cause is logged.
const GenericFailureMessage = "HTML validation failed"

// Sentinel errors for page spec validation.
var (
	ErrEmptyIdeaID      = errors.New("idea id cannot be empty")
	ErrEmptyCTAButtonID = errors.New("CTA button id cannot be empty")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrInvalidFormat    = errors.New("invalid body format")
)

// Tracking message errors.
var (
	ErrNotTrackingMessage = errors.New("not a tracking message")
	ErrUnknownEventType   = errors.New("unknown tracking event type")
)

// Preview errors.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("screenshot capture failed")
	ErrInvalidSize    = errors.New("invalid viewport size")
)
