package mvpbuild

import (
	"encoding/json"
	"fmt"
)

// TrackingMessageType is the "type" field of every tracking message.
const TrackingMessageType = "founderSignalTrack"

// EventType identifies what a tracking message reports.
type EventType string

// Event types emitted by published pages.
const (
	EventPageView    EventType = "pageview"
	EventCTAClick    EventType = "cta_click"
	EventScrollDepth EventType = "scroll_depth"
	EventTimeOnPage  EventType = "time_on_page"
)

// Valid reports whether e is one of the known event types.
func (e EventType) Valid() bool {
	switch e {
	case EventPageView, EventCTAClick, EventScrollDepth, EventTimeOnPage:
		return true
	}
	return false
}

// TrackingEvent is one analytics event reported by a published page.
//
// Metadata by type:
//   - pageview: path, title
//   - cta_click: buttonText, ctaElementId
//   - scroll_depth: depth (25, 50, 75 or 100)
//   - time_on_page: duration_seconds
type TrackingEvent struct {
	Type     EventType      `json:"eventType"`
	IdeaID   string         `json:"ideaId"`
	MVPID    *string        `json:"mvpId"`
	Metadata map[string]any `json:"metadata"`
}

// trackingMessage is the postMessage payload.
type trackingMessage struct {
	Type string `json:"type"`
	TrackingEvent
}

// ParseTrackingMessage decodes a message posted by a published page.
// Returns ErrNotTrackingMessage for messages of another type and
// ErrUnknownEventType for unknown event types.
func ParseTrackingMessage(data []byte) (*TrackingEvent, error) {
	var msg trackingMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotTrackingMessage, err)
	}
	if msg.Type != TrackingMessageType {
		return nil, fmt.Errorf("%w: type %q", ErrNotTrackingMessage, msg.Type)
	}
	if !msg.TrackingEvent.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, msg.TrackingEvent.Type)
	}
	if msg.Metadata == nil {
		msg.Metadata = map[string]any{}
	}
	return &msg.TrackingEvent, nil
}
