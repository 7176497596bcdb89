package events

import "context"

// Streams
const (
	StreamAds        = "events:ads"
	StreamModeration = "events:moderation"
)

// Event types
const (
	EventAdSubmitted        = "ad_submitted"
	EventAdStatusChanged    = "ad_status_changed"
	EventImageReviewChanged = "image_review_changed"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
