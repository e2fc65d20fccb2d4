package events

// ReloadEvent signals that the watched theme document was copied into the
// writable location and should be resolved again. It carries no payload.
type ReloadEvent struct{}

// Topic returns the event topic for theme reloads
func (e ReloadEvent) Topic() string {
	return "theme.reload"
}

// ReloadTopic is the topic ReloadEvent is published on.
var ReloadTopic = ReloadEvent{}.Topic()
