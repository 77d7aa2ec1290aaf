package model

// watchURLPrefix is the base of a YouTube watch page URL.
// The video id is appended verbatim; ids are opaque and never escaped.
const watchURLPrefix = "https://www.youtube.com/watch?v="

// VideoRef identifies a single video in the content graph.
// The ID is the platform-assigned identifier and is the sole basis for
// graph identity and deduplication. Title, Channel, and Description are
// display metadata carried along for output and for keyword-based
// expansion; they never participate in identity checks.
type VideoRef struct {
	// ID is the opaque platform identifier (e.g. "dQw4w9WgXcQ").
	ID string

	// Title is the video title as returned by the search API.
	Title string

	// Channel is the display name of the channel that published the video.
	Channel string

	// Description is the (possibly truncated) video description.
	// An empty description disables keyword-based expansion for this video.
	Description string
}

// WatchURL returns the public watch page URL for the video.
func (v VideoRef) WatchURL() string {
	return watchURLPrefix + v.ID
}
