package playback

import (
	"fmt"
	"strings"

	"github.com/zembrodt/showtunes-sub000/internal/services"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

const playlistContext = "playlist"

// ParseContextURI splits a context URI of the form "spotify:type:id".
//
// Anything other than exactly three non-empty segments is invalid.
func ParseContextURI(uri string) (kind, id string, err error) {
	parts := strings.Split(uri, ":")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("%w: %q", shared.ErrInvalidContext, uri)
	}
	return parts[1], parts[2], nil
}

// playlistID extracts the playlist id when c is a playlist context.
func playlistID(c *services.PlaybackContext) (string, bool) {
	if c == nil || c.Type != playlistContext {
		return "", false
	}

	kind, id, err := ParseContextURI(c.URI)
	if err != nil || kind != playlistContext {
		return "", false
	}
	return id, true
}
