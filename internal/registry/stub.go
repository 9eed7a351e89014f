package registry

import (
	"time"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/session"
)

// Stub returns the placeholder factory used for ids without a module.
// It draws a static "coming soon" card and keeps a no-op frame loop.
func Stub(id string) Factory {
	title, emoji := id, "🎮"
	if e, ok := catalog.Default().Lookup(id); ok {
		title, emoji = e.Title, e.Emoji
	}

	return func(s *session.Session) (Cleanup, error) {
		stop := s.OnFrame(func(time.Duration) {
			drawComingSoon(s.Canvas(), title, emoji)
		})
		return Cleanup(stop), nil
	}
}

func drawComingSoon(dst *core.Screen, title, emoji string) {
	dst.Clear()
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-2, emoji)
	dst.DrawTextCenteredColor(mid, title, core.ColorBrightWhite)
	dst.DrawTextCenteredColor(mid+2, "Coming soon!", core.ColorYellow)
	dst.DrawTextCenteredColor(mid+4, "Esc: back to the arcade", core.ColorGray)
}
