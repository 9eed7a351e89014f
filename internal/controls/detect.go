package controls

import "strings"

// Env describes the client the portal is rendering for.
type Env struct {
	Width  int
	Height int
	// Touch is set when the client reports touch or the user forced it.
	Touch bool
	// UserAgent is whatever identifies the client: the SSH client version
	// string for remote sessions, TERM_PROGRAM locally.
	UserAgent string
}

// mobileAgents are substrings of client identifiers used by phone and
// tablet terminals.
var mobileAgents = []string{
	"android",
	"iphone",
	"ipad",
	"mobile",
	"termius",
	"blink",
	"juicessh",
	"connectbot",
	"termux",
	"a-shell",
}

// IsMobileAgent reports whether the client identifier looks like a mobile
// terminal.
func IsMobileAgent(ua string) bool {
	ua = strings.ToLower(ua)
	for _, m := range mobileAgents {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}

// Compact reports whether the virtual pad overlay should be shown.
// Any one signal is enough: touch capability, a viewport narrower than
// threshold columns, or a mobile client identifier.
func Compact(env Env, threshold int) bool {
	if env.Touch {
		return true
	}
	if threshold > 0 && env.Width > 0 && env.Width < threshold {
		return true
	}
	return IsMobileAgent(env.UserAgent)
}
