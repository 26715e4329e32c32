package eventbrite

import "regexp"

// Eventbrite exposes the same event id through several URL shapes:
//
//	https://www.eventbrite.com/e/<slug>-tickets-<id>
//	https://www.eventbrite.com/e/<id>
//	https://www.eventbrite.com/e/<slug>-<id>?aff=...
//	https://www.eventbrite.com/myevent?eid=<id>
var (
	pathIDPattern  = regexp.MustCompile(`/e/(?:[^/?#]*?-)?(\d+)(?:[/?#]|$)`)
	queryIDPattern = regexp.MustCompile(`[?&]eid=(\d+)(?:[&#]|$)`)
)

// ExtractEventID pulls the numeric event id out of any canonical Eventbrite
// event URL. Unrelated URLs yield the empty string, never an error.
func ExtractEventID(rawURL string) string {
	if m := pathIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	if m := queryIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}
