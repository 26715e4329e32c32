// Package distribution derives the stable identity of an event on a channel.
package distribution

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"eventcast/internal/domain/event"
)

// fieldSeparator joins the identity fields. Control characters are stripped
// from every field first, so the separator cannot be smuggled in through
// input and joined fields never collide across boundaries.
const fieldSeparator = "\x1f"

// Fingerprint returns the idempotency key for (event, venue, channel).
//
// Only identity-bearing fields participate: title, date, start time, the
// venue's name/address/city/state and the channel discriminator (e.g. a
// parent page id). Description, images and other editable content are
// excluded so the key survives content edits. No call timestamps, no salts:
// equal inputs always hash to the same 64-char lowercase hex string.
func Fingerprint(e event.Event, v event.Venue, discriminator string) string {
	fields := []string{
		e.Title(),
		e.Date().String(),
		e.StartTime(),
		v.Name(),
		v.Address(),
		v.City(),
		v.State(),
		discriminator,
	}
	for i := range fields {
		fields[i] = stripControl(fields[i])
	}

	sum := sha256.Sum256([]byte(strings.Join(fields, fieldSeparator)))
	return hex.EncodeToString(sum[:])
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
