package query

import (
	"regexp"
)

// meetingURLPatterns cover the common video-conferencing providers.
// Checked in this order; the first provider with a hit wins regardless
// of position in the notes.
var meetingURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://[^\s<>"]*zoom\.us[^\s<>"]*`),
	regexp.MustCompile(`(?i)https?://[^\s<>"]*meet\.google\.com[^\s<>"]*`),
	regexp.MustCompile(`(?i)https?://[^\s<>"]*teams\.microsoft\.com[^\s<>"]*`),
	regexp.MustCompile(`(?i)https?://[^\s<>"]*webex\.com[^\s<>"]*`),
}

// ExtractMeetingURL derives an event's meeting link. A non-empty
// structured URL always wins; otherwise the notes are scanned for a
// known provider URL, returned verbatim. Nil when nothing matches.
// The match is not validated beyond the pattern.
func ExtractMeetingURL(structuredURL, notes string) *string {
	if structuredURL != "" {
		return &structuredURL
	}
	if notes == "" {
		return nil
	}
	for _, pattern := range meetingURLPatterns {
		if match := pattern.FindString(notes); match != "" {
			return &match
		}
	}
	return nil
}
