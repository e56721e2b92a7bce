package search

import (
	"strings"
)

// Commerce and purchase indicators. A result matching any of these is dropped
// regardless of which site it came from.
var blockedKeywords = []string{
	"amazon", "ebay", "walmart", "shop", "/buy", "/product", "checkout",
	"udemy.com/course",
}

var learningSites = []string{
	"tinybuddha.com", "psychologytoday.com", "personalityjunkie.com",
	"hbr.org", "huffpost.com", "forbes.com", "personalexcellence.co",
	"psyche.co", "medium.com", "theguardian.com", "bbc.co.uk",
}

var learningIndicators = []string{"article", "blog", "guide"}

var eventSites = []string{
	"eventbrite.co.uk", "eventbrite.com", "meetup.com", "skiddle.com",
	"dice.fm", "feverup.com", "timeout.com", "londonist.com",
	"ticketmaster.co.uk", "ticketmaster.com", "residentadvisor.net",
	"designmynight.com",
}

var eventIndicators = []string{"event", "ticket", "meetup", "show", "gig", "festival"}

// StripFragment is the dedup identity key: the URL with any #fragment
// removed. Query strings are kept, so ?page=2 stays distinct.
func StripFragment(rawURL string) string {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

// Dedupe removes results sharing a fragment-stripped URL. First occurrence
// wins and insertion order is preserved.
func Dedupe(results []Result) []Result {
	seen := make(map[string]struct{}, len(results))
	out := make([]Result, 0, len(results))
	for _, r := range results {
		key := StripFragment(r.URL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Denied reports whether the result matches the commerce deny list.
func Denied(r Result) bool {
	haystack := strings.ToLower(r.URL) + " " + strings.ToLower(r.Title)
	for _, kw := range blockedKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// Allowed reports whether the result belongs to a preferred domain for the
// mode, or at least carries a generic content indicator in its URL or title.
func Allowed(mode Mode, r Result) bool {
	loweredURL := strings.ToLower(r.URL)
	loweredTitle := strings.ToLower(r.Title)

	sites := learningSites
	indicators := learningIndicators
	if mode == ModeEvents {
		sites = eventSites
		indicators = eventIndicators
	}

	for _, site := range sites {
		if strings.Contains(loweredURL, site) {
			return true
		}
	}
	for _, indicator := range indicators {
		if strings.Contains(loweredURL, indicator) || strings.Contains(loweredTitle, indicator) {
			return true
		}
	}
	return false
}

// Filter applies deny then allow rules, keeping input order.
func Filter(mode Mode, results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if Denied(r) {
			continue
		}
		if !Allowed(mode, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
