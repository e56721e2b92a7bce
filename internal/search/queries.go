package search

import (
	"fmt"
	"time"
)

// BuildQueries produces the ordered query list for one topic. Site-scoped
// queries come first: resolution is first-match-wins, so the preferred
// domains get the first shot before the generic fallback.
func BuildQueries(mode Mode, topic, location string) []string {
	switch mode {
	case ModeEvents:
		return buildEventQueries(topic, location)
	default:
		return buildLearningQueries(topic)
	}
}

func buildLearningQueries(topic string) []string {
	return []string{
		fmt.Sprintf("%s site:tinybuddha.com OR site:psychologytoday.com OR site:personalityjunkie.com", topic),
		fmt.Sprintf("%s site:hbr.org OR site:huffpost.com OR site:forbes.com", topic),
		fmt.Sprintf("%s site:personalexcellence.co OR site:psyche.co", topic),
		fmt.Sprintf("%s article personal development", topic),
	}
}

func buildEventQueries(topic, location string) []string {
	if topic == "" {
		topic = "event"
	}
	if location == "" {
		location = "London"
	}
	year := time.Now().Year()
	return []string{
		fmt.Sprintf("%s events %s %d %d site:eventbrite.co.uk OR site:eventbrite.com", topic, location, year, year+1),
		fmt.Sprintf("%s %s site:meetup.com OR site:skiddle.com", topic, location),
		fmt.Sprintf("%s %s site:dice.fm OR site:feverup.com", topic, location),
		fmt.Sprintf("%s %s events site:timeout.com OR site:londonist.com", topic, location),
		fmt.Sprintf("%s %s site:ticketmaster.co.uk", topic, location),
	}
}
