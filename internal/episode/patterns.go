package episode

import "regexp"

// rule pairs a compiled pattern with the submatch indexes holding the season
// and episode digits. seasonGroup is 0 for rules without a season.
type rule struct {
	name         string
	pattern      *regexp.Regexp
	seasonGroup  int
	episodeGroup int
	// needsNoSeason skips the rule when any standalone season marker is present.
	needsNoSeason bool
}

// rules are evaluated in order; first match wins.
var rules = []rule{
	{
		// S01E01, s1e1, S01.E01, S01 E01
		name:         "sxxexx",
		pattern:      regexp.MustCompile(`(?i)s(\d+)[ ._-]?e(\d+)`),
		seasonGroup:  1,
		episodeGroup: 2,
	},
	{
		// 1x01, 01x001; the boundaries keep 1920x1080 from matching
		name:         "nxm",
		pattern:      regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(\d{1,2})x(\d{1,3})(?:[^a-z0-9]|$)`),
		seasonGroup:  1,
		episodeGroup: 2,
	},
	{
		// Season 1 Episode 2, Season.01.Episode.02
		name:         "season-episode",
		pattern:      regexp.MustCompile(`(?i)season[ ._-]*(\d+).*?episode[ ._-]*(\d+)`),
		seasonGroup:  1,
		episodeGroup: 2,
	},
	{
		// E05, Ep05, Episode 5 with no season anywhere
		name:          "bare-episode",
		pattern:       regexp.MustCompile(`(?i)(?:^|[^a-z0-9])e(?:p(?:isode)?)?[ ._-]?(\d+)(?:[^a-z0-9]|$)`),
		episodeGroup:  1,
		needsNoSeason: true,
	},
}

// seasonMarker spots season hints that did not pair with an episode number
// under any of the rules above (e.g. "S02" alone or "Season 2").
var seasonMarker = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(?:s|season[ ._-]*)\d+(?:[^a-z0-9]|$)`)
