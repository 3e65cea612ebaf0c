package episode

import "fmt"

// Info holds the hints extracted from one filename. Season and Episode are
// nil when no numbering was recognised; zero is a legitimate value (S00 specials).
type Info struct {
	Show      string `json:"show,omitempty"`
	Season    *int   `json:"season,omitempty"`
	Episode   *int   `json:"episode,omitempty"`
	Title     string `json:"title,omitempty"`
	Extension string `json:"extension,omitempty"`
	// Rule names the pattern that produced the numbering, empty when undetected.
	Rule string `json:"rule,omitempty"`
}

// Detected reports whether an episode number was recognised.
func (i Info) Detected() bool {
	return i.Episode != nil
}

// HasSeason reports whether a season number was recognised.
func (i Info) HasSeason() bool {
	return i.Season != nil
}

// SameEpisode reports whether both infos carry the same episode number and
// agree on the season: equal, or absent on both sides.
func (i Info) SameEpisode(other Info) bool {
	ep, ok := i.EpisodeValue()
	otherEp, otherOK := other.EpisodeValue()
	if !ok || !otherOK || ep != otherEp || i.HasSeason() != other.HasSeason() {
		return false
	}
	season, _ := i.SeasonValue()
	otherSeason, _ := other.SeasonValue()
	return season == otherSeason
}

// Conflicts reports whether a number present on both sides disagrees: two
// episode numbers, or two season numbers.
func (i Info) Conflicts(other Info) bool {
	if ep, ok := i.EpisodeValue(); ok {
		if otherEp, ok := other.EpisodeValue(); ok && ep != otherEp {
			return true
		}
	}
	if season, ok := i.SeasonValue(); ok {
		if otherSeason, ok := other.SeasonValue(); ok && season != otherSeason {
			return true
		}
	}
	return false
}

// Label renders the numbering as S01E02, E02 or an empty string.
func (i Info) Label() string {
	switch {
	case i.Season != nil && i.Episode != nil:
		return fmt.Sprintf("S%02dE%02d", *i.Season, *i.Episode)
	case i.Episode != nil:
		return fmt.Sprintf("E%02d", *i.Episode)
	default:
		return ""
	}
}

// SeasonValue returns the season number and whether it is present.
func (i Info) SeasonValue() (int, bool) {
	if i.Season == nil {
		return 0, false
	}
	return *i.Season, true
}

// EpisodeValue returns the episode number and whether it is present.
func (i Info) EpisodeValue() (int, bool) {
	if i.Episode == nil {
		return 0, false
	}
	return *i.Episode, true
}

func intPtr(v int) *int {
	return &v
}
