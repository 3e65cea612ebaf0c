package matcher

import (
	"echomux/internal/episode"
	"echomux/internal/media"
	"echomux/internal/textutil"
)

const (
	// DefaultThreshold is the minimum score a pairing needs to be accepted.
	DefaultThreshold = 0.5
	// DefaultBoostFloor is the score granted when season and episode agree.
	DefaultBoostFloor = 0.9
)

// Policy holds the tunable constants of a matching pass.
type Policy struct {
	Threshold  float64
	BoostFloor float64
}

// DefaultPolicy returns the stock threshold and boost floor.
func DefaultPolicy() Policy {
	return Policy{Threshold: DefaultThreshold, BoostFloor: DefaultBoostFloor}
}

func (p Policy) withDefaults() Policy {
	if p.Threshold <= 0 || p.Threshold > 1 {
		p.Threshold = DefaultThreshold
	}
	if p.BoostFloor <= 0 || p.BoostFloor > 1 {
		p.BoostFloor = DefaultBoostFloor
	}
	return p
}

// Pair is the outcome of matching one video. Companion is nil when nothing
// scored at or above the threshold; Confidence is then 0.
type Pair struct {
	Video      media.File  `json:"video"`
	Companion  *media.File `json:"companion,omitempty"`
	Confidence float64     `json:"confidence"`
}

// Matched reports whether the video received a companion.
func (p Pair) Matched() bool {
	return p.Companion != nil
}

type candidate struct {
	file media.File
	key  string
	info episode.Info
}

func newCandidate(file media.File) candidate {
	return candidate{
		file: file,
		key:  Normalize(file.BaseName),
		info: episode.Extract(file.BaseName),
	}
}

// score is 0 when the numbering of a and b disagrees, at least
// policy.BoostFloor when it agrees, and the text similarity otherwise.
func score(a, b candidate, policy Policy) float64 {
	if a.info.Conflicts(b.info) {
		return 0
	}
	ratio := textutil.SimilarityRatio(a.key, b.key)
	if a.info.SameEpisode(b.info) && ratio < policy.BoostFloor {
		return policy.BoostFloor
	}
	return ratio
}

// MatchAll pairs every video with at most one companion using greedy,
// input-order assignment. The result has one entry per video, in input
// order, and no companion appears twice.
func MatchAll(videos, companions []media.File, policy Policy) []Pair {
	policy = policy.withDefaults()

	pool := make([]candidate, len(companions))
	for i, c := range companions {
		pool[i] = newCandidate(c)
	}
	taken := make([]bool, len(pool))

	pairs := make([]Pair, 0, len(videos))
	for _, video := range videos {
		vc := newCandidate(video)
		best := -1
		bestScore := 0.0
		for i, c := range pool {
			if taken[i] {
				continue
			}
			s := score(vc, c, policy)
			if best < 0 || s > bestScore {
				best = i
				bestScore = s
			}
		}
		pair := Pair{Video: video}
		if best >= 0 && bestScore >= policy.Threshold {
			taken[best] = true
			companion := pool[best].file
			pair.Companion = &companion
			pair.Confidence = bestScore
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// Pass is the result of matching videos against one companion kind.
type Pass struct {
	Kind  media.Kind `json:"kind"`
	Pairs []Pair     `json:"pairs"`
}

// MatchByKind runs one MatchAll per companion kind present in companions,
// audio before subtitles, so a video receives at most one companion of
// each kind. Companions of other kinds are ignored.
func MatchByKind(videos, companions []media.File, policy Policy) []Pass {
	var passes []Pass
	for _, kind := range []media.Kind{media.KindAudio, media.KindSubtitle} {
		subset := media.FilterKind(companions, kind)
		if len(subset) == 0 {
			continue
		}
		passes = append(passes, Pass{Kind: kind, Pairs: MatchAll(videos, subset, policy)})
	}
	return passes
}

// Unmatched returns the videos of pairs that received no companion.
func Unmatched(pairs []Pair) []media.File {
	var out []media.File
	for _, p := range pairs {
		if !p.Matched() {
			out = append(out, p.Video)
		}
	}
	return out
}

// Matched returns only the pairs that received a companion.
func Matched(pairs []Pair) []Pair {
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if p.Matched() {
			out = append(out, p)
		}
	}
	return out
}
