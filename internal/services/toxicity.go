package services

import (
	"regexp"
	"strings"
	"unicode"
)

// Stand-in for the external toxicity classifier: a cheap heuristic so
// the moderation pipeline (scores, auto-hide, toxic_comment
// notifications) works end to end without the ML collaborator wired up.

const (
	// Score at or above this marks the comment toxic
	ToxicThreshold = 0.8
	// Score at or above this also auto-hides it
	AutoHideThreshold = 0.95
	// Upload-time NSFW detection score that flags a video
	NsfwThreshold = 0.8
)

var slurPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bidiot\b`),
	regexp.MustCompile(`(?i)\bstupid\b`),
	regexp.MustCompile(`(?i)\btrash\b`),
	regexp.MustCompile(`(?i)\bgarbage\b`),
	regexp.MustCompile(`(?i)\bkill\s+yourself\b`),
	regexp.MustCompile(`(?i)\bgo\s+die\b`),
	regexp.MustCompile(`(?i)\bhate\s+you\b`),
}

var spamLinkPattern = regexp.MustCompile(`(?i)https?://\S+`)

// ScoreComment returns a toxicity score in [0, 1]
func ScoreComment(content string) float64 {
	score := 0.0

	for _, p := range slurPatterns {
		if p.MatchString(content) {
			score += 0.45
		}
	}

	// Shouting: mostly-uppercase comments of any real length
	letters, upper := 0, 0
	for _, r := range content {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters >= 12 && float64(upper)/float64(letters) > 0.8 {
		score += 0.3
	}

	// Excessive punctuation runs
	if strings.Contains(content, "!!!") || strings.Contains(content, "???") {
		score += 0.1
	}

	if score > 1 {
		score = 1
	}
	return score
}

// LooksLikeSpam flags comments that are little more than links
func LooksLikeSpam(content string) bool {
	links := spamLinkPattern.FindAllString(content, -1)
	if len(links) == 0 {
		return false
	}
	stripped := content
	for _, l := range links {
		stripped = strings.Replace(stripped, l, "", 1)
	}
	return len(links) >= 3 || len(strings.TrimSpace(stripped)) < 10
}
