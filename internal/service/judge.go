package service

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Signal keyword tables for roast scoring. Matched as substrings of the
// lower-cased message, each keyword counted once.
var humorKeywords = []string{
	"lol", "haha", "lmao", "rofl", "hilarious", "funny", "joke", "comedy",
	"wit", "clever", "brilliant", "genius", "epic", "savage", "brutal",
	"destroyed", "murdered", "obliterated", "annihilated", "wrecked",
}

var intensityKeywords = []string{
	"ugly", "stupid", "dumb", "idiot", "loser", "failure", "pathetic",
	"worthless", "useless", "trash", "garbage", "terrible", "awful",
	"horrible", "disgusting", "gross", "nasty", "weak", "lame", "cringe",
	"embarrassing", "shameful", "disappointing", "mediocre", "basic",
	"boring", "bland", "unoriginal", "cliche", "predictable",
}

var creativityKeywords = []string{
	"like", "as if", "looks like", "reminds me", "imagine", "picture",
	"probably", "definitely", "clearly", "obviously", "literally",
	"basically", "technically", "actually", "honestly", "seriously",
}

var punctuationMarkers = []string{"!", "?", "...", "!!", "???", "!!!"}

// Judge scores roast messages in [0,100] from weighted text signals plus a
// bounded random jitter. Inject a seeded rand for reproducible scores.
type Judge struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewJudge(r *rand.Rand) *Judge {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Judge{rand: r}
}

func (j *Judge) Score(message string) int {
	lower := strings.ToLower(message)
	words := strings.Fields(lower)

	score := lengthScore(len(words))
	score += cappedCount(lower, humorKeywords, 5, 25)
	score += cappedCount(lower, intensityKeywords, 6, 30)
	score += cappedCount(lower, creativityKeywords, 3, 15)
	score += cappedCount(message, punctuationMarkers, 2, 10)
	score += capsScore(message)
	if strings.Contains(message, "?") {
		score += 5
	}

	j.mu.Lock()
	score += j.rand.Intn(11)
	j.mu.Unlock()

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// lengthScore rewards the 20-30 word sweet spot.
func lengthScore(n int) int {
	switch {
	case n >= 5 && n <= 10:
		return 10
	case n > 10 && n <= 20:
		return 15
	case n > 20 && n <= 30:
		return 20
	case n > 30 && n <= 50:
		return 15
	case n > 50:
		return 10
	default:
		return 5
	}
}

func cappedCount(text string, terms []string, weight, max int) int {
	count := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			count++
		}
	}
	if score := count * weight; score < max {
		return score
	}
	return max
}

func capsScore(message string) int {
	caps := 0
	for _, w := range strings.Fields(message) {
		if len(w) > 2 && w == strings.ToUpper(w) && w != strings.ToLower(w) {
			caps++
		}
	}
	if caps == 0 {
		return 0
	}
	if score := caps * 2; score < 5 {
		return score
	}
	return 5
}

// Feedback maps a score to the banter line shown next to it.
func Feedback(score int) string {
	switch {
	case score >= 90:
		return "LEGENDARY ROAST! Absolutely devastating!"
	case score >= 75:
		return "BRUTAL! That was savage!"
	case score >= 60:
		return "SOLID ROAST! Nice hit!"
	case score >= 40:
		return "Decent attempt, but could be spicier."
	case score >= 20:
		return "Weak roast. Try harder!"
	default:
		return "That was barely a roast..."
	}
}
