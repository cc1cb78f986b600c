package service

import (
	"regexp"
	"strings"
)

type Mood string

const (
	MoodFunny      Mood = "funny"
	MoodSad        Mood = "sad"
	MoodConfident  Mood = "confident"
	MoodReflective Mood = "reflective"
	MoodNeutral    Mood = "neutral"
)

type MoodResult struct {
	Mood       Mood
	Scores     map[Mood]float64
	Confidence float64
}

var moodKeywords = map[Mood][]string{
	MoodFunny: {
		"laugh", "lol", "haha", "lmao", "joke", "roast", "funny", "bro",
		"savage", "meme", "hilarious", "comedy", "humor", "ridiculous",
		"insane", "wild", "crazy", "epic", "bruh", "dead", "dying",
	},
	MoodSad: {
		"sad", "tired", "alone", "lost", "broken", "fail", "depressed",
		"pain", "give up", "stress", "anxiety", "worry", "hopeless",
		"empty", "hurt", "crying", "tears", "suffering", "miserable",
		"unhappy", "difficult", "hard", "struggle",
	},
	MoodConfident: {
		"win", "strong", "ready", "powerful", "focus", "success", "sigma",
		"control", "dominate", "confident", "achieve", "master", "boss",
		"champion", "leader", "unstoppable", "determined", "motivated",
		"crushing", "killing", "winning", "best", "top", "great",
	},
	MoodReflective: {
		"think", "why", "meaning", "improve", "change", "learn", "growth",
		"reflect", "understand", "wonder", "curious", "question", "ponder",
		"consider", "realize", "insight", "wisdom", "deep", "philosophy",
		"perspective", "introspect", "contemplate", "analyze",
	},
}

var positiveWords = []string{
	"good", "great", "awesome", "amazing", "excellent", "wonderful",
	"fantastic", "perfect", "love", "happy", "joy", "glad", "nice",
	"beautiful", "brilliant", "outstanding", "superb", "terrific",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "worst", "hate", "suck",
	"disgusting", "pathetic", "miserable", "dreadful", "poor", "weak",
	"useless", "pointless", "waste", "failure", "wrong",
}

// MoodEngine detects a coarse mood label from free text via keyword counts.
type MoodEngine struct {
	patterns map[Mood][]*regexp.Regexp
	positive []*regexp.Regexp
	negative []*regexp.Regexp
}

func NewMoodEngine() *MoodEngine {
	e := &MoodEngine{patterns: make(map[Mood][]*regexp.Regexp)}
	for mood, words := range moodKeywords {
		e.patterns[mood] = compileWordPatterns(words)
	}
	e.positive = compileWordPatterns(positiveWords)
	e.negative = compileWordPatterns(negativeWords)
	return e
}

func compileWordPatterns(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		out = append(out, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return out
}

func countMatches(text string, patterns []*regexp.Regexp) float64 {
	n := 0
	for _, p := range patterns {
		n += len(p.FindAllStringIndex(text, -1))
	}
	return float64(n)
}

func (e *MoodEngine) Detect(text string) MoodResult {
	if strings.TrimSpace(text) == "" {
		return MoodResult{
			Mood:       MoodNeutral,
			Scores:     map[Mood]float64{MoodNeutral: 1},
			Confidence: 1.0,
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(text))

	scores := map[Mood]float64{
		MoodFunny:      countMatches(normalized, e.patterns[MoodFunny]),
		MoodSad:        countMatches(normalized, e.patterns[MoodSad]),
		MoodConfident:  countMatches(normalized, e.patterns[MoodConfident]),
		MoodReflective: countMatches(normalized, e.patterns[MoodReflective]),
		MoodNeutral:    1,
	}

	positive := countMatches(normalized, e.positive)
	negative := countMatches(normalized, e.negative)
	if positive > 0 {
		scores[MoodConfident] += positive * 1.5
		scores[MoodFunny] += positive * 0.8
	}
	if negative > 0 {
		scores[MoodSad] += negative * 2
	}

	excitement := float64(strings.Count(text, "!"))
	questions := float64(strings.Count(text, "?"))
	if excitement > 1 {
		scores[MoodFunny] += excitement * 0.7
		scores[MoodConfident] += excitement * 0.5
	}
	if questions > 0 {
		scores[MoodReflective] += questions * 1.2
	}

	wordCount := len(strings.Fields(text))
	avgWordLen := float64(len(text)) / float64(maxInt(wordCount, 1))
	if wordCount > 20 && avgWordLen > 5 {
		scores[MoodReflective] += 2
	}
	if wordCount < 5 && excitement == 0 {
		scores[MoodNeutral]++
	}

	mood := resolveMood(scores)

	total := 0.0
	for _, v := range scores {
		total += v
	}
	if total < 1 {
		total = 1
	}
	confidence := scores[mood] / total
	if confidence > 1 {
		confidence = 1
	}

	return MoodResult{Mood: mood, Scores: scores, Confidence: confidence}
}

// moodOrder fixes ranking ties deterministically.
var moodOrder = []Mood{MoodFunny, MoodSad, MoodConfident, MoodReflective, MoodNeutral}

func resolveMood(scores map[Mood]float64) Mood {
	top := MoodNeutral
	topScore, secondScore := -1.0, -1.0
	for _, m := range moodOrder {
		s := scores[m]
		if s > topScore {
			top, topScore, secondScore = m, s, topScore
		} else if s > secondScore {
			secondScore = s
		}
	}

	if topScore == 0 || (topScore == secondScore && top == MoodNeutral) {
		return MoodNeutral
	}
	if topScore < 2 && top != MoodNeutral {
		return MoodNeutral
	}
	return top
}

// Describe returns the user-facing line for a mood label.
func Describe(mood Mood) string {
	switch mood {
	case MoodFunny:
		return "You seem to be in a playful and humorous mood"
	case MoodSad:
		return "You appear to be feeling down or struggling"
	case MoodConfident:
		return "You are radiating confidence and determination"
	case MoodReflective:
		return "You are in a thoughtful and introspective state"
	default:
		return "You are maintaining a balanced and neutral tone"
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
