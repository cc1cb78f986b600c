package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type Trait struct {
	Name        string
	Score       int
	Description string
}

type PersonalityProfile struct {
	Overall      string
	Traits       []Trait
	Strengths    []string
	Weaknesses   []string
	MoodHistory  []Mood
	DominantMood Mood
}

type traitDef struct {
	name        string
	description string
	keywords    []string
}

var traitDefs = []traitDef{
	{"Humor", "Your ability to find humor and make others laugh",
		[]string{"laugh", "funny", "joke", "lol", "haha", "meme", "roast"}},
	{"Emotional Intelligence", "Your awareness and expression of emotions",
		[]string{"sad", "happy", "feel", "love", "hate", "emotion", "heart"}},
	{"Analytical Thinking", "Your logical and critical thinking abilities",
		[]string{"think", "analyze", "reason", "logic", "understand", "why", "how"}},
	{"Ambition", "Your drive and determination to succeed",
		[]string{"goal", "success", "achieve", "win", "focus", "drive", "sigma"}},
	{"Social Connection", "Your engagement with others and community",
		[]string{"friend", "people", "together", "bro", "we", "us", "everyone"}},
	{"Creativity", "Your imaginative and innovative mindset",
		[]string{"create", "idea", "imagine", "dream", "art", "design", "new"}},
	{"Resilience", "Your mental toughness and perseverance",
		[]string{"strong", "overcome", "fight", "never", "keep", "persist", "continue"}},
}

// PersonalityAnalyzer derives a trait profile from a user's message history
// and mood history. Pure keyword counting, no model behind it.
type PersonalityAnalyzer struct {
	patterns [][]*regexp.Regexp
}

func NewPersonalityAnalyzer() *PersonalityAnalyzer {
	a := &PersonalityAnalyzer{}
	for _, def := range traitDefs {
		a.patterns = append(a.patterns, compileWordPatterns(def.keywords))
	}
	return a
}

func (a *PersonalityAnalyzer) Analyze(messages []string, moodHistory []Mood) PersonalityProfile {
	allText := strings.ToLower(strings.Join(messages, " "))

	traits := make([]Trait, 0, len(traitDefs))
	for i, def := range traitDefs {
		score := int(countMatches(allText, a.patterns[i])) * 10
		if score > 100 {
			score = 100
		}
		traits = append(traits, Trait{Name: def.name, Score: score, Description: def.description})
	}

	ranked := append([]Trait(nil), traits...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	strengths := make([]string, 0, 3)
	for _, t := range ranked[:3] {
		strengths = append(strengths, t.Name)
	}
	weaknesses := make([]string, 0, 2)
	for _, t := range ranked[len(ranked)-2:] {
		weaknesses = append(weaknesses, t.Name)
	}

	overall := "Balanced Individual"
	if ranked[0].Score > 70 {
		overall = fmt.Sprintf("%s-Driven Personality", ranked[0].Name)
	}

	recent := moodHistory
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	return PersonalityProfile{
		Overall:      overall,
		Traits:       traits,
		Strengths:    strengths,
		Weaknesses:   weaknesses,
		MoodHistory:  recent,
		DominantMood: dominantMood(moodHistory),
	}
}

func dominantMood(history []Mood) Mood {
	if len(history) == 0 {
		return MoodNeutral
	}
	counts := make(map[Mood]int)
	for _, m := range history {
		counts[m]++
	}
	top := MoodNeutral
	best := -1
	for _, m := range moodOrder {
		if counts[m] > best {
			top, best = m, counts[m]
		}
	}
	return top
}
