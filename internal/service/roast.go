package service

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

type Intensity string

const (
	IntensityFunny     Intensity = "funny"
	IntensityBrutal    Intensity = "brutal"
	IntensitySarcastic Intensity = "sarcastic"
)

func (i Intensity) Valid() bool {
	switch i {
	case IntensityFunny, IntensityBrutal, IntensitySarcastic:
		return true
	}
	return false
}

// IntensityForMood picks the canned-reply register for a detected mood.
func IntensityForMood(mood Mood) Intensity {
	switch mood {
	case MoodConfident:
		return IntensityBrutal
	case MoodSad:
		return IntensitySarcastic
	default:
		return IntensityFunny
	}
}

type Roast struct {
	Text      string
	Intensity Intensity
	Category  string
}

var roastTemplates = map[Intensity][]string{
	IntensityFunny: {
		"Your personality is like a software update - nobody asked for it and it takes forever to load",
		"You have the energy of a low battery notification at 2%",
		"You're the human equivalent of a pop-up ad",
		"You're like a WiFi connection - strong signal but no actual connection",
		"You're the 'Skip Intro' button everyone clicks",
		"You're like autocorrect - trying to help but making it worse",
		"You're giving 'Error 404: Personality Not Found'",
		"Your social skills are still buffering...",
		"You're the code that works but nobody knows why",
		"Your charisma is loading... please wait... still loading...",
		"You're the human version of 'Please verify you are not a robot'",
	},
	IntensityBrutal: {
		"Your confidence is inversely proportional to your self-awareness",
		"You bring the same energy as a mandatory company meeting",
		"Your personality is a masterclass in mediocrity",
		"You're the reason people invented the mute button",
		"You have the charisma of a terms and conditions page",
		"You're the plot hole in your own life story",
		"Your existence is a Stack Overflow thread with no accepted answer",
		"You're the legacy code everyone's afraid to touch",
		"You're the merge conflict nobody wants to resolve",
		"You're like a memory leak - slowly draining everyone's energy",
	},
	IntensitySarcastic: {
		"Oh wow, another deep thought from the philosophy factory",
		"Fascinating insight from the CEO of obvious observations",
		"What a groundbreaking perspective, truly revolutionary",
		"Your wisdom is almost as impressive as your humility",
		"Incredible how you make simple things sound complicated",
		"What a unique take, never heard that before... this hour",
		"Your confidence is admirable, if only it was justified",
		"Wow, did you just Google that?",
		"Your hot takes are room temperature at best",
		"Your insights have the depth of a kiddie pool",
	},
}

var moodRoasts = map[Mood][]string{
	MoodConfident: {
		"All that confidence and still reading the room wrong",
		"Sigma grindset but grinding in the wrong direction",
		"Main character energy in a background character life",
		"Flexing like a CPU at 100% but outputting nothing",
	},
	MoodFunny: {
		"Trying to be the class clown but jokes on you",
		"Your humor is like expired milk - it was funny once",
		"Your jokes load slower than a 1990s webpage",
		"Humor.exe has stopped working",
	},
	MoodSad: {
		"Even your sadness is on energy-saving mode",
		"Your vibe is 'sad playlist at 3 AM' but make it worse",
		"Your sadness has the depth of a Twitter thread",
	},
	MoodReflective: {
		"All that thinking and still no conclusions",
		"Overthinking champion of the year",
		"Deep thoughts, shallow impact",
		"Thinking hard but ideas.exe crashed",
	},
	MoodNeutral: {
		"Your personality is on do not disturb mode",
		"The human equivalent of gray",
		"Your vibe is default settings - unchanged and boring",
		"You're like a blank text file - technically present but empty",
	},
}

// RoastGenerator synthesizes the canned "AI" reply: context-aware lines when
// the message matches a known pattern, mood lines or intensity templates
// otherwise.
type RoastGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewRoastGenerator(r *rand.Rand) *RoastGenerator {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RoastGenerator{rand: r}
}

func (g *RoastGenerator) Generate(intensity Intensity, mood Mood, userText, username string) Roast {
	if !intensity.Valid() {
		intensity = IntensityFunny
	}

	if text, ok := g.contextRoast(userText, username); ok {
		return Roast{Text: text, Intensity: intensity, Category: "context"}
	}
	if lines, ok := moodRoasts[mood]; ok && mood != "" && g.coin() {
		return Roast{Text: g.pick(lines), Intensity: intensity, Category: string(mood)}
	}
	return Roast{Text: g.pick(roastTemplates[intensity]), Intensity: intensity, Category: "general"}
}

// contextRoast answers obvious message patterns before falling back to the
// template pools.
func (g *RoastGenerator) contextRoast(text, username string) (string, bool) {
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	name := username
	if name == "" {
		name = "buddy"
	}

	switch {
	case len(lower) < 5:
		return g.pickf(name,
			"One-word answers, %s? Your conversation skills are showing.",
			"Short and sweet? More like short and disappointing, %s.",
			"Your message has fewer characters than your personality, %s",
			"Is your keyboard broken or is this peak effort, %s?",
		), true
	case strings.Contains(lower, "hi") || strings.Contains(lower, "hello") || strings.Contains(lower, "hey"):
		return g.pickf(name,
			"Starting with 'hi', %s? Your creativity is as bright as a dead pixel.",
			"What a groundbreaking opening, %s. Did you workshop that greeting?",
			"'Hi'? That's your opening, %s? Even NPCs have better dialogue.",
			"Your greeting is giving 'default text message' energy, %s",
		), true
	case strings.Contains(lower, "roast"):
		return g.pickf(name,
			"Asking to be roasted, %s? Your self-esteem already did that for you.",
			"Don't worry, your life choices already roasted you better than I ever could, %s.",
			"Imagine asking an AI to validate your insecurities, %s. Bold strategy.",
			"You need an AI to roast you, %s? Can't do that yourself in the mirror?",
		), true
	case strings.Contains(lower, "?"):
		return g.pickf(name,
			"Asking questions you could've Googled, %s. Peak efficiency.",
			"Your curiosity is as deep as a puddle, %s.",
			"Google exists but here you are asking me, %s. Interesting choice.",
		), true
	case strings.Contains(lower, "lol") || strings.Contains(lower, "haha") || strings.Contains(lower, "lmao"):
		return g.pickf(name,
			"Laughing at your own jokes, %s? That's sadder than the jokes themselves.",
			"'Lol' isn't a personality trait, just so you know, %s.",
			"Adding 'lol' doesn't make your message funny, try harder %s",
		), true
	case len(strings.Fields(lower)) > 30:
		return g.pick([]string{
			"TL;DR - your message is as long as it is unnecessary.",
			"All those words and still said nothing of value.",
			"That's a lot of words to say nothing at all.",
			"I lost interest halfway through and I'm literally programmed to respond",
		}), true
	}
	return "", false
}

func (g *RoastGenerator) pick(lines []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return lines[g.rand.Intn(len(lines))]
}

func (g *RoastGenerator) pickf(name string, formats ...string) string {
	return fmt.Sprintf(g.pick(formats), name)
}

func (g *RoastGenerator) coin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rand.Intn(2) == 0
}
