package service

type AdviceCategory string

const (
	AdviceCareer     AdviceCategory = "career"
	AdviceDiscipline AdviceCategory = "discipline"
	AdviceFocus      AdviceCategory = "focus"
	AdviceSocial     AdviceCategory = "social"
)

func (c AdviceCategory) Valid() bool {
	switch c {
	case AdviceCareer, AdviceDiscipline, AdviceFocus, AdviceSocial:
		return true
	}
	return false
}

type Advice struct {
	Category AdviceCategory
	Advice   string
	Tips     []string
	Mood     Mood
}

type adviceTemplate struct {
	advice string
	tips   []string
}

var adviceTable = map[AdviceCategory]map[Mood]adviceTemplate{
	AdviceCareer: {
		MoodConfident: {
			advice: "Channel your confidence into strategic career moves. Focus on high-impact projects that showcase your abilities.",
			tips: []string{
				"Document your wins and maintain a success portfolio",
				"Seek leadership opportunities in critical projects",
				"Network with industry leaders and mentors",
			},
		},
		MoodReflective: {
			advice: "Use your introspective nature to align career choices with your core values and long-term vision.",
			tips: []string{
				"Define your career purpose beyond titles and salary",
				"Seek roles that offer growth and learning",
				"Reflect on past experiences to identify patterns",
			},
		},
		MoodSad: {
			advice: "Career struggles are temporary. Focus on small wins and remember why you started this journey.",
			tips: []string{
				"Break big goals into manageable daily tasks",
				"Celebrate small achievements to build momentum",
				"Seek support from mentors or career coaches",
			},
		},
		MoodFunny: {
			advice: "Your positive energy is a career asset. Use it to build relationships and navigate challenges with grace.",
			tips: []string{
				"Bring creativity to problem-solving at work",
				"Build a network through genuine connections",
				"Use humor to diffuse tense workplace situations",
			},
		},
		MoodNeutral: {
			advice: "Your balanced approach allows for rational career decisions. Focus on consistent progress and skill building.",
			tips: []string{
				"Set clear quarterly goals and track progress",
				"Invest in continuous learning and skill development",
				"Maintain work-life balance for sustainable growth",
			},
		},
	},
	AdviceDiscipline: {
		MoodConfident: {
			advice: "Your confidence is strong - now pair it with consistent daily habits that compound over time.",
			tips: []string{
				"Create a morning routine that sets the tone",
				"Use the two-minute rule for starting tasks",
				"Stack new habits onto existing ones",
			},
		},
		MoodReflective: {
			advice: "Transform your reflective nature into disciplined action. Plan deeply, execute consistently.",
			tips: []string{
				"Journal about your why before starting new habits",
				"Build systems instead of relying on motivation",
				"Use reflection time to plan the next day",
			},
		},
		MoodSad: {
			advice: "Start incredibly small. One pushup, one page, one minute. Momentum beats perfection.",
			tips: []string{
				"Focus on showing up, not achieving perfection",
				"Find an accountability partner for support",
				"Celebrate consistency over intensity",
			},
		},
		MoodFunny: {
			advice: "Make discipline fun. Gamify your habits and reward yourself for consistency.",
			tips: []string{
				"Create a streak tracker and compete with yourself",
				"Reward milestones with things you enjoy",
				"Share progress with friends for social motivation",
			},
		},
		MoodNeutral: {
			advice: "Build discipline through systems and routines. Remove decision fatigue with automation.",
			tips: []string{
				"Design your environment to support good habits",
				"Batch similar tasks to reduce friction",
				"Review and optimize your systems monthly",
			},
		},
	},
	AdviceFocus: {
		MoodConfident: {
			advice: "Your drive is clear. Now eliminate distractions ruthlessly and protect your deep work time.",
			tips: []string{
				"Use time blocking for focused work sessions",
				"Turn off all notifications during deep work",
				"Practice single-tasking on high-priority items",
			},
		},
		MoodReflective: {
			advice: "Mindful focus is your strength. Use meditation and intentional breaks to sustain concentration.",
			tips: []string{
				"Start work sessions with a brief meditation",
				"Use the Pomodoro technique with reflection breaks",
				"Journal about what pulls your focus",
			},
		},
		MoodSad: {
			advice: "When focus feels impossible, start with five minutes. Build from there with compassion.",
			tips: []string{
				"Lower the barrier: just show up for 5 minutes",
				"Take frequent breaks to reset mentally",
				"Be kind to yourself on difficult days",
			},
		},
		MoodFunny: {
			advice: "Make focus engaging. Use timers, challenges, and variety to keep your brain interested.",
			tips: []string{
				"Gamify focus sessions with challenges",
				"Change your environment to stay engaged",
				"Reward yourself after focused work blocks",
			},
		},
		MoodNeutral: {
			advice: "Systematic focus techniques will serve you well. Build a sustainable focus practice.",
			tips: []string{
				"Schedule focus blocks like important meetings",
				"Minimize context switching between tasks",
				"Track your focus patterns to optimize timing",
			},
		},
	},
	AdviceSocial: {
		MoodConfident: {
			advice: "Your social confidence is magnetic. Use it to build genuine connections and lift others up.",
			tips: []string{
				"Lead group activities and bring people together",
				"Mentor others who are building confidence",
				"Use your energy to make others feel welcome",
			},
		},
		MoodReflective: {
			advice: "Quality over quantity in relationships. Your depth creates meaningful connections.",
			tips: []string{
				"Have deep one-on-one conversations",
				"Listen actively and ask thoughtful questions",
				"Create space for others to be reflective too",
			},
		},
		MoodSad: {
			advice: "Connection heals. Reach out even when it feels hard. You don't have to go through this alone.",
			tips: []string{
				"Send a message to someone you trust",
				"Be honest about how you're feeling",
				"Accept help when others offer it",
			},
		},
		MoodFunny: {
			advice: "Your humor is a social superpower. Use it to create joy and authentic connections.",
			tips: []string{
				"Host gatherings or game nights",
				"Use humor to make others feel comfortable",
				"Balance jokes with genuine conversation",
			},
		},
		MoodNeutral: {
			advice: "Build social connections systematically. Regular touchpoints create strong relationships.",
			tips: []string{
				"Schedule regular catch-ups with friends",
				"Join clubs or groups aligned with interests",
				"Follow up after meeting new people",
			},
		},
	},
}

// GenerateAdvice looks up the canned advice for a category and mood, falling
// back to the neutral entry for unknown moods.
func GenerateAdvice(category AdviceCategory, mood Mood) Advice {
	byMood := adviceTable[category]
	tpl, ok := byMood[mood]
	if !ok {
		tpl = byMood[MoodNeutral]
	}
	return Advice{
		Category: category,
		Advice:   tpl.advice,
		Tips:     tpl.tips,
		Mood:     mood,
	}
}
