package http

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Rooms     int    `json:"rooms"`
}

type PlayerItem struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Ready    bool   `json:"ready"`
}

type RoomResponse struct {
	RoomCode  string       `json:"room_code"`
	Status    string       `json:"status"`
	Round     int          `json:"round"`
	MaxRounds int          `json:"max_rounds"`
	CreatedAt int64        `json:"created_at_unix"`
	Players   []PlayerItem `json:"players"`
}

type LeaderboardItem struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardItem `json:"leaderboard"`
}

type MoodDetectRequest struct {
	Text string `json:"text"`
}

type MoodDetectResponse struct {
	Mood        string             `json:"mood"`
	Scores      map[string]float64 `json:"scores"`
	Confidence  float64            `json:"confidence"`
	Description string             `json:"description"`
}

type RoastGenerateRequest struct {
	Intensity string `json:"intensity"`
	Text      string `json:"text,omitempty"`
	Username  string `json:"username,omitempty"`
}

type RoastGenerateResponse struct {
	Text      string `json:"text"`
	Intensity string `json:"intensity"`
	Category  string `json:"category"`
}

type AdviceRequest struct {
	Category string `json:"category"`
	Context  string `json:"context,omitempty"`
	Mood     string `json:"mood"`
}

type AdviceResponse struct {
	Category string   `json:"category"`
	Advice   string   `json:"advice"`
	Tips     []string `json:"tips"`
	Mood     string   `json:"mood"`
}

type PersonalityRequest struct {
	Messages    []string `json:"messages"`
	MoodHistory []string `json:"moodHistory,omitempty"`
}

type TraitItem struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

type PersonalityResponse struct {
	Overall      string      `json:"overall"`
	Traits       []TraitItem `json:"traits"`
	Strengths    []string    `json:"strengths"`
	Weaknesses   []string    `json:"weaknesses"`
	MoodHistory  []string    `json:"moodHistory"`
	DominantMood string      `json:"dominantMood"`
}
