package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/roastme-app/battle-service/internal/domain"
	"github.com/roastme-app/battle-service/internal/registry"
	"github.com/roastme-app/battle-service/internal/service"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	registry    *registry.Registry
	moods       *service.MoodEngine
	roasts      *service.RoastGenerator
	personality *service.PersonalityAnalyzer
}

func NewHandler(reg *registry.Registry, moods *service.MoodEngine, roasts *service.RoastGenerator, personality *service.PersonalityAnalyzer) *Handler {
	return &Handler{
		registry:    reg,
		moods:       moods,
		roasts:      roasts,
		personality: personality,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UnixMilli(),
		Rooms:     h.registry.RoomCount(),
	})
}

// GET /api/rooms/{code}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	room, err := h.registry.GetRoom(code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCode):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room code"})
		case errors.Is(err, domain.ErrRoomNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
		default:
			slog.Error("handler.GetRoom:", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, roomResponse(room))
}

// GET /api/rooms/{code}/leaderboard
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	entries, err := h.registry.Leaderboard(code)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		slog.Error("handler.GetLeaderboard:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	resp := LeaderboardResponse{Leaderboard: make([]LeaderboardItem, 0, len(entries))}
	for _, e := range entries {
		resp.Leaderboard = append(resp.Leaderboard, LeaderboardItem{
			Rank:     e.Rank,
			UserID:   e.UserID,
			Username: e.DisplayName,
			Score:    e.Score,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// POST /api/mood/detect
func (h *Handler) DetectMood(w http.ResponseWriter, r *http.Request) {
	var req MoodDetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid text input"})
		return
	}

	result := h.moods.Detect(req.Text)
	scores := make(map[string]float64, len(result.Scores))
	for mood, score := range result.Scores {
		scores[string(mood)] = score
	}

	writeJSON(w, http.StatusOK, MoodDetectResponse{
		Mood:        string(result.Mood),
		Scores:      scores,
		Confidence:  result.Confidence,
		Description: service.Describe(result.Mood),
	})
}

// POST /api/roast/generate
func (h *Handler) GenerateRoast(w http.ResponseWriter, r *http.Request) {
	var req RoastGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	intensity := service.Intensity(req.Intensity)
	if !intensity.Valid() {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid intensity"})
		return
	}

	var mood service.Mood
	if req.Text != "" {
		mood = h.moods.Detect(req.Text).Mood
	}

	roast := h.roasts.Generate(intensity, mood, req.Text, req.Username)
	writeJSON(w, http.StatusOK, RoastGenerateResponse{
		Text:      roast.Text,
		Intensity: string(roast.Intensity),
		Category:  roast.Category,
	})
}

// POST /api/advice/get
func (h *Handler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	var req AdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	category := service.AdviceCategory(req.Category)
	if !category.Valid() {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid category"})
		return
	}
	if req.Mood == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "mood is required"})
		return
	}

	advice := service.GenerateAdvice(category, service.Mood(req.Mood))
	writeJSON(w, http.StatusOK, AdviceResponse{
		Category: string(advice.Category),
		Advice:   advice.Advice,
		Tips:     advice.Tips,
		Mood:     string(advice.Mood),
	})
}

// POST /api/personality/analyze
func (h *Handler) AnalyzePersonality(w http.ResponseWriter, r *http.Request) {
	var req PersonalityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid messages array"})
		return
	}

	moods := make([]service.Mood, 0, len(req.MoodHistory))
	for _, m := range req.MoodHistory {
		moods = append(moods, service.Mood(m))
	}

	profile := h.personality.Analyze(req.Messages, moods)

	resp := PersonalityResponse{
		Overall:      profile.Overall,
		Traits:       make([]TraitItem, 0, len(profile.Traits)),
		Strengths:    profile.Strengths,
		Weaknesses:   profile.Weaknesses,
		MoodHistory:  make([]string, 0, len(profile.MoodHistory)),
		DominantMood: string(profile.DominantMood),
	}
	for _, t := range profile.Traits {
		resp.Traits = append(resp.Traits, TraitItem{Name: t.Name, Score: t.Score, Description: t.Description})
	}
	for _, m := range profile.MoodHistory {
		resp.MoodHistory = append(resp.MoodHistory, string(m))
	}

	writeJSON(w, http.StatusOK, resp)
}

func roomResponse(room *domain.Room) RoomResponse {
	resp := RoomResponse{
		RoomCode:  room.Code,
		Status:    string(room.Status),
		Round:     room.Round,
		MaxRounds: room.MaxRounds,
		CreatedAt: room.CreatedAt.Unix(),
		Players:   make([]PlayerItem, 0, len(room.Participants)),
	}
	for _, p := range room.Participants {
		resp.Players = append(resp.Players, PlayerItem{
			UserID:   p.UserID,
			Username: p.DisplayName,
			Score:    p.Score,
			Ready:    p.Ready,
		})
	}
	return resp
}
