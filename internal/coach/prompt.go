package coach

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/stats"
)

// SystemInstruction sets the coach persona for every request.
const SystemInstruction = `You are Habit Tracker AI, an intelligent, minimalist, and encouraging habit coach.
Your tone is professional, concise, and calm.

You are analyzing the user's habit data.
- Provide specific, actionable advice based on their consistency.
- If they are doing well, reinforce the behavior with subtle praise.
- If they are struggling, suggest small, atomic adjustments.
- Pay attention to any 'notes' the user has left. If they mention being sick or busy, offer empathy and recovery strategies.
- Keep responses brief (under 150 words) unless asked for a deep dive.
- Use bullet points for readability.`

const defaultRequest = "Please analyze my current habit progress and give me a weekly summary and 2 tips for improvement."

// BuildPrompt embeds the 7-day summary of habits as compact JSON. A blank
// query asks for the default weekly analysis.
func BuildPrompt(habits []models.Habit, query string, ref time.Time) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(stats.PerHabitWeeklySummary(habits, ref)); err != nil {
		return "", fmt.Errorf("failed to serialize habit summary: %w", err)
	}
	data := strings.TrimSuffix(buf.String(), "\n")

	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Sprintf("%s\n\nCurrent Habit Data: %s", defaultRequest, data), nil
	}
	return fmt.Sprintf("User Question: \"%s\"\n\nCurrent Habit Data: %s", query, data), nil
}
