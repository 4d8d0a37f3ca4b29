package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// chatRequest is the request body for POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
}

// chatReply is what the client renders. Source is "openai" or "rules".
type chatReply struct {
	Answer          string   `json:"answer"`
	Recommendations []string `json:"recommendations,omitempty"`
	Calories        *int     `json:"calories,omitempty"`
	Source          string   `json:"source"`
}

/* ─── Rule-based advisor ─────────────────────────────────────────────── */

// chatRule pairs a predicate on the lower-cased message with its reply.
// Only the latest message is considered.
type chatRule struct {
	matches func(msg string) bool
	reply   func(p *userProfile) chatReply
}

func containsAny(msg string, terms ...string) bool {
	for _, k := range terms {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

func keywords(kw ...string) func(string) bool {
	return func(msg string) bool { return containsAny(msg, kw...) }
}

func fixedReply(answer string, recs ...string) func(*userProfile) chatReply {
	return func(*userProfile) chatReply {
		return chatReply{Answer: answer, Recommendations: recs}
	}
}

// caloriesForGoal is the target for p re-run under g, or fallback when there
// is no usable profile.
func caloriesForGoal(p *userProfile, g goal, fallback int) int {
	if p == nil {
		return fallback
	}
	withGoal := *p
	withGoal.Goal = g
	targets, err := computeEnergyTargets(withGoal)
	if err != nil {
		return fallback
	}
	return targets.TargetCalories
}

// chatRules are evaluated top-down; the first match wins.
var chatRules = []chatRule{
	{
		matches: keywords("weight loss", "lose weight"),
		reply: func(p *userProfile) chatReply {
			kcal := caloriesForGoal(p, goalWeightLoss, 1500)
			return chatReply{
				Answer: "For weight loss, create a calorie deficit of 300-500 calories daily. Focus on lean proteins, fiber-rich vegetables, and whole grains. Avoid processed foods and sugary drinks.",
				Recommendations: []string{
					"Eat protein with every meal (20-30g)",
					"Fill half your plate with vegetables",
					"Choose whole grains over refined carbs",
					"Drink water before meals",
					"Get 7-9 hours of sleep",
				},
				Calories: &kcal,
			}
		},
	},
	{
		matches: keywords("muscle", "protein"),
		reply: func(p *userProfile) chatReply {
			kcal := caloriesForGoal(p, goalMuscleGain, 2200)
			return chatReply{
				Answer: "For muscle gain, consume 1.6-2.2g protein per kg of body weight daily. Eat in a slight calorie surplus and include resistance training.",
				Recommendations: []string{
					"Eat protein every 3-4 hours",
					"Include post-workout protein within 30 minutes",
					"Choose complete proteins (eggs, chicken, fish)",
					"Don't skip carbs - they fuel your workouts",
					"Stay hydrated during training",
				},
				Calories: &kcal,
			}
		},
	},
	{
		matches: keywords("diabetes", "blood sugar"),
		reply: fixedReply(
			"For diabetes management, controlling carbohydrate intake and meal timing is crucial. Focus on complex carbs, fiber-rich foods, and consistent meal schedules. Please consult your healthcare provider for personalized medical advice.",
			"Pair carbohydrates with protein or healthy fat",
			"Prefer whole grains and legumes over refined carbs",
			"Keep meal times consistent",
		),
	},
	{
		matches: keywords("water", "hydration"),
		reply: fixedReply(
			"Aim for 35ml of water per kg of body weight daily. Increase during exercise or hot weather. Monitor urine color - pale yellow indicates good hydration.",
			"Start your day with a glass of water",
			"Drink water before, during, and after exercise",
			"Eat water-rich foods (cucumbers, watermelon)",
			"Set reminders to drink water regularly",
			"Limit caffeine and alcohol intake",
		),
	},
	{
		matches: keywords("energy", "tired", "fatigue"),
		reply: fixedReply(
			"Boost energy with balanced meals every 3-4 hours, complex carbs, iron-rich foods, and adequate B vitamins. Avoid energy crashes from sugar spikes.",
			"Eat regular, balanced meals",
			"Include iron-rich foods (spinach, lean meat)",
			"Get B vitamins from whole grains and eggs",
			"Limit sugar and refined carbs",
			"Consider a blood test to check for deficiencies",
		),
	},
	{
		matches: keywords("healthy", "nutrition"),
		reply: fixedReply(
			"Follow a balanced diet with variety from all food groups. Focus on whole, minimally processed foods. Practice portion control and mindful eating.",
			"Eat 5-9 servings of fruits and vegetables daily",
			"Choose whole grains over refined options",
			"Include healthy fats (nuts, olive oil, avocado)",
			"Limit processed and packaged foods",
			"Cook meals at home when possible",
		),
	},
	{
		matches: keywords("meal plan", "diet plan", "what to eat"),
		reply: fixedReply(
			"Plan meals around lean proteins, colorful vegetables, and whole grains. Complete the nutrition assessment to get a weekly plan built around your goals and restrictions.",
			"Plan your meals for the week",
			"Batch cook grains and proteins",
			"Keep frozen vegetables as backup",
			"Prepare healthy snacks in advance",
			"Use a grocery list to stay on track",
		),
	},
}

var defaultChatReply = fixedReply(
	"For personalized advice, consider your individual needs, preferences, and health goals. Focus on whole foods and balanced nutrition, or book a consultation with one of our nutritionists.",
	"Eat a variety of foods from all food groups",
	"Stay hydrated throughout the day",
	"Practice portion control",
	"Listen to your body's hunger cues",
	"Consult a registered dietitian for personalized guidance",
)

// ruleReply answers from chatRules. p may be nil.
func ruleReply(message string, p *userProfile) chatReply {
	msg := strings.ToLower(message)
	reply := defaultChatReply(p)
	for _, r := range chatRules {
		if r.matches(msg) {
			reply = r.reply(p)
			break
		}
	}
	reply.Source = "rules"
	return reply
}

/* ─── OpenAI HTTP client ─────────────────────────────────────────────── */

const chatSystemPrompt = `You are a professional nutritionist and fitness expert. Provide helpful, accurate, and personalized nutrition advice. Keep responses concise but informative. Never recommend foods the user lists as allergies or dislikes.`

// errOpenAIKeyMissing means the upstream is not configured; callers fall back
// silently.
var errOpenAIKeyMissing = errors.New("OPENAI_API_KEY not set")

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the request body for the OpenAI chat completions API.
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

// callOpenAI sends a chat completions request and returns the content of the
// first choice. Uses raw net/http to avoid pulling in the OpenAI SDK.
func callOpenAI(ctx context.Context, messages []openAIMessage, baseURL string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", errOpenAIKeyMissing
	}

	bodyBytes, err := json.Marshal(openAIRequest{
		Model:       "gpt-4o-mini",
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return result.Choices[0].Message.Content, nil
}

// chatMessages builds the upstream conversation, prefixing the question with
// the user's profile when one is on file.
func chatMessages(message string, p *userProfile) []openAIMessage {
	user := "Question: " + message
	if p != nil {
		if ctxJSON, err := json.Marshal(p); err == nil {
			user = "User context: " + string(ctxJSON) + ". " + user
		}
	}
	return []openAIMessage{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "user", Content: user},
	}
}

/* ─── Handler ────────────────────────────────────────────────────────── */

// chat answers a nutrition question. The OpenAI upstream is tried first when
// configured; any failure there falls back to the rule-based reply.
// POST /api/chat.
func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		apiError(c, http.StatusBadRequest, "message is required")
		return
	}

	profile := h.storedProfile(c)

	answer, err := callOpenAI(c.Request.Context(), chatMessages(req.Message, profile), h.openAIBaseURL)
	switch {
	case err == nil && strings.TrimSpace(answer) != "":
		c.JSON(http.StatusOK, chatReply{Answer: strings.TrimSpace(answer), Source: "openai"})
		return
	case err != nil && !errors.Is(err, errOpenAIKeyMissing):
		log.Printf("[chat] OpenAI error, using rules: %v", err)
	}

	c.JSON(http.StatusOK, ruleReply(req.Message, profile))
}

// storedProfile returns the caller's normalized profile, or nil when there is
// no assessment (or no store) to read it from.
func (h *Handler) storedProfile(c *gin.Context) *userProfile {
	if h.records == nil {
		return nil
	}
	userID := c.GetInt("user_id")
	rec, err := loadRecord[assessmentRecord](c, h.records, assessmentKey(userID))
	if err != nil {
		if !errors.Is(err, errRecordNotFound) {
			log.Printf("[storedProfile] user %d: %v", userID, err)
		}
		return nil
	}
	return &rec.Profile
}
