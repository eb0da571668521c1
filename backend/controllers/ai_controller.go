package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"unichance/backend/config"
	"unichance/backend/middleware"
	"unichance/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const systemPrompt = "You are a smart assistant at a camp where children study mathematics, " +
	"informatics, chemistry and physics. Answer questions simply and clearly."

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatHistory keeps the per-user dialogue for the lifetime of the process.
// It is volatile: a restart clears every conversation.
type chatHistory struct {
	mu       sync.RWMutex
	messages map[uint][]ChatMessage
}

func newChatHistory() *chatHistory {
	return &chatHistory{messages: make(map[uint][]ChatMessage)}
}

func (h *chatHistory) Append(userID uint, msg ChatMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages[userID] = append(h.messages[userID], msg)
}

func (h *chatHistory) Dialogue(userID uint) []ChatMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()
	history := h.messages[userID]
	out := make([]ChatMessage, len(history))
	copy(out, history)
	return out
}

func (h *chatHistory) Slice(userID uint, offset, limit int) []ChatMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()
	history := h.messages[userID]
	if offset >= len(history) {
		return []ChatMessage{}
	}
	end := offset + limit
	if end > len(history) {
		end = len(history)
	}
	out := make([]ChatMessage, end-offset)
	copy(out, history[offset:end])
	return out
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

type AIController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Client  *http.Client
	history *chatHistory
}

func NewAIController(db *gorm.DB, cfg *config.Config) *AIController {
	return &AIController{
		DB:      db,
		Cfg:     cfg,
		Client:  http.DefaultClient,
		history: newChatHistory(),
	}
}

// Ask forwards the prompt together with the user's dialogue history to the
// chat backend and records both sides of the exchange.
func (aic *AIController) Ask(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c, aic.DB, aic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	prompt, err := url.PathUnescape(c.Params("prompt"))
	if err != nil || prompt == "" {
		return utils.BadRequest(c, "Prompt is required")
	}

	aic.history.Append(user.ID, ChatMessage{Role: "user", Content: prompt})

	answer, err := aic.complete(aic.history.Dialogue(user.ID))
	if err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	if answer != "" {
		aic.history.Append(user.ID, ChatMessage{Role: "assistant", Content: answer})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"answer":  answer,
	})
}

// History returns a bounded slice of the user's dialogue.
func (aic *AIController) History(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c, aic.DB, aic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 10)
	if offset < 0 || limit < 1 || limit > 100 {
		return utils.BadRequest(c, "Invalid offset or limit")
	}

	return c.JSON(aic.history.Slice(user.ID, offset, limit))
}

// complete calls the OpenAI-compatible chat-completions endpoint with the
// system prompt prepended to the dialogue.
func (aic *AIController) complete(dialogue []ChatMessage) (string, error) {
	payload := chatCompletionRequest{
		Model:    aic.Cfg.AIModel,
		Messages: append([]ChatMessage{{Role: "system", Content: systemPrompt}}, dialogue...),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", aic.Cfg.AIAPIURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+aic.Cfg.AIAPIKey)

	resp, err := aic.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var raw bytes.Buffer
		raw.ReadFrom(resp.Body)
		return "", fmt.Errorf("chat backend error: %s", raw.String())
	}

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response generated")
	}

	return result.Choices[0].Message.Content, nil
}
