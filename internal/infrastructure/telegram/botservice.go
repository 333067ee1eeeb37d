package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/locationgenius/dashboard/internal/shared/logger"
)

const defaultAPIBaseURL = "https://api.telegram.org"

// parseMode matches how rendered templates are authored: bold with *...*.
const parseMode = "Markdown"

// BotService sends rendered templates through the Telegram Bot API.
type BotService struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Interface
}

// NewBotService creates a bot client. An empty apiBaseURL targets the public API.
func NewBotService(token, apiBaseURL string, log logger.Interface) *BotService {
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}
	return &BotService{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: fmt.Sprintf("%s/bot%s", strings.TrimRight(apiBaseURL, "/"), token),
		logger:  log,
	}
}

// SendMessage delivers text to chatID, splitting it when it exceeds the
// Telegram message limit. The first failing chunk aborts the send.
func (s *BotService) SendMessage(ctx context.Context, chatID int64, text string) error {
	chunks := splitMessage(text, maxMessageLength)
	for i, chunk := range chunks {
		body := map[string]any{
			"chat_id":    chatID,
			"text":       chunk,
			"parse_mode": parseMode,
		}
		if err := s.makeRequest(ctx, "sendMessage", body, nil); err != nil {
			s.logger.Warnw("telegram send failed",
				"chat_id", chatID,
				"chunk", i+1,
				"chunks", len(chunks),
				"error", err,
			)
			return err
		}
	}

	s.logger.Debugw("telegram message sent", "chat_id", chatID, "chunks", len(chunks))
	return nil
}

// BotInfo is the subset of getMe used to verify a token.
type BotInfo struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// GetMe verifies the bot token and returns the bot identity.
func (s *BotService) GetMe(ctx context.Context) (*BotInfo, error) {
	var info BotInfo
	if err := s.makeRequest(ctx, "getMe", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// apiResponse represents a Telegram API response
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after,omitempty"`
	} `json:"parameters,omitempty"`
}

func (s *BotService) makeRequest(ctx context.Context, method string, body map[string]any, out any) error {
	var payload *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = bytes.NewReader(jsonBody)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/"+method, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.OK {
		apiErr := &APIError{
			ErrorCode:   result.ErrorCode,
			Description: result.Description,
		}
		if apiErr.ErrorCode == 0 {
			apiErr.ErrorCode = resp.StatusCode
		}
		if result.Parameters != nil {
			apiErr.RetryAfter = result.Parameters.RetryAfter
		}
		return apiErr
	}

	if out != nil && len(result.Result) > 0 {
		if err := json.Unmarshal(result.Result, out); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
	}
	return nil
}
