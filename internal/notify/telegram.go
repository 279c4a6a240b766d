package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTelegramBase    = "https://api.telegram.org"
	defaultTelegramTimeout = 5 * time.Second
)

// TelegramSender posts messages to one chat through the Bot API.
type TelegramSender struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
}

// NewTelegramSender builds a sender. Empty baseURL and non-positive timeout use defaults.
func NewTelegramSender(baseURL, token, chatID string, timeout time.Duration) *TelegramSender {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultTelegramBase
	}
	if timeout <= 0 {
		timeout = defaultTelegramTimeout
	}
	return &TelegramSender{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// Send delivers text as an HTML-formatted message.
func (s *TelegramSender) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: s.chatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return fmt.Errorf("telegram: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// The URL embeds the bot token; keep it out of logs.
		return fmt.Errorf("telegram: send message: %w", redact(err, s.token))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("telegram: read response: %w", err)
	}

	var parsed sendMessageResponse
	_ = json.Unmarshal(respBody, &parsed)
	if resp.StatusCode != http.StatusOK || !parsed.OK {
		return fmt.Errorf("telegram: unexpected status %d: %s", resp.StatusCode, parsed.Description)
	}
	return nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func redact(err error, secret string) error {
	if secret == "" {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), secret, "***"), err: err}
}
