package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"CryptoBuddy/internal/model"
)

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string // fixed destination channel for alert notifications
	Client   *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// sentMessage is the part of a sendMessage result we care about.
type sentMessage struct {
	MessageID int `json:"message_id"`
}

// call posts a JSON payload to a Bot API method and decodes the result.
func (t *TelegramNotifier) call(method string, payload interface{}, result interface{}) error {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/%s", t.BotToken, method)
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := t.Client.Post(apiURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", method, err)
	}
	var envelope struct {
		OK          bool            `json:"ok"`
		Description string          `json:"description"`
		Result      json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("telegram API error: %s (status %d)", envelope.Description, resp.StatusCode)
	}
	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("%s: decode result: %w", method, err)
		}
	}
	return nil
}

// Send sends a message to the configured destination chat.
func (t *TelegramNotifier) Send(text string) error {
	return t.call("sendMessage", map[string]string{
		"chat_id":    t.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	}, nil)
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := t.Send(text); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] Telegram send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// SendTo sends a message to an arbitrary chat and returns the message id.
func (t *TelegramNotifier) SendTo(chatID int64, text string) (int, error) {
	var msg sentMessage
	err := t.call("sendMessage", map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}, &msg)
	if err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

// EditMessage replaces the text of a previously sent message.
func (t *TelegramNotifier) EditMessage(chatID int64, messageID int, text string) error {
	return t.call("editMessageText", map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
		"parse_mode": "HTML",
	}, nil)
}

// DeleteMessage deletes a single message from a chat.
func (t *TelegramNotifier) DeleteMessage(chatID int64, messageID int) error {
	return t.call("deleteMessage", map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
	}, nil)
}

// APILatency measures one round trip to the Bot API.
func (t *TelegramNotifier) APILatency() (time.Duration, error) {
	start := time.Now()
	if err := t.call("getMe", map[string]string{}, nil); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// NotifyCrossing formats a crossing event and delivers it to the
// destination chat. One attempt; the caller removes the alert whether
// or not delivery succeeded.
func (t *TelegramNotifier) NotifyCrossing(q model.PriceQuote, a *model.Alert) error {
	return t.Send(FormatCrossing(q, a))
}
