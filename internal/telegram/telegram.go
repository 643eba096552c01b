// Package telegram optionally delivers the top generated post to a chat or
// channel after a successful run.
package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// SendMessage sends a text message to a Telegram chat/channel with retry
// and exponential backoff.
func SendMessage(token, chatID, text string) error {
	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := sendMessageOnce(token, chatID, text)
		if err == nil {
			log.Printf("Message sent to Telegram (try %d)", attempt)
			return nil
		}

		log.Printf("Error send to Telegram (try %d/%d): %v", attempt, maxRetries, err)

		if attempt < maxRetries {
			waitTime := time.Duration(1<<attempt) * time.Second
			log.Printf("Wait %v before next try...", waitTime)
			time.Sleep(waitTime)
		}
	}

	return fmt.Errorf("can't send message after %d tries", maxRetries)
}

func sendMessageOnce(token, chatID, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)

	payload := map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     text,
		"disable_web_page_preview": false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error HTTP request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Warning: failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}
	return nil
}
