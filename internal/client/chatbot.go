// ABOUTME: Chat assistant endpoints for the Trackdemic API
// ABOUTME: Message send, session history, and session clearing

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ChatMessage is one message in an assistant conversation.
type ChatMessage struct {
	ID          int    `json:"id"`
	MessageType string `json:"message_type"` // "user" or "bot"
	Content     string `json:"content"`
	CreatedAt   string `json:"created_at"`
}

// ChatSession is a conversation with its message history.
type ChatSession struct {
	SessionID string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages"`
	UpdatedAt string        `json:"updated_at"`
}

// ChatResponse is the reply to a sent message. The backend assigns a session
// id on the first message of a conversation.
type ChatResponse struct {
	SessionID   string      `json:"session_id"`
	UserMessage ChatMessage `json:"user_message"`
	BotResponse ChatMessage `json:"bot_response"`
}

// SendChatMessage calls POST /chatbot/chat/
func (c *Client) SendChatMessage(ctx context.Context, message, sessionID string) (*ChatResponse, error) {
	body := map[string]string{"message": message, "session_id": sessionID}
	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chatbot/chat/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChatHistory calls GET /chatbot/history/
func (c *Client) ChatHistory(ctx context.Context, sessionID string) ([]ChatSession, error) {
	params := url.Values{}
	if sessionID != "" {
		params.Set("session_id", sessionID)
	}
	var sessions []ChatSession
	if err := c.do(ctx, http.MethodGet, withQuery("/chatbot/history/", params), nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ClearChatSession calls DELETE /chatbot/sessions/{id}/clear/
func (c *Client) ClearChatSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/chatbot/sessions/%s/clear/", sessionID), nil, nil)
}
