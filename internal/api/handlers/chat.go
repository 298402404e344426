package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/amaumene/bingebuddy/internal/chatbot"
	"github.com/sirupsen/logrus"
)

// Replier answers chat messages
type Replier interface {
	Reply(ctx context.Context, text string) chatbot.Reply
}

// ChatHandler handles chat messages
type ChatHandler struct {
	assistant Replier
	logger    *logrus.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(assistant Replier, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{assistant: assistant, logger: logger}
}

type chatRequest struct {
	Message string `json:"message"`
}

// ServeHTTP handles the chat endpoint
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if !readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.assistant.Reply(r.Context(), req.Message))
}
