package controllers

import (
	"log"
	"net/http"
	"strings"

	"ecochat/middleware"
	"ecochat/models"
	svc "ecochat/pkg/services"
	"ecochat/store"

	"github.com/gin-gonic/gin"
)

// FallbackReply is persisted and returned when the collaborator
// answers well-formed but without usable text.
const FallbackReply = "Sorry, I couldn't process that request. Please try again."

// Chat persists the user's turn, asks the completion collaborator for
// a reply, persists that too and returns it. If the collaborator call
// fails the user's message stays durable and the caller gets a
// generic 500.
func Chat(messages *store.Messages, completer svc.Completer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		var body struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		if _, err := messages.Append(userID, models.SenderUser, body.Message); err != nil {
			log.Printf("[chat] save user message: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		reply, err := completer.Complete(c.Request.Context(), body.Message)
		if err != nil {
			// user message is already durable; report the failure only
			log.Printf("[chat] completion error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if strings.TrimSpace(reply) == "" {
			reply = FallbackReply
		}

		if _, err := messages.Append(userID, models.SenderBot, reply); err != nil {
			log.Printf("[chat] save bot reply: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}

// History returns the caller's messages oldest first.
func History(messages *store.Messages) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		msgs, err := messages.ListOrdered(userID)
		if err != nil {
			log.Printf("[chat] fetch history: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching chat history"})
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, gin.H{
				"sender":    m.Sender,
				"message":   m.Text,
				"timestamp": m.Timestamp,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// ClearHistory deletes every message owned by the caller.
func ClearHistory(messages *store.Messages) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if _, err := messages.Clear(userID); err != nil {
			log.Printf("[chat] clear history: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing chat history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Chat history cleared successfully"})
	}
}
