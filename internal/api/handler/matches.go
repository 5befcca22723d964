package handler

import (
	"errors"
	"net/http"

	"swipematch/backend/internal/config"
	"swipematch/backend/internal/matching"

	"github.com/gin-gonic/gin"
)

type sendRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *Handler) ListMatches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"matches": currentSession(c).Matches()})
}

func (h *Handler) GetMatch(c *gin.Context) {
	m, ok := currentSession(c).FindMatch(c.Param("id"))
	if !ok {
		h.matchNotFound(c)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) ClearMatches(c *gin.Context) {
	currentSession(c).ClearMatches()
	c.Status(http.StatusNoContent)
}

// GetMessages returns the thread and, for an empty one, conversation starters.
func (h *Handler) GetMessages(c *gin.Context) {
	s := currentSession(c)
	id := c.Param("id")
	if _, ok := s.FindMatch(id); !ok {
		h.matchNotFound(c)
		return
	}

	msgs := s.Messages(id)
	body := gin.H{"messages": msgs}
	if len(msgs) == 0 {
		body["starters"] = config.ConversationStarters
		body["hint"] = h.Localizer.GetString(language(c), "start_conversation")
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) PostMessage(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := currentSession(c).Send(c.Param("id"), req.Body)
	switch {
	case errors.Is(err, matching.ErrUnknownMatch):
		h.matchNotFound(c)
		return
	case errors.Is(err, matching.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) PostRead(c *gin.Context) {
	currentSession(c).MarkRead(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) matchNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": h.Localizer.GetString(language(c), "match_not_found")})
}
