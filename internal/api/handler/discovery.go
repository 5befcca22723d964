package handler

import (
	"errors"
	"net/http"

	"swipematch/backend/internal/config"
	"swipematch/backend/internal/discovery"
	"swipematch/backend/internal/models"
	"swipematch/backend/internal/session"

	"github.com/gin-gonic/gin"
)

type decisionRequest struct {
	Kind models.DecisionKind `json:"kind" binding:"required"`
	// Hold leaves the decision in flight until it is settled or cancelled.
	Hold bool `json:"hold"`
}

func (h *Handler) GetCriteria(c *gin.Context) {
	s := currentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"criteria":         s.Criteria(),
		"distance_options": config.DistanceOptions,
	})
}

// PutCriteria replaces the preference set and restarts discovery under it.
func (h *Handler) PutCriteria(c *gin.Context) {
	var req models.FilterCriteria
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.AgeMax-req.AgeMin < config.MinAgeGap {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age range must span at least 2 years"})
		return
	}

	s := currentSession(c)
	if err := s.UpdateCriteria(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"criteria": s.Criteria(), "remaining": s.Remaining()})
}

func (h *Handler) GetCurrent(c *gin.Context) {
	s := currentSession(c)
	profile, ok := s.Current()
	if !ok {
		c.JSON(http.StatusOK, h.exhausted(c))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exhausted": false,
		"profile":   profile,
		"remaining": s.Remaining(),
	})
}

// PostDecision decides on the current candidate. With "hold" set the
// decision stays in flight and only its outcome is returned.
func (h *Handler) PostDecision(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := currentSession(c)
	decide := s.Decide
	if req.Hold {
		decide = s.StartDecision
	}

	res, err := decide(req.Kind)
	switch {
	case errors.Is(err, discovery.ErrExhausted):
		c.JSON(http.StatusOK, h.exhausted(c))
		return
	case errors.Is(err, discovery.ErrDecisionInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, session.ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := h.decisionBody(c, res)
	body["held"] = req.Hold
	c.JSON(http.StatusOK, body)
}

// PostSettle commits the held decision and moves to the next candidate.
func (h *Handler) PostSettle(c *gin.Context) {
	res, ok := currentSession(c).Settle()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "no decision in progress"})
		return
	}
	c.JSON(http.StatusOK, h.decisionBody(c, res))
}

// DeleteDecision abandons the held decision; the candidate stays current.
func (h *Handler) DeleteDecision(c *gin.Context) {
	if !currentSession(c).Cancel() {
		c.JSON(http.StatusConflict, gin.H{"error": "no decision in progress"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) decisionBody(c *gin.Context, res session.DecisionResult) gin.H {
	body := gin.H{
		"kind":         res.Kind,
		"candidate_id": res.Candidate.ID,
		"is_match":     res.Outcome.IsMatch,
	}
	if res.Match != nil {
		body["match"] = res.Match
		body["announcement"] = h.Localizer.MatchAnnouncement(language(c), res.Match.Name, res.Match.SuperLike)
	}
	return body
}

// PostReset is "start over": rewind discovery under the current criteria.
func (h *Handler) PostReset(c *gin.Context) {
	s := currentSession(c)
	s.StartOver()
	c.JSON(http.StatusOK, gin.H{"remaining": s.Remaining()})
}

func (h *Handler) exhausted(c *gin.Context) gin.H {
	return gin.H{
		"exhausted": true,
		"message":   h.Localizer.GetString(language(c), "no_more_profiles"),
	}
}
