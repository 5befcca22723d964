package handler

import (
	"strings"
	"time"

	"swipematch/backend/internal/localization"
	"swipematch/backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler exposes sessions over HTTP. It holds no state of its own beyond
// its collaborators.
type Handler struct {
	Sessions  *session.Manager
	Localizer *localization.Localizer

	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewHandler(sessions *session.Manager, localizer *localization.Localizer, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{
		Sessions:  sessions,
		Localizer: localizer,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/anonid", h.GetAnonID)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/", h.RequireSession)
	api.GET("/session/criteria", h.GetCriteria)
	api.PUT("/session/criteria", h.PutCriteria)

	api.GET("/discover/current", h.GetCurrent)
	api.POST("/discover/decisions", h.PostDecision)
	api.POST("/discover/decisions/settle", h.PostSettle)
	api.DELETE("/discover/decisions", h.DeleteDecision)
	api.POST("/discover/reset", h.PostReset)

	api.GET("/matches", h.ListMatches)
	api.DELETE("/matches", h.ClearMatches)
	api.GET("/matches/:id", h.GetMatch)
	api.GET("/matches/:id/messages", h.GetMessages)
	api.POST("/matches/:id/messages", h.PostMessage)
	api.POST("/matches/:id/read", h.PostRead)
}

// language picks the response language from ?lang= or Accept-Language.
func language(c *gin.Context) string {
	if lang := c.Query("lang"); lang != "" {
		return lang
	}
	accept := c.GetHeader("Accept-Language")
	if len(accept) >= 2 {
		return strings.ToLower(accept[:2])
	}
	return localization.DefaultLanguage
}
