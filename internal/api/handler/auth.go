package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"swipematch/backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "swipematch-service"
	sessionCtxKey = "session"
)

// generateJWT signs a token carrying the anonymous session id.
func (h *Handler) generateJWT(anonID string) (string, error) {
	claims := jwt.MapClaims{
		"anon_id": anonID,
		"exp":     time.Now().Add(h.tokenTTL).Unix(),
		"iss":     tokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}

// parseJWT validates a token and returns its anon_id claim.
func (h *Handler) parseJWT(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return h.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected claims type")
	}
	anonID, _ := claims["anon_id"].(string)
	if anonID == "" {
		return "", errors.New("token has no anon_id")
	}
	return anonID, nil
}

// GetAnonID creates a new anonymous session id and returns it with a JWT.
func (h *Handler) GetAnonID(c *gin.Context) {
	anonUUID, err := uuid.NewRandom()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session id"})
		return
	}
	anonID := anonUUID.String()

	token, err := h.generateJWT(anonID)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "anon_id": anonID})
}

// RequireSession resolves the bearer token to a session and stores it in
// the gin context.
func (h *Handler) RequireSession(c *gin.Context) {
	raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	anonID, err := h.parseJWT(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	s, err := h.Sessions.Get(anonID)
	if err != nil {
		log.Error().Err(err).Str("session", anonID).Msg("failed to open session")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
		return
	}

	c.Set(sessionCtxKey, s)
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionCtxKey).(*session.Session)
}
