package http

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"claimboard/internal/domain"
	"claimboard/internal/metrics"
	"claimboard/internal/service"
	"claimboard/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	claims    service.ClaimService
	history   service.HistoryService
	storage   storage.Service
	bucket    string
	keyPrefix string
	metrics   *metrics.Metrics
}

func NewHandler(
	users service.UserService,
	claims service.ClaimService,
	history service.HistoryService,
	store storage.Service,
	bucket, keyPrefix string,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		users:     users,
		claims:    claims,
		history:   history,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		metrics:   m,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	api := router.Group("/api")
	{
		api.GET("/users", h.listUsers)
		api.POST("/users", h.createUser)
		api.POST("/users/:id/avatar", h.uploadAvatar)
		api.GET("/users/:id/avatar", h.getAvatar)
		api.POST("/claim", h.claim)
		api.GET("/history", h.listHistory)
		api.GET("/history/:userId", h.listUserHistory)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type createUserRequest struct {
	Name string `json:"name"`
}

type claimRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]RankedUserResponse, len(users))
	for i := range users {
		resp[i] = rankedToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) claim(c *gin.Context) {
	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.claims.Claim(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveClaim(result.PointsAwarded)
	}

	leaderboard := make([]RankedUserResponse, len(result.Leaderboard))
	for i := range result.Leaderboard {
		leaderboard[i] = rankedToResponse(result.Leaderboard[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "points claimed successfully",
		"pointsAwarded": result.PointsAwarded,
		"user":          userToResponse(result.User),
		"leaderboard":   leaderboard,
	})
}

func (h *Handler) listHistory(c *gin.Context) {
	entries, err := h.history.ListRecent(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entriesToResponse(entries))
}

func (h *Handler) listUserHistory(c *gin.Context) {
	entries, err := h.history.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entriesToResponse(entries))
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	id := c.Param("id")
	if _, err := h.users.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	key := path.Join(h.keyPrefix, "avatars", id+strings.ToLower(path.Ext(header.Filename)))
	location, err := h.storage.Upload(
		c.Request.Context(),
		h.bucket,
		key,
		file,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.SetAvatar(c.Request.Context(), id, location)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) getAvatar(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if user.Avatar == nil || *user.Avatar == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "avatar not set"})
		return
	}

	key, err := extractS3Key(*user.Avatar, h.bucket)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	url, err := h.storage.GetObjectURL(c.Request.Context(), h.bucket, key, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a persistence failure and surfaces as a 500 with the
// raw message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrUserIDRequired),
		errors.Is(err, service.ErrUserExists):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

type UserResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TotalPoints int     `json:"totalPoints"`
	Avatar      *string `json:"avatar"`
}

type RankedUserResponse struct {
	UserResponse
	Rank int `json:"rank"`
}

type HistoryEntryResponse struct {
	ID                    string `json:"id"`
	UserID                string `json:"userId"`
	UserName              string `json:"userName"`
	PointsAwarded         int    `json:"pointsAwarded"`
	TotalPointsAfterClaim int    `json:"totalPointsAfterClaim"`
	Timestamp             string `json:"timestamp"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		TotalPoints: user.TotalPoints,
		Avatar:      user.Avatar,
	}
}

func rankedToResponse(user domain.RankedUser) RankedUserResponse {
	return RankedUserResponse{
		UserResponse: userToResponse(user.User),
		Rank:         user.Rank,
	}
}

func entriesToResponse(entries []domain.ClaimHistoryEntry) []HistoryEntryResponse {
	resp := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		resp[i] = HistoryEntryResponse{
			ID:                    entry.ID,
			UserID:                entry.UserID,
			UserName:              entry.UserName,
			PointsAwarded:         entry.PointsAwarded,
			TotalPointsAfterClaim: entry.TotalPointsAfterClaim,
			Timestamp:             entry.Timestamp.Format(time.RFC3339),
		}
	}
	return resp
}

func extractS3Key(location, bucket string) (string, error) {
	if !strings.HasPrefix(location, "s3://") {
		return "", fmt.Errorf("invalid s3 location")
	}
	rest := strings.TrimPrefix(location, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid s3 location")
	}
	if bucket != "" && parts[0] != bucket {
		return "", fmt.Errorf("s3 bucket mismatch")
	}
	return parts[1], nil
}
