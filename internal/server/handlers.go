package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/verte-zerg/typeflow/internal/model"
	"github.com/verte-zerg/typeflow/internal/stats"
	"github.com/verte-zerg/typeflow/internal/store"
	"github.com/verte-zerg/typeflow/internal/textfile"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
	maxPlausibleWPM         = 300
	anonymousUser           = "anon"
)

type textRequest struct {
	Duration *int   `json:"duration" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Active   *bool  `json:"active"`
}

type resultRequest struct {
	UserID        *string `json:"user_id"`
	Duration      *int    `json:"duration" binding:"required"`
	WPM           *int    `json:"wpm" binding:"required"`
	Accuracy      *int    `json:"accuracy" binding:"required"`
	CorrectChars  *int    `json:"correct_chars" binding:"required"`
	RawKeystrokes *int    `json:"raw_keystrokes" binding:"required"`
	TextID        *int64  `json:"text_id" binding:"required"`
}

type textResponse struct {
	ID       int64  `json:"id"`
	Content  string `json:"content"`
	Duration int    `json:"duration"`
}

type leaderboardRow struct {
	UserID      string `json:"user_id"`
	WPM         int    `json:"wpm"`
	Accuracy    int    `json:"accuracy"`
	Achievement string `json:"achievement"`
	CreatedAt   string `json:"created_at"`
}

func abort(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	abort(c, http.StatusInternalServerError, "Internal server error")
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) getText(c *gin.Context) {
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || !model.ValidDuration(duration) {
		abort(c, http.StatusBadRequest, "Invalid duration. Use 60, 90, or 120.")
		return
	}
	pool, err := s.store.ListActiveTexts(c.Request.Context(), duration)
	if err != nil {
		internalError(c, err)
		return
	}
	if len(pool) == 0 {
		abort(c, http.StatusNotFound, "No texts for this duration")
		return
	}
	chosen := lo.Sample(pool)
	c.JSON(http.StatusOK, textResponse{ID: chosen.ID, Content: chosen.Content, Duration: chosen.Duration})
}

func (s *Server) addText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if !model.ValidDuration(*req.Duration) {
		abort(c, http.StatusBadRequest, "Invalid duration. Use 60, 90, or 120.")
		return
	}
	content := textfile.Normalize(req.Content)
	if content == "" {
		abort(c, http.StatusBadRequest, "Content must not be empty")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	id, err := s.store.InsertText(c.Request.Context(), model.Text{
		Duration: *req.Duration,
		Content:  content,
		Active:   active,
	})
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (s *Server) listTexts(c *gin.Context) {
	texts, err := s.store.ListTexts(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	if texts == nil {
		texts = []model.Text{}
	}
	c.JSON(http.StatusOK, texts)
}

func (s *Server) deleteText(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, http.StatusUnprocessableEntity, "ID of the text to delete must be an integer")
		return
	}
	if err := s.store.DeleteText(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			abort(c, http.StatusNotFound, "Text not found")
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted_id": id})
}

func (s *Server) postResult(c *gin.Context) {
	var req resultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if !model.ValidDuration(*req.Duration) {
		abort(c, http.StatusBadRequest, "Invalid duration")
		return
	}
	if *req.Accuracy < 0 || *req.Accuracy > 100 {
		abort(c, http.StatusBadRequest, "Invalid accuracy")
		return
	}
	if *req.WPM < 0 || *req.WPM > maxPlausibleWPM {
		abort(c, http.StatusBadRequest, "Unrealistic WPM")
		return
	}

	ctx := c.Request.Context()
	if _, err := s.store.GetText(ctx, *req.TextID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			abort(c, http.StatusNotFound, "Text not found")
			return
		}
		internalError(c, err)
		return
	}

	stored, err := s.store.InsertResult(ctx, model.SessionResult{
		UserID:        req.UserID,
		Duration:      *req.Duration,
		WPM:           *req.WPM,
		Accuracy:      *req.Accuracy,
		CorrectChars:  *req.CorrectChars,
		RawKeystrokes: *req.RawKeystrokes,
		TextID:        *req.TextID,
	})
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": stored.ID})
}

func (s *Server) leaderboard(c *gin.Context) {
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		abort(c, http.StatusUnprocessableEntity, "duration must be an integer")
		return
	}
	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			abort(c, http.StatusUnprocessableEntity, "limit must be a positive integer")
			return
		}
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	results, err := s.store.TopResults(c.Request.Context(), duration, limit)
	if err != nil {
		internalError(c, err)
		return
	}
	rows := lo.Map(results, func(r model.StoredResult, _ int) leaderboardRow {
		user := anonymousUser
		if r.UserID != nil && *r.UserID != "" {
			user = *r.UserID
		}
		return leaderboardRow{
			UserID:      user,
			WPM:         r.WPM,
			Accuracy:    r.Accuracy,
			Achievement: stats.AchievementFor(r.WPM),
			CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
		}
	})
	c.JSON(http.StatusOK, rows)
}
