package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/woongiiit/DailyQuest-Backend/internal/middleware"
	"github.com/woongiiit/DailyQuest-Backend/internal/quest"
	"github.com/woongiiit/DailyQuest-Backend/pkg/errors"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

type QuestHandlers struct {
	uc     quest.QuestUsecase
	logger logger.Logger
}

func NewQuestHandlers(uc quest.QuestUsecase, logger logger.Logger) *QuestHandlers {
	return &QuestHandlers{uc: uc, logger: logger}
}

func (h *QuestHandlers) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/today", h.today)
	g.GET("/month/:year/:month", h.listMonth)
	g.GET("/linked/:date", h.linkedPeerQuest)
	g.GET("/:date", h.getByDate)
	g.PUT("/:date", h.replace)
	g.PATCH("/:date/toggle/:questId", h.toggle)
}

func (h *QuestHandlers) today(c *gin.Context) {
	dto, err := h.uc.GetOrCreateToday(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dailyQuest": dto})
}

func (h *QuestHandlers) getByDate(c *gin.Context) {
	dto, err := h.uc.GetByDate(c.Request.Context(), middleware.UserID(c), c.Param("date"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dailyQuest": dto})
}

func (h *QuestHandlers) replace(c *gin.Context) {
	var req struct {
		Quests               *[]quest.QuestItemInput `json:"quests"`
		EncouragementMessage *string                 `json:"encouragementMessage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.InvalidArg("malformed request body"))
		return
	}

	dto, err := h.uc.Replace(c.Request.Context(), middleware.UserID(c), c.Param("date"), quest.ReplaceCommand{
		Quests:               req.Quests,
		EncouragementMessage: req.EncouragementMessage,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dailyQuest": dto})
}

func (h *QuestHandlers) toggle(c *gin.Context) {
	dto, err := h.uc.Toggle(c.Request.Context(), middleware.UserID(c), c.Param("date"), c.Param("questId"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dailyQuest": dto})
}

func (h *QuestHandlers) listMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		middleware.AbortWithError(c, errors.ErrInvalidMonth)
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		middleware.AbortWithError(c, errors.ErrInvalidMonth)
		return
	}

	dtos, err := h.uc.ListMonth(c.Request.Context(), middleware.UserID(c), year, month)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthlyQuests": dtos})
}

func (h *QuestHandlers) linkedPeerQuest(c *gin.Context) {
	dto, err := h.uc.LinkedPeerQuest(c.Request.Context(), middleware.UserID(c), c.Param("date"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}
