package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/woongiiit/DailyQuest-Backend/internal/message"
	"github.com/woongiiit/DailyQuest-Backend/internal/middleware"
	"github.com/woongiiit/DailyQuest-Backend/pkg/errors"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

type MessageHandlers struct {
	uc     message.MessageUsecase
	logger logger.Logger
}

func NewMessageHandlers(uc message.MessageUsecase, logger logger.Logger) *MessageHandlers {
	return &MessageHandlers{uc: uc, logger: logger}
}

func (h *MessageHandlers) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/send", h.send)
	g.GET("/unread/count", h.unreadCount)
	g.GET("/recent", h.recent)
	g.GET("/:questDate", h.listForDay)
	g.PATCH("/:messageId/read", h.markRead)
}

type sendRequest struct {
	ToUserID  string `json:"toUserId" binding:"required"`
	Message   string `json:"message" binding:"required"`
	QuestDate string `json:"questDate" binding:"required"`
}

func (h *MessageHandlers) send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.InvalidArg("toUserId, message and questDate are required"))
		return
	}

	toID, err := uuid.Parse(req.ToUserID)
	if err != nil {
		middleware.AbortWithError(c, errors.InvalidArg("toUserId must be a valid id"))
		return
	}

	dto, err := h.uc.Send(c.Request.Context(), middleware.UserID(c), toID, req.Message, req.QuestDate)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": dto})
}

func (h *MessageHandlers) listForDay(c *gin.Context) {
	dtos, err := h.uc.ListForDay(c.Request.Context(), middleware.UserID(c), c.Param("questDate"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": dtos})
}

func (h *MessageHandlers) markRead(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("messageId"))
	if err != nil {
		middleware.AbortWithError(c, errors.ErrMessageNotFound)
		return
	}

	dto, err := h.uc.MarkRead(c.Request.Context(), messageID, middleware.UserID(c))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": dto})
}

func (h *MessageHandlers) unreadCount(c *gin.Context) {
	count, err := h.uc.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

func (h *MessageHandlers) recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			middleware.AbortWithError(c, errors.InvalidArg("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	dtos, err := h.uc.Recent(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": dtos})
}
