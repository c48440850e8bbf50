package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/woongiiit/DailyQuest-Backend/internal/middleware"
	"github.com/woongiiit/DailyQuest-Backend/internal/user"
	"github.com/woongiiit/DailyQuest-Backend/pkg/errors"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

type UserHandlers struct {
	uc     user.UserUsecase
	logger logger.Logger
}

func NewUserHandlers(uc user.UserUsecase, logger logger.Logger) *UserHandlers {
	return &UserHandlers{uc: uc, logger: logger}
}

// RegisterAuthRoutes mounts the unauthenticated endpoints.
func (h *UserHandlers) RegisterAuthRoutes(g *gin.RouterGroup) {
	g.POST("/register", h.register)
	g.POST("/login", h.login)
}

// RegisterUserRoutes mounts the endpoints behind the auth middleware.
func (h *UserHandlers) RegisterUserRoutes(g *gin.RouterGroup) {
	g.GET("/me", h.me)
	g.PATCH("/me/nickname", h.updateNickname)
	g.PATCH("/me/profile-image", h.updateProfileImage)
	g.GET("/search", h.findByCode)
	g.GET("/link", h.linkedPeer)
	g.POST("/link", h.link)
	g.DELETE("/link", h.unlink)
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname" binding:"required"`
}

func (h *UserHandlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.InvalidArg("username, password and nickname are required"))
		return
	}

	resp, err := h.uc.Register(c.Request.Context(), user.RegisterCommand{
		Username: req.Username,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.ErrInvalidCredentials)
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), user.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandlers) me(c *gin.Context) {
	dto, err := h.uc.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *UserHandlers) updateNickname(c *gin.Context) {
	var req struct {
		Nickname string `json:"nickname" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.ErrInvalidNickname)
		return
	}

	if err := h.uc.UpdateNickname(c.Request.Context(), middleware.UserID(c), req.Nickname); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nickname": req.Nickname})
}

func (h *UserHandlers) updateProfileImage(c *gin.Context) {
	var req struct {
		ProfileImage string `json:"profileImage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.InvalidArg("profile image is required"))
		return
	}

	if err := h.uc.UpdateProfileImage(c.Request.Context(), middleware.UserID(c), req.ProfileImage); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profileImage": req.ProfileImage})
}

func (h *UserHandlers) findByCode(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		middleware.AbortWithError(c, errors.InvalidArg("code query parameter is required"))
		return
	}

	dto, err := h.uc.FindByCode(c.Request.Context(), middleware.UserID(c), code)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *UserHandlers) link(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.InvalidArg("code is required"))
		return
	}

	peer, err := h.uc.Link(c.Request.Context(), middleware.UserID(c), req.Code)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"linkedUser": peer})
}

func (h *UserHandlers) unlink(c *gin.Context) {
	if err := h.uc.Unlink(c.Request.Context(), middleware.UserID(c)); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "link removed"})
}

func (h *UserHandlers) linkedPeer(c *gin.Context) {
	peer, err := h.uc.LinkedPeer(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"linkedUser": peer})
}
