package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/woongiiit/DailyQuest-Backend/config"
	"github.com/woongiiit/DailyQuest-Backend/internal/message"
	messageHTTP "github.com/woongiiit/DailyQuest-Backend/internal/message/delivery/http"
	"github.com/woongiiit/DailyQuest-Backend/internal/middleware"
	notifierWS "github.com/woongiiit/DailyQuest-Backend/internal/notifier/delivery/ws"
	"github.com/woongiiit/DailyQuest-Backend/internal/quest"
	questHTTP "github.com/woongiiit/DailyQuest-Backend/internal/quest/delivery/http"
	"github.com/woongiiit/DailyQuest-Backend/internal/user"
	userHTTP "github.com/woongiiit/DailyQuest-Backend/internal/user/delivery/http"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

type Server struct {
	cfg       config.Config
	logger    logger.Logger
	userUC    user.UserUsecase
	questUC   quest.QuestUsecase
	messageUC message.MessageUsecase
	wsHandler *notifierWS.Handler
}

func New(cfg config.Config, logger logger.Logger, userUC user.UserUsecase, questUC quest.QuestUsecase, messageUC message.MessageUsecase, wsHandler *notifierWS.Handler) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		userUC:    userUC,
		questUC:   questUC,
		messageUC: messageUC,
		wsHandler: wsHandler,
	}
}

func (s *Server) Router() *gin.Engine {
	if s.cfg.LoggerMode.Prod {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.cors())
	r.Use(s.requestLog())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	userHandlers := userHTTP.NewUserHandlers(s.userUC, s.logger)
	questHandlers := questHTTP.NewQuestHandlers(s.questUC, s.logger)
	messageHandlers := messageHTTP.NewMessageHandlers(s.messageUC, s.logger)

	api := r.Group("/api")
	userHandlers.RegisterAuthRoutes(api.Group("/auth"))

	authed := api.Group("")
	authed.Use(middleware.Auth(s.cfg))
	userHandlers.RegisterUserRoutes(authed.Group("/users"))
	questHandlers.RegisterRoutes(authed.Group("/quests"))
	messageHandlers.RegisterRoutes(authed.Group("/messages"))

	// the websocket authenticates itself via token
	r.GET("/ws", s.wsHandler.Serve)

	return r
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	s.logger.Info("server listening", "port", s.cfg.Server.Port, "env", s.cfg.Server.Environment)
	return srv.ListenAndServe()
}

func (s *Server) cors() gin.HandlerFunc {
	origin := s.cfg.Server.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
