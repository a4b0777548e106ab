package gateway

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// secretHeader is the header Telegram echoes back when a webhook secret is
// configured.
const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateHandler consumes one decoded inbound update.
type UpdateHandler func(ctx context.Context, update tgbotapi.Update)

// Server is the inbound gateway: one webhook endpoint plus a health probe.
// It decodes, optionally authorizes, forwards and acknowledges; no survey
// logic lives here.
type Server struct {
	engine *gin.Engine
	secret string
	handle UpdateHandler
	log    logrus.FieldLogger
}

func New(secret string, handle UpdateHandler, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		engine: gin.New(),
		secret: secret,
		handle: handle,
		log:    log,
	}
	s.engine.Use(gin.Recovery())
	s.engine.GET("/", s.health)
	s.engine.POST("/webhook", s.webhook)
	return s
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("gateway listening")
	return s.engine.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) webhook(c *gin.Context) {
	if s.secret != "" && c.GetHeader(secretHeader) != s.secret {
		s.log.WithField("remote", c.ClientIP()).Warn("webhook secret mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		s.log.WithError(err).Warn("malformed webhook payload")
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "bad payload"})
		return
	}

	if s.handle != nil {
		s.handle(c.Request.Context(), update)
	}

	// Acknowledged regardless of downstream outcome.
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
