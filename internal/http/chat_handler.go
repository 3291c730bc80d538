package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roomcraft/internal/domain"
	"roomcraft/internal/service"
)

// ChatHandler mantiene dependencias para endpoints de sesiones y mensajes.
type ChatHandler struct {
	logger *zap.Logger
	store  *service.SessionStore
	conv   *service.ConversationController
	now    func() time.Time
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(
	logger *zap.Logger,
	store *service.SessionStore,
	conv *service.ConversationController,
) *ChatHandler {
	return &ChatHandler{
		logger: logger,
		store:  store,
		conv:   conv,
		now:    time.Now,
	}
}

// Health maneja GET /health e incluye el aviso de persistencia si lo hay.
func (h *ChatHandler) Health(c *gin.Context) {
	body := gin.H{"status": "ok", "degraded": false}
	if warn := h.store.Warning(); warn != nil {
		body["degraded"] = true
		body["warning"] = warn.Error()
	}
	c.JSON(http.StatusOK, body)
}

// ListSessions maneja GET /sessions?q=.
func (h *ChatHandler) ListSessions(c *gin.Context) {
	sessions := h.store.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"sessions":   service.Summarize(sessions, h.now()),
		"active_id":  h.conv.ActiveSessionID(),
		"persisting": !h.store.Degraded(),
	})
}

// CreateSession maneja POST /sessions y deja activa la sesion nueva.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	session, err := h.conv.NewSession(c.Request.Context())
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// GetSession maneja GET /sessions/:id.
func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// RenameSession maneja PATCH /sessions/:id.
func (h *ChatHandler) RenameSession(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid rename request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.store.Rename(c.Request.Context(), c.Param("id"), req.Title)
	switch {
	case errors.Is(err, service.ErrInvalidTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
		return
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	case err != nil:
		h.logger.Error("rename session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not rename session"})
		return
	}

	session, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// DeleteSession maneja DELETE /sessions/:id. Borrar un id inexistente no es error.
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	removed := h.conv.DeleteSession(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"deleted":   removed,
		"active_id": h.conv.ActiveSessionID(),
	})
}

// ActivateSession maneja POST /sessions/:id/activate.
func (h *ChatHandler) ActivateSession(c *gin.Context) {
	if err := h.conv.Activate(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	h.GetActive(c)
}

// GetActive maneja GET /active: sesion activa y sus mensajes visibles.
func (h *ChatHandler) GetActive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active_id": h.conv.ActiveSessionID(),
		"messages":  h.conv.Messages(),
		"awaiting":  h.conv.Awaiting(),
	})
}

// PostMessage maneja POST /messages. Si no hay sesion activa se crea una.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	out, err := h.conv.Send(c.Request.Context(), req.Content)
	switch {
	case errors.Is(err, service.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
		return
	case errors.Is(err, service.ErrSendInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "a message is already awaiting a response"})
		return
	case err != nil:
		h.logger.Error("send message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		return
	}

	body := gin.H{
		"session_id":    out.SessionID,
		"user_message":  out.UserMessage,
		"agent_message": out.AgentMessage,
		"outcome":       out.Outcome.String(),
	}
	// La sesion pudo borrarse mientras se esperaba al agente.
	if session, err := h.store.Get(out.SessionID); err == nil {
		body["session"] = session
	}
	c.JSON(http.StatusCreated, body)
}

// ListPrompts maneja GET /prompts: atajos y catalogos del panel de preferencias.
func (h *ChatHandler) ListPrompts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"quick_prompts": service.QuickPrompts,
		"color_schemes": service.ColorSchemes,
		"design_styles": service.DesignStyles,
		"room_types":    domain.RoomTypes(),
	})
}

// ComposePrompt maneja POST /prompts/compose. Solo arma texto; no envia nada.
func (h *ChatHandler) ComposePrompt(c *gin.Context) {
	var req struct {
		ColorScheme string `json:"color_scheme"`
		Style       string `json:"style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	text, ok := service.ComposePreferences(req.ColorScheme, req.Style)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no known preference selected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
