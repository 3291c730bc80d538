package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"roomcraft/internal/agent"
	"roomcraft/internal/domain"
)

const (
	FallbackReplyText   = "I received your request."
	SoftFailureText     = "I apologize, but I encountered an issue. Please try again."
	NetworkFailureText  = "Network error. Please check your connection and try again."
	defaultAgentTimeout = 60 * time.Second
)

var (
	ErrConversationNotConfigured = errors.New("conversation controller not configured")
	ErrEmptyInput                = errors.New("conversation empty input")
	ErrSendInFlight              = errors.New("conversation send already in flight")
)

// Outcome clasifica como termino la llamada al agente.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeSoftFailure
	OutcomeTransportFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSoftFailure:
		return "soft_failure"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// SendResult describe un turno completo: mensaje del usuario y respuesta del agente.
type SendResult struct {
	SessionID    string         `json:"session_id"`
	UserMessage  domain.Message `json:"user_message"`
	AgentMessage domain.Message `json:"agent_message"`
	Outcome      Outcome        `json:"-"`
}

// ConversationController maneja el protocolo de turnos de la sesion activa.
// Estados: Idle y Awaiting (hay una llamada al agente en curso). Mientras espera,
// los envios nuevos se rechazan; el resto de operaciones sigue disponible.
type ConversationController struct {
	store   *SessionStore
	agent   agent.Client
	agentID string
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string

	mu       sync.Mutex
	activeID string
	messages []domain.Message
	awaiting bool
}

func NewConversationController(
	store *SessionStore,
	client agent.Client,
	agentID string,
	timeout time.Duration,
	logger *zap.Logger,
) *ConversationController {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultAgentTimeout
	}
	return &ConversationController{
		store:   store,
		agent:   client,
		agentID: agentID,
		timeout: timeout,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   newTimeOrderedID,
	}
}

// ActiveSessionID devuelve la sesion activa o "" si no hay ninguna.
func (c *ConversationController) ActiveSessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}

// Messages devuelve una copia de los mensajes visibles de la sesion activa.
func (c *ConversationController) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Message{}, c.messages...)
}

// Awaiting indica si hay un envio en curso.
func (c *ConversationController) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// Activate selecciona una sesion existente y carga su copia de trabajo.
func (c *ConversationController) Activate(id string) error {
	if c == nil || c.store == nil {
		return ErrConversationNotConfigured
	}
	sess, err := c.store.Get(id)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.activeID = sess.ID
	c.messages = sess.Messages
	c.mu.Unlock()
	return nil
}

// NewSession crea una sesion con la categoria default y la deja activa.
func (c *ConversationController) NewSession(ctx context.Context) (domain.Session, error) {
	if c == nil || c.store == nil {
		return domain.Session{}, ErrConversationNotConfigured
	}
	sess, err := c.store.Create(ctx, domain.DefaultRoomType)
	if err != nil {
		return domain.Session{}, err
	}
	c.mu.Lock()
	c.activeID = sess.ID
	c.messages = sess.Messages
	c.mu.Unlock()
	return sess, nil
}

// DeleteSession borra la sesion; si era la activa limpia la seleccion y los mensajes visibles.
func (c *ConversationController) DeleteSession(ctx context.Context, id string) bool {
	if c == nil || c.store == nil {
		return false
	}
	removed := c.store.Delete(ctx, id)
	c.mu.Lock()
	if c.activeID == id {
		c.activeID = ""
		c.messages = nil
	}
	c.mu.Unlock()
	return removed
}

// RenameActive renombra la sesion activa.
func (c *ConversationController) RenameActive(ctx context.Context, title string) error {
	if c == nil || c.store == nil {
		return ErrConversationNotConfigured
	}
	id := c.ActiveSessionID()
	if id == "" {
		return ErrSessionNotFound
	}
	return c.store.Rename(ctx, id, title)
}

// Send ejecuta un turno. ErrEmptyInput y ErrSendInFlight son rechazos sin efectos:
// el llamador puede ignorarlos. Cualquier resultado del agente agrega exactamente
// un mensaje del agente y deja el controlador en Idle.
func (c *ConversationController) Send(ctx context.Context, text string) (*SendResult, error) {
	if c == nil || c.store == nil || c.agent == nil {
		return nil, ErrConversationNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	c.mu.Lock()
	if c.awaiting {
		c.mu.Unlock()
		return nil, ErrSendInFlight
	}
	c.awaiting = true
	sessionID := c.activeID
	working := append([]domain.Message(nil), c.messages...)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.awaiting = false
		c.mu.Unlock()
	}()

	if sessionID == "" {
		sess, err := c.NewSession(ctx)
		if err != nil {
			return nil, err
		}
		sessionID = sess.ID
		working = sess.Messages
	}

	log := c.logger.With(zap.String("session_id", sessionID))

	firstUserMessage := !domain.HasUserMessage(working)
	userMsg := domain.NewUserMessage(c.newID(), text, c.now())
	working = append(working, userMsg)
	c.commit(ctx, log, sessionID, working)

	if firstUserMessage {
		roomType, _ := domain.DetectRoomType(text)
		if err := c.store.UpdateRoomType(context.WithoutCancel(ctx), sessionID, roomType, true); err != nil {
			log.Warn("update room type failed", zap.Error(err))
		}
	}

	agentMsg, outcome := c.callAgent(ctx, log, sessionID, text)
	working = append(working, agentMsg)
	c.commit(ctx, log, sessionID, working)

	log.Info("send completed", zap.String("outcome", outcome.String()))

	return &SendResult{
		SessionID:    sessionID,
		UserMessage:  userMsg,
		AgentMessage: agentMsg,
		Outcome:      outcome,
	}, nil
}

func (c *ConversationController) callAgent(ctx context.Context, log *zap.Logger, sessionID, text string) (domain.Message, Outcome) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	env, err := c.agent.Call(callCtx, agent.Request{
		Message: text,
		AgentID: c.agentID,
		Context: agent.RequestContext{SessionID: sessionID},
	})
	if err != nil {
		log.Warn("agent call failed", zap.Error(err))
		return domain.NewAgentMessage(c.newID(), NetworkFailureText, c.now(), nil), OutcomeTransportFailure
	}

	res, ok := env.Result()
	if !ok {
		log.Warn("agent returned unusable response",
			zap.Bool("success", env.Success),
			zap.String("status", env.Response.Status),
			zap.String("error", env.Error),
		)
		return domain.NewAgentMessage(c.newID(), SoftFailureText, c.now(), nil), OutcomeSoftFailure
	}

	content := res.Message
	if content == "" {
		content = FallbackReplyText
	}
	return domain.NewAgentMessage(c.newID(), content, c.now(), res), OutcomeSuccess
}

// commit escribe la secuencia en el store y, si la sesion sigue activa, en la copia visible.
func (c *ConversationController) commit(ctx context.Context, log *zap.Logger, sessionID string, working []domain.Message) {
	// El turno ya ocurrio: se persiste aunque el llamador haya cancelado.
	if err := c.store.AppendMessages(context.WithoutCancel(ctx), sessionID, working); err != nil {
		log.Warn("persist messages failed", zap.Error(err))
	}
	c.mu.Lock()
	if c.activeID == sessionID {
		c.messages = append([]domain.Message(nil), working...)
	}
	c.mu.Unlock()
}
