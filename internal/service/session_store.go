package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"roomcraft/internal/domain"
	"roomcraft/internal/repository"
)

var (
	ErrSessionStoreNotConfigured = errors.New("session store not configured")
	ErrSessionNotFound           = errors.New("session not found")
	ErrInvalidTitle              = errors.New("session invalid title")
	ErrInvalidMessages           = errors.New("session invalid messages")
)

// SessionStore es el unico dueño de la coleccion de sesiones y el unico escritor del snapshot.
// Cada mutacion reserializa la coleccion completa. Si la escritura falla el store sigue en
// memoria y expone el aviso via Warning.
type SessionStore struct {
	mu       sync.Mutex
	repo     repository.SnapshotRepository
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
	sessions []domain.Session

	// persistDisabled se activa cuando la lectura inicial falla, para no pisar datos que no pudimos leer.
	persistDisabled bool
	warning         error
}

func NewSessionStore(repo repository.SnapshotRepository, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  newTimeOrderedID,
	}
}

// Load lee la coleccion persistida. La ausencia de la clave es un estado vacio valido.
func (s *SessionStore) Load(ctx context.Context) error {
	if s == nil || s.repo == nil {
		return ErrSessionStoreNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.repo.Load(ctx)
	if errors.Is(err, repository.ErrSnapshotNotFound) {
		s.sessions = nil
		return nil
	}
	if err != nil {
		s.degradeLocked(fmt.Errorf("load sessions: %w", err), true)
		s.sessions = nil
		return nil
	}

	sessions, err := decodeSessions(data)
	if err != nil {
		s.degradeLocked(fmt.Errorf("decode sessions: %w", err), true)
		s.sessions = nil
		return nil
	}
	s.sessions = sessions
	s.logger.Info("sessions loaded", zap.Int("count", len(sessions)))
	return nil
}

// Create agrega una sesion nueva al frente con el mensaje de bienvenida del agente.
func (s *SessionStore) Create(ctx context.Context, roomType string) (domain.Session, error) {
	if s == nil || s.repo == nil {
		return domain.Session{}, ErrSessionStoreNotConfigured
	}
	roomType = strings.TrimSpace(roomType)
	if roomType == "" {
		roomType = domain.DefaultRoomType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session := domain.Session{
		ID:       s.newID(),
		Title:    domain.DefaultSessionTitle,
		RoomType: roomType,
		Messages: []domain.Message{
			domain.NewAgentMessage(s.newID(), domain.WelcomeMessage, now, nil),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions = append([]domain.Session{session}, s.sessions...)
	s.persistLocked(ctx)

	s.logger.Info("session created", zap.String("session_id", session.ID))
	return session.Clone(), nil
}

// Delete elimina la sesion. Un id inexistente no es error; devuelve false.
func (s *SessionStore) Delete(ctx context.Context, id string) bool {
	if s == nil || s.repo == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.sessions = append(s.sessions[:idx:idx], s.sessions[idx+1:]...)
	s.persistLocked(ctx)

	s.logger.Info("session deleted", zap.String("session_id", id))
	return true
}

// Rename cambia el titulo si el titulo recortado no esta vacio.
func (s *SessionStore) Rename(ctx context.Context, id, title string) error {
	if s == nil || s.repo == nil {
		return ErrSessionStoreNotConfigured
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrInvalidTitle
	}
	return s.mutate(ctx, id, func(sess *domain.Session) error {
		sess.Title = title
		return nil
	})
}

// UpdateRoomType fija la categoria; con retitle el titulo pasa a "{room} Design".
func (s *SessionStore) UpdateRoomType(ctx context.Context, id, roomType string, retitle bool) error {
	if s == nil || s.repo == nil {
		return ErrSessionStoreNotConfigured
	}
	roomType = strings.TrimSpace(roomType)
	if roomType == "" {
		roomType = domain.DefaultRoomType
	}
	return s.mutate(ctx, id, func(sess *domain.Session) error {
		sess.RoomType = roomType
		if retitle {
			sess.Title = domain.DesignTitle(roomType)
		}
		return nil
	})
}

// AppendMessages reemplaza la secuencia de mensajes por la recibida; el controlador
// siempre pasa la secuencia completa actualizada.
func (s *SessionStore) AppendMessages(ctx context.Context, id string, messages []domain.Message) error {
	if s == nil || s.repo == nil {
		return ErrSessionStoreNotConfigured
	}
	if len(messages) == 0 {
		return ErrInvalidMessages
	}
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidMessages, err)
		}
	}
	copied := append([]domain.Message(nil), messages...)
	return s.mutate(ctx, id, func(sess *domain.Session) error {
		sess.Messages = copied
		return nil
	})
}

// Get devuelve una copia de la sesion.
func (s *SessionStore) Get(id string) (domain.Session, error) {
	if s == nil {
		return domain.Session{}, ErrSessionStoreNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Session{}, ErrSessionNotFound
	}
	return s.sessions[idx].Clone(), nil
}

// List devuelve todas las sesiones en el orden almacenado (mas reciente creada primero).
func (s *SessionStore) List() []domain.Session {
	return s.Search("")
}

// Search filtra por titulo o categoria, sin distinguir mayusculas. La consulta no se recorta:
// solo "" devuelve todo. No reordena.
func (s *SessionStore) Search(query string) []domain.Session {
	if s == nil {
		return []domain.Session{}
	}
	q := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if q == "" ||
			strings.Contains(strings.ToLower(sess.Title), q) ||
			strings.Contains(strings.ToLower(sess.RoomType), q) {
			out = append(out, sess.Clone())
		}
	}
	return out
}

// Degraded indica si la ultima escritura (o la carga) fallo y el estado vive solo en memoria.
func (s *SessionStore) Degraded() bool {
	return s.Warning() != nil
}

// Warning devuelve el ultimo fallo de persistencia, o nil.
func (s *SessionStore) Warning() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

func (s *SessionStore) mutate(ctx context.Context, id string, fn func(*domain.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrSessionNotFound
	}
	sess := s.sessions[idx]
	if err := fn(&sess); err != nil {
		return err
	}
	sess.UpdatedAt = s.now()
	s.sessions[idx] = sess
	s.persistLocked(ctx)
	return nil
}

func (s *SessionStore) indexLocked(id string) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked nunca propaga el error: el store sigue operando en memoria.
func (s *SessionStore) persistLocked(ctx context.Context) {
	if s.persistDisabled {
		return
	}
	data, err := encodeSessions(s.sessions)
	if err != nil {
		s.degradeLocked(fmt.Errorf("encode sessions: %w", err), false)
		return
	}
	if err := s.repo.Save(ctx, data); err != nil {
		s.degradeLocked(fmt.Errorf("save sessions: %w", err), false)
		return
	}
	if s.warning != nil {
		s.logger.Info("session persistence recovered")
	}
	s.warning = nil
}

func (s *SessionStore) degradeLocked(err error, disable bool) {
	s.warning = err
	if disable {
		s.persistDisabled = true
	}
	s.logger.Warn("session persistence failed, continuing in memory",
		zap.Error(err),
		zap.Bool("writes_disabled", s.persistDisabled),
	)
}

func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
