package domain

import "time"

const (
	DefaultSessionTitle = "New Design"
	DefaultRoomType     = "General"
	WelcomeMessage      = "Welcome to RoomCraft! I'm your personal interior design consultant. Tell me about the room you'd like to design - its dimensions, current state, your style preferences, and budget."
)

// Session es un hilo de conversacion persistido con su propia categoria de ambiente.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	RoomType  string    `json:"room_type"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone copia la sesion sin compartir el slice de mensajes.
func (s Session) Clone() Session {
	out := s
	out.Messages = append([]Message(nil), s.Messages...)
	return out
}

// LastMessage devuelve el ultimo mensaje, si existe.
func (s Session) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// HasUserMessage indica si algun mensaje fue escrito por el usuario.
func HasUserMessage(messages []Message) bool {
	for _, m := range messages {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}
