package domain

import (
	"errors"
	"time"
)

// Role identifica al autor de un mensaje.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

var (
	ErrInvalidRole          = errors.New("message invalid role")
	ErrUserMessageHasResult = errors.New("user message cannot carry a result")
)

// Message es un turno de la conversacion. Es inmutable una vez creado.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Result    *Result   `json:"result,omitempty"`
}

// NewUserMessage construye un mensaje del usuario; nunca lleva Result.
func NewUserMessage(id, content string, at time.Time) Message {
	return Message{
		ID:        id,
		Role:      RoleUser,
		Content:   content,
		Timestamp: at,
	}
}

// NewAgentMessage construye un mensaje del agente con un Result opcional.
func NewAgentMessage(id, content string, at time.Time, result *Result) Message {
	return Message{
		ID:        id,
		Role:      RoleAgent,
		Content:   content,
		Timestamp: at,
		Result:    result,
	}
}

// Validate verifica el invariante de rol: solo el agente adjunta resultados.
func (m Message) Validate() error {
	switch m.Role {
	case RoleUser:
		if m.Result != nil {
			return ErrUserMessageHasResult
		}
	case RoleAgent:
	default:
		return ErrInvalidRole
	}
	return nil
}

// Result es el payload estructurado que devuelve el agente. Todos los campos son opcionales.
type Result struct {
	Message               string           `json:"message,omitempty"`
	DesignRecommendations *Recommendations `json:"design_recommendations,omitempty"`
	NextSteps             string           `json:"next_steps,omitempty"`
}

// Recommendations agrupa cinco listas independientes de etiquetas cortas.
type Recommendations struct {
	ColorPalette         []string `json:"color_palette,omitempty"`
	FurnitureSuggestions []string `json:"furniture_suggestions,omitempty"`
	LayoutTips           []string `json:"layout_tips,omitempty"`
	DecorItems           []string `json:"decor_items,omitempty"`
	KeyPrinciples        []string `json:"key_principles,omitempty"`
}

// RecommendationSection es una lista presente con su titulo de display.
type RecommendationSection struct {
	Title string
	Items []string
}

// Sections devuelve las secciones no vacias en orden de display.
func (r *Recommendations) Sections() []RecommendationSection {
	if r == nil {
		return nil
	}
	all := []RecommendationSection{
		{Title: "Color Palette", Items: r.ColorPalette},
		{Title: "Furniture Suggestions", Items: r.FurnitureSuggestions},
		{Title: "Layout Tips", Items: r.LayoutTips},
		{Title: "Decor Items", Items: r.DecorItems},
		{Title: "Key Principles", Items: r.KeyPrinciples},
	}
	out := make([]RecommendationSection, 0, len(all))
	for _, sec := range all {
		if len(sec.Items) > 0 {
			out = append(out, sec)
		}
	}
	return out
}

// IsEmpty indica si ninguna lista tiene elementos.
func (r *Recommendations) IsEmpty() bool {
	return len(r.Sections()) == 0
}
