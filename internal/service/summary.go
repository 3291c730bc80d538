package service

import (
	"fmt"
	"time"

	"roomcraft/internal/domain"
)

const previewLength = 50

// SessionSummary es la vista de una sesion para el listado lateral.
type SessionSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	RoomType  string    `json:"room_type"`
	Preview   string    `json:"preview"`
	Age       string    `json:"age"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summarize arma el resumen de cada sesion relativo a now.
func Summarize(sessions []domain.Session, now time.Time) []SessionSummary {
	out := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		sum := SessionSummary{
			ID:        s.ID,
			Title:     s.Title,
			RoomType:  s.RoomType,
			Age:       FormatAge(s.UpdatedAt, now),
			UpdatedAt: s.UpdatedAt,
		}
		if last, ok := s.LastMessage(); ok {
			sum.Preview = preview(last.Content)
		}
		out = append(out, sum)
	}
	return out
}

// FormatAge devuelve Today, Yesterday, "N days ago" o la fecha para una semana o mas.
func FormatAge(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Local().Format("2006-01-02")
	}
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes) + "..."
}
