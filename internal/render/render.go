package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"roomcraft/internal/domain"
	"roomcraft/internal/service"
)

// Message dibuja un mensaje segun su rol; solo los del agente muestran el Result.
func Message(m domain.Message, agentName string) string {
	switch m.Role {
	case domain.RoleUser:
		return Styles.User.Render("You") + " > " + m.Content
	case domain.RoleAgent:
		line := Styles.Agent.Render(agentName) + " > " + m.Content
		if block := Result(m.Result); block != "" {
			return lipgloss.JoinVertical(lipgloss.Left, line, block)
		}
		return line
	default:
		return m.Content
	}
}

// Result dibuja las secciones presentes; un Result vacio no produce salida.
func Result(r *domain.Result) string {
	if r == nil {
		return ""
	}
	var parts []string
	for _, sec := range r.DesignRecommendations.Sections() {
		parts = append(parts, Styles.Heading.Render(sec.Title))
		for _, item := range sec.Items {
			parts = append(parts, "  • "+item)
		}
	}
	if r.NextSteps != "" {
		parts = append(parts, Styles.Heading.Render("Next Steps"), "  "+r.NextSteps)
	}
	if len(parts) == 0 {
		return ""
	}
	return Styles.ResultBox.Render(strings.Join(parts, "\n"))
}

// SessionList dibuja el listado lateral numerado (base 1), marcando la sesion activa.
// Con query no vacia el estado vacio indica que no hubo coincidencias.
func SessionList(summaries []service.SessionSummary, activeID, query string) string {
	if len(summaries) == 0 {
		if query != "" {
			return Styles.Muted.Render("No matching conversations")
		}
		return Styles.Muted.Render("No conversations yet")
	}
	lines := make([]string, 0, len(summaries))
	for i, s := range summaries {
		marker := " "
		if s.ID == activeID {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("%s[%d] %s %s %s",
			marker, i+1,
			Styles.Label.Render("["+s.RoomType+"]"),
			s.Title,
			Styles.Muted.Render("("+s.Age+") "+s.Preview),
		))
	}
	return strings.Join(lines, "\n")
}

// Warning dibuja un aviso no bloqueante.
func Warning(err error) string {
	if err == nil {
		return ""
	}
	return Styles.Warning.Render("warning: " + err.Error())
}
