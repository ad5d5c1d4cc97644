package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/plannerhub/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	privateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	publicStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// renderPlanner styles the planner's deterministic String rendering for
// terminal display: the header line gets the title style, the rest is
// passed through unchanged.
func renderPlanner(p *models.Planner) string {
	lines := strings.SplitN(p.String(), "\n", 2)
	header := titleStyle.Render(lines[0])
	badge := privateStyle.Render(string(p.Privacy))
	if p.Privacy == models.PrivacyPublic {
		badge = publicStyle.Render(string(p.Privacy))
	}
	out := header + " " + badge
	if len(lines) > 1 {
		out += "\n" + lines[1]
	}
	return out
}

// renderPlannerLine is the one-line listing form: the styled header
// plus the number of filled entries.
func renderPlannerLine(p *models.Planner) string {
	header := titleStyle.Render(fmt.Sprintf("%s planner #%s: %s", p.Type, p.ID, p.Name))
	badge := privateStyle.Render(string(p.Privacy))
	if p.Privacy == models.PrivacyPublic {
		badge = publicStyle.Render(string(p.Privacy))
	}
	return fmt.Sprintf("%s %s  %d entries", header, badge, p.NumAgendas())
}

func renderTemplate(t *models.Template) string {
	lines := strings.SplitN(t.String(), "\n", 2)
	out := titleStyle.Render(lines[0])
	if len(lines) > 1 {
		out += "\n" + lines[1]
	}
	return out
}
