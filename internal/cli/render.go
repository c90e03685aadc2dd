package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"})
)

func (a *App) header(format string, args ...any) {
	fmt.Fprintln(a.out, headerStyle.Render(fmt.Sprintf(format, args...)))
}

func (a *App) line(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *App) warn(format string, args ...any) {
	fmt.Fprintln(a.out, errorStyle.Render(fmt.Sprintf(format, args...)))
}

func (a *App) accent(format string, args ...any) {
	fmt.Fprintln(a.out, accentStyle.Render(fmt.Sprintf(format, args...)))
}
