package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/proactiva/proactiva"
)

const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorReset  = "\033[0m"
)

var (
	faintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true)
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	cursorMark = lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Render("> ")
)

func colorize(color string, s string) string {
	return color + s + colorReset
}

func priorityLabel(p proactiva.TaskPriority) string {
	switch p {
	case proactiva.PriorityHigh:
		return colorize(colorRed, "ALTA")
	case proactiva.PriorityMedium:
		return colorize(colorYellow, "MEDIA")
	default:
		return faintStyle.Render("BAIXA")
	}
}

func renderTask(t proactiva.Task, selected bool) string {
	marker := "[ ]"
	title := t.Title
	if t.Done() {
		marker = "[x]"
		title = doneStyle.Render(title)
	}

	line := fmt.Sprintf("%s %s %s", marker, priorityLabel(t.Priority), title)
	if t.DueDate != "" {
		line += faintStyle.Render(" até " + t.DueDate)
	}
	if t.Done() && t.CompletedAt != "" {
		line += faintStyle.Render(" concluída em " + t.CompletedAt)
	}
	if selected {
		return cursorMark + line
	}
	return "  " + line
}
