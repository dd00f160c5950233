package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/proactiva/proactiva"
)

const (
	formTitle = iota
	formDescription
	formCategory
	formDueDate
	formFieldCount
)

type taskFormModel struct {
	fields     [formFieldCount]textinput.Model
	priority   proactiva.TaskPriority
	existingID int
	focus      int
	alert      string
}

func newTaskForm(existing proactiva.Task, timeFormat string) taskFormModel {
	f := taskFormModel{
		priority:   proactiva.PriorityMedium,
		existingID: existing.ID,
	}

	f.fields[formTitle] = newField("título", false)
	f.fields[formDescription] = newField("descrição", false)
	f.fields[formCategory] = newField("categoria", false)
	f.fields[formDueDate] = newField("prazo (AAAA-MM-DD)", false)

	if existing.ID != 0 {
		f.fields[formTitle].SetValue(existing.Title)
		f.fields[formDescription].SetValue(existing.Description)
		f.fields[formCategory].SetValue(existing.Category)
		f.fields[formDueDate].SetValue(existing.DueDate)
		f.priority = existing.Priority
	}

	f.fields[formTitle].Focus()
	return f
}

func (f taskFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	f := m.form

	switch msg := msg.(type) {
	case TasksFetchedMsg:
		// a fetch landing behind the form still settles the list, so the
		// page is current the moment the form closes
		m.applyFetched(msg)
		return m, nil
	case TaskSavedMsg:
		m.form = nil
		m.alert = ""
		m.refreshList()
		return m, nil
	case ErrorMsg:
		f.alert = msg.err.Error()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			m.form = nil
			m.refreshList()
			return m, nil
		case tea.KeyLeft:
			f.priority = prevPriority(f.priority)
			return m, nil
		case tea.KeyRight:
			f.priority = nextPriority(f.priority)
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			f.setFocus((f.focus + 1) % formFieldCount)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			f.setFocus((f.focus - 1 + formFieldCount) % formFieldCount)
			return m, nil
		case tea.KeyEnter:
			if f.focus < formFieldCount-1 {
				f.setFocus(f.focus + 1)
				return m, nil
			}
			return m, m.saveCmd(*f)
		}
	}

	var cmds []tea.Cmd
	for i := range f.fields {
		var cmd tea.Cmd
		f.fields[i], cmd = f.fields[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (f *taskFormModel) setFocus(i int) {
	f.focus = i
	for j := range f.fields {
		if j == i {
			f.fields[j].Focus()
		} else {
			f.fields[j].Blur()
		}
	}
}

func (m tasksModel) saveCmd(f taskFormModel) tea.Cmd {
	userID := 0
	if u := m.sessions.Session().User; u != nil {
		userID = u.ID
	}

	input := proactiva.CreateTaskRequest{
		Title:       strings.TrimSpace(f.fields[formTitle].Value()),
		Description: strings.TrimSpace(f.fields[formDescription].Value()),
		Category:    strings.TrimSpace(f.fields[formCategory].Value()),
		Priority:    f.priority,
		UserID:      userID,
		Status:      proactiva.StatusInProgress,
		DueDate:     strings.TrimSpace(f.fields[formDueDate].Value()),
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		saved, err := m.collection.Save(ctx, input, f.existingID)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return TaskSavedMsg{task: saved}
	}
}

func nextPriority(p proactiva.TaskPriority) proactiva.TaskPriority {
	switch p {
	case proactiva.PriorityLow:
		return proactiva.PriorityMedium
	case proactiva.PriorityMedium:
		return proactiva.PriorityHigh
	default:
		return proactiva.PriorityLow
	}
}

func prevPriority(p proactiva.TaskPriority) proactiva.TaskPriority {
	switch p {
	case proactiva.PriorityHigh:
		return proactiva.PriorityMedium
	case proactiva.PriorityMedium:
		return proactiva.PriorityLow
	default:
		return proactiva.PriorityHigh
	}
}

func (f taskFormModel) view() string {
	var sb strings.Builder
	if f.existingID != 0 {
		sb.WriteString(titleStyle.Render("Editar Tarefa"))
	} else {
		sb.WriteString(titleStyle.Render("Nova Tarefa"))
	}
	sb.WriteString("\n\n")

	for _, field := range f.fields {
		sb.WriteString(field.View())
		sb.WriteRune('\n')
	}

	sb.WriteString("\nprioridade: " + priorityLabel(f.priority) + faintStyle.Render("  (←/→ para alterar)"))

	if f.alert != "" {
		sb.WriteString("\n\n" + colorize(colorRed, f.alert))
	}
	sb.WriteString("\n\n" + faintStyle.Render("enter: salvar · esc: cancelar"))
	return sb.String()
}
