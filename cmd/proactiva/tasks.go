package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/proactiva/proactiva"
)

const tasksHelp = `j/k: navegar · n: nova · e: editar · c: concluir · d: excluir · f: só concluídas · r: recarregar`

type tasksModel struct {
	deps

	vp            viewport.Model
	cursor        int
	showCompleted bool
	form          *taskFormModel
	alert         string
	alertColor    string
	loading       bool
	w, h          int
}

func newTasksModel(d deps) tasksModel {
	return tasksModel{
		deps:    d,
		vp:      viewport.New(0, 0),
		loading: true,
	}
}

func (m *tasksModel) resize(w, h int) {
	m.w, m.h = w, h
	m.vp.Width = w
	m.vp.Height = max(h-8, 4)
}

func (m tasksModel) editing() bool {
	return m.form != nil
}

func (m tasksModel) visible() []proactiva.Task {
	if m.showCompleted {
		return m.collection.Completed()
	}
	return m.collection.Tasks()
}

func (m tasksModel) fetchCmd(timeout time.Duration) tea.Cmd {
	userID := 0
	if u := m.sessions.Session().User; u != nil {
		userID = u.ID
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		applied := m.collection.Fetch(ctx, userID)
		return TasksFetchedMsg{
			applied:  applied,
			degraded: m.collection.LoadDegraded(),
		}
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case TasksFetchedMsg:
		m.applyFetched(msg)
		return m, nil
	case TaskSavedMsg:
		m.alert = ""
		m.refreshList()
		return m, nil
	case TaskCompletedMsg:
		m.alert = ""
		m.refreshList()
		return m, nil
	case TaskRemovedMsg:
		m.alert = ""
		if tasks := m.visible(); m.cursor >= len(tasks) && m.cursor > 0 {
			m.cursor--
		}
		m.refreshList()
		return m, nil
	case ErrorMsg:
		m.alert = msg.err.Error()
		m.alertColor = colorRed
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// applyFetched settles a fetch: loading ends no matter what, and an
// applied result replaces the list on screen.
func (m *tasksModel) applyFetched(msg TasksFetchedMsg) {
	m.loading = false
	if !msg.applied {
		// a newer fetch superseded this one; its apply already ran or
		// will run with a fresher generation
		return
	}
	if msg.degraded {
		m.alert = "não foi possível carregar as tarefas; você ainda pode criar novas"
		m.alertColor = colorYellow
	} else {
		m.alert = ""
	}
	m.cursor = 0
	m.refreshList()
}

func (m tasksModel) handleKey(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	tasks := m.visible()

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
		m.refreshList()
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.refreshList()
	case "n":
		f := newTaskForm(proactiva.Task{}, m.conf.TimeFormat)
		m.form = &f
		return m, f.Init()
	case "e":
		if m.cursor < len(tasks) {
			f := newTaskForm(tasks[m.cursor], m.conf.TimeFormat)
			m.form = &f
			return m, f.Init()
		}
	case "c":
		if m.cursor < len(tasks) {
			return m, m.completeCmd(tasks[m.cursor].ID)
		}
	case "d":
		if m.cursor < len(tasks) {
			return m, m.removeCmd(tasks[m.cursor].ID)
		}
	case "f":
		m.showCompleted = !m.showCompleted
		m.cursor = 0
		m.refreshList()
	case "r":
		m.loading = true
		return m, m.fetchCmd(10 * time.Second)
	}
	return m, nil
}

func (m tasksModel) completeCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		completed, err := m.collection.Complete(ctx, id)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return TaskCompletedMsg{task: completed}
	}
}

func (m tasksModel) removeCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.collection.Remove(ctx, id); err != nil {
			return ErrorMsg{err: err}
		}
		return TaskRemovedMsg{id: id}
	}
}

func (m *tasksModel) refreshList() {
	tasks := m.visible()
	if len(tasks) == 0 {
		if m.showCompleted {
			m.vp.SetContent(faintStyle.Render("nenhuma tarefa concluída"))
		} else {
			m.vp.SetContent(faintStyle.Render("nenhuma tarefa encontrada — crie sua primeira tarefa com 'n'"))
		}
		return
	}

	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		lines = append(lines, renderTask(t, i == m.cursor))
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
}

func (m tasksModel) view() string {
	if m.form != nil {
		return m.form.view()
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Gerenciador de Tarefas"))
	all := m.collection.Tasks()
	done := m.collection.Completed()
	sb.WriteString(faintStyle.Render(fmt.Sprintf("  todas: %d · concluídas: %d", len(all), len(done))))
	if m.showCompleted {
		sb.WriteString(warnStyle.Render("  [filtro: concluídas]"))
	}
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(faintStyle.Render("carregando tarefas..."))
	} else {
		sb.WriteString(m.vp.View())
	}

	if m.alert != "" {
		sb.WriteString("\n\n" + colorize(m.alertColor, m.alert))
	}
	sb.WriteString("\n\n" + faintStyle.Render(tasksHelp))
	return sb.String()
}
