package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/proactiva/proactiva"
	"github.com/proactiva/proactiva/store"
)

const logo = `
	██████╗ ██████╗  ██████╗  █████╗  ██████╗████████╗██╗██╗   ██╗ █████╗
	██╔══██╗██╔══██╗██╔═══██╗██╔══██╗██╔════╝╚══██╔══╝██║██║   ██║██╔══██╗
	██████╔╝██████╔╝██║   ██║███████║██║        ██║   ██║██║   ██║███████║
	██╔═══╝ ██╔══██╗██║   ██║██╔══██║██║        ██║   ██║╚██╗ ██╔╝██╔══██║
	██║     ██║  ██║╚██████╔╝██║  ██║╚██████╗   ██║   ██║ ╚████╔╝ ██║  ██║`

const keyHelp = `tab: alternar páginas (tarefas, timer, respiração) · ctrl+l: sair da conta · ctrl+c: encerrar`

// page identifies a view. Pages above pageLogin require authentication.
type page int

const (
	pageLogin page = iota
	pageRegister
	pageTasks
	pageTimer
	pageBreathing
)

func (p page) private() bool {
	return p >= pageTasks
}

// guard is the route guard: a pure function of session state. Private
// pages render only for an authenticated session; everything else lands
// on the login page.
func guard(p page, authenticated bool) page {
	if p.private() && !authenticated {
		return pageLogin
	}
	return p
}

type deps struct {
	l          proactiva.Logger
	conf       proactiva.Config
	sessions   *store.SessionStore
	collection *store.TaskCollection
	focusRepo  proactiva.FocusSessionRepo
}

type rootModel struct {
	deps

	page   page
	login  loginModel
	tasks  tasksModel
	timer  timerModel
	breath breathModel

	cmdTimeout time.Duration
	w, h       int
}

func newRootModel(d deps) rootModel {
	start := pageLogin
	if d.sessions.Authenticated() {
		start = pageTasks
	}
	return rootModel{
		deps:       d,
		page:       start,
		login:      newLoginModel(d),
		tasks:      newTasksModel(d),
		timer:      newTimerModel(d),
		breath:     newBreathModel(),
		cmdTimeout: 10 * time.Second,
	}
}

func (m rootModel) Init() tea.Cmd {
	if m.page == pageTasks {
		return tea.Batch(m.login.Init(), m.tasks.fetchCmd(m.cmdTimeout), m.timer.statsCmd(m.focusRepo, m.cmdTimeout))
	}
	return m.login.Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.tasks.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlL:
			if m.sessions.Authenticated() {
				return m, m.logoutCmd()
			}
		case tea.KeyTab:
			if m.page.private() && !m.tasks.editing() {
				m.page = m.nextPage()
				return m, nil
			}
		}
	case AuthenticatedMsg:
		m.l.Info("authenticated", "userID", msg.user.ID)
		m.page = pageTasks
		m.login = newLoginModel(m.deps)
		return m, tea.Batch(m.tasks.fetchCmd(m.cmdTimeout), m.timer.statsCmd(m.focusRepo, m.cmdTimeout))
	case LoggedOutMsg:
		m.page = pageLogin
		m.tasks = newTasksModel(m.deps)
		m.tasks.resize(m.w, m.h)
		m.timer = newTimerModel(m.deps)
		m.breath = newBreathModel()
		return m, nil
	}

	// the guard runs on every message: a session cleared mid-flight must
	// not leave a private page on screen
	m.page = guard(m.page, m.sessions.Authenticated())

	var cmd tea.Cmd
	switch msg.(type) {
	// results and ticks go to their owner no matter which page is on
	// screen, so a fetch or a running countdown survives page switches
	case TasksFetchedMsg, TaskSavedMsg, TaskCompletedMsg, TaskRemovedMsg:
		m.tasks, cmd = m.tasks.update(msg)
	case FocusStatsMsg, FocusRecordedMsg, timer.TickMsg, timer.StartStopMsg, timer.TimeoutMsg:
		m.timer, cmd = m.timer.update(msg)
	case BreathTickMsg:
		m.breath, cmd = m.breath.update(msg)
	default:
		switch m.page {
		case pageLogin, pageRegister:
			m.login, cmd = m.login.update(msg, &m.page)
		case pageTasks:
			m.tasks, cmd = m.tasks.update(msg)
		case pageTimer:
			m.timer, cmd = m.timer.update(msg)
		case pageBreathing:
			m.breath, cmd = m.breath.update(msg)
		}
	}
	return m, cmd
}

func (m rootModel) nextPage() page {
	switch m.page {
	case pageTasks:
		return pageTimer
	case pageTimer:
		return pageBreathing
	default:
		return pageTasks
	}
}

func (m rootModel) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		timeout, cancel := context.WithTimeout(context.Background(), m.cmdTimeout)
		defer cancel()
		m.sessions.Logout(timeout)
		return LoggedOutMsg{}
	}
}

func (m rootModel) View() string {
	var body string
	switch m.page {
	case pageLogin, pageRegister:
		body = m.login.view(m.page)
	case pageTasks:
		body = m.tasks.view()
	case pageTimer:
		body = m.timer.view()
	case pageBreathing:
		body = m.breath.view()
	}

	footer := ""
	if m.page.private() {
		footer = "\n" + faintStyle.Render(keyHelp)
	}
	return lipgloss.JoinVertical(0, body, footer)
}
