package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/proactiva/proactiva"
)

const timerHelp = `s: iniciar/pausar · r: reiniciar · +/-: ajustar duração`

type timerModel struct {
	deps

	timer     timer.Model
	minutes   int
	startedAt time.Time
	armed     bool

	sessionsToday int
	totalMinutes  int
	alert         string
}

func newTimerModel(d deps) timerModel {
	return timerModel{
		deps:    d,
		minutes: d.conf.FocusMinutes,
	}
}

// statsCmd loads today's focus history so the counters survive restarts.
func (m timerModel) statsCmd(repo proactiva.FocusSessionRepo, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		sessions, err := repo.GetByStartTime(ctx, midnight, now)
		if err != nil {
			return ErrorMsg{err: err}
		}

		var count, minutes int
		for _, s := range sessions {
			if s.Completed {
				count++
				minutes += s.Minutes
			}
		}
		return FocusStatsMsg{sessionsToday: count, totalMinutes: minutes}
	}
}

func (m timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case FocusStatsMsg:
		m.sessionsToday = msg.sessionsToday
		m.totalMinutes = msg.totalMinutes
		return m, nil
	case FocusRecordedMsg:
		if msg.session.Completed {
			m.sessionsToday++
			m.totalMinutes += msg.session.Minutes
			m.alert = "sessão de foco concluída! hora da pausa"
		}
		return m, nil
	case ErrorMsg:
		m.alert = msg.err.Error()
		return m, nil
	case timer.TimeoutMsg:
		if m.armed && msg.ID == m.timer.ID() {
			m.armed = false
			return m, m.recordCmd(true)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			if !m.armed {
				m.timer = timer.New(time.Duration(m.minutes) * time.Minute)
				m.startedAt = time.Now()
				m.armed = true
				m.alert = ""
				return m, m.timer.Init()
			}
			return m, m.timer.Toggle()
		case "r":
			// an armed run cut short still goes into the history, just
			// not into today's completed counters
			var cmd tea.Cmd
			if m.armed {
				cmd = m.recordCmd(false)
			}
			m.armed = false
			m.timer = timer.Model{}
			m.alert = ""
			return m, cmd
		case "+":
			m.minutes += 5
			return m, nil
		case "-":
			if m.minutes > 5 {
				m.minutes -= 5
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.timer, cmd = m.timer.Update(msg)
	return m, cmd
}

func (m timerModel) recordCmd(completed bool) tea.Cmd {
	session := proactiva.FocusSession{
		StartedAt: m.startedAt,
		EndedAt:   time.Now(),
		Minutes:   m.minutes,
		Completed: completed,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		recorded, err := m.focusRepo.InsertSession(ctx, session)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return FocusRecordedMsg{session: recorded}
	}
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (m timerModel) view() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Timer de Foco"))
	sb.WriteString("\n\n")

	if m.armed {
		sb.WriteString(fmt.Sprintf("  %s", formatCountdown(m.timer.Timeout)))
		if !m.timer.Running() {
			sb.WriteString(warnStyle.Render("  [pausado]"))
		}
	} else {
		sb.WriteString(fmt.Sprintf("  %s", formatCountdown(time.Duration(m.minutes)*time.Minute)))
		sb.WriteString(faintStyle.Render("  pronto para começar"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(faintStyle.Render(fmt.Sprintf("duração: %dm · sessões hoje: %d · total focado: %dm",
		m.minutes, m.sessionsToday, m.totalMinutes)))

	if m.alert != "" {
		sb.WriteString("\n\n" + colorize(colorGreen, m.alert))
	}
	sb.WriteString("\n\n" + faintStyle.Render(timerHelp))
	return sb.String()
}
