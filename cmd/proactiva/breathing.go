package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const breathHelp = `s: iniciar/pausar · r: reiniciar`

// box breathing: four phases of four seconds each
const (
	breathInhale = iota
	breathHoldIn
	breathExhale
	breathHoldOut
	breathPhaseCount
)

const breathSeconds = 4

var breathPhases = [breathPhaseCount]struct {
	name        string
	instruction string
}{
	{"Inspire", "inspire profundamente pelo nariz"},
	{"Segure", "segure o ar"},
	{"Expire", "expire lentamente pela boca"},
	{"Segure", "segure novamente"},
}

type breathModel struct {
	active bool
	phase  int
	count  int
	seq    int
}

func newBreathModel() breathModel {
	return breathModel{count: breathSeconds}
}

func breathTick(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return BreathTickMsg{seq: seq}
	})
}

// advanceBreath counts a phase down and wraps into the next one when it
// reaches zero.
func advanceBreath(phase, count int) (int, int) {
	if count <= 1 {
		return (phase + 1) % breathPhaseCount, breathSeconds
	}
	return phase, count - 1
}

func (m breathModel) update(msg tea.Msg) (breathModel, tea.Cmd) {
	switch msg := msg.(type) {
	case BreathTickMsg:
		// a stale tick from before a pause or reset must not fork a
		// second tick loop
		if !m.active || msg.seq != m.seq {
			return m, nil
		}
		m.phase, m.count = advanceBreath(m.phase, m.count)
		return m, breathTick(m.seq)
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			m.active = !m.active
			m.seq++
			if m.active {
				return m, breathTick(m.seq)
			}
			return m, nil
		case "r":
			m.active = false
			m.seq++
			m.phase = breathInhale
			m.count = breathSeconds
			return m, nil
		}
	}
	return m, nil
}

func (m breathModel) view() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Exercício de Respiração"))
	sb.WriteString("\n\n")

	p := breathPhases[m.phase]
	sb.WriteString(fmt.Sprintf("  %s — %d\n", p.name, m.count))
	sb.WriteString(faintStyle.Render("  " + p.instruction))

	if !m.active {
		sb.WriteString("\n\n" + warnStyle.Render("pausado"))
	}
	sb.WriteString("\n\n" + faintStyle.Render(breathHelp))
	return sb.String()
}
