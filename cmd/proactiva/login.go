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
	loginEmail = iota
	loginPassword
	loginFieldCount
)

const (
	regName = iota
	regEmail
	regPassword
	regConfirm
	regFieldCount
)

type loginModel struct {
	deps

	loginFields [loginFieldCount]textinput.Model
	regFields   [regFieldCount]textinput.Model
	focus       int
	alert       string
	busy        bool
}

func newLoginModel(d deps) loginModel {
	m := loginModel{deps: d}

	m.loginFields[loginEmail] = newField("email", false)
	m.loginFields[loginPassword] = newField("senha", true)

	m.regFields[regName] = newField("nome completo", false)
	m.regFields[regEmail] = newField("email", false)
	m.regFields[regPassword] = newField("senha", true)
	m.regFields[regConfirm] = newField("confirmar senha", true)

	m.loginFields[loginEmail].Focus()
	return m
}

func newField(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	if secret {
		ti.EchoMode = textinput.EchoPassword
	}
	return ti
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) fields(p page) []*textinput.Model {
	if p == pageRegister {
		out := make([]*textinput.Model, regFieldCount)
		for i := range m.regFields {
			out[i] = &m.regFields[i]
		}
		return out
	}
	out := make([]*textinput.Model, loginFieldCount)
	for i := range m.loginFields {
		out[i] = &m.loginFields[i]
	}
	return out
}

func (m loginModel) update(msg tea.Msg, p *page) (loginModel, tea.Cmd) {
	fields := m.fields(*p)

	switch msg := msg.(type) {
	case ErrorMsg:
		m.busy = false
		m.alert = msg.err.Error()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlR:
			if *p == pageLogin {
				*p = pageRegister
			} else {
				*p = pageLogin
			}
			m.alert = ""
			m.focus = 0
			m.setFocus(*p)
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			m.focus = (m.focus + 1) % len(fields)
			m.setFocus(*p)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.focus = (m.focus - 1 + len(fields)) % len(fields)
			m.setFocus(*p)
			return m, nil
		case tea.KeyEnter:
			if m.focus < len(fields)-1 {
				m.focus++
				m.setFocus(*p)
				return m, nil
			}
			if m.busy {
				return m, nil
			}
			return m.submit(*p)
		}
	}

	var cmds []tea.Cmd
	for i := range fields {
		var cmd tea.Cmd
		*fields[i], cmd = fields[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *loginModel) setFocus(p page) {
	for i, f := range m.fields(p) {
		if i == m.focus {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

func (m loginModel) submit(p page) (loginModel, tea.Cmd) {
	if p == pageRegister {
		name := strings.TrimSpace(m.regFields[regName].Value())
		email := strings.TrimSpace(m.regFields[regEmail].Value())
		password := m.regFields[regPassword].Value()
		confirm := m.regFields[regConfirm].Value()

		if name == "" || email == "" || password == "" {
			m.alert = "preencha todos os campos"
			return m, nil
		}
		if password != confirm {
			m.alert = "as senhas não coincidem"
			return m, nil
		}

		m.busy = true
		m.alert = ""
		return m, func() tea.Msg {
			timeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := m.sessions.Register(timeout, proactiva.RegisterRequest{
				FullName: name,
				Email:    email,
				Password: password,
			}); err != nil {
				return ErrorMsg{err: err}
			}
			return AuthenticatedMsg{user: *m.sessions.Session().User}
		}
	}

	email := strings.TrimSpace(m.loginFields[loginEmail].Value())
	password := m.loginFields[loginPassword].Value()
	if email == "" || password == "" {
		m.alert = "preencha email e senha"
		return m, nil
	}

	m.busy = true
	m.alert = ""
	return m, func() tea.Msg {
		timeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.sessions.Login(timeout, proactiva.LoginRequest{
			Email:    email,
			Password: password,
		}); err != nil {
			return ErrorMsg{err: err}
		}
		return AuthenticatedMsg{user: *m.sessions.Session().User}
	}
}

func (m loginModel) view(p page) string {
	var sb strings.Builder
	if p == pageRegister {
		sb.WriteString(titleStyle.Render("Criar conta"))
	} else {
		sb.WriteString(titleStyle.Render("Entrar"))
	}
	sb.WriteString("\n\n")

	for _, f := range m.fields(p) {
		sb.WriteString(f.View())
		sb.WriteRune('\n')
	}

	if m.busy {
		sb.WriteString("\n" + faintStyle.Render("aguarde..."))
	}
	if m.alert != "" {
		sb.WriteString("\n" + colorize(colorRed, m.alert))
	}

	sb.WriteString("\n\n" + faintStyle.Render("enter: enviar · ctrl+r: alternar entrar/criar conta · ctrl+c: encerrar"))
	return sb.String()
}
