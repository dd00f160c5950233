package main

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/proactiva/proactiva"
	"github.com/proactiva/proactiva/store"
)

func testLogger() proactiva.Logger {
	return log.New(io.Discard)
}

type fakeTaskAPI struct {
	tasks []proactiva.Task
}

func (f *fakeTaskAPI) ListTasks(context.Context, int) proactiva.TaskFetchResult {
	return proactiva.TaskFetchResult{Tasks: f.tasks}
}

func (f *fakeTaskAPI) ListCompletedTasks(context.Context, int) ([]proactiva.Task, error) {
	return nil, nil
}

func (f *fakeTaskAPI) CreateTask(context.Context, proactiva.CreateTaskRequest) (proactiva.Task, error) {
	return proactiva.Task{}, nil
}

func (f *fakeTaskAPI) UpdateTask(context.Context, int, proactiva.UpdateTaskRequest) (proactiva.Task, error) {
	return proactiva.Task{}, nil
}

func (f *fakeTaskAPI) CompleteTask(context.Context, int) (proactiva.Task, error) {
	return proactiva.Task{}, nil
}

func (f *fakeTaskAPI) DeleteTask(context.Context, int) error {
	return nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFetchLandingBehindOpenFormClearsLoading(t *testing.T) {
	api := &fakeTaskAPI{tasks: []proactiva.Task{
		{ID: 1, UserID: 7, Title: "estudar", Status: proactiva.StatusInProgress, Priority: proactiva.PriorityHigh},
	}}
	col := store.NewTaskCollection(api, testLogger())
	m := newTasksModel(deps{conf: proactiva.Config{TimeFormat: "15:04"}, collection: col})
	m.resize(80, 24)

	m, _ = m.update(keyRunes("n"))
	if !m.editing() {
		t.Fatal("expected the form to open")
	}

	if !col.Fetch(context.Background(), 7) {
		t.Fatal("fetch should apply")
	}
	m, _ = m.update(TasksFetchedMsg{applied: true})
	if m.loading {
		t.Error("loading should clear even while the form is open")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.editing() {
		t.Fatal("expected the form to close")
	}
	view := m.view()
	if strings.Contains(view, "carregando") {
		t.Errorf("page stuck on loading:\n%s", view)
	}
	if !strings.Contains(view, "estudar") {
		t.Errorf("fetched task not rendered:\n%s", view)
	}
}
