package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/proactiva/proactiva"
)

func TestListTasks(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/user/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`[{"id":1,"userId":7,"title":"estudar","status":"EM_ANDAMENTO","priority":"ALTA"}]`))
	}), "tok")

	res := c.ListTasks(context.Background(), 7)
	if res.Degraded {
		t.Fatal("unexpected degraded result")
	}
	if len(res.Tasks) != 1 || res.Tasks[0].Title != "estudar" {
		t.Errorf("tasks = %+v", res.Tasks)
	}
}

func TestListTasksDegradesOnServerError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), "tok")

	res := c.ListTasks(context.Background(), 7)
	if !res.Degraded {
		t.Error("expected degraded result")
	}
	if len(res.Tasks) != 0 {
		t.Errorf("tasks = %+v", res.Tasks)
	}
}

func TestListTasksDegradesOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, staticToken("tok"), testLogger())

	res := c.ListTasks(context.Background(), 7)
	if !res.Degraded || len(res.Tasks) != 0 {
		t.Errorf("expected degraded empty result, got %+v", res)
	}
}

func TestListTasksDegradesOnMalformedJSON(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}), "tok")

	if res := c.ListTasks(context.Background(), 7); !res.Degraded {
		t.Error("expected degraded result")
	}
}

func TestListTasksWithoutTokenDegrades(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}), "")

	if res := c.ListTasks(context.Background(), 7); !res.Degraded {
		t.Error("expected degraded result")
	}
	if calls.Load() != 0 {
		t.Error("request made without a token")
	}
}

func TestListCompletedTasks(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/user/7/status/CONCLUIDO" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":3,"userId":7,"title":"ler","status":"CONCLUIDO","priority":"BAIXA","completedAt":"2026-08-20"}]`))
	}), "tok")

	tasks, err := c.ListCompletedTasks(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListCompletedTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != proactiva.StatusDone {
		t.Errorf("tasks = %+v", tasks)
	}
}

// Unlike ListTasks, the completed-only endpoint propagates failures
// instead of degrading to an empty list.
func TestListCompletedTasksPropagatesServerError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), "tok")

	_, err := c.ListCompletedTasks(context.Background(), 7)
	var reqErr *proactiva.RequestError
	if !errors.As(err, &reqErr) || reqErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected a 500 RequestError, got %v", err)
	}
}

func TestListCompletedTasksWithoutToken(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}), "")

	if _, err := c.ListCompletedTasks(context.Background(), 7); !errors.Is(err, proactiva.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if calls.Load() != 0 {
		t.Error("request made without a token")
	}
}

func validCreate() proactiva.CreateTaskRequest {
	return proactiva.CreateTaskRequest{
		Title:       "estudar Go",
		Description: "capítulo 3",
		Category:    "estudo",
		Priority:    proactiva.PriorityHigh,
		UserID:      7,
		Status:      proactiva.StatusInProgress,
		DueDate:     "2026-09-01",
	}
}

func TestCreateTask(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/tasks" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":42,"userId":7,"title":"estudar Go","status":"EM_ANDAMENTO"}`))
	}), "tok")

	created, err := c.CreateTask(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("id = %d", created.ID)
	}
}

func TestCreateTaskValidatesBeforeRequest(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}), "tok")

	req := validCreate()
	req.Priority = ""
	_, err := c.CreateTask(context.Background(), req)

	var verr *proactiva.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Missing) != 1 || verr.Missing[0] != "priority" {
		t.Errorf("missing = %v", verr.Missing)
	}
	if calls.Load() != 0 {
		t.Error("request made despite validation failure")
	}
}

func TestCreateTaskSurfacesBackend400Message(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"dueDate no passado"}`))
	}), "tok")

	_, err := c.CreateTask(context.Background(), validCreate())
	var rerr *proactiva.RequestError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if rerr.Message != "dueDate no passado" {
		t.Errorf("message = %q", rerr.Message)
	}
}

func TestCreateTaskWithoutToken(t *testing.T) {
	c := testClient(t, http.NotFoundHandler(), "")
	_, err := c.CreateTask(context.Background(), validCreate())
	if !errors.Is(err, proactiva.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUpdateTask(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" || r.URL.Path != "/api/tasks/42" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":42,"title":"novo título"}`))
	}), "tok")

	updated, err := c.UpdateTask(context.Background(), 42, proactiva.UpdateTaskRequest{Title: "novo título"})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "novo título" {
		t.Errorf("title = %q", updated.Title)
	}
}

func TestCompleteTask(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PATCH" || r.URL.Path != "/api/tasks/42/complete" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":42,"status":"CONCLUIDO","completedAt":"2026-08-29"}`))
	}), "tok")

	done, err := c.CompleteTask(context.Background(), 42)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !done.Done() || done.CompletedAt == "" {
		t.Errorf("completed task = %+v", done)
	}
}

func TestDeleteTask(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		wantConstraint bool
		wantErr        bool
	}{
		{"success", http.StatusOK, `{"deleted":true}`, false, false},
		{"oracle constraint code", http.StatusConflict, `ORA-02292: integrity constraint violated`, true, true},
		{"constraint keyword", http.StatusConflict, `violates foreign key constraint`, true, true},
		{"portuguese integrity message", http.StatusConflict, `restrição de integridade`, true, true},
		{"plain failure", http.StatusNotFound, `no such task`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != "DELETE" || r.URL.Path != "/api/tasks/42" {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}), "tok")

			err := c.DeleteTask(context.Background(), 42)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("DeleteTask: %v", err)
				}
				return
			}

			var cerr *proactiva.ConstraintError
			if got := errors.As(err, &cerr); got != tt.wantConstraint {
				t.Errorf("ConstraintError = %v, want %v (err: %v)", got, tt.wantConstraint, err)
			}
			if !tt.wantConstraint {
				var rerr *proactiva.RequestError
				if !errors.As(err, &rerr) {
					t.Errorf("expected RequestError, got %v", err)
				}
			}
		})
	}
}
