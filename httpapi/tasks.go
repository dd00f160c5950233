package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/proactiva/proactiva"
)

// ListTasks never fails: the backend being down should not make the task
// page unusable, so every failure degrades to an empty result with the
// Degraded flag set.
func (c *Client) ListTasks(ctx context.Context, userID int) proactiva.TaskFetchResult {
	resp, err := c.do(ctx, "GET", fmt.Sprintf("/api/tasks/user/%d", userID), nil, true)
	if err != nil {
		c.l.Warn("task list unavailable", "userID", userID, "error", err)
		return proactiva.TaskFetchResult{Degraded: true}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.l.Warn("task list unavailable", "userID", userID, "status", resp.StatusCode)
		return proactiva.TaskFetchResult{Degraded: true}
	}

	var tasks []proactiva.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		c.l.Warn("malformed task list response", "userID", userID, "error", err)
		return proactiva.TaskFetchResult{Degraded: true}
	}
	return proactiva.TaskFetchResult{Tasks: tasks}
}

func (c *Client) ListCompletedTasks(ctx context.Context, userID int) ([]proactiva.Task, error) {
	resp, err := c.do(ctx, "GET", fmt.Sprintf("/api/tasks/user/%d/status/%s", userID, proactiva.StatusDone), nil, true)
	if err != nil {
		return nil, err
	}

	var tasks []proactiva.Task
	if err := decode(resp, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, req proactiva.CreateTaskRequest) (proactiva.Task, error) {
	if err := validateCreate(req); err != nil {
		return proactiva.Task{}, err
	}

	resp, err := c.do(ctx, "POST", "/api/tasks", req, true)
	if err != nil {
		return proactiva.Task{}, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusBadRequest {
		return proactiva.Task{}, badRequestError(resp)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return proactiva.Task{}, &proactiva.RequestError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	var created proactiva.Task
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return proactiva.Task{}, fmt.Errorf("decoding created task: %w", err)
	}
	return created, nil
}

func validateCreate(req proactiva.CreateTaskRequest) error {
	var missing []string
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.Category == "" {
		missing = append(missing, "category")
	}
	if req.Priority == "" {
		missing = append(missing, "priority")
	}
	if req.UserID == 0 {
		missing = append(missing, "userId")
	}
	if req.Status == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return &proactiva.ValidationError{Missing: missing}
	}
	return nil
}

// badRequestError surfaces the backend's own message from a 400 body when
// it parses as JSON, falling back to the raw body text.
func badRequestError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		if msg != "" {
			return &proactiva.RequestError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Message:    msg,
			}
		}
	}

	return &proactiva.RequestError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    strings.TrimSpace(string(raw)),
	}
}

func (c *Client) UpdateTask(ctx context.Context, id int, fields proactiva.UpdateTaskRequest) (proactiva.Task, error) {
	resp, err := c.do(ctx, "PUT", fmt.Sprintf("/api/tasks/%d", id), fields, true)
	if err != nil {
		return proactiva.Task{}, err
	}

	var updated proactiva.Task
	if err := decode(resp, &updated); err != nil {
		return proactiva.Task{}, err
	}
	return updated, nil
}

func (c *Client) CompleteTask(ctx context.Context, id int) (proactiva.Task, error) {
	resp, err := c.do(ctx, "PATCH", fmt.Sprintf("/api/tasks/%d/complete", id), nil, true)
	if err != nil {
		return proactiva.Task{}, err
	}

	var completed proactiva.Task
	if err := decode(resp, &completed); err != nil {
		return proactiva.Task{}, err
	}
	return completed, nil
}

// constraint violation markers the backend is known to emit when a task
// has dependent history rows
var constraintMarkers = []string{"restrição de integridade", "constraint", "ORA-02292"}

func (c *Client) DeleteTask(ctx context.Context, id int) error {
	resp, err := c.do(ctx, "DELETE", fmt.Sprintf("/api/tasks/%d", id), nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		body := string(raw)
		for _, marker := range constraintMarkers {
			if strings.Contains(body, marker) {
				c.l.Info("delete blocked by dependent history", "taskID", id)
				return &proactiva.ConstraintError{Detail: body}
			}
		}
		return &proactiva.RequestError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	// success body is discarded; only the status matters to callers
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
