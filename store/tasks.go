package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/proactiva/proactiva"
)

// TaskCollection mirrors one user's tasks from the backend. Newly created
// tasks are prepended; no other operation reorders tasks. Overlapping
// mutations on the same id are not coordinated: the last response to
// resolve wins.
type TaskCollection struct {
	api proactiva.TaskAPI
	l   proactiva.Logger

	mu         sync.Mutex
	tasks      []proactiva.Task
	degraded   bool
	loading    bool
	generation int
}

func NewTaskCollection(api proactiva.TaskAPI, logger proactiva.Logger) *TaskCollection {
	return &TaskCollection{
		api: api,
		l:   logger,
	}
}

// Tasks returns a copy of the collection in display order.
func (c *TaskCollection) Tasks() []proactiva.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tasks)
}

// Completed returns only the tasks the backend has marked done.
func (c *TaskCollection) Completed() []proactiva.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	var done []proactiva.Task
	for _, t := range c.tasks {
		if t.Done() {
			done = append(done, t)
		}
	}
	return done
}

// LoadDegraded reports whether the current contents came from a failed
// fetch rather than a genuinely empty list.
func (c *TaskCollection) LoadDegraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded
}

func (c *TaskCollection) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Fetch replaces the collection with the user's tasks. It never fails:
// backend errors degrade to an empty collection with LoadDegraded set.
// Each call bumps a generation counter; a slow fetch that resolves after
// a newer one has started is dropped, and Fetch reports whether its
// result was applied.
func (c *TaskCollection) Fetch(ctx context.Context, userID int) bool {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.mu.Unlock()

	res := c.api.ListTasks(ctx, userID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.l.Debug("dropping stale fetch result", "generation", gen)
		return false
	}
	c.tasks = res.Tasks
	c.degraded = res.Degraded
	c.loading = false
	if res.Degraded {
		c.l.Warn("task fetch degraded to empty list", "userID", userID)
	}
	return true
}

// Complete marks a task done on the backend and replaces it in the
// collection. An id no longer present locally is a no-op, not an error.
func (c *TaskCollection) Complete(ctx context.Context, taskID int) (proactiva.Task, error) {
	completed, err := c.api.CompleteTask(ctx, taskID)
	if err != nil {
		return proactiva.Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.tasks {
		if t.ID == taskID {
			c.tasks[i] = completed
			break
		}
	}
	return completed, nil
}

// Remove deletes a task on the backend and drops it from the collection.
// A delete blocked by dependent history surfaces the archive hint instead
// of the raw backend error.
func (c *TaskCollection) Remove(ctx context.Context, taskID int) error {
	if err := c.api.DeleteTask(ctx, taskID); err != nil {
		var ce *proactiva.ConstraintError
		if errors.As(err, &ce) {
			return fmt.Errorf("%w. Marque-a como concluída para arquivá-la em vez de excluir", err)
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = slices.DeleteFunc(c.tasks, func(t proactiva.Task) bool {
		return t.ID == taskID
	})
	return nil
}

// Save creates or edits a task. With existingID zero it creates and
// prepends; otherwise it updates and replaces in place, never changing
// the collection's length or order.
func (c *TaskCollection) Save(ctx context.Context, input proactiva.CreateTaskRequest, existingID int) (proactiva.Task, error) {
	if existingID == 0 {
		created, err := c.api.CreateTask(ctx, input)
		if err != nil {
			return proactiva.Task{}, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.tasks = append([]proactiva.Task{created}, c.tasks...)
		return created, nil
	}

	updated, err := c.api.UpdateTask(ctx, existingID, proactiva.UpdateTaskRequest{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return proactiva.Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.tasks {
		if t.ID == updated.ID {
			c.tasks[i] = updated
			break
		}
	}
	return updated, nil
}
