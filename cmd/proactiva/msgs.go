package main

import (
	"github.com/proactiva/proactiva"
)

type AuthenticatedMsg struct {
	user proactiva.User
}

type LoggedOutMsg struct{}

type TasksFetchedMsg struct {
	applied  bool
	degraded bool
}

type TaskSavedMsg struct {
	task proactiva.Task
}

type TaskCompletedMsg struct {
	task proactiva.Task
}

type TaskRemovedMsg struct {
	id int
}

type FocusRecordedMsg struct {
	session proactiva.FocusSession
}

type FocusStatsMsg struct {
	sessionsToday int
	totalMinutes  int
}

type BreathTickMsg struct {
	seq int
}

type ErrorMsg struct {
	err error
}
