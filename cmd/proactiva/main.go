package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/proactiva/proactiva"
	"github.com/proactiva/proactiva/charmlog"
	"github.com/proactiva/proactiva/httpapi"
	"github.com/proactiva/proactiva/sqlite"
	"github.com/proactiva/proactiva/store"
)

var logger proactiva.Logger

func main() {
	// conf
	conf := proactiva.LoadConfig()
	f, err := os.OpenFile(conf.LogPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o666)
	if err != nil {
		panic(err)
	}
	defer f.Close() //nolint:errcheck
	logger = charmlog.NewLogger(charmlog.Options{Writer: f, Level: conf.LogLevel})
	logger.Info("loaded config", "config", conf)

	// db
	db, err := sqlite.Open(conf.DatabaseURL)
	if err != nil {
		logger.Error("failed database open", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(); err != nil {
		logger.Error("failed migration", "error", err)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck

	// repos
	kvRepo := sqlite.NewKeyValueRepo(db.Conn(), logger)
	focusRepo := sqlite.NewFocusSessionRepo(db.Conn(), logger)

	// stores; the API client reads the token back out of the session
	// store, so it is wired through a late-bound closure
	var sessions *store.SessionStore
	api := httpapi.NewClient(conf.APIBaseURL, tokenFunc(func() string {
		if sessions == nil {
			return ""
		}
		return sessions.Token()
	}), logger)
	sessions = store.NewSessionStore(context.Background(), api, kvRepo, logger)
	collection := store.NewTaskCollection(api, logger)

	fmt.Println(colorize(colorGreen, logo))
	fmt.Printf("\nOrganize suas tarefas e seja mais produtivo\n\n")

	m := newRootModel(deps{
		l:          logger,
		conf:       conf,
		sessions:   sessions,
		collection: collection,
		focusRepo:  focusRepo,
	})

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		logger.Error(err.Error())
	}
}

type tokenFunc func() string

func (f tokenFunc) Token() string {
	return f()
}
