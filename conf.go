package proactiva

import (
	"fmt"
	"log"
	"os"
	"path"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL   string
	DatabaseURL  string
	LogLevel     string
	LogPath      string
	TimeFormat   string
	FocusMinutes int
}

const (
	DefaultAPIBaseURL   = "https://proactivaapi.onrender.com"
	DefaultLogLevel     = "WARN"
	DefaultTimeFormat   = "15:04"
	DefaultFocusMinutes = 25
)

var (
	userHome, _        = os.UserHomeDir()
	DefaultDatabaseURL = path.Join(userHome, ".proactiva", "proactiva.db")
	DefaultLogPath     = path.Join(userHome, ".proactiva", "proactiva.log")
)

func LoadConfig() Config {
	confFromEnv := configFromEnv()

	if os.Getenv("PROACTIVA_DEV_MODE") != "" {
		fmt.Println("Dev mode is on!")
		confFromEnv.LogLevel = "DEBUG"
		confFromEnv.DatabaseURL = path.Join(os.TempDir(), "proactiva-test.db")
		confFromEnv.LogPath = path.Join(userHome, ".proactiva", "dev.log")
		f, err := os.OpenFile(confFromEnv.DatabaseURL, os.O_CREATE|os.O_TRUNC, 0o744)
		if err != nil {
			panic(err)
		}
		_ = f.Close()
	}

	// load file
	cfgDir, _ := os.UserConfigDir()
	cfgDir = path.Join(cfgDir, "proactiva")
	confFile := path.Join(cfgDir, "proactiva.conf")
	if _, err := os.Stat(confFile); err != nil {
		log.Println("creating default conf file")
		if err := os.MkdirAll(cfgDir, 0o744); err != nil {
			panic(err)
		}
		if err := os.MkdirAll(path.Dir(DefaultDatabaseURL), 0o744); err != nil {
			panic(err)
		}
		f, err := os.Create(confFile)
		if err != nil {
			panic(err)
		}
		defaults := map[string]string{
			"PROACTIVA_API_URL":       DefaultAPIBaseURL,
			"PROACTIVA_DB_URL":        DefaultDatabaseURL,
			"PROACTIVA_LOG_LEVEL":     DefaultLogLevel,
			"PROACTIVA_LOG_PATH":      DefaultLogPath,
			"PROACTIVA_TIME_FORMAT":   DefaultTimeFormat,
			"PROACTIVA_FOCUS_MINUTES": strconv.Itoa(DefaultFocusMinutes),
		}
		for k, v := range defaults {
			if _, err := f.WriteString(k + "=" + v + "\n"); err != nil {
				panic(err)
			}
		}
		_ = f.Close()
	}
	if err := godotenv.Load(confFile); err != nil {
		panic(err)
	}
	confFromFile := configFromEnv()

	focusMinutes := DefaultFocusMinutes
	if s := coalesce(confFromEnv.focusMinutesRaw, confFromFile.focusMinutesRaw); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			focusMinutes = n
		}
	}

	return Config{
		APIBaseURL:   coalesce(confFromEnv.APIBaseURL, confFromFile.APIBaseURL, DefaultAPIBaseURL),
		DatabaseURL:  coalesce(confFromEnv.DatabaseURL, confFromFile.DatabaseURL, DefaultDatabaseURL),
		LogLevel:     coalesce(confFromEnv.LogLevel, confFromFile.LogLevel, DefaultLogLevel),
		LogPath:      coalesce(confFromEnv.LogPath, confFromFile.LogPath, DefaultLogPath),
		TimeFormat:   coalesce(confFromEnv.TimeFormat, confFromFile.TimeFormat, DefaultTimeFormat),
		FocusMinutes: focusMinutes,
	}
}

type rawConfig struct {
	Config
	focusMinutesRaw string
}

func configFromEnv() rawConfig {
	return rawConfig{
		Config: Config{
			APIBaseURL:  os.Getenv("PROACTIVA_API_URL"),
			DatabaseURL: os.Getenv("PROACTIVA_DB_URL"),
			LogLevel:    os.Getenv("PROACTIVA_LOG_LEVEL"),
			LogPath:     os.Getenv("PROACTIVA_LOG_PATH"),
			TimeFormat:  os.Getenv("PROACTIVA_TIME_FORMAT"),
		},
		focusMinutesRaw: os.Getenv("PROACTIVA_FOCUS_MINUTES"),
	}
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
