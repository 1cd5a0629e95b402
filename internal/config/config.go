package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Cfg struct {
	Database   Database
	Logger     Logger
	OpenAI     OpenAI
	Browser    Browser
	App        App
	Migrations Migrations
	Chatbot    Chatbot
	Profile    Profile
	Search     Search
	StorePath  string
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
}

type OpenAI struct {
	KeyAI     string
	Model     string
	MaxTokens int
}

type Browser struct {
	Display      string
	Headless     bool
	UserDataDir  string
	BrowsersPath string
}

type App struct {
	Host string
	Port string
}

// Chatbot содержит таймауты цикла вопрос-ответ.
type Chatbot struct {
	ModalWait     time.Duration // Ожидание появления модального окна
	SessionBudget time.Duration // Общий бюджет времени на все вопросы
	QuestionPause time.Duration // Пауза после ответа перед поиском следующего вопроса
}

type Search struct {
	Keywords        []string
	Location        string
	PagesPerKeyword int
	MaxApplications int
	MinJobScore     int
	AvoidCompanies  []string
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		OpenAI: OpenAI{
			KeyAI:     os.Getenv("OPENAI_API_KEY"),
			Model:     env("OPENAI_MODEL", "gpt-4o"),
			MaxTokens: envInt("OPENAI_MAX_TOKENS", 1000),
		},
		Browser: Browser{
			Display:      env("DISPLAY", ":0"),
			Headless:     envBool("PW_HEADLESS"),
			UserDataDir:  env("PW_USER_DATA_DIR", "./userdata"),
			BrowsersPath: env("PLAYWRIGHT_BROWSERS_PATH", ""),
		},
		App: App{
			Host: env("APP_HOST", "127.0.0.1"),
			Port: env("APP_PORT", ""),
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
		Chatbot: Chatbot{
			ModalWait:     envDuration("CHATBOT_MODAL_WAIT", 5*time.Second),
			SessionBudget: envDuration("CHATBOT_SESSION_BUDGET", 60*time.Second),
			QuestionPause: envDuration("CHATBOT_QUESTION_PAUSE", time.Second),
		},
		StorePath: env("QA_STORE_PATH", "qa_dictionary.json"),
	}

	profile, err := LoadProfile(env("PROFILE_PATH", "profile.json"))
	if err != nil {
		return nil, err
	}
	cfg.Profile = *profile

	cfg.Search = Search{
		Keywords:        profile.Search.Keywords,
		Location:        profile.Search.Location,
		PagesPerKeyword: profile.Search.PagesPerKeyword,
		MaxApplications: profile.Search.MaxApplications,
		MinJobScore:     profile.Search.MinJobScore,
		AvoidCompanies:  profile.Search.AvoidCompanies,
	}

	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
