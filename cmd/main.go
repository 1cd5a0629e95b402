package main

import (
	"context"

	"jobAgent/internal/apply"
	"jobAgent/internal/auth"
	"jobAgent/internal/browser"
	"jobAgent/internal/chatbot"
	"jobAgent/internal/cli"
	"jobAgent/internal/config"
	"jobAgent/internal/database"
	"jobAgent/internal/llm"
	"jobAgent/internal/logger"
	"jobAgent/internal/migrations"
	"jobAgent/internal/qastore"
	"jobAgent/internal/scoring"
	"jobAgent/internal/search"
	"jobAgent/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := migrations.Run(cfg, log); err != nil {
		log.Fatal("Ошибка миграций", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("Ошибка подключения к БД", zap.Error(err))
	}
	defer db.Close(log)

	jobsRepo := database.NewAppliedJobRepository(db.DB)
	interactionsRepo := database.NewInteractionRepository(db.DB)

	store, err := qastore.Open(cfg.StorePath)
	if err != nil {
		log.Fatal("Ошибка открытия словаря", zap.Error(err))
	}

	var llmClient *llm.Client
	if cfg.OpenAI.KeyAI != "" {
		llmClient = llm.NewClient(cfg.OpenAI.KeyAI, cfg.OpenAI.Model, cfg.OpenAI.MaxTokens)
	} else {
		log.Warn("OPENAI_API_KEY не задан, бот работает без LLM")
	}

	br := browser.New(browser.Config{
		Headless:     cfg.Browser.Headless,
		UserDataDir:  cfg.Browser.UserDataDir,
		BrowsersPath: cfg.Browser.BrowsersPath,
		Display:      cfg.Browser.Display,
	})

	// Сборка цикла вопрос-ответ: браузер выступает поверхностью UI
	var generator llm.AnswerGenerator
	var jobScorer llm.JobScorer
	if llmClient != nil {
		generator = llmClient
		jobScorer = llmClient
	}

	detector := chatbot.NewQuestionDetector(br, log)
	resolver := chatbot.NewAnswerResolver(&cfg.Profile, store, generator, log)
	submitter := chatbot.NewInputSubmitter(br, log)
	sink := database.NewInteractionSink(interactionsRepo, log)
	controller := chatbot.NewController(br, detector, resolver, submitter, sink, log, chatbot.Config{
		ModalWait:     cfg.Chatbot.ModalWait,
		SessionBudget: cfg.Chatbot.SessionBudget,
		QuestionPause: cfg.Chatbot.QuestionPause,
	})

	scorer := scoring.New(jobScorer, &cfg.Profile, cfg.Search, log)
	searcher := search.New(br, cfg.Search, jobsRepo, log)
	applier := apply.New(br, controller, scorer, jobsRepo, cfg.Search, log)
	applier.SetJobTagger(sink)
	authenticator := auth.New(br, cfg.Profile.Credentials, log)

	// HTTP API поднимается только при заданном порте
	if cfg.App.Port != "" {
		srv := server.New(cfg, log, db, store)
		go func() {
			if err := srv.Run(context.Background()); err != nil {
				log.Error("Сервер остановлен", zap.Error(err))
			}
		}()
	}

	console := cli.New(cli.Deps{
		Browser:      br,
		Auth:         authenticator,
		Searcher:     searcher,
		Applier:      applier,
		Jobs:         jobsRepo,
		Interactions: interactionsRepo,
		Store:        store,
	}, log)
	console.Run(context.Background())
}
