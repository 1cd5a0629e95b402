// Package cli - интерактивная консоль бота.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"jobAgent/internal/apply"
	"jobAgent/internal/auth"
	"jobAgent/internal/browser"
	"jobAgent/internal/cli/commands"
	"jobAgent/internal/cli/ui"
	"jobAgent/internal/database"
	"jobAgent/internal/logger"
	"jobAgent/internal/qastore"
	"jobAgent/internal/search"

	"github.com/chzyer/readline"
)

type CLI struct {
	log *logger.Zap
	rl  *readline.Instance

	sessionHandler *commands.SessionHandler
	jobsHandler    *commands.JobsHandler
	qaHandler      *commands.QAHandler
	browserHandler *commands.BrowserHandler
}

// Deps - собранные в main компоненты, которыми управляет консоль.
type Deps struct {
	Browser      browser.Browser
	Auth         *auth.Authenticator
	Searcher     *search.Searcher
	Applier      *apply.Applier
	Jobs         *database.AppliedJobRepository
	Interactions *database.InteractionRepository
	Store        *qastore.Store
}

func New(deps Deps, log *logger.Zap) *CLI {
	cli := &CLI{log: log}

	// Инициализация handlers
	cli.sessionHandler = commands.NewSessionHandler(deps.Browser, deps.Auth, deps.Searcher, deps.Applier, log.Logger)
	cli.jobsHandler = commands.NewJobsHandler(deps.Jobs, deps.Interactions, log.Logger)
	cli.qaHandler = commands.NewQAHandler(deps.Store)
	cli.browserHandler = commands.NewBrowserHandler(deps.Browser, cli.sessionHandler)

	// Инициализация readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".job-agent-history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Warn("Не удалось инициализировать readline, будет использован fallback режим")
	} else {
		cli.rl = rl
	}

	return cli
}

func (c *CLI) readLine() (string, error) {
	if c.rl != nil {
		return c.rl.Readline()
	}
	// Fallback для работы без readline
	reader := bufio.NewReader(os.Stdin)
	println(ui.ColorCyan + "> " + ui.ColorReset)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *CLI) closeReadline() {
	if c.rl != nil {
		c.rl.Close()
	}
}

func (c *CLI) Run(ctx context.Context) {
	ui.PrintWelcome()
	defer c.closeReadline()
	defer c.sessionHandler.Close()

	for {
		// Проверка отмены контекста
		select {
		case <-ctx.Done():
			println("\n" + ui.ColorCyan + ui.IconWave + " Получен сигнал завершения..." + ui.ColorReset)
			return
		default:
		}

		line, err := c.readLine()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		c.handleCommand(ctx, line)
	}
}

func (c *CLI) handleCommand(ctx context.Context, line string) {
	switch {
	case line == "exit":
		println(ui.ColorCyan + ui.IconWave + " До свидания!" + ui.ColorReset)
		c.sessionHandler.Close()
		os.Exit(0)

	case line == "clear":
		ui.ClearScreen()

	case line == "run":
		c.sessionHandler.Run(ctx)

	case line == "login":
		c.sessionHandler.Login(ctx)

	case line == "search":
		c.sessionHandler.Search(ctx)

	case line == "jobs":
		c.jobsHandler.List()

	case line == "report":
		c.jobsHandler.Report()

	case line == "qa list":
		c.qaHandler.List()

	case strings.HasPrefix(line, "qa add "):
		c.qaHandler.Add(strings.TrimPrefix(line, "qa add "))

	case strings.HasPrefix(line, "open "):
		c.browserHandler.Open(ctx, strings.TrimPrefix(line, "open "))

	default:
		ui.PrintHelp()
	}
}
