package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tithmeassambo-coder/QCM/internal/app"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"github.com/tithmeassambo-coder/QCM/internal/logger"
	"github.com/tithmeassambo-coder/QCM/internal/service"
	"github.com/tithmeassambo-coder/QCM/internal/storage"
	"github.com/tithmeassambo-coder/QCM/internal/tui"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", os.Getenv("QCM_CONFIG"), "path to YAML config file")
	subject := flag.String("subject", "", "subject to play; lists subjects when empty")
	part := flag.Int("part", 1, "part number, starting at 1")
	data := flag.String("data", "", "base64 question payload to play instead of the stored collection")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()

	if err := run(*configPath, *subject, *part, *data, *noColor); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, subject string, part int, data string, noColor bool) error {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if data == "" {
		data = cfg.StartupData
	}

	// stderr belongs to the terminal UI, so only log when a file is configured.
	log := zap.NewNop()
	if cfg.LogFile != "" {
		log, err = logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
		if err != nil {
			return err
		}
	}
	defer func() { _ = log.Sync() }()

	qs, err := loadQuestions(cfg, data, log)
	if err != nil {
		return err
	}
	play := service.NewPlayService(storage.NewStore(qs, nil), log)
	opts := tui.Options{NoColor: noColor}

	if subject == "" {
		fmt.Print(tui.RenderSubjects(play.Subjects(), play.Parts, noColor))
		return nil
	}
	if part < 1 {
		return fmt.Errorf("part must be 1 or greater, got %d", part)
	}

	mute := game.NewMutable(tui.Bell(os.Stderr))
	var model tui.Model
	sess, err := play.StartAttempt(subject, part-1, mute)
	switch {
	case errors.Is(err, game.ErrEmptyPart):
		model = tui.NewEmptyModel(subject, part-1, opts)
	case err != nil:
		return err
	default:
		model = tui.NewModel(sess, mute, opts)
	}

	_, err = tea.NewProgram(model).Run()
	return err
}

func loadQuestions(cfg app.Config, data string, log *zap.Logger) ([]game.Question, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.LoadCollection(ctx, cfg, data, log)
}
