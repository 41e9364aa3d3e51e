// Package cli реализует команды запуска сервиса
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	goflags "github.com/jessevdk/go-flags"

	"eve-dashboard/internal/config"
	"eve-dashboard/internal/loader"
	"eve-dashboard/internal/logger"
)

// GlobalFlags общие флаги всех команд
type GlobalFlags struct {
	Config   string `long:"config" description:"Path to config.yaml"`
	LogLevel string `long:"log-level" description:"Override log level"`
}

// ServeCommand запускает HTTP сервер дашборда
type ServeCommand struct {
	Addr string `long:"addr" description:"Override listen address"`

	globals *GlobalFlags
	version string
}

// SummarizeCommand выполняет одну загрузку и печатает таблицу сигнатур
type SummarizeCommand struct {
	Source string `long:"source" description:"Override source kind: http | file | redis"`
	File   string `long:"file" description:"Read records from this file (implies --source file)"`
	Format string `long:"format" description:"Payload format: array | lines"`
	JSON   bool   `long:"json" description:"Output in JSON format"`

	globals *GlobalFlags
	version string
}

type commands struct {
	Serve     *ServeCommand
	Summarize *SummarizeCommand
}

// buildParser создает парсер со всеми командами
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "eve-dashboard"
	parser.LongDescription = "Alerts by Signature dashboard for Suricata EVE records."

	cmds := &commands{
		Serve:     &ServeCommand{globals: &globals, version: version},
		Summarize: &SummarizeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("serve", "Start the dashboard server", "Start the HTTP server with the Alerts by Signature widget.", cmds.Serve)
	parser.AddCommand("summarize", "Print signature counts", "Load records once and print the signature counts.", cmds.Summarize)

	return parser, &globals, cmds
}

// Run запускает CLI с аргументами os.Args
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs разбирает args (или os.Args, если nil) и выполняет команду
func RunWithArgs(version string, args []string) error {
	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok && flagsErr.Type == goflags.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}

// loadConfig читает конфигурацию, применяет окружение и флаги, настраивает логгер
func loadConfig(globals *GlobalFlags, logOutput io.Writer) (*config.Config, error) {
	path := ""
	if globals != nil {
		path = globals.Config
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if globals != nil && globals.LogLevel != "" {
		cfg.Logging.Level = globals.LogLevel
	}
	logger.InitWithOutput(cfg.Logging.Level, logOutput)

	return cfg, nil
}

// openLoader создает загрузчик; подключение к Redis повторяется attempts раз
func openLoader(ctx context.Context, cfg config.SourceConfig, attempts int) (loader.Loader, error) {
	if attempts < 1 {
		attempts = 1
	}

	var l loader.Loader
	var err error
	for i := 0; i < attempts; i++ {
		l, err = loader.New(cfg)
		if err == nil {
			return loader.Instrument(l), nil
		}
		if cfg.Kind != config.SourceRedis {
			break
		}
		logger.Log.Warnf("Redis connection attempt %d failed: %v", i+1, err)
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(i+1) * time.Second):
			}
		}
	}
	return nil, fmt.Errorf("open %s source: %w", cfg.Kind, err)
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
