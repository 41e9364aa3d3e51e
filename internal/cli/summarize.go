package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"eve-dashboard/internal/config"
	"eve-dashboard/internal/models"
	"eve-dashboard/internal/render"
	"eve-dashboard/internal/widget"
)

// Execute реализует goflags.Commander для SummarizeCommand
func (c *SummarizeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals, os.Stderr)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l, err := openLoader(ctx, cfg.Source, 1)
	if err != nil {
		return err
	}
	if closer, ok := l.(io.Closer); ok {
		defer closer.Close()
	}

	w := widget.New(l)
	defer w.Deactivate()

	return c.print(os.Stdout, w.Activate(ctx))
}

func (c *SummarizeCommand) applyOverrides(cfg *config.Config) {
	if c.File != "" {
		cfg.Source.Kind = config.SourceFile
		cfg.Source.File = c.File
	}
	if c.Source != "" {
		cfg.Source.Kind = c.Source
	}
	if c.Format != "" {
		cfg.Source.Format = c.Format
	}
	cfg.ResolveSourceURL()
}

// print выводит состояние виджета; состояние Error возвращается как ошибка
func (c *SummarizeCommand) print(out io.Writer, snap widget.Snapshot) error {
	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(models.SignaturesResponse{
			State:  snap.State.String(),
			Labels: nonNilStrings(snap.Series.Labels),
			Counts: nonNilInts(snap.Series.Counts),
			Colors: nonNilStrings(snap.Series.Colors),
			Total:  snap.Series.Total(),
			Error:  snap.Message,
		}); err != nil {
			return err
		}
	} else {
		printHuman(out, snap)
	}

	switch snap.State {
	case widget.Error:
		return fmt.Errorf("%s", snap.Message)
	case widget.Loading:
		return fmt.Errorf("load canceled")
	}
	return nil
}

func printHuman(out io.Writer, snap widget.Snapshot) {
	fmt.Fprintln(out, render.Title)
	fmt.Fprintln(out, "===================")

	switch snap.State {
	case widget.Loading:
		fmt.Fprintln(out, render.LoadingText)
		return
	case widget.Error:
		fmt.Fprintf(out, "Error: %s\n", snap.Message)
		return
	}

	series := snap.Series
	if series.Len() == 0 {
		fmt.Fprintln(out, "No alerts with a signature")
		return
	}
	for i := range series.Labels {
		fmt.Fprintf(out, "%8d  %-20s %s\n", series.Counts[i], series.Colors[i], series.Labels[i])
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total: %d alerts, %d signatures\n", series.Total(), series.Len())
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
