package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"rehnuma-chat/internal/chat"
	"rehnuma-chat/internal/config"
)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00A3E0")).Bold(true)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat (default command)",
	RunE:  runChat,
}

const slashHelp = `Commands:
  /menu      toggle the menu
  /download  save the chat as a text file
  /reset     clear the conversation
  /info      about Rehnuma
  /quit      leave`

func runChat(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyFile := inputHistoryPath()
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveInputHistory(line, historyFile)

	s.controller.Start(ctx)

	// Replies land while the prompt is live; quitting waits for them.
	d := &dispatcher{submit: s.controller.Submit}
	defer d.Wait()

	for {
		input, err := line.Prompt(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C and EOF end the session.
			if !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			return nil
		}

		trimmed := strings.TrimSpace(input)
		if trimmed != "" {
			line.AppendHistory(input)
		}

		if strings.HasPrefix(trimmed, "/") {
			if quit := handleSlashCommand(ctx, s, trimmed); quit {
				return nil
			}
			continue
		}

		if ctx.Err() != nil {
			return nil
		}
		if trimmed != "" {
			d.Dispatch(ctx, input)
		}
	}
}

// dispatcher runs each submission on its own goroutine.
type dispatcher struct {
	wg     sync.WaitGroup
	submit func(ctx context.Context, input string) chat.Exchange
}

func (d *dispatcher) Dispatch(ctx context.Context, input string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.submit(ctx, input)
	}()
}

// Wait blocks until every dispatched submission has finished.
func (d *dispatcher) Wait() {
	d.wg.Wait()
}

func handleSlashCommand(ctx context.Context, s *session, input string) (quit bool) {
	switch strings.Fields(input)[0] {
	case "/quit", "/exit":
		return true
	case "/reset":
		s.controller.Reset(ctx)
	case "/download":
		dir, err := os.Getwd()
		if err != nil {
			dir = os.TempDir()
		}
		path, err := s.controller.Download(dir)
		if err == nil {
			fmt.Println(path)
		} else if !errors.Is(err, chat.ErrNothingToDownload) {
			s.surface.Notify(err.Error())
		}
	case "/info":
		fmt.Println(s.controller.ShowInfo())
		s.controller.HideInfo()
	case "/menu":
		if s.controller.ToggleMenu().MenuOpen {
			fmt.Println(slashHelp)
		}
	default:
		fmt.Println(slashHelp)
	}
	return false
}

func inputHistoryPath() string {
	dir, err := config.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "input_history")
}

func saveInputHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
