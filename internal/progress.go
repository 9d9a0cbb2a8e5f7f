package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgressStep represents a single step in a multi-step process
type ProgressStep struct {
	Message string
	Fn      func() error
}

// ShowProgress runs fn behind a spinner on stderr. Outside a terminal the
// message is logged instead.
func ShowProgress(ctx context.Context, message string, fn func() error) error {
	if !IsTerminal(os.Stderr) {
		LogInfo(message)
		return fn()
	}
	return runWithSpinner(ctx, os.Stderr, message, fn)
}

// ShowProgressWithSteps runs each step in order, stopping at the first error
func ShowProgressWithSteps(ctx context.Context, steps []ProgressStep) error {
	for i, step := range steps {
		msg := fmt.Sprintf("[%d/%d] %s", i+1, len(steps), step.Message)
		if err := ShowProgress(ctx, msg, step.Fn); err != nil {
			return fmt.Errorf("%s: %w", step.Message, err)
		}
	}
	return nil
}

func runWithSpinner(ctx context.Context, w io.Writer, message string, fn func() error) error {
	done := make(chan error, 1)
	stop := make(chan struct{})
	spinnerDone := make(chan struct{})

	go func() {
		defer close(spinnerDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", progressStyle.Render(spinnerFrames[i%len(spinnerFrames)]), message)
			}
		}
	}()

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		close(stop)
		<-spinnerDone
		if err != nil {
			fmt.Fprintf(w, "\r%s %s\n", errorStyle.Render("✗"), message)
			return err
		}
		fmt.Fprintf(w, "\r%s %s\n", successStyle.Render("✓"), message)
		return nil
	case <-ctx.Done():
		close(stop)
		<-spinnerDone
		return ctx.Err()
	}
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of w, or fallback when it is not a terminal
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	printStatus(w, successStyle.Render("✓"), "", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	printStatus(w, errorStyle.Render("✗"), "ERROR: ", message)
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	printStatus(w, progressStyle.Render("ℹ"), "", message)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	printStatus(w, warningStyle.Render("⚠"), "WARNING: ", message)
}

func printStatus(w io.Writer, icon, plainPrefix, message string) {
	if IsTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", icon, message)
	} else {
		fmt.Fprintf(w, "%s%s\n", plainPrefix, message)
	}
}
