package log

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about a run
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// defaultOutput is where new user loggers print
var defaultOutput io.Writer = os.Stdout

// 🎯 NewUserLogger creates a new user logger backed by the context logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: defaultOutput,
	}
}

// SetOutput sets where user loggers created afterwards print, os.Stdout by default
func SetOutput(w io.Writer) {
	defaultOutput = w
}

// 📊 LogStateChange logs a change to the overall run
func (u *UserLogger) LogStateChange(description string) {
	printer := u.withIcon(pterm.Info, "📦")
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.withIcon(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}

	if err != nil {
		u.withIcon(pterm.Error, "❌").Println(description)
		pterm.Error.WithWriter(u.out).Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		u.withIcon(pterm.Warning, "⚠️").Println(description)
		u.log.Warn().Msg(description)
	}
}

// 🧾 LogSummary reports how many files were processed and buttons injected
func (u *UserLogger) LogSummary(files, matches int, dryRun bool) {
	verb := "Injected"
	if dryRun {
		verb = "Would inject"
	}
	msg := fmt.Sprintf("%s %d confirm button(s) across %d file(s)", verb, matches, files)

	u.withIcon(pterm.Success, "✨").Println(msg)
	u.log.Info().
		Int("files", files).
		Int("matches", matches).
		Bool("dry_run", dryRun).
		Msg(msg)
}

// withIcon swaps the printer's label for icon, keeps its style and prints to u.out
func (u *UserLogger) withIcon(p pterm.PrefixPrinter, icon string) *pterm.PrefixPrinter {
	return p.WithPrefix(pterm.Prefix{Text: icon, Style: p.Prefix.Style}).WithWriter(u.out)
}
