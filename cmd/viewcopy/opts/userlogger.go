package opts

import (
	"context"
	"fmt"
	"io"

	"github.com/ikedam/viewcopy-builder/pkg/config"
	"github.com/ikedam/viewcopy-builder/pkg/copier"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about command results
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// SetOutput redirects every pterm printer, used by tests.
func SetOutput(w io.Writer) {
	pterm.SetDefaultOutput(w)
	pterm.DisableStyling()
}

// 📝 LogCopy logs a completed copy
func (u *UserLogger) LogCopy(res *copier.Result) {
	if res == nil {
		return
	}
	msg := fmt.Sprintf("%s → %s (%s view)", res.From, res.To, res.Kind)
	if res.Created {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"}).Println("Created " + msg)
	} else {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "🔄"}).Println("Updated " + msg)
	}
	u.log.Info().Str("from", res.From).Str("to", res.To).Bool("created", res.Created).Msg("copied view")
}

// 🔍 LogFinding logs one config check finding
func (u *UserLogger) LogFinding(f config.Finding) {
	msg := fmt.Sprintf("%s: %s", f.Field, f.Message)
	switch f.Level {
	case config.LevelError:
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(msg)
		u.log.Error().Str("field", f.Field).Msg(f.Message)
	case config.LevelWarning:
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
		u.log.Warn().Str("field", f.Field).Msg(f.Message)
	}
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
	u.log.Warn().Msg(description)
}

// 📊 Table renders rows with a header line
func (u *UserLogger) Table(header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
