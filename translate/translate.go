// Package translate formats user-facing text for the host locale.
package translate

import (
	"io"

	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report messages, keyed by their en-US format.
const (
	MsgStopReason   = "stop reason: %s\n"
	MsgPC           = "pc: 0x%08x\n"
	MsgInstructions = "instructions: %d\n"
	MsgBranches     = "branches: %d (%d taken)\n"
	MsgMemoryOps    = "loads: %d, stores: %d\n"
	MsgIgnored      = "ignored: %d\n"
	MsgRegister     = "x%-2d = 0x%08x (%d)\n"
	MsgError        = "error: %v\n"
)

var printer *message.Printer

func init() {
	for _, key := range []string{
		MsgStopReason, MsgPC, MsgInstructions, MsgBranches,
		MsgMemoryOps, MsgIgnored, MsgRegister, MsgError,
	} {
		_ = message.SetString(language.AmericanEnglish, key, key)
	}

	printer = NewPrinter(Locales()...)
}

// Locales returns the host's preferred locales, or en-US when they cannot
// be determined.
func Locales() []string {
	locales, err := locale.GetLocales()
	if err != nil {
		logrus.WithError(err).Debug("locale lookup failed")
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return locales
}

// NewPrinter returns a printer for the best match among locales.
func NewPrinter(locales ...string) *message.Printer {
	return message.NewPrinter(message.MatchLanguage(locales...))
}

// Printer returns the printer for the host locale.
func Printer() *message.Printer {
	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintf writes a translated message to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) (int, error) {
	return printer.Fprintf(w, key, args...)
}
