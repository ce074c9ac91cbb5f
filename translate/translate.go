// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate selects a message printer for the user's locale.
//
// All user visible text (errors, table headers, monitor replies) is written
// as an en-US Sprintf() format and passed through From().
package translate

import (
	"fmt"
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("eckert: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage forces the printer to a specific language tag.
func SetLanguage(tag language.Tag) {
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintf writes the translated format to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) (n int, err error) {
	return printer.Fprintf(w, key, args...)
}

// Fprintln writes the translated text to w, followed by a newline.
func Fprintln(w io.Writer, key message.Reference, args ...any) (n int, err error) {
	return fmt.Fprintln(w, From(key, args...))
}
