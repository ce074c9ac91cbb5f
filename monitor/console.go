package monitor

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/peterh/liner"

	"github.com/ezrec/eckert/emulator"
	"github.com/ezrec/eckert/translate"
)

const PROMPT = "eckert> "

// Console runs the interactive monitor on the terminal until quit,
// end of input, or Ctrl-C.
func Console(emu *emulator.Emulator) (err error) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(Complete)

	for {
		var text string
		text, err = line.Prompt(PROMPT)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			log.Printf("monitor: %v", err)
			return
		}

		line.AppendHistory(text)
		quit, cerr := Command(emu, text, os.Stdout)
		if cerr != nil {
			translate.Fprintln(os.Stdout, "error: %v", cerr)
		}
		if quit {
			return
		}
	}
}
