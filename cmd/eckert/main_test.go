package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/eckert/image"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	for name, text := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	assert := assert.New(t)

	opts := &options{save: true}
	assert.ErrorIs(opts.validate(), ErrSaveWithoutCompile)

	opts.source = "prog.uasm"
	assert.NoError(opts.validate())

	opts = &options{}
	assert.NoError(opts.validate())
}

func TestRunCycleLimitKeepsTrace(t *testing.T) {
	assert := assert.New(t)

	// The empty control store never halts.
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		image.RAM_FILE:   "800\n",
		image.ADDR_FILE:  "",
		image.UPROG_FILE: "",
	})

	tracePath := filepath.Join(dir, "trace.txt")
	code := run(&options{dir: dir, quiet: true, tracePath: tracePath, limit: 5})
	assert.Equal(1, code)

	data, err := os.ReadFile(tracePath)
	assert.NoError(err)
	// Header and one row per executed cycle.
	assert.Equal(1+5, strings.Count(string(data), "\n"))
}

func TestRunCompileSaveAndExecute(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "halt.uasm")
	writeFiles(t, dir, map[string]string{
		"halt.uasm":    "start: HLT jump start\n.map OP_HLT start\n",
		image.RAM_FILE: "800\n",
	})

	code := run(&options{source: source, dir: dir, save: true})
	assert.Equal(0, code)

	img, err := image.Unmarshal(os.DirFS(dir))
	assert.NoError(err)
	assert.Equal(uint32(0x000020), img.Program.Control[0])

	tracePath := filepath.Join(dir, "trace.txt")
	code = run(&options{dir: dir, quiet: true, tracePath: tracePath})
	assert.Equal(0, code)

	data, err := os.ReadFile(tracePath)
	assert.NoError(err)
	assert.Equal(1+1, strings.Count(string(data), "\n"))

	// Compile errors are reported, not fatal.
	writeFiles(t, dir, map[string]string{"bad.uasm": "EP XX\n"})
	code = run(&options{source: filepath.Join(dir, "bad.uasm"), dir: dir, save: true})
	assert.Equal(1, code)
}
