package monitor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/eckert/cpu"
	"github.com/ezrec/eckert/emulator"
	"github.com/ezrec/eckert/image"
)

// newLoader builds an emulator running a fetch and load routine.
func newLoader() (emu *emulator.Emulator) {
	img := &image.Image{}
	img.Memory[0] = cpu.MakeInstruction(cpu.OP_LDA, 0x10)
	img.Memory[1] = cpu.END_OF_PROGRAM
	img.Memory[0x10] = 0x123

	prog := &img.Program
	prog.Store(0, cpu.MakeWord(1, cpu.SIG_EP, cpu.SIG_LM))
	fetch := cpu.MakeWord(0, cpu.SIG_IP, cpu.SIG_R, cpu.SIG_ED, cpu.SIG_LI)
	fetch.Map = true
	prog.Store(1, fetch)
	prog.Store(2, cpu.MakeWord(3, cpu.SIG_EI, cpu.SIG_LM))
	prog.Store(3, cpu.MakeWord(0, cpu.SIG_R, cpu.SIG_ED, cpu.SIG_LA))
	prog.Store(4, cpu.Word{Halt: true, Jump: 4})
	for op := range cpu.MAP_SIZE {
		prog.AddressMap[op] = 4
	}
	prog.AddressMap[cpu.OP_LDA] = 2

	emu = emulator.NewEmulator(img)
	emu.Reset()
	return
}

func TestCommandStep(t *testing.T) {
	assert := assert.New(t)

	emu := newLoader()
	out := &strings.Builder{}

	quit, err := Command(emu, "step", out)
	assert.NoError(err)
	assert.False(quit)
	assert.Equal(1, emu.Cycles)
	assert.Equal(1, strings.Count(out.String(), "\n"))

	out.Reset()
	_, err = Command(emu, "s 3", out)
	assert.NoError(err)
	assert.Equal(4, emu.Cycles)
	assert.Equal(uint16(0x123), emu.ACC)
	assert.Equal(3, strings.Count(out.String(), "\n"))

	// Stops at the halt.
	out.Reset()
	_, err = Command(emu, "step 10", out)
	assert.NoError(err)
	assert.True(emu.Halted)
	assert.Equal(7, emu.Cycles)
	assert.True(strings.HasSuffix(out.String(), "halted after 7 cycles\n"))

	_, err = Command(emu, "step x", out)
	assert.ErrorIs(err, ErrArgument)
}

func TestCommandStepCount(t *testing.T) {
	assert := assert.New(t)

	// The empty control store loops at micro-address 0 forever.
	emu := emulator.NewEmulator(nil)
	assert.NoError(emu.Reset())
	out := &strings.Builder{}

	_, err := Command(emu, "step 10", out)
	assert.NoError(err)
	assert.Equal(10, emu.Cycles)
	assert.Equal(10, strings.Count(out.String(), "\n"))
	assert.False(emu.Halted)

	_, err = Command(emu, "step 0x10", out)
	assert.ErrorIs(err, ErrArgument)
	assert.Equal(10, emu.Cycles)

	out.Reset()
	_, err = Command(emu, "mem 1f 12", out)
	assert.NoError(err)
	assert.Equal(12, strings.Count(out.String(), "\n"))
	assert.True(strings.HasPrefix(out.String(), "1f: "))
}

// lineWriter is a trace writer that is not comparable.
type lineWriter []string

func (w lineWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func TestCommandStepOtherTrace(t *testing.T) {
	assert := assert.New(t)

	emu := newLoader()
	emu.Trace = lineWriter{}
	out := &strings.Builder{}

	assert.NotPanics(func() {
		_, err := Command(emu, "step", out)
		assert.NoError(err)
	})
	assert.Equal(1, emu.Cycles)
	assert.Equal(1, strings.Count(out.String(), "\n"))
}

func TestCommandRunAndReset(t *testing.T) {
	assert := assert.New(t)

	emu := newLoader()
	out := &strings.Builder{}

	_, err := Command(emu, "trace on", out)
	assert.NoError(err)
	_, err = Command(emu, "run", out)
	assert.NoError(err)
	assert.True(emu.Halted)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(cpu.TRACE_HEADER, lines[0])
	assert.Equal(1+7+1, len(lines))

	// Stepping with trace on does not print twice.
	_, err = Command(emu, "reset", out)
	assert.NoError(err)
	assert.False(emu.Halted)
	out.Reset()
	_, err = Command(emu, "step", out)
	assert.NoError(err)
	assert.Equal(1, strings.Count(out.String(), "\n"))

	_, err = Command(emu, "trace off", out)
	assert.NoError(err)
	assert.Nil(emu.Trace)

	_, err = Command(emu, "trace maybe", out)
	assert.ErrorIs(err, ErrArgument)
}

func TestCommandInspect(t *testing.T) {
	assert := assert.New(t)

	emu := newLoader()
	out := &strings.Builder{}

	_, err := Command(emu, "mem 0 2", out)
	assert.NoError(err)
	assert.Equal("00: 110 lda 10\n01: 800 hlt 00\n", out.String())

	out.Reset()
	_, err = Command(emu, "mem ff 2", out)
	assert.NoError(err)
	assert.Equal("ff: 000 fet 00\n00: 110 lda 10\n", out.String())

	out.Reset()
	_, err = Command(emu, "mem", out)
	assert.NoError(err)
	assert.Equal(MEM_COUNT, strings.Count(out.String(), "\n"))

	out.Reset()
	_, err = Command(emu, "regs", out)
	assert.NoError(err)
	assert.Equal(emu.Registers.String(), out.String())

	out.Reset()
	_, err = Command(emu, "help", out)
	assert.NoError(err)
	assert.Equal(len(cmdList), strings.Count(out.String(), "\n"))
}

func TestCommandErrors(t *testing.T) {
	assert := assert.New(t)

	emu := newLoader()
	out := &strings.Builder{}

	quit, err := Command(emu, "", out)
	assert.NoError(err)
	assert.False(quit)

	_, err = Command(emu, "bogus", out)
	assert.ErrorIs(err, ErrCommandUnknown)

	var cerr *ErrCommand
	if assert.True(errors.As(err, &cerr)) {
		assert.Equal("bogus", cerr.Name)
	}

	// 'r' could be run or regs.
	_, err = Command(emu, "r", out)
	assert.ErrorIs(err, ErrCommandAmbiguous)

	// reset and quit are never abbreviated.
	_, err = Command(emu, "res", out)
	assert.ErrorIs(err, ErrCommandUnknown)
	_, err = Command(emu, "q", out)
	assert.ErrorIs(err, ErrCommandUnknown)

	_, err = Command(emu, "regs now", out)
	assert.ErrorIs(err, ErrArgument)

	quit, err = Command(emu, "QUIT", out)
	assert.NoError(err)
	assert.True(quit)
}

func TestComplete(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"regs", "reset", "run"}, Complete("r"))
	assert.Equal([]string{"regs", "reset"}, Complete("re"))
	assert.Equal([]string{"step"}, Complete("st"))
	assert.Nil(Complete("x"))
	assert.Nil(Complete("step 1"))
	assert.Equal(len(cmdList), len(Complete("")))
}
