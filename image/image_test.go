package image

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/eckert/cpu"
)

func TestReadMemory(t *testing.T) {
	assert := assert.New(t)

	mem, err := ReadMemory(strings.NewReader("104\n\n 200 \n800\n123\n"))
	assert.NoError(err)
	assert.Equal(uint16(0x104), mem[0])
	assert.Equal(uint16(0x200), mem[1])
	assert.Equal(uint16(0x800), mem[2])
	// Nothing is loaded past the end-of-program word.
	assert.Equal(uint16(0), mem[3])

	mem, err = ReadMemory(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(cpu.Memory{}, mem)
}

func TestReadErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		read   func(text string) error
		text   string
		lineno int
		err    error
	}){
		{"mem_syntax", readMemory, "100\nxyz\n", 2, ErrValueSyntax},
		{"mem_range", readMemory, "1000\n", 1, ErrValueRange},
		{"mem_long", readMemory, strings.Repeat("1\n", cpu.MEMORY_SIZE+1), cpu.MEMORY_SIZE + 1, ErrTooLong},
		{"addr_range", readAddressMap, "1f\n20\n", 2, ErrValueRange},
		{"addr_long", readAddressMap, strings.Repeat("0\n", cpu.MAP_SIZE+1), cpu.MAP_SIZE + 1, ErrTooLong},
		{"uprog_range", readControl, "1000000\n", 1, ErrValueRange},
		{"uprog_long", readControl, strings.Repeat("\n0\n", cpu.CONTROL_SIZE+1), 2*cpu.CONTROL_SIZE + 2, ErrTooLong},
	}

	for _, entry := range table {
		err := entry.read(entry.text)
		assert.ErrorIs(err, entry.err, entry.name)

		var el *ErrLine
		if assert.True(errors.As(err, &el), entry.name) {
			assert.Equal(entry.lineno, el.LineNo, entry.name)
		}
	}
}

func readMemory(text string) (err error) {
	_, err = ReadMemory(strings.NewReader(text))
	return
}

func readAddressMap(text string) (err error) {
	_, err = ReadAddressMap(strings.NewReader(text))
	return
}

func readControl(text string) (err error) {
	_, err = ReadControl(strings.NewReader(text))
	return
}

var testImage = fstest.MapFS{
	RAM_FILE:   &fstest.MapFile{Data: []byte("104\n800\n")},
	ADDR_FILE:  &fstest.MapFile{Data: []byte("00\n02\n")},
	UPROG_FILE: &fstest.MapFile{Data: []byte("300001\n898040\n240003\n0a8000\n000020\n")},
}

func TestUnmarshal(t *testing.T) {
	assert := assert.New(t)

	img, err := Unmarshal(testImage)
	assert.NoError(err)

	assert.Equal(uint16(0x104), img.Memory[0])
	assert.Equal(cpu.END_OF_PROGRAM, img.Memory[1])
	assert.Equal(uint8(0x02), img.Program.MapAddress(cpu.OP_LDA))
	assert.Equal(uint32(0x898040), img.Program.Control[1])
	assert.Equal(uint32(0x000020), img.Program.Control[4])
	assert.Equal(uint32(0), img.Program.Control[5])
}

func TestUnmarshalErrors(t *testing.T) {
	assert := assert.New(t)

	fsys := fstest.MapFS{
		RAM_FILE:  testImage[RAM_FILE],
		ADDR_FILE: &fstest.MapFile{Data: []byte("00\nzz\n")},
	}

	_, err := Unmarshal(fsys)
	var el *ErrLine
	assert.True(errors.As(err, &el))
	assert.Equal(ADDR_FILE, el.Name)
	assert.Equal(2, el.LineNo)
	assert.ErrorIs(err, ErrValueSyntax)

	// Missing control store.
	fsys[ADDR_FILE] = testImage[ADDR_FILE]
	_, err = Unmarshal(fsys)
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestOpenAndMarshal(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	ram := filepath.Join(dir, RAM_FILE)
	assert.NoError(os.WriteFile(ram, testImage[RAM_FILE].Data, 0644))

	prog := &cpu.Microprogram{}
	prog.Store(0, cpu.MakeWord(1, cpu.SIG_EP, cpu.SIG_LM))
	prog.AddressMap[cpu.OP_HLT] = 0x1f
	assert.NoError(MarshalProgram(DirFS(dir), prog))

	img, err := Open(ram, filepath.Join(dir, ADDR_FILE), filepath.Join(dir, UPROG_FILE))
	assert.NoError(err)
	assert.Equal(*prog, img.Program)
	assert.Equal(uint16(0x104), img.Memory[0])

	img, err = Unmarshal(os.DirFS(dir))
	assert.NoError(err)
	assert.Equal(*prog, img.Program)

	_, err = Open(filepath.Join(dir, "missing.txt"), ADDR_FILE, UPROG_FILE)
	assert.ErrorIs(err, os.ErrNotExist)
}

// mapCreateFS collects created files into a MapFS.
type mapCreateFS fstest.MapFS

type mapFile struct {
	strings.Builder
	fsys mapCreateFS
	name string
}

func (file *mapFile) Close() error {
	file.fsys[file.name] = &fstest.MapFile{Data: []byte(file.String())}
	return nil
}

func (fsys mapCreateFS) Create(name string) (io.WriteCloser, error) {
	return &mapFile{fsys: fsys, name: name}, nil
}

func TestMarshal(t *testing.T) {
	assert := assert.New(t)

	img, err := Unmarshal(testImage)
	assert.NoError(err)

	fsys := mapCreateFS{}
	assert.NoError(img.Marshal(fsys))
	assert.Equal(3, len(fsys))
	assert.Equal(testImage[RAM_FILE].Data, fsys[RAM_FILE].Data)

	again, err := Unmarshal(fstest.MapFS(fsys))
	assert.NoError(err)
	assert.Equal(img, again)
}

func TestWrite(t *testing.T) {
	assert := assert.New(t)

	var mem cpu.Memory
	mem[0] = 0x104
	mem[1] = 0x800
	mem[2] = 0x005

	var buff strings.Builder
	assert.NoError(WriteMemory(&buff, &mem))
	assert.Equal("104\n800\n", buff.String())

	read, err := ReadMemory(strings.NewReader(buff.String()))
	assert.NoError(err)
	assert.Equal(uint16(0x800), read[1])
	assert.Equal(uint16(0), read[2])

	prog := &cpu.Microprogram{}
	prog.Control[0] = 0x300001
	prog.AddressMap[1] = 0x02

	buff.Reset()
	assert.NoError(WriteAddressMap(&buff, prog))
	assert.Equal("00\n02\n"+strings.Repeat("00\n", cpu.MAP_SIZE-2), buff.String())

	buff.Reset()
	assert.NoError(WriteControl(&buff, prog))
	assert.True(strings.HasPrefix(buff.String(), "300001\n000000\n"))
	assert.Equal(cpu.CONTROL_SIZE, strings.Count(buff.String(), "\n"))
}
