package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/sr8e/crclut/crc"
	"github.com/sr8e/crclut/rom"
	"github.com/stretchr/testify/require"
)

// newWorkFs returns a filesystem rooted at /work of the returned MemMapFs,
// standing in for the working directory.
func newWorkFs(t *testing.T) (afero.Fs, afero.Fs) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/work", 0o755))
	return afero.NewBasePathFs(mem, "/work"), mem
}

func runCmd(fs afero.Fs, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(fs, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunDefault(t *testing.T) {
	fs, mem := newWorkFs(t)
	code, _, stderr := runCmd(fs)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "crclut: wrote 256 entries to CRC_LUT.txt\n", stderr)

	b, err := afero.ReadFile(mem, "/work/CRC_LUT.txt")
	require.NoError(t, err)
	require.Equal(t, rom.Image(crc.EthernetTable()), b)

	// Rerunning overwrites with identical contents.
	code, _, _ = runCmd(fs)
	require.Equal(t, 0, code)
	again, err := afero.ReadFile(mem, "/work/CRC_LUT.txt")
	require.NoError(t, err)
	require.Equal(t, b, again)
}

func TestRunOutputFlag(t *testing.T) {
	fs, mem := newWorkFs(t)
	require.NoError(t, mem.MkdirAll("/work/rom", 0o755))
	code, _, stderr := runCmd(fs, "-o", "rom/lut.txt")
	require.Equal(t, 0, code, stderr)

	ok, err := afero.Exists(mem, "/work/rom/lut.txt")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = afero.Exists(mem, "/work/CRC_LUT.txt")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRunPoly(t *testing.T) {
	fs, mem := newWorkFs(t)
	code, _, stderr := runCmd(fs, "--poly", "0x1edc6f41")
	require.Equal(t, 0, code, stderr)

	got, err := rom.ReadFile(mem, "/work/CRC_LUT.txt")
	require.NoError(t, err)
	require.Equal(t, *crc.MakeTable(0x1edc6f41), *got)

	code, _, stderr = runCmd(fs, "--poly", "ethernet")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, `invalid polynomial "ethernet"`)
}

func TestRunOpenError(t *testing.T) {
	fs, mem := newWorkFs(t)
	code, _, stderr := runCmd(afero.NewReadOnlyFs(fs))
	require.Equal(t, 1, code)
	require.True(t, strings.HasPrefix(stderr, "crclut: creating CRC_LUT.txt"), stderr)

	infos, err := afero.ReadDir(mem, "/work")
	require.NoError(t, err)
	require.Empty(t, infos)
}

func TestRunRejectsArgs(t *testing.T) {
	fs, _ := newWorkFs(t)
	code, _, stderr := runCmd(fs, "extra")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "crclut: ")
}

func TestCheck(t *testing.T) {
	fs, mem := newWorkFs(t)
	code, _, stderr := runCmd(fs)
	require.Equal(t, 0, code, stderr)

	code, stdout, stderr := runCmd(fs, "check")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "ok\n", stdout)

	// Flip the low bit of entry 37.
	b, err := afero.ReadFile(mem, "/work/CRC_LUT.txt")
	require.NoError(t, err)
	pos := 37*(rom.Width+1) + rom.Width - 1
	b[pos] ^= '0' ^ '1'
	require.NoError(t, afero.WriteFile(mem, "/work/flipped.txt", b, 0o644))

	want := rom.FormatEntry(crc.EthernetTable()[37])
	gotLine := rom.FormatEntry(crc.EthernetTable()[37] ^ 1)
	code, _, stderr = runCmd(fs, "check", "flipped.txt")
	require.Equal(t, 1, code)
	require.Equal(t, "crclut: flipped.txt: entry 37 is "+gotLine+", want "+want+"\n", stderr)

	code, _, stderr = runCmd(fs, "check", "missing.txt")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "opening missing.txt")
}
