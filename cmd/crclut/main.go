// Command crclut writes the CRC-32 lookup table as a ROM initialization file.
//
// Run without arguments it writes CRC_LUT.txt to the working directory.
package main

import (
	"io"
	"log"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sr8e/crclut/crc"
	"github.com/sr8e/crclut/rom"
)

const defaultOutput = "CRC_LUT.txt"

var errImageMismatch = errors.New("rom image does not match table")

type options struct {
	output string
	poly   string
}

func (o *options) polynomial() (uint32, error) {
	v, err := strconv.ParseUint(o.poly, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid polynomial %q", o.poly)
	}
	return uint32(v), nil
}

// table builds the table for the selected polynomial and self-checks it when
// the polynomial is the Ethernet one.
func (o *options) table() (*crc.Table, error) {
	poly, err := o.polynomial()
	if err != nil {
		return nil, err
	}
	t := crc.MakeTable(poly)
	if poly == crc.Ethernet {
		if err := crc.Verify(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func newRootCmd(fs afero.Fs, logger *log.Logger) *cobra.Command {
	opts := &options{}

	rootFlags := pflag.NewFlagSet("crclut", pflag.ContinueOnError)
	rootFlags.StringVarP(&opts.output, "output", "o", defaultOutput, "rom image to write")
	rootFlags.StringVar(&opts.poly, "poly", "0x04c11db7", "generator polynomial without the x^32 term")

	rootCmd := &cobra.Command{
		Use:           "crclut",
		Short:         "Write the CRC-32 lookup table as a ROM initialization file",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.table()
			if err != nil {
				return err
			}
			if err := rom.WriteFile(fs, opts.output, t); err != nil {
				return err
			}
			logger.Printf("wrote %d entries to %s", len(t), opts.output)
			return nil
		},
	}
	rootCmd.PersistentFlags().AddFlagSet(rootFlags)

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Compare a ROM image with the generated table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := opts.output
			if len(args) == 1 {
				name = args[0]
			}
			want, err := opts.table()
			if err != nil {
				return err
			}
			got, err := rom.ReadFile(fs, name)
			if err != nil {
				return err
			}
			for i := range want {
				if got[i] != want[i] {
					return errors.Mark(errors.Newf("%s: entry %d is %s, want %s",
						name, i, rom.FormatEntry(got[i]), rom.FormatEntry(want[i])), errImageMismatch)
				}
			}
			cmd.Println("ok")
			return nil
		},
	}
	rootCmd.AddCommand(checkCmd)

	return rootCmd
}

func run(fs afero.Fs, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "crclut: ", 0)
	cmd := newRootCmd(fs, logger)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr))
}
