package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/yb60/cpu"
	"github.com/ezrec/yb60/emulator"
	"github.com/ezrec/yb60/internal"
	"github.com/ezrec/yb60/objfile"
)

// objectPath replaces the extension of a source path with '.obj'.
func objectPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".obj"
}

func (a *app) asmCommand() (cmd *cobra.Command) {
	var output string

	cmd = &cobra.Command{
		Use:   "asm <source.s>",
		Short: "Assemble a source file into an object file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			source := args[0]
			if len(output) == 0 {
				output = objectPath(source)
			}
			return a.assemble(cmd, source, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "object file, '-' for standard output")

	return
}

func (a *app) assemble(cmd *cobra.Command, source string, output string) (err error) {
	inf, err := os.Open(source)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{
		Verbose: a.config.Verbose,
		Logger:  a.logger.Named("asm"),
	}
	for equ, value := range internal.IterSeq2Sorted(emulator.NewEmulator().Defines()) {
		if asm.Verbose {
			asm.Logger.Debug("predefine", "equ", equ, "value", value)
		}
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		return
	}

	ouf := cmd.OutOrStdout()
	if output != "-" {
		var file *os.File
		file, err = os.Create(output)
		if err != nil {
			return
		}
		defer func() {
			cerr := file.Close()
			if err == nil {
				err = cerr
			}
		}()
		ouf = file
	}

	wr := objfile.NewWriter(ouf)
	for addr, data := range prog.Segments() {
		err = wr.Write(addr, data)
		if err != nil {
			return
		}
	}

	err = wr.Close()
	if err != nil {
		return
	}

	a.logger.Info("assembled", "source", source, "output", output, "opcodes", len(prog.Opcodes))
	return
}
