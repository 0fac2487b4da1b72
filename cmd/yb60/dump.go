package main

import (
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/yb60/objfile"
)

func (a *app) dumpCommand() (cmd *cobra.Command) {
	cmd = &cobra.Command{
		Use:   "dump <objfile>",
		Short: "Show the records of an object file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			path := args[0]
			inf, err := os.Open(path)
			if err != nil {
				return
			}
			defer inf.Close()

			records, err := objfile.Parse(inf)
			if err != nil {
				err = &ErrInputFile{Path: path, Err: err}
				return
			}

			output := cmd.OutOrStdout()
			printer := pp.New()
			printer.SetOutput(output)
			file, ok := output.(*os.File)
			printer.SetColoringEnabled(ok && term.IsTerminal(int(file.Fd())))

			_, err = printer.Println(records)
			return
		},
	}

	return
}
