// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/ezrec/yb60/config"
	"github.com/ezrec/yb60/emulator"
	"github.com/ezrec/yb60/monitor"
)

type app struct {
	viper  *viper.Viper
	config config.Config
	logger hclog.Logger
	closer io.Closer
}

func newRootCommand() (root *cobra.Command) {
	a := &app{viper: config.New()}
	var config_file string

	root = &cobra.Command{
		Use:   "yb60 [objfile]",
		Short: "YB-60 RV32 monitor and emulator",
		Long: `yb60 loads an optional object file into the YB-60 memory, then
runs the interactive monitor on standard input.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			err = config.BindFlags(a.viper, cmd.Flags())
			if err != nil {
				return
			}
			err = config.Load(a.viper, config_file)
			if err != nil {
				return
			}

			a.config = config.Decode(a.viper)
			a.logger, a.closer = newLogger(a.config)
			return
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.closer.Close()
		},
		RunE: a.runMonitor,
	}

	root.SilenceErrors = true
	root.SilenceUsage = true

	flags := root.PersistentFlags()
	flags.StringVar(&config_file, "config", "", "configuration file")
	config.AddFlags(flags)

	root.AddCommand(a.asmCommand())
	root.AddCommand(a.dumpCommand())

	return
}

// lineReader picks a line editor for terminals, and plain reads otherwise.
func (a *app) lineReader(input io.Reader, output io.Writer) monitor.LineReader {
	file, ok := input.(*os.File)
	if ok && term.IsTerminal(int(file.Fd())) {
		pr, err := NewPromptReader(int(file.Fd()))
		if err == nil {
			return pr
		}
		a.logger.Warn("line editor unavailable", "error", err)
	}

	return monitor.NewBufioReader(input, output)
}

func (a *app) runMonitor(cmd *cobra.Command, args []string) (err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = a.config.Verbose
	emu.StepLimit = a.config.StepLimit
	emu.SetLogger(a.logger.Named("emulator"))

	var path string
	if len(args) > 0 {
		path = args[0]
		err = emu.LoadFile(path)
		if err != nil {
			err = &ErrInputFile{Path: path, Err: err}
			return
		}
	}

	output := cmd.OutOrStdout()
	mon := monitor.NewMonitor(emu, a.lineReader(cmd.InOrStdin(), output), output)
	mon.Verbose = a.config.Verbose
	mon.Logger = a.logger.Named("monitor")
	mon.Prompt = a.config.Prompt

	if a.config.Watch && len(path) != 0 {
		reload, watcher, werr := watchFile(path, a.logger.Named("watch"))
		if werr != nil {
			a.logger.Warn("unable to watch", "path", path, "error", werr)
		} else {
			defer watcher.Close()
			mon.Reload = reload
		}
	}

	err = mon.Run()
	return
}

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
