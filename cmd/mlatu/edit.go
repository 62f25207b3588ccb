package main

import (
	"errors"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mlatu-lang/mlatu"
	"github.com/mlatu-lang/mlatu/editor"
)

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]

	var rules []mlatu.Rule
	if _, err := os.Stat(path); err == nil {
		rules, err = loadFile(path)
		if err != nil {
			return err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var prelude []mlatu.Rule
	if !flagNoPrelude {
		var err error
		prelude, err = mlatu.Rules(mlatu.Prelude)
		if err != nil {
			return err
		}
	}
	p, err := policy(cmd)
	if err != nil {
		return err
	}

	requests := make(chan mlatu.Request)
	responses := make(chan mlatu.Response)
	done := make(chan error, 1)
	go func() {
		done <- mlatu.Thread(mlatu.BootRules(prelude, rules), requests, responses,
			mlatu.WithLogger(logger), mlatu.WithPolicy(p))
	}()
	client := mlatu.NewInteractive(requests, responses)

	_, err = tea.NewProgram(editor.New(path, rules, client), tea.WithAltScreen()).Run()
	client.Close()
	if terr := <-done; terr != nil && err == nil {
		err = terr
	}
	return err
}
