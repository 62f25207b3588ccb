package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/mlatu-lang/mlatu"
	"github.com/mlatu-lang/mlatu/engine"
)

func runRepl(cmd *cobra.Command, args []string) error {
	var prelude []mlatu.Rule
	if !flagNoPrelude {
		var err error
		prelude, err = mlatu.Rules(mlatu.Prelude)
		if err != nil {
			return err
		}
	}
	user, err := loadAll(args)
	if err != nil {
		return err
	}
	p, err := policy(cmd)
	if err != nil {
		return err
	}

	requests := make(chan mlatu.Request)
	responses := make(chan mlatu.Response)
	done := make(chan error, 1)
	go func() {
		done <- mlatu.Thread(mlatu.BootRules(prelude, user), requests, responses,
			mlatu.WithLogger(logger), mlatu.WithPolicy(p))
	}()
	client := mlatu.NewInteractive(requests, responses)
	defer client.Close()

	if oldState, err := terminal.MakeRaw(0); err == nil {
		defer terminal.Restore(0, oldState)
	} else {
		logger.Debug("not a terminal", zap.Error(err))
	}

	t := terminal.NewTerminal(os.Stdin, ">> ")
	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			fmt.Fprintln(t)
			return nil
		}
		if err != nil {
			return err
		}
		if err := handleLine(t, client, line); err != nil {
			if errors.Is(err, mlatu.ErrDisconnected) {
				if terr := <-done; terr != nil {
					return terr
				}
				return err
			}
			fmt.Fprintln(t, err)
		}
	}
}

// handleLine dispatches one input line: a leading ? is a query, a line
// containing -> defines rules, anything else is a term to evaluate.
func handleLine(w io.Writer, client *mlatu.Interactive, line string) error {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return nil
	case strings.HasPrefix(line, "?"):
		return handleQuery(w, client, strings.TrimPrefix(line, "?"))
	case strings.Contains(line, "->"):
		return handleRules(w, client, line)
	default:
		return handleEval(w, client, line)
	}
}

func handleRules(w io.Writer, client *mlatu.Interactive, line string) error {
	if !strings.HasSuffix(line, ";") {
		line += " ;"
	}
	rules, err := mlatu.Rules(line)
	if err != nil {
		return err
	}
	clauses, err := mlatu.Generate(rules)
	if err != nil {
		return err
	}
	if err := client.Assert(mlatu.ModuleUser, clauses, engine.First); err != nil {
		return err
	}
	fmt.Fprintf(w, "defined %d rule(s)\n", len(rules))
	return nil
}

func handleEval(w io.Writer, client *mlatu.Interactive, line string) error {
	terms, err := mlatu.Terms(line)
	if err != nil {
		return err
	}
	for _, t := range terms {
		out, err := client.Eval(t)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	}
	return nil
}

func handleQuery(w io.Writer, client *mlatu.Interactive, src string) error {
	p := mlatu.NewParser(src)
	goals, err := p.Terms()
	if err != nil {
		return err
	}
	for _, g := range goals {
		sols, err := client.Solve(g, p.Vars)
		if err != nil {
			return err
		}
		if len(sols) == 0 {
			fmt.Fprintln(w, "no")
			continue
		}
		for _, sol := range sols {
			printSolution(w, p.Vars, sol)
		}
	}
	return nil
}

func printSolution(w io.Writer, vars []mlatu.NamedVar, sol mlatu.Solution) {
	if len(vars) == 0 {
		fmt.Fprintln(w, "yes")
		return
	}
	parts := make([]string, 0, len(vars))
	for _, nv := range vars {
		parts = append(parts, fmt.Sprintf("%s = %s", nv.Name, sol[nv.Name]))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}
