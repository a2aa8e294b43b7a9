// Command upeval is an ambient example CLI built to exercise the uplc
// library end to end — listing the builtin catalogue and running a
// handful of small, hand-written demo terms through any of the three
// registered evaluators. It is deliberately not a production harness: it
// never deserializes a real compiled script (CBOR/flat deserialization and
// script-context construction are out of scope, per spec.md's Non-goals),
// it only ever runs terms built directly in Go.
package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	_ "github.com/uplc-eval/uplc/go/interpreter/cek"
	_ "github.com/uplc-eval/uplc/go/interpreter/hybrid"
	_ "github.com/uplc-eval/uplc/go/interpreter/jit"
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/builtin"
	"github.com/uplc-eval/uplc/go/uplc/cost"
	"github.com/uplc-eval/uplc/go/uplc/tracelog"
)

func main() {
	app := &cli.App{
		Name:  "upeval",
		Usage: "exercise the uplc evaluators against the builtin catalogue and a few demo terms",
		Commands: []*cli.Command{
			listBuiltinsCommand,
			demoCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var listBuiltinsCommand = &cli.Command{
	Name:  "list-builtins",
	Usage: "print every registered builtin, its argument count, and its force count",
	Action: func(c *cli.Context) error {
		table := builtin.NewDefaultTable()
		ids := maps.Keys(table)
		slices.SortFunc(ids, func(a, b uplc.BuiltinID) int { return int(a) - int(b) })

		w := tablewriter.NewWriter(os.Stdout)
		w.SetHeader([]string{"ID", "Name", "NArgs", "NForces"})
		for _, id := range ids {
			entry := table[id]
			w.Append([]string{
				fmt.Sprintf("%d", id),
				id.String(),
				fmt.Sprintf("%d", entry.NArgs),
				fmt.Sprintf("%d", entry.NForces),
			})
		}
		w.Render()
		return nil
	},
}

var demoCommand = &cli.Command{
	Name:  "demo",
	Usage: "run one of the built-in demo terms against an evaluator",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "evaluator", Value: "hybrid", Usage: "cek, jit, or hybrid"},
		&cli.StringFlag{Name: "name", Value: "add", Usage: "add, identity, or case-dispatch"},
		&cli.Int64Flag{Name: "cpu-budget", Value: 10_000_000},
		&cli.Int64Flag{Name: "mem-budget", Value: 10_000_000},
	},
	Action: func(c *cli.Context) error {
		term, ok := demoTerms[c.String("name")]
		if !ok {
			return fmt.Errorf("unknown demo %q (want one of: %v)", c.String("name"), maps.Keys(demoTerms))
		}
		interp, err := uplc.NewInterpreter(c.String("evaluator"))
		if err != nil {
			return err
		}
		budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: uplc.Gas(c.Int64("cpu-budget")), Mem: uplc.Gas(c.Int64("mem-budget"))})
		logger := &tracelog.SliceLogger{}

		v, err := interp.Run(term, budget, logger, cost.DefaultMachineParameters())
		for _, msg := range logger.Messages {
			fmt.Fprintf(c.App.Writer, "trace: %s\n", msg)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "result: %+v\n", v)
		fmt.Fprintln(c.App.Writer, tracelog.FormatBudgetSummary(int64(budget.Remaining().CPU), int64(budget.Remaining().Mem)))
		return nil
	},
}

var demoTerms = map[string]uplc.Term{
	"add": uplc.Apply{
		Fun: uplc.Apply{
			Fun: uplc.Builtin{ID: uplc.AddInteger},
			Arg: uplc.Const{Value: uplc.NewInteger(2)},
		},
		Arg: uplc.Const{Value: uplc.NewInteger(3)},
	},
	"identity": uplc.Apply{
		Fun: uplc.LamAbs{Body: uplc.Var{Index: 0}},
		Arg: uplc.Const{Value: uplc.NewInteger(42)},
	},
	"case-dispatch": uplc.Case{
		Scrutinee: uplc.Constr{Tag: 1, Fields: []uplc.Term{uplc.Const{Value: uplc.NewInteger(7)}}},
		Branches: []uplc.Term{
			uplc.Error{},
			uplc.LamAbs{Body: uplc.Var{Index: 0}},
		},
	},
}
