package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/AnshRaj112/goalledger-backend/internal/cli"
)

func main() {
	_ = godotenv.Load()

	name := path.Base(os.Args[0])
	// Exits early when invoked by the shell for completion (COMP_LINE set).
	completion(name).Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	cli.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the subcommands and their flags for shell completion.
// Install with COMP_INSTALL=1 ledgerctl.
func completion(name string) *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"store-path": predict.Files("*.json"),
			"currency":   predict.Set{"INR", "USD", "EUR", "GBP"},
			"plain":      predict.Nothing,
		},
	}
	for _, c := range cli.Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs.VisitAll(func(f *flag.Flag) {
			if f.Name == "o" {
				sub.Flags[f.Name] = predict.Files("*.json")
				return
			}
			sub.Flags[f.Name] = predict.Something
		})
		root.Sub[c.Name()] = sub
	}
	return root
}
