package cli

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/AnshRaj112/goalledger-backend/internal/services"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the document without password hashes" }
func (*exportCmd) Usage() string {
	return `ledgerctl export [-o <file>]

  Writes the whole ledger document as JSON with credential hashes removed.
  Prints to stdout when -o is not given.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenStore(ctx)
	if err != nil {
		return fail("Error opening store %q: %v", *storePath, err)
	}
	defer s.Close()

	doc, err := services.Dump(ctx, s)
	if err != nil {
		return fail("Error reading document: %v", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fail("Error encoding document: %v", err)
	}
	data = append(data, '\n')

	if c.output == "" {
		os.Stdout.Write(data)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, data, 0o600); err != nil {
		return fail("Error writing %q: %v", c.output, err)
	}
	return subcommands.ExitSuccess
}
