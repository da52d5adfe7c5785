package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"

	"github.com/AnshRaj112/goalledger-backend/internal/models"
	"github.com/AnshRaj112/goalledger-backend/internal/services"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression against the document" }
func (*queryCmd) Usage() string {
	return `ledgerctl query <expression>

  Evaluates a JSONPath expression against the document (without password
  hashes) and prints the result as JSON. Examples:

    ledgerctl query '$.goals[?(@.userId == 1)].name'
    ledgerctl query '$.activities[-1:]'
`
}

func (*queryCmd) SetFlags(*flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "query takes exactly one expression")
		return subcommands.ExitUsageError
	}
	s, err := OpenStore(ctx)
	if err != nil {
		return fail("Error opening store %q: %v", *storePath, err)
	}
	defer s.Close()

	doc, err := services.Dump(ctx, s)
	if err != nil {
		return fail("Error reading document: %v", err)
	}
	result, err := Query(doc, f.Arg(0))
	if err != nil {
		return fail("Error evaluating %q: %v", f.Arg(0), err)
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fail("Error encoding result: %v", err)
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}

// Query evaluates expr over the generic JSON form of doc.
func Query(doc models.SanitizedDocument, expr string) (interface{}, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return jsonpath.Get(expr, generic)
}
