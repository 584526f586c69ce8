package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reactor-labs/reactor/internal/scaffold"
)

// errIndexStale is returned by `state check` when the index has drifted.
var errIndexStale = errors.New("state index is out of date; run `state update`")

// runScaffold parses the verb before touching anything, so an unknown verb
// leaves the project exactly as it was.
func runScaffold(cmd *cobra.Command, kind scaffold.Kind, args []string) error {
	verb, err := scaffold.ParseVerb(kind, args[0])
	if err != nil {
		return err
	}
	var name string
	if len(args) > 1 {
		name = args[1]
	}
	if verb.NeedsName() && name == "" {
		return &scaffold.Error{Kind: scaffold.ErrInvalidName, Msg: fmt.Sprintf("%s %s needs a name", kind, verb)}
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if _, err := e.validator().Validate(); err != nil {
		return err
	}

	gen := scaffold.New(e.dir, e.renderer(), e.reporter)
	res, err := gen.Generate(kind, verb, name)
	if err != nil {
		return err
	}
	if res.Diff != "" {
		fmt.Fprint(cmd.OutOrStdout(), res.Diff)
		return errIndexStale
	}
	return nil
}
