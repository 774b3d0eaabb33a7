package system

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
)

// ValidateCmd scans stored habits and entries for inconsistencies
type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := ctx.Tracker.Check()
	if err != nil {
		return err
	}

	ctx.Println(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}
