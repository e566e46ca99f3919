// Package validate is the thin driver for component C6: it runs
// model.ValidateOrganization and renders the resulting findings, exposing
// the exit-code semantics §6 specifies for the validate/plan/apply CLI
// operations (any ERROR aborts; WARNING/INFO never do).
package validate

import (
	"fmt"
	"io"

	"github.com/otterdog-go/otterdog/internal/model"
)

// Run validates org and returns its findings. Callers that go on to plan
// or apply must check ctx.HasErrors() first (§4.6).
func Run(org *model.Organization) *model.ValidationContext {
	return model.ValidateOrganization(org)
}

// Render writes every finding to w, one per line, INFO first is not
// required by §4.6 so findings are rendered in recorded order (the order
// Validate encountered them), which is itself deterministic because
// Organization.Validate walks every collection in a fixed order.
func Render(w io.Writer, ctx *model.ValidationContext) {
	for _, f := range ctx.Findings {
		fmt.Fprintln(w, f.String())
	}

	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", len(ctx.Errors()), len(ctx.Warnings()))
}
