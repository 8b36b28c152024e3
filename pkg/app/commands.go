package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shashiranjanraj/salesdesk/database/seeders"
)

// Seed runs every registered seeder.
func (a *Application) Seed(ctx context.Context, out io.Writer) error {
	return seeders.RunAll(ctx, a.Services, out)
}

// IssueToken signs a token for the existing user with email.
func (a *Application) IssueToken(ctx context.Context, email string) (string, error) {
	return a.Services.Users.IssueFor(ctx, email)
}

// PrintRoutes writes the route table to out.
func PrintRoutes(out io.Writer) error {
	infos := RouteTable()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No named routes registered.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
