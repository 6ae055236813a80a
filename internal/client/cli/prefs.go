package cli

import (
	"context"
	"fmt"
	"strings"
)

// Defaults lists, adds or removes the items seeded into new checklists.
func (a *App) Defaults(ctx context.Context, args []string) error {
	var (
		items []string
		err   error
	)
	switch {
	case len(args) == 0 || args[0] == "list":
		items, err = a.prefs.DefaultItems(ctx)
	case args[0] == "add" && len(args) > 1:
		items, err = a.prefs.AddDefaultItem(ctx, strings.Join(args[1:], " "))
	case args[0] == "remove" && len(args) > 1:
		items, err = a.prefs.RemoveDefaultItem(ctx, strings.Join(args[1:], " "))
	default:
		return fmt.Errorf("%w: defaults [list | add <item> | remove <item>]", errUsage)
	}
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No default items.")
		return nil
	}
	fmt.Fprintf(a.out, "Default items: %s\n", strings.Join(items, ", "))
	return nil
}

// Owner prints the owner id or replaces it.
func (a *App) Owner(ctx context.Context, args []string) error {
	if len(args) > 0 {
		if err := a.prefs.SetOwnerID(ctx, strings.Join(args, " ")); err != nil {
			return err
		}
	}
	id, err := a.prefs.OwnerID(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Owner id: %s\n", id)
	return nil
}
