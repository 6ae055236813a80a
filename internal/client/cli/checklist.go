package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/luggify/internal/client/models"
	"github.com/dmitrijs2005/luggify/internal/client/services"
	"github.com/dmitrijs2005/luggify/internal/client/session"
	"github.com/dmitrijs2005/luggify/internal/common"
)

var errUsage = errors.New("usage")

// Generate asks the backend for a new checklist, opens it and seeds the
// user's default items into it.
func (a *App) Generate(ctx context.Context, args []string) error {
	w := a.promptOut()
	city, err := argOrPrompt(a.reader, w, args, 0, "Enter city")
	if err != nil {
		return err
	}
	start, err := argOrPrompt(a.reader, w, args, 1, "Enter start date (YYYY-MM-DD)")
	if err != nil {
		return err
	}
	end, err := argOrPrompt(a.reader, w, args, 2, "Enter end date (YYYY-MM-DD)")
	if err != nil {
		return err
	}

	c, err := a.checklists.Generate(ctx, models.PackingRequest{City: city, StartDate: start, EndDate: end})
	if err != nil {
		return err
	}
	sess := session.New(a.checklists, c)
	a.setSession(sess)

	defaults, err := a.prefs.DefaultItems(ctx)
	if err != nil {
		a.logger.Warn(ctx, "default items unavailable", "error", err)
	}
	snap, added := sess.AddItems(ctx, defaults...)
	if added {
		fmt.Fprintf(a.out, "Added your default items; 'save' to push them.\n")
	}
	printSnapshot(a.out, snap)
	return nil
}

// List shows the local checklists at once and the merged list when it
// differs.
func (a *App) List(ctx context.Context) error {
	owner, err := a.prefs.OwnerID(ctx)
	if err != nil {
		return err
	}

	var painted []string
	res := a.checklists.GetMyChecklists(ctx, owner, func(local []models.Checklist) {
		painted = listLines(local)
		if len(local) > 0 {
			printList(a.out, local)
		}
	})
	if res.Err != nil {
		return res.Err
	}

	a.mu.Lock()
	a.lastList = res.Merged
	a.mu.Unlock()

	if res.Offline {
		if len(res.Merged) == 0 {
			printList(a.out, nil)
		}
		fmt.Fprintln(a.out, "(offline: showing local copies)")
		return nil
	}
	if slices.Equal(painted, listLines(res.Merged)) && len(res.Merged) > 0 {
		return nil
	}
	if len(painted) > 0 {
		fmt.Fprintln(a.out, "Updated from server:")
	}
	printList(a.out, res.Merged)
	return nil
}

// resolveSlug maps "#n" positions from the last list to slugs.
func (a *App) resolveSlug(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: expected a slug or list position", errUsage)
	}
	a.mu.Lock()
	slugs := make([]string, 0, len(a.lastList))
	for _, c := range a.lastList {
		slugs = append(slugs, c.Slug)
	}
	a.mu.Unlock()
	return pick(args[0], slugs)
}

func (a *App) Open(ctx context.Context, args []string) error {
	slug, err := a.resolveSlug(args)
	if err != nil {
		return err
	}
	sess, err := session.Open(ctx, a.checklists, slug)
	if err != nil {
		return err
	}
	a.setSession(sess)
	printSnapshot(a.out, sess.Snapshot())
	return nil
}

func (a *App) CloseChecklist(ctx context.Context) error {
	a.setSession(nil)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	slug, err := a.resolveSlug(args)
	if err != nil {
		return err
	}
	if sess := a.current(); sess != nil && sess.Slug() == slug {
		a.setSession(nil)
	}
	a.checklists.Delete(ctx, slug)

	a.mu.Lock()
	a.lastList = slices.DeleteFunc(a.lastList, func(c models.Checklist) bool { return c.Slug == slug })
	a.mu.Unlock()

	fmt.Fprintf(a.out, "Deleted %s\n", slug)
	return nil
}

// Sync pushes every dirty checklist and reloads the open one.
func (a *App) Sync(ctx context.Context) error {
	outcomes := a.checklists.SyncAllPending(ctx)
	if len(outcomes) == 0 {
		fmt.Fprintln(a.out, "Nothing to sync.")
		return nil
	}
	for _, o := range outcomes {
		switch {
		case o.Err == nil:
			fmt.Fprintf(a.out, "%s: synced\n", o.Slug)
		case errors.Is(o.Err, common.ErrSyncInProgress):
			fmt.Fprintf(a.out, "%s: already syncing\n", o.Slug)
		default:
			fmt.Fprintf(a.out, "%s: still pending (%v)\n", o.Slug, o.Err)
		}
	}
	a.reloadSession(ctx)
	return nil
}

// reloadSession restarts the open session from the stored copy.
func (a *App) reloadSession(ctx context.Context) {
	sess := a.current()
	if sess == nil {
		return
	}
	if c, ok := a.checklists.LocalChecklist(ctx, sess.Slug()); ok {
		a.setSession(session.New(a.checklists, c))
	}
}

func (a *App) Show(ctx context.Context) error {
	printSnapshot(a.out, a.current().Snapshot())
	return nil
}

func (a *App) itemArg(args []string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", fmt.Errorf("%w: expected an item name or #n", errUsage)
	}
	return pick(text, a.current().Snapshot().Visible)
}

func (a *App) requireVisible(item string) error {
	snap := a.current().Snapshot()
	if !snap.Checklist.IsVisible(item) {
		return fmt.Errorf("%w: %q is not on the list", common.ErrValidation, item)
	}
	return nil
}

func (a *App) Check(ctx context.Context, args []string) error {
	item, err := a.itemArg(args)
	if err != nil {
		return err
	}
	if err := a.requireVisible(item); err != nil {
		return err
	}
	snap := a.current().ToggleChecked(ctx, item)
	mark := "unchecked"
	if snap.Checked(item) {
		mark = "checked"
	}
	fmt.Fprintf(a.out, "%s %s\n", item, mark)
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	item, err := a.itemArg(args)
	if err != nil {
		return err
	}
	if err := a.requireVisible(item); err != nil {
		return err
	}
	a.current().RemoveItem(ctx, item)
	fmt.Fprintf(a.out, "Removed %s\n", item)
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("%w: expected item text", errUsage)
	}
	if _, ok := a.current().AddItem(ctx, text); !ok {
		fmt.Fprintf(a.out, "%s is already on the list\n", text)
		return nil
	}
	fmt.Fprintf(a.out, "Added %s\n", text)
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	a.current().ResetChecked(ctx)
	fmt.Fprintln(a.out, "All items unchecked")
	return nil
}

// Save pushes the open checklist. A push that fails for connectivity is
// reported as pending, not as an error: the edits are already stored.
func (a *App) Save(ctx context.Context) error {
	snap, err := a.current().SaveState(ctx)
	switch {
	case err == nil:
		fmt.Fprintln(a.out, "Saved.")
	case services.IsPending(err):
		fmt.Fprintln(a.out, "Saved locally; run 'sync' when back online.")
	case errors.Is(err, common.ErrSyncInProgress):
		fmt.Fprintln(a.out, "A save is already in progress.")
	default:
		return err
	}
	a.logger.Debug(ctx, "save finished", "slug", snap.Checklist.Slug, "state", snap.State)
	return nil
}

// Share saves an owned copy of the open checklist and switches to it.
func (a *App) Share(ctx context.Context) error {
	owner, err := a.prefs.OwnerID(ctx)
	if err != nil {
		return err
	}
	snap := a.current().Snapshot()
	saved, err := a.checklists.SaveOwned(ctx, snap.Checklist, owner)
	if err != nil {
		return err
	}
	a.setSession(session.New(a.checklists, saved))
	fmt.Fprintf(a.out, "Saved as %s for owner %s\n", saved.Slug, owner)
	return nil
}

func (a *App) Weather(ctx context.Context) error {
	updated, err := a.checklists.RefreshForecast(ctx, a.current().Slug())
	if err != nil {
		return err
	}
	a.setSession(session.New(a.checklists, updated))
	printForecast(a.out, updated.DailyForecast)
	return nil
}

func (a *App) Cities(ctx context.Context, args []string) error {
	cities, err := a.checklists.SearchCities(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(cities) == 0 {
		fmt.Fprintln(a.out, "No cities found.")
	}
	for _, c := range cities {
		fmt.Fprintln(a.out, c.FullName)
	}
	return nil
}
