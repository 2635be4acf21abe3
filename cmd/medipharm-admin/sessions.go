package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/medipharm/medipharm-console/config"
	"github.com/medipharm/medipharm-console/internal/bootstrap"
	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/medipharm/medipharm-console/internal/session"
)

// sessionRecord is what list-sessions knows about one browser session.
type sessionRecord struct {
	ID        string
	Keys      []string
	User      *domainauth.Identity
	ExpiresAt time.Time
}

// groupSessionKeys groups durable keys ("<prefix><id>:<name>") by session id.
// Keys outside the prefix or without a name are ignored.
func groupSessionKeys(prefix string, keys []string) map[string][]string {
	out := make(map[string][]string)
	for _, key := range keys {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		id, name, ok := strings.Cut(rest, ":")
		if !ok || id == "" || name == "" {
			continue
		}
		out[id] = append(out[id], key)
	}
	return out
}

type sessionStore interface {
	ports.KeyValueStore
	ports.KeyLister
}

func openSessionStore(cmdCtx *commandContext) (sessionStore, func(), error) {
	cfg := cmdCtx.Config
	if cfg.Session.Backend == config.SessionBackendMemory {
		return nil, nil, errors.New("SESSION_BACKEND=memory keeps sessions inside the console process; nothing to inspect")
	}
	infra, err := bootstrap.ConnectInfrastructure(cmdCtx.Ctx, &cfg, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if cerr := infra.Close(); cerr != nil {
			cmdCtx.Logger.Warn("close infrastructure failed", "error", cerr)
		}
	}
	store, ok := infra.KV.(sessionStore)
	if !ok {
		closer()
		return nil, nil, fmt.Errorf("session backend %q cannot list keys", cfg.Session.Backend)
	}
	return store, closer, nil
}

func loadSessions(ctx context.Context, store sessionStore, prefix string) ([]sessionRecord, error) {
	keys, err := store.Keys(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list session keys: %w", err)
	}
	grouped := groupSessionKeys(prefix, keys)

	records := make([]sessionRecord, 0, len(grouped))
	for id, sessKeys := range grouped {
		rec := sessionRecord{ID: id, Keys: sessKeys}
		ns := prefix + id + ":"
		if raw, err := store.Get(ctx, ns+session.KeyUser); err == nil {
			var user domainauth.Identity
			if json.Unmarshal([]byte(raw), &user) == nil {
				rec.User = &user
			}
		}
		if token, err := store.Get(ctx, ns+session.KeyAccessToken); err == nil {
			rec.ExpiresAt, _ = session.AccessTokenExpiry(token)
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func writeSessions(w io.Writer, records []sessionRecord, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "SESSION\tUSER\tROLE\tTOKEN EXPIRES\tKEYS"); err != nil {
		return err
	}
	for _, rec := range records {
		email, role := "-", "-"
		if rec.User != nil {
			email, role = rec.User.Email, string(rec.User.Role)
		}
		expires := "-"
		if !rec.ExpiresAt.IsZero() {
			expires = rec.ExpiresAt.UTC().Format(time.RFC3339)
			if !rec.ExpiresAt.After(now) {
				expires += " (expired)"
			}
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", rec.ID, email, role, expires, len(rec.Keys)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(w, "\n%d session(s)\n", len(records))
}

func runListSessions(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, closer, err := openSessionStore(cmdCtx)
	if err != nil {
		return err
	}
	defer closer()

	records, err := loadSessions(cmdCtx.Ctx, store, cmdCtx.Config.Session.KeyPrefix)
	if err != nil {
		return err
	}
	return writeSessions(os.Stdout, records, time.Now())
}

type clearOptions struct {
	SessionID string
	All       bool
	DryRun    bool
	Yes       bool
}

func parseClearFlags(args []string) (clearOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts clearOptions
	fs.StringVar(&opts.SessionID, "session", "", "Session id to log out")
	fs.BoolVar(&opts.All, "all", false, "Log out every session")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return clearOptions{}, err
	}

	opts.SessionID = strings.TrimSpace(opts.SessionID)
	switch {
	case opts.All && opts.SessionID != "":
		return clearOptions{}, errors.New("use either --session or --all, not both")
	case !opts.All && opts.SessionID == "":
		return clearOptions{}, errors.New("--session or --all is required")
	case opts.SessionID != "" && !session.ValidID(opts.SessionID):
		return clearOptions{}, fmt.Errorf("invalid session id %q", opts.SessionID)
	}
	return opts, nil
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearFlags(args)
	if err != nil {
		return err
	}

	store, closer, err := openSessionStore(cmdCtx)
	if err != nil {
		return err
	}
	defer closer()

	prefix := cmdCtx.Config.Session.KeyPrefix
	if opts.SessionID != "" {
		prefix += opts.SessionID + ":"
	}
	keys, err := store.Keys(cmdCtx.Ctx, prefix)
	if err != nil {
		return fmt.Errorf("list session keys: %w", err)
	}
	if len(keys) == 0 {
		return writef(os.Stdout, "No session keys match %q.\n", prefix)
	}

	if opts.DryRun {
		for _, k := range keys {
			if err := writef(os.Stdout, "would delete %s\n", k); err != nil {
				return err
			}
		}
		return nil
	}
	if !opts.Yes {
		if err := confirm(os.Stdin, os.Stdout, fmt.Sprintf("About to delete %d key(s) under %q.", len(keys), prefix)); err != nil {
			return err
		}
	}

	var errs []error
	deleted := 0
	for _, k := range keys {
		if err := store.Delete(cmdCtx.Ctx, k); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", k, err))
			continue
		}
		deleted++
	}
	if err := writef(os.Stdout, "Deleted %d key(s).\n", deleted); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// confirm asks for a y/yes answer on in.
func confirm(in io.Reader, out io.Writer, intro string) error {
	if err := writef(out, "%s\nContinue? [y/N]: ", intro); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	resp, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(resp)) {
	case "y", "yes":
		return nil
	default:
		return errors.New("aborted by user")
	}
}
