package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/booky/internal/client/view"
)

type screen interface {
	run(ctx context.Context, action string, args []string) error
	close()
}

// resourceScreen drives one synchronizer from REPL actions and prints the
// resulting view. Failures are already reported by the synchronizer's
// notifier, so run only returns them.
type resourceScreen[T any, I any, C view.Criteria] struct {
	sync     *view.Synchronizer[T, I, C]
	reader   *bufio.Reader
	out      io.Writer
	input    func(ctx context.Context) (I, error)
	criteria func() (C, error)
	describe func(C) string
	row      func(T) string
	extra    map[string]func(ctx context.Context, args []string) error
}

func (s *resourceScreen[T, I, C]) run(ctx context.Context, action string, args []string) error {
	switch action {
	case "list":
		if err := s.sync.Load(ctx); err != nil {
			return err
		}

	case "search":
		c, err := s.criteria()
		if err != nil {
			return err
		}
		if err := s.sync.Search(ctx, c); err != nil {
			return err
		}
		if c.IsEmpty() {
			return nil
		}

	case "clear":
		if err := s.sync.ClearSearch(ctx); err != nil {
			return err
		}

	case "refresh":
		if err := s.sync.Refresh(ctx); err != nil {
			return err
		}

	case "create":
		in, err := s.input(ctx)
		if err != nil {
			return err
		}
		if _, err := s.sync.Create(ctx, in); err != nil {
			return err
		}

	case "update":
		id, err := s.id(args)
		if err != nil {
			return err
		}
		in, err := s.input(ctx)
		if err != nil {
			return err
		}
		if _, err := s.sync.Update(ctx, id, in); err != nil {
			return err
		}

	case "delete":
		id, err := s.id(args)
		if err != nil {
			return err
		}
		if err := s.sync.Delete(ctx, id); err != nil {
			return err
		}

	case "show":
		id, err := s.id(args)
		if err != nil {
			return err
		}
		rec, err := s.sync.Details(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.row(rec))
		return nil

	default:
		if fn, ok := s.extra[action]; ok {
			return fn(ctx, args)
		}
		fmt.Fprintf(s.out, "Unknown action %q for %s\n", action, s.sync.Kind())
		return nil
	}

	s.print()
	return nil
}

func (s *resourceScreen[T, I, C]) close() {
	s.sync.Close()
}

func (s *resourceScreen[T, I, C]) print() {
	v := s.sync.Snapshot()

	header := fmt.Sprintf("%s: %d record(s)", s.sync.Kind(), len(v.Records))
	if v.Mode == view.ModeSearch {
		header += " matching " + s.describe(v.Criteria)
	}
	if v.Stale {
		header += " [may be out of date, run refresh to update]"
	}
	fmt.Fprintln(s.out, header)

	for _, rec := range v.Records {
		fmt.Fprintln(s.out, "  "+s.row(rec))
	}
}

// id takes the record id from the command line or asks for it.
func (s *resourceScreen[T, I, C]) id(args []string) (int64, error) {
	if len(args) > 0 {
		if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
			return id, nil
		}
		fmt.Fprintf(s.out, "%q is not an id\n", args[0])
	}
	id, err := GetInt64(s.reader, "Enter "+s.sync.Kind().Singular()+" id", s.out, false)
	if err != nil {
		return 0, err
	}
	return *id, nil
}

func (a *App) hasScreen(name string) bool {
	_, ok := a.screens[name]
	return ok
}

// Screen runs one action on the named screen once the gate lets it through.
func (a *App) Screen(ctx context.Context, name, action string, args []string) error {
	s, ok := a.screens[name]
	if !ok {
		return fmt.Errorf("unknown screen %q", name)
	}
	if err := a.gate.Enter(ctx); err != nil {
		fmt.Fprintln(a.out, signInHint)
		return err
	}
	return s.run(ctx, action, args)
}
