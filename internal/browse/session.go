package browse

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nrfta/listview-go"
	"github.com/nrfta/listview-go/controller"
)

const defaultSettleTimeout = 10 * time.Second

const helpText = `commands:
  n, next             next page
  p, prev             previous page
  page N              go to page N
  more [N]            open the Nth ellipsis (default 1)
  size N              set the page size
  filter KEY [V,...]  set a filter, or clear it when no value is given
  clear               clear all filters
  help                show this help
  q, quit             exit
`

var errUsage = errors.New("usage")

type action int

const (
	actionRender action = iota
	actionSkip
	actionQuit
)

// Session is an interactive loop over one list.
type Session[T any] struct {
	ctrl    *controller.Controller[T]
	in      *bufio.Scanner
	out     io.Writer
	title   string
	render  func(T) string
	settle  time.Duration
	updates chan struct{}
}

// NewSession returns a Session reading commands from in and writing to out.
// render formats one item as a single line.
func NewSession[T any](ctrl *controller.Controller[T], title string, in io.Reader, out io.Writer, render func(T) string) *Session[T] {
	return &Session[T]{
		ctrl:    ctrl,
		in:      bufio.NewScanner(in),
		out:     out,
		title:   title,
		render:  render,
		settle:  defaultSettleTimeout,
		updates: make(chan struct{}, 1),
	}
}

// Run mounts the controller and processes commands until quit, end of
// input or ctx cancellation.
func (s *Session[T]) Run(ctx context.Context) error {
	unsubscribe := s.ctrl.Subscribe(func(controller.View[T]) {
		select {
		case s.updates <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	if err := s.ctrl.Mount(ctx); err != nil {
		return fmt.Errorf("mount %s: %w", s.title, err)
	}
	s.print(s.wait(ctx))

	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			return s.in.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		act, err := s.exec(s.in.Text())
		switch {
		case err != nil:
			fmt.Fprintf(s.out, "error: %v\n", err)
		case act == actionQuit:
			return nil
		case act == actionRender:
			s.print(s.wait(ctx))
		}
	}
}

func (s *Session[T]) exec(line string) (action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return actionRender, nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	v := s.ctrl.View()

	switch cmd {
	case "q", "quit", "exit":
		return actionQuit, nil
	case "help", "?":
		fmt.Fprint(s.out, helpText)
		return actionSkip, nil
	case "n", "next":
		return actionRender, s.ctrl.SetPage(v.Page + 1)
	case "p", "prev":
		return actionRender, s.ctrl.SetPage(v.Page - 1)
	case "page":
		n, err := intArg(args, "page N")
		if err != nil {
			return actionSkip, err
		}
		return actionRender, s.ctrl.SetPage(n)
	case "size":
		n, err := intArg(args, "size N")
		if err != nil {
			return actionSkip, err
		}
		return actionRender, s.ctrl.SetPageSize(n)
	case "more":
		n := 1
		if len(args) > 0 {
			var err error
			if n, err = intArg(args, "more [N]"); err != nil {
				return actionSkip, err
			}
		}
		seen := 0
		for _, t := range v.Tokens {
			if t.IsEllipsis() {
				seen++
				if seen == n {
					return actionRender, s.ctrl.ClickToken(t)
				}
			}
		}
		return actionSkip, fmt.Errorf("no ellipsis %d on this page", n)
	case "filter":
		if len(args) == 0 {
			return actionSkip, fmt.Errorf("%w: filter KEY [V,...]", errUsage)
		}
		return actionRender, s.ctrl.SetFilter(args[0], parseFilterValue(strings.Join(args[1:], " ")))
	case "clear":
		return actionRender, s.ctrl.ClearAllFilters()
	default:
		return actionSkip, fmt.Errorf("unknown command %q, type help", cmd)
	}
}

// wait returns the first view whose fetch has resolved, or the latest
// view once the settle timeout passes.
func (s *Session[T]) wait(ctx context.Context) controller.View[T] {
	timer := time.NewTimer(s.settle)
	defer timer.Stop()

	for {
		v := s.ctrl.View()
		if !v.IsLoading {
			return v
		}
		select {
		case <-s.updates:
		case <-timer.C:
			return s.ctrl.View()
		case <-ctx.Done():
			return s.ctrl.View()
		}
	}
}

func (s *Session[T]) print(v controller.View[T]) {
	fmt.Fprintf(s.out, "%s  page %d/%d  %d items  %d per page\n",
		s.title, v.Page, max(1, v.TotalPages), v.TotalItems, v.PageSize)
	if v.Query.HasFilters() {
		fmt.Fprintf(s.out, "filters: %s\n", filterSummary(v.Query))
	}

	for i, item := range v.Items {
		fmt.Fprintf(s.out, "%4d. %s\n", v.Query.Offset()+i+1, s.render(item))
	}
	if len(v.Items) == 0 {
		fmt.Fprintln(s.out, "  (no results)")
	}

	if v.IsLoading {
		fmt.Fprintln(s.out, "loading…")
	}
	if v.Err != nil {
		fmt.Fprintf(s.out, "error: %v\n", v.Err)
	}

	parts := make([]string, 0, len(v.Tokens))
	for _, t := range v.Tokens {
		switch {
		case t.IsEllipsis():
			parts = append(parts, "…")
		case t.Number == v.Page:
			parts = append(parts, "["+strconv.Itoa(t.Number)+"]")
		default:
			parts = append(parts, strconv.Itoa(t.Number))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(s.out, "pages: %s\n", strings.Join(parts, " "))
	}
}

func filterSummary(q listview.Query) string {
	parts := make([]string, 0, len(q.FilterKeys()))
	for _, k := range q.FilterKeys() {
		v, _ := q.Filter(k)
		parts = append(parts, k+"="+strings.Join(v.Values(), ","))
	}
	return strings.Join(parts, " ")
}

func parseFilterValue(raw string) listview.FilterValue {
	values := strings.Split(raw, ",")
	if len(values) == 1 {
		return listview.Single(strings.TrimSpace(values[0]))
	}
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return listview.Multi(values...)
}

func intArg(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	return n, nil
}
