package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/idilsaglam/laptopstore/internal/client"
	"github.com/idilsaglam/laptopstore/internal/config"
	"github.com/idilsaglam/laptopstore/internal/devserver"
	"github.com/idilsaglam/laptopstore/internal/logging"
	"github.com/idilsaglam/laptopstore/internal/model"
	"github.com/idilsaglam/laptopstore/internal/tui"
	"github.com/idilsaglam/laptopstore/internal/ui"
	"github.com/idilsaglam/laptopstore/internal/view"
)

// Options carry the resolved config and output streams into every subcommand.
type Options struct {
	Config config.Config
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
}

func (o Options) client() *client.Client {
	return client.New(o.Config.BaseURL, client.WithLogger(o.Logger))
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		args = []string{"ui"}
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ui":
		if err := tui.Run(ctx, opt.client(), opt.Logger); err != nil {
			ui.Fail(opt.Stderr, "tui: "+err.Error())
			return 1
		}
		return 0

	case "ls":
		return doList(ctx, a, opt)

	case "get":
		id, code := parseID(opt, "get", a)
		if code != 0 {
			return code
		}
		return doGet(ctx, id, opt)

	case "add":
		if len(a) != 6 {
			ui.Fail(opt.Stderr, "usage: laptopstore add <name> <price> <brand> <storage> <ram> <processor>")
			return 2
		}
		return doSave(ctx, 0, a, opt)

	case "update":
		if len(a) != 7 {
			ui.Fail(opt.Stderr, "usage: laptopstore update <id> <name> <price> <brand> <storage> <ram> <processor>")
			return 2
		}
		id, code := parseID(opt, "update", a[:1])
		if code != 0 {
			return code
		}
		return doSave(ctx, id, a[1:], opt)

	case "rm":
		id, code := parseID(opt, "rm", a)
		if code != 0 {
			return code
		}
		return doRemove(ctx, id, opt)

	case "search":
		if len(a) != 2 {
			ui.Fail(opt.Stderr, "usage: laptopstore search <name|price|brand> <value>")
			return 2
		}
		return doSearch(ctx, a[0], a[1], opt)

	case "serve":
		return doServe(ctx, a, opt)
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `laptopstore - laptop catalogue client

Usage:
  laptopstore [flags] <subcommand> [args]

Flags:
  -url <base>     API root (env %s, default %s)
  -log <file>     diagnostic log file (env %s)
  -debug          log every request
  -theme <name>   classic | neon | mono

Subcommands:
  ui                                  Interactive form and list (default)
  ls [-name s] [-price p] [-brand b]  List laptops, filtered locally
  get <id>                            Show one laptop
  add <name> <price> <brand> <storage> <ram> <processor>
  update <id> <name> <price> <brand> <storage> <ram> <processor>
  rm <id>                             Delete a laptop
  search <name|price|brand> <value>   Server-side search on one field
  serve [-addr a] [-data file]        Run a local stand-in backend

Examples:
  laptopstore add ProBook 900 HP 512GB 16GB i5
  laptopstore ls -brand hp -price 1000
  laptopstore rm 2
`, config.EnvBaseURL, client.DefaultBaseURL, config.EnvLogFile)
}

func parseID(opt Options, cmd string, a []string) (int64, int) {
	if len(a) != 1 {
		ui.Fail(opt.Stderr, "usage: laptopstore "+cmd+" <id>")
		return 0, 2
	}
	id, err := strconv.ParseInt(a[0], 10, 64)
	if err != nil || id <= 0 {
		ui.Fail(opt.Stderr, cmd+": not a valid id: "+a[0])
		return 0, 2
	}
	return id, 0
}

// -------------- subcommand impls ----------------

func doList(ctx context.Context, args []string, opt Options) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(opt.Stderr)
	var s view.Search
	fs.StringVar(&s.Name, "name", "", "name contains (case-insensitive)")
	fs.StringVar(&s.Price, "price", "", "maximum price")
	fs.StringVar(&s.Brand, "brand", "", "brand contains (case-insensitive)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	laptops, err := opt.client().List(ctx)
	if err != nil {
		ui.Fail(opt.Stderr, "list: "+err.Error())
		return 1
	}
	filtered := view.Filter(laptops, s)

	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d",
		t.Title.Render("Laptops"),
		t.Accent.Render("Showing"), len(filtered),
		t.Muted.Render("of"), len(laptops),
	)
	lines := append([]string{header, ""}, ui.LaptopLines(filtered)...)
	fmt.Fprintln(opt.Stdout, ui.Panel(lines))
	return 0
}

func doGet(ctx context.Context, id int64, opt Options) int {
	l, err := opt.client().Get(ctx, id)
	if err != nil {
		ui.Fail(opt.Stderr, "get: "+err.Error())
		return 1
	}
	fmt.Fprintln(opt.Stdout, ui.Panel(ui.LaptopDetail(l)))
	return 0
}

// doSave creates a laptop, or updates it when id is non-zero.
func doSave(ctx context.Context, id int64, fields []string, opt Options) int {
	f := view.Form{
		Name:      strings.TrimSpace(fields[0]),
		Price:     strings.TrimSpace(fields[1]),
		Brand:     strings.TrimSpace(fields[2]),
		Storage:   strings.TrimSpace(fields[3]),
		RAM:       strings.TrimSpace(fields[4]),
		Processor: strings.TrimSpace(fields[5]),
	}
	l, err := f.Laptop()
	if err != nil {
		ui.Fail(opt.Stderr, err.Error())
		return 2
	}

	c := opt.client()
	var out model.Laptop
	if id == 0 {
		out, err = c.Create(ctx, l)
	} else {
		l.ID = id
		out, err = c.Update(ctx, id, l)
	}
	if err != nil {
		ui.Fail(opt.Stderr, "save: "+err.Error())
		return 1
	}
	if id == 0 {
		ui.OK(opt.Stdout, fmt.Sprintf("added laptop %d", out.ID))
	} else {
		ui.OK(opt.Stdout, fmt.Sprintf("updated laptop %d", id))
	}
	return 0
}

func doRemove(ctx context.Context, id int64, opt Options) int {
	if err := opt.client().Delete(ctx, id); err != nil {
		ui.Fail(opt.Stderr, "rm: "+err.Error())
		return 1
	}
	ui.OK(opt.Stdout, fmt.Sprintf("removed laptop %d", id))
	return 0
}

func doSearch(ctx context.Context, field, value string, opt Options) int {
	c := opt.client()
	var (
		laptops []model.Laptop
		err     error
	)
	switch field {
	case "name":
		laptops, err = c.SearchByName(ctx, value)
	case "brand":
		laptops, err = c.SearchByBrand(ctx, value)
	case "price":
		p, perr := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if perr != nil {
			ui.Fail(opt.Stderr, "search: price is not a number: "+value)
			return 2
		}
		laptops, err = c.SearchByPrice(ctx, p)
	default:
		ui.Fail(opt.Stderr, "search: unknown field "+field+" (want name, price or brand)")
		return 2
	}
	if err != nil {
		ui.Fail(opt.Stderr, "search: "+err.Error())
		return 1
	}
	fmt.Fprintln(opt.Stdout, ui.Panel(ui.LaptopLines(laptops)))
	return 0
}

func doServe(ctx context.Context, args []string, opt Options) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(opt.Stderr)
	addr := fs.String("addr", opt.Config.Addr, "listen address")
	data := fs.String("data", opt.Config.DataFile, "JSON file to seed from and write back to")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	store := devserver.NewStore(nil)
	if *data != "" {
		var err error
		store, err = devserver.OpenStore(*data)
		if err != nil {
			ui.Fail(opt.Stderr, "serve: "+err.Error())
			return 1
		}
	}

	level := slog.LevelInfo
	if opt.Config.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(opt.Stderr, level)
	err := devserver.ListenAndServe(ctx, *addr, devserver.NewRouter(store, logger), logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		ui.Fail(opt.Stderr, "serve: "+err.Error())
		return 1
	}
	return 0
}
