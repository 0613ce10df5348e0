// multiselect owns the X11 PRIMARY selection on behalf of the user and
// serves one of several remembered strings per paste, instead of a single
// string.
//
// usage: multiselect [-d] [-k F1|F2|F5] [-f] [-c] [-i] [-t SEP] [-p]
//                     [-e PROG] [-status] [-config PATH] [-v] [-h]
//                     (- | STRING ...)
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jezek/xgb/xproto"

	"multiselect/internal/cfg"
	"multiselect/internal/controller"
	"multiselect/internal/errs"
	"multiselect/internal/helper"
	"multiselect/internal/protocol"
	"multiselect/internal/render"
	"multiselect/internal/selection"
	"multiselect/internal/statusui"
	"multiselect/internal/x11"
)

const (
	maxLineBytes = 500
	menuWidth    = 400
	menuRowH     = 16
	menuHeaderH  = 16
	flashWidth   = 300
	flashHeight  = 24
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = printHelp

	daemon := flag.Bool("d", false, "run as a daemon, listening for the hotkey")
	hotkey := flag.String("k", "", "enable hotkey F1, F2, or F5; implies -d")
	force := flag.Bool("f", false, "paste without a prior click; implies -d -k F1")
	continuous := flag.Bool("c", false, "continuously capture PRIMARY from other owners; implies -d")
	immediate := flag.Bool("i", false, "paste immediately on cursor movement")
	sepFlag := flag.String("t", "", "single-byte display/payload separator")
	paste := flag.Bool("p", false, "paste mode: no synthetic middle-click")
	helperProg := flag.String("e", "", "external helper program")
	statusFlag := flag.Bool("status", false, "show a debug status view")
	configPath := flag.String("config", "", "override config file location")
	verbose := flag.Bool("v", false, "log to stderr in addition to the log file")
	flag.Parse()

	mode := protocol.ModeFlags{
		Daemon:     *daemon || *hotkey != "" || *force || *continuous,
		Continuous: *continuous,
		Immediate:  *immediate,
		Click:      !*paste,
		Force:      *force,
		HotkeyF1:   *force || *hotkey == "F1",
		HotkeyF2:   *hotkey == "F2",
		HotkeyF5:   *hotkey == "F5",
	}
	if *hotkey != "" && *hotkey != "F1" && *hotkey != "F2" && *hotkey != "F5" {
		fmt.Fprintf(os.Stderr, "invalid -k value %q: must be F1, F2, or F5\n", *hotkey)
		return 1
	}

	confPath := *configPath
	if confPath == "" {
		confPath = cfg.DefaultPath()
	}
	conf, err := cfg.Load(confPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return 1
	}

	sep, err := resolveSeparator(*sepFlag, conf.Separator)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger, closeLog := setupLogger(conf, *verbose)
	defer closeLog()

	list := selection.New(sep)
	if err := ingestArgs(list, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	conn, err := x11.NewConn("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open X display:", err)
		return 1
	}
	defer conn.Close()

	running, err := conn.FindRunningInstance()
	if err != nil {
		logger.Printf("singleton scan: %v", err)
	} else if running {
		fmt.Fprintln(os.Stderr, errs.ErrSingletonClash)
		return 1
	}

	atoms, err := internAtoms(conn)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to intern atoms:", err)
		return 1
	}

	menuWindow, flashWindow, err := createWindows(conn)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create windows:", err)
		return 1
	}
	defer conn.DestroyWindow(menuWindow)
	defer conn.DestroyWindow(flashWindow)

	sentinelName := x11.SentinelForeground
	if mode.Daemon {
		sentinelName = x11.SentinelDaemon
	}
	if err := conn.SetWindowName(menuWindow, sentinelName); err != nil {
		logger.Printf("set window name: %v", err)
	}

	engine := protocol.NewEngine(atoms, menuWindow, mode.Click)

	renderer, err := render.NewSimpleRenderer(conn)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create renderer:", err)
		return 1
	}
	defer renderer.Close()

	helperPath := *helperProg
	if helperPath == "" {
		helperPath = conf.HelperPath
	}
	h := helper.New(helperPath)

	var statusCh chan<- statusui.Snapshot
	if *statusFlag {
		model, ch := statusui.New()
		statusCh = ch
		prog := tea.NewProgram(model)
		go func() {
			if err := prog.Start(); err != nil {
				logger.Printf("status view: %v", err)
			}
		}()
	}

	ctl := controller.New(controller.Options{
		Conn:        conn,
		Engine:      engine,
		List:        list,
		Renderer:    renderer,
		Helper:      h,
		Mode:        mode,
		Atoms:       atoms,
		MenuWindow:  menuWindow,
		FlashWindow: flashWindow,
		Config:      conf,
		StatusCh:    statusCh,
		Log:         logger,
	})

	// Start must run before anything that calls conn.Now() (Acquire
	// included): Now's time-for-now trick depends on the poll goroutine
	// to recognize its PropertyNotify.
	conn.Start()

	if err := acquireOnStartup(conn, ctl, atoms, mode); err != nil {
		fmt.Fprintln(os.Stderr, "failed to acquire PRIMARY selection:", err)
		return 1
	}
	defer ctl.Disown()

	grabHotkeys(conn, logger, mode)

	ctl.FlashStartup()
	if mode.Force {
		ctl.ShowWindow()
	}

	watcher, err := cfg.Watch(confPath)
	if err != nil {
		logger.Printf("config watch disabled: %v", err)
	} else {
		defer watcher.Close()
	}
	var cfgChanges <-chan cfg.Config
	if watcher != nil {
		cfgChanges = watcher.Changes
	}

	if err := ctl.Run(cfgChanges); err != nil {
		logger.Printf("fatal event loop error: %v", err)
		return 1
	}
	return 0
}

// resolveSeparator applies -t's value if given, otherwise falls back to the
// config file's separator (§4.8), otherwise the selection package's own
// zero-value default.
func resolveSeparator(flagVal, confVal string) (byte, error) {
	if flagVal != "" {
		return parseSeparator(flagVal)
	}
	return parseSeparator(confVal)
}

func parseSeparator(s string) (byte, error) {
	if s == "" {
		return 0, nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("-t separator must be exactly one byte, got %q", s)
	}
	if s[0] == 0 {
		return 0, fmt.Errorf("-t separator must not be NUL")
	}
	return s[0], nil
}

// ingestArgs loads the initial SelectionList contents: either "-" (read
// newline-delimited strings from stdin, stripping the trailing newline and
// truncating any line over maxLineBytes) or up to selection.MaxEntries
// literal strings.
func ingestArgs(list *selection.List, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected \"-\" or at least one string argument")
	}
	if len(args) == 1 && args[0] == "-" {
		reader := bufio.NewReader(os.Stdin)
		for !list.Full() {
			line, err := reader.ReadString('\n')
			if line == "" && err != nil {
				break
			}
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if len(line) > maxLineBytes {
				line = line[:maxLineBytes]
			}
			list.Add(line)
			if err != nil {
				break
			}
		}
		return nil
	}
	if len(args) > selection.MaxEntries {
		return fmt.Errorf("too many strings: got %d, max is %d", len(args), selection.MaxEntries)
	}
	for _, a := range args {
		list.Add(a)
	}
	return nil
}

func internAtoms(conn *x11.Conn) (protocol.Atoms, error) {
	var atoms protocol.Atoms
	var err error
	if atoms.Primary, err = conn.Atom(x11.AtomNamePrimary); err != nil {
		return atoms, err
	}
	if atoms.String, err = conn.Atom(x11.AtomNameString); err != nil {
		return atoms, err
	}
	if atoms.UTF8String, err = conn.Atom(x11.AtomNameUTF8String); err != nil {
		return atoms, err
	}
	if atoms.Targets, err = conn.Atom(x11.AtomNameTargets); err != nil {
		return atoms, err
	}
	if atoms.Firefox, err = conn.Atom(x11.AtomNameFirefox); err != nil {
		return atoms, err
	}
	if atoms.XtSelection1, err = conn.Atom(x11.AtomNameXtSelection1); err != nil {
		return atoms, err
	}
	if atoms.CutBuffer0, err = conn.Atom(x11.AtomNameCutBuffer0); err != nil {
		return atoms, err
	}
	return atoms, nil
}

func createWindows(conn *x11.Conn) (menu, flashWin xproto.Window, err error) {
	p, perr := conn.QueryPointer()
	if perr != nil {
		p = x11.Point{}
	}
	menuHeight := uint16(menuHeaderH + menuRowH*selection.MaxEntries)
	menu, err = conn.CreateOverrideWindow(p.X, p.Y, menuWidth, menuHeight, x11.MenuEventMask)
	if err != nil {
		return 0, 0, err
	}
	flashWin, err = conn.CreateOverrideWindow(p.X, p.Y, flashWidth, flashHeight, x11.FlashEventMask)
	if err != nil {
		conn.DestroyWindow(menu)
		return 0, 0, err
	}
	return menu, flashWin, nil
}

func acquireOnStartup(conn *x11.Conn, ctl *controller.Controller, atoms protocol.Atoms, mode protocol.ModeFlags) error {
	if !mode.Continuous {
		return ctl.Acquire()
	}
	owner, err := conn.GetSelectionOwner(atoms.Primary)
	if err != nil || owner == 0 {
		return ctl.Acquire()
	}
	ctl.RequestCapture()
	return nil
}

func grabHotkeys(conn *x11.Conn, logger *log.Logger, mode protocol.ModeFlags) {
	if !mode.Daemon {
		return
	}
	root := conn.Root()
	if err := conn.GrabKey(root, x11.Key{Code: x11.KeyZ, Mod: x11.ModCtrl | x11.ModShift}); err != nil {
		logger.Printf("grab Ctrl+Shift+Z: %v", err)
	}
	if mode.HotkeyF1 {
		if err := conn.GrabKey(root, x11.Key{Code: x11.KeyF1}); err != nil {
			logger.Printf("grab F1: %v", err)
		}
	}
	if mode.HotkeyF2 {
		if err := conn.GrabKey(root, x11.Key{Code: x11.KeyF2}); err != nil {
			logger.Printf("grab F2: %v", err)
		}
	}
	if mode.HotkeyF5 {
		if err := conn.GrabKey(root, x11.Key{Code: x11.KeyF5}); err != nil {
			logger.Printf("grab F5: %v", err)
		}
	}
}

func setupLogger(conf cfg.Config, verbose bool) (*log.Logger, func()) {
	path := conf.LogFile
	if path == "" {
		if p, ok := os.LookupEnv("MULTISELECT_LOG_PATH"); ok {
			path = p
		} else {
			path = "/tmp/multiselect.log"
		}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log %q, logging to stderr only: %v\n", path, err)
		return log.New(os.Stderr, "", log.LstdFlags), func() {}
	}
	var w io.Writer = f
	if verbose {
		w = io.MultiWriter(f, os.Stderr)
	}
	return log.New(w, "", log.LstdFlags), func() { f.Close() }
}

func printHelp() {
	fmt.Fprintln(os.Stderr, strings.TrimLeft(`
multiselect - multi-string PRIMARY selection server

usage: multiselect [-d] [-k F1|F2|F5] [-f] [-c] [-i] [-t SEP] [-p]
                    [-e PROG] [-status] [-config PATH] [-v]
                    (- | STRING ...)

  -d            run as a daemon, listening for the hotkey
  -k F1|F2|F5   enable hotkey; implies -d
  -f            paste without a prior click; implies -d -k F1
  -c            continuously capture PRIMARY from other owners; implies -d
  -i            paste immediately on cursor movement
  -t SEP        single-byte display/payload separator
  -p            paste mode: no synthetic middle-click
  -e PROG       external helper program
  -status       show a debug status view
  -config PATH  override config file location
  -v            log to stderr in addition to the log file

positional: "-" to read newline-delimited strings from stdin, or up to
20 literal strings.
`, "\n"))
}
