// Package controller implements InteractionController: the top-level
// coordinator that maps X events and user input into ProtocolEngine
// transitions and drives the Menu/Flash windows (§4.3–§4.7).
package controller

import (
	"log"
	"time"

	"github.com/jezek/xgb/xproto"

	"multiselect/internal/cfg"
	"multiselect/internal/helper"
	"multiselect/internal/protocol"
	"multiselect/internal/render"
	"multiselect/internal/selection"
	"multiselect/internal/statusui"
	"multiselect/internal/x11"
)

// Controller is the single-threaded event-loop owner described in §5:
// everything here runs on one goroutine, touching conn, engine, and list
// directly with no locking.
type Controller struct {
	conn     *x11.Conn
	engine   *protocol.Engine
	list     *selection.List
	renderer render.Renderer
	helper   *helper.Helper
	mode     protocol.ModeFlags
	atoms    protocol.Atoms

	menuWindow  xproto.Window
	flashWindow xproto.Window

	timings Timings

	exitRequested bool
	menuVisible   bool

	// click-mode choreography state (§4.4).
	savedPointer x11.Point
	savedFocus   xproto.Window

	statusCh chan<- statusui.Snapshot

	log *log.Logger
}

// Timings are the flash-window hide durations of §4.3, overridable via
// config (§4.8).
type Timings struct {
	FlashStart   time.Duration
	FlashChange  time.Duration
	FlashMessage time.Duration
}

func timingsFromConfig(c cfg.Config) Timings {
	return Timings{
		FlashStart:   time.Duration(c.FlashStartMs) * time.Millisecond,
		FlashChange:  time.Duration(c.FlashChangeMs) * time.Millisecond,
		FlashMessage: time.Duration(c.FlashMessageMs) * time.Millisecond,
	}
}

// Options bundles everything New needs; it exists so cmd/multiselect's
// bootstrap stays a flat list of constructor calls rather than a long
// parameter list here.
type Options struct {
	Conn        *x11.Conn
	Engine      *protocol.Engine
	List        *selection.List
	Renderer    render.Renderer
	Helper      *helper.Helper
	Mode        protocol.ModeFlags
	Atoms       protocol.Atoms
	MenuWindow  xproto.Window
	FlashWindow xproto.Window
	Config      cfg.Config
	StatusCh    chan<- statusui.Snapshot
	Log         *log.Logger
}

// New builds a Controller from already-constructed collaborators;
// Bootstrap (cmd/multiselect) is responsible for opening the display,
// creating windows, and performing the initial ownership acquisition
// before calling this.
func New(o Options) *Controller {
	o.Engine.SetShortInterval(xproto.Timestamp(o.Config.ShortIntervalMs))
	return &Controller{
		conn:        o.Conn,
		engine:      o.Engine,
		list:        o.List,
		renderer:    o.Renderer,
		helper:      o.Helper,
		mode:        o.Mode,
		atoms:       o.Atoms,
		menuWindow:  o.MenuWindow,
		flashWindow: o.FlashWindow,
		timings:     timingsFromConfig(o.Config),
		statusCh:    o.StatusCh,
		log:         o.Log,
	}
}

// Run is the main event loop. It returns when the process should exit
// (q/F5, SelectionClear in non-daemon mode, or a fatal wire error).
func (c *Controller) Run(cfgChanges <-chan cfg.Config) error {
	events := c.conn.Events()
	errCh := c.conn.Errors()
	for !c.exitRequested {
		select {
		case ev := <-events:
			c.dispatch(ev)
		case err := <-errCh:
			return err
		case newCfg, ok := <-cfgChanges:
			if ok {
				c.applyConfig(newCfg)
			}
		}
		c.publishStatus()
	}
	return nil
}

func (c *Controller) applyConfig(newCfg cfg.Config) {
	c.timings = timingsFromConfig(newCfg)
	if newCfg.HelperPath != "" {
		c.helper = helper.New(newCfg.HelperPath)
	}
	c.engine.SetShortInterval(xproto.Timestamp(newCfg.ShortIntervalMs))
}

func (c *Controller) publishStatus() {
	if c.statusCh == nil {
		return
	}
	entries := make([]string, c.list.Len())
	for i := 0; i < c.list.Len(); i++ {
		display, _ := c.list.View(i)
		entries[i] = display
	}
	snap := statusui.Snapshot{
		Owned:       c.engine.Ownership().Owned,
		PendingReq:  c.engine.Pending() != nil,
		MenuVisible: c.menuVisible,
		Cursor:      c.list.Cursor(),
		Entries:     entries,
	}
	select {
	case c.statusCh <- snap:
	default:
	}
}

func (c *Controller) dispatch(ev x11.Event) {
	switch e := ev.(type) {
	case x11.KeyEvent:
		if e.State == x11.KeyDown {
			if !c.menuVisible && c.isHotkey(e.Key) {
				c.ShowWindow()
			} else {
				c.handleKey(e)
			}
		}
	case x11.ButtonEvent:
		c.handleButton(e)
	case x11.ExposeEvent:
		c.handleExpose(e)
	case x11.SelectionClearEvent:
		c.handleSelectionClear()
	case x11.SelectionRequestEvent:
		c.handleSelectionRequest(e)
	case x11.SelectionNotifyEvent:
		c.handleSelectionNotify(e)
	}
}

func (c *Controller) handleSelectionRequest(e x11.SelectionRequestEvent) {
	now, err := c.conn.Now()
	if err != nil {
		c.log.Printf("obtain timestamp: %v", err)
		now = e.Timestamp
	}
	actions := c.engine.HandleSelectionRequest(e, now)
	c.apply(actions)
}

func (c *Controller) handleSelectionClear() {
	actions := c.engine.HandleSelectionClear(c.mode)
	c.apply(actions)
}
