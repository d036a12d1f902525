// Package cli is the interactive translation prompt.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/traductor/internal/logger"
	"github.com/bastiangx/traductor/pkg/config"
	"github.com/bastiangx/traductor/pkg/dictionary"
	"github.com/bastiangx/traductor/pkg/translate"
)

const helpText = `commands:
  <text>            translate text in the current direction
  :dir [es|ind]     set or toggle the direction
  :load <language>  load a dataset by name or path
  :reload           reload the current dataset
  :c <prefix>       complete a prefix
  :s <text>         suggestions only
  :say <text>       show how text would be spoken
  :info             describe the loaded dictionary
  :langs            list known languages
  :help             this text
  :q                quit`

// InputHandler reads lines from the user and answers them with translations.
// Lines starting with ':' are commands.
type InputHandler struct {
	session *translate.Session
	cfg     *config.Config
	dir     dictionary.Direction
	styles  Styles
	in      io.Reader
	out     io.Writer
	log     *log.Logger
}

// NewInputHandler creates a prompt on stdin/stdout.
func NewInputHandler(session *translate.Session, cfg *config.Config, dir dictionary.Direction) *InputHandler {
	return NewInputHandlerWithIO(session, cfg, dir, os.Stdin, os.Stdout)
}

// NewInputHandlerWithIO creates a prompt reading from r and writing to w.
func NewInputHandlerWithIO(session *translate.Session, cfg *config.Config, dir dictionary.Direction, r io.Reader, w io.Writer) *InputHandler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &InputHandler{
		session: session,
		cfg:     cfg,
		dir:     dir,
		styles:  NewStyles(cfg.CLI.Color),
		in:      r,
		out:     w,
		log:     logger.New("cli"),
	}
}

// SetColor switches styled output on or off.
func (h *InputHandler) SetColor(color bool) {
	h.styles = NewStyles(color)
}

// Direction returns the current translation direction.
func (h *InputHandler) Direction() dictionary.Direction {
	return h.dir
}

// Start runs the prompt until the input ends or :q is entered.
func (h *InputHandler) Start(ctx context.Context) error {
	h.println(h.styles.Title.Render("Traductor") + " " + h.styles.Muted.Render("(:help for commands, :q to exit)"))
	if !h.session.Loaded() {
		h.println(h.styles.Muted.Render("No dictionary loaded, use :load <language>."))
	}

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprintf(h.out, "%s ", h.prompt())
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := h.handleInput(ctx, line); quit {
			return nil
		}
	}
}

func (h *InputHandler) prompt() string {
	if h.dir == dictionary.IndigenousToSpanish {
		return h.styles.Key.Render("ind>es >")
	}
	return h.styles.Key.Render("es>ind >")
}

// handleInput processes one line and reports whether the prompt should exit.
func (h *InputHandler) handleInput(ctx context.Context, line string) bool {
	if !strings.HasPrefix(line, ":") {
		h.translate(line)
		return false
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "q", "quit", "exit":
		return true
	case "help", "h":
		h.println(helpText)
	case "dir", "d":
		h.setDirection(arg)
	case "load", "l":
		h.load(ctx, arg)
	case "reload":
		start := time.Now()
		info, err := h.session.Reload(ctx)
		if err != nil {
			h.printErr(err)
			return false
		}
		h.log.Debugf("Reloaded in %v", time.Since(start))
		h.println(RenderInfo(h.styles, info))
	case "c", "complete":
		comps, err := h.session.Complete(arg, h.dir, h.cfg.Server.MaxCompletions)
		if err != nil {
			h.printErr(err)
			return false
		}
		h.println(RenderCompletions(h.styles, comps))
	case "s", "suggest":
		sugs, err := h.session.Suggest(arg, h.dir, h.cfg.Translator.TopN)
		if err != nil {
			h.printErr(err)
			return false
		}
		h.println(RenderSuggestions(h.styles, sugs))
	case "say":
		u, err := h.session.Utterance(arg, h.dir, false)
		if err != nil {
			h.printErr(err)
			return false
		}
		h.println(RenderUtterance(h.styles, u))
	case "info":
		h.println(RenderInfo(h.styles, h.session.Info()))
	case "langs", "languages":
		h.println(RenderLanguages(h.styles, h.cfg.Languages, h.session.Info().Source))
	default:
		h.println(h.styles.Error.Render(fmt.Sprintf("unknown command :%s", cmd)))
	}
	return false
}

func (h *InputHandler) translate(query string) {
	if n := h.cfg.Server.MaxQueryLen; n > 0 && len([]rune(query)) > n {
		h.println(h.styles.Error.Render(fmt.Sprintf("query longer than %d characters", n)))
		return
	}
	start := time.Now()
	res, err := h.session.Translate(query, h.dir)
	if err != nil {
		h.printErr(err)
		return
	}
	h.log.Debugf("Took [ %v ] for %q", time.Since(start), query)
	h.println(RenderResult(h.styles, res))
	if res.Speakable {
		if u, err := h.session.Utterance(res.Phrase, h.dir, true); err == nil {
			h.println(RenderUtterance(h.styles, u))
		}
	}
}

func (h *InputHandler) setDirection(arg string) {
	if arg == "" {
		h.dir = h.dir.Reverse()
	} else {
		dir, err := dictionary.ParseDirection(arg)
		if err != nil {
			h.println(h.styles.Error.Render(err.Error()))
			return
		}
		h.dir = dir
	}
	h.println(h.styles.Muted.Render("direction: " + h.dir.String()))
}

func (h *InputHandler) load(ctx context.Context, arg string) {
	if arg == "" {
		arg = h.cfg.Dataset.DefaultLanguage
	}
	if arg == "" {
		h.println(h.styles.Error.Render("usage: :load <language>"))
		return
	}
	info, err := h.session.Load(ctx, h.cfg.DatasetSource(arg), "")
	if err != nil {
		h.printErr(err)
		return
	}
	h.println(RenderInfo(h.styles, info))
}

func (h *InputHandler) println(s string) {
	fmt.Fprintln(h.out, s)
}

func (h *InputHandler) printErr(err error) {
	h.println(RenderError(h.styles, err))
}
