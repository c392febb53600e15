package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Urooyo/lylvey/internal/clipboard"
	"github.com/Urooyo/lylvey/internal/editor"
	"github.com/Urooyo/lylvey/internal/eventloop"
	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/media"
	"github.com/Urooyo/lylvey/internal/playback"
	"github.com/Urooyo/lylvey/internal/preview"
	"github.com/Urooyo/lylvey/internal/subtitle"
	"github.com/Urooyo/lylvey/internal/timecode"
	"github.com/Urooyo/lylvey/internal/translate"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open an interactive lyrics editing session",
	Long: `Open an interactive session for timing lyrics.

Lines are numbered from 1 in start order. Times are written as HH:MM:SS.mmm.
Type "help" inside the session for the list of commands.

Examples:
  lylvey edit
  lylvey edit --lyrics song.srt --media song.mp3
  lylvey edit --media clip.mp4`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("lyrics", "", "SRT file to import on start")
	editCmd.Flags().String("media", "", "Audio or video file to load on start")
}

func runEdit(cmd *cobra.Command, args []string) error {
	lyricsPath, _ := cmd.Flags().GetString("lyrics")
	mediaPath, _ := cmd.Flags().GetString("media")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop := eventloop.New(logger.Named("loop"))
	registry := media.NewRegistry(logger.Named("media"))
	defer registry.Close()

	sh := newShell(ctx, loop, registry, cmd.OutOrStdout())
	defer sh.close()

	loop.Post(func() {
		fmt.Fprintf(sh.out, "%s\n", msg("title"))
		if lyricsPath != "" {
			sh.exec("import " + lyricsPath)
		}
		if mediaPath != "" {
			sh.exec("media " + mediaPath)
		}
		sh.prompt()
	})
	go sh.readInput(cmd.InOrStdin())

	err := loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// shell is the line-oriented front end of one editing session. Everything
// except readInput runs on the loop goroutine.
type shell struct {
	ctx      context.Context
	out      io.Writer
	loop     *eventloop.Loop
	sess     *editor.Session
	ctrl     *playback.Controller
	scroller *playback.Scroller
	view     *preview.Viewport
	deck     *deck
	keymap   editor.Keymap
	board    clipboard.Board
}

func newShell(ctx context.Context, loop *eventloop.Loop, registry *media.Registry, out io.Writer) *shell {
	sh := &shell{
		ctx:    ctx,
		out:    out,
		loop:   loop,
		sess:   editor.NewSession(registry, logger.Named("session")),
		keymap: editor.DefaultKeymap(),
		board:  clipboard.System(),
	}

	sh.view = preview.NewViewport(cfg.Preview.Rows, sh.sess.Len)
	sh.scroller = playback.NewScroller(sh.view, loop, logger.Named("scroll"))
	sh.scroller.SetAnimated(cfg.Preview.Animation)
	sh.ctrl = playback.NewController(sh.sess, sh.scroller, logger.Named("playback"))
	sh.deck = newDeck(loop, sh.ctrl, cfg.Preview.TickInterval, 1)
	sh.deck.post = loop.Post
	sh.deck.onLoaded = func() {
		fmt.Fprintf(sh.out, "\nMedia ready: %s\n", timecode.Format(sh.ctrl.Duration()))
		sh.prompt()
	}

	if !clipboard.Available() {
		logger.Debugw("System clipboard unavailable; copy and paste will fail")
	}

	sh.ctrl.OnActivate = func(index int) {
		if !sh.ctrl.Playing() || index < 0 {
			return
		}
		if line, err := sh.sess.Line(index); err == nil {
			fmt.Fprintf(sh.out, "\n▶ %d  %s\n", index+1, line.Text)
		}
	}
	sh.sess.OnChange = sh.ctrl.Refresh
	sh.sess.OnMediaChange = func(ref *media.Reference, url string) {
		if ref == nil {
			sh.deck.unload()
			return
		}
		logger.Debugw("Media changed", "url", url)
		sh.deck.load(sh.ctx, ref, sh.fallbackDuration())
	}
	return sh
}

// without a probe, let playback run a little past the last line
func (sh *shell) fallbackDuration() float64 {
	lines := sh.sess.Lines()
	if len(lines) == 0 {
		return 0
	}
	last := lines[len(lines)-1]
	return last.Start + 2*lyrics.DefaultSlotLength
}

func (sh *shell) readInput(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if !sh.loop.Post(func() {
			sh.exec(line)
			sh.prompt()
		}) {
			return
		}
	}
	sh.loop.Post(func() { sh.exec("quit") })
}

func (sh *shell) prompt() {
	fmt.Fprint(sh.out, msg("prompt"))
}

func (sh *shell) close() {
	sh.ctrl.Close()
	sh.deck.unload()
	sh.sess.Close()
}

func (sh *shell) exec(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}
	name, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	if action, ok := sh.keymap.Resolve(name); ok {
		sh.report(sh.dispatch(action, rest))
		return
	}

	var err error
	switch strings.ToLower(name) {
	case "help", "?":
		sh.help()
	case "list", "ls":
		writeLines(sh.out, sh.sess.Lines(), sh.ctrl.Active())
	case "add":
		err = sh.add(rest)
	case "next":
		err = sh.next(rest)
	case "edit":
		err = sh.edit(rest)
	case "start":
		err = sh.setTime(rest, sh.sess.SetStart)
	case "end":
		err = sh.setTime(rest, sh.sess.SetEnd)
	case "rm", "delete":
		var index int
		if index, err = parseIndex(rest); err == nil {
			err = sh.sess.Delete(index)
		}
	case "undo":
		err = sh.dispatch(editor.ActionUndo, "")
	case "redo":
		err = sh.dispatch(editor.ActionRedo, "")
	case "new":
		err = sh.newSession(rest == "-y" || rest == "--yes")
	case "import":
		err = sh.dispatch(editor.ActionImport, rest)
	case "export":
		err = sh.dispatch(editor.ActionExport, rest)
	case "copy":
		if err = clipboard.Copy(sh.board, sh.sess.Lines()); err == nil {
			fmt.Fprintf(sh.out, "Copied %d lines\n", sh.sess.Len())
		}
	case "paste":
		var doc string
		if doc, err = clipboard.Paste(sh.board); err == nil {
			sh.importDocument(doc)
		}
	case "media":
		err = sh.loadMedia(rest)
	case "at":
		var at float64
		if at, err = parseSeconds(rest); err == nil {
			writeStates(sh.out, sh.sess.Lines(), at)
		}
	case "seek":
		err = sh.seek(rest)
	case "goto":
		var index int
		if index, err = parseIndex(rest); err == nil {
			if sh.hasMedia() {
				err = sh.ctrl.ActivateLine(index)
			}
		}
	case "play":
		if sh.hasMedia() {
			sh.ctrl.Play()
		}
	case "pause", "stop":
		sh.ctrl.Pause()
	case "toggle", "space":
		if sh.hasMedia() {
			sh.ctrl.TogglePlay()
		}
	case "time":
		fmt.Fprintf(sh.out, "%s / %s\n", timecode.Format(sh.ctrl.Clock()), timecode.Format(sh.ctrl.Duration()))
	case "view":
		sh.render()
	case "scroll":
		err = sh.scroll(rest)
	case "follow":
		sh.scroller.Resume()
	case "translate":
		err = sh.translate(rest)
	case "quit", "exit", "q":
		fmt.Fprintln(sh.out, msg("bye"))
		sh.loop.Stop()
	default:
		err = errors.New(msg("unknown_command"))
	}
	sh.report(err)
}

// dispatch runs a shortcut action. arg carries the file for import and export.
func (sh *shell) dispatch(action editor.Action, arg string) error {
	switch action {
	case editor.ActionUndo:
		if !sh.sess.Undo() {
			fmt.Fprintln(sh.out, msg("nothing_undo"))
		}
	case editor.ActionRedo:
		if !sh.sess.Redo() {
			fmt.Fprintln(sh.out, msg("nothing_redo"))
		}
	case editor.ActionNew:
		return sh.newSession(false)
	case editor.ActionImport:
		if arg == "" {
			return errors.New("usage: import <file.srt>")
		}
		skipped, err := sh.sess.ImportFile(arg)
		if err != nil {
			return err
		}
		sh.reportImport(skipped)
	case editor.ActionExport:
		if arg == "" {
			arg = cfg.Export.Filename
		}
		path, err := sh.sess.ExportFile(arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "Exported %d lines to %s\n", sh.sess.Len(), path)
	}
	return nil
}

func (sh *shell) report(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, editor.ErrConfirmationRequired):
		fmt.Fprintln(sh.out, msg("new_confirm"))
	default:
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
}

func (sh *shell) help() {
	fmt.Fprint(sh.out, `Commands:
  list                              show all lines
  add <start> <end|-> <text>        add a line
  next [current|last] <text>        add a line at the playhead or after the last line
  edit <n> <start> <end|-> <text>   replace line n
  start <n> <time>, end <n> <time|-> change one time of line n
  rm <n>                            delete line n
  undo, redo                        step through history (ctrl+z, ctrl+shift+z)
  new [-y]                          start over (ctrl+n)
  import <file>, export [file]      read or write SRT (ctrl+o, ctrl+s)
  copy, paste                       SRT through the clipboard
  media <file>                      load audio or video
  play, pause, toggle, seek <time>, goto <n>, time
  at <time>                         show line states at a time
  view, scroll <rows>, follow       karaoke view and manual scrolling
  translate <language> [--overlay]  translate every line
  quit
`)
}

func (sh *shell) add(rest string) error {
	fields := strings.SplitN(rest, " ", 3)
	if len(fields) < 3 {
		return errors.New("usage: add <start> <end|-> <text>")
	}
	line, err := lineFrom(fields[0], fields[1], fields[2])
	if err != nil {
		return err
	}
	return sh.sess.Add(line)
}

func (sh *shell) next(rest string) error {
	mode := lyrics.SlotCurrent
	first, text, _ := strings.Cut(rest, " ")
	switch lyrics.SlotMode(first) {
	case lyrics.SlotCurrent, lyrics.SlotLast:
		mode = lyrics.SlotMode(first)
	default:
		text = rest
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("usage: next [current|last] <text>")
	}

	now := 0.0
	if sh.ctrl.Attached() {
		now = sh.ctrl.Clock()
	}
	start, end := lyrics.NextSlot(sh.sess.Lines(), now, mode)
	if err := sh.sess.Add(lyrics.NewLine(start, end, text)); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Added %s → %s\n", timecode.Format(start), timecode.Format(end))
	return nil
}

func (sh *shell) edit(rest string) error {
	fields := strings.SplitN(rest, " ", 4)
	if len(fields) < 4 {
		return errors.New("usage: edit <n> <start> <end|-> <text>")
	}
	index, err := parseIndex(fields[0])
	if err != nil {
		return err
	}
	line, err := lineFrom(fields[1], fields[2], fields[3])
	if err != nil {
		return err
	}
	return sh.sess.Edit(index, line)
}

func (sh *shell) setTime(rest string, set func(int, string) error) error {
	n, value, ok := strings.Cut(rest, " ")
	if !ok {
		return errors.New("usage: start|end <n> <HH:MM:SS.mmm>")
	}
	index, err := parseIndex(n)
	if err != nil {
		return err
	}
	return set(index, value)
}

func (sh *shell) newSession(confirmed bool) error {
	if err := sh.sess.New(confirmed); err != nil {
		return err
	}
	sh.view.SetScrollOffset(0)
	fmt.Fprintln(sh.out, msg("title"))
	return nil
}

func (sh *shell) importDocument(doc string) {
	sh.reportImport(sh.sess.Import(doc))
}

func (sh *shell) reportImport(skipped []subtitle.SkippedBlock) {
	fmt.Fprintf(sh.out, "Imported %d lines\n", sh.sess.Len())
	if len(skipped) > 0 {
		logger.Warnw("Skipped unreadable blocks", "count", len(skipped))
	}
}

func (sh *shell) loadMedia(path string) error {
	if path == "" {
		return errors.New("usage: media <file>")
	}
	ref, err := sh.sess.LoadMedia(path)
	if err != nil {
		return err
	}
	kind := "audio"
	if ref.IsVideo() {
		kind = "video (paired audio sync)"
	}
	fmt.Fprintf(sh.out, "Loaded %s: %s\n", kind, ref.Name())
	return nil
}

// hasMedia reports whether players are attached. Transport commands are
// no-ops without media, so this prints a note instead of failing.
func (sh *shell) hasMedia() bool {
	if !sh.ctrl.Attached() {
		fmt.Fprintln(sh.out, msg("no_media"))
		return false
	}
	return true
}

func (sh *shell) seek(rest string) error {
	at, err := parseSeconds(rest)
	if err != nil {
		return err
	}
	if !sh.hasMedia() {
		return nil
	}
	sh.ctrl.SeekTo(at)
	fmt.Fprintf(sh.out, "%s\n", timecode.Format(sh.ctrl.Clock()))
	return nil
}

func (sh *shell) render() {
	r := preview.New(preview.ModeKaraoke, sh.view, cfg.Preview.Width, preview.Alignment(cfg.Preview.Alignment))
	fmt.Fprintln(sh.out, r.Render(sh.sess.Lines(), sh.ctrl.Clock(), sh.ctrl.Active()))
}

func (sh *shell) scroll(rest string) error {
	rows, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return errors.New("usage: scroll <rows>")
	}
	sh.scroller.UserScrolled()
	sh.view.SetScrollOffset(sh.view.ScrollOffset() + float64(rows)*preview.RowHeight)
	sh.render()
	return nil
}

// translate runs the provider off the loop and applies the result as one
// history step, unless the lines changed in the meantime.
func (sh *shell) translate(rest string) error {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return errors.New("usage: translate <language> [--overlay]")
	}
	target := fields[0]
	overlay := slices.Contains(fields[1:], "--overlay")

	lines := sh.sess.Lines()
	if len(lines) == 0 {
		return editor.ErrNoLines
	}

	provider := translate.Provider(cfg.Translate.Provider)
	apiKey := os.Getenv(translate.APIKeyEnv(provider))
	translator, err := translate.Factory(sh.ctx, provider, apiKey, translate.Options{
		TargetLanguage: target,
		Model:          cfg.Translate.Model,
		BatchSize:      cfg.Translate.BatchSize,
		Concurrency:    cfg.Translate.Concurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	fmt.Fprintf(sh.out, "Translating %d lines to %s...\n", len(lines), target)
	go func() {
		texts, err := translate.Lines(sh.ctx, translator, lines)
		sh.loop.Post(func() {
			if err != nil {
				sh.report(fmt.Errorf("translation failed: %w", err))
				return
			}
			if !slices.Equal(lines, sh.sess.Lines()) {
				fmt.Fprintln(sh.out, "Lyrics changed during translation; result discarded")
				return
			}
			if overlay {
				for i := range texts {
					texts[i] = translate.Overlay(lines[i].Text, texts[i])
				}
			}
			if err := sh.sess.ApplyTexts(texts); err != nil {
				sh.report(err)
				return
			}
			fmt.Fprintf(sh.out, "Translated %d lines\n", len(texts))
		})
	}()
	return nil
}

// parseIndex reads a 1-based line number.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid line number %q", s)
	}
	return n - 1, nil
}

// lineFrom builds a line from manual entries; "-" leaves the end open.
func lineFrom(start, end, text string) (lyrics.Line, error) {
	s, err := timecode.ParseStrict(start)
	if err != nil {
		return lyrics.Line{}, err
	}
	if strings.TrimSpace(end) == "-" {
		return lyrics.OpenLine(s, text), nil
	}
	e, err := timecode.ParseStrict(end)
	if err != nil {
		return lyrics.Line{}, err
	}
	return lyrics.NewLine(s, e, text), nil
}
