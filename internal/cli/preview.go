package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Urooyo/lylvey/internal/eventloop"
	"github.com/Urooyo/lylvey/internal/lyrics"
	"github.com/Urooyo/lylvey/internal/media"
	"github.com/Urooyo/lylvey/internal/playback"
	"github.com/Urooyo/lylvey/internal/preview"
	"github.com/Urooyo/lylvey/internal/subtitle"
	"github.com/Urooyo/lylvey/internal/timecode"
)

const clearScreen = "\x1b[H\x1b[2J"

var previewCmd = &cobra.Command{
	Use:   "preview [lyrics_file] [media_file]",
	Short: "Play timed lyrics back karaoke-style",
	Long: `Play an SRT lyrics file against a playback clock and show which line is
active, the way a viewer would see it.

With a media file the clock runs for the media's duration (probed with
ffprobe); without one it runs until shortly after the last line.

In a terminal the view is redrawn in place and scrolls smoothly to the active
line. When output is piped, every activation is printed on its own line.
--fast runs the clock without waiting, which is handy for checking timings.

Examples:
  lylvey preview song.srt
  lylvey preview song.srt song.mp3 --from 01:05
  lylvey preview song.srt --mode subtitle --align left
  lylvey preview song.srt --fast > timeline.txt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().String("mode", "", "Display mode (karaoke, subtitle)")
	previewCmd.Flags().String("align", "", "Text alignment (left, center, right)")
	previewCmd.Flags().String("from", "0", "Start position (HH:MM:SS.mmm or seconds)")
	previewCmd.Flags().Float64("speed", 1, "Playback speed multiplier")
	previewCmd.Flags().String("duration", "", "Clock length when no media is given")
	previewCmd.Flags().Int("rows", 0, "Visible rows in karaoke mode")
	previewCmd.Flags().Int("width", 0, "Display width in columns")
	previewCmd.Flags().Bool("no-animation", false, "Jump to the active line instead of scrolling")
	previewCmd.Flags().Bool("fast", false, "Run the clock without real-time waits")
}

type previewOptions struct {
	mode      preview.Mode
	align     preview.Alignment
	from      float64
	speed     float64
	duration  float64
	rows      int
	width     int
	animation bool
	fast      bool
}

func previewFlags(cmd *cobra.Command) (previewOptions, error) {
	flags := cmd.Flags()
	modeStr, _ := flags.GetString("mode")
	alignStr, _ := flags.GetString("align")
	fromStr, _ := flags.GetString("from")
	durationStr, _ := flags.GetString("duration")
	noAnimation, _ := flags.GetBool("no-animation")

	opts := previewOptions{animation: cfg.Preview.Animation && !noAnimation}
	opts.speed, _ = flags.GetFloat64("speed")
	opts.rows, _ = flags.GetInt("rows")
	opts.width, _ = flags.GetInt("width")
	opts.fast, _ = flags.GetBool("fast")

	if modeStr == "" {
		modeStr = cfg.Preview.Mode
	}
	if alignStr == "" {
		alignStr = cfg.Preview.Alignment
	}
	if opts.rows <= 0 {
		opts.rows = cfg.Preview.Rows
	}
	if opts.width <= 0 {
		opts.width = cfg.Preview.Width
	}
	if opts.speed <= 0 {
		return opts, fmt.Errorf("speed must be positive, got %g", opts.speed)
	}

	var err error
	if opts.mode, err = preview.ParseMode(modeStr); err != nil {
		return opts, err
	}
	if opts.align, err = preview.ParseAlignment(alignStr); err != nil {
		return opts, err
	}
	if opts.from, err = parseSeconds(fromStr); err != nil {
		return opts, fmt.Errorf("invalid --from: %w", err)
	}
	if durationStr != "" {
		if opts.duration, err = parseSeconds(durationStr); err != nil {
			return opts, fmt.Errorf("invalid --duration: %w", err)
		}
	}
	return opts, nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	opts, err := previewFlags(cmd)
	if err != nil {
		return err
	}

	lines, skipped, err := subtitle.ReadFile(args[0])
	if err != nil {
		return err
	}
	if len(skipped) > 0 {
		logger.Warnw("Skipped unreadable blocks", "count", len(skipped))
	}
	if len(lines) == 0 {
		return fmt.Errorf("lyrics file contains no lines")
	}
	lines = lyrics.Sort(lines)

	var ref *media.Reference
	if len(args) == 2 {
		if ref, err = media.Open(args[1]); err != nil {
			return err
		}
	}
	if opts.duration <= 0 {
		opts.duration = previewLength(lines)
	}

	out := cmd.OutOrStdout()
	live := isTerminal(out) && !opts.fast

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.fast {
		manual := eventloop.NewManual(time.Unix(0, 0))
		p := newPreviewer(manual, out, lines, opts, false)
		p.start(ctx, ref)
		for !p.ended && ctx.Err() == nil {
			manual.Advance(cfg.Preview.TickInterval)
		}
		p.close()
		return nil
	}

	loop := eventloop.New(logger.Named("loop"))
	p := newPreviewer(loop, out, lines, opts, live)
	p.onEnded = loop.Stop
	p.deck.post = loop.Post
	loop.Post(func() { p.start(ctx, ref) })
	err = loop.Run(ctx)
	p.close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// previewer drives one playback run. All methods run on the scheduler's
// goroutine.
type previewer struct {
	sched    eventloop.Scheduler
	out      io.Writer
	lines    []lyrics.Line
	opts     previewOptions
	live     bool
	view     *preview.Viewport
	renderer preview.Renderer
	ctrl     *playback.Controller
	scroller *playback.Scroller
	deck     *deck
	redraw   eventloop.Timer

	ended   bool
	onEnded func()
}

func newPreviewer(sched eventloop.Scheduler, out io.Writer, lines []lyrics.Line, opts previewOptions, live bool) *previewer {
	p := &previewer{sched: sched, out: out, lines: lines, opts: opts, live: live}

	p.view = preview.NewViewport(opts.rows, func() int { return len(p.lines) })
	p.scroller = playback.NewScroller(p.view, sched, logger.Named("scroll"))
	p.scroller.SetAnimated(opts.animation && live)
	src := playback.SourceFunc(func() []lyrics.Line { return p.lines })
	p.ctrl = playback.NewController(src, p.scroller, logger.Named("playback"))
	p.renderer = preview.New(opts.mode, p.view, opts.width, opts.align)

	p.deck = newDeck(sched, p.ctrl, cfg.Preview.TickInterval, opts.speed)
	p.deck.onEnded = p.finish
	p.ctrl.OnActivate = p.activated
	return p
}

// start loads the media or a bare clock; playback begins once the players
// are attached.
func (p *previewer) start(ctx context.Context, ref *media.Reference) {
	p.deck.onLoaded = p.play
	if ref != nil {
		p.deck.load(ctx, ref, p.opts.duration)
	} else {
		p.deck.loadClock(p.opts.duration)
	}
}

func (p *previewer) play() {
	logger.Debugw("Starting preview",
		"lines", len(p.lines),
		"duration", p.ctrl.Duration(),
		"from", p.opts.from,
		"speed", p.opts.speed,
	)
	p.ctrl.SeekTo(p.opts.from)
	p.ctrl.Play()
	if !p.ctrl.Playing() {
		p.finish()
		return
	}
	if p.live {
		p.frame()
	}
}

func (p *previewer) activated(index int) {
	if p.live || index < 0 {
		return
	}
	at := timecode.Format(p.ctrl.Clock())
	switch p.opts.mode {
	case preview.ModeSubtitle:
		fmt.Fprintf(p.out, "%s  %s\n", at, strings.ReplaceAll(p.lines[index].Text, "\n", " / "))
	default:
		fmt.Fprintf(p.out, "%s  %3d  %s\n", at, index+1, strings.ReplaceAll(p.lines[index].Text, "\n", " / "))
	}
}

func (p *previewer) frame() {
	p.draw()
	p.redraw = p.sched.AfterFunc(playback.FrameInterval, p.frame)
}

func (p *previewer) draw() {
	fmt.Fprint(p.out, clearScreen)
	fmt.Fprintf(p.out, "%s / %s\n\n", timecode.Format(p.ctrl.Clock()), timecode.Format(p.ctrl.Duration()))
	fmt.Fprintln(p.out, p.renderer.Render(p.lines, p.ctrl.Clock(), p.ctrl.Active()))
}

func (p *previewer) finish() {
	if p.ended {
		return
	}
	p.ended = true
	if p.redraw != nil {
		p.redraw.Stop()
		p.redraw = nil
		p.draw()
	}
	if p.onEnded != nil {
		p.onEnded()
	}
}

func (p *previewer) close() {
	if p.redraw != nil {
		p.redraw.Stop()
	}
	p.ctrl.Close()
	p.deck.unload()
}

// previewLength runs the clock a second past the last line to close.
func previewLength(lines []lyrics.Line) float64 {
	var end float64
	for _, line := range lines {
		e := line.Start + subtitle.DefaultLineDuration
		if line.HasEnd {
			e = line.End
		}
		end = max(end, e)
	}
	return end + 1
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
