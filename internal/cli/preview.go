package cli

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/matzehuels/connline/pkg/render/term"
	"github.com/matzehuels/connline/pkg/scene"
)

const zoomStep = 1.25

// previewCommand creates the preview command for drawing a scene in the
// terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags    pipelineFlags
		selected string
	)

	cmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "Draw a scene in the terminal",
		Long: `Draw a scene in the terminal.

Keys:
  arrows   pan
  + / -    zoom
  tab      highlight the next connector
  0        reset zoom and pan
  q, esc   quit`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSceneFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, laid, err := c.layoutScene(ctx, args[0], flags.options(cmd, c.Config.Pipeline), flags.noCache)
			if err != nil {
				return err
			}
			return runPreview(ctx, s, laid, selected)
		},
	}

	cmd.Flags().StringVar(&selected, "select", "", "connector to highlight")
	flags.bindLayout(cmd)

	return cmd
}

// runPreview opens the terminal and runs the preview until the user quits
// or ctx is cancelled.
func runPreview(ctx context.Context, s *scene.Scene, laid []scene.Laid, selected string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	stop := context.AfterFunc(ctx, func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	previewLoop(screen, s, laid, selected)
	return ctx.Err()
}

// previewState is the interactive part of the preview.
type previewState struct {
	opts     term.Options
	laid     []scene.Laid
	selected int
}

// previewLoop draws and handles events until a quit key or an interrupt.
func previewLoop(screen tcell.Screen, s *scene.Scene, laid []scene.Laid, selected string) {
	st := &previewState{opts: term.Options{Scene: s, Zoom: 1}, laid: laid, selected: -1}
	for i, l := range laid {
		if l.Connector.ID == selected {
			st.selected = i
			st.opts.Selected = selected
		}
	}

	for {
		st.draw(screen)
		switch ev := screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !st.handleKey(ev) {
				return
			}
		}
	}
}

func (st *previewState) draw(screen tcell.Screen) {
	screen.Clear()
	term.Draw(screen, st.laid, st.opts)

	status := fmt.Sprintf(" %d connectors  zoom %.2fx", len(st.laid), st.opts.Zoom)
	if st.opts.Selected != "" {
		status += "  " + st.opts.Selected
	}
	_, h := screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(status) {
		screen.SetContent(i, h-1, r, nil, style)
	}
	screen.Show()
}

// handleKey applies one key press and reports whether to keep running.
func (st *previewState) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		st.opts.PanX += 2
	case tcell.KeyRight:
		st.opts.PanX -= 2
	case tcell.KeyUp:
		st.opts.PanY++
	case tcell.KeyDown:
		st.opts.PanY--
	case tcell.KeyTab:
		if len(st.laid) > 0 {
			st.selected = (st.selected + 1) % len(st.laid)
			st.opts.Selected = st.laid[st.selected].Connector.ID
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case '+', '=':
			st.opts.Zoom *= zoomStep
		case '-':
			st.opts.Zoom /= zoomStep
		case '0':
			st.opts.Zoom, st.opts.PanX, st.opts.PanY = 1, 0, 0
		}
	}
	return true
}
