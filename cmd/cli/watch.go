package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kcaldas/themekit/pkg/config"
	"github.com/kcaldas/themekit/pkg/events"
	"github.com/kcaldas/themekit/pkg/style"
	"github.com/kcaldas/themekit/pkg/themable"
)

func newWatchCommand(a *app) *cobra.Command {
	var scopeName string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the theme document and redraw a swatch on every change",
		Long: `Watch the document named by THEMEKIT_THEME_PATH. Every change is copied
into the data directory and a card styled by the chosen scope is drawn again.
Swatches are only colored when stdout is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.toolkit.Settings.ThemePath == "" {
				return fmt.Errorf("%s is not set, nothing to watch", config.EnvThemePath)
			}
			rt, err := a.runtime()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sw := &swatch{
				out:     cmd.OutOrStdout(),
				card:    style.NewCard(scopeName),
				colored: isTerminal(cmd.OutOrStdout()),
			}
			unregister := rt.Facade.Register(sw.card)
			defer unregister()
			sw.draw()

			// subscribed after the card, so the card is restyled first
			unsubscribe := rt.Bus.Subscribe(events.ReloadTopic, func(interface{}) {
				sw.draw()
			})
			defer unsubscribe()

			cmd.PrintErrf("watching %s (Ctrl+C to stop)\n", rt.Settings.ThemePath)
			return rt.Watcher.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&scopeName, "scope", "s", "", "scope styling the swatch (default Card)")
	return cmd
}

type swatch struct {
	out     io.Writer
	card    *style.Card
	colored bool

	mu      sync.Mutex
	reloads int
}

func (s *swatch) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := themable.DeclaredName(s.card)
	stamp := time.Now().Format(time.TimeOnly)
	if !s.colored {
		fmt.Fprintf(s.out, "%s: reload %d at %s\n", name, s.reloads, stamp)
	} else {
		fmt.Fprintln(s.out, s.card.Render(name, fmt.Sprintf("reload %d at %s", s.reloads, stamp)))
	}
	s.reloads++
}
