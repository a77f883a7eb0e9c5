package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/common-nighthawk/go-figure"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/nav"
)

func (a *App) getStatus() string {
	var parts []string
	if a.watcher != nil {
		parts = append(parts, a.watcher.Path())
	}
	if a.store != nil {
		if st := a.store.Snapshot(); st.IsAuthenticated() {
			parts = append(parts, st.Session.Email)
		}
	}
	if m := a.mode(); m != ModeUnknown {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func banner() string {
	return figure.NewFigure("CameYa", "cybermedium", true).String()
}

// Root restores the saved session, opens the page it leads to and runs the
// REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, banner())
	fmt.Fprintln(a.out, "Welcome to CameYa (type 'help' for commands)")

	a.authService.Restore(ctx)

	start := nav.Home
	if st := a.store.Snapshot(); st.IsAuthenticated() {
		start = a.landing(*st.Session)
	}
	a.watcher.Start(start)
	a.mu.Lock()
	a.repaint = true
	a.mu.Unlock()

	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
