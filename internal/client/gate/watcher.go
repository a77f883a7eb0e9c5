package gate

import (
	"context"
	"fmt"
	"sync"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/nav"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/session"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

// maxHops bounds how many redirects one navigation may follow.
const maxHops = 8

// Source is the part of session.Store the watcher needs.
type Source interface {
	Snapshot() session.State
	Subscribe(fn func(session.State)) (unsubscribe func())
}

// Event is what the watcher reports after every evaluation. Path is where
// the user ends up once redirects have been followed and Decision is the
// verdict for that path. From is the page a login redirect interrupted.
type Event struct {
	Path       string
	Decision   Decision
	From       string
	Redirected bool
}

// Watcher keeps a current path and re-runs the guard whenever the path or
// any session flag the guards read changes.
type Watcher struct {
	src    Source
	decide Guard
	notify func(Event)
	log    logging.Logger

	mu          sync.Mutex
	path        string
	last        flags
	evaluated   bool
	unsubscribe func()
}

// flags is the slice of session state that can change a decision.
type flags struct {
	loading, authenticated, complete, verified bool
	account                                    session.AccountType
}

func flagsOf(st session.State) flags {
	f := flags{
		loading:       st.Loading,
		authenticated: st.IsAuthenticated(),
		complete:      st.HasCompletedProfile(),
		verified:      st.HasVerifiedEmail(),
	}
	if st.Session != nil {
		f.account = st.Session.AccountType
	}
	return f
}

func NewWatcher(src Source, decide Guard, notify func(Event), log logging.Logger) *Watcher {
	if log == nil {
		log = logging.Nop()
	}
	if notify == nil {
		notify = func(Event) {}
	}
	return &Watcher{
		src:    src,
		decide: decide,
		notify: notify,
		log:    log.With("component", "gate"),
		path:   nav.Home,
	}
}

// Start subscribes to the source and evaluates path once.
func (w *Watcher) Start(path string) Event {
	w.mu.Lock()
	if w.unsubscribe == nil {
		w.unsubscribe = w.src.Subscribe(w.onChange)
	}
	w.mu.Unlock()
	return w.Navigate(path)
}

// Stop detaches from the source. The watcher can be started again.
func (w *Watcher) Stop() {
	w.mu.Lock()
	unsub := w.unsubscribe
	w.unsubscribe = nil
	w.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Path returns the current path, including its query.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Navigate moves to requestURI, following redirects, and reports the result.
func (w *Watcher) Navigate(requestURI string) Event {
	st := w.src.Snapshot()

	w.mu.Lock()
	ev := w.evaluate(st, requestURI)
	w.mu.Unlock()

	w.emit(ev)
	return ev
}

func (w *Watcher) onChange(st session.State) {
	w.mu.Lock()
	if w.evaluated && flagsOf(st) == w.last {
		w.mu.Unlock()
		return
	}
	ev := w.evaluate(st, w.path)
	w.mu.Unlock()

	w.emit(ev)
}

// evaluate must be called with mu held.
func (w *Watcher) evaluate(st session.State, requestURI string) Event {
	w.last = flagsOf(st)
	w.evaluated = true

	var (
		ev   = Event{Path: requestURI}
		seen = map[string]bool{}
	)
	for range maxHops {
		d := w.safeDecide(st, ev.Path)
		ev.Decision = d
		if d.From != "" && ev.From == "" {
			ev.From = d.From
		}
		if d.Status != Redirect {
			w.path = ev.Path
			return ev
		}
		if seen[nav.Clean(d.Target)] {
			break
		}
		seen[nav.Clean(ev.Path)] = true
		ev.Path = d.Target
		ev.Redirected = true
	}

	w.log.Warn(context.Background(), "redirect loop, falling back to home", "path", requestURI)
	w.path = nav.Home
	return Event{Path: nav.Home, Decision: redirect(nav.Home), From: ev.From, Redirected: true}
}

func (w *Watcher) safeDecide(st session.State, requestURI string) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error(context.Background(), "guard panicked", "path", requestURI, "panic", fmt.Sprint(r))
			d = redirect(nav.Home)
		}
	}()
	return w.decide(st, requestURI)
}

func (w *Watcher) emit(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error(context.Background(), "gate listener panicked", "path", ev.Path, "panic", fmt.Sprint(r))
		}
	}()
	w.notify(ev)
}
