package client

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/domain/types"
	"github.com/forgelab/promptforge/pkg/service/prompt"
	"github.com/forgelab/promptforge/pkg/utils/async"
)

const (
	// Anonymous history lives only in this process and is capped
	localHistoryLimit = 10

	defaultNoticeTTL = 3 * time.Second
	defaultCopiedTTL = 2 * time.Second
)

// ErrGenerationInFlight is returned when Generate is called while a
// previous call has not finished.
var ErrGenerationInFlight = goerr.New("a generation is already running")

// App owns all UI-equivalent state. Every mutation runs on a single
// event loop goroutine; network calls happen off the loop so state
// reads stay responsive while a generation is in flight.
type App struct {
	api *API
	hub *SessionHub

	loop chan func()
	quit chan struct{}
	wg   sync.WaitGroup

	copyFn func(string) error

	noticeTTL time.Duration
	copiedTTL time.Duration

	// Mutable state, loop-owned
	form          model.FormInput
	result        *model.GenerationResult
	isLoading     bool
	copied        bool
	offlineNotice bool
	historyOpen   bool
	history       []HistoryItem
	noticeSeq     int
	copiedSeq     int

	sessionEvents <-chan SessionEvent
	unsubscribe   func()
}

type AppOption func(*App)

// WithCopyFunc sets the clipboard sink for CopyPrompt
func WithCopyFunc(fn func(string) error) AppOption {
	return func(a *App) {
		a.copyFn = fn
	}
}

func NewApp(api *API, opts ...AppOption) *App {
	a := &App{
		api:       api,
		hub:       NewSessionHub(),
		loop:      make(chan func()),
		quit:      make(chan struct{}),
		copyFn:    func(string) error { return nil },
		noticeTTL: defaultNoticeTTL,
		copiedTTL: defaultCopiedTTL,
		form:      model.FormInput{Level: types.DefaultLevel.String()},
	}
	for _, opt := range opts {
		opt(a)
	}

	a.sessionEvents, a.unsubscribe = a.hub.Subscribe()

	a.wg.Add(1)
	go a.run()

	return a
}

// Sessions exposes the session hub for additional subscribers
func (a *App) Sessions() *SessionHub {
	return a.hub
}

// Close stops the event loop. The App must not be used afterwards.
func (a *App) Close() {
	a.unsubscribe()
	close(a.quit)
	a.wg.Wait()
}

func (a *App) run() {
	defer a.wg.Done()
	for {
		select {
		case <-a.quit:
			return
		case fn := <-a.loop:
			fn()
		case ev, ok := <-a.sessionEvents:
			if !ok {
				continue
			}
			a.applySessionEvent(ev)
		}
	}
}

// do runs fn on the event loop and waits for it
func (a *App) do(fn func()) {
	done := make(chan struct{})
	select {
	case <-a.quit:
		return
	case a.loop <- func() { fn(); close(done) }:
	}
	select {
	case <-a.quit:
	case <-done:
	}
}

// post runs fn on the event loop without waiting
func (a *App) post(fn func()) {
	select {
	case <-a.quit:
	case a.loop <- fn:
	}
}

// Snapshot is a point-in-time copy of the visible state
type Snapshot struct {
	Form          model.FormInput
	Result        *model.GenerationResult
	IsLoading     bool
	Copied        bool
	OfflineNotice bool
	HistoryOpen   bool
	History       []HistoryItem
}

func (a *App) Snapshot() Snapshot {
	var s Snapshot
	a.do(func() {
		s = Snapshot{
			Form:          a.form,
			IsLoading:     a.isLoading,
			Copied:        a.copied,
			OfflineNotice: a.offlineNotice,
			HistoryOpen:   a.historyOpen,
			History:       append([]HistoryItem(nil), a.history...),
		}
		if a.result != nil {
			r := *a.result
			s.Result = &r
		}
	})
	return s
}

// UpdateForm mutates the form fields on the event loop
func (a *App) UpdateForm(fn func(*model.FormInput)) {
	a.do(func() { fn(&a.form) })
}

// Generate relays the current form. On any relay failure past local
// validation, the deterministic offline templates take over and a
// transient notice is raised. The result, from either path, replaces
// the previous one and is recorded in history.
func (a *App) Generate(ctx context.Context) error {
	var in model.FormInput
	busy := false
	a.do(func() {
		if a.isLoading {
			busy = true
			return
		}
		a.isLoading = true
		in = a.form
	})
	if busy {
		return ErrGenerationInFlight
	}

	// Validation failures never trigger the fallback; they are the
	// equivalent of the form refusing to submit.
	if err := in.Validate(); err != nil {
		a.do(func() { a.isLoading = false })
		return err
	}

	result, err := a.api.Generate(ctx, &in)
	usedFallback := false
	if err != nil {
		result = prompt.Fallback(&in)
		usedFallback = true
	}

	a.do(func() {
		a.isLoading = false
		a.result = result
		if usedFallback {
			a.raiseOfflineNotice()
		}
	})

	a.recordHistory(ctx, &in, result)
	return nil
}

func (a *App) raiseOfflineNotice() {
	a.offlineNotice = true
	a.noticeSeq++
	seq := a.noticeSeq
	time.AfterFunc(a.noticeTTL, func() {
		a.post(func() {
			if a.noticeSeq == seq {
				a.offlineNotice = false
			}
		})
	})
}

// CopyPrompt copies the whole current prompt to the clipboard sink
// and raises the copied flag, which clears itself.
func (a *App) CopyPrompt() error {
	var text string
	hasResult := false
	a.do(func() {
		if a.result != nil {
			text = a.result.Prompt
			hasResult = true
		}
	})
	if !hasResult {
		return goerr.New("no prompt to copy")
	}

	if err := a.copyFn(text); err != nil {
		return goerr.Wrap(err, "failed to copy prompt")
	}

	a.do(func() {
		a.copied = true
		a.copiedSeq++
		seq := a.copiedSeq
		time.AfterFunc(a.copiedTTL, func() {
			a.post(func() {
				if a.copiedSeq == seq {
					a.copied = false
				}
			})
		})
	})
	return nil
}

// OpenHistory / CloseHistory toggle the history panel
func (a *App) OpenHistory() {
	a.do(func() { a.historyOpen = true })
}

func (a *App) CloseHistory() {
	a.do(func() { a.historyOpen = false })
}

// LoadHistoryEntry restores a past generation: profile, goal and
// level come back while context and constraints are cleared, and the
// panel closes.
func (a *App) LoadHistoryEntry(id string) error {
	found := false
	a.do(func() {
		for _, item := range a.history {
			if item.ID != id {
				continue
			}
			found = true
			a.form = model.FormInput{
				Profile: item.Profile,
				Goal:    item.Goal,
				Level:   item.Level,
			}
			a.result = &model.GenerationResult{
				Thinking: item.Thinking,
				Prompt:   item.Prompt,
			}
			a.historyOpen = false
			return
		}
	})
	if !found {
		return goerr.New("history entry not found", goerr.V("id", id))
	}
	return nil
}

// recordHistory stores the generation locally for anonymous use, or
// through the relay for signed-in users (which answers with the
// refreshed list).
func (a *App) recordHistory(ctx context.Context, in *model.FormInput, result *model.GenerationResult) {
	item := HistoryItem{
		ID:        types.NewHistoryID().String(),
		Profile:   in.Profile,
		Goal:      in.Goal,
		Level:     in.EffectiveLevel().String(),
		Prompt:    result.Prompt,
		Thinking:  result.Thinking,
		Timestamp: time.Now().UTC(),
	}

	state, _ := a.hub.State()
	if state != SignedIn {
		a.do(func() {
			a.history = append([]HistoryItem{item}, a.history...)
			if len(a.history) > localHistoryLimit {
				a.history = a.history[:localHistoryLimit]
			}
		})
		return
	}

	entries, err := a.api.SaveHistory(ctx, item)
	if err != nil {
		// History is best-effort; the generation itself succeeded
		return
	}
	a.do(func() { a.history = entries })
}

// SignIn drives the session state machine through SigningIn and, on
// success, SignedIn. Failures return to SignedOut.
func (a *App) SignIn(ctx context.Context, email, password string) error {
	a.hub.set(SigningIn, nil)

	user, err := a.api.SignIn(ctx, email, password)
	if err != nil {
		a.hub.set(SignedOut, nil)
		return err
	}

	a.hub.set(SignedIn, user)
	return nil
}

// SignUp registers an account; it does not change the session state
func (a *App) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	return a.api.SignUp(ctx, email, password)
}

// SignOut ends the session on the server and locally
func (a *App) SignOut(ctx context.Context) error {
	err := a.api.SignOut(ctx)
	a.hub.set(SignedOut, nil)
	return err
}

// applySessionEvent runs on the event loop. Signing in loads the
// remote history; signing out clears it.
func (a *App) applySessionEvent(ev SessionEvent) {
	switch ev.State {
	case SignedIn:
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			entries, err := a.api.History(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load remote history")
			}
			a.post(func() { a.history = entries })
			return nil
		})
	case SignedOut:
		a.history = nil
		a.historyOpen = false
	}
}
