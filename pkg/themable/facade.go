package themable

import (
	"sync"

	"github.com/kcaldas/themekit/pkg/events"
	"github.com/kcaldas/themekit/pkg/logging"
	"github.com/kcaldas/themekit/pkg/theme"
)

// DefaultThemeFile is the document name used when neither the consumer nor the
// configuration names one.
const DefaultThemeFile = "theme"

// Resolver loads a fresh store on every call, so each resolution sees the
// document as it currently is on disk.
type Resolver struct {
	Locations   theme.Locations
	DefaultFile string
	Options     []theme.Option
}

// NewResolver creates a resolver. An empty defaultFile means DefaultThemeFile.
func NewResolver(loc theme.Locations, defaultFile string, opts ...theme.Option) *Resolver {
	if defaultFile == "" {
		defaultFile = DefaultThemeFile
	}
	return &Resolver{Locations: loc, DefaultFile: defaultFile, Options: opts}
}

// Store loads file, or the default file when file is empty.
func (r *Resolver) Store(file string) *theme.Store {
	if file == "" {
		file = r.DefaultFile
	}
	return theme.NewStore(file, r.Locations, r.Options...)
}

// CurrentScope returns the top-level scope name from file with its global
// style composed in, or nil when the document has no such scope.
func (r *Resolver) CurrentScope(name, file string) *theme.Scope {
	store := r.Store(file)
	return theme.ComposeGlobalStyle(store.ScopeNamed(name), store.ScopeNamed)
}

// Facade applies resolved scopes to registered consumers and re-applies them
// whenever a reload event arrives. Every application the facade makes, the
// first one in Register included, holds one lock, so a consumer never sees two
// Apply calls at once. Apply must not call back into the facade.
type Facade struct {
	resolver   *Resolver
	subscriber events.Subscriber
	log        logging.Logger

	applyMu sync.Mutex

	mu         sync.Mutex
	registered int
}

// NewFacade creates a facade. A nil subscriber disables live reload.
func NewFacade(resolver *Resolver, subscriber events.Subscriber, log logging.Logger) *Facade {
	return &Facade{
		resolver:   resolver,
		subscriber: subscriber,
		log:        logging.OrDisabled(log).With("component", "facade"),
	}
}

// CurrentScope resolves t's declared name in t's declared file.
func (f *Facade) CurrentScope(t Themable) *theme.Scope {
	return f.resolver.CurrentScope(DeclaredName(t), DeclaredFile(t, f.resolver.DefaultFile))
}

// ApplyLatest resolves t and applies the result: first to t itself when it is
// an Applier, then to each child whose label has a nested mapping. When
// nothing resolves, t is left as it is.
func (f *Facade) ApplyLatest(t Themable) {
	f.applyMu.Lock()
	defer f.applyMu.Unlock()
	f.applyLatest(t)
}

func (f *Facade) applyLatest(t Themable) {
	name := DeclaredName(t)
	scope := f.CurrentScope(t)
	if scope == nil {
		f.log.Debug("no scope for consumer", "name", name)
		return
	}

	children := t.ThemeChildren()
	if a, ok := t.(Applier); ok {
		recognized := a.RecognizedKeys()
		for _, c := range children {
			recognized = append(recognized, c.Label)
		}
		f.reportUnknown(name, scope, recognized)
		a.Apply(scope)
	}

	for _, c := range children {
		if c.Target == nil {
			continue
		}
		inner := scope.InnerScope(c.Label)
		if inner == nil {
			continue
		}
		f.reportUnknown(name+"."+c.Label, inner, c.Target.RecognizedKeys())
		c.Target.Apply(inner)
	}
}

// Register applies t once on the calling goroutine and again after every
// reload. A reload arriving during the first application waits for it. The
// returned func stops the reloads.
func (f *Facade) Register(t Themable) (unregister func()) {
	if f.subscriber == nil {
		f.ApplyLatest(t)
		return func() {}
	}

	f.applyMu.Lock()
	unsubscribe := f.subscriber.Subscribe(events.ReloadTopic, func(interface{}) {
		f.ApplyLatest(t)
	})
	f.applyLatest(t)
	f.applyMu.Unlock()

	f.mu.Lock()
	f.registered++
	f.mu.Unlock()
	f.log.Debug("consumer registered", "name", DeclaredName(t))

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			f.mu.Lock()
			f.registered--
			f.mu.Unlock()
		})
	}
}

// Registered reports how many consumers are receiving reloads.
func (f *Facade) Registered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registered
}

func (f *Facade) reportUnknown(name string, scope *theme.Scope, recognized []string) {
	for _, key := range UnknownKeys(scope, recognized) {
		f.log.Warn("unrecognized theme key", "scope", name, "key", key)
	}
}
