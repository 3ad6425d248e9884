package scope

import (
	"log/slog"

	"github.com/Alijeyrad/ghasedak/pkg/event"
)

// maxBreadcrumbs bounds the breadcrumb trail; the oldest entry is dropped
// once the limit is reached.
const maxBreadcrumbs = 100

// Scope is the per-request mutable bag of enrichment data.
type Scope struct {
	name        string
	user        *event.User
	tags        map[string]string
	breadcrumbs []event.Breadcrumb
	processors  []event.Processor
}

// New creates an empty scope identified by name.
func New(name string) *Scope {
	return &Scope{name: name}
}

// Name returns the scope identifier.
func (s *Scope) Name() string {
	return s.name
}

// SetUser replaces the scope's user.
func (s *Scope) SetUser(u event.User) {
	s.user = &u
}

// MergeUser copies non-empty fields of u into the scope's user,
// keeping fields that are already set (first write wins per field).
// An entirely empty u leaves the scope untouched: no empty-but-present
// user record is ever created.
func (s *Scope) MergeUser(u event.User) {
	if u.IsEmpty() {
		return
	}
	if s.user == nil {
		s.user = &event.User{}
	}
	if s.user.ID == "" {
		s.user.ID = u.ID
	}
	if s.user.Username == "" {
		s.user.Username = u.Username
	}
	if s.user.Email == "" {
		s.user.Email = u.Email
	}
}

// User returns a copy of the scope's user and whether one was set.
func (s *Scope) User() (event.User, bool) {
	if s.user == nil {
		return event.User{}, false
	}
	return *s.user, true
}

// SetTag sets a tag that is applied to every event emitted in this scope.
func (s *Scope) SetTag(key, value string) {
	if s.tags == nil {
		s.tags = make(map[string]string)
	}
	s.tags[key] = value
}

// AddBreadcrumb appends a breadcrumb, dropping the oldest entry once the
// trail is full.
func (s *Scope) AddBreadcrumb(b event.Breadcrumb) {
	if len(s.breadcrumbs) >= maxBreadcrumbs {
		s.breadcrumbs = s.breadcrumbs[1:]
	}
	s.breadcrumbs = append(s.breadcrumbs, b)
}

// AddEventProcessor appends a processor. Processors run in registration
// order when an event is about to be reported.
func (s *Scope) AddEventProcessor(p event.Processor) {
	s.processors = append(s.processors, p)
}

// Apply enriches ev with the scope's state and runs the registered
// processors in order. A processor that returns nil or panics is logged
// and skipped; the event as of the previous processor continues on, so a
// broken processor cannot prevent delivery.
func (s *Scope) Apply(ev *event.Event, log *slog.Logger) *event.Event {
	if ev == nil {
		return nil
	}

	if s.user != nil && ev.User == nil {
		u := *s.user
		ev.User = &u
	}
	for k, v := range s.tags {
		if ev.Tags == nil {
			ev.Tags = make(map[string]string, len(s.tags))
		}
		if _, ok := ev.Tags[k]; !ok {
			ev.Tags[k] = v
		}
	}
	if len(s.breadcrumbs) > 0 && ev.Breadcrumbs == nil {
		ev.Breadcrumbs = append([]event.Breadcrumb(nil), s.breadcrumbs...)
	}

	for i, p := range s.processors {
		next := s.runProcessor(p, ev, i, log)
		if next == nil {
			continue
		}
		ev = next
	}
	return ev
}

func (s *Scope) runProcessor(p event.Processor, ev *event.Event, i int, log *slog.Logger) (out *event.Event) {
	defer func() {
		if r := recover(); r != nil {
			if log != nil {
				log.Error("event processor panicked, event delivered unmodified",
					slog.String("scope", s.name), slog.Int("processor", i), slog.Any("panic", r))
			}
			out = nil
		}
	}()

	out = p(ev)
	if out == nil && log != nil {
		log.Warn("event processor returned nil, event delivered unmodified",
			slog.String("scope", s.name), slog.Int("processor", i))
	}
	return out
}
