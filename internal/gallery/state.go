// Package gallery implements the client side of the image API: a pure
// state reducer for incremental page loading, a scroll trigger, and an
// HTTP client that drives them.
package gallery

// Phase is the fetch lifecycle phase of the gallery state.
type Phase int

const (
	// PhaseIdle means nothing has been loaded for the current query.
	PhaseIdle Phase = iota
	// PhaseLoading means exactly one page request is in flight.
	PhaseLoading
	// PhaseLoaded means at least one page has been merged.
	PhaseLoaded
	// PhaseErrored means the last request failed; Message says why.
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// DefaultLimit is the page size used when none is configured.
const DefaultLimit = 6

// Item is one gallery image as the API returns it.
type Item struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Keywords []string `json:"keywords"`
}

// State is the complete gallery client state. It is a value: Reduce
// never mutates its input, so two States can be compared or held
// side by side safely as long as Items is not written through.
type State struct {
	Phase   Phase
	Items   []Item
	Cursor  string
	HasMore bool

	Token   string
	Keyword string
	Limit   int

	// Generation increments on every query reset. Responses stamped
	// with an older generation are dropped instead of merged.
	Generation uint64

	// Message is the user-facing error text when Phase is Errored.
	Message string

	// PendingFetch is the one-slot queue between the scroll trigger
	// and the fetch lifecycle. It is consumed when a fetch starts.
	PendingFetch bool
}

// NewState returns the initial state. A non-positive limit falls back
// to DefaultLimit.
func NewState(limit int) State {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return State{
		Phase:   PhaseIdle,
		HasMore: true,
		Limit:   limit,
	}
}

// Fetchable reports whether a fetch could be started from this state.
func (s State) Fetchable() bool {
	return s.Phase != PhaseLoading && s.HasMore && s.Token != ""
}

// Event is a gallery state machine input.
type Event interface {
	isEvent()
}

// SetKeyword changes the active keyword filter and resets the query.
type SetKeyword struct {
	Keyword string
}

// SetLimit changes the page size and resets the query.
type SetLimit struct {
	Limit int
}

// SetToken replaces the held auth token and resets the query.
// An empty token is a logout.
type SetToken struct {
	Token string
}

// LoginSucceeded stores a freshly issued token, resets the query, and
// queues an initial load.
type LoginSucceeded struct {
	Token string
}

// FetchRequested asks for the next page. It starts a fetch when the
// state allows one, parks in the one-slot queue while a fetch is in
// flight, and is dropped entirely when no further fetch can ever
// succeed (no token, or the listing is exhausted).
type FetchRequested struct{}

// FetchSucceeded delivers a page response.
// NextCursor is empty when the server returned null (listing exhausted).
type FetchSucceeded struct {
	Generation uint64
	Items      []Item
	NextCursor string
}

// FetchFailed delivers a failed page request. Status is the HTTP
// status, or 0 for transport errors.
type FetchFailed struct {
	Generation uint64
	Status     int
	Message    string
}

func (SetKeyword) isEvent()     {}
func (SetLimit) isEvent()       {}
func (SetToken) isEvent()       {}
func (LoginSucceeded) isEvent() {}
func (FetchRequested) isEvent() {}
func (FetchSucceeded) isEvent() {}
func (FetchFailed) isEvent()    {}

// Reduce applies one event and returns the next state. It is pure:
// the input state is never modified.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case SetKeyword:
		if e.Keyword == s.Keyword {
			return s
		}
		next := reset(s)
		next.Keyword = e.Keyword
		return next

	case SetLimit:
		limit := e.Limit
		if limit <= 0 {
			limit = DefaultLimit
		}
		if limit == s.Limit {
			return s
		}
		next := reset(s)
		next.Limit = limit
		return next

	case SetToken:
		if e.Token == s.Token {
			return s
		}
		next := reset(s)
		next.Token = e.Token
		return next

	case LoginSucceeded:
		next := reset(s)
		next.Token = e.Token
		next.PendingFetch = true
		return next

	case FetchRequested:
		if s.Phase == PhaseLoading {
			// Park it; consumed once the in-flight request settles.
			next := s
			next.PendingFetch = true
			return next
		}
		if !s.HasMore || s.Token == "" {
			next := s
			next.PendingFetch = false
			return next
		}
		next := s
		next.Phase = PhaseLoading
		next.PendingFetch = false
		next.Message = ""
		return next

	case FetchSucceeded:
		if e.Generation != s.Generation || s.Phase != PhaseLoading {
			return s
		}
		next := s
		next.Items = mergeItems(s.Items, e.Items)
		next.Cursor = e.NextCursor
		next.HasMore = e.NextCursor != ""
		next.Phase = PhaseLoaded
		return next

	case FetchFailed:
		if e.Generation != s.Generation || s.Phase != PhaseLoading {
			return s
		}
		next := s
		next.Phase = PhaseErrored
		next.PendingFetch = false
		if e.Status == 401 {
			// Server rejected the token: treat as an implicit logout.
			next.Token = ""
			next.Message = "Session expired. Please log in again."
		} else {
			next.Message = e.Message
		}
		return next

	default:
		return s
	}
}

// reset clears accumulated results and starts a new query generation.
// Query parameters and token survive; callers overwrite what changed.
func reset(s State) State {
	return State{
		Phase:      PhaseIdle,
		HasMore:    true,
		Token:      s.Token,
		Keyword:    s.Keyword,
		Limit:      s.Limit,
		Generation: s.Generation + 1,
	}
}

// mergeItems unions incoming into existing, keyed by id. Known ids are
// updated in place, keeping their first-seen position; new ids are
// appended in response order. Neither input slice is modified.
func mergeItems(existing, incoming []Item) []Item {
	merged := make([]Item, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, item := range merged {
		index[item.ID] = i
	}

	for _, item := range incoming {
		if i, ok := index[item.ID]; ok {
			merged[i] = item
			continue
		}
		index[item.ID] = len(merged)
		merged = append(merged, item)
	}

	return merged
}
