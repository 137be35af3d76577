package ws

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"career-compass/internal/domain/analysis"

	"github.com/google/uuid"
)

type marketUpdatedEvent struct {
	Type       string `json:"type"`
	TargetRole string `json:"target_role"`
	Source     string `json:"source"`
	Timestamp  string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyAnalysisEvent pushes one pipeline event to the owning user's
// open sockets. Without a hub it is a no-op.
func NotifyAnalysisEvent(userID uuid.UUID, ev analysis.Event) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.Send(userID, b)
}

// NotifyMarketUpdated tells every connected client that fresh postings
// landed for a role.
func NotifyMarketUpdated(targetRole, source string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	targetRole = strings.ToLower(strings.TrimSpace(targetRole))
	if targetRole == "" {
		return
	}

	evt := marketUpdatedEvent{
		Type:       "market_updated",
		TargetRole: targetRole,
		Source:     source,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}

// Notifier adapts the package hub to the pipeline's notification port.
type Notifier struct{}

func (Notifier) Notify(userID uuid.UUID, ev analysis.Event) {
	NotifyAnalysisEvent(userID, ev)
}
