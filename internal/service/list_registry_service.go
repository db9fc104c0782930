package service

import (
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const registryKeySep = "|"

// ListRegistry holds one AppointmentList per session and view. A view expires once it
// has gone unused for ttl, and the least recently used view is evicted beyond size.
type ListRegistry struct {
	source  appointmentSource
	metrics *MetricsService
	logger  *zap.Logger

	mu    sync.Mutex
	views *expirable.LRU[string, *AppointmentList]
}

// NewListRegistry constructs a registry backed by an expiring LRU.
func NewListRegistry(source appointmentSource, size int, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *ListRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size <= 0 {
		size = 1024
	}
	r := &ListRegistry{source: source, metrics: metrics, logger: logger}
	r.views = expirable.NewLRU[string, *AppointmentList](size, func(key string, list *AppointmentList) {
		list.Close()
		metrics.ViewClosed()
		logger.Debug("list view closed", zap.String("key", key))
	}, ttl)
	return r
}

// Get returns the session's controller for variant, creating it on first use.
func (r *ListRegistry) Get(sessionID string, variant ListVariant, creds Credentials) *AppointmentList {
	key := sessionID + registryKeySep + variant.Name
	r.mu.Lock()
	defer r.mu.Unlock()
	if list, ok := r.views.Get(key); ok && !list.isClosed() {
		// expirable.LRU only extends an entry's lifetime when it is re-added
		r.views.Add(key, list)
		return list
	}
	// an expired entry not yet swept is evicted here so its controller is closed
	r.views.Remove(key)
	list := NewAppointmentList(variant, r.source, creds, r.metrics, r.logger)
	r.views.Add(key, list)
	r.metrics.ViewOpened()
	return list
}

// DropSession closes every view owned by sessionID.
func (r *ListRegistry) DropSession(sessionID string) {
	prefix := sessionID + registryKeySep
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.views.Keys() {
		if strings.HasPrefix(key, prefix) {
			r.views.Remove(key)
		}
	}
}

// Len reports the number of open views.
func (r *ListRegistry) Len() int {
	return r.views.Len()
}
