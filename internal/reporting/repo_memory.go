package reporting

import (
	"context"
	"sync"

	"hotel-audit-pro/internal/audits"
	"hotel-audit-pro/internal/incidents"
	"hotel-audit-pro/internal/users"
)

// MemoryRepo is a simple in-memory reporting repository for tests.
type MemoryRepo struct {
	mu sync.Mutex

	Audits    []audits.Audit
	Incidents []incidents.Incident
	Users     []users.User
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) ListAudits(ctx context.Context) ([]audits.Audit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audits.Audit(nil), r.Audits...), nil
}

func (r *MemoryRepo) ListIncidents(ctx context.Context) ([]incidents.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]incidents.Incident(nil), r.Incidents...), nil
}

func (r *MemoryRepo) ListUsers(ctx context.Context) ([]users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]users.User(nil), r.Users...), nil
}
