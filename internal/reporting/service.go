package reporting

import (
	"context"
	"errors"
	"strings"

	"hotel-audit-pro/internal/analytics"
	"hotel-audit-pro/internal/audits"
	"hotel-audit-pro/internal/incidents"
	"hotel-audit-pro/internal/users"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository abstracts read access for reporting.
// Implementations return snapshots; callers may not mutate shared state.
type Repository interface {
	ListAudits(ctx context.Context) ([]audits.Audit, error)
	ListIncidents(ctx context.Context) ([]incidents.Incident, error)
	ListUsers(ctx context.Context) ([]users.User, error)
}

type Service struct {
	repo     Repository
	baseline int
}

func NewService(repo Repository, baseline int) *Service {
	return &Service{repo: repo, baseline: baseline}
}

func (s *Service) ready() error {
	if s.repo == nil {
		return errors.New("reporting: repository not configured")
	}
	return nil
}

// CompletedAudits lists the audit archive visible to the viewer.
func (s *Service) CompletedAudits(ctx context.Context, req ArchiveRequest) ([]AuditReport, error) {
	if req.Viewer.ID == "" {
		return nil, ErrInvalidRequest
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAudits(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]AuditReport, 0)
	for _, a := range (audits.Filter{Query: req.Query}).Apply(rows) {
		if !audits.ArchivedFor(a, req.Viewer) {
			continue
		}
		out = append(out, AuditReport{Audit: a, Score: audits.Score(a), Inspected: audits.Inspected(a)})
	}
	return out, nil
}

// ClosedIncidents lists resolved and verified incidents visible to the viewer.
func (s *Service) ClosedIncidents(ctx context.Context, req ArchiveRequest) ([]IncidentReport, error) {
	if req.Viewer.ID == "" {
		return nil, ErrInvalidRequest
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListIncidents(ctx)
	if err != nil {
		return nil, err
	}
	people, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(req.Query))
	out := make([]IncidentReport, 0)
	for _, inc := range rows {
		if !incidents.ArchivedFor(inc, req.Viewer) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(inc.Title), q) {
			continue
		}
		out = append(out, IncidentReport{Incident: inc, AssigneeName: users.Resolve(inc.Assignee, people)})
	}
	return out, nil
}

func (s *Service) Dashboard(ctx context.Context, viewer users.User) (Dashboard, error) {
	if viewer.ID == "" {
		return Dashboard{}, ErrInvalidRequest
	}
	if err := s.ready(); err != nil {
		return Dashboard{}, err
	}
	auditRows, err := s.repo.ListAudits(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	incidentRows, err := s.repo.ListIncidents(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{
		Summary: analytics.Summarize(auditRows, incidentRows, s.baseline),
		Pending: make([]audits.Audit, 0),
		Trend:   analytics.WeeklyTrend(auditRows, s.baseline),
	}
	for _, a := range auditRows {
		if a.Status == audits.StatusPending && audits.VisibleTo(a, viewer) {
			out.Pending = append(out.Pending, a)
		}
	}
	return out, nil
}

// Analytics builds the admin view. An empty or "All" department groups rows
// by department; a named one drills down to item descriptions.
func (s *Service) Analytics(ctx context.Context, department string) (AnalyticsView, error) {
	if err := s.ready(); err != nil {
		return AnalyticsView{}, err
	}
	auditRows, err := s.repo.ListAudits(ctx)
	if err != nil {
		return AnalyticsView{}, err
	}
	people, err := s.repo.ListUsers(ctx)
	if err != nil {
		return AnalyticsView{}, err
	}
	if department == "" {
		department = "All"
	}
	return AnalyticsView{
		Department: department,
		Heatmap:    analytics.Heatmap(auditRows, department),
		Failures:   analytics.TopFailures(auditRows),
		Trend:      analytics.WeeklyTrend(auditRows, s.baseline),
		Team:       analytics.TeamProgress(auditRows, people),
	}, nil
}
