package appstate

import (
	"context"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/incidents"
	"hotel-audit-pro/internal/users"
)

var errIncidentNotFound = apperror.NewNotFound("Incident not found.")

func (a *App) QueryIncidents(q incidents.Query) []incidents.Incident {
	return incidents.List(a.Incidents(), q, a.Users())
}

func (a *App) Incident(id string) (incidents.Incident, error) {
	inc, ok := incidents.Find(a.Incidents(), id)
	if !ok {
		return incidents.Incident{}, errIncidentNotFound
	}
	return inc, nil
}

// ReportIncident files a new incident on behalf of reporter.
func (a *App) ReportIncident(ctx context.Context, in incidents.ReportInput, reporter users.User) (incidents.Incident, error) {
	if err := a.lock(); err != nil {
		return incidents.Incident{}, err
	}
	defer a.mu.Unlock()

	in.Assignee = users.Normalize(in.Assignee, a.Users())
	inc, err := a.reports.Report(in, reporter.Name)
	if err != nil {
		return incidents.Incident{}, err
	}
	a.incidents.Set(prepend(a.Incidents(), inc))
	return inc, nil
}

// UpdateIncidentStatus moves an incident to next and prepends one history entry.
func (a *App) UpdateIncidentStatus(ctx context.Context, id string, next incidents.Status, comment string, actor users.User) (incidents.Incident, error) {
	if err := a.lock(); err != nil {
		return incidents.Incident{}, err
	}
	defer a.mu.Unlock()

	list := a.Incidents()
	cur, ok := incidents.Find(list, id)
	if !ok {
		return incidents.Incident{}, errIncidentNotFound
	}
	inc, err := a.reports.UpdateStatus(cur, next, comment, actor.Name)
	if err != nil {
		return incidents.Incident{}, err
	}
	out, _ := replaceByID(list, inc)
	a.incidents.Set(out)
	return inc, nil
}
