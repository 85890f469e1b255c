package appstate

import (
	"context"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/audits"
	"hotel-audit-pro/internal/users"
)

var errAuditNotFound = apperror.NewNotFound("Audit not found.")

// VisibleAudits lists the audits viewer works on, narrowed by f.
func (a *App) VisibleAudits(viewer users.User, f audits.Filter) []audits.Audit {
	out := make([]audits.Audit, 0)
	for _, au := range f.Apply(a.Audits()) {
		if audits.VisibleTo(au, viewer) {
			out = append(out, au)
		}
	}
	return out
}

func (a *App) Audit(id string) (audits.Audit, error) {
	au, ok := audits.Find(a.Audits(), id)
	if !ok {
		return audits.Audit{}, errAuditNotFound
	}
	return au, nil
}

// ScheduleAudit creates an audit from the admin form.
func (a *App) ScheduleAudit(ctx context.Context, in audits.NewAuditInput) (audits.Audit, error) {
	if err := a.lock(); err != nil {
		return audits.Audit{}, err
	}
	defer a.mu.Unlock()

	if !contains(a.Departments(), in.Department) {
		return audits.Audit{}, apperror.NewValidation("Unknown department.")
	}
	if in.HotelName != "" && !contains(a.Hotels(), in.HotelName) {
		return audits.Audit{}, apperror.NewValidation("Unknown hotel.")
	}
	people := a.Users()
	for i := range in.Items {
		in.Items[i].Assignee = users.Normalize(in.Items[i].Assignee, people)
	}
	au, err := audits.Build(in, a.newID)
	if err != nil {
		return audits.Audit{}, err
	}
	a.audits.Set(prepend(a.Audits(), au))
	return au, nil
}

// StartFromTemplate instantiates a template as a pending audit due now.
func (a *App) StartFromTemplate(ctx context.Context, templateID, hotel string) (audits.Audit, error) {
	if err := a.lock(); err != nil {
		return audits.Audit{}, err
	}
	defer a.mu.Unlock()

	t, ok := audits.FindTemplate(a.Templates(), templateID)
	if !ok {
		return audits.Audit{}, apperror.NewNotFound("Template not found.")
	}
	if hotel != "" && !contains(a.Hotels(), hotel) {
		return audits.Audit{}, apperror.NewValidation("Unknown hotel.")
	}
	au := audits.FromTemplate(t, hotel, a.clock.Now(), a.newID)
	a.audits.Set(prepend(a.Audits(), au))
	return au, nil
}

// UpdateAudit replaces a whole audit record. Item assignees are matched
// against the user list the same way single-item edits are.
func (a *App) UpdateAudit(ctx context.Context, next audits.Audit) (audits.Audit, error) {
	return a.modifyAudit(next.ID, func(cur audits.Audit) (audits.Audit, error) {
		list := a.Users()
		items := make([]audits.Item, len(next.Items))
		for i, it := range next.Items {
			it.Assignee = users.Normalize(it.Assignee, list)
			items[i] = it
		}
		next.Items = items
		return audits.Replace(cur, next, a.clock.Now())
	})
}

func (a *App) RecordItem(ctx context.Context, auditID, itemID string, upd audits.ItemUpdate) (audits.Audit, error) {
	return a.modifyAudit(auditID, func(cur audits.Audit) (audits.Audit, error) {
		upd.Assignee = users.Normalize(upd.Assignee, a.Users())
		return audits.RecordItem(cur, itemID, upd)
	})
}

func (a *App) CompleteAudit(ctx context.Context, auditID string) (audits.Audit, error) {
	return a.modifyAudit(auditID, func(cur audits.Audit) (audits.Audit, error) {
		return audits.Complete(cur, a.clock.Now())
	})
}

func (a *App) modifyAudit(id string, fn func(audits.Audit) (audits.Audit, error)) (audits.Audit, error) {
	if err := a.lock(); err != nil {
		return audits.Audit{}, err
	}
	defer a.mu.Unlock()

	list := a.Audits()
	cur, ok := audits.Find(list, id)
	if !ok {
		return audits.Audit{}, errAuditNotFound
	}
	next, err := fn(cur)
	if err != nil {
		return audits.Audit{}, err
	}
	out, _ := replaceByID(list, next)
	a.audits.Set(out)
	return next, nil
}

func (a *App) AddTemplate(ctx context.Context, in audits.TemplateInput) (audits.Template, error) {
	if err := a.lock(); err != nil {
		return audits.Template{}, err
	}
	defer a.mu.Unlock()

	people := a.Users()
	for i := range in.Items {
		in.Items[i].Assignee = users.Normalize(in.Items[i].Assignee, people)
	}
	t, err := audits.BuildTemplate(a.newID("temp"), in)
	if err != nil {
		return audits.Template{}, err
	}
	a.templates.Set(prepend(a.Templates(), t))
	return t, nil
}

func (a *App) DeleteTemplate(ctx context.Context, id string) error {
	if err := a.lock(); err != nil {
		return err
	}
	defer a.mu.Unlock()

	out, ok := removeByID(a.Templates(), id)
	if !ok {
		return apperror.NewNotFound("Template not found.")
	}
	a.templates.Set(out)
	return nil
}
