package appstate

import (
	"context"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/audits"
	"hotel-audit-pro/internal/library"
)

const defaultSOPCategory = "All Departments"

func (a *App) AddSOP(ctx context.Context, in library.SOPInput) (library.SOP, error) {
	if err := a.lock(); err != nil {
		return library.SOP{}, err
	}
	defer a.mu.Unlock()

	def := defaultSOPCategory
	if depts := a.Departments(); len(depts) > 0 {
		def = depts[0]
	}
	sop, err := library.BuildSOP(a.newID("sop"), in, def)
	if err != nil {
		return library.SOP{}, err
	}
	a.sops.Set(prepend(a.SOPs(), sop))
	return sop, nil
}

func (a *App) DeleteSOP(ctx context.Context, id string) error {
	if err := a.lock(); err != nil {
		return err
	}
	defer a.mu.Unlock()

	out, ok := removeByID(a.SOPs(), id)
	if !ok {
		return apperror.NewNotFound("SOP not found.")
	}
	a.sops.Set(out)
	return nil
}

// ConvertSOP turns an SOP into a new template, one item per content line.
func (a *App) ConvertSOP(ctx context.Context, id string) (audits.Template, error) {
	if err := a.lock(); err != nil {
		return audits.Template{}, err
	}
	defer a.mu.Unlock()

	sop, ok := library.FindSOP(a.SOPs(), id)
	if !ok {
		return audits.Template{}, apperror.NewNotFound("SOP not found.")
	}
	t := audits.TemplateFromSOP(a.newID("temp"), sop.Title, sop.Category, sop.Content, a.Departments())
	if t.Department == "" {
		return audits.Template{}, apperror.NewValidation("Add a department before converting SOPs.")
	}
	a.templates.Set(prepend(a.Templates(), t))
	return t, nil
}

func (a *App) Collection(id string) (library.Bundle, error) {
	c, ok := library.FindCollection(a.Collections(), id)
	if !ok {
		return library.Bundle{}, apperror.NewNotFound("Collection not found.")
	}
	return library.Resolve(c, a.Templates(), a.SOPs()), nil
}

func (a *App) AddCollection(ctx context.Context, in library.CollectionInput) (library.Collection, error) {
	if err := a.lock(); err != nil {
		return library.Collection{}, err
	}
	defer a.mu.Unlock()

	c, err := library.BuildCollection(a.newID("col"), in)
	if err != nil {
		return library.Collection{}, err
	}
	a.collections.Set(prepend(a.Collections(), c))
	return c, nil
}

func (a *App) DeleteCollection(ctx context.Context, id string) error {
	if err := a.lock(); err != nil {
		return err
	}
	defer a.mu.Unlock()

	out, ok := removeByID(a.Collections(), id)
	if !ok {
		return apperror.NewNotFound("Collection not found.")
	}
	a.collections.Set(out)
	return nil
}
