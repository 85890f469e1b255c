package appstate

import (
	"context"
	"strings"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/persist"
)

func (a *App) AddHotel(ctx context.Context, name string) ([]string, error) {
	return a.addName(a.hotels, name, "Hotel")
}

func (a *App) DeleteHotel(ctx context.Context, name string) ([]string, error) {
	return a.removeName(a.hotels, name, "Hotel")
}

func (a *App) AddDepartment(ctx context.Context, name string) ([]string, error) {
	return a.addName(a.departments, name, "Department")
}

func (a *App) DeleteDepartment(ctx context.Context, name string) ([]string, error) {
	return a.removeName(a.departments, name, "Department")
}

func (a *App) addName(st *persist.State[[]string], name, kind string) ([]string, error) {
	if err := a.lock(); err != nil {
		return nil, err
	}
	defer a.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidation(kind + " name is required.")
	}
	cur := st.Get()
	if contains(cur, name) {
		return nil, apperror.NewValidation(kind + " already exists.")
	}
	out := make([]string, 0, len(cur)+1)
	out = append(append(out, cur...), name)
	st.Set(out)
	return out, nil
}

func (a *App) removeName(st *persist.State[[]string], name, kind string) ([]string, error) {
	if err := a.lock(); err != nil {
		return nil, err
	}
	defer a.mu.Unlock()

	cur := st.Get()
	out := make([]string, 0, len(cur))
	for _, v := range cur {
		if v != name {
			out = append(out, v)
		}
	}
	if len(out) == len(cur) {
		return nil, apperror.NewNotFound(kind + " not found.")
	}
	st.Set(out)
	return out, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
