// Package seed holds the demo dataset installed when a collection is empty.
// Every function returns a fresh copy.
package seed

import (
	"time"

	"hotel-audit-pro/internal/audits"
	"hotel-audit-pro/internal/incidents"
	"hotel-audit-pro/internal/library"
	"hotel-audit-pro/internal/users"
)

const (
	Kitchen      = "Kitchen"
	Housekeeping = "Housekeeping"
	FrontOffice  = "Front Office"
	Maintenance  = "Maintenance"
)

// HygieneBaseline is reported as the weekly average when no day has data.
const HygieneBaseline = 94

func Hotels() []string {
	return []string{"Grand Plaza Hotel", "Seaside Resort"}
}

func Departments() []string {
	return []string{Kitchen, Housekeeping, FrontOffice, Maintenance}
}

func Users() []users.User {
	return []users.User{
		{ID: "u1", Name: "Jane Doe", Email: "admin@hotel.com", Password: "password123", Role: users.RoleAdmin, Avatar: "JD", Department: "Management", Status: users.StatusActive},
		{ID: "u2", Name: "Bob Smith", Email: "bob@hotel.com", Password: "password123", Role: users.RoleStaff, Avatar: "BS", Department: Kitchen, Status: users.StatusActive},
		{ID: "u3", Name: "Alice Johnson", Email: "alice@hotel.com", Password: "password123", Role: users.RoleStaff, Avatar: "AJ", Department: Housekeeping, Status: users.StatusActive},
		{ID: "u4", Name: "Charlie Brown", Email: "charlie@hotel.com", Password: "password123", Role: users.RoleStaff, Avatar: "CB", Department: "FrontOffice", Status: users.StatusOnHold},
	}
}

func bob() *users.AssigneeRef   { return &users.AssigneeRef{UserID: "u2", Name: "Bob Smith"} }
func alice() *users.AssigneeRef { return &users.AssigneeRef{UserID: "u3", Name: "Alice Johnson"} }
func named(n string) *users.AssigneeRef {
	return &users.AssigneeRef{Name: n}
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func Audits() []audits.Audit {
	pass, fail := audits.ResultPass, audits.ResultFail
	return []audits.Audit{
		{
			ID: "audit-1", Title: "Morning Kitchen Prep Audit", Department: Kitchen, HotelName: "Grand Plaza Hotel",
			Status: audits.StatusPending, DueDate: at(2024, 8, 15, 10, 0),
			Items: []audits.Item{
				{ID: "item-1-1", Description: "Refrigerator temperatures below 40°F/4°C", Assignee: alice()},
				{ID: "item-1-2", Description: "All food surfaces sanitized", Assignee: bob(), Temperature: ptr(38.0)},
				{ID: "item-1-3", Description: "Hand washing stations stocked and clean"},
				{ID: "item-1-4", Description: "Proper food labeling and dating"},
			},
		},
		{
			ID: "audit-2", Title: "Room 201 Turnover Inspection", Department: Housekeeping, HotelName: "Grand Plaza Hotel",
			Status: audits.StatusPending, DueDate: at(2024, 8, 15, 14, 30),
			Items: []audits.Item{
				{ID: "item-2-1", Description: "Bed linens are fresh and wrinkle-free", Assignee: alice()},
				{ID: "item-2-2", Description: "Bathroom surfaces sanitized and polished", Assignee: named("Maria Garcia")},
				{ID: "item-2-3", Description: "No dust on surfaces (headboard, tables, lamps)"},
				{ID: "item-2-4", Description: "Trash cans empty and clean"},
				{ID: "item-2-5", Description: "Welcome amenities correctly placed"},
			},
		},
		{
			ID: "audit-3", Title: "Lobby & Entrance Cleanliness Check", Department: FrontOffice, HotelName: "Grand Plaza Hotel",
			Status: audits.StatusCompleted, DueDate: at(2024, 8, 14, 9, 0), CompletedAt: ptr(at(2024, 8, 14, 0, 0)),
			Items: []audits.Item{
				{ID: "item-3-1", Description: "Glass doors are free of smudges", Result: pass, Notes: "Looks good.", Assignee: named("John Doe")},
				{ID: "item-3-2", Description: "Floors are clean and dry", Result: pass, Assignee: named("John Doe")},
				{ID: "item-3-3", Description: "Reception desk is tidy and organized", Result: pass, Assignee: named("Sarah Lee")},
				{ID: "item-3-4", Description: "Seating area is clean and inviting", Result: fail, Photo: "https://picsum.photos/400/300", Notes: "Cushion out of place.", Assignee: named("Sarah Lee")},
				{ID: "item-3-5", Description: "Main entrance clear of obstructions", Result: pass, Assignee: named("John Doe")},
				{ID: "item-3-6", Description: "Ambient lighting functional", Result: fail, Notes: "One light flickering near plant.", Assignee: named("John Doe")},
			},
		},
		{
			ID: "audit-4", Title: "Evening Kitchen Close Down", Department: Kitchen, HotelName: "Seaside Resort",
			Status: audits.StatusCompleted, DueDate: at(2024, 8, 13, 22, 0), CompletedAt: ptr(at(2024, 8, 13, 0, 0)),
			Items: []audits.Item{
				{ID: "item-4-1", Description: "All cooking equipment turned off and cleaned", Result: pass, Assignee: bob()},
				{ID: "item-4-2", Description: "Floors swept and mopped", Result: fail, Notes: "Some grease spots remain near fryers.", Assignee: bob()},
				{ID: "item-4-3", Description: "Waste bins emptied and sanitized", Result: pass, Assignee: bob()},
				{ID: "item-4-4", Description: "Cold storage locked securely", Result: pass, Assignee: bob()},
			},
		},
		{
			ID: "audit-5", Title: "Guest Room 302 Maintenance Check", Department: Maintenance, HotelName: "Seaside Resort",
			Status: audits.StatusCompleted, DueDate: at(2024, 8, 12, 11, 0), CompletedAt: ptr(at(2024, 8, 12, 0, 0)),
			Items: []audits.Item{
				{ID: "item-5-1", Description: "HVAC system functioning correctly", Result: pass, Notes: "Checked filter, OK.", Assignee: named("John Doe")},
				{ID: "item-5-2", Description: "Plumbing fixtures (faucets, shower) checked for leaks", Result: pass, Assignee: named("John Doe")},
				{ID: "item-5-3", Description: "All lights and outlets functional", Result: pass, Assignee: named("John Doe")},
				{ID: "item-5-4", Description: "Window seals intact, no drafts", Result: fail, Notes: "Small draft near balcony door.", Assignee: named("John Doe")},
			},
		},
	}
}

func Templates() []audits.Template {
	return []audits.Template{
		{ID: "temp-1", Title: "Daily Kitchen Opening", Department: Kitchen, Items: []audits.TemplateItem{
			{Description: "Check fridge temp", Assignee: bob()},
			{Description: "Sanitize food prep surfaces", Assignee: bob()},
			{Description: "Verify dishwasher chemicals", Assignee: bob()},
		}},
		{ID: "temp-2", Title: "Standard Room Inspection", Department: Housekeeping, Items: []audits.TemplateItem{
			{Description: "Check for dust on high surfaces", Assignee: alice()},
			{Description: "Ensure bathroom amenities stocked", Assignee: alice()},
			{Description: "Test TV and remote", Assignee: alice()},
		}},
	}
}

func Incidents() []incidents.Incident {
	ts := func(d, h, m int) time.Time { return at(2024, 8, d, h, m) }
	// history is newest first
	return []incidents.Incident{
		{
			ID: "inc-1", Title: "Pest Sighting in Kitchen", Description: "A small rodent was reported near the dry storage area.",
			Department: Kitchen, Assignee: named("Exterminator Co."), Status: incidents.StatusInProgress,
			Priority: incidents.PriorityCritical, Type: incidents.TypeEmergency, ReportedAt: ts(14, 8, 0),
			History: []incidents.Activity{
				{ID: "h2", Timestamp: ts(14, 9, 30), Action: incidents.ActionStatusUpdate, User: "Jane Doe", Details: "Changed status to In Progress. Exterminator contacted."},
				{ID: "h1", Timestamp: ts(14, 8, 0), Action: incidents.ActionReported, User: "Jane Doe", Details: "Initial sighting reported."},
			},
		},
		{
			ID: "inc-2", Title: "Leaky Faucet in Room 305", Description: "Guest reported a constant drip from the bathroom sink.",
			Department: Maintenance, Assignee: named("John Doe"), Status: incidents.StatusOpen,
			Priority: incidents.PriorityMedium, Type: incidents.TypeDailyLog, ReportedAt: ts(15, 10, 15),
			History: []incidents.Activity{
				{ID: "h3", Timestamp: ts(15, 10, 15), Action: incidents.ActionReported, User: "Alice Johnson", Details: "Guest complaint logged."},
			},
		},
		{
			ID: "inc-3", Title: "Lobby carpet stain", Description: "Coffee spill near the main entrance that requires deep cleaning.",
			Department: Housekeeping, Assignee: named("Cleaning Crew"), Status: incidents.StatusResolved,
			Priority: incidents.PriorityLow, Type: incidents.TypeDailyLog, ReportedAt: ts(13, 14, 0),
			History: []incidents.Activity{
				{ID: "h5", Timestamp: ts(13, 16, 0), Action: "Resolved", User: "Cleaning Crew", Details: "Stain removed."},
				{ID: "h4", Timestamp: ts(13, 14, 0), Action: incidents.ActionReported, User: "System", Details: "Automated log."},
			},
		},
	}
}

func SOPs() []library.SOP {
	return []library.SOP{
		{ID: "sop-1", Title: "Kitchen Opening & Closing Procedures", Category: Kitchen,
			Content: "Detailed checklist for daily kitchen setup and breakdown, including equipment checks, sanitation stations, and food storage protocols."},
		{ID: "sop-2", Title: "Guest Room Deep Cleaning Standard", Category: Housekeeping,
			Content: "Step-by-step guide for deep cleaning guest rooms, covering high-touch surfaces, UVC light usage, and linen handling."},
		{ID: "sop-3", Title: "Biohazard Spill Response Protocol", Category: "All Departments",
			Content: "Emergency procedures for safely containing and cleaning biohazardous materials, including required PPE and disposal methods."},
		{ID: "sop-4", Title: "Front Desk Hygiene & Safety", Category: FrontOffice,
			Content: "Guidelines for maintaining a clean and safe reception area, including sanitizing key cards, managing guest queues, and handling luggage."},
	}
}

func Collections() []library.Collection {
	return []library.Collection{
		{ID: "col-1", Title: "Kitchen Hygiene Pack", Description: "Complete set of checks and guides for kitchen safety and daily operations.",
			TemplateIDs: []string{"temp-1"}, SOPIDs: []string{"sop-1", "sop-3"}},
		{ID: "col-2", Title: "Housekeeping Excellence", Description: "Standard operating procedures and inspection templates for room turnover.",
			TemplateIDs: []string{"temp-2"}, SOPIDs: []string{"sop-2", "sop-3"}},
	}
}
