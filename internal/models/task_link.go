package models

type LinkKind string

const (
	LinkNone        LinkKind = ""
	LinkApplication LinkKind = "application"
	LinkWatchlist   LinkKind = "watchlist"
	LinkContact     LinkKind = "contact"
)

// TaskLink is the single entity a task may be attached to. The zero value
// means the task stands alone.
type TaskLink struct {
	Kind LinkKind
	ID   string
}

func LinkToApplication(id string) TaskLink { return TaskLink{Kind: LinkApplication, ID: id} }
func LinkToWatchlist(id string) TaskLink   { return TaskLink{Kind: LinkWatchlist, ID: id} }
func LinkToContact(id string) TaskLink     { return TaskLink{Kind: LinkContact, ID: id} }

// Target reads the association back from the stored foreign keys. Rows written
// before links were exclusive may carry several keys; the first one wins in
// application, watchlist, contact order.
func (t *Task) Target() TaskLink {
	switch {
	case t.ApplicationID != nil:
		return LinkToApplication(*t.ApplicationID)
	case t.WatchlistID != nil:
		return LinkToWatchlist(*t.WatchlistID)
	case t.ContactID != nil:
		return LinkToContact(*t.ContactID)
	}
	return TaskLink{}
}

// SetTarget stores l, clearing the other two foreign keys.
func (t *Task) SetTarget(l TaskLink) {
	t.ApplicationID, t.WatchlistID, t.ContactID = nil, nil, nil
	if l.ID == "" {
		return
	}
	id := l.ID
	switch l.Kind {
	case LinkApplication:
		t.ApplicationID = &id
	case LinkWatchlist:
		t.WatchlistID = &id
	case LinkContact:
		t.ContactID = &id
	}
}

// Columns returns the foreign key values for l, suitable for a gorm Updates map.
func (l TaskLink) Columns() map[string]any {
	cols := map[string]any{
		"application_id": nil,
		"watchlist_id":   nil,
		"contact_id":     nil,
	}
	switch l.Kind {
	case LinkApplication:
		cols["application_id"] = l.ID
	case LinkWatchlist:
		cols["watchlist_id"] = l.ID
	case LinkContact:
		cols["contact_id"] = l.ID
	}
	return cols
}
