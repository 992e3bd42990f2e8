package dtos

import (
	"errors"

	"github.com/justsurfingit/job-search-tracker/internal/models"
)

var ErrMultipleLinks = errors.New("a task can be linked to only one of application, watchlist company or contact")

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     *Date  `json:"dueDate"`
	Completed   bool   `json:"completed"`
	Link        string `json:"link"`

	ApplicationID string `json:"applicationId"`
	WatchlistID   string `json:"watchlistId"`
	ContactID     string `json:"contactId"`
}

// Target resolves the three optional ids into a single link.
func (r *CreateTaskRequest) Target() (models.TaskLink, error) {
	var links []models.TaskLink
	if r.ApplicationID != "" {
		links = append(links, models.LinkToApplication(r.ApplicationID))
	}
	if r.WatchlistID != "" {
		links = append(links, models.LinkToWatchlist(r.WatchlistID))
	}
	if r.ContactID != "" {
		links = append(links, models.LinkToContact(r.ContactID))
	}
	switch len(links) {
	case 0:
		return models.TaskLink{}, nil
	case 1:
		return links[0], nil
	}
	return models.TaskLink{}, ErrMultipleLinks
}

func (r *CreateTaskRequest) ToModel() (*models.Task, error) {
	target, err := r.Target()
	if err != nil {
		return nil, err
	}
	task := &models.Task{
		Title:       r.Title,
		Description: optString(r.Description),
		DueDate:     optTime(r.DueDate),
		Completed:   r.Completed,
		Link:        optString(r.Link),
	}
	task.SetTarget(target)
	return task, nil
}

type UpdateTaskRequest struct {
	Title       Nullable[string] `json:"title"`
	Description Nullable[string] `json:"description"`
	DueDate     Nullable[Date]   `json:"dueDate"`
	Completed   Nullable[bool]   `json:"completed"`
	Link        Nullable[string] `json:"link"`

	ApplicationID Nullable[string] `json:"applicationId"`
	WatchlistID   Nullable[string] `json:"watchlistId"`
	ContactID     Nullable[string] `json:"contactId"`
}

func (r *UpdateTaskRequest) Validate() error {
	if r.Title.Set && (r.Title.Value == nil || *r.Title.Value == "") {
		return errors.New("title cannot be empty")
	}
	if r.Completed.Null() {
		return errors.New("completed cannot be null")
	}
	_, err := r.linkChanges()
	return err
}

// linkChanges returns the foreign key columns to write. Naming a target
// replaces the current link; sending null for an id only clears that id.
func (r *UpdateTaskRequest) linkChanges() (map[string]any, error) {
	fields := []struct {
		n    Nullable[string]
		link func(string) models.TaskLink
		col  string
	}{
		{r.ApplicationID, models.LinkToApplication, "application_id"},
		{r.WatchlistID, models.LinkToWatchlist, "watchlist_id"},
		{r.ContactID, models.LinkToContact, "contact_id"},
	}

	var target *models.TaskLink
	cleared := map[string]any{}
	for _, f := range fields {
		if !f.n.Set {
			continue
		}
		if f.n.Value == nil || *f.n.Value == "" {
			cleared[f.col] = nil
			continue
		}
		if target != nil {
			return nil, ErrMultipleLinks
		}
		l := f.link(*f.n.Value)
		target = &l
	}
	if target != nil {
		return target.Columns(), nil
	}
	return cleared, nil
}

func (r *UpdateTaskRequest) Changes() map[string]any {
	changes := map[string]any{}
	put(changes, "Title", r.Title)
	putOptString(changes, "Description", r.Description)
	putDate(changes, "DueDate", r.DueDate)
	put(changes, "Completed", r.Completed)
	putOptString(changes, "Link", r.Link)

	links, err := r.linkChanges()
	if err == nil {
		for col, v := range links {
			changes[col] = v
		}
	}
	return changes
}
