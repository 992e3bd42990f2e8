// Package agenda merges persisted tasks with the next steps recorded on
// applications into one ordered to-do list.
package agenda

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/justsurfingit/job-search-tracker/internal/models"
)

type ItemType string

const (
	TypeTask     ItemType = "task"
	TypeNextStep ItemType = "nextStep"
)

// NextStepPrefix marks ids of items derived from an application.
const NextStepPrefix = "nextstep-"

// Item is either a persisted task or a next step derived from an application.
// Exactly one of the two pointers is set.
type Item struct {
	task      *models.Task
	source    *models.Application
	derivedAt time.Time
}

func FromTask(t *models.Task) Item {
	return Item{task: t}
}

// FromNextStep derives an item from app, stamped with the read time.
func FromNextStep(app *models.Application, now time.Time) Item {
	return Item{source: app, derivedAt: now}
}

func (it Item) Type() ItemType {
	if it.source != nil {
		return TypeNextStep
	}
	return TypeTask
}

func (it Item) Task() *models.Task { return it.task }

func (it Item) Source() *models.Application { return it.source }

func (it Item) ID() string {
	if it.source != nil {
		return NextStepPrefix + it.source.ID
	}
	return it.task.ID
}

func (it Item) Completed() bool {
	if it.source != nil {
		return false
	}
	return it.task.Completed
}

func (it Item) DueDate() *time.Time {
	if it.source != nil {
		return it.source.NextStepDate
	}
	return it.task.DueDate
}

func (it Item) CreatedAt() time.Time {
	if it.source != nil {
		return it.derivedAt
	}
	return it.task.CreatedAt
}

// IsNextStepID reports whether id names a derived item, returning the
// application id behind it.
func IsNextStepID(id string) (string, bool) {
	appID, ok := strings.CutPrefix(id, NextStepPrefix)
	return appID, ok && appID != ""
}

type ApplicationSummary struct {
	ID             string  `json:"id"`
	Company        string  `json:"company"`
	Position       string  `json:"position"`
	CompanyWebsite *string `json:"companyWebsite"`
}

type WatchlistSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CareersURL *string `json:"careersUrl"`
}

type ContactSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Company *string `json:"company"`
}

func SummarizeApplication(a *models.Application) *ApplicationSummary {
	if a == nil {
		return nil
	}
	return &ApplicationSummary{ID: a.ID, Company: a.Company, Position: a.Position, CompanyWebsite: a.CompanyWebsite}
}

func SummarizeWatchlist(w *models.WatchlistCompany) *WatchlistSummary {
	if w == nil {
		return nil
	}
	return &WatchlistSummary{ID: w.ID, Name: w.Name, CareersURL: w.CareersURL}
}

func SummarizeContact(c *models.Contact) *ContactSummary {
	if c == nil {
		return nil
	}
	return &ContactSummary{ID: c.ID, Name: c.Name, Company: c.Company}
}

// View is the flat wire form of an Item.
type View struct {
	ID          string     `json:"id"`
	Type        ItemType   `json:"type"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `json:"completed"`
	Link        *string    `json:"link"`

	ApplicationID *string `json:"applicationId"`
	WatchlistID   *string `json:"watchlistId"`
	ContactID     *string `json:"contactId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Application *ApplicationSummary `json:"application"`
	Watchlist   *WatchlistSummary   `json:"watchlist"`
	Contact     *ContactSummary     `json:"contact"`
}

func (it Item) View() View {
	if app := it.source; app != nil {
		appID := app.ID
		var title string
		if app.NextStep != nil {
			title = *app.NextStep
		}
		return View{
			ID:            it.ID(),
			Type:          TypeNextStep,
			Title:         title,
			DueDate:       app.NextStepDate,
			Link:          app.JobURL,
			ApplicationID: &appID,
			CreatedAt:     it.derivedAt,
			UpdatedAt:     it.derivedAt,
			Application:   SummarizeApplication(app),
		}
	}

	t := it.task
	return View{
		ID:            t.ID,
		Type:          TypeTask,
		Title:         t.Title,
		Description:   t.Description,
		DueDate:       t.DueDate,
		Completed:     t.Completed,
		Link:          t.Link,
		ApplicationID: t.ApplicationID,
		WatchlistID:   t.WatchlistID,
		ContactID:     t.ContactID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		Application:   SummarizeApplication(t.Application),
		Watchlist:     SummarizeWatchlist(t.Watchlist),
		Contact:       SummarizeContact(t.Contact),
	}
}

func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(it.View())
}
