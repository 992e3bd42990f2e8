package dtos

import (
	"errors"
	"time"

	"github.com/justsurfingit/job-search-tracker/internal/models"
)

type CreateContactRequest struct {
	Name        string `json:"name" binding:"required"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	LinkedinURL string `json:"linkedinUrl"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`

	ApplicationIDs []string `json:"applicationIds"`
}

func (r *CreateContactRequest) ToModel() *models.Contact {
	return &models.Contact{
		Name:        r.Name,
		Company:     optString(r.Company),
		Position:    optString(r.Position),
		LinkedinURL: optString(r.LinkedinURL),
		Email:       optString(r.Email),
		Phone:       optString(r.Phone),
		Notes:       optString(r.Notes),
	}
}

type UpdateContactRequest struct {
	Name        Nullable[string] `json:"name"`
	Company     Nullable[string] `json:"company"`
	Position    Nullable[string] `json:"position"`
	LinkedinURL Nullable[string] `json:"linkedinUrl"`
	Email       Nullable[string] `json:"email"`
	Phone       Nullable[string] `json:"phone"`
	Notes       Nullable[string] `json:"notes"`

	ApplicationIDs Nullable[[]string] `json:"applicationIds"`
}

func (r *UpdateContactRequest) Validate() error {
	if r.Name.Set && (r.Name.Value == nil || *r.Name.Value == "") {
		return errors.New("name cannot be empty")
	}
	return nil
}

func (r *UpdateContactRequest) Changes() map[string]any {
	changes := map[string]any{}
	put(changes, "Name", r.Name)
	putOptString(changes, "Company", r.Company)
	putOptString(changes, "Position", r.Position)
	putOptString(changes, "LinkedinURL", r.LinkedinURL)
	putOptString(changes, "Email", r.Email)
	putOptString(changes, "Phone", r.Phone)
	putOptString(changes, "Notes", r.Notes)
	return changes
}

type CreateInteractionRequest struct {
	Content string `json:"content" binding:"required"`
	Date    *Date  `json:"date"`
}

func (r *CreateInteractionRequest) ToModel(contactID string, now time.Time) *models.Interaction {
	in := &models.Interaction{ContactID: contactID, Content: r.Content, Date: now}
	if t := r.Date.Ptr(); t != nil {
		in.Date = *t
	}
	return in
}

type CreateReminderRequest struct {
	Title   string `json:"title" binding:"required"`
	DueDate *Date  `json:"dueDate" binding:"required"`
}

func (r *CreateReminderRequest) Validate() error {
	if r.DueDate.Ptr() == nil {
		return errors.New("dueDate is required")
	}
	return nil
}

func (r *CreateReminderRequest) ToModel(contactID string) *models.Reminder {
	return &models.Reminder{ContactID: contactID, Title: r.Title, DueDate: *r.DueDate.Ptr()}
}

type UpdateReminderRequest struct {
	ReminderID string `json:"reminderId" binding:"required"`
	Completed  *bool  `json:"completed" binding:"required"`
}
