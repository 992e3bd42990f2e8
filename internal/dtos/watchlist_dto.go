package dtos

import (
	"errors"

	"github.com/justsurfingit/job-search-tracker/internal/models"
)

type CreateWatchlistRequest struct {
	Name       string `json:"name" binding:"required"`
	Domain     string `json:"domain"`
	Logo       string `json:"logo"`
	Notes      string `json:"notes"`
	CareersURL string `json:"careersUrl"`
}

func (r *CreateWatchlistRequest) ToModel() *models.WatchlistCompany {
	return &models.WatchlistCompany{
		Name:       r.Name,
		Domain:     optString(r.Domain),
		Logo:       optString(r.Logo),
		Notes:      optString(r.Notes),
		CareersURL: optString(r.CareersURL),
	}
}

type UpdateWatchlistRequest struct {
	Name       Nullable[string] `json:"name"`
	Domain     Nullable[string] `json:"domain"`
	Logo       Nullable[string] `json:"logo"`
	Notes      Nullable[string] `json:"notes"`
	CareersURL Nullable[string] `json:"careersUrl"`
}

func (r *UpdateWatchlistRequest) Validate() error {
	if r.Name.Set && (r.Name.Value == nil || *r.Name.Value == "") {
		return errors.New("name cannot be empty")
	}
	return nil
}

func (r *UpdateWatchlistRequest) Changes() map[string]any {
	changes := map[string]any{}
	put(changes, "Name", r.Name)
	putOptString(changes, "Domain", r.Domain)
	putOptString(changes, "Logo", r.Logo)
	putOptString(changes, "Notes", r.Notes)
	putOptString(changes, "CareersURL", r.CareersURL)
	return changes
}
