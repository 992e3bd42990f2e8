package dtos

import (
	"errors"
	"fmt"
	"time"

	"github.com/justsurfingit/job-search-tracker/internal/models"
)

type CreateApplicationRequest struct {
	Company        string `json:"company" binding:"required"`
	Position       string `json:"position" binding:"required"`
	CompanyDomain  string `json:"companyDomain"`
	CompanyLogo    string `json:"companyLogo"`
	CompanyWebsite string `json:"companyWebsite"`

	ApplicationDate *Date                    `json:"applicationDate"`
	Status          models.ApplicationStatus `json:"status"`
	Source          models.ApplicationSource `json:"source"`
	JobURL          string                   `json:"jobUrl"`
	SalaryMin       *int                     `json:"salaryMin"`
	SalaryMax       *int                     `json:"salaryMax"`
	SalaryExpected  *int                     `json:"salaryExpected"`
	InterestLevel   int                      `json:"interestLevel"`
	Notes           string                   `json:"notes"`
	NextStep        string                   `json:"nextStep"`
	NextStepDate    *Date                    `json:"nextStepDate"`

	CVVersion           string `json:"cvVersion"`
	CoverLetter         string `json:"coverLetter"`
	CVURL               string `json:"cvUrl"`
	CVFileName          string `json:"cvFileName"`
	CoverLetterURL      string `json:"coverLetterUrl"`
	CoverLetterFileName string `json:"coverLetterFileName"`

	ContactIDs []string `json:"contactIds"`
}

func (r *CreateApplicationRequest) Validate() error {
	if r.Status != "" && !r.Status.Valid() {
		return fmt.Errorf("invalid status %q", r.Status)
	}
	if r.Source != "" && !r.Source.Valid() {
		return fmt.Errorf("invalid source %q", r.Source)
	}
	return nil
}

// ToModel applies the creation defaults: SAVED, OTHER, interest 3 and an
// application date of now.
func (r *CreateApplicationRequest) ToModel(now time.Time) *models.Application {
	app := &models.Application{
		Company:         r.Company,
		CompanyDomain:   optString(r.CompanyDomain),
		CompanyLogo:     optString(r.CompanyLogo),
		CompanyWebsite:  optString(r.CompanyWebsite),
		Position:        r.Position,
		ApplicationDate: now,
		Status:          r.Status,
		Source:          r.Source,
		JobURL:          optString(r.JobURL),
		SalaryMin:       optInt(r.SalaryMin),
		SalaryMax:       optInt(r.SalaryMax),
		SalaryExpected:  optInt(r.SalaryExpected),
		InterestLevel:   r.InterestLevel,
		Notes:           optString(r.Notes),
		NextStep:        optString(r.NextStep),
		NextStepDate:    optTime(r.NextStepDate),

		CVVersion:           optString(r.CVVersion),
		CoverLetter:         optString(r.CoverLetter),
		CVURL:               optString(r.CVURL),
		CVFileName:          optString(r.CVFileName),
		CoverLetterURL:      optString(r.CoverLetterURL),
		CoverLetterFileName: optString(r.CoverLetterFileName),
	}
	if t := r.ApplicationDate.Ptr(); t != nil {
		app.ApplicationDate = *t
	}
	if app.Status == "" {
		app.Status = models.StatusSaved
	}
	if app.Source == "" {
		app.Source = models.SourceOther
	}
	if app.InterestLevel == 0 {
		app.InterestLevel = 3
	}
	return app
}

// UpdateApplicationRequest is a partial update: absent fields are left
// alone, null clears optional ones.
type UpdateApplicationRequest struct {
	Company        Nullable[string] `json:"company"`
	Position       Nullable[string] `json:"position"`
	CompanyDomain  Nullable[string] `json:"companyDomain"`
	CompanyLogo    Nullable[string] `json:"companyLogo"`
	CompanyWebsite Nullable[string] `json:"companyWebsite"`

	ApplicationDate Nullable[Date]                     `json:"applicationDate"`
	Status          Nullable[models.ApplicationStatus] `json:"status"`
	Source          Nullable[models.ApplicationSource] `json:"source"`
	JobURL          Nullable[string]                   `json:"jobUrl"`
	SalaryMin       Nullable[int]                      `json:"salaryMin"`
	SalaryMax       Nullable[int]                      `json:"salaryMax"`
	SalaryExpected  Nullable[int]                      `json:"salaryExpected"`
	InterestLevel   Nullable[int]                      `json:"interestLevel"`
	Notes           Nullable[string]                   `json:"notes"`
	NextStep        Nullable[string]                   `json:"nextStep"`
	NextStepDate    Nullable[Date]                     `json:"nextStepDate"`

	CVVersion           Nullable[string] `json:"cvVersion"`
	CoverLetter         Nullable[string] `json:"coverLetter"`
	CVURL               Nullable[string] `json:"cvUrl"`
	CVFileName          Nullable[string] `json:"cvFileName"`
	CoverLetterURL      Nullable[string] `json:"coverLetterUrl"`
	CoverLetterFileName Nullable[string] `json:"coverLetterFileName"`

	ContactIDs Nullable[[]string] `json:"contactIds"`
}

func (r *UpdateApplicationRequest) Validate() error {
	if r.Company.Set && (r.Company.Value == nil || *r.Company.Value == "") {
		return errors.New("company cannot be empty")
	}
	if r.Position.Set && (r.Position.Value == nil || *r.Position.Value == "") {
		return errors.New("position cannot be empty")
	}
	if r.Status.Set && (r.Status.Value == nil || !r.Status.Value.Valid()) {
		return fmt.Errorf("invalid status")
	}
	if r.Source.Set && (r.Source.Value == nil || !r.Source.Value.Valid()) {
		return fmt.Errorf("invalid source")
	}
	if r.InterestLevel.Null() {
		return errors.New("interestLevel cannot be null")
	}
	if r.ApplicationDate.Set && r.ApplicationDate.Value.Ptr() == nil {
		return errors.New("applicationDate cannot be empty")
	}
	return nil
}

// Changes maps the fields present in the request to column updates, keyed by
// model field name.
func (r *UpdateApplicationRequest) Changes() map[string]any {
	changes := map[string]any{}
	put(changes, "Company", r.Company)
	put(changes, "Position", r.Position)
	putOptString(changes, "CompanyDomain", r.CompanyDomain)
	putOptString(changes, "CompanyLogo", r.CompanyLogo)
	putOptString(changes, "CompanyWebsite", r.CompanyWebsite)

	putDate(changes, "ApplicationDate", r.ApplicationDate)
	put(changes, "Status", r.Status)
	put(changes, "Source", r.Source)
	putOptString(changes, "JobURL", r.JobURL)
	put(changes, "SalaryMin", r.SalaryMin)
	put(changes, "SalaryMax", r.SalaryMax)
	put(changes, "SalaryExpected", r.SalaryExpected)
	put(changes, "InterestLevel", r.InterestLevel)
	putOptString(changes, "Notes", r.Notes)
	putOptString(changes, "NextStep", r.NextStep)
	putDate(changes, "NextStepDate", r.NextStepDate)

	putOptString(changes, "CVVersion", r.CVVersion)
	putOptString(changes, "CoverLetter", r.CoverLetter)
	putOptString(changes, "CVURL", r.CVURL)
	putOptString(changes, "CVFileName", r.CVFileName)
	putOptString(changes, "CoverLetterURL", r.CoverLetterURL)
	putOptString(changes, "CoverLetterFileName", r.CoverLetterFileName)
	return changes
}
