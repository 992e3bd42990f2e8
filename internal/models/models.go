package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Application struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Company        string  `gorm:"not null" json:"company"`
	CompanyDomain  *string `json:"companyDomain"`
	CompanyLogo    *string `json:"companyLogo"`
	CompanyWebsite *string `json:"companyWebsite"`
	Position       string  `gorm:"not null" json:"position"`

	ApplicationDate time.Time         `gorm:"not null;index" json:"applicationDate"`
	Status          ApplicationStatus `gorm:"size:20;not null;default:'SAVED';index" json:"status"`
	JobURL          *string           `json:"jobUrl"`
	SalaryMin       *int              `json:"salaryMin"`
	SalaryMax       *int              `json:"salaryMax"`
	SalaryExpected  *int              `json:"salaryExpected"`
	InterestLevel   int               `gorm:"not null;default:3" json:"interestLevel"`
	Source          ApplicationSource `gorm:"size:20;not null;default:'OTHER'" json:"source"`
	Notes           *string           `gorm:"type:text" json:"notes"`

	NextStep     *string    `json:"nextStep"`
	NextStepDate *time.Time `gorm:"index" json:"nextStepDate"`

	// Free-text document references kept from before uploads existed.
	CVVersion   *string `json:"cvVersion"`
	CoverLetter *string `json:"coverLetter"`

	CVURL               *string `json:"cvUrl"`
	CVFileName          *string `json:"cvFileName"`
	CoverLetterURL      *string `json:"coverLetterUrl"`
	CoverLetterFileName *string `json:"coverLetterFileName"`

	Contacts []Contact `gorm:"many2many:application_contacts;" json:"contacts,omitempty"`
}

func (a *Application) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// HasOpenNextStep reports whether the application carries a dated next step
// that still matters for its pipeline.
func (a *Application) HasOpenNextStep() bool {
	return a.NextStep != nil && a.NextStepDate != nil && !a.Status.Closed()
}

type Contact struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string  `gorm:"not null" json:"name"`
	Company     *string `json:"company"`
	Position    *string `json:"position"`
	LinkedinURL *string `json:"linkedinUrl"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Notes       *string `gorm:"type:text" json:"notes"`

	Interactions []Interaction `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"interactions,omitempty"`
	Reminders    []Reminder    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reminders,omitempty"`
	Applications []Application `gorm:"many2many:application_contacts;" json:"applications,omitempty"`
}

func (c *Contact) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Interaction struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ContactID string    `gorm:"size:36;not null;index" json:"contactId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Date      time.Time `gorm:"not null" json:"date"`
}

func (i *Interaction) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

type Reminder struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ContactID string    `gorm:"size:36;not null;index" json:"contactId"`
	Title     string    `gorm:"not null" json:"title"`
	DueDate   time.Time `gorm:"not null;index" json:"dueDate"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`

	Contact *Contact `json:"contact,omitempty"`
}

func (r *Reminder) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type WatchlistCompany struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name       string  `gorm:"not null" json:"name"`
	Domain     *string `json:"domain"`
	Logo       *string `json:"logo"`
	Notes      *string `gorm:"type:text" json:"notes"`
	CareersURL *string `json:"careersUrl"`
}

func (w *WatchlistCompany) BeforeCreate(*gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

type Task struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string     `gorm:"not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"index" json:"dueDate"`
	Completed   bool       `gorm:"not null;default:false;index" json:"completed"`
	Link        *string    `json:"link"`

	// At most one of these is set; see TaskLink.
	ApplicationID *string `gorm:"size:36;index" json:"applicationId"`
	WatchlistID   *string `gorm:"size:36;index" json:"watchlistId"`
	ContactID     *string `gorm:"size:36;index" json:"contactId"`

	Application *Application      `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"application,omitempty"`
	Watchlist   *WatchlistCompany `gorm:"foreignKey:WatchlistID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"watchlist,omitempty"`
	Contact     *Contact          `gorm:"foreignKey:ContactID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"contact,omitempty"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// All lists every model handled by AutoMigrate, parents first.
func All() []any {
	return []any{
		&Application{},
		&Contact{},
		&Interaction{},
		&Reminder{},
		&WatchlistCompany{},
		&Task{},
	}
}
