package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/models"
	"gorm.io/gorm"
)

// recentInteractions is how many interactions the contact list carries.
const recentInteractions = 5

type ContactService struct {
	DB    *gorm.DB
	Clock Clock
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{DB: db}
}

func openReminders(db *gorm.DB) *gorm.DB {
	return db.Where("completed = ?", false).Order("due_date ASC")
}

func interactionsNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC")
}

// List returns contacts newest first with their latest interactions, open
// reminders and linked applications.
func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.DB.WithContext(ctx).
		Preload("Interactions", interactionsNewestFirst).
		Preload("Reminders", openReminders).
		Preload("Applications").
		Order("created_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	for i := range contacts {
		if len(contacts[i].Interactions) > recentInteractions {
			contacts[i].Interactions = contacts[i].Interactions[:recentInteractions]
		}
	}
	return contacts, nil
}

// Get returns one contact with its full history and every reminder.
func (s *ContactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	return s.get(s.DB.WithContext(ctx), id)
}

func (s *ContactService) get(db *gorm.DB, id string) (*models.Contact, error) {
	var contact models.Contact
	err := db.
		Preload("Interactions", interactionsNewestFirst).
		Preload("Reminders", func(db *gorm.DB) *gorm.DB { return db.Order("due_date ASC") }).
		Preload("Applications").
		First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, lookup(err, "contact")
	}
	return &contact, nil
}

func (s *ContactService) Create(ctx context.Context, req *dtos.CreateContactRequest) (*models.Contact, error) {
	contact := req.ToModel()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apps, err := findApplications(tx, req.ApplicationIDs)
		if err != nil {
			return err
		}
		contact.Applications = apps
		return tx.Create(contact).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, id string, req *dtos.UpdateContactRequest) (*models.Contact, error) {
	var updated *models.Contact
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := s.get(tx, id)
		if err != nil {
			return err
		}
		if changes := req.Changes(); len(changes) > 0 {
			if err := tx.Model(&models.Contact{}).Where("id = ?", id).Updates(changes).Error; err != nil {
				return err
			}
		}
		if req.ApplicationIDs.Set {
			var ids []string
			if req.ApplicationIDs.Value != nil {
				ids = *req.ApplicationIDs.Value
			}
			apps, err := findApplications(tx, ids)
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx.Model(contact).Association("Applications"), apps); err != nil {
				return err
			}
		}
		updated, err = s.get(tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return updated, nil
}

// Delete removes the contact along with its interactions and reminders.
// Linked tasks are kept and unlinked.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contact models.Contact
		if err := tx.First(&contact, "id = ?", id).Error; err != nil {
			return lookup(err, "contact")
		}
		if err := unlinkTasks(tx, "contact_id", id); err != nil {
			return err
		}
		if err := tx.Where("contact_id = ?", id).Delete(&models.Interaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contact_id = ?", id).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&contact).Association("Applications").Clear(); err != nil {
			return err
		}
		return tx.Delete(&contact).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

func (s *ContactService) exists(ctx context.Context, id string) error {
	var contact models.Contact
	err := s.DB.WithContext(ctx).Select("id").First(&contact, "id = ?", id).Error
	return lookup(err, "contact")
}

func (s *ContactService) AddInteraction(ctx context.Context, contactID string, req *dtos.CreateInteractionRequest) (*models.Interaction, error) {
	if err := s.exists(ctx, contactID); err != nil {
		return nil, err
	}
	in := req.ToModel(contactID, s.Clock.Now())
	if err := s.DB.WithContext(ctx).Create(in).Error; err != nil {
		return nil, fmt.Errorf("failed to create interaction: %w", err)
	}
	return in, nil
}

func (s *ContactService) AddReminder(ctx context.Context, contactID string, req *dtos.CreateReminderRequest) (*models.Reminder, error) {
	if err := s.exists(ctx, contactID); err != nil {
		return nil, err
	}
	reminder := req.ToModel(contactID)
	if err := s.DB.WithContext(ctx).Create(reminder).Error; err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}

// SetReminderCompleted toggles a reminder that belongs to contactID.
func (s *ContactService) SetReminderCompleted(ctx context.Context, contactID, reminderID string, completed bool) (*models.Reminder, error) {
	db := s.DB.WithContext(ctx)

	var reminder models.Reminder
	err := db.First(&reminder, "id = ? AND contact_id = ?", reminderID, contactID).Error
	if err != nil {
		return nil, lookup(err, "reminder")
	}
	if err := db.Model(&reminder).Update("completed", completed).Error; err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return &reminder, nil
}
