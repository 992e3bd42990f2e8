package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-search-tracker/internal/agenda"
	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/models"
	"gorm.io/gorm"
)

type TaskFilter struct {
	ApplicationID string
	WatchlistID   string
	ContactID     string
	Completed     *bool
	// IncludeNextSteps merges application next steps into an unfiltered list.
	IncludeNextSteps bool
}

func (f TaskFilter) entityFiltered() bool {
	return f.ApplicationID != "" || f.WatchlistID != "" || f.ContactID != ""
}

type TaskService struct {
	DB    *gorm.DB
	Clock Clock
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db}
}

func withSummaries(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Application").
		Preload("Watchlist").
		Preload("Contact")
}

// List returns the to-do list for f in agenda order.
func (s *TaskService) List(ctx context.Context, f TaskFilter) ([]agenda.Item, error) {
	db := s.DB.WithContext(ctx)

	q := withSummaries(db.Model(&models.Task{}))
	if f.ApplicationID != "" {
		q = q.Where("application_id = ?", f.ApplicationID)
	}
	if f.WatchlistID != "" {
		q = q.Where("watchlist_id = ?", f.WatchlistID)
	}
	if f.ContactID != "" {
		q = q.Where("contact_id = ?", f.ContactID)
	}
	if f.Completed != nil {
		q = q.Where("completed = ?", *f.Completed)
	}

	var tasks []models.Task
	if err := q.Order("completed ASC").Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	items := agenda.Tasks(tasks)

	if f.IncludeNextSteps && !f.entityFiltered() {
		var apps []models.Application
		err := db.
			Where("next_step IS NOT NULL AND next_step_date IS NOT NULL").
			Where("status NOT IN ?", []models.ApplicationStatus{models.StatusRejected, models.StatusArchived}).
			Find(&apps).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load next steps: %w", err)
		}
		items = append(items, agenda.NextSteps(apps, s.Clock.Now())...)
	}

	agenda.Sort(items)
	return items, nil
}

// Upcoming returns up to limit open tasks, dated ones first by due date,
// then newest first.
func (s *TaskService) Upcoming(ctx context.Context, limit int) ([]agenda.Item, error) {
	var tasks []models.Task
	err := withSummaries(s.DB.WithContext(ctx)).
		Where("completed = ?", false).
		Order("due_date IS NULL").
		Order("due_date ASC").
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming tasks: %w", err)
	}
	return agenda.Tasks(tasks), nil
}

// Get looks up a persisted task. Next-step ids never match.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	return s.get(s.DB.WithContext(ctx), id)
}

func (s *TaskService) get(db *gorm.DB, id string) (*models.Task, error) {
	if _, ok := agenda.IsNextStepID(id); ok {
		return nil, fmt.Errorf("task: %w", ErrNotFound)
	}
	var task models.Task
	if err := withSummaries(db).First(&task, "id = ?", id).Error; err != nil {
		return nil, lookup(err, "task")
	}
	return &task, nil
}

func (s *TaskService) Create(ctx context.Context, req *dtos.CreateTaskRequest) (*models.Task, error) {
	task, err := req.ToModel()
	if err != nil {
		return nil, ValidationError(err.Error())
	}

	var created *models.Task
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkTarget(tx, task.Target()); err != nil {
			return err
		}
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		created, err = s.get(tx, task.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, id string, req *dtos.UpdateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, ValidationError(err.Error())
	}

	var updated *models.Task
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.get(tx, id); err != nil {
			return err
		}

		changes := req.Changes()
		if err := checkTarget(tx, targetOf(changes)); err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(&models.Task{}).Where("id = ?", id).Updates(changes).Error; err != nil {
				return err
			}
		}

		var err error
		updated, err = s.get(tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := s.get(tx, id)
		if err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, "id = ?", task.ID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// targetOf reads the link named by an update's foreign key columns.
func targetOf(changes map[string]any) models.TaskLink {
	for col, kind := range map[string]models.LinkKind{
		"application_id": models.LinkApplication,
		"watchlist_id":   models.LinkWatchlist,
		"contact_id":     models.LinkContact,
	} {
		if id, ok := changes[col].(string); ok && id != "" {
			return models.TaskLink{Kind: kind, ID: id}
		}
	}
	return models.TaskLink{}
}

// checkTarget rejects links to rows that do not exist.
func checkTarget(tx *gorm.DB, l models.TaskLink) error {
	var model any
	switch l.Kind {
	case models.LinkApplication:
		model = &models.Application{}
	case models.LinkWatchlist:
		model = &models.WatchlistCompany{}
	case models.LinkContact:
		model = &models.Contact{}
	default:
		return nil
	}

	var count int64
	if err := tx.Model(model).Where("id = ?", l.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ValidationError(fmt.Sprintf("%s %s does not exist", l.Kind, l.ID))
	}
	return nil
}
