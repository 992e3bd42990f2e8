package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/now"
	"github.com/justsurfingit/job-search-tracker/internal/agenda"
	"github.com/justsurfingit/job-search-tracker/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var mondayWeeks = &now.Config{WeekStartDay: time.Monday}

const (
	upcomingActionsLimit   = 10
	upcomingRemindersLimit = 10
	upcomingTasksLimit     = 15
	recentApplicationLimit = 5
)

type Summary struct {
	TotalApplications  int64 `json:"totalApplications"`
	SavedCount         int64 `json:"savedCount"`
	ThisWeek           int64 `json:"thisWeek"`
	ResponseRate       int   `json:"responseRate"`
	PendingInterviews  int64 `json:"pendingInterviews"`
	ActiveApplications int64 `json:"activeApplications"`
	Offers             int64 `json:"offers"`
	WatchlistCount     int64 `json:"watchlistCount"`
	PendingTasksCount  int64 `json:"pendingTasksCount"`
}

type UpcomingAction struct {
	ID             string     `json:"id"`
	Company        string     `json:"company"`
	CompanyWebsite *string    `json:"companyWebsite"`
	Position       string     `json:"position"`
	NextStep       *string    `json:"nextStep"`
	NextStepDate   *time.Time `json:"nextStepDate"`
}

type UpcomingReminder struct {
	ID        string                 `json:"id"`
	ContactID string                 `json:"contactId"`
	Title     string                 `json:"title"`
	DueDate   time.Time              `json:"dueDate"`
	Completed bool                   `json:"completed"`
	CreatedAt time.Time              `json:"createdAt"`
	Contact   *agenda.ContactSummary `json:"contact"`
}

type RecentApplication struct {
	ID              string                   `json:"id"`
	Company         string                   `json:"company"`
	CompanyWebsite  *string                  `json:"companyWebsite"`
	Position        string                   `json:"position"`
	Status          models.ApplicationStatus `json:"status"`
	ApplicationDate time.Time                `json:"applicationDate"`
}

type Dashboard struct {
	Stats              Summary             `json:"stats"`
	UpcomingActions    []UpcomingAction    `json:"upcomingActions"`
	UpcomingReminders  []UpcomingReminder  `json:"upcomingReminders"`
	UpcomingTasks      []agenda.Item       `json:"upcomingTasks"`
	RecentApplications []RecentApplication `json:"recentApplications"`
}

type StatsService struct {
	DB    *gorm.DB
	Tasks *TaskService
	Clock Clock
}

func NewStatsService(db *gorm.DB, tasks *TaskService) *StatsService {
	return &StatsService{DB: db, Tasks: tasks}
}

// ResponseRate is the share of submitted applications that got any answer,
// as a rounded percentage.
func ResponseRate(responded, submitted int64) int {
	if submitted == 0 {
		return 0
	}
	return int(math.Round(float64(responded) / float64(submitted) * 100))
}

// WeekBounds returns the Monday 00:00 starting the week of t and the Monday
// after it.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	start := mondayWeeks.With(t).BeginningOfWeek()
	return start, start.AddDate(0, 0, 7)
}

type statusCount struct {
	Status models.ApplicationStatus
	Count  int64
}

// Dashboard runs the independent queries concurrently; any failure fails
// the whole snapshot.
func (s *StatsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.Clock.Now()
	weekStart, weekEnd := WeekBounds(now)
	now, weekStart, weekEnd = now.UTC(), weekStart.UTC(), weekEnd.UTC()

	var (
		out       Dashboard
		byStatus  []statusCount
		reminders []models.Reminder
	)

	g, ctx := errgroup.WithContext(ctx)
	db := func() *gorm.DB { return s.DB.WithContext(ctx) }

	g.Go(func() error {
		return db().Model(&models.Application{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&byStatus).Error
	})
	g.Go(func() error {
		return db().Model(&models.Application{}).
			Where("status <> ?", models.StatusSaved).
			Where("application_date >= ? AND application_date < ?", weekStart, weekEnd).
			Count(&out.Stats.ThisWeek).Error
	})
	g.Go(func() error {
		return db().Model(&models.WatchlistCompany{}).Count(&out.Stats.WatchlistCount).Error
	})
	g.Go(func() error {
		return db().Model(&models.Task{}).
			Where("completed = ?", false).
			Count(&out.Stats.PendingTasksCount).Error
	})
	g.Go(func() error {
		return db().Model(&models.Application{}).
			Where("next_step_date >= ?", now).
			Where("status NOT IN ?", []models.ApplicationStatus{models.StatusRejected, models.StatusArchived}).
			Order("next_step_date ASC").
			Limit(upcomingActionsLimit).
			Find(&out.UpcomingActions).Error
	})
	g.Go(func() error {
		return db().Preload("Contact").
			Where("completed = ? AND due_date >= ?", false, now).
			Order("due_date ASC").
			Limit(upcomingRemindersLimit).
			Find(&reminders).Error
	})
	g.Go(func() error {
		items, err := s.Tasks.Upcoming(ctx, upcomingTasksLimit)
		out.UpcomingTasks = items
		return err
	})
	g.Go(func() error {
		return db().Model(&models.Application{}).
			Where("status <> ?", models.StatusSaved).
			Order("application_date DESC").
			Limit(recentApplicationLimit).
			Find(&out.RecentApplications).Error
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	var responded int64
	for _, sc := range byStatus {
		switch sc.Status {
		case models.StatusSaved:
			out.Stats.SavedCount = sc.Count
		case models.StatusInterview:
			out.Stats.PendingInterviews = sc.Count
		case models.StatusOffer:
			out.Stats.Offers = sc.Count
		}
		if sc.Status.Submitted() {
			out.Stats.TotalApplications += sc.Count
		}
		if sc.Status.Responded() {
			responded += sc.Count
		}
		if sc.Status.Active() {
			out.Stats.ActiveApplications += sc.Count
		}
	}
	out.Stats.ResponseRate = ResponseRate(responded, out.Stats.TotalApplications)

	out.UpcomingReminders = make([]UpcomingReminder, 0, len(reminders))
	for _, r := range reminders {
		out.UpcomingReminders = append(out.UpcomingReminders, UpcomingReminder{
			ID:        r.ID,
			ContactID: r.ContactID,
			Title:     r.Title,
			DueDate:   r.DueDate,
			Completed: r.Completed,
			CreatedAt: r.CreatedAt,
			Contact:   agenda.SummarizeContact(r.Contact),
		})
	}
	if out.UpcomingTasks == nil {
		out.UpcomingTasks = []agenda.Item{}
	}
	return &out, nil
}
