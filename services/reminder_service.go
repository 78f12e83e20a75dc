package services

import (
	"errors"
	"fmt"
	"time"

	"backend/config"
	"backend/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidReminder = errors.New("invalid reminder")

// standard 5-field cron expressions plus @hourly/@daily style descriptors
var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type ReminderInput struct {
	Type     string `json:"type"`
	CronExpr string `json:"cron_expr" binding:"required"`
	Message  string `json:"message"`
	Active   *bool  `json:"active"`
}

// ValidateCronExpr parses the expression and returns its next fire time.
func ValidateCronExpr(expr string, after time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad cron expression %q: %v", ErrInvalidReminder, expr, err)
	}
	return sched.Next(after), nil
}

func CreateReminder(userID uint, in ReminderInput) (*models.Reminder, error) {
	next, err := ValidateCronExpr(in.CronExpr, time.Now())
	if err != nil {
		return nil, err
	}

	typ := in.Type
	if typ == "" {
		typ = "custom"
	}

	r := models.Reminder{
		UserID:    userID,
		Type:      typ,
		CronExpr:  in.CronExpr,
		Message:   in.Message,
		Active:    true,
		NextRunAt: next,
	}
	if err := config.DB.Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func ListReminders(userID uint, includeInactive bool) ([]models.Reminder, error) {
	q := config.DB.Where("user_id = ?", userID)
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	var out []models.Reminder
	err := q.Order("next_run_at ASC").Find(&out).Error
	return out, err
}

func UpdateReminder(userID, id uint, in ReminderInput) (*models.Reminder, error) {
	var r models.Reminder
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&r).Error; err != nil {
		return nil, err
	}

	if in.CronExpr != "" {
		next, err := ValidateCronExpr(in.CronExpr, time.Now())
		if err != nil {
			return nil, err
		}
		r.CronExpr = in.CronExpr
		r.NextRunAt = next
	}
	if in.Type != "" {
		r.Type = in.Type
	}
	if in.Message != "" {
		r.Message = in.Message
	}
	if in.Active != nil {
		r.Active = *in.Active
		if r.Active {
			next, err := ValidateCronExpr(r.CronExpr, time.Now())
			if err != nil {
				return nil, err
			}
			r.NextRunAt = next
		}
	}

	if err := config.DB.Save(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// DeactivateReminder soft-deletes by flipping Active.
func DeactivateReminder(userID, id uint) error {
	res := config.DB.Model(&models.Reminder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReminderScheduler polls for due reminders and dispatches them through the
// alert bus. One instance runs per process; dispatching is idempotent at the
// row level because NextRunAt advances inside the same transaction that
// selects the due reminder.
type ReminderScheduler struct {
	db     *gorm.DB
	log    *zap.Logger
	tick   time.Duration
	stopCh chan struct{}
}

func NewReminderScheduler(db *gorm.DB, log *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		db:     db,
		log:    log,
		tick:   time.Minute,
		stopCh: make(chan struct{}),
	}
}

func (s *ReminderScheduler) Start() {
	go s.run()
}

func (s *ReminderScheduler) Stop() {
	close(s.stopCh)
}

func (s *ReminderScheduler) run() {
	t := time.NewTicker(s.tick)
	defer t.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case now := <-t.C:
			if err := s.FireDue(now); err != nil {
				s.log.Error("reminder sweep failed", zap.Error(err))
			}
		}
	}
}

// FireDue dispatches every active reminder whose NextRunAt has passed and
// advances its schedule. Split out from run() so tests can drive it with a
// fixed clock.
func (s *ReminderScheduler) FireDue(now time.Time) error {
	var due []models.Reminder
	if err := s.db.
		Where("active = ? AND next_run_at <= ?", true, now).
		Find(&due).Error; err != nil {
		return err
	}

	for _, r := range due {
		next, err := ValidateCronExpr(r.CronExpr, now)
		if err != nil {
			// expression went bad after an edit; disable rather than spin
			s.log.Warn("disabling reminder with invalid cron expression",
				zap.Uint("reminder_id", r.ID), zap.String("expr", r.CronExpr))
			_ = s.db.Model(&models.Reminder{}).Where("id = ?", r.ID).
				Update("active", false).Error
			continue
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Reminder{}).
				Where("id = ? AND next_run_at = ?", r.ID, r.NextRunAt).
				Update("next_run_at", next)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// another instance already fired this occurrence
				return nil
			}
			EmitReminderAlert(tx, r)
			return nil
		})
		if err != nil {
			s.log.Error("reminder dispatch failed",
				zap.Uint("reminder_id", r.ID), zap.Error(err))
			continue
		}
		s.log.Info("reminder fired",
			zap.Uint("reminder_id", r.ID),
			zap.Uint("user_id", r.UserID),
			zap.Time("next_run_at", next))
	}
	return nil
}
