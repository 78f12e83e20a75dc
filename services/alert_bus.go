package services

import (
	"fmt"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_alert = alertDeps{db: db, rt: rt, ps: ps}
}

// EmitAlert persists an alert and fans it out over the websocket hub and
// push. Safe to call from anywhere, including before InitAlertDeps.
func EmitAlert(userID uint, typ, message string) {
	if _alert.db == nil {
		return
	}
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.BroadcastAlert(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if _alert.ps != nil {
		_alert.ps.PushToUser(userID, "New Alert", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
}

// EmitReminderAlert delivers a fired reminder on every channel the user has
// opted into. The alert row is written through tx so it commits atomically
// with the schedule advance; websocket/push/email are fire-and-forget.
func EmitReminderAlert(tx *gorm.DB, r models.Reminder) {
	msg := r.Message
	if msg == "" {
		msg = fmt.Sprintf("Time to log your %s", r.Type)
	}

	a := &models.Alert{UserID: r.UserID, Type: "reminder", Message: msg, CreatedAt: time.Now()}
	_ = tx.Create(a).Error

	var pref models.UserPreference
	prefErr := tx.Where("user_id = ?", r.UserID).First(&pref).Error

	if _alert.rt != nil {
		_alert.rt.BroadcastAlert(r.UserID, map[string]any{
			"kind":     "reminder.fired",
			"reminder": r.ID,
			"message":  msg,
		})
	}

	// push only when explicitly opted in
	if _alert.ps != nil && prefErr == nil && pref.PushReminders {
		_alert.ps.PushToUser(r.UserID, "Reminder", msg, map[string]string{
			"type": "reminder", "reminderId": fmt.Sprintf("%d", r.ID),
		})
	}

	if prefErr != nil || pref.EmailReminders {
		var user models.User
		if err := tx.First(&user, r.UserID).Error; err == nil {
			_ = utils.SendReminderEmail(user.Email, msg)
		}
	}
}
