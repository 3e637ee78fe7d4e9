package repo

import (
	"context"
	"errors"
	"time"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"gorm.io/gorm"
)

var ErrAlarmNotFound = errors.New("alarm not found")

type AlarmRepo interface {
	Create(ctx context.Context, alarm entity.Alarm) (int64, error)
	FindById(ctx context.Context, id int64) (entity.Alarm, error)
	FindByStatus(ctx context.Context, status entity.AlarmStatus) ([]entity.Alarm, error)
	FindByEmail(ctx context.Context, email string) ([]entity.Alarm, error)
	FindAll(ctx context.Context) ([]entity.Alarm, error)
	// ClaimProcessing moves the alarm from the given status to processing.
	// Returns false when another worker already claimed the row.
	ClaimProcessing(ctx context.Context, id int64, from entity.AlarmStatus) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status entity.AlarmStatus, lastErr string) error
	Update(ctx context.Context, alarm entity.Alarm) error
	Delete(ctx context.Context, id int64) error
	CleanupOld(ctx context.Context, before time.Time, statuses []entity.AlarmStatus) (int64, error)
	Ping(ctx context.Context) error
}

type alarmRepo struct {
	db *gorm.DB
}

func NewAlarmRepo(db *gorm.DB) AlarmRepo {
	return &alarmRepo{
		db: db,
	}
}

func (r *alarmRepo) Create(ctx context.Context, alarm entity.Alarm) (int64, error) {
	if alarm.Status == "" {
		alarm.Status = entity.AlarmStatusPending
	}
	err := r.db.WithContext(ctx).Create(&alarm).Error
	if err != nil {
		return 0, err
	}
	return alarm.Id, nil
}

func (r *alarmRepo) FindById(ctx context.Context, id int64) (entity.Alarm, error) {
	var alarm entity.Alarm
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&alarm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Alarm{}, ErrAlarmNotFound
		}
		return entity.Alarm{}, err
	}
	return alarm, nil
}

func (r *alarmRepo) FindByStatus(ctx context.Context, status entity.AlarmStatus) ([]entity.Alarm, error) {
	var alarms []entity.Alarm
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at").Find(&alarms).Error
	if err != nil {
		return nil, err
	}
	return alarms, nil
}

func (r *alarmRepo) FindByEmail(ctx context.Context, email string) ([]entity.Alarm, error) {
	var alarms []entity.Alarm
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at DESC").Find(&alarms).Error
	if err != nil {
		return nil, err
	}
	return alarms, nil
}

func (r *alarmRepo) FindAll(ctx context.Context) ([]entity.Alarm, error) {
	var alarms []entity.Alarm
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&alarms).Error
	if err != nil {
		return nil, err
	}
	return alarms, nil
}

func (r *alarmRepo) ClaimProcessing(ctx context.Context, id int64, from entity.AlarmStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Alarm{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", entity.AlarmStatusProcessing)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *alarmRepo) UpdateStatus(ctx context.Context, id int64, status entity.AlarmStatus, lastErr string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&entity.Alarm{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":        status,
			"last_error":    lastErr,
			"last_check_at": &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlarmNotFound
	}
	return nil
}

// Update persists the operator-mutable fields. A map is used so that
// clearing last_error to the empty string actually writes.
func (r *alarmRepo) Update(ctx context.Context, alarm entity.Alarm) error {
	res := r.db.WithContext(ctx).Model(&entity.Alarm{}).Where("id = ?", alarm.Id).
		Updates(map[string]any{
			"status":     alarm.Status,
			"last_error": alarm.LastError,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlarmNotFound
	}
	return nil
}

func (r *alarmRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Alarm{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlarmNotFound
	}
	return nil
}

func (r *alarmRepo) CleanupOld(ctx context.Context, before time.Time, statuses []entity.AlarmStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ? AND status IN ?", before, statuses).
		Delete(&entity.Alarm{})
	return res.RowsAffected, res.Error
}

func (r *alarmRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.WithContext(ctx).DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
