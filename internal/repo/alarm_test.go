package repo

import (
	"context"
	"testing"
	"time"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func initTestRepo(t *testing.T) AlarmRepo {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, InitTables(db))
	t.Cleanup(func() {
		db.WithContext(context.Background()).Exec("DELETE FROM alarms")
	})
	return NewAlarmRepo(db)
}

func testAlarm() entity.Alarm {
	return entity.Alarm{
		AssetClass:  entity.AssetClassCrypto,
		AssetSymbol: "BTCUSDT",
		AlarmType:   entity.AlarmTypePrice,
		Params:      map[string]any{"target_price": 50000.0},
		Email:       "user@example.com",
		Status:      entity.AlarmStatusPending,
	}
}

func TestAlarmRepo_CreateAndFind(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	id, err := r.Create(ctx, testAlarm())
	require.NoError(t, err)
	require.NotZero(t, id)

	alarm, err := r.FindById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", alarm.AssetSymbol)
	assert.Equal(t, entity.AlarmStatusPending, alarm.Status)
	assert.EqualValues(t, 50000.0, alarm.Params["target_price"])
}

func TestAlarmRepo_FindByStatusOrdered(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	first, err := r.Create(ctx, testAlarm())
	require.NoError(t, err)
	second, err := r.Create(ctx, testAlarm())
	require.NoError(t, err)
	require.NoError(t, r.UpdateStatus(ctx, second, entity.AlarmStatusFailed, "boom"))

	pending, err := r.FindByStatus(ctx, entity.AlarmStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first, pending[0].Id)
}

func TestAlarmRepo_ClaimProcessingIsExclusive(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	id, err := r.Create(ctx, testAlarm())
	require.NoError(t, err)

	won, err := r.ClaimProcessing(ctx, id, entity.AlarmStatusPending)
	require.NoError(t, err)
	assert.True(t, won)

	// second claim sees the row already in processing
	won, err = r.ClaimProcessing(ctx, id, entity.AlarmStatusPending)
	require.NoError(t, err)
	assert.False(t, won)
}

func TestAlarmRepo_UpdateStatusStampsLastCheck(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	id, err := r.Create(ctx, testAlarm())
	require.NoError(t, err)

	require.NoError(t, r.UpdateStatus(ctx, id, entity.AlarmStatusFailed, "price unavailable"))

	alarm, err := r.FindById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.AlarmStatusFailed, alarm.Status)
	assert.Equal(t, "price unavailable", alarm.LastError)
	require.NotNil(t, alarm.LastCheckAt)
	assert.WithinDuration(t, time.Now(), *alarm.LastCheckAt, time.Minute)

	assert.ErrorIs(t, r.UpdateStatus(ctx, 99999, entity.AlarmStatusFailed, ""), ErrAlarmNotFound)
}

func TestAlarmRepo_DeleteIsFinal(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	id, err := r.Create(ctx, testAlarm())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, id))

	// a deleted alarm can never be found or re-notified
	_, err = r.FindById(ctx, id)
	assert.ErrorIs(t, err, ErrAlarmNotFound)
	assert.ErrorIs(t, r.Delete(ctx, id), ErrAlarmNotFound)

	won, err := r.ClaimProcessing(ctx, id, entity.AlarmStatusPending)
	require.NoError(t, err)
	assert.False(t, won)
}

func TestAlarmRepo_CleanupOld(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	oldFailed := testAlarm()
	oldFailed.Status = entity.AlarmStatusFailed
	oldFailed.CreatedAt = time.Now().Add(-60 * 24 * time.Hour)
	failedId, err := r.Create(ctx, oldFailed)
	require.NoError(t, err)

	freshId, err := r.Create(ctx, testAlarm())
	require.NoError(t, err)

	removed, err := r.CleanupOld(ctx, time.Now().Add(-30*24*time.Hour),
		[]entity.AlarmStatus{entity.AlarmStatusTriggered, entity.AlarmStatusFailed})
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, err = r.FindById(ctx, failedId)
	assert.ErrorIs(t, err, ErrAlarmNotFound)
	_, err = r.FindById(ctx, freshId)
	assert.NoError(t, err)
}
