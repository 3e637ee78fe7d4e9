package entity

import (
	"time"
)

type AssetClass string

const (
	AssetClassCrypto AssetClass = "crypto"
	AssetClassForex  AssetClass = "forex"
	AssetClassStock  AssetClass = "stock"
)

type AlarmType string

const (
	AlarmTypePrice     AlarmType = "price"
	AlarmTypeRSI       AlarmType = "rsi"
	AlarmTypeBollinger AlarmType = "bollinger"
)

type AlarmStatus string

const (
	AlarmStatusPending    AlarmStatus = "pending"
	AlarmStatusProcessing AlarmStatus = "processing"
	AlarmStatusTriggered  AlarmStatus = "triggered"
	AlarmStatusFailed     AlarmStatus = "failed"
)

// Alarm 用户注册的报警条件
// A row lives until it triggers (deleted after the notification goes out)
// or until its owner deletes it.
type Alarm struct {
	Id          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AssetClass  AssetClass     `gorm:"index;type:varchar(10)" json:"asset_class"`
	AssetSymbol string         `gorm:"index;type:varchar(50)" json:"asset_symbol"`
	AlarmType   AlarmType      `gorm:"index:idx_type_status;type:varchar(10)" json:"alarm_type"`
	Params      map[string]any `gorm:"serializer:json" json:"params"`
	Email       string         `gorm:"index:idx_email_status;type:varchar(255)" json:"email"`
	Status      AlarmStatus    `gorm:"index:idx_status_created;index:idx_email_status;index:idx_type_status;type:varchar(12)" json:"status"`
	LastError   string         `gorm:"type:varchar(500)" json:"last_error"`
	LastCheckAt *time.Time     `json:"last_check_at"`
	CreatedAt   time.Time      `gorm:"index:idx_status_created" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ParamFloat params 里取数值, JSON 反序列化后数字统一是 float64
func (a Alarm) ParamFloat(key string) (float64, bool) {
	switch v := a.Params[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func (a Alarm) ParamString(key string) (string, bool) {
	v, ok := a.Params[key].(string)
	return v, ok
}
