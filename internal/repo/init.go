package repo

import (
	"github.com/Ahmet872/Alarm-System/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Alarm{})
}
