package models

import "time"

// AuditLog records mutating operations performed by authenticated users.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	IDUsuario uint   `gorm:"column:id_usuario;index"`
	Method    string `gorm:"size:16"`
	Path      string `gorm:"size:255"`
	Action    string `gorm:"size:2048"` // method + path + bounded request body
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}

func (AuditLog) TableName() string { return "audit_log" }
