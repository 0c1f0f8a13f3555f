package models

// Usuario represents an application user identified by email.
// Senha holds a bcrypt hash when written through the application; rows seeded
// directly into the table may still carry a plain value, which the login
// handler accepts once and upgrades.
type Usuario struct {
	IDUsuario uint   `gorm:"column:id_usuario;primaryKey" json:"id_usuario"`
	Email     string `gorm:"size:254;index" json:"email"`
	Senha     string `gorm:"size:100" json:"-"`
}

func (Usuario) TableName() string { return "usuario" }
