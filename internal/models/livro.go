package models

// Livro represents a book in the catalog.
type Livro struct {
	IDLivro       uint   `gorm:"column:id_livro;primaryKey" json:"id_livro"`
	Titulo        string `gorm:"size:254" json:"titulo"`
	Autor         string `gorm:"size:100" json:"autor"`
	AnoPublicacao int    `gorm:"column:ano_publicacao" json:"ano_publicacao"`
}

// TableName keeps the singular table name of the original schema.
func (Livro) TableName() string { return "livro" }
