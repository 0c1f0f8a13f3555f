package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Lais666/API-Biblioteca-Pytest/internal/models"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LivroHandler serves the book CRUD endpoints.
type LivroHandler struct {
	DB *gorm.DB
}

func NewLivroHandler(db *gorm.DB) *LivroHandler {
	return &LivroHandler{DB: db}
}

type createLivroReq struct {
	IDLivro       uint   `json:"id_livro"`
	Titulo        string `json:"titulo" binding:"max=254"`
	Autor         string `json:"autor" binding:"max=100"`
	AnoPublicacao int    `json:"ano_publicacao"`
}

type updateLivroReq struct {
	Titulo        string `json:"titulo" binding:"max=254"`
	Autor         string `json:"autor" binding:"max=100"`
	AnoPublicacao int    `json:"ano_publicacao"`
}

// List returns the full catalog. Public, no pagination.
func (h *LivroHandler) List(c *gin.Context) {
	livros := make([]models.Livro, 0)
	if err := h.DB.Order("id_livro ASC").Find(&livros).Error; err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao consultar livros")
		return
	}
	util.MensagemCom(c, "Lista de Livros", gin.H{"livros": livros})
}

// Create inserts a new book. The client may supply id_livro; a collision with
// an existing row surfaces as a database error.
func (h *LivroHandler) Create(c *gin.Context) {
	var req createLivroReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Erro(c, http.StatusBadRequest, "Dados inválidos")
		return
	}

	livro := models.Livro{
		IDLivro:       req.IDLivro,
		Titulo:        req.Titulo,
		Autor:         req.Autor,
		AnoPublicacao: req.AnoPublicacao,
	}
	if err := h.DB.Create(&livro).Error; err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao cadastrar livro")
		return
	}

	util.MensagemCom(c, "Livro Cadastrado com Sucesso", gin.H{"livro": livro})
}

// Update replaces titulo, autor and ano_publicacao of an existing book.
func (h *LivroHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		util.Erro(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var req updateLivroReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Erro(c, http.StatusBadRequest, "Dados inválidos")
		return
	}

	var livro models.Livro
	if err := h.DB.First(&livro, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Erro(c, http.StatusNotFound, "Livro não encontrado")
		} else {
			util.Erro(c, http.StatusInternalServerError, "Erro ao consultar livro")
		}
		return
	}

	livro.Titulo = req.Titulo
	livro.Autor = req.Autor
	livro.AnoPublicacao = req.AnoPublicacao

	if err := h.DB.Save(&livro).Error; err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao atualizar livro")
		return
	}

	util.MensagemCom(c, "Livro atualizado com sucesso", gin.H{"livro": livro})
}

// Delete removes a book by id.
func (h *LivroHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		util.Erro(c, http.StatusBadRequest, "ID inválido")
		return
	}

	var livro models.Livro
	if err := h.DB.First(&livro, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Erro(c, http.StatusNotFound, "Livro não encontrado")
		} else {
			util.Erro(c, http.StatusInternalServerError, "Erro ao consultar livro")
		}
		return
	}

	if err := h.DB.Delete(&livro).Error; err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao excluir livro")
		return
	}

	util.Mensagem(c, http.StatusOK, "Livro excluído com sucesso")
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
