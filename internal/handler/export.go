package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Lais666/API-Biblioteca-Pytest/internal/models"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler exports the catalog as CSV or XLSX attachments.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"ID", "Título", "Autor", "Ano de Publicação"}

// ExportCSV streams the full catalog as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	var livros []models.Livro
	if err := h.DB.Order("id_livro ASC").Find(&livros).Error; err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao consultar livros")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"livros_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so Excel renders accents correctly
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, l := range livros {
		writer.Write([]string{
			strconv.FormatUint(uint64(l.IDLivro), 10),
			l.Titulo,
			l.Autor,
			strconv.Itoa(l.AnoPublicacao),
		})
	}
}

// ExportXLSX writes the full catalog as an XLSX workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	var livros []models.Livro
	if err := h.DB.Order("id_livro ASC").Find(&livros).Error; err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao consultar livros")
		return
	}

	f := excelize.NewFile()
	sheetName := "Livros"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao criar planilha")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, l := range livros {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), l.IDLivro)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), l.Titulo)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), l.Autor)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), l.AnoPublicacao)
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "C", 25)
	f.SetColWidth(sheetName, "D", "D", 18)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"livros_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao exportar")
	}
}
