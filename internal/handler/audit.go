package handler

import (
	"net/http"
	"strconv"

	"github.com/Lais666/API-Biblioteca-Pytest/internal/models"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler lists the audit trail of mutating operations.
type AuditHandler struct {
	DB *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{DB: db}
}

type auditResp struct {
	ID        uint   `json:"id"`
	IDUsuario uint   `json:"id_usuario"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Action    string `json:"action"`
	IP        string `json:"ip"`
	CreatedAt string `json:"created_at"`
}

// List returns audit entries, most recent first, paginated.
func (h *AuditHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	var total int64
	if err := h.DB.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao consultar auditoria")
		return
	}

	var entries []models.AuditLog
	if err := h.DB.
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&entries).Error; err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao consultar auditoria")
		return
	}

	items := make([]auditResp, 0, len(entries))
	for _, e := range entries {
		items = append(items, auditResp{
			ID:        e.ID,
			IDUsuario: e.IDUsuario,
			Method:    e.Method,
			Path:      e.Path,
			Action:    e.Action,
			IP:        e.IP,
			CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	util.MensagemCom(c, "Registros de auditoria", gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
