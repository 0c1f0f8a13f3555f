package router

import (
	"github.com/Lais666/API-Biblioteca-Pytest/internal/config"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/handler"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/middleware"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	sessions := session.NewStore(db, cfg.Session.Secret, cfg.Session.ExpireHours)

	livroHandler := handler.NewLivroHandler(db)
	authHandler := handler.NewAuthHandler(db, sessions)

	// public routes
	r.GET("/livro", livroHandler.List)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// mutating book operations require a session
	protected := r.Group("")
	protected.Use(
		middleware.AuthMiddleware(sessions, db),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/livro", livroHandler.Create)
	protected.PUT("/livro/:id", livroHandler.Update)
	protected.DELETE("/livro/:id", livroHandler.Delete)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/livro/export/csv", exportHandler.ExportCSV)
	protected.GET("/livro/export/xlsx", exportHandler.ExportXLSX)

	auditHandler := handler.NewAuditHandler(db)
	protected.GET("/auditoria", auditHandler.List)

	return r
}
