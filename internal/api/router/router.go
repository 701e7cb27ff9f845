package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/krishpatel1827/EduSync/config"
	"github.com/krishpatel1827/EduSync/internal/api/handler"
	"github.com/krishpatel1827/EduSync/internal/api/middleware"
	"github.com/krishpatel1827/EduSync/internal/api/validation"
	"github.com/krishpatel1827/EduSync/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if err := validation.Register(); err != nil {
		logger.Fatal("注册自定义校验规则失败", zap.Error(err))
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 公开只读接口
		timetables := v1.Group("/timetables")
		{
			timetables.GET("", h.Timetable.ListTimetables)
			timetables.GET("/active", h.Timetable.GetActiveTimetable)
			timetables.GET("/active/grid", h.Timetable.GetActiveGrid)
			timetables.GET("/setup/defaults", h.Timetable.GetSetupDefaults)
			timetables.GET("/:id", h.Timetable.GetTimetable)
			timetables.GET("/:id/grid", h.Timetable.GetGrid)
			timetables.GET("/:id/entries", h.Entry.ListEntries)
		}

		v1.GET("/subjects", h.Catalog.ListSubjects)
		v1.GET("/faculties", h.Catalog.ListFaculties)
		v1.GET("/rooms", h.Catalog.ListRooms)

		export := v1.Group("/export")
		{
			export.GET("/:id/excel", h.Export.ExportExcel)
			export.GET("/:id/pdf", h.Export.ExportPDF)
			export.GET("/:id/ics", h.Export.ExportICS)
		}

		// 管理端写接口
		admin := v1.Group("")
		admin.Use(middleware.JWTAuth(jwtMgr))
		admin.Use(middleware.RoleAuth(jwt.RoleAdmin))
		admin.Use(middleware.RateLimit(limiter, cfg.Server.RateLimit.Limit, cfg.Server.RateLimit.Window))
		{
			admin.POST("/timetables/setup", h.Timetable.Setup)
			admin.PUT("/timetables/:id/activate", h.Timetable.ActivateTimetable)
			admin.DELETE("/timetables/:id", h.Timetable.DeleteTimetable)

			admin.POST("/entries", h.Entry.CreateEntry)
			admin.PUT("/entries/:id", h.Entry.UpdateEntry)
			admin.DELETE("/entries/:id", h.Entry.DeleteEntry)

			admin.POST("/subjects", h.Catalog.CreateSubject)
			admin.PUT("/subjects/:id", h.Catalog.UpdateSubject)
			admin.DELETE("/subjects/:id", h.Catalog.DeleteSubject)

			admin.POST("/faculties", h.Catalog.CreateFaculty)
			admin.PUT("/faculties/:id", h.Catalog.UpdateFaculty)
			admin.DELETE("/faculties/:id", h.Catalog.DeleteFaculty)

			admin.POST("/rooms", h.Catalog.CreateRoom)
			admin.PUT("/rooms/:id", h.Catalog.UpdateRoom)
			admin.DELETE("/rooms/:id", h.Catalog.DeleteRoom)
		}
	}

	return r
}
