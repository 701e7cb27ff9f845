package handler

import "github.com/krishpatel1827/EduSync/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Timetable *TimetableHandler
	Entry     *EntryHandler
	Catalog   *CatalogHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Timetable: NewTimetableHandler(svc.Timetable),
		Entry:     NewEntryHandler(svc.Entry),
		Catalog:   NewCatalogHandler(svc.Catalog),
		Export:    NewExportHandler(svc.Export),
	}
}
