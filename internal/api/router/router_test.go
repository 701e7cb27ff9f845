package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/krishpatel1827/EduSync/config"
	"github.com/krishpatel1827/EduSync/internal/api/handler"
	"github.com/krishpatel1827/EduSync/internal/dto"
	"github.com/krishpatel1827/EduSync/internal/service"
	"github.com/krishpatel1827/EduSync/pkg/jwt"
	"github.com/krishpatel1827/EduSync/pkg/response"
)

// stubTimetableService 只实现网格查询，其余方法未调用
type stubTimetableService struct {
	service.TimetableService
	gridIDs []string
}

func (s *stubTimetableService) GetGrid(_ context.Context, id string) (*dto.GridResponse, error) {
	s.gridIDs = append(s.gridIDs, id)
	if id == "" {
		return nil, service.ErrNoActiveTimetable
	}
	return &dto.GridResponse{}, nil
}

func newTestEngine(tt service.TimetableService) (http.Handler, *jwt.Manager) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:         8080,
			MaxBodyBytes: 1 << 20,
			CORS:         config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}},
		},
		Auth: config.AuthConfig{JWTSecret: "router-test-secret-0123456789", AccessTokenTTL: time.Hour},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	h := handler.NewHandler(&service.Service{Timetable: tt})
	return Setup(cfg, h, jwtMgr, nil, zap.NewNop()), jwtMgr
}

func TestSetup_Health(t *testing.T) {
	engine, _ := newTestEngine(&stubTimetableService{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("全局中间件应回写 X-Request-ID")
	}
}

func TestSetup_ActiveGridRoutes(t *testing.T) {
	tt := &stubTimetableService{}
	engine, _ := newTestEngine(tt)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/timetables/active/grid", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("无活动版本期望 404，实际 %d", w.Code)
	}
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	if resp.Code != 17002 || resp.Details != "/" {
		t.Errorf("期望 code=17002 details=/，实际 %+v", resp)
	}
	if resp.RequestID == "" || resp.RequestID != w.Header().Get("X-Request-ID") {
		t.Errorf("错误响应应携带与响应头一致的 request_id，实际 %q", resp.RequestID)
	}

	const id = "4f1c2a7e-9b3d-4c8e-a1f0-5d6e7f8a9b0c"
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/timetables/"+id+"/grid", nil))
	if w.Code != http.StatusOK {
		t.Errorf("按 id 查询期望 200，实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/timetables/abc/grid", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("非法 id 期望 404，实际 %d", w.Code)
	}

	if len(tt.gridIDs) != 2 || tt.gridIDs[0] != "" || tt.gridIDs[1] != id {
		t.Errorf("GetGrid 参数异常: %v", tt.gridIDs)
	}
}

func TestSetup_AdminRoutesRequireToken(t *testing.T) {
	engine, jwtMgr := newTestEngine(&stubTimetableService{})

	writes := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/timetables/setup"},
		{http.MethodPut, "/api/v1/timetables/abc/activate"},
		{http.MethodDelete, "/api/v1/timetables/abc"},
		{http.MethodPost, "/api/v1/entries"},
		{http.MethodDelete, "/api/v1/subjects/abc"},
		{http.MethodPut, "/api/v1/rooms/abc"},
	}
	for _, wr := range writes {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(wr.method, wr.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s 未带令牌期望 401，实际 %d", wr.method, wr.path, w.Code)
		}
	}

	viewer, _ := jwtMgr.GenerateToken("viewer", "viewer", 0)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/timetables/abc", nil)
	req.Header.Set("Authorization", "Bearer "+viewer)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("非管理员期望 403，实际 %d", w.Code)
	}
}
