package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	return resp
}

func TestError_CarriesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ContextKeyRequestID, "rid-1")

	NotFoundWithDetails(c, 17002, "当前没有活动课表", "/")

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际=%d", w.Code)
	}
	resp := decode(t, w)
	if resp.Code != 17002 || resp.Details != "/" || resp.RequestID != "rid-1" {
		t.Errorf("响应字段异常: %+v", resp)
	}
}

func TestOKPage_TotalPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 0},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		OKPage(c, []int{}, tc.total, 1, tc.pageSize)

		var body struct {
			Data PageData `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Data.Pagination.TotalPages != tc.want {
			t.Errorf("total=%d size=%d: 期望 %d 页，实际=%d", tc.total, tc.pageSize, tc.want, body.Data.Pagination.TotalPages)
		}
	}
}

func TestFile_Headers(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	File(c, "application/pdf", "Timetable 2026-03-04.pdf", []byte("%PDF"))

	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type 异常: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment; filename*=UTF-8''") || !strings.Contains(cd, "Timetable%202026-03-04.pdf") {
		t.Errorf("Content-Disposition 异常: %s", cd)
	}
	if w.Body.String() != "%PDF" {
		t.Errorf("响应体异常: %q", w.Body.String())
	}
}
