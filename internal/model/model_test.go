package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"08:45", NewClock(8, 45), false},
		{"08:45:00", NewClock(8, 45), false},
		{" 13:30 ", NewClock(13, 30), false},
		{"8.45", 0, true},
		{"25:00", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseClock(%q)=%s，期望 %s", tt.in, got, tt.want)
		}
	}
}

func TestClock_AddWrapsAtMidnight(t *testing.T) {
	c := NewClock(23, 30).Add(45)
	if c.String() != "00:15" {
		t.Errorf("期望 00:15，实际=%s", c)
	}
	if NewClock(0, 10).Add(-20).String() != "23:50" {
		t.Errorf("负向回绕错误: %s", NewClock(0, 10).Add(-20))
	}
}

func TestClock_ScanValue(t *testing.T) {
	var c Clock
	if err := c.Scan("10:45:00"); err != nil || c != NewClock(10, 45) {
		t.Errorf("Scan(string) c=%s err=%v", c, err)
	}
	if err := c.Scan([]byte("11:30:00.000000")); err != nil || c != NewClock(11, 30) {
		t.Errorf("Scan([]byte) c=%s err=%v", c, err)
	}
	if err := c.Scan(time.Date(0, 1, 1, 12, 30, 0, 0, time.UTC)); err != nil || c != NewClock(12, 30) {
		t.Errorf("Scan(time.Time) c=%s err=%v", c, err)
	}
	if err := c.Scan(3.14); err == nil {
		t.Error("不支持的类型应返回错误")
	}

	v, err := NewClock(8, 45).Value()
	if err != nil || v != "08:45:00" {
		t.Errorf("Value()=%v err=%v", v, err)
	}
}

func TestClock_JSON(t *testing.T) {
	b, err := json.Marshal(NewClock(9, 5))
	if err != nil || string(b) != `"09:05"` {
		t.Errorf("Marshal=%s err=%v", b, err)
	}
	var c Clock
	if err := json.Unmarshal([]byte(`"14:20"`), &c); err != nil || c != NewClock(14, 20) {
		t.Errorf("Unmarshal c=%s err=%v", c, err)
	}
	if err := json.Unmarshal([]byte(`"noon"`), &c); err == nil {
		t.Error("非法时间应返回错误")
	}
}

func TestWeekday(t *testing.T) {
	if len(Weekdays) != 6 || Weekdays[0] != Monday || Weekdays[5] != Saturday {
		t.Fatalf("星期顺序错误: %v", Weekdays)
	}
	if d, ok := ParseWeekday("tue"); !ok || d != Tuesday {
		t.Errorf("ParseWeekday(tue)=%s,%v", d, ok)
	}
	if _, ok := ParseWeekday("SUN"); ok {
		t.Error("周日不应合法")
	}
	if Friday.Name() != "Friday" || Friday.Offset() != 4 {
		t.Errorf("Friday Name=%s Offset=%d", Friday.Name(), Friday.Offset())
	}
}

func TestTimetableEntry_ReferenceAccessors(t *testing.T) {
	e := &TimetableEntry{Subject: &Subject{Code: "DE"}}
	if e.SubjectCode() != "DE" || e.FacultyInitials() != "" || e.RoomNumber() != "" {
		t.Errorf("引用访问器结果错误: %q %q %q", e.SubjectCode(), e.FacultyInitials(), e.RoomNumber())
	}
}
