package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ── 墙上时钟时间 ──

// minutesPerDay 一天的分钟数；时钟运算按 24 小时取模
const minutesPerDay = 24 * 60

// Clock 墙上时钟时间（无时区），以零点起的分钟数表示。
// 对应 PostgreSQL TIME 类型，实现 GORM Scanner/Valuer 接口；JSON 形式为 "HH:MM"。
type Clock int

// NewClock 由时、分构造 Clock
func NewClock(hour, minute int) Clock {
	return Clock(0).Add(hour*60 + minute)
}

// ParseClock 解析 "HH:MM" 或 "HH:MM:SS"
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewClock(t.Hour(), t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("无效的时间格式 %q，应为 HH:MM", s)
}

// Add 前进 minutes 分钟，跨零点回绕
func (c Clock) Add(minutes int) Clock {
	v := (int(c) + minutes) % minutesPerDay
	if v < 0 {
		v += minutesPerDay
	}
	return Clock(v)
}

// Hour 小时（0-23）
func (c Clock) Hour() int { return int(c) / 60 }

// Minute 分钟（0-59）
func (c Clock) Minute() int { return int(c) % 60 }

// String 格式化为 "HH:MM"
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Scan 支持驱动返回的 "08:45:00" 文本或 time.Time
func (c *Clock) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = 0
		return nil
	case time.Time:
		*c = NewClock(v.Hour(), v.Minute())
		return nil
	case []byte:
		return c.scanString(string(v))
	case string:
		return c.scanString(v)
	default:
		return fmt.Errorf("Clock.Scan: unsupported type %T", src)
	}
}

func (c *Clock) scanString(s string) error {
	// 可能携带小数秒，如 08:45:00.000000
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return fmt.Errorf("Clock.Scan: %w", err)
	}
	*c = parsed
	return nil
}

// Value 序列化为 PostgreSQL TIME 文本
func (c Clock) Value() (driver.Value, error) {
	return c.String() + ":00", nil
}

// MarshalJSON 输出 "HH:MM"
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON 接受 "HH:MM" / "HH:MM:SS"
func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
