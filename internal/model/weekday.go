package model

import "strings"

// Weekday 排课星期（周一至周六，无周日）
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
)

// Weekdays 固定的星期展示顺序
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
}

// Name 星期全称，如 Monday
func (d Weekday) Name() string { return weekdayNames[d] }

// Valid 是否为合法的排课星期
func (d Weekday) Valid() bool {
	_, ok := weekdayNames[d]
	return ok
}

// Offset 相对周一的天数（MON=0）；非法值返回 -1
func (d Weekday) Offset() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// ParseWeekday 解析星期代码（大小写不敏感）
func ParseWeekday(s string) (Weekday, bool) {
	d := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	return d, d.Valid()
}
