package service

import (
	"errors"

	"github.com/krishpatel1827/EduSync/internal/model"
)

// ── 节次生成器 ──────────────────────────────────────────────
//
// 职责：由 (开始时间, 课时长, 课间时长, 课间前节数, 课间后节数) 生成有序节次。
//
//   - 游标从 StartTime 开始，每生成一节推进对应时长，前后无空隙
//   - 课间前 N 节 → 恰好一个课间 → 课间后 M 节，sequence_number 连续 1..N+1+M
//   - N=0 时课间为第一节，M=0 时课间为最后一节；课间永远存在
// ─────────────────────────────────────────────────────────────

var ErrSlotParamsInvalid = errors.New("节次参数无效：时长必须为正数，节数不能为负数")

// SlotParams 节次生成参数
type SlotParams struct {
	StartTime           model.Clock
	LectureMinutes      int
	BreakMinutes        int
	LecturesBeforeBreak int
	LecturesAfterBreak  int
}

// GenerateSlots 生成节次序列（未持久化，TimetableID 由调用方填充）
func GenerateSlots(p SlotParams) ([]model.TimeSlot, error) {
	if p.LectureMinutes <= 0 || p.BreakMinutes <= 0 || p.LecturesBeforeBreak < 0 || p.LecturesAfterBreak < 0 {
		return nil, ErrSlotParamsInvalid
	}

	slots := make([]model.TimeSlot, 0, p.LecturesBeforeBreak+1+p.LecturesAfterBreak)
	cursor := p.StartTime

	emit := func(minutes int, isBreak bool) {
		end := cursor.Add(minutes)
		slots = append(slots, model.TimeSlot{
			SequenceNumber: len(slots) + 1,
			StartTime:      cursor,
			EndTime:        end,
			IsBreak:        isBreak,
		})
		cursor = end
	}

	for i := 0; i < p.LecturesBeforeBreak; i++ {
		emit(p.LectureMinutes, false)
	}
	emit(p.BreakMinutes, true)
	for i := 0; i < p.LecturesAfterBreak; i++ {
		emit(p.LectureMinutes, false)
	}

	return slots, nil
}
