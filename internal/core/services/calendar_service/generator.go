package calendar_service

import (
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
)

// GenerateTimes генерирует равномерную сетку времен начала слотов
// внутри рабочего окна. Шаг - длительность слота плюс перерыв.
// Слот попадает в результат, если его начало строго раньше конца окна;
// конец последнего слота может выходить за окно - это сохраненное
// поведение исходной сетки.
func GenerateTimes(start, end json_types.ClockTime, slotDuration, breakDuration int) []json_types.ClockTime {
	times := make([]json_types.ClockTime, 0)

	if slotDuration <= 0 || breakDuration < 0 {
		return times
	}

	step := slotDuration + breakDuration
	for current := start; current < end; current = current.Add(step) {
		times = append(times, current)
	}

	return times
}
