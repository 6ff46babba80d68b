package json_types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ClockTime - время суток в минутах от полуночи, формат HH:MM
// Минуты удобны для арифметики слотов, строка HH:MM - для обмена с бэкендом.
// Сравнение ClockTime как чисел эквивалентно лексикографическому
// сравнению строк HH:MM, потому что строки дополнены нулями.
type ClockTime int

func NewClockTime(hours, minutes int) ClockTime {
	return ClockTime(hours*60 + minutes)
}

func ParseClockTime(str string) (ClockTime, error) {
	parts := strings.Split(str, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("failed to parse time %q: expected HH:MM", str)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("failed to parse time %q: %v", str, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("failed to parse time %q: %v", str, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("failed to parse time %q: out of range", str)
	}

	return NewClockTime(hours, minutes), nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t ClockTime) Add(minutes int) ClockTime {
	return t + ClockTime(minutes)
}

// Sub возвращает разницу в минутах
func (t ClockTime) Sub(other ClockTime) int {
	return int(t) - int(other)
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("failed to parse time: %s", string(data))
	}
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	// Бэкенд иногда отдает время с секундами, отбрасываем их
	if strings.Count(str, ":") == 2 {
		str = str[:strings.LastIndex(str, ":")]
	}

	parsed, err := ParseClockTime(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
