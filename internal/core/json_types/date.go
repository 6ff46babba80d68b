package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date - календарная дата без времени и таймзоны, формат YYYY-MM-DD
type Date struct {
	Date time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(str string) (Date, error) {
	parsedDate, err := time.Parse(dateLayout, str)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date: %v", err)
	}
	return Date{Date: parsedDate}, nil
}

func (d Date) String() string {
	return d.Date.Format(dateLayout)
}

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}

func (d Date) AddDays(days int) Date {
	return Date{Date: d.Date.AddDate(0, 0, days)}
}

func (d Date) Weekday() time.Weekday {
	return d.Date.Weekday()
}

// Equal сравнивает только календарный день
func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

func (d Date) Before(other Date) bool {
	return d.Date.Before(other.Date)
}

func (d Date) After(other Date) bool {
	return d.Date.After(other.Date)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 {
		return fmt.Errorf("failed to parse date: %s", string(data))
	}
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsedDate, err := ParseDate(str)
	if err != nil {
		return err
	}

	*d = parsedDate
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
