// Package tzclock переводит настенное время локации в UTC-инстанты и обратно.
//
// Все вычисления идут через календарь time.Location (IANA tzdata), а не через
// арифметику смещений над unix-временем: это единственный способ корректно
// обработать переходы на летнее/зимнее время.
package tzclock

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// DateLayout формат ключа даты YYYY-MM-DD
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDate возвращается при некорректном ключе даты
	ErrInvalidDate = errors.New("tzclock: invalid date key")

	// ErrUnknownTimezone возвращается, когда часовой пояс не найден в базе IANA
	ErrUnknownTimezone = errors.New("tzclock: unknown timezone")

	// ErrNonexistentWallClock возвращается для настенного времени, попадающего в "дыру" перехода на летнее время
	ErrNonexistentWallClock = errors.New("tzclock: wall clock time does not exist in timezone")
)

// LoadLocation загружает часовой пояс IANA
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownTimezone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, name, err)
	}
	return loc, nil
}

// ParseDateKey проверяет ключ даты и возвращает полночь этой даты в UTC (как календарное значение)
func ParseDateKey(dateKey string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, dateKey, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateKey)
	}
	return day, nil
}

// DateKey календарная дата инстанта в часовом поясе loc
func DateKey(instant time.Time, loc *time.Location) string {
	return instant.In(loc).Format(DateLayout)
}

// Weekday день недели инстанта в часовом поясе loc (0=Вс..6=Сб)
func Weekday(instant time.Time, loc *time.Location) int {
	return int(instant.In(loc).Weekday())
}

// WeekdayOfDate день недели календарной даты (0=Вс..6=Сб)
func WeekdayOfDate(dateKey string) (int, error) {
	day, err := ParseDateKey(dateKey)
	if err != nil {
		return 0, err
	}
	return int(day.Weekday()), nil
}

// AddDays сдвигает ключ даты на n календарных дней
func AddDays(dateKey string, n int) (string, error) {
	day, err := ParseDateKey(dateKey)
	if err != nil {
		return "", err
	}
	return day.AddDate(0, 0, n).Format(DateLayout), nil
}

// WallClockToInstant переводит (дата, "HH:MM") в часовом поясе loc в инстант.
// Гарантия: InstantToWallClock(результат, loc) возвращает исходную пару.
func WallClockToInstant(dateKey string, hhmm string, loc *time.Location) (time.Time, error) {
	minutes, err := types.TimeToMinutes(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return WallClockMinutesToInstant(dateKey, minutes, loc)
}

// WallClockMinutesToInstant то же, что WallClockToInstant, но минута суток задаётся числом.
//
// Время из "дыры" весеннего перехода не существует - ErrNonexistentWallClock.
// Время из "складки" осеннего перехода встречается дважды - берётся более ранний инстант.
func WallClockMinutesToInstant(dateKey string, minutes int, loc *time.Location) (time.Time, error) {
	day, err := ParseDateKey(dateKey)
	if err != nil {
		return time.Time{}, err
	}
	if minutes < 0 || minutes >= types.MinutesPerDay {
		return time.Time{}, fmt.Errorf("%w: %d", types.ErrMinutesOutOfRange, minutes)
	}

	hour, minute := minutes/60, minutes%60
	naive := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)

	// Смещения, действующие в окрестности ±сутки, покрывают любой переход рядом с этой датой
	offsets := make(map[int]struct{}, 3)
	for _, probe := range []time.Time{naive.Add(-24 * time.Hour), naive, naive.Add(24 * time.Hour)} {
		_, offset := probe.In(loc).Zone()
		offsets[offset] = struct{}{}
	}

	var (
		best  time.Time
		found bool
	)
	for offset := range offsets {
		candidate := naive.Add(-time.Duration(offset) * time.Second)
		local := candidate.In(loc)
		if local.Year() != day.Year() || local.Month() != day.Month() || local.Day() != day.Day() ||
			local.Hour() != hour || local.Minute() != minute {
			continue
		}
		if !found || candidate.Before(best) {
			best = candidate
			found = true
		}
	}

	if !found {
		return time.Time{}, fmt.Errorf("%w: %s %02d:%02d in %s", ErrNonexistentWallClock, dateKey, hour, minute, loc)
	}
	return best.UTC(), nil
}

// WallClockEndToInstant переводит правую границу интервала (минута суток, не включительно) в инстант.
//
// Граница 24:00 - начало следующих суток. Граница из "дыры" весеннего перехода
// сдвигается на первую существующую минуту после неё, то есть на момент перехода.
func WallClockEndToInstant(dateKey string, minutes int, loc *time.Location) (time.Time, error) {
	if minutes < 0 || minutes > types.MinutesPerDay {
		return time.Time{}, fmt.Errorf("%w: %d", types.ErrMinutesOutOfRange, minutes)
	}
	for m := minutes; m < types.MinutesPerDay; m++ {
		instant, err := WallClockMinutesToInstant(dateKey, m, loc)
		if err == nil {
			return instant, nil
		}
		if !errors.Is(err, ErrNonexistentWallClock) {
			return time.Time{}, err
		}
	}
	_, end, err := DayBounds(dateKey, loc)
	return end, err
}

// InstantToWallClock возвращает дату и время суток инстанта в часовом поясе loc
func InstantToWallClock(instant time.Time, loc *time.Location) (string, types.TimeString) {
	local := instant.In(loc)
	return local.Format(DateLayout), types.NewTimeString(local)
}

// MinuteOfDay минута суток инстанта в часовом поясе loc
func MinuteOfDay(instant time.Time, loc *time.Location) int {
	local := instant.In(loc)
	return local.Hour()*60 + local.Minute()
}

// DayBounds возвращает границы суток [00:00, 24:00) даты в часовом поясе loc как UTC-инстанты
func DayBounds(dateKey string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := startOfDay(dateKey, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	next, err := AddDays(dateKey, 1)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := startOfDay(next, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

// startOfDay первый инстант календарной даты. Если полночь попадает в "дыру"
// перехода (бывает в некоторых зонах), сутки начинаются с первой существующей минуты.
func startOfDay(dateKey string, loc *time.Location) (time.Time, error) {
	instant, err := WallClockMinutesToInstant(dateKey, 0, loc)
	if err == nil {
		return instant, nil
	}
	if !errors.Is(err, ErrNonexistentWallClock) {
		return time.Time{}, err
	}

	day, _ := ParseDateKey(dateKey)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc).UTC(), nil
}
