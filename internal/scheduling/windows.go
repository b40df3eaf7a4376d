package scheduling

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// FreeWindowInput данные одного дня для расчёта свободных окон.
// Из Date используются только год, месяц и день: это календарная дата в локации барбершопа.
type FreeWindowInput struct {
	WorkingPeriods []domain.WorkingPeriod
	Blocks         []domain.BlockedInterval
	Appointments   []domain.Appointment
	Date           time.Time
	Location       *time.Location // nil = UTC
	BarbershopID   uuid.UUID
	BarberID       *uuid.UUID // nil = любой барбер
}

type interval struct {
	start time.Time
	end   time.Time
}

// FreeWindows вычисляет свободные окна на дату: рабочие периоды за вычетом
// блокировок и неотменённых записей.
//
// Каждый рабочий период обрабатывается отдельно: занятые интервалы, пересекающиеся
// с периодом, сортируются по началу, и курсор проходит слева направо. Промежуток между
// курсором и началом очередного интервала становится окном, курсор сдвигается на
// max(cursor, interval.end).
//
// Результат отсортирован по началу, окна не пересекаются и имеют положительную длину.
// Некорректные периоды и блокировки (start >= end) пропускаются.
func FreeWindows(in FreeWindowInput) []domain.FreeWindow {
	loc := locationOrUTC(in.Location)
	weekday := localDay(in.Date, loc).Weekday()

	windows := make([]domain.FreeWindow, 0)
	for i := range in.WorkingPeriods {
		period := &in.WorkingPeriods[i]
		if !periodMatches(period, weekday, in.BarbershopID, in.BarberID) {
			continue
		}

		periodStart := period.StartTime.On(in.Date, loc)
		periodEnd := period.EndTime.On(in.Date, loc)
		if !periodStart.Before(periodEnd) {
			continue
		}

		busy := busyIntervals(in, periodStart, periodEnd)
		windows = append(windows, sweep(periodStart, periodEnd, busy)...)
	}

	return normalize(windows)
}

func periodMatches(p *domain.WorkingPeriod, weekday time.Weekday, barbershopID uuid.UUID, barberID *uuid.UUID) bool {
	if !p.IsActive || !p.IsValid() || p.Weekday != weekday {
		return false
	}
	if p.BarbershopID != barbershopID {
		return false
	}
	return barberID == nil || p.BarberID == *barberID
}

// busyIntervals собирает блокировки и записи, пересекающиеся с [from, to)
func busyIntervals(in FreeWindowInput, from, to time.Time) []interval {
	busy := make([]interval, 0, len(in.Blocks)+len(in.Appointments))

	for i := range in.Blocks {
		b := &in.Blocks[i]
		if !b.IsActive || !b.IsValid() || b.BarbershopID != in.BarbershopID {
			continue
		}
		if in.BarberID != nil && b.BarberID != *in.BarberID {
			continue
		}
		if Overlaps(b.StartsAt, b.EndsAt, from, to) {
			busy = append(busy, interval{start: b.StartsAt, end: b.EndsAt})
		}
	}

	for i := range in.Appointments {
		a := &in.Appointments[i]
		if !a.OccupiesTime() || !a.StartsAt.Before(a.EndsAt) || a.BarbershopID != in.BarbershopID {
			continue
		}
		if in.BarberID != nil && !a.BelongsTo(*in.BarberID) {
			continue
		}
		if Overlaps(a.StartsAt, a.EndsAt, from, to) {
			busy = append(busy, interval{start: a.StartsAt, end: a.EndsAt})
		}
	}

	sort.Slice(busy, func(i, j int) bool {
		return busy[i].start.Before(busy[j].start)
	})
	return busy
}

func sweep(start, end time.Time, busy []interval) []domain.FreeWindow {
	windows := make([]domain.FreeWindow, 0, len(busy)+1)
	cursor := start

	for _, b := range busy {
		if b.start.After(cursor) {
			windows = append(windows, domain.FreeWindow{Start: cursor, End: b.start})
		}
		if b.end.After(cursor) {
			cursor = b.end
		}
	}

	if cursor.Before(end) {
		windows = append(windows, domain.FreeWindow{Start: cursor, End: end})
	}
	return windows
}

// normalize сортирует окна и склеивает только реально пересекающиеся
// (периоды одного дня могут быть заведены внахлёст). Соприкасающиеся окна
// остаются раздельными.
func normalize(windows []domain.FreeWindow) []domain.FreeWindow {
	if len(windows) < 2 {
		return windows
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})

	merged := windows[:1]
	for _, w := range windows[1:] {
		last := &merged[len(merged)-1]
		if w.Start.Before(last.End) {
			if w.End.After(last.End) {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd).
// Интервалы, которые только соприкасаются, не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DayBounds возвращает границы календарного дня [start, end) в локации
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := localDay(date, locationOrUTC(loc))
	return start, start.AddDate(0, 0, 1)
}

func localDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func locationOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
