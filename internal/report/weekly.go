package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/model"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/schedule"
)

// Builder renders weekly schedule reports as Excel workbooks.
type Builder struct {
	resolver *schedule.Resolver
}

// NewBuilder creates a report builder over the given resolver.
func NewBuilder(resolver *schedule.Resolver) *Builder {
	return &Builder{resolver: resolver}
}

// WriteWeekly writes an xlsx workbook for the week starting at weekStart:
// a schedule sheet with one row per day and an hour grid sized by the weekly
// open/close extents, and a bookings sheet.
func (b *Builder) WriteWeekly(
	out io.Writer,
	center *model.ServiceCenter,
	weekStart time.Time,
	regular, special []model.ScheduleEntry,
	bookings []model.Booking,
) error {
	w := newSheetWriter()
	defer w.close()

	if err := b.writeScheduleSheet(w, weekStart, regular, special); err != nil {
		return err
	}
	if err := writeBookingsSheet(w, bookings); err != nil {
		return err
	}

	if center != nil && center.Name != "" {
		_ = w.file.SetDocProps(&excelize.DocProperties{Title: center.Name + " weekly schedule"})
	}
	return w.saveTo(out)
}

func (b *Builder) writeScheduleSheet(w *sheetWriter, weekStart time.Time, regular, special []model.ScheduleEntry) error {
	if err := w.addSheet("Schedule"); err != nil {
		return err
	}

	weekRange := b.resolver.WorkingHoursRangeForWeek(weekStart, regular, special)

	header := []string{"Date", "Weekday", "Status", "Open", "Close"}
	for h := weekRange.Start; h < weekRange.End; h++ {
		header = append(header, fmt.Sprintf("%02d:00", h))
	}
	if err := w.writeHeader(header); err != nil {
		return err
	}

	for d := 0; d < 7; d++ {
		day := weekStart.AddDate(0, 0, d)
		hours := b.resolver.WorkingHoursForDate(day, regular, special)

		row := []interface{}{
			day.Format(model.DateLayout),
			model.WeekdayName(day.Weekday()),
		}
		if hours == nil {
			row = append(row, "closed", "", "")
		} else {
			row = append(row, "open", hours.Open, hours.Close)
		}

		for h := weekRange.Start; h < weekRange.End; h++ {
			slot := fmt.Sprintf("%02d:00", h)
			if schedule.IsTimeInWorkingHours(slot, hours) {
				row = append(row, "+")
			} else {
				row = append(row, "")
			}
		}

		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

func writeBookingsSheet(w *sheetWriter, bookings []model.Booking) error {
	if err := w.addSheet("Bookings"); err != nil {
		return err
	}
	if err := w.writeHeader([]string{"Date", "Slot", "Client", "Phone", "Car", "Status", "Comment"}); err != nil {
		return err
	}

	for i := range bookings {
		b := &bookings[i]
		row := []interface{}{
			b.StartTime.Format(model.DateLayout),
			b.SlotLabel(),
			b.ClientName,
			b.ClientPhone,
			b.CarModel,
			b.Status,
			b.Comment,
		}
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return nil
}
