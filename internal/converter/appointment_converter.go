package converter

import (
	"time"

	"clinic-appointment-bot/internal/delivery/dto"
	"clinic-appointment-bot/internal/domain/entity"
)

// LocalTimeFormat is how times are shown back to users.
const LocalTimeFormat = "02.01.2006 15:04"

// AppointmentToView converts an Appointment entity to its read model, with
// the scheduled time rendered in the clinic zone.
func AppointmentToView(appointment *entity.Appointment, loc *time.Location) *dto.AppointmentView {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentView{
		PatientID:        appointment.PatientID,
		FullName:         appointment.FullNameSnapshot,
		ScheduledAt:      appointment.ScheduledAt,
		ScheduledAtLocal: appointment.ScheduledAt.In(loc).Format(LocalTimeFormat),
	}
}
