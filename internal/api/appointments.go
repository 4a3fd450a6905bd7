package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/durendeer/petcare/internal/booking"
	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/internal/webserver"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type appointmentPayload struct {
	PetId       int64  `json:"pet_id,string"`
	ServiceId   int64  `json:"service_id,string"`
	ScheduledAt string `json:"scheduled_at"`
	TotalPrice  string `json:"total_price"`
	Notes       string `json:"notes"`
}

type statusPayload struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func registerAppointmentRoutes() {
	webserver.ApiGET("/appointments", listAppointments)
	webserver.ApiGET("/appointments/export", exportAppointments)
	webserver.ApiGET("/appointments/status/:status", listAppointmentsByStatus)
	webserver.ApiGET("/appointments/:id", getAppointment)
	webserver.ApiPOST("/appointments", createAppointment)
	webserver.ApiPUT("/appointments/:id/status", updateAppointmentStatus)
	webserver.ApiPATCH("/appointments/:id", updateAppointmentStatus)
	webserver.ApiDELETE("/appointments/:id", deleteAppointment)
}

func appointmentsQuery(c echo.Context) booking.GetUserAppointmentsQuery {
	query := booking.GetUserAppointmentsQuery{
		UserId:    currentUserID(c),
		Status:    strings.TrimSpace(c.QueryParam("status")),
		OrderBy:   c.QueryParam("sort"),
		OrderDesc: !strings.EqualFold(c.QueryParam("order"), "asc"),
	}
	if isAdmin(c) {
		if uid, err := strconv.ParseInt(c.QueryParam("user_id"), 10, 64); err == nil && uid > 0 {
			query.UserId = uid
		}
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		query.Limit = limit
	}
	return query
}

func listAppointments(c echo.Context) error {
	query := appointmentsQuery(c)
	if query.Status != "" && !domain.ValidAppointmentStatus(query.Status) {
		return failErr(c, domain.NewValidationError(
			"invalid status, valid options: "+strings.Join(domain.AppointmentStatuses, ", ")))
	}
	appts, err := booking.NewGormAppointmentRepository(GetDB(c)).
		FindByUser(c.Request().Context(), query)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, appts)
}

// listAppointmentsByStatus returns every appointment in the given status
// across all users, used by the admin agenda.
func listAppointmentsByStatus(c echo.Context) error {
	if !isAdmin(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin level required", nil)
	}
	status := strings.TrimSpace(c.Param("status"))
	if !domain.ValidAppointmentStatus(status) {
		return failErr(c, domain.NewValidationError(
			"invalid status, valid options: "+strings.Join(domain.AppointmentStatuses, ", ")))
	}
	appts, err := booking.NewGormAppointmentRepository(GetDB(c)).
		FindByStatus(c.Request().Context(), status)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, appts)
}

// loadOwnedAppointment fetches the appointment and hides rows the caller
// does not own.
func loadOwnedAppointment(c echo.Context, id int64) (*domain.Appointment, error) {
	appt, err := booking.NewGormAppointmentRepository(GetDB(c)).
		FindByID(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if !isAdmin(c) && appt.UserId != currentUserID(c) {
		return nil, domain.ErrNotFound
	}
	return appt, nil
}

func getAppointment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID", nil)
	}
	appt, err := loadOwnedAppointment(c, id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, appt)
}

func createAppointment(c echo.Context) error {
	var payload appointmentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse appointment", err.Error())
	}

	var msgs []string
	scheduledAt, err := dateparse.ParseLocal(payload.ScheduledAt)
	if err != nil {
		msgs = append(msgs, "scheduled_at is not a recognizable date")
	}
	if payload.PetId <= 0 {
		msgs = append(msgs, "pet_id is required")
	}
	if payload.ServiceId <= 0 {
		msgs = append(msgs, "service_id is required")
	}

	db := GetDB(c)
	totalPrice := decimal.Zero
	if payload.TotalPrice != "" {
		totalPrice, err = decimal.NewFromString(payload.TotalPrice)
		if err != nil {
			msgs = append(msgs, "total_price must be a decimal number")
		}
	} else if payload.ServiceId > 0 {
		// default to the service list price
		var service domain.GroomService
		if err := db.First(&service, payload.ServiceId).Error; err == nil {
			totalPrice = service.Price
		}
	}
	if len(msgs) > 0 {
		return failErr(c, domain.NewValidationError(msgs...))
	}

	handler := booking.NewCreateAppointmentHandler(db, GetAppContext(c).Bus())
	appt, err := handler.Handle(c.Request().Context(), booking.CreateAppointmentCommand{
		UserId:      currentUserID(c),
		PetId:       payload.PetId,
		ServiceId:   payload.ServiceId,
		ScheduledAt: scheduledAt,
		TotalPrice:  totalPrice,
		Notes:       payload.Notes,
	})
	if err != nil {
		return failErr(c, err)
	}
	addOprLog(c, "appointment.create", strconv.FormatInt(appt.ID, 10))
	return created(c, appt)
}

func updateAppointmentStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID", nil)
	}
	if _, err := loadOwnedAppointment(c, id); err != nil {
		return failErr(c, err)
	}

	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}

	handler := booking.NewUpdateAppointmentStatusHandler(GetDB(c), GetAppContext(c).Bus())
	appt, err := handler.Handle(c.Request().Context(), booking.UpdateAppointmentStatusCommand{
		AppointmentId: id,
		Status:        strings.TrimSpace(payload.Status),
		Notes:         payload.Notes,
	})
	if err != nil {
		return failErr(c, err)
	}
	addOprLog(c, "appointment.status", appt.Status)
	return ok(c, appt)
}

func deleteAppointment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID", nil)
	}
	if _, err := loadOwnedAppointment(c, id); err != nil {
		return failErr(c, err)
	}
	if err := booking.NewGormAppointmentRepository(GetDB(c)).
		Delete(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	addOprLog(c, "appointment.delete", strconv.FormatInt(id, 10))
	return ok(c, map[string]interface{}{"id": id})
}

type appointmentCSV struct {
	ID          int64  `csv:"id"`
	Pet         string `csv:"pet"`
	Service     string `csv:"service"`
	ScheduledAt string `csv:"scheduled_at"`
	Status      string `csv:"status"`
	TotalPrice  string `csv:"total_price"`
}

func exportAppointments(c echo.Context) error {
	appts, err := booking.NewGormAppointmentRepository(GetDB(c)).
		FindByUser(c.Request().Context(), appointmentsQuery(c))
	if err != nil {
		return failErr(c, err)
	}

	rows := make([]appointmentCSV, 0, len(appts))
	for _, a := range appts {
		row := appointmentCSV{
			ID:          a.ID,
			ScheduledAt: a.ScheduledAt.Format(time.RFC3339),
			Status:      a.Status,
			TotalPrice:  a.TotalPrice.StringFixed(2),
		}
		if a.Pet != nil {
			row.Pet = a.Pet.Name
		}
		if a.Service != nil {
			row.Service = a.Service.Name
		}
		rows = append(rows, row)
	}

	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export appointments", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="appointments.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}
