package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSalonNotFound       = "салон не найден"
	msgStaffNotFound       = "мастер не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotPerformed = "мастер не выполняет выбранную услугу"
	msgInvalidDate         = "некорректная дата записи"
	msgOutsideWorkingHours = "слот выходит за рабочие часы мастера"
	msgStaffUnavailable    = "мастер недоступен в выбранное время"
	msgSlotTaken           = "выбранный слот уже занят"
)

// Машиночитаемые коды причин для 422 ответов
const (
	reasonOutOfHours       = "out_of_hours"
	reasonStaffUnavailable = "staff_unavailable"
	reasonDoubleBooked     = "double_booked"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Зарегистрированный клиент определяется по заголовку, гость - по полям тела
	var clientUserID *int64
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		clientUserID = &userID
	}

	useCaseReq, err := req.ToUseCaseRequest(clientUserID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSalonNotFound):
			h.logger.Warn("POST /appointments - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: salon_id=%d, staff_id=%d", req.SalonID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: salon_id=%d, service_id=%d", req.SalonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotPerformed):
			h.logger.Warn("POST /appointments - Service not performed: staff_id=%d, service_id=%d", req.StaffID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotPerformed)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: salon_id=%d, date=%s", req.SalonID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: staff_id=%d, date=%s, time=%s",
				req.StaffID, req.Date, req.StartTime)
			handlers.RespondReason(w, http.StatusUnprocessableEntity, reasonOutOfHours, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrStaffUnavailable):
			h.logger.Warn("POST /appointments - Staff unavailable: staff_id=%d, date=%s, time=%s",
				req.StaffID, req.Date, req.StartTime)
			handlers.RespondReason(w, http.StatusUnprocessableEntity, reasonStaffUnavailable, msgStaffUnavailable)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: staff_id=%d, date=%s, time=%s",
				req.StaffID, req.Date, req.StartTime)
			handlers.RespondReason(w, http.StatusUnprocessableEntity, reasonDoubleBooked, msgSlotTaken)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: salon_id=%d, staff_id=%d, error=%v",
				req.SalonID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, staff_id=%d, status=%s",
		result.ID, req.StaffID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
