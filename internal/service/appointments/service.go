package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberSlots/internal/scheduling"
	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberSlots/pkg/txmanager"
)

const defaultCancelReason = "canceled"

// Service сервис для чтения и отмены записей
type Service struct {
	appointmentRepo AppointmentRepository
	locations       LocationProvider
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	locations LocationProvider,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		locations:       locations,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись барбершопа вместе со строками услуг
func (s *Service) GetByID(ctx context.Context, barbershopID, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s in barbershop=%s", id, barbershopID)

	if barbershopID == uuid.Nil || id == uuid.Nil {
		return nil, fmt.Errorf("%w: barbershopID and id are required", ErrInvalidInput)
	}

	var resp *models.AppointmentResponse
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, barbershopID, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("GetByID: appointment id=%s not found", id)
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
		}

		lines, err := s.appointmentRepo.ListServices(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: GetByID - list services: %w", ErrInternal, err)
		}

		loc, err := s.locations.Location(txCtx, barbershopID)
		if err != nil {
			return fmt.Errorf("%w: GetByID - resolve timezone: %w", ErrInternal, err)
		}

		resp = models.FromDomainAppointment(appt, lines, loc)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("GetByID: failed for appointment id=%s: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return resp, nil
}

// List получает записи барбершопа за локальный день
//
// Примеры использования:
// - Все активные записи за день: List(ctx, &ListRequest{BarbershopID: shop, Date: day})
// - Записи одного барбера: указать BarberID
// - Только отмененные: Status = "CANCELED"
// - Включая отмененные: IncludeCanceled = true
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching appointments for barbershop=%s, date=%s",
		req.BarbershopID, req.Date.Format(domain.DateFormat))
	if req.BarberID != nil {
		logMsg += fmt.Sprintf(", barber=%s", *req.BarberID)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if req.BarbershopID == uuid.Nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: barbershopID and date are required", ErrInvalidInput)
	}

	var status *domain.AppointmentStatus
	if req.Status != nil {
		st, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	var resp *models.AppointmentListResponse
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		loc, err := s.locations.Location(txCtx, req.BarbershopID)
		if err != nil {
			return fmt.Errorf("%w: List - resolve timezone: %w", ErrInternal, err)
		}

		dayStart, dayEnd := scheduling.DayBounds(req.Date, loc)
		appts, err := s.appointmentRepo.List(txCtx, domain.AppointmentFilter{
			BarbershopID:    req.BarbershopID,
			BarberID:        req.BarberID,
			From:            dayStart,
			To:              dayEnd,
			IncludeCanceled: req.IncludeCanceled || (status != nil && *status == domain.StatusCanceled),
		})
		if err != nil {
			return fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
		}

		resp = &models.AppointmentListResponse{
			Timezone:     loc.String(),
			Appointments: make([]models.AppointmentResponse, 0, len(appts)),
		}
		for i := range appts {
			if status != nil && appts[i].Status != *status {
				continue
			}
			lines, err := s.appointmentRepo.ListServices(txCtx, appts[i].ID)
			if err != nil {
				return fmt.Errorf("%w: List - list services: %w", ErrInternal, err)
			}
			resp.Appointments = append(resp.Appointments, *models.FromDomainAppointment(&appts[i], lines, loc))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("List: failed for barbershop=%s: %v", req.BarbershopID, err)
		return nil, err
	}

	s.logger.Info("List: successfully fetched %d appointments for barbershop=%s",
		len(resp.Appointments), req.BarbershopID)
	return resp, nil
}

// Cancel отменяет подтвержденную запись и освобождает ее интервал
func (s *Service) Cancel(ctx context.Context, barbershopID, id uuid.UUID, req *models.CancelRequest) error {
	s.logger.Info("Cancel: canceling appointment id=%s in barbershop=%s", id, barbershopID)

	if barbershopID == uuid.Nil || id == uuid.Nil {
		return fmt.Errorf("%w: barbershopID and id are required", ErrInvalidInput)
	}

	reason := defaultCancelReason
	if req != nil && strings.TrimSpace(req.Reason) != "" {
		reason = strings.TrimSpace(req.Reason)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, barbershopID, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		if !appt.CanBeCanceled() {
			s.logger.Warn("Cancel: appointment id=%s cannot be canceled, status=%s", id, appt.Status)
			return ErrCannotCancel
		}

		from := appt.Status
		err = s.appointmentRepo.UpdateStatus(txCtx, domain.AppointmentStatusChange{
			AppointmentID: id,
			FromStatus:    &from,
			ToStatus:      domain.StatusCanceled,
			Reason:        reason,
		}, barbershopID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: Cancel - update status: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		// Конкурентная транзакция изменила запись, и повторы исчерпаны
		if txmanager.IsSerializationFailure(err) {
			s.logger.Warn("Cancel: serialization conflict for appointment id=%s", id)
			return fmt.Errorf("%w: concurrent update", ErrCannotCancel)
		}
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrCannotCancel) {
			s.logger.Warn("Cancel: appointment id=%s not canceled: %v", id, err)
			return err
		}
		s.logger.Error("Cancel: failed for appointment id=%s: %v", id, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: Cancel: %w", ErrInternal, err)
		}
		return err
	}

	s.logger.Info("Cancel: successfully canceled appointment id=%s", id)
	return nil
}
