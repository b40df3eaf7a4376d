package list_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(barbershopID uuid.UUID, barberIDStr, dateStr, statusStr, includeCanceledStr string) (*models.ListRequest, error) {
	if dateStr == "" {
		return nil, fmt.Errorf("date is required")
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	req := &models.ListRequest{
		BarbershopID: barbershopID,
		Date:         date,
	}

	if barberIDStr != "" {
		barberID, err := handlers.ParseUUID(barberIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid barberId: %w", err)
		}
		req.BarberID = &barberID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCanceledStr != "" {
		includeCanceled, err := strconv.ParseBool(includeCanceledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCanceled: %w", err)
		}
		req.IncludeCanceled = includeCanceled
	}

	return req, nil
}
