package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// IsValidGranularity проверяет, что шаг сетки - делитель 60 не меньше 5 минут
func IsValidGranularity(minutes int) bool {
	return minutes >= domain.MinGranularityMinutes &&
		minutes <= domain.MaxGranularityMinutes &&
		60%minutes == 0
}

// ValidateGranularity возвращает ErrInvalidGranularity для недопустимого шага
func ValidateGranularity(minutes int) error {
	if !IsValidGranularity(minutes) {
		return fmt.Errorf("%w: %d minutes (must divide 60 and be within [%d, %d])",
			ErrInvalidGranularity, minutes, domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
	}
	return nil
}

// ValidGranularityOptions возвращает все допустимые значения шага по возрастанию
func ValidGranularityOptions() []int {
	options := make([]int, 0, 6)
	for m := domain.MinGranularityMinutes; m <= domain.MaxGranularityMinutes; m++ {
		if IsValidGranularity(m) {
			options = append(options, m)
		}
	}
	return options
}
