package get_granularity_options

import "github.com/m04kA/SMC-BarberSlots/internal/service/granularity/models"

type GranularityService interface {
	Options() *models.OptionsResponse
}
