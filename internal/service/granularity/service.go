package granularity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	settingsRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BarberSlots/internal/scheduling"
	"github.com/m04kA/SMC-BarberSlots/internal/service/granularity/models"
	"github.com/m04kA/SMC-BarberSlots/pkg/metrics"
)

// Service определяет шаг сетки слотов для барбершопа
//
// Порядок разрешения:
// 1. Кэш (TTL 5 минут)
// 2. Переопределение в настройках барбершопа (если значение допустимо)
// 3. Глобальное значение из конфигурации (SLOT_GRANULARITY_MINUTES)
// 4. 15 минут
type Service struct {
	settingsRepo SettingsRepository
	cache        Cache
	fallback     int
	metrics      *metrics.Metrics
	logger       Logger

	loads singleflight.Group
}

// NewService создает новый экземпляр сервиса гранулярности
// metrics может быть nil
func NewService(
	settingsRepo SettingsRepository,
	cache Cache,
	fallbackMinutes int,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	if !scheduling.IsValidGranularity(fallbackMinutes) {
		logger.Warn("NewService: invalid fallback granularity %d, using %d minutes",
			fallbackMinutes, domain.DefaultGranularityMinutes)
		fallbackMinutes = domain.DefaultGranularityMinutes
	}

	return &Service{
		settingsRepo: settingsRepo,
		cache:        cache,
		fallback:     fallbackMinutes,
		metrics:      m,
		logger:       logger,
	}
}

// loadResult результат чтения из хранилища
// cacheable == false, если хранилище недоступно и вернулся fallback
type loadResult struct {
	minutes   int
	cacheable bool
}

// GetGranularityMinutes возвращает действующий шаг сетки.
// Никогда не возвращает ошибку: при сбое хранилища используется глобальное значение.
// Одновременные промахи по одному барбершопу схлопываются в один запрос к базе.
func (s *Service) GetGranularityMinutes(ctx context.Context, barbershopID uuid.UUID) int {
	if minutes, ok := s.cache.Get(ctx, barbershopID); ok && scheduling.IsValidGranularity(minutes) {
		s.observeHit()
		return minutes
	}
	s.observeMiss()

	v, _, _ := s.loads.Do(barbershopID.String(), func() (interface{}, error) {
		res := s.load(ctx, barbershopID)
		if res.cacheable {
			if err := s.cache.Set(ctx, barbershopID, res.minutes); err != nil {
				s.logger.Warn("GetGranularityMinutes: failed to cache granularity for barbershop=%s: %v", barbershopID, err)
			}
		}
		return res, nil
	})

	return v.(loadResult).minutes
}

func (s *Service) load(ctx context.Context, barbershopID uuid.UUID) loadResult {
	settings, err := s.settingsRepo.GetByBarbershopID(ctx, barbershopID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return loadResult{minutes: s.fallback, cacheable: true}
		}
		s.logger.Error("GetGranularityMinutes: repository error for barbershop=%s, using fallback %d: %v",
			barbershopID, s.fallback, err)
		return loadResult{minutes: s.fallback, cacheable: false}
	}

	if !settings.HasGranularityOverride() {
		return loadResult{minutes: s.fallback, cacheable: true}
	}

	minutes := *settings.SlotGranularityMinutes
	if !scheduling.IsValidGranularity(minutes) {
		s.logger.Warn("GetGranularityMinutes: barbershop=%s has invalid granularity %d, using fallback %d",
			barbershopID, minutes, s.fallback)
		return loadResult{minutes: s.fallback, cacheable: true}
	}

	return loadResult{minutes: minutes, cacheable: true}
}

// GetGranularity возвращает действующее значение вместе с источником.
// Читает хранилище напрямую, минуя кэш.
func (s *Service) GetGranularity(ctx context.Context, barbershopID uuid.UUID) (*models.GranularityResponse, error) {
	s.logger.Info("GetGranularity: fetching granularity for barbershop=%s", barbershopID)

	settings, err := s.settingsRepo.GetByBarbershopID(ctx, barbershopID)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("GetGranularity: repository error for barbershop=%s: %v", barbershopID, err)
		return nil, fmt.Errorf("%w: GetGranularity - repository error: %w", ErrInternal, err)
	}

	return s.toResponse(barbershopID, settings), nil
}

// SetGranularityMinutes сохраняет переопределение барбершопа (nil - сброс) и инвалидирует кэш
func (s *Service) SetGranularityMinutes(ctx context.Context, barbershopID uuid.UUID, minutes *int) (*models.GranularityResponse, error) {
	s.logger.Info("SetGranularityMinutes: barbershop=%s, minutes=%v", barbershopID, minutes)

	if minutes != nil {
		if err := scheduling.ValidateGranularity(*minutes); err != nil {
			s.logger.Warn("SetGranularityMinutes: validation failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidGranularity, err)
		}
	}

	settings, err := s.settingsRepo.UpsertGranularity(ctx, barbershopID, minutes)
	if err != nil {
		s.logger.Error("SetGranularityMinutes: repository error for barbershop=%s: %v", barbershopID, err)
		return nil, fmt.Errorf("%w: SetGranularityMinutes - repository error: %w", ErrInternal, err)
	}

	if err := s.Invalidate(ctx, barbershopID); err != nil {
		// значение уже сохранено, старое уйдёт из кэша по TTL
		s.logger.Error("SetGranularityMinutes: %v", err)
	}

	s.logger.Info("SetGranularityMinutes: successfully updated barbershop=%s", barbershopID)
	return s.toResponse(barbershopID, settings), nil
}

// Invalidate удаляет закэшированное значение барбершопа
func (s *Service) Invalidate(ctx context.Context, barbershopID uuid.UUID) error {
	s.loads.Forget(barbershopID.String())
	if err := s.cache.Delete(ctx, barbershopID); err != nil {
		return fmt.Errorf("%w: Invalidate barbershop=%s: %w", ErrInternal, barbershopID, err)
	}
	return nil
}

// InvalidateAll очищает кэш целиком (например, после смены глобального значения)
func (s *Service) InvalidateAll(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("%w: InvalidateAll: %w", ErrInternal, err)
	}
	s.logger.Info("InvalidateAll: granularity cache cleared")
	return nil
}

// Options возвращает допустимые значения гранулярности
func (s *Service) Options() *models.OptionsResponse {
	return &models.OptionsResponse{
		Options:        scheduling.ValidGranularityOptions(),
		DefaultMinutes: s.fallback,
	}
}

// FallbackMinutes глобальное значение, используемое без переопределения
func (s *Service) FallbackMinutes() int {
	return s.fallback
}

func (s *Service) toResponse(barbershopID uuid.UUID, settings *domain.BarbershopSettings) *models.GranularityResponse {
	resp := &models.GranularityResponse{
		BarbershopID:       barbershopID,
		GranularityMinutes: s.fallback,
		Source:             models.SourceDefault,
	}

	if settings != nil && settings.HasGranularityOverride() {
		override := *settings.SlotGranularityMinutes
		resp.OverrideMinutes = &override
		if scheduling.IsValidGranularity(override) {
			resp.GranularityMinutes = override
			resp.Source = models.SourceBarbershop
		}
	}

	return resp
}

func (s *Service) observeHit() {
	if s.metrics != nil {
		s.metrics.GranularityCacheHits.Inc()
	}
}

func (s *Service) observeMiss() {
	if s.metrics != nil {
		s.metrics.GranularityCacheMisses.Inc()
	}
}
