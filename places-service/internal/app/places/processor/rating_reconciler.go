package processor

import (
	"context"
	"errors"
	"fmt"

	"foodplaces/pkg/logger"
	"foodplaces/pkg/metrics"
	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/infrastructure"
	"foodplaces/places-service/internal/app/places/rating"
	"foodplaces/places-service/internal/app/places/repository"

	"github.com/robfig/cron/v3"
)

// RatingReconciler по расписанию сверяет сохранённые агрегаты рейтинга
// с отзывами мест. Расхождение исправляется пересчетом в базе, а не записью
// значения из снимка: отзыв, добавленный после снимка, не теряется
type RatingReconciler struct {
	cron      *cron.Cron
	placeRepo repository.PlaceRepository
	cache     infrastructure.CityListCache
}

func NewRatingReconciler(placeRepo repository.PlaceRepository, cache infrastructure.CityListCache) *RatingReconciler {
	zl := logger.Logger()
	cronLogger := cron.PrintfLogger(&zl)

	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	return &RatingReconciler{
		cron:      c,
		placeRepo: placeRepo,
		cache:     cache,
	}
}

// Start регистрирует задачу сверки и запускает планировщик.
// Первая сверка выполняется сразу, её ошибка не мешает запуску
func (r *RatingReconciler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting rating reconciler")

	_, err := r.cron.AddFunc(schedule, func() {
		r.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}

	r.cron.Start()
	r.run(ctx)

	return nil
}

func (r *RatingReconciler) Stop() {
	logger.Info().Msg("stopping rating reconciler")
	<-r.cron.Stop().Done()
}

func (r *RatingReconciler) Entries() []cron.Entry {
	return r.cron.Entries()
}

func (r *RatingReconciler) run(ctx context.Context) {
	corrected, err := r.Reconcile(ctx)
	if err != nil {
		logger.Error().Err(err).Int("corrected", corrected).Msg("rating reconcile finished with errors")
		return
	}
	logger.Info().Int("corrected", corrected).Msg("rating reconcile completed")
}

// Reconcile пересчитывает агрегаты всех мест и возвращает число исправленных.
// Ошибка записи одного места не останавливает обход остальных
func (r *RatingReconciler) Reconcile(ctx context.Context) (int, error) {
	snapshots, err := r.placeRepo.RatingSnapshots(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load rating snapshots: %w", err)
	}

	var (
		corrected int
		errs      []error
	)
	for _, s := range snapshots {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		stored := entity.RatingSummary{AverageRating: s.AverageRating, ReviewCount: s.ReviewCount}
		actual := rating.FromValues(s.Ratings)
		if !rating.IsStale(stored, actual) {
			continue
		}

		fresh, err := r.placeRepo.RecomputeRatings(ctx, s.CityID, s.PlaceID)
		if errors.Is(err, repository.ErrPlaceNotFound) || errors.Is(err, repository.ErrCityNotFound) {
			// удалено после снимка
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("place %s: %w", s.PlaceID.Hex(), err))
			continue
		}

		corrected++
		metrics.ReconcileCorrections.Inc()
		metrics.RatingRecomputations.WithLabelValues("reconcile").Inc()
		logger.Warn().
			Str("place_id", s.PlaceID.Hex()).
			Float64("stored_average", stored.AverageRating).
			Float64("actual_average", fresh.AverageRating).
			Int("stored_count", stored.ReviewCount).
			Int("actual_count", fresh.ReviewCount).
			Msg("stale place rating corrected")
	}

	if corrected > 0 && r.cache != nil {
		if err := r.cache.Invalidate(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to invalidate cities cache")
		}
	}

	return corrected, errors.Join(errs...)
}
