package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"foodplaces/pkg/logger"
	"foodplaces/pkg/metrics"
	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/infrastructure"
	"foodplaces/places-service/internal/app/places/query"
	"foodplaces/places-service/internal/app/places/repository"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TriggerCreate    = "create"
	TriggerUpdate    = "update"
	TriggerDelete    = "delete"
	TriggerManual    = "manual"
	TriggerReconcile = "reconcile"
)

// ReviewService обрабатывает бизнес-логику отзывов и поддерживает агрегат рейтинга места.
//
// Изменение отзыва и пересчет агрегата - две отдельные атомарные операции над
// документом города. Пересчет читает отзывы и пишет агрегат одним update-pipeline,
// поэтому параллельные изменения не затирают друг друга. Между двумя операциями
// читатель может увидеть устаревшие average_rating и review_count
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	placeRepo  repository.PlaceRepository
	validator  *validation.Validator
	notifier   notifier
	now        func() time.Time
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	placeRepo repository.PlaceRepository,
	validator *validation.Validator,
	cache infrastructure.CityListCache,
	publisher infrastructure.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		placeRepo:  placeRepo,
		validator:  validator,
		notifier:   notifier{cache: cache, publisher: publisher},
		now:        time.Now,
	}
}

// ListReviews возвращает страницу отзывов места
func (s *ReviewService) ListReviews(ctx context.Context, rawCityID, rawPlaceID string, values url.Values) (*entity.ReviewListResult, error) {
	cityID, placeID, err := parsePlacePath(rawCityID, rawPlaceID)
	if err != nil {
		return nil, err
	}

	q, err := query.ReviewList(cityID, placeID, values)
	if err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.List(ctx, q)
	if err != nil {
		return nil, fromRepository(err, "list reviews")
	}

	if total == 0 {
		if err := s.placeRepo.Exists(ctx, cityID, placeID); err != nil {
			return nil, fromRepository(err, "list reviews")
		}
	}

	return &entity.ReviewListResult{
		Reviews:        reviews,
		Pagination:     util.ComputePagination(total, q.Page),
		FiltersApplied: q.Applied,
	}, nil
}

func (s *ReviewService) GetReview(ctx context.Context, rawCityID, rawPlaceID, rawReviewID string) (*entity.ReviewDetail, error) {
	cityID, placeID, reviewID, err := parseReviewPath(rawCityID, rawPlaceID, rawReviewID)
	if err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(ctx, cityID, placeID, reviewID)
	if err != nil {
		return nil, fromRepository(err, "get review")
	}

	return &entity.ReviewDetail{
		Data: *review,
		Links: entity.Links{
			City:  cityLink(cityID.Hex()),
			Place: placeLink(cityID.Hex(), placeID.Hex()),
			Self:  reviewLink(cityID.Hex(), placeID.Hex(), reviewID.Hex()),
		},
	}, nil
}

// CreateReview добавляет отзыв и пересчитывает рейтинг места
func (s *ReviewService) CreateReview(ctx context.Context, rawCityID, rawPlaceID string, req *entity.CreateReviewRequest) (*entity.ReviewCreatedResponse, error) {
	cityID, placeID, err := parsePlacePath(rawCityID, rawPlaceID)
	if err != nil {
		return nil, err
	}

	value, err := s.validator.CreateReview(req)
	if err != nil {
		return nil, err
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = entity.DefaultReviewLanguage
	}

	review := &entity.Review{
		ID:         util.NewIdentifier(),
		ReviewID:   util.NewReviewCode(),
		Rating:     value,
		AuthorName: strings.TrimSpace(req.AuthorName),
		Content:    strings.TrimSpace(req.Content),
		DatePosted: s.timestamp(),
		Language:   language,
		VisitDate:  req.VisitDate,
		Photos:     req.Photos,
		Tags:       req.Tags,
	}

	if err := s.reviewRepo.Add(ctx, cityID, placeID, review); err != nil {
		return nil, fromRepository(err, "create review")
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(value)

	summary, err := s.recompute(ctx, cityID, placeID, TriggerCreate)
	if err != nil {
		return nil, err
	}

	s.notifier.changed(ctx, &entity.PlaceEvent{
		EventType: entity.EventReviewCreated,
		CityID:    cityID.Hex(),
		PlaceID:   placeID.Hex(),
		ReviewID:  review.ID.Hex(),
		Rating:    value,
		Ratings:   &summary,
	})

	return &entity.ReviewCreatedResponse{
		Message: "Review added successfully",
		Review:  entity.ReviewRef{ID: review.ID.Hex(), ReviewID: review.ReviewID},
		Ratings: summary,
	}, nil
}

// UpdateReview меняет переданные поля отзыва, обновляет date_posted и пересчитывает рейтинг
func (s *ReviewService) UpdateReview(ctx context.Context, rawCityID, rawPlaceID, rawReviewID string, req *entity.UpdateReviewRequest) (*entity.UpdatedResponse, error) {
	cityID, placeID, reviewID, err := parseReviewPath(rawCityID, rawPlaceID, rawReviewID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.UpdateReview(req); err != nil {
		return nil, err
	}

	fs := newFieldSet()
	var newRating float64
	if req.Rating.IsSet() {
		newRating, _ = req.Rating.Float64()
		fs.add("rating", newRating)
	}
	if req.AuthorName != nil {
		fs.add("author_name", strings.TrimSpace(*req.AuthorName))
	}
	if req.Content != nil {
		fs.add("content", strings.TrimSpace(*req.Content))
	}
	if req.Language != nil {
		fs.add("language", strings.TrimSpace(*req.Language))
	}
	if req.VisitDate != nil {
		fs.add("visit_date", *req.VisitDate)
	}
	if req.Photos != nil {
		fs.add("photos", *req.Photos)
	}
	if req.Tags != nil {
		fs.add("tags", *req.Tags)
	}

	updated := fs.fields
	fs.add("date_posted", s.timestamp())

	if err := s.reviewRepo.Update(ctx, cityID, placeID, reviewID, fs.set); err != nil {
		return nil, fromRepository(err, "update review")
	}

	summary, err := s.recompute(ctx, cityID, placeID, TriggerUpdate)
	if err != nil {
		return nil, err
	}

	s.notifier.changed(ctx, &entity.PlaceEvent{
		EventType: entity.EventReviewUpdated,
		CityID:    cityID.Hex(),
		PlaceID:   placeID.Hex(),
		ReviewID:  reviewID.Hex(),
		Rating:    newRating,
		Ratings:   &summary,
	})

	return &entity.UpdatedResponse{
		Message:       "Review updated successfully",
		UpdatedFields: updated,
		Ratings:       &summary,
	}, nil
}

// DeleteReview удаляет отзыв и сразу пересчитывает рейтинг места
func (s *ReviewService) DeleteReview(ctx context.Context, rawCityID, rawPlaceID, rawReviewID string) (*entity.RatingResponse, error) {
	cityID, placeID, reviewID, err := parseReviewPath(rawCityID, rawPlaceID, rawReviewID)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Delete(ctx, cityID, placeID, reviewID); err != nil {
		return nil, fromRepository(err, "delete review")
	}

	summary, err := s.recompute(ctx, cityID, placeID, TriggerDelete)
	if err != nil {
		return nil, err
	}

	s.notifier.changed(ctx, &entity.PlaceEvent{
		EventType: entity.EventReviewDeleted,
		CityID:    cityID.Hex(),
		PlaceID:   placeID.Hex(),
		ReviewID:  reviewID.Hex(),
		Ratings:   &summary,
	})

	return &entity.RatingResponse{
		Message: "Review deleted successfully",
		Ratings: summary,
	}, nil
}

// RecomputeRating пересчитывает агрегат места по запросу
func (s *ReviewService) RecomputeRating(ctx context.Context, rawCityID, rawPlaceID string) (*entity.RatingResponse, error) {
	cityID, placeID, err := parsePlacePath(rawCityID, rawPlaceID)
	if err != nil {
		return nil, err
	}

	summary, err := s.recompute(ctx, cityID, placeID, TriggerManual)
	if err != nil {
		return nil, err
	}

	s.notifier.changed(ctx, nil)

	message := "Place rating updated successfully"
	if summary.ReviewCount == 0 {
		message = "Place has no reviews, rating reset to 0"
	}
	return &entity.RatingResponse{Message: message, Ratings: summary}, nil
}

// recompute пересчитывает агрегат места на стороне базы
func (s *ReviewService) recompute(ctx context.Context, cityID, placeID primitive.ObjectID, trigger string) (entity.RatingSummary, error) {
	summary, err := s.placeRepo.RecomputeRatings(ctx, cityID, placeID)
	if err != nil {
		return entity.RatingSummary{}, fromRepository(err, "recompute rating")
	}

	metrics.RatingRecomputations.WithLabelValues(trigger).Inc()
	logger.Debug().
		Str("place_id", placeID.Hex()).
		Float64("average_rating", summary.AverageRating).
		Int("review_count", summary.ReviewCount).
		Str("trigger", trigger).
		Msg("place rating recomputed")

	return summary, nil
}

func (s *ReviewService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
