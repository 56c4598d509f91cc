package handler

import (
	"net/http"

	"foodplaces/places-service/internal/app/places/entity"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService ReviewServiceInterface
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	result, err := h.reviewService.ListReviews(c.Request.Context(), c.Param("city_id"), c.Param("place_id"), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if len(result.Reviews) == 0 {
		status = http.StatusNotFound
	}
	c.JSON(status, result)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	result, err := h.reviewService.GetReview(c.Request.Context(), c.Param("city_id"), c.Param("place_id"), c.Param("review_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	result, err := h.reviewService.CreateReview(c.Request.Context(), c.Param("city_id"), c.Param("place_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req entity.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	result, err := h.reviewService.UpdateReview(c.Request.Context(), c.Param("city_id"), c.Param("place_id"), c.Param("review_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	result, err := h.reviewService.DeleteReview(c.Request.Context(), c.Param("city_id"), c.Param("place_id"), c.Param("review_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecomputeRating - ручной пересчёт агрегата рейтинга места
func (h *ReviewHandler) RecomputeRating(c *gin.Context) {
	result, err := h.reviewService.RecomputeRating(c.Request.Context(), c.Param("city_id"), c.Param("place_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
