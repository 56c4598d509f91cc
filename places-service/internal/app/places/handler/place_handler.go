package handler

import (
	"net/http"

	"foodplaces/places-service/internal/app/places/entity"

	"github.com/gin-gonic/gin"
)

type PlaceHandler struct {
	placeService PlaceServiceInterface
}

func NewPlaceHandler(placeService PlaceServiceInterface) *PlaceHandler {
	return &PlaceHandler{placeService: placeService}
}

func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	result, err := h.placeService.ListPlaces(c.Request.Context(), c.Param("city_id"), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if len(result.Places) == 0 {
		status = http.StatusNotFound
	}
	c.JSON(status, result)
}

func (h *PlaceHandler) GetPlace(c *gin.Context) {
	result, err := h.placeService.GetPlace(c.Request.Context(), c.Param("city_id"), c.Param("place_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var req entity.PlaceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	place, err := h.placeService.CreatePlace(c.Request.Context(), c.Param("city_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.CreatedResponse{
		Message: "Place added successfully",
		PlaceID: place.ID.Hex(),
	})
}

func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	var req entity.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	result, err := h.placeService.UpdatePlace(c.Request.Context(), c.Param("city_id"), c.Param("place_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PlaceHandler) UpdatePlaceStatus(c *gin.Context) {
	var req entity.UpdatePlaceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	result, err := h.placeService.UpdatePlaceStatus(c.Request.Context(), c.Param("city_id"), c.Param("place_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	if err := h.placeService.DeletePlace(c.Request.Context(), c.Param("city_id"), c.Param("place_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Place deleted successfully"})
}
