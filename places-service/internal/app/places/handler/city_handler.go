package handler

import (
	"net/http"

	"foodplaces/places-service/internal/app/places/entity"

	"github.com/gin-gonic/gin"
)

type CityHandler struct {
	cityService CityServiceInterface
}

func NewCityHandler(cityService CityServiceInterface) *CityHandler {
	return &CityHandler{cityService: cityService}
}

// ListCities отдает страницу городов; пустая страница - 404 с тем же конвертом
func (h *CityHandler) ListCities(c *gin.Context) {
	result, err := h.cityService.ListCities(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if len(result.Cities) == 0 {
		status = http.StatusNotFound
	}
	c.JSON(status, result)
}

func (h *CityHandler) GetCity(c *gin.Context) {
	result, err := h.cityService.GetCity(c.Request.Context(), c.Param("city_id"), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CityHandler) CreateCity(c *gin.Context) {
	var req entity.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	city, err := h.cityService.CreateCity(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.CreatedResponse{
		Message: "City created successfully",
		CityID:  city.ID.Hex(),
	})
}

func (h *CityHandler) UpdateCity(c *gin.Context) {
	var req entity.UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	result, err := h.cityService.UpdateCity(c.Request.Context(), c.Param("city_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CityHandler) DeleteCity(c *gin.Context) {
	if err := h.cityService.DeleteCity(c.Request.Context(), c.Param("city_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "City deleted successfully"})
}
