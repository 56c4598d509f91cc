//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"foodplaces/places-service/internal/app/places/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseURL - адрес запущенного places-service
func baseURL() string {
	if url := os.Getenv("E2E_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:5000"
}

type client struct {
	t     *testing.T
	http  *http.Client
	token string
}

func (c *client) call(method, path string, body interface{}, out interface{}) int {
	var buf bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		buf.Write(data)
	}

	req, err := http.NewRequest(method, baseURL()+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("x-access-token", c.token)
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode
}

// TestFullPlacesFlow проходит путь от регистрации до удаления города
func TestFullPlacesFlow(t *testing.T) {
	c := &client{t: t, http: &http.Client{Timeout: 10 * time.Second}}
	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("e2e-admin-%d", suffix)

	// ==================== Auth ====================
	status := c.call(http.MethodPost, "/api/register", entity.RegisterRequest{
		Username: username,
		Password: "securepassword123",
		Email:    username + "@example.com",
		Name:     "E2E Admin",
		Admin:    true,
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var token entity.TokenResponse
	status = c.call(http.MethodPost, "/api/login", entity.LoginRequest{Username: username, Password: "securepassword123"}, &token)
	require.Equal(t, http.StatusOK, status)
	c.token = token.Token

	// ==================== City & place ====================
	var city entity.CreatedResponse
	status = c.call(http.MethodPost, "/api/cities", entity.CreateCityRequest{
		CityID:   fmt.Sprintf("e2e-%d", suffix),
		CityName: "E2E City",
	}, &city)
	require.Equal(t, http.StatusCreated, status)

	var place entity.CreatedResponse
	status = c.call(http.MethodPost, "/api/cities/"+city.CityID+"/places", map[string]interface{}{
		"place_id": "e2e-place",
		"info":     map[string]interface{}{"name": "E2E Cafe", "type": []string{"cafe"}},
		"location": map[string]interface{}{
			"address":     map[string]string{"street": "Main St 1", "city": "E2E City", "postcode": "00001"},
			"coordinates": map[string]float64{"latitude": 10, "longitude": 20},
		},
	}, &place)
	require.Equal(t, http.StatusCreated, status)

	placePath := "/api/cities/" + city.CityID + "/places/" + place.PlaceID

	// ==================== Reviews ====================
	var created entity.ReviewCreatedResponse
	for _, rating := range []int{5, 2} {
		status = c.call(http.MethodPost, placePath+"/reviews", map[string]interface{}{
			"rating": rating, "author_name": "E2E", "content": "Visited during e2e run",
		}, &created)
		require.Equal(t, http.StatusCreated, status)
	}
	assert.Equal(t, entity.RatingSummary{AverageRating: 3.5, ReviewCount: 2}, created.Ratings)

	var rated entity.RatingResponse
	status = c.call(http.MethodPost, placePath+"/update-rating", nil, &rated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.Ratings, rated.Ratings)

	var deleted entity.RatingResponse
	status = c.call(http.MethodDelete, placePath+"/reviews/"+created.Review.ID, nil, &deleted)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.RatingSummary{AverageRating: 5, ReviewCount: 1}, deleted.Ratings)

	status = c.call(http.MethodDelete, "/api/cities/"+city.CityID, nil, nil)
	require.Equal(t, http.StatusOK, status)

	// ==================== Logout ====================
	status = c.call(http.MethodGet, "/api/logout", nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = c.call(http.MethodPost, "/api/cities", entity.CreateCityRequest{CityID: "x", CityName: "X"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
