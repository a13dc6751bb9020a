package httphandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// GetAllRestaurants lists every restaurant.
func (h *Handler) GetAllRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurants.ListAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "Failed to retrieve restaurants", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Restaurants retrieved successfully", toRestaurantResponses(restaurants))
}

// AddRestaurant creates an enriched restaurant from the request body.
func (h *Handler) AddRestaurant(w http.ResponseWriter, r *http.Request) {
	var req RestaurantRequest
	if !h.decodeBody(w, r, "Failed to create restaurant", &req) {
		return
	}

	created, err := h.restaurants.Create(r.Context(), req.toInput())
	if err != nil {
		h.writeServiceError(w, r, "Failed to create restaurant", err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Restaurant created successfully", toRestaurantResponse(*created))
}

// GetRestaurantsWithMissingData lists restaurants with unknown enrichment fields.
func (h *Handler) GetRestaurantsWithMissingData(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurants.ListWithMissingData(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "Failed to retrieve restaurants with missing data", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Restaurants with missing data retrieved successfully", toRestaurantResponses(restaurants))
}

// UpdateRestaurant applies a partial update to the restaurant at {id}.
func (h *Handler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req RestaurantPatchRequest
	if !h.decodeBody(w, r, "Failed to update restaurant", &req) {
		return
	}

	updated, err := h.restaurants.Update(r.Context(), r.PathValue("id"), req.toPatch())
	if err != nil {
		h.writeServiceError(w, r, "Failed to update restaurant", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Restaurant updated successfully", toRestaurantResponse(*updated))
}

// DeleteRestaurant removes the restaurant at {id}.
func (h *Handler) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.restaurants.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, "Failed to delete restaurant", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Restaurant deleted successfully", toRestaurantResponse(*deleted))
}

// decodeBody reads a size-limited JSON body into dst. An empty body leaves
// dst at its zero value. It writes a 400 and returns false when the body is
// not valid JSON.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, message string, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, message, "invalid request body")
		return false
	}
	return true
}
