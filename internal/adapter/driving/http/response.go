package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
)

// envelope is the body of every API response.
type envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	APIKey  any    `json:"apiKey,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 envelope is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":false,"message":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeSuccess writes a status:true envelope carrying data.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Status: true, Message: message, Data: data})
}

// writeError writes a status:false envelope.
func writeError(w http.ResponseWriter, status int, message, errText string) {
	writeJSON(w, status, envelope{Status: false, Message: message, Error: errText})
}

// RestaurantResponse is the JSON representation of a restaurant.
type RestaurantResponse struct {
	ID             string  `json:"id"`
	ArabicName     string  `json:"arabic_name"`
	EnglishName    string  `json:"english_name"`
	Phone          string  `json:"phone"`
	Type           string  `json:"type"`
	Address        string  `json:"address"`
	PlaceID        string  `json:"place_id"`
	GoogleRating   float64 `json:"google_rating"`
	PricePerPerson string  `json:"price_per_person"`
	Directions     string  `json:"directions"`
	GoogleReviews  string  `json:"google_reviews"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// RestaurantRequest is the JSON body for addRestaurant. Enrichment fields are
// accepted but replaced by the lookup result.
type RestaurantRequest struct {
	ArabicName     string   `json:"arabic_name"`
	EnglishName    string   `json:"english_name"`
	Phone          *string  `json:"phone"`
	Type           *string  `json:"type"`
	Address        *string  `json:"address"`
	PlaceID        *string  `json:"place_id"`
	GoogleRating   *float64 `json:"google_rating"`
	PricePerPerson *string  `json:"price_per_person"`
	Directions     *string  `json:"directions"`
	GoogleReviews  *string  `json:"google_reviews"`
}

// RestaurantPatchRequest is the JSON body for updateRestaurant. Absent
// fields are left unchanged.
type RestaurantPatchRequest struct {
	ArabicName     *string  `json:"arabic_name"`
	EnglishName    *string  `json:"english_name"`
	Phone          *string  `json:"phone"`
	Type           *string  `json:"type"`
	Address        *string  `json:"address"`
	PlaceID        *string  `json:"place_id"`
	GoogleRating   *float64 `json:"google_rating"`
	PricePerPerson *string  `json:"price_per_person"`
	Directions     *string  `json:"directions"`
	GoogleReviews  *string  `json:"google_reviews"`
}

// APIKeyResponse is the JSON representation of an issued key.
type APIKeyResponse struct {
	Key             string `json:"key"`
	Role            string `json:"role"`
	CreatedAt       string `json:"created_at"`
	IsAdminApproved bool   `json:"is_admin_approved"`
	IsSuperAdmin    bool   `json:"is_super_admin"`
}

// ApprovalResponse reports an admin key's approval state.
type ApprovalResponse struct {
	AdminKey   string `json:"adminKey"`
	IsApproved bool   `json:"isApproved"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func (req RestaurantRequest) toInput() model.RestaurantInput {
	return model.RestaurantInput{
		ArabicName:     req.ArabicName,
		EnglishName:    req.EnglishName,
		Phone:          req.Phone,
		Type:           req.Type,
		Address:        req.Address,
		PlaceID:        req.PlaceID,
		GoogleRating:   req.GoogleRating,
		PricePerPerson: req.PricePerPerson,
		Directions:     req.Directions,
		GoogleReviews:  req.GoogleReviews,
	}
}

func (req RestaurantPatchRequest) toPatch() model.RestaurantPatch {
	return model.RestaurantPatch{
		ArabicName:     req.ArabicName,
		EnglishName:    req.EnglishName,
		Phone:          req.Phone,
		Type:           req.Type,
		Address:        req.Address,
		PlaceID:        req.PlaceID,
		GoogleRating:   req.GoogleRating,
		PricePerPerson: req.PricePerPerson,
		Directions:     req.Directions,
		GoogleReviews:  req.GoogleReviews,
	}
}

// toRestaurantResponse converts a domain Restaurant to its JSON representation.
func toRestaurantResponse(r model.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:             r.ID,
		ArabicName:     r.ArabicName,
		EnglishName:    r.EnglishName,
		Phone:          r.Phone,
		Type:           r.Type,
		Address:        r.Address,
		PlaceID:        r.PlaceID,
		GoogleRating:   r.GoogleRating,
		PricePerPerson: r.PricePerPerson,
		Directions:     r.Directions,
		GoogleReviews:  r.GoogleReviews,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toRestaurantResponses(rs []model.Restaurant) []RestaurantResponse {
	resp := make([]RestaurantResponse, 0, len(rs))
	for _, r := range rs {
		resp = append(resp, toRestaurantResponse(r))
	}
	return resp
}

// toAPIKeyResponse converts a domain APIKey to its JSON representation.
func toAPIKeyResponse(k model.APIKey) APIKeyResponse {
	return APIKeyResponse{
		Key:             k.Key,
		Role:            string(k.Role),
		CreatedAt:       k.CreatedAt.UTC().Format(time.RFC3339),
		IsAdminApproved: k.IsAdminApproved,
		IsSuperAdmin:    k.IsSuperAdmin,
	}
}
