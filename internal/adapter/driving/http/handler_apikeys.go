package httphandler

import (
	"net/http"
)

// CreateAPIKey issues a key for the role in ?role=.
func (h *Handler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.apiKeys.IssueKey(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		h.writeServiceError(w, r, "Something went wrong while creating an API Key", err)
		return
	}

	if h.metrics != nil {
		h.metrics.APIKeysIssued.WithLabelValues(string(key.Role)).Inc()
	}

	writeJSON(w, http.StatusCreated, envelope{Status: true, APIKey: toAPIKeyResponse(*key)})
}

// ApproveAdmin approves ?adminKey= on behalf of the super admin in
// ?superAdminKey=.
func (h *Handler) ApproveAdmin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	key, err := h.apiKeys.ApproveAdmin(r.Context(), q.Get("superAdminKey"), q.Get("adminKey"))
	if err != nil {
		h.writeServiceError(w, r, "Failed to approve admin", err)
		return
	}

	if h.metrics != nil {
		h.metrics.AdminApprovals.Inc()
	}

	writeSuccess(w, http.StatusOK, "Admin approved successfully", ApprovalResponse{
		AdminKey:   key.Key,
		IsApproved: key.IsAdminApproved,
	})
}

// IsAdminApproved reports whether ?adminKey= has been approved.
func (h *Handler) IsAdminApproved(w http.ResponseWriter, r *http.Request) {
	key, err := h.apiKeys.AdminApprovalStatus(r.Context(), r.URL.Query().Get("adminKey"))
	if err != nil {
		h.writeServiceError(w, r, "Failed to check admin approval", err)
		return
	}

	message := "Admin not approved yet"
	if key.IsAdminApproved {
		message = "Admin approved"
	}

	writeSuccess(w, http.StatusOK, message, ApprovalResponse{
		AdminKey:   key.Key,
		IsApproved: key.IsAdminApproved,
	})
}
