package httphandler

import (
	"bytes"
	_ "embed"
	"net/http"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// apiVersion is reported by the welcome document.
const apiVersion = "1.0.0"

//go:embed docs/api.md
var apiGuide []byte

const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>TasteOfThebes API</title>
</head>
<body>
`

// renderedGuide renders apiGuide once and caches the page body.
var renderedGuide = sync.OnceValues(func() ([]byte, error) {
	return renderMarkdown(apiGuide)
})

// renderMarkdown converts markdown to sanitized HTML.
func renderMarkdown(src []byte) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, err
	}

	return bluemonday.UGCPolicy().SanitizeBytes(buf.Bytes()), nil
}

// Docs renders the embedded API guide as an HTML page.
func (h *Handler) Docs(w http.ResponseWriter, r *http.Request) {
	body, err := renderedGuide()
	if err != nil {
		h.logger.Error("failed to render api guide", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(docsPage))
	_, _ = w.Write(body)
	_, _ = w.Write([]byte("</body>\n</html>\n"))
}

// WelcomeResponse is the API discovery document served at /.
type WelcomeResponse struct {
	Message        string            `json:"message"`
	Version        string            `json:"version"`
	Endpoints      WelcomeEndpoints  `json:"endpoints"`
	Authentication map[string]string `json:"authentication"`
	Documentation  WelcomeDocs       `json:"documentation"`
}

// WelcomeEndpoints groups endpoint paths by resource.
type WelcomeEndpoints struct {
	Restaurants map[string]string `json:"restaurants"`
	APIKeys     map[string]string `json:"api_keys"`
}

// WelcomeDocs carries the base URL and status code legend.
type WelcomeDocs struct {
	BaseURL     string            `json:"base_url"`
	Guide       string            `json:"guide"`
	StatusCodes map[string]string `json:"status_codes"`
}

// Welcome returns the API discovery document.
func (h *Handler) Welcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, WelcomeResponse{
		Message: "Welcome to TasteOfThebes API!",
		Version: apiVersion,
		Endpoints: WelcomeEndpoints{
			Restaurants: map[string]string{
				"get_all_restaurants":               "/api/v1/getAllRestaurants",
				"add_restaurant":                    "/api/v1/addRestaurant",
				"get_restaurants_with_missing_data": "/api/v1/getRestaurantsWithMissingData",
				"update_restaurant":                 "/api/v1/updateRestaurant/{id}",
				"delete_restaurant":                 "/api/v1/deleteRestaurant/{id}",
			},
			APIKeys: map[string]string{
				"create_api_key":       "/api/createAPIKey",
				"approve_admin":        "/api/approveAdmin",
				"check_admin_approval": "/api/isAdminApproved",
			},
		},
		Authentication: map[string]string{
			"api_key":      "All /api/v1 endpoints require an API key as a query parameter (?key=your_api_key)",
			"admin_routes": "Requires admin role and approval",
		},
		Documentation: WelcomeDocs{
			BaseURL: "/api/v1",
			Guide:   "/docs",
			StatusCodes: map[string]string{
				"200": "Success",
				"201": "Resource Created",
				"400": "Bad Request",
				"401": "Unauthorized",
				"403": "Forbidden",
				"404": "Resource Not Found",
				"500": "Internal Server Error",
			},
		},
	})
}
