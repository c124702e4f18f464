package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/selliott512/image-utils/internal/projector"
	"github.com/selliott512/image-utils/pkg/raster"
)

// maxBodyBytes limits the uploaded sphere image size.
const maxBodyBytes = 64 << 20

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    *int      `json:"uptime,omitempty"`
	Version   *string   `json:"version,omitempty"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error     string                  `json:"error"`
	Message   string                  `json:"message"`
	RequestId *string                 `json:"request_id,omitempty"`
	Details   *map[string]interface{} `json:"details,omitempty"`
}

// Server implements the HTTP projection API.
type Server struct {
	startTime time.Time
	version   string
}

// NewServer creates a new server instance
func NewServer(version string) *Server {
	return &Server{
		startTime: time.Now(),
		version:   version,
	}
}

// Routes returns the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Post("/project", s.CreateProjection)
	return r
}

// GetHealth implements the health check endpoint
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	uptime := int(time.Since(s.startTime).Seconds())

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    &uptime,
		Version:   &s.version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// CreateProjection implements the projection endpoint. The request body
// is the sphere image (PNG or JPEG); the projection options arrive as
// query parameters; the response is the projected map as PNG.
func (s *Server) CreateProjection(w http.ResponseWriter, r *http.Request) {
	// Generate request ID for tracking
	requestID := generateRequestID()

	opts, err := bindProjectionOptions(r.URL.Query())
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_PARAMETER",
			err.Error(), &requestID, nil)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeErrorResponse(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE",
			"Request body too large", &requestID, nil)
		return
	}

	src, err := raster.DecodeBytes(body)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_IMAGE",
			fmt.Sprintf("Cannot decode request body as an image: %v", err), &requestID, nil)
		return
	}

	result, err := projector.New(opts, nil).Project(src)
	if err != nil {
		s.handleProjectionError(w, err, &requestID)
		return
	}

	data, err := raster.EncodePNG(result)
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to encode output image", &requestID, nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Request-ID", requestID)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// bindProjectionOptions binds the projection query parameters.
func bindProjectionOptions(q url.Values) (*projector.Options, error) {
	opts := &projector.Options{HiddenColor: "black"}

	floatParams := map[string]*float64{
		"angular-size": &opts.AngularSize,
		"min-angle":    &opts.MinAngle,
		"center-lat":   &opts.CenterLat,
		"center-lon":   &opts.CenterLon,
		"rotate":       &opts.Rotate,
	}
	for name, dest := range floatParams {
		if !q.Has(name) {
			continue
		}
		if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
			return nil, fmt.Errorf("invalid query parameter %q: %w", name, err)
		}
	}

	boolParams := map[string]*bool{
		"stretch":  &opts.Stretch,
		"bilinear": &opts.Bilinear,
		"crop":     &opts.Crop,
	}
	for name, dest := range boolParams {
		if !q.Has(name) {
			continue
		}
		if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
			return nil, fmt.Errorf("invalid query parameter %q: %w", name, err)
		}
	}

	intParams := map[string]**int{
		"width":      &opts.Width,
		"height":     &opts.Height,
		"in-begin-x": &opts.Region.BeginX,
		"in-begin-y": &opts.Region.BeginY,
		"in-end-x":   &opts.Region.EndX,
		"in-end-y":   &opts.Region.EndY,
		"in-size":    &opts.Region.Size,
		"in-size-x":  &opts.Region.SizeX,
		"in-size-y":  &opts.Region.SizeY,
	}
	for name, dest := range intParams {
		if !q.Has(name) {
			continue
		}
		var v int
		if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
			return nil, fmt.Errorf("invalid query parameter %q: %w", name, err)
		}
		*dest = &v
	}

	if q.Has("hidden-color") {
		if err := runtime.BindQueryParameter("form", true, false, "hidden-color", q, &opts.HiddenColor); err != nil {
			return nil, fmt.Errorf("invalid query parameter %q: %w", "hidden-color", err)
		}
	}

	return opts, nil
}

// handleProjectionError maps projection errors to HTTP responses.
func (s *Server) handleProjectionError(w http.ResponseWriter, err error, requestID *string) {
	var (
		validationErr *projector.ValidationError
		regionErr     *projector.RegionOutOfBoundsError
		colorErr      *projector.ColorParseError
	)

	switch {
	case errors.As(err, &validationErr):
		s.writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR",
			validationErr.Message, requestID, nil)
	case errors.As(err, &regionErr):
		s.writeErrorResponse(w, http.StatusBadRequest, "REGION_OUT_OF_BOUNDS",
			regionErr.Error(), requestID, nil)
	case errors.As(err, &colorErr):
		s.writeErrorResponse(w, http.StatusBadRequest, "COLOR_PARSE_ERROR",
			colorErr.Error(), requestID, nil)
	default:
		s.writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Internal server error", requestID, nil)
	}
}

// writeErrorResponse writes a standard error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, requestID *string, details map[string]interface{}) {
	response := ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestId: requestID,
	}

	if details != nil {
		response.Details = &details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// generateRequestID generates a unique request ID
func generateRequestID() string {
	return fmt.Sprintf("req_%d", time.Now().UnixNano())
}
