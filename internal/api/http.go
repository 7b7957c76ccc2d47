package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/surya-health-tech/Glucose-Curve/internal/logging"
	"github.com/surya-health-tech/Glucose-Curve/internal/models"
)

const userAgent = "GlucoseCurve-Client/1.0"

// HTTPClient talks to the backend over plain HTTP/JSON.
type HTTPClient struct {
	client  *http.Client
	log     logging.Logger
	baseURL string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the backend at addr. addr may be given
// with or without a scheme; a bare host:port defaults to http.
func NewHTTPClient(addr string, timeout time.Duration, log logging.Logger) *HTTPClient {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  false,
			DisableKeepAlives:   false,
			MaxIdleConnsPerHost: 10,
		},
	}

	baseURL := addr
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &HTTPClient{
		client:  client,
		log:     log.With("module", "api_client"),
		baseURL: baseURL,
	}
}

// Ping probes /api/ping/.
func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/ping/", nil)
	if err != nil {
		return err
	}

	var pingResp struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}

	if err := c.parseResponse(ctx, resp, &pingResp); err != nil {
		return err
	}

	if !pingResp.OK {
		return fmt.Errorf("%w: ping not ok", ErrRejected)
	}

	return nil
}

// Sync submits the payload to /api/sync/ and returns the backend's
// acknowledgement. The backend applies the whole payload in one transaction,
// so a returned result means every record in it is stored.
func (c *HTTPClient) Sync(ctx context.Context, payload *models.SyncPayload) (*models.SyncResult, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/sync/", payload)
	if err != nil {
		return nil, err
	}

	var result models.SyncResult
	if err := c.parseResponse(ctx, resp, &result); err != nil {
		return nil, err
	}

	if !result.OK {
		return nil, fmt.Errorf("%w: %s", ErrRejected, result.Error)
	}

	return &result, nil
}

// FoodItems fetches /api/food-items/.
func (c *HTTPClient) FoodItems(ctx context.Context) ([]models.FoodItem, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/food-items/", nil)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		OK        bool              `json:"ok"`
		FoodItems []models.FoodItem `json:"food_items"`
	}

	if err := c.parseResponse(ctx, resp, &listResp); err != nil {
		return nil, err
	}

	if !listResp.OK {
		return nil, fmt.Errorf("%w: food items not ok", ErrRejected)
	}

	return listResp.FoodItems, nil
}

// MealTemplates fetches /api/meal-templates/.
func (c *HTTPClient) MealTemplates(ctx context.Context) ([]models.MealTemplate, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/meal-templates/", nil)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		OK            bool                  `json:"ok"`
		MealTemplates []models.MealTemplate `json:"meal_templates"`
	}

	if err := c.parseResponse(ctx, resp, &listResp); err != nil {
		return nil, err
	}

	if !listResp.OK {
		return nil, fmt.Errorf("%w: meal templates not ok", ErrRejected)
	}

	return listResp.MealTemplates, nil
}

// ExerciseTemplates fetches /api/exercise-templates/.
func (c *HTTPClient) ExerciseTemplates(ctx context.Context) ([]models.ExerciseTemplate, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/exercise-templates/", nil)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		OK                bool                      `json:"ok"`
		ExerciseTemplates []models.ExerciseTemplate `json:"exercise_templates"`
	}

	if err := c.parseResponse(ctx, resp, &listResp); err != nil {
		return nil, err
	}

	if !listResp.OK {
		return nil, fmt.Errorf("%w: exercise templates not ok", ErrRejected)
	}

	return listResp.ExerciseTemplates, nil
}

// MedicationOptions fetches /api/medication-options/.
func (c *HTTPClient) MedicationOptions(ctx context.Context) ([]models.MedicationOption, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/medication-options/", nil)
	if err != nil {
		return nil, err
	}

	var listResp struct {
		OK                bool                      `json:"ok"`
		MedicationOptions []models.MedicationOption `json:"medication_options"`
	}

	if err := c.parseResponse(ctx, resp, &listResp); err != nil {
		return nil, err
	}

	if !listResp.OK {
		return nil, fmt.Errorf("%w: medication options not ok", ErrRejected)
	}

	return listResp.MedicationOptions, nil
}

// Close drops idle connections.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.log.Debug(ctx, "sending request",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return resp, nil
}

func (c *HTTPClient) parseResponse(ctx context.Context, resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	c.log.Debug(ctx, "received response",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	}

	return nil
}
