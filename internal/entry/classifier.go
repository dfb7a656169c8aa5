package entry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Prediction is what the text classifier returns for one entry.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // percent, 0-100
}

// Classifier labels free text. Implementations live outside this process.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// HTTPClassifier calls a model-serving endpoint:
// POST {"text": "..."} -> {"label": "...", "confidence": 87.5}
type HTTPClassifier struct {
	URL    string
	Client *http.Client
}

func NewHTTPClassifier(url string, timeout time.Duration) *HTTPClassifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClassifier{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (c *HTTPClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	if c.URL == "" {
		return Prediction{}, errors.New("classifier url not configured")
	}
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return Prediction{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Prediction{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("classifier status %d", resp.StatusCode)
	}
	var p Prediction
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Prediction{}, fmt.Errorf("decode prediction: %w", err)
	}
	p.Label = strings.ToLower(strings.TrimSpace(p.Label))
	if p.Label == "" {
		return Prediction{}, errors.New("classifier returned empty label")
	}
	return p, nil
}
