package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteClassifier delegates inference to a model-serving sidecar. Feature
// alignment still happens locally against the schema the server advertises;
// only dense vectors cross the wire.
type RemoteClassifier struct {
	baseURL    string
	classes    []string
	schema     *Schema
	httpClient *http.Client
}

type remoteSchemaResponse struct {
	Classes []string `json:"classes"`
	Columns []Column `json:"columns"`
}

type remotePredictRequest struct {
	Vectors [][]float64 `json:"vectors"`
}

type remotePredictResponse struct {
	Probabilities [][]float64 `json:"probabilities"`
}

// NewRemoteClassifier fetches the serving schema once and fails fast if the
// server is unreachable or advertises unexpected classes.
func NewRemoteClassifier(ctx context.Context, baseURL string) (*RemoteClassifier, error) {
	c := &RemoteClassifier{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	body, err := c.doReq(ctx, http.MethodGet, "/schema", nil)
	if err != nil {
		return nil, err
	}
	var meta remoteSchemaResponse
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("parse serving schema: %w", err)
	}
	if err := validateClasses(meta.Classes); err != nil {
		return nil, err
	}
	schema, err := NewSchema(meta.Columns)
	if err != nil {
		return nil, fmt.Errorf("serving schema: %w", err)
	}
	c.classes = meta.Classes
	c.schema = schema
	return c, nil
}

func (c *RemoteClassifier) doReq(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("model server %s %s: %d %s", method, path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *RemoteClassifier) Classes() []string { return c.classes }

func (c *RemoteClassifier) Schema() *Schema { return c.schema }

func (c *RemoteClassifier) PredictProba(ctx context.Context, rows []Row) ([][]float64, error) {
	req := remotePredictRequest{Vectors: make([][]float64, len(rows))}
	for i, row := range rows {
		req.Vectors[i] = c.schema.Vectorize(row)
	}

	body, err := c.doReq(ctx, http.MethodPost, "/predict_proba", req)
	if err != nil {
		return nil, err
	}
	var resp remotePredictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse prediction response: %w", err)
	}
	if len(resp.Probabilities) != len(rows) {
		return nil, fmt.Errorf("model server returned %d rows for %d inputs", len(resp.Probabilities), len(rows))
	}
	for i, p := range resp.Probabilities {
		if len(p) != len(c.classes) {
			return nil, fmt.Errorf("row %d: %d probabilities for %d classes", i, len(p), len(c.classes))
		}
	}
	return resp.Probabilities, nil
}
