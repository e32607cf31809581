package countries

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/resilience/circuitbreaker"
	"github.com/joefazee/atlas/models"
)

// StatusError is returned when the source answers with a non-200 status.
type StatusError struct {
	StatusCode int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to fetch data. Status: %d %s", e.StatusCode, e.StatusText)
}

func newStatusError(resp *http.Response) *StatusError {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return &StatusError{StatusCode: resp.StatusCode, StatusText: text}
}

// upstreamCountry mirrors the fields requested from the REST Countries API
type upstreamCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Flags struct {
		SVG string `json:"svg"`
		PNG string `json:"png"`
	} `json:"flags"`
	Population int64  `json:"population"`
	Region     string `json:"region"`
	CCA3       string `json:"cca3"`
	CCA2       string `json:"cca2"`
}

func (u *upstreamCountry) toModel() models.Country {
	flag := strings.TrimSpace(u.Flags.SVG)
	if flag == "" {
		flag = strings.TrimSpace(u.Flags.PNG)
	}
	return models.Country{
		CommonName:   strings.TrimSpace(u.Name.Common),
		Region:       strings.TrimSpace(u.Region),
		Population:   u.Population,
		FlagImageURL: flag,
		Code:         strings.ToUpper(strings.TrimSpace(u.CCA3)),
		AlphaTwo:     strings.ToUpper(strings.TrimSpace(u.CCA2)),
	}
}

type repository struct {
	client  *http.Client
	config  *Config
	breaker *circuitbreaker.CircuitBreaker
	log     logger.Logger
	metrics *Metrics
}

// NewRepository creates a Repository reading the collection over HTTP.
// breaker and metrics may be nil.
func NewRepository(client *http.Client,
	config *Config,
	breaker *circuitbreaker.CircuitBreaker,
	log logger.Logger,
	metrics *Metrics) Repository {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &repository{
		client:  client,
		config:  config,
		breaker: breaker,
		log:     log,
		metrics: metrics,
	}
}

func (r *repository) FetchAll(ctx context.Context) ([]models.Country, error) {
	if r.breaker == nil {
		return r.fetch(ctx)
	}

	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.fetch(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return nil, fmt.Errorf("%w: circuit %s is open", models.ErrSourceUnavailable, r.breaker.Name())
	}
	if err != nil {
		return nil, err
	}
	return result.([]models.Country), nil
}

// ResetSource closes the circuit so the next fetch reaches the upstream.
func (r *repository) ResetSource() {
	if r.breaker != nil {
		r.breaker.Reset()
	}
}

func (r *repository) fetch(ctx context.Context) ([]models.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.SourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build countries request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch countries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, newStatusError(resp)
	}

	limit := r.config.MaxBodyBytes
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read countries body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", models.ErrMalformedPayload, limit)
	}

	return r.decode(body)
}

// decode turns the payload into validated records. Invalid JSON is an error;
// valid JSON that is not an array is an empty collection; elements that do
// not decode or validate, and repeated codes, are skipped.
func (r *repository) decode(body []byte) ([]models.Country, error) {
	if !json.Valid(body) {
		return nil, models.ErrMalformedPayload
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		r.log.Warn("countries payload is not an array, treating as empty", map[string]interface{}{
			"source": r.config.SourceURL,
		})
		return []models.Country{}, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedPayload, err)
	}

	records := make([]models.Country, 0, len(elements))
	seen := make(map[string]struct{}, len(elements))

	for i, raw := range elements {
		var u upstreamCountry
		if err := json.Unmarshal(raw, &u); err != nil {
			r.skip(i, "decode", err)
			continue
		}

		country := u.toModel()
		if err := country.Validate(); err != nil {
			r.skip(i, "invalid", err)
			continue
		}

		key := country.Key()
		if _, dup := seen[key]; dup {
			r.skip(i, "duplicate", fmt.Errorf("duplicate code %s", key))
			continue
		}
		seen[key] = struct{}{}
		records = append(records, country)
	}

	r.log.Info("countries decoded", map[string]interface{}{
		"elements": len(elements),
		"records":  len(records),
	})
	return records, nil
}

func (r *repository) skip(index int, reason string, err error) {
	r.metrics.IncSkipped(reason)
	r.log.Debug("skipping country element", map[string]interface{}{
		"index":  index,
		"reason": reason,
		"error":  err.Error(),
	})
}
