package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/user-directory/internal/models"
	"github.com/noah-isme/user-directory/pkg/config"
)

const maxPayloadBytes = 16 << 20

// ErrMalformedPayload reports a response that does not carry a results array.
var ErrMalformedPayload = errors.New("malformed record payload")

// recordNamespace seeds deterministic IDs for people without a login uuid.
var recordNamespace = uuid.MustParse("6f1c4b52-2a57-4b0e-9d55-0f3a3d1f9a10")

// Payload is the randomuser.me response envelope.
type Payload struct {
	Results *[]PayloadPerson `json:"results"`
	Error   string           `json:"error,omitempty"`
}

// PayloadPerson is one entry of Payload.Results. Only the fields the
// directory renders are decoded.
type PayloadPerson struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Dob   struct {
		Age int `json:"age"`
	} `json:"dob"`
	Gender   string `json:"gender"`
	Location struct {
		Country string `json:"country"`
	} `json:"location"`
	Picture struct {
		Large string `json:"large"`
	} `json:"picture"`
	Login struct {
		UUID string `json:"uuid"`
	} `json:"login"`
}

// MapResults converts payload entries into records field for field. The ID
// is the login uuid when present, otherwise a UUIDv5 of position and email so
// repeated loads of the same payload agree.
func MapResults(people []PayloadPerson) []models.Record {
	records := make([]models.Record, 0, len(people))
	for i, p := range people {
		id := p.Login.UUID
		if id == "" {
			id = uuid.NewSHA1(recordNamespace, []byte(strconv.Itoa(i)+":"+p.Email)).String()
		}
		age := p.Dob.Age
		if age < 0 {
			age = 0
		}
		records = append(records, models.Record{
			ID:         id,
			Name:       models.PersonName{First: p.Name.First, Last: p.Name.Last},
			Email:      p.Email,
			Phone:      p.Phone,
			Age:        age,
			Gender:     p.Gender,
			Country:    p.Location.Country,
			PictureURL: p.Picture.Large,
		})
	}
	return records
}

// DecodePayload reads a randomuser.me document and maps its results.
func DecodePayload(r io.Reader) ([]models.Record, error) {
	var payload Payload
	if err := json.NewDecoder(io.LimitReader(r, maxPayloadBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("source reported error: %s", payload.Error)
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("%w: missing results array", ErrMalformedPayload)
	}
	return MapResults(*payload.Results), nil
}

// RecordSource loads the whole collection in one call.
type RecordSource interface {
	FetchAll(ctx context.Context) ([]models.Record, error)
}

// NewRecordSource reads cfg.FixturePath when set and queries the remote API
// otherwise.
func NewRecordSource(cfg config.SourceConfig, logger *zap.Logger) RecordSource {
	if cfg.FixturePath != "" {
		if logger != nil {
			logger.Info("loading records from fixture", zap.String("path", cfg.FixturePath))
		}
		return NewFixtureRepository(cfg.FixturePath)
	}
	return NewRandomUserRepository(nil, cfg, logger)
}

// RandomUserRepository fetches synthetic people from the randomuser.me API.
type RandomUserRepository struct {
	client  *http.Client
	baseURL string
	results int
	seed    string
	logger  *zap.Logger
}

// NewRandomUserRepository constructs a RandomUserRepository. A nil client
// gets one bounded by cfg.Timeout.
func NewRandomUserRepository(client *http.Client, cfg config.SourceConfig, logger *zap.Logger) *RandomUserRepository {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	results := cfg.Results
	if results <= 0 {
		results = 100
	}
	return &RandomUserRepository{client: client, baseURL: cfg.URL, results: results, seed: cfg.Seed, logger: logger}
}

// FetchAll performs the single request for the whole collection.
func (r *RandomUserRepository) FetchAll(ctx context.Context) ([]models.Record, error) {
	endpoint, err := r.endpoint()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build source request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch records: unexpected status %d", resp.StatusCode)
	}

	records, err := DecodePayload(resp.Body)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("records fetched", zap.String("url", endpoint), zap.Int("count", len(records)))
	return records, nil
}

func (r *RandomUserRepository) endpoint() (string, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse source url: %w", err)
	}
	q := u.Query()
	q.Set("results", strconv.Itoa(r.results))
	if r.seed != "" {
		q.Set("seed", r.seed)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FixtureRepository reads a randomuser.me document from disk.
type FixtureRepository struct {
	path string
}

// NewFixtureRepository constructs a FixtureRepository for path.
func NewFixtureRepository(path string) *FixtureRepository {
	return &FixtureRepository{path: path}
}

// FetchAll decodes the fixture file.
func (r *FixtureRepository) FetchAll(ctx context.Context) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer file.Close() //nolint:errcheck
	return DecodePayload(file)
}
