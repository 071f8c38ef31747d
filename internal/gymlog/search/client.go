package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

const (
	cacheKeyPrefix = "exercise-search"
	cacheTTL       = 24 * time.Hour
	maxResults     = 20
)

var ErrNotConfigured = errors.New("exercise search is not configured")

type Result struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	GifURL   string   `json:"gif_url"`
	ImageURL string   `json:"image_url"`
	Muscle   []string `json:"muscle"`
}

type apiExercise struct {
	ExerciseID     string            `json:"exerciseId"`
	Name           string            `json:"name"`
	ImageURL       string            `json:"imageUrl"`
	ImageURLs      map[string]string `json:"imageUrls"`
	MuscleTargeted []string          `json:"muscleTargeted"`
	PrimaryMuscles []string          `json:"primaryMuscles"`
}

type apiResponse struct {
	Data []apiExercise `json:"data"`
}

// Client talks to the ExerciseDB API behind RapidAPI and keeps answers in redis.
type Client struct {
	baseURL    string
	host       string
	apiKey     string
	httpClient *http.Client
	rdb        *redis.Client
}

func NewClient(baseURL, host, apiKey string, httpClient *http.Client, rdb *redis.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		host:       host,
		apiKey:     apiKey,
		httpClient: httpClient,
		rdb:        rdb,
	}
}

func cacheKey(muscle, name string) string {
	return fmt.Sprintf("%s::%s::%s", cacheKeyPrefix, muscle, name)
}

func (c *Client) Search(ctx context.Context, muscle, name string) (results []Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "search.exercisedb.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("muscle", muscle), attribute.String("name", name))

	// cache key and upstream query share one normalized form
	muscle = strings.ToLower(strings.TrimSpace(muscle))
	name = strings.ToLower(strings.TrimSpace(name))

	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	key := cacheKey(muscle, name)
	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(cached), &results); err == nil {
			log.Tracef("exercise search [%s] served from cache", key)
			return results, nil
		} else {
			log.Errorf("failed to unmarshal cached exercise search [%s]: %s", key, err)
		}
	case errors.Is(err, redis.Nil):
	default:
		log.Errorf("exercise search cache get [%s]: %s", key, err)
	}

	results, err = c.fetch(ctx, muscle, name)
	if err != nil {
		return nil, err
	}

	resultsBytes, err := json.Marshal(results)
	if err != nil {
		log.Errorf("marshal exercise search results: %s", err)
		return results, nil
	}
	if err := c.rdb.Set(ctx, key, string(resultsBytes), cacheTTL).Err(); err != nil {
		log.Errorf("exercise search cache set [%s]: %s", key, err)
	}

	return results, nil
}

func (c *Client) fetch(ctx context.Context, muscle, name string) ([]Result, error) {
	params := url.Values{}
	if muscle != "" {
		params.Set("muscleTargeted", muscle)
	}
	if name != "" {
		params.Set("name", name)
	}
	searchURL := c.baseURL + "/api/v1/exercises?" + params.Encode()
	log.Debugf("calling exercise db api: %s", searchURL)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read exercise db response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exercise db api status %d: %s", resp.StatusCode, string(respBytes))
	}

	exercises, err := decodeAPIResponse(respBytes)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, min(len(exercises), maxResults))
	for _, e := range exercises {
		if len(results) == maxResults {
			break
		}
		imageURL := e.ImageURLs["360p"]
		if imageURL == "" {
			imageURL = e.ImageURL
		}
		muscles := e.MuscleTargeted
		if len(muscles) == 0 {
			muscles = e.PrimaryMuscles
		}
		if muscles == nil {
			muscles = []string{}
		}
		results = append(results, Result{
			ID:       e.ExerciseID,
			Name:     e.Name,
			GifURL:   imageURL,
			ImageURL: imageURL,
			Muscle:   muscles,
		})
	}

	return results, nil
}

// the API answers either {"data": [...]} or a bare array
func decodeAPIResponse(respBytes []byte) ([]apiExercise, error) {
	trimmed := strings.TrimSpace(string(respBytes))
	if strings.HasPrefix(trimmed, "[") {
		var exercises []apiExercise
		if err := json.Unmarshal(respBytes, &exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercise db array: %w", err)
		}
		return exercises, nil
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal exercise db response: %w", err)
	}
	return apiResp.Data, nil
}
