package gif

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/jpillora/backoff"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	defaultSearchUrl = "https://api.giphy.com/v1/gifs/search"
	defaultLimit     = 20
	maxLimit         = 50
	maxAttempts      = 3
)

type gifService struct {
	client *http.Client
}

// search proxies the GIF provider's search API, retrying transient
// failures with backoff before giving up with an upstream problem.
func (gs *gifService) search(query string, limit int, offset int) ([]byte, *reject.ProblemWithTrace) {
	apiKey := viper.GetString("GIPHY_API_KEY")
	if apiKey == "" {
		err := errors.New("GIPHY_API_KEY not configured")
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UpstreamProblem(err),
			Cause:   err,
		}
	}

	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	searchUrl := viper.GetString("GIPHY_API_URL")
	if searchUrl == "" {
		searchUrl = defaultSearchUrl
	}

	params := url.Values{}
	params.Set("api_key", apiKey)
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("rating", "pg")

	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    2 * time.Second,
		Factor: 2,
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(b.Duration())
		}

		res, err := gs.client.Get(searchUrl + "?" + params.Encode())
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if res.StatusCode == http.StatusOK {
			return body, nil
		}

		lastErr = fmt.Errorf("gif search returned status %d", res.StatusCode)
		if res.StatusCode < http.StatusInternalServerError {
			// Client-side rejection from the provider will not improve
			// with retries.
			break
		}
		log.Warn().Int("status", res.StatusCode).Msg("Transient gif search failure, retrying")
	}

	return nil, &reject.ProblemWithTrace{
		Problem: reject.UpstreamProblem(lastErr),
		Cause:   lastErr,
	}
}
