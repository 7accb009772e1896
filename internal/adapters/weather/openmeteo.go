// Package weather resolves a short weather label from Open-Meteo.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/example/vocare/internal/ports/secondary"
)

const (
	DefaultBaseURL   = "https://api.open-meteo.com/v1"
	DefaultTimeout   = 5 * time.Second
	defaultCacheSize = 64
	defaultCacheTTL  = 15 * time.Minute
)

// ErrNoLocation is returned when no coordinates are configured.
var ErrNoLocation = errors.New("no location configured")

var wmoCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Freezing fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Light rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Light snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Light rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Light snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with light hail",
	99: "Thunderstorm with heavy hail",
}

// Config configures a Client. Latitude and Longitude are both required for
// any lookup; a nil coordinate disables the provider.
type Config struct {
	Latitude  *float64
	Longitude *float64
	BaseURL   string
	CacheTTL  time.Duration
	// Timeout bounds each lookup. Zero or negative uses DefaultTimeout.
	Timeout time.Duration
}

type cachedLabel struct {
	label    string
	storedAt time.Time
}

// Client implements secondary.WeatherProvider against the Open-Meteo forecast API.
// Successful labels are cached per rounded coordinate pair.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
	cache      *lru.Cache[string, cachedLabel]
}

var _ secondary.WeatherProvider = (*Client)(nil)

// NewClient creates an Open-Meteo client.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	// lru.New only errors on a non-positive size.
	cache, _ := lru.New[string, cachedLabel](defaultCacheSize)
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
		cache:      cache,
	}
}

// CurrentLabel returns e.g. "Partly cloudy, 64°F (18°C)".
func (c *Client) CurrentLabel(ctx context.Context) (string, error) {
	key, err := c.key()
	if err != nil {
		return "", err
	}

	entry, ok := c.cache.Get(key)
	if ok && c.now().Sub(entry.storedAt) < c.cfg.CacheTTL {
		return entry.label, nil
	}

	return c.Refresh(ctx)
}

// Refresh fetches the current conditions, bypassing and then updating the cache.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	key, err := c.key()
	if err != nil {
		return "", err
	}

	label, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("weather lookup failed", zap.Error(err))
		return "", err
	}

	c.cache.Add(key, cachedLabel{label: label, storedAt: c.now()})
	return label, nil
}

func (c *Client) key() (string, error) {
	if c.cfg.Latitude == nil || c.cfg.Longitude == nil {
		return "", ErrNoLocation
	}
	return fmt.Sprintf("%.2f,%.2f", *c.cfg.Latitude, *c.cfg.Longitude), nil
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	url := fmt.Sprintf("%s/forecast?latitude=%g&longitude=%g&current_weather=true",
		c.cfg.BaseURL, *c.cfg.Latitude, *c.cfg.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather API: %d", resp.StatusCode)
	}

	var out forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode weather: %w", err)
	}

	var code int
	var tempC float64
	if out.CurrentWeather != nil {
		code = out.CurrentWeather.WeatherCode
		tempC = out.CurrentWeather.Temperature
	}
	return Label(code, tempC), nil
}

// Label formats a WMO weather code and Celsius temperature.
func Label(code int, tempC float64) string {
	description, ok := wmoCodes[code]
	if !ok {
		description = "Unknown conditions"
	}
	return fmt.Sprintf("%s, %d°F (%d°C)", description, roundHalfUp(tempC*9/5+32), roundHalfUp(tempC))
}

func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}
