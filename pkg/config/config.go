package config

import (
	"errors"
	"fmt"
	"image/color"
	"net/url"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"github.com/roffe/admindash/pkg/chart"
)

// EnvEndpoint overrides the stored API endpoint when set.
const EnvEndpoint = "ADMIN_API_BASE_URL"

const (
	prefsEndpoint      = "apiEndpoint"
	prefsTimeout       = "apiTimeoutSeconds"
	prefsCacheTTL      = "cacheTTLSeconds"
	prefsRetries       = "retryAttempts"
	prefsChartKind     = "chartKind"
	prefsChartColor    = "chartColor"
	prefsAccent        = "accentColor"
	prefsDebugLog      = "debugLog"
	prefsActivityLimit = "activityLimit"
	prefsAnalyticsDays = "analyticsDays"
)

const DefaultEndpoint = "http://localhost:8000"

var DefaultAccent = color.RGBA{R: 0x21, G: 0x96, B: 0xF3, A: 0xFF}

type Config struct {
	Endpoint          string
	Timeout           time.Duration
	CacheTTL          time.Duration
	RetryAttempts     int
	DefaultChartKind  chart.Kind
	DefaultChartColor chart.ColorToken
	AccentColor       color.RGBA
	DebugLog          bool
	ActivityLimit     int
	AnalyticsDays     int
}

func Default() *Config {
	return &Config{
		Endpoint:          DefaultEndpoint,
		Timeout:           10 * time.Second,
		CacheTTL:          10 * time.Second,
		RetryAttempts:     3,
		DefaultChartKind:  chart.Line,
		DefaultChartColor: chart.Blue,
		AccentColor:       DefaultAccent,
		ActivityLimit:     10,
		AnalyticsDays:     30,
	}
}

// Load reads the config from prefs, falling back to defaults. The
// ADMIN_API_BASE_URL environment variable wins over the stored endpoint.
func Load(prefs fyne.Preferences) *Config {
	d := Default()
	cfg := &Config{
		Endpoint:          prefs.StringWithFallback(prefsEndpoint, d.Endpoint),
		Timeout:           time.Duration(prefs.IntWithFallback(prefsTimeout, int(d.Timeout/time.Second))) * time.Second,
		CacheTTL:          time.Duration(prefs.IntWithFallback(prefsCacheTTL, int(d.CacheTTL/time.Second))) * time.Second,
		RetryAttempts:     prefs.IntWithFallback(prefsRetries, d.RetryAttempts),
		DefaultChartKind:  chart.ParseKind(prefs.StringWithFallback(prefsChartKind, d.DefaultChartKind.String())),
		DefaultChartColor: chart.ColorToken(prefs.StringWithFallback(prefsChartColor, string(d.DefaultChartColor))),
		AccentColor:       d.AccentColor,
		DebugLog:          prefs.BoolWithFallback(prefsDebugLog, d.DebugLog),
		ActivityLimit:     prefs.IntWithFallback(prefsActivityLimit, d.ActivityLimit),
		AnalyticsDays:     prefs.IntWithFallback(prefsAnalyticsDays, d.AnalyticsDays),
	}
	if c, err := ParseHexColor(prefs.String(prefsAccent)); err == nil {
		cfg.AccentColor = c
	}
	if env := strings.TrimSpace(os.Getenv(EnvEndpoint)); env != "" {
		cfg.Endpoint = env
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = d.Timeout
	}
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	return cfg
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: must be an absolute http(s) url", c.Endpoint)
	}
	if c.ActivityLimit < 1 {
		return errors.New("activity limit must be at least 1")
	}
	if c.AnalyticsDays < 1 {
		return errors.New("analytics days must be at least 1")
	}
	return nil
}

func (c *Config) Save(prefs fyne.Preferences) error {
	if err := c.Validate(); err != nil {
		return err
	}
	prefs.SetString(prefsEndpoint, strings.TrimRight(c.Endpoint, "/"))
	prefs.SetInt(prefsTimeout, int(c.Timeout/time.Second))
	prefs.SetInt(prefsCacheTTL, int(c.CacheTTL/time.Second))
	prefs.SetInt(prefsRetries, c.RetryAttempts)
	prefs.SetString(prefsChartKind, c.DefaultChartKind.String())
	prefs.SetString(prefsChartColor, string(c.DefaultChartColor))
	prefs.SetString(prefsAccent, HexColor(c.AccentColor))
	prefs.SetBool(prefsDebugLog, c.DebugLog)
	prefs.SetInt(prefsActivityLimit, c.ActivityLimit)
	prefs.SetInt(prefsAnalyticsDays, c.AnalyticsDays)
	return nil
}

func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func ParseHexColor(s string) (color.RGBA, error) {
	var c color.RGBA
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return c, fmt.Errorf("invalid color %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c.A = 0xff
	return c, nil
}
