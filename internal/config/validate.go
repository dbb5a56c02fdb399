package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be in [4, 31] (got %d)", c.Auth.BcryptCost)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate_limit: limit and window must be > 0 when enabled")
	}

	if err := c.Insights.validate(); err != nil {
		return fmt.Errorf("insights: %w", err)
	}

	return nil
}

func (i *InsightsConfig) validate() error {
	for name, v := range map[string]int{
		"vitals_limit":   i.VitalsLimit,
		"workouts_limit": i.WorkoutsLimit,
		"sleep_limit":    i.SleepLimit,
		"meals_limit":    i.MealsLimit,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be > 0 (got %d)", name, v)
		}
	}
	if i.TrendDaysMin <= 0 || i.TrendDaysMin > i.TrendDaysMax {
		return fmt.Errorf("trend_days_min must be in [1, trend_days_max] (got %d)", i.TrendDaysMin)
	}
	if i.TrendDaysDefault < i.TrendDaysMin || i.TrendDaysDefault > i.TrendDaysMax {
		return fmt.Errorf("trend_days_default must be in [%d, %d] (got %d)", i.TrendDaysMin, i.TrendDaysMax, i.TrendDaysDefault)
	}
	return nil
}

// ClampTrendDays applies the configured default and bounds to a requested
// number of trend days. Zero means "not requested".
func (i InsightsConfig) ClampTrendDays(n int) int {
	if n == 0 {
		return i.TrendDaysDefault
	}
	return max(i.TrendDaysMin, min(n, i.TrendDaysMax))
}
