package config

import (
	"context"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type (
	DB struct {
		URL string `envconfig:"DB_URL" required:"true"`
	}

	CORS struct {
		AllowOrigins []string `envconfig:"ALLOW_ORIGINS" required:"true"`
	}

	JWT struct {
		Issuer   string   `envconfig:"ISSUER" default:"valoda-api"`
		Audience []string `envconfig:"AUDIENCE" required:"true"`
		Secret   string   `envconfig:"SECRET" default:""`
	}

	HTTP struct {
		ProcessTimeout time.Duration `envconfig:"PROCESS_TIMEOUT" default:"30s"`
		RateLimit      float64       `envconfig:"RATE_LIMIT" default:"25"`
		CORS           CORS
		JWT            JWT
	}

	Server struct {
		ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"10s"`
		Addr              string        `envconfig:"ADDR" default:":8080"`
	}

	LLM struct {
		Endpoint    string  `envconfig:"ENDPOINT" default:"https://api.openai.com/v1"`
		Model       string  `envconfig:"MODEL" default:"gpt-4o-mini"`
		APIKey      string  `envconfig:"API_KEY" default:""`
		Temperature float64 `envconfig:"TEMPERATURE" default:"0.7"`
	}

	DailySet struct {
		Location        string        `envconfig:"LOCATION" default:"Europe/Riga"`
		PrewarmUserIDs  []string      `envconfig:"PREWARM_USER_IDS" default:""`
		PrewarmInterval time.Duration `envconfig:"PREWARM_INTERVAL" default:"30m"`
		HourFrom        int           `envconfig:"HOUR_FROM" default:"6"`
		HourTo          int           `envconfig:"HOUR_TO" default:"10"`
	}

	SSM struct {
		JWTSecretParam string `envconfig:"JWT_SECRET_PARAM" default:""`
		LLMAPIKeyParam string `envconfig:"LLM_API_KEY_PARAM" default:""`
	}

	API struct {
		Dev      bool `envconfig:"DEV" default:"false"`
		DB       DB
		HTTP     HTTP
		Server   Server
		LLM      LLM
		DailySet DailySet
		SSM      SSM
	}
)

func NewAPI(ctx context.Context) (*API, error) {
	res := &API{}
	if err := envconfig.Process("API", res); err != nil {
		return nil, fmt.Errorf("parse api environment: %w", err)
	}

	if !res.Dev {
		if err := hydrateSecrets(ctx, res); err != nil {
			return nil, fmt.Errorf("hydrate secrets: %w", err)
		}
	}

	return validateAPI(res)
}

// hydrateSecrets replaces sensitive values with SSM parameters in prod.
func hydrateSecrets(ctx context.Context, conf *API) error {
	keys := make([]string, 0, 2)
	if conf.SSM.JWTSecretParam != "" {
		keys = append(keys, conf.SSM.JWTSecretParam)
	}
	if conf.SSM.LLMAPIKeyParam != "" {
		keys = append(keys, conf.SSM.LLMAPIKeyParam)
	}
	if len(keys) == 0 {
		return nil
	}

	params, err := FetchAWSParams(ctx, keys...)
	if err != nil {
		return fmt.Errorf("fetch aws params: %w", err)
	}

	if v, ok := params[conf.SSM.JWTSecretParam]; ok {
		conf.HTTP.JWT.Secret = v
	}
	if v, ok := params[conf.SSM.LLMAPIKeyParam]; ok {
		conf.LLM.APIKey = v
	}

	return nil
}

func validateAPI(conf *API) (*API, error) {
	errs := make([]string, 0, 4)
	if conf.HTTP.JWT.Secret == "" {
		errs = append(errs, "jwt secret is required")
	}
	if conf.LLM.APIKey == "" && !conf.Dev {
		errs = append(errs, "llm api key is required")
	}
	if conf.DailySet.HourFrom < 0 || conf.DailySet.HourFrom > 23 {
		errs = append(errs, fmt.Sprintf("hour from %d must be in range 0-23", conf.DailySet.HourFrom))
	}
	if conf.DailySet.HourTo < 0 || conf.DailySet.HourTo > 23 {
		errs = append(errs, fmt.Sprintf("hour to %d must be in range 0-23", conf.DailySet.HourTo))
	}
	if _, err := conf.DailySet.TimeLocation(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid api config: %v", errs)
	}

	return conf, nil
}

func (s DailySet) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Location)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	return loc, nil
}

func (s DailySet) MustTimeLocation() *time.Location {
	loc, err := s.TimeLocation()
	if err != nil {
		panic(fmt.Sprintf("failed to load location %s: %v", s.Location, err))
	}
	return loc
}
