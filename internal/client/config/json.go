package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/sessionkeeper/internal/flagx"
	"github.com/dmitrijs2005/sessionkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	ServerBaseURL    *string         `json:"server_base_url"`
	StoreBackend     *string         `json:"store_backend"`
	DatabasePath     *string         `json:"database_path"`
	TokenFilePath    *string         `json:"token_file_path"`
	RedisAddr        *string         `json:"redis_addr"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	ProfileStaleTime *timex.Duration `json:"profile_stale_time"`
	LogLevel         *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. It returns without changes when no file is requested and
// panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.StoreBackend, jc.StoreBackend)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.TokenFilePath, jc.TokenFilePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ProfileStaleTime != nil {
		cfg.ProfileStaleTime = jc.ProfileStaleTime.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
