package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"nutrilog/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("persistence.retryInterval", "30s")
	v.SetDefault("journal.locale", "de")
	v.SetDefault("extraction.mode", "gemini")

	_ = v.BindEnv("logger.level", "NUTRILOG_LOG_LEVEL")
	_ = v.BindEnv("webServer.port", "NUTRILOG_PORT")
	_ = v.BindEnv("persistence.driver", "NUTRILOG_PERSISTENCE_DRIVER")
	_ = v.BindEnv("cache.enabled", "NUTRILOG_CACHE_ENABLED")
	_ = v.BindEnv("extraction.apiKey", "GEMINI_API_KEY", "API_KEY")
	_ = v.BindEnv("extraction.relayURL", "NUTRILOG_RELAY_URL")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	conf.Debug = flags.DebugMode
	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "NutriLog"
	conf.Path = flags.ConfigPath

	return &conf, nil
}
