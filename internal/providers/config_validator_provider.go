package providers

import (
	"errors"

	"github.com/gookit/validate"
	"nutrilog/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	// cross-field rules the tags cannot express
	switch cv.conf.Extraction.Mode {
	case "gemini":
		if cv.conf.Extraction.APIKey == "" {
			return errors.New("extraction.apiKey is required in gemini mode")
		}
	case "relay":
		if cv.conf.Extraction.RelayURL == "" {
			return errors.New("extraction.relayURL is required in relay mode")
		}
	}

	switch cv.conf.Persistence.Driver {
	case "file":
		if cv.conf.Persistence.Dir == "" {
			return errors.New("persistence.dir is required for the file driver")
		}
	case "sqlite":
		if cv.conf.Persistence.DSN == "" {
			return errors.New("persistence.dsn is required for the sqlite driver")
		}
	}

	return nil
}
