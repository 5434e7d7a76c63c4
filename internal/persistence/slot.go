package persistence

import (
	"fmt"

	"nutrilog/internal/persistence/interfaces"
	"nutrilog/internal/providers"
	"nutrilog/internal/structures"
)

// NewSlot opens the slot backend named by persistence.driver. The returned
// cleanup closes it.
func NewSlot(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) (interfaces.SlotInterface, func(), error) {
	var (
		slot interfaces.SlotInterface
		err  error
	)

	switch conf.Persistence.Driver {
	case "sqlite":
		slot, err = NewSQLiteSlot(conf.Persistence.DSN)
		if err == nil {
			logger.Infof(providers.TypeApp, "Using sqlite slot %s", conf.Persistence.DSN)
		}
	case "file", "":
		slot, err = NewFileSlot(conf.Persistence.Dir, compressor)
		if err == nil {
			logger.Infof(providers.TypeApp, "Using file slot in %s (compress=%t)", conf.Persistence.Dir, conf.Persistence.Compress)
		}
	default:
		err = fmt.Errorf("unknown persistence driver %q", conf.Persistence.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := slot.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error while closing slot: %s", err)
		}
		if conf.Persistence.Driver == "sqlite" {
			compressor.Close()
		}
	}
	return slot, cleanup, nil
}
