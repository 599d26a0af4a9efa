package relic

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/FissureBot_Go/internal/logger"
	"github.com/osse101/FissureBot_Go/internal/validation"
)

// Load reads, schema-validates, and indexes the relic table at path.
func Load(path string, schemas validation.SchemaValidator) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToReadRelicFile, err)
	}

	if schemas != nil {
		if err := schemas.ValidateBytes(raw, RelicsSchemaPath); err != nil {
			return nil, fmt.Errorf("%s for %s: %w", ErrContextSchemaValidation, path, err)
		}
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToParseRelicFile, err)
	}

	t, err := NewTable(data)
	if err != nil {
		return nil, err
	}

	warnUnused(data)

	relics, items, sets := t.Counts()
	logger.Info(LogMsgRelicTableLoaded, LogFieldPath, path, LogFieldRelics, relics, LogFieldItems, items, LogFieldSets, sets)
	return t, nil
}

// warnUnused logs items no relic drops. Set parts are exempt since sets
// may list parts that come from vaulted relics outside the file.
func warnUnused(data Data) {
	dropped := make(map[string]bool)
	for _, r := range data.Relics {
		for _, d := range r.Drops {
			dropped[d.Name] = true
		}
	}
	for _, item := range data.Items {
		if !dropped[item.Name] && item.Set == "" {
			logger.Warn(LogMsgUnusedItem, LogFieldItem, item.Name)
		}
	}
}
