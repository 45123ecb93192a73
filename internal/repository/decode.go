// Package repository holds the decoding shared by the mongo and postgres repositories.
package repository

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/haguru/bugtracker/internal/interfaces"
)

var timeType = reflect.TypeOf(time.Time{})

// DecodeDocument decodes a stored document into out, a pointer to a model.
// Keys are matched case-insensitively so folded PostgreSQL column names decode too.
func DecodeDocument(document interfaces.Document, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			dateTimeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
		Result: out,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(document); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// UpdateFields turns a request DTO into the set of fields to write. Zero
// values are dropped through the DTO's omitempty tags.
func UpdateFields(req interface{}) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if err := mapstructure.Decode(req, &fields); err != nil {
		return nil, fmt.Errorf("failed to build update fields: %w", err)
	}
	return fields, nil
}

func dateTimeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case primitive.DateTime:
		return v.Time().UTC(), nil
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0).UTC(), nil
	default:
		return data, nil
	}
}
