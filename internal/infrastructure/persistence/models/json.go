package models

import (
	"fmt"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
)

func toJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return datatypes.JSON("null"), nil
	}
	out, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json column: %w", err)
	}
	return datatypes.JSON(out), nil
}

func fromJSONMap(col datatypes.JSON) (map[string]interface{}, error) {
	if len(col) == 0 {
		return nil, nil
	}
	var out map[string]interface{}
	if err := sonic.Unmarshal(col, &out); err != nil {
		return nil, fmt.Errorf("failed to decode json column: %w", err)
	}
	return out, nil
}

func fromJSONStrings(col datatypes.JSON) ([]string, error) {
	if len(col) == 0 {
		return nil, nil
	}
	var out []string
	if err := sonic.Unmarshal(col, &out); err != nil {
		return nil, fmt.Errorf("failed to decode json column: %w", err)
	}
	return out, nil
}

func fromJSONFloats(col datatypes.JSON) ([]float32, error) {
	if len(col) == 0 {
		return nil, nil
	}
	var out []float32
	if err := sonic.Unmarshal(col, &out); err != nil {
		return nil, fmt.Errorf("failed to decode json column: %w", err)
	}
	return out, nil
}
