package capture

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robert-malhotra/go-tdms/tdms"
)

// Generator is the tool tag stored in the group properties.
const Generator = "RFSoC-MTS (Go)"

// WriterName is the tool tag stored in the root properties.
const WriterName = "go-tdms/capture"

// createdLayout formats the local creation time to the second.
const createdLayout = "2006-01-02T15:04:05"

// Channel roles.
const (
	RoleOut = "DAC_out"
	RoleIn  = "ADC_in"
)

// StringKeyed returns the entries of m whose keys are strings. Other keys
// are dropped.
func StringKeyed(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if s, ok := k.(string); ok {
			out[s] = v
		}
	}
	return out
}

// groupProperties builds the group metadata; extra entries override the
// built-in keys.
func groupProperties(now time.Time, fsOut, fsIn float64, outType, inType tdms.DataType, extra map[string]any) (map[string]any, error) {
	props := map[string]any{
		"created":   now.Local().Format(createdLayout),
		"fs_out_hz": fsOut,
		"fs_in_hz":  fsIn,
		"out_dtype": outType.String(),
		"in_dtype":  inType.String(),
		"generator": Generator,
	}
	for k, v := range extra {
		if _, err := tdms.PropertyType(v); err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		props[k] = v
	}
	return props, nil
}

func rootProperties() map[string]any {
	return map[string]any{
		"writer":  WriterName,
		"file_id": uuid.NewString(),
	}
}
