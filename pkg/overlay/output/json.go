// Package output serializes figure manifests and table previews.
package output

import (
	json "github.com/goccy/go-json"
	"github.com/ukaji3/overlay-go/pkg/overlay/models"
)

// ToJSON serializes a figure manifest.
func ToJSON(fig *models.Figure, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(fig, "", "  ")
	}
	return json.Marshal(fig)
}

// Marshal serializes any value with the same encoder as ToJSON.
func Marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
