package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Samples []Sample    `json:"samples"`
}

// ExportJSON writes a run and its trace as one JSON document to path.
func ExportJSON(path string, meta RunMetadata, trace []Sample) error {
	return writeFile(path, func(f *os.File) error {
		return WriteJSON(f, meta, trace)
	})
}

func WriteJSON(w io.Writer, meta RunMetadata, trace []Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: meta, Samples: trace})
}
