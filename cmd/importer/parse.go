package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/2beens/healthdash/internal/docstore"
)

// exportFile is the JSON dump of the document store: collection name -> documents.
// A document's "id" field, when present, becomes its id and is dropped from the data.
type exportFile map[string][]map[string]any

type collectionDocs struct {
	Collection string
	Docs       []docstore.Document
}

func parseExport(r io.Reader) ([]collectionDocs, error) {
	var export exportFile
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	collections := make([]string, 0, len(export))
	for c := range export {
		collections = append(collections, c)
	}
	sort.Strings(collections)

	result := make([]collectionDocs, 0, len(collections))
	for _, c := range collections {
		if c == "" {
			return nil, fmt.Errorf("empty collection name")
		}
		docs := make([]docstore.Document, 0, len(export[c]))
		for i, raw := range export[c] {
			if raw == nil {
				return nil, fmt.Errorf("%s: document %d is null", c, i)
			}
			doc := docstore.Document{Data: raw}
			if id, ok := raw["id"].(string); ok && id != "" {
				doc.ID = id
				delete(raw, "id")
			}
			docs = append(docs, doc)
		}
		result = append(result, collectionDocs{Collection: c, Docs: docs})
	}

	return result, nil
}
