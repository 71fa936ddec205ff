package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"path"

	"docporter/internal/domain"
	"docporter/internal/domain/models"
)

// Codec converts an export set to and from portable archive bytes. The
// archive is a zip holding one JSON file per entity at
// <collection>/<id>.json, with set-valued fields serialized as arrays.
type Codec struct{}

// NewCodec creates a new archive codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode serializes the export set into zip bytes.
func (c *Codec) Encode(set *models.ExportSet) ([]byte, error) {
	buffer := new(bytes.Buffer)
	writer := zip.NewWriter(buffer)

	add := func(collectionName, id string, entity any) error {
		entry, err := writer.Create(collectionName + "/" + id + ".json")
		if err != nil {
			return fmt.Errorf("create archive entry: %w", err)
		}
		payload, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("encode %s/%s: %w", collectionName, id, err)
		}
		if _, err := entry.Write(payload); err != nil {
			return fmt.Errorf("write archive entry: %w", err)
		}
		return nil
	}

	for _, container := range set.DocumentContainers {
		if err := add(models.CollectionDocumentContainers, container.ID, container); err != nil {
			return nil, err
		}
	}
	for _, document := range set.EditorDocuments {
		if err := add(models.CollectionEditorDocuments, document.ID, document); err != nil {
			return nil, err
		}
	}
	for _, list := range set.SnippetLists {
		if err := add(models.CollectionSnippetLists, list.ID, list); err != nil {
			return nil, err
		}
	}
	for _, snippet := range set.Snippets {
		if err := add(models.CollectionSnippets, snippet.ID, snippet); err != nil {
			return nil, err
		}
	}
	for _, version := range set.SnippetVersions {
		if err := add(models.CollectionSnippetVersions, version.ID, version); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}

	return buffer.Bytes(), nil
}

// Decode parses uploaded archive bytes into an export set. Structural
// problems (a non-.json entry, an unknown folder, an entity failing schema
// validation) are reported as validation errors. Cross-references between
// the decoded collections are not checked here; that is the relationship
// validator's job.
func (c *Codec) Decode(data []byte) (*models.ExportSet, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &domain.ValidationError{
			Message: "Uploaded file is not a valid zip archive",
		}
	}

	set := &models.ExportSet{
		DocumentContainers: []models.DocumentContainer{},
		EditorDocuments:    []models.EditorDocument{},
		SnippetLists:       []models.SnippetList{},
		Snippets:           []models.Snippet{},
		SnippetVersions:    []models.SnippetVersion{},
	}

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if ext := path.Ext(entry.Name); ext != ".json" {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("Expected all files in uploaded archive to have .json extension. Got %s", ext),
			}
		}

		payload, err := readEntry(entry)
		if err != nil {
			return nil, err
		}

		directory := path.Dir(entry.Name)
		if err := decodeEntity(set, directory, entry.Name, payload); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// readEntry reads one zip entry fully into memory.
func readEntry(entry *zip.File) ([]byte, error) {
	file, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open archive entry %s: %w", entry.Name, err)
	}
	defer file.Close()

	buffer := new(bytes.Buffer)
	if _, err := buffer.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("read archive entry %s: %w", entry.Name, err)
	}
	return buffer.Bytes(), nil
}

// decodeEntity routes one entry's payload to the collection its folder names
// and appends the schema-validated entity.
func decodeEntity(set *models.ExportSet, directory, name string, payload []byte) error {
	switch directory {
	case models.CollectionDocumentContainers:
		var container models.DocumentContainer
		if err := parseEntity(name, payload, &container); err != nil {
			return err
		}
		set.DocumentContainers = append(set.DocumentContainers, container)
	case models.CollectionEditorDocuments:
		var document models.EditorDocument
		if err := parseEntity(name, payload, &document); err != nil {
			return err
		}
		set.EditorDocuments = append(set.EditorDocuments, document)
	case models.CollectionSnippetLists:
		var list models.SnippetList
		if err := parseEntity(name, payload, &list); err != nil {
			return err
		}
		set.SnippetLists = append(set.SnippetLists, list)
	case models.CollectionSnippets:
		var snippet models.Snippet
		if err := parseEntity(name, payload, &snippet); err != nil {
			return err
		}
		set.Snippets = append(set.Snippets, snippet)
	case models.CollectionSnippetVersions:
		var version models.SnippetVersion
		if err := parseEntity(name, payload, &version); err != nil {
			return err
		}
		set.SnippetVersions = append(set.SnippetVersions, version)
	default:
		return &domain.ValidationError{
			Message: fmt.Sprintf("Incorrect folder structure in uploaded archive. Got %s", directory),
		}
	}
	return nil
}

// validatable is implemented by every entity model.
type validatable interface {
	Validate() error
}

// parseEntity unmarshals one entity payload and runs its schema validation.
func parseEntity(name string, payload []byte, entity validatable) error {
	if err := json.Unmarshal(payload, entity); err != nil {
		return &domain.ValidationError{
			Message: fmt.Sprintf("Entry %s in uploaded archive is not valid JSON", name),
		}
	}
	if err := entity.Validate(); err != nil {
		return &domain.ValidationError{
			Message: fmt.Sprintf("Entry %s in uploaded archive failed schema validation: %v", name, err),
		}
	}
	return nil
}
