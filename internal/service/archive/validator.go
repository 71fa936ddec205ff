package archive

import (
	"fmt"

	"docporter/internal/domain"
	"docporter/internal/domain/models"
)

// ValidateRelationships verifies the referential integrity of a decoded
// export set before it is committed to the store. Checks run in a fixed
// order and stop at the first failure; every failure message names the
// entity and URI that violated the rule.
func ValidateRelationships(set *models.ExportSet) error {
	if err := validateContainerRelationships(set); err != nil {
		return err
	}
	return validateSnippetRelationships(set)
}

func validateContainerRelationships(set *models.ExportSet) error {
	if len(set.DocumentContainers) != len(set.EditorDocuments) {
		return &domain.ValidationError{
			Message: fmt.Sprintf(
				"Expected the same number of document containers and editor documents, got %d document containers and %d editor documents",
				len(set.DocumentContainers), len(set.EditorDocuments),
			),
		}
	}

	documentsByURI := make(map[string]*models.EditorDocument, len(set.EditorDocuments))
	for i := range set.EditorDocuments {
		documentsByURI[set.EditorDocuments[i].URI] = &set.EditorDocuments[i]
	}
	listURIs := make(map[string]struct{}, len(set.SnippetLists))
	for _, list := range set.SnippetLists {
		listURIs[list.URI] = struct{}{}
	}

	for _, container := range set.DocumentContainers {
		document, ok := documentsByURI[container.CurrentVersionURI]
		if !ok {
			return &domain.ValidationError{
				Message: fmt.Sprintf(
					"Current version %s of document container %s is not included in the archive",
					container.CurrentVersionURI, container.URI,
				),
			}
		}
		if document.DocumentContainerURI != container.URI {
			return &domain.ValidationError{
				Message: fmt.Sprintf(
					"Editor document %s does not reference back to document container %s",
					document.URI, container.URI,
				),
			}
		}
		for _, listURI := range container.LinkedSnippetListURIs.Values() {
			if _, ok := listURIs[listURI]; !ok {
				return &domain.ValidationError{
					Message: fmt.Sprintf(
						"Linked snippet list %s of document container %s is not included in the archive",
						listURI, container.URI,
					),
				}
			}
		}
	}

	return nil
}

func validateSnippetRelationships(set *models.ExportSet) error {
	if len(set.Snippets) != len(set.SnippetVersions) {
		return &domain.ValidationError{
			Message: fmt.Sprintf(
				"Expected the same number of snippets and snippet versions, got %d snippets and %d snippet versions",
				len(set.Snippets), len(set.SnippetVersions),
			),
		}
	}

	snippetURIs := make(map[string]struct{}, len(set.Snippets))
	for _, snippet := range set.Snippets {
		snippetURIs[snippet.URI] = struct{}{}
	}
	listURIs := make(map[string]struct{}, len(set.SnippetLists))
	for _, list := range set.SnippetLists {
		listURIs[list.URI] = struct{}{}
	}
	versionsByURI := make(map[string]*models.SnippetVersion, len(set.SnippetVersions))
	for i := range set.SnippetVersions {
		versionsByURI[set.SnippetVersions[i].URI] = &set.SnippetVersions[i]
	}

	for _, list := range set.SnippetLists {
		for _, snippetURI := range list.SnippetURIs.Values() {
			if _, ok := snippetURIs[snippetURI]; !ok {
				return &domain.ValidationError{
					Message: fmt.Sprintf(
						"Snippet %s of snippet list %s is not included in the archive",
						snippetURI, list.URI,
					),
				}
			}
		}
	}

	for _, snippet := range set.Snippets {
		version, ok := versionsByURI[snippet.CurrentVersionURI]
		if !ok {
			return &domain.ValidationError{
				Message: fmt.Sprintf(
					"Current version %s of snippet %s is not included in the archive",
					snippet.CurrentVersionURI, snippet.URI,
				),
			}
		}
		if version.SnippetURI != snippet.URI {
			return &domain.ValidationError{
				Message: fmt.Sprintf(
					"Snippet version %s does not reference back to snippet %s",
					version.URI, snippet.URI,
				),
			}
		}
		for _, listURI := range snippet.LinkedSnippetListURIs.Values() {
			if _, ok := listURIs[listURI]; !ok {
				return &domain.ValidationError{
					Message: fmt.Sprintf(
						"Linked snippet list %s of snippet %s is not included in the archive",
						listURI, snippet.URI,
					),
				}
			}
		}
	}

	return nil
}
