package models

// Export-set collection names. These are the folder names inside an archive;
// an uploaded archive may only contain these five.
const (
	CollectionDocumentContainers = "documentContainers"
	CollectionEditorDocuments    = "editorDocuments"
	CollectionSnippetLists       = "snippetLists"
	CollectionSnippets           = "snippets"
	CollectionSnippetVersions    = "snippetVersions"
)

// ExportSet is the closed collection of entities produced by the resource
// collector for one export, or decoded from an uploaded archive. Every URI
// referenced inside the set must resolve to an entity in the same set.
type ExportSet struct {
	DocumentContainers []DocumentContainer `json:"documentContainers"`
	EditorDocuments    []EditorDocument    `json:"editorDocuments"`
	SnippetLists       []SnippetList       `json:"snippetLists"`
	Snippets           []Snippet           `json:"snippets"`
	SnippetVersions    []SnippetVersion    `json:"snippetVersions"`
}

// IsEmpty reports whether the set contains no entities at all.
func (s *ExportSet) IsEmpty() bool {
	return len(s.DocumentContainers) == 0 &&
		len(s.EditorDocuments) == 0 &&
		len(s.SnippetLists) == 0 &&
		len(s.Snippets) == 0 &&
		len(s.SnippetVersions) == 0
}
