package export

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"docporter/internal/collection"
	"docporter/internal/domain/models"
	"docporter/internal/domain/repositories"
	"docporter/internal/domain/services"
)

// fetchConcurrency bounds the number of parallel store lookups inside one
// traversal step.
const fetchConcurrency = 8

// Collector computes the closed set of resources that must be exported
// together: the requested document containers, their current editor
// documents, every snippet list reachable through linked-snippet-list
// references, the snippets those lists contain, and each snippet's current
// version.
type Collector struct {
	containerRepo repositories.DocumentContainerRepository
	documentRepo  repositories.EditorDocumentRepository
	listRepo      repositories.SnippetListRepository
	snippetRepo   repositories.SnippetRepository
	versionRepo   repositories.SnippetVersionRepository
	logger        *slog.Logger
}

// NewCollector creates a new resource collector
func NewCollector(
	containerRepo repositories.DocumentContainerRepository,
	documentRepo repositories.EditorDocumentRepository,
	listRepo repositories.SnippetListRepository,
	snippetRepo repositories.SnippetRepository,
	versionRepo repositories.SnippetVersionRepository,
	logger *slog.Logger,
) *Collector {
	return &Collector{
		containerRepo: containerRepo,
		documentRepo:  documentRepo,
		listRepo:      listRepo,
		snippetRepo:   snippetRepo,
		versionRepo:   versionRepo,
		logger:        logger,
	}
}

// Collect resolves the transitive export set for the request. Any lookup
// that fails to resolve fails the whole collection; a partial export set is
// never returned.
//
// Snippet lists form a directed graph: containers link to lists, lists
// contain snippets, and snippets back-link to lists that may lie outside
// their containing list. The traversal is a worklist loop over unseen list
// URIs; the seen set stops cycles from being reprocessed. Each step's
// expansion depends on the previous step's discoveries, so the loop itself
// is sequential, but the independent lookups inside one step run in
// parallel.
func (c *Collector) Collect(ctx context.Context, req *services.ExportRequest) (*models.ExportSet, error) {
	containers, err := c.fetchContainers(ctx, req.DocumentContainerURIs)
	if err != nil {
		return nil, err
	}

	documents, err := c.fetchCurrentDocuments(ctx, containers)
	if err != nil {
		return nil, err
	}

	set := &models.ExportSet{
		DocumentContainers: containers,
		EditorDocuments:    documents,
		SnippetLists:       []models.SnippetList{},
		Snippets:           []models.Snippet{},
		SnippetVersions:    []models.SnippetVersion{},
	}

	seen := collection.NewSet()
	frontier := collection.NewSet(req.SnippetListURIs...)
	for _, container := range containers {
		frontier.AddAll(container.LinkedSnippetListURIs.Values()...)
	}

	collectedSnippets := collection.NewSet()
	for {
		listURI, ok := frontier.Pop()
		if !ok {
			break
		}
		seen.Add(listURI)

		list, err := c.listRepo.Find(ctx, listURI)
		if err != nil {
			return nil, err
		}
		set.SnippetLists = append(set.SnippetLists, *list)

		snippets, err := c.fetchSnippets(ctx, list)
		if err != nil {
			return nil, err
		}

		for _, snippet := range snippets {
			// A snippet can be a member of several reachable lists;
			// it is exported once.
			if collectedSnippets.Has(snippet.URI) {
				continue
			}
			collectedSnippets.Add(snippet.URI)
			set.Snippets = append(set.Snippets, snippet)

			for _, linkedURI := range snippet.LinkedSnippetListURIs.Values() {
				if !seen.Has(linkedURI) {
					frontier.Add(linkedURI)
				}
			}
		}
	}

	versions, err := c.fetchCurrentVersions(ctx, set.Snippets)
	if err != nil {
		return nil, err
	}
	set.SnippetVersions = versions

	c.logger.Debug("export set collected",
		"document_containers", len(set.DocumentContainers),
		"editor_documents", len(set.EditorDocuments),
		"snippet_lists", len(set.SnippetLists),
		"snippets", len(set.Snippets),
		"snippet_versions", len(set.SnippetVersions),
	)

	return set, nil
}

// fetchContainers resolves the requested document containers in parallel,
// preserving request order.
func (c *Collector) fetchContainers(ctx context.Context, uris []string) ([]models.DocumentContainer, error) {
	containers := make([]models.DocumentContainer, len(uris))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, uri := range uris {
		g.Go(func() error {
			container, err := c.containerRepo.Find(gCtx, uri)
			if err != nil {
				return err
			}
			containers[i] = *container
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return containers, nil
}

// fetchCurrentDocuments resolves each container's current editor document in
// parallel.
func (c *Collector) fetchCurrentDocuments(ctx context.Context, containers []models.DocumentContainer) ([]models.EditorDocument, error) {
	documents := make([]models.EditorDocument, len(containers))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, container := range containers {
		g.Go(func() error {
			document, err := c.documentRepo.Find(gCtx, container.CurrentVersionURI)
			if err != nil {
				return err
			}
			documents[i] = *document
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return documents, nil
}

// fetchSnippets resolves a list's member snippets in parallel.
func (c *Collector) fetchSnippets(ctx context.Context, list *models.SnippetList) ([]models.Snippet, error) {
	uris := list.SnippetURIs.Values()
	snippets := make([]models.Snippet, len(uris))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, uri := range uris {
		g.Go(func() error {
			snippet, err := c.snippetRepo.Find(gCtx, uri)
			if err != nil {
				return fmt.Errorf("snippet list %s: %w", list.URI, err)
			}
			snippets[i] = *snippet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snippets, nil
}

// fetchCurrentVersions resolves each snippet's current version in parallel.
func (c *Collector) fetchCurrentVersions(ctx context.Context, snippets []models.Snippet) ([]models.SnippetVersion, error) {
	versions := make([]models.SnippetVersion, len(snippets))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, snippet := range snippets {
		g.Go(func() error {
			version, err := c.versionRepo.Find(gCtx, snippet.CurrentVersionURI)
			if err != nil {
				return err
			}
			versions[i] = *version
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return versions, nil
}
