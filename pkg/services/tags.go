package services

import (
	"context"
	"errors"
	"strings"

	"github.com/kutbudev/taskpilot/pkg/models"
)

// MaxTagsPerBatch caps how many tags one upsert attaches. Excess candidates
// are silently dropped, not rejected.
const MaxTagsPerBatch = 20

// NormalizeTagNames trims, drops empty entries, lowercases and deduplicates
// the candidates, keeping first-appearance order, then truncates the result
// to MaxTagsPerBatch survivors.
func NormalizeTagNames(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))
	for _, candidate := range raw {
		name := strings.ToLower(strings.TrimSpace(candidate))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
		if len(names) == MaxTagsPerBatch {
			break
		}
	}
	return names
}

// upsertTags resolves raw candidate names to persisted tags, creating the
// missing ones in one batch. An empty normalized set returns nil without
// touching the store.
//
// Two concurrent requests may both try to insert the same new name; the
// unique index on tags.name makes one of them lose, and the loser re-reads
// the winner's row instead of failing the request.
func (s *Service) upsertTags(ctx context.Context, raw []string) ([]*models.Tag, error) {
	names := NormalizeTagNames(raw)
	if len(names) == 0 {
		return nil, nil
	}

	// A lost insert race surfaces as ErrDuplicateTag; re-read what the
	// winner created and retry the insert for whatever is still absent. A
	// conflict can be partial, so the missing set is recomputed each round.
	byName := make(map[string]*models.Tag, len(names))
	for attempt := 0; attempt < len(names)+1; attempt++ {
		existing, err := s.store.FindTagsByName(ctx, names)
		if err != nil {
			return nil, err
		}
		for _, tag := range existing {
			byName[tag.Name] = tag
		}

		var missing []*models.Tag
		for _, name := range names {
			if _, ok := byName[name]; !ok {
				missing = append(missing, &models.Tag{Name: name})
			}
		}
		if len(missing) == 0 {
			break
		}

		err = s.store.CreateTags(ctx, missing)
		if err == nil {
			for _, tag := range missing {
				byName[tag.Name] = tag
			}
			break
		}
		if !errors.Is(err, ErrDuplicateTag) {
			return nil, err
		}
	}

	resolved := make([]*models.Tag, 0, len(names))
	for _, name := range names {
		if tag, ok := byName[name]; ok {
			resolved = append(resolved, tag)
		}
	}
	return resolved, nil
}
