package collection

import (
	"slices"
	"strings"

	"github.com/meur/shortbox/internal/models"
)

// ParseTags splits a comma separated tag string into trimmed, non-empty labels.
// Casing is preserved.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagVocabulary returns every distinct tag label across items, sorted ascending.
// Labels that differ only in case are distinct entries.
func TagVocabulary(items []models.Item) []string {
	seen := make(map[string]struct{})
	vocab := []string{}
	for _, item := range items {
		for _, tag := range ParseTags(item.TagString()) {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			vocab = append(vocab, tag)
		}
	}
	slices.Sort(vocab)
	return vocab
}
