package service

import (
	"context"
	"fmt"

	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/pkg/slug"

	"github.com/google/uuid"
)

// fallbackSlugBase is used when normalization eats the whole name.
const fallbackSlugBase = "category"

// SlugAllocator derives a per-owner unique slug from a display name. It must
// run on every category persist, create or rename, and inside the same
// transaction as the save; the (user_id, slug) unique index is the backstop
// for the remaining race window.
type SlugAllocator struct{}

func NewSlugAllocator() *SlugAllocator {
	return &SlugAllocator{}
}

// Allocate probes base, base-1, base-2, ... until a candidate is free for
// this owner. excludeId skips the record being updated so a rename can keep
// its own slug.
func (a *SlugAllocator) Allocate(ctx context.Context, categories contract.CategoryRepository, ownerId uuid.UUID, name string, excludeId *uuid.UUID) (string, error) {
	if ownerId == uuid.Nil {
		return "", apperror.Precondition("category must be associated with a user before saving")
	}

	base := slug.Make(name)
	if base == "" {
		base = fallbackSlugBase
	}

	candidate := base
	for n := 1; ; n++ {
		specs := []specification.Specification{
			specification.OwnedBy{UserID: ownerId},
			specification.BySlug{Slug: candidate},
		}
		if excludeId != nil {
			specs = append(specs, specification.ExcludeID{ID: *excludeId})
		}

		count, err := categories.Count(ctx, specs...)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
