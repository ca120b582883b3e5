package wishcard

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/wishwell/donate-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// searchFields are the free-text columns a search query is OR-matched
// against, mirroring the donor-facing fuzzy search.
var searchFields = []string{
	"wish_item_name",
	"child_story",
	"child_interest",
	"child_first_name",
	"child_last_name",
}

// Search runs the fuzzy listing pipeline: optional OR text match across
// the five free-text fields, status eligibility, exclusion list, then a
// fixed status-descending sort with creation time as tie-break. The text
// predicate is only added when a query is present, so an unfiltered
// listing never pays for pattern matching. No limit is applied.
func (r *Repo) Search(ctx context.Context, opts domain.WishCardSearchOptions) ([]*domain.WishCard, error) {
	sql, args, err := buildSearch(opts)
	if err != nil {
		return nil, fmt.Errorf("build wishcard search: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search wishcards: %w", err)
	}
	defer rows.Close()

	cards, err := scanWishCards(rows)
	if err != nil {
		return nil, fmt.Errorf("search wishcards: %w", err)
	}

	return cards, nil
}

func buildSearch(opts domain.WishCardSearchOptions) (string, []any, error) {
	statuses := []string{string(domain.WishCardStatusPublished)}
	if opts.IncludeDonated {
		statuses = append(statuses, string(domain.WishCardStatusDonated))
	}

	b := psql.Select(
		"id", "agency_id", "child_first_name", "child_last_name", "child_interest",
		"child_story", "wish_item_name", "wish_item_price", "status", "locked_by",
		"locked_until", "created_at", "updated_at",
	).From("wishcards")

	if opts.Query != "" {
		pattern := "%" + opts.Query + "%"
		or := make(squirrel.Or, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, squirrel.ILike{field: pattern})
		}
		b = b.Where(or)
	}

	b = b.Where(squirrel.Eq{"status": statuses})

	if len(opts.ExcludeIDs) > 0 {
		b = b.Where(squirrel.NotEq{"id": opts.ExcludeIDs})
	}

	// Status descending surfaces published cards ahead of donated ones;
	// creation time breaks ties, direction per ReverseSort.
	created := "created_at ASC"
	if opts.ReverseSort {
		created = "created_at DESC"
	}
	b = b.OrderBy("status DESC", created)

	return b.ToSql()
}

// buildUpdate assembles the dynamic SET clause for a partial patch.
func buildUpdate(id uuid.UUID, params domain.WishCardUpdateParams) (string, []any, error) {
	b := psql.Update("wishcards").Set("updated_at", squirrel.Expr("now()"))

	if params.ChildFirstName != nil {
		b = b.Set("child_first_name", *params.ChildFirstName)
	}
	if params.ChildLastName != nil {
		b = b.Set("child_last_name", *params.ChildLastName)
	}
	if params.ChildInterest != nil {
		b = b.Set("child_interest", *params.ChildInterest)
	}
	if params.ChildStory != nil {
		b = b.Set("child_story", *params.ChildStory)
	}
	if params.WishItemName != nil {
		b = b.Set("wish_item_name", *params.WishItemName)
	}
	if params.WishItemPrice != nil {
		b = b.Set("wish_item_price", *params.WishItemPrice)
	}
	if params.Status != nil {
		b = b.Set("status", string(*params.Status))
	}

	b = b.Where(squirrel.Eq{"id": id}).Suffix("RETURNING " + wishCardColumns)

	return b.ToSql()
}
