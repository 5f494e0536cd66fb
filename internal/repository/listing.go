package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/homelist/marketplace/internal/model"
)

// Common errors for listing repository operations.
var (
	ErrListingNotFound = errors.New("listing not found")
)

// ListingFilter narrows a listing page. A nil UserID matches every owner.
type ListingFilter struct {
	UserID *int64
}

var listingColumns = []string{"id", "user_id", "listing_type", "price", "created_at", "updated_at"}

// CreateListing inserts a new listing and sets its store-assigned ID.
func (r *Repository) CreateListing(ctx context.Context, listing *model.Listing) error {
	query := `
		INSERT INTO listings (user_id, listing_type, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		listing.UserID,
		listing.ListingType,
		listing.Price,
		listing.CreatedAt,
		listing.UpdatedAt,
	).Scan(&listing.ID)

	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// GetListingByID retrieves a listing by its ID.
func (r *Repository) GetListingByID(ctx context.Context, id int64) (*model.Listing, error) {
	listing, err := scanListing(r.pool.QueryRow(ctx, selectByID(listingsTable, listingColumns), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing by ID: %w", err)
	}

	return listing, nil
}

// ListListings retrieves one page of listings, newest first.
func (r *Repository) ListListings(ctx context.Context, filter ListingFilter, page model.Page) ([]*model.Listing, error) {
	listings := make([]*model.Listing, 0)
	if page.Empty() {
		return listings, nil
	}

	var (
		where string
		args  []any
	)
	if filter.UserID != nil {
		where = "user_id = $1"
		args = append(args, *filter.UserID)
	}
	query := selectPage(listingsTable, listingColumns, where, len(args))
	args = append(args, page.Size, page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	return listings, nil
}

// scanListing scans a single row into a Listing model.
func scanListing(row pgx.Row) (*model.Listing, error) {
	var listing model.Listing
	err := row.Scan(
		&listing.ID,
		&listing.UserID,
		&listing.ListingType,
		&listing.Price,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	return &listing, err
}
