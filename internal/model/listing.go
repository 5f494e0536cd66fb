package model

import "time"

// Listing is a property offered by a user. UserID is not referentially
// enforced; readers must tolerate a dangling owner.
type Listing struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	ListingType string  `json:"listing_type"`
	Price       float64 `json:"price"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

// NewListing builds an unsaved listing stamped with the given creation time.
func NewListing(userID int64, listingType string, price float64, now time.Time) *Listing {
	ts := EpochMicros(now)
	return &Listing{
		UserID:      userID,
		ListingType: listingType,
		Price:       price,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// EnrichedListing is a listing with its owner attached. User is nil when the
// owner could not be resolved.
type EnrichedListing struct {
	Listing
	User *User `json:"user"`
}

// Enrich attaches user to a copy of l.
func (l Listing) Enrich(user *User) EnrichedListing {
	return EnrichedListing{Listing: l, User: user}
}
