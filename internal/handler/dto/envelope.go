// Package dto provides the JSON envelopes returned by every service.
// Each envelope carries a boolean result so clients can branch on it
// without inspecting the status code.
package dto

import (
	"github.com/homelist/marketplace/internal/model"
)

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Result bool     `json:"result"`
	Errors []string `json:"errors"`
}

// NewErrorResponse builds a failure envelope.
func NewErrorResponse(messages ...string) ErrorResponse {
	if messages == nil {
		messages = []string{}
	}
	return ErrorResponse{Result: false, Errors: messages}
}

// UserResponse wraps a single user.
type UserResponse struct {
	Result bool        `json:"result"`
	User   *model.User `json:"user"`
}

// UserListResponse wraps one page of users.
type UserListResponse struct {
	Result bool          `json:"result"`
	Users  []*model.User `json:"users"`
}

// ListingResponse wraps a single listing.
type ListingResponse struct {
	Result  bool           `json:"result"`
	Listing *model.Listing `json:"listing"`
}

// ListingListResponse wraps one page of listings.
type ListingListResponse struct {
	Result   bool             `json:"result"`
	Listings []*model.Listing `json:"listings"`
}

// EnrichedListingListResponse is the gateway's public listing page.
// TotalRecords counts the listings in this page only.
type EnrichedListingListResponse struct {
	Result       bool                    `json:"result"`
	Listings     []model.EnrichedListing `json:"listings"`
	PageNum      int                     `json:"page_num"`
	PageSize     int                     `json:"page_size"`
	TotalRecords int                     `json:"total_records"`
}
