package models

// Timestamps are epoch milliseconds throughout, matching what the client sends and reads.

// User represents a registered marketplace participant
type User struct {
	UserID       int64   `json:"user_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	Salt         string  `json:"-"`
	SessionToken *string `json:"-"`
}

// Item represents an auction listing
type Item struct {
	ItemID      int64  `json:"item_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartingBid int64  `json:"starting_bid"`
	StartDate   int64  `json:"start_date"`
	EndDate     int64  `json:"end_date"`
	CreatorID   int64  `json:"creator_id"`
}

// Bid represents a user's bid on an item
type Bid struct {
	BidID     int64 `json:"-"`
	ItemID    int64 `json:"item_id"`
	UserID    int64 `json:"user_id"`
	Amount    int64 `json:"amount"`
	Timestamp int64 `json:"timestamp"`
}

// BidHistoryEntry is a bid joined with the bidder's display name
type BidHistoryEntry struct {
	ItemID    int64  `json:"item_id"`
	UserID    int64  `json:"user_id"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// BidHolder identifies the user holding the current highest bid
type BidHolder struct {
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ItemDetails is the full view of a single item
type ItemDetails struct {
	ItemID           int64      `json:"item_id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	StartingBid      int64      `json:"starting_bid"`
	StartDate        int64      `json:"start_date"`
	EndDate          int64      `json:"end_date"`
	CreatorID        int64      `json:"creator_id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	CurrentBid       int64      `json:"current_bid"`
	CurrentBidHolder *BidHolder `json:"current_bid_holder"`
	Categories       []Category `json:"categories"`
}

// ItemSummary is one row of a search result. CurrentBid is nil while unbid.
type ItemSummary struct {
	ItemID      int64  `json:"item_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartingBid int64  `json:"starting_bid"`
	EndDate     int64  `json:"end_date"`
	CreatorID   int64  `json:"creator_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CurrentBid  *int64 `json:"current_bid"`
}

// ProfileItem is an item listed on a user profile
type ProfileItem struct {
	ItemID      int64  `json:"item_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	EndDate     int64  `json:"end_date"`
	CreatorID   int64  `json:"creator_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// Profile aggregates a user's public information and auction activity
type Profile struct {
	UserID        int64         `json:"user_id"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Selling       []ProfileItem `json:"selling"`
	BiddingOn     []ProfileItem `json:"bidding_on"`
	AuctionsEnded []ProfileItem `json:"auctions_ended"`
}

// Question is a question asked about an item. Answer is nil until answered.
type Question struct {
	QuestionID int64   `json:"question_id"`
	Question   string  `json:"question_text"`
	Answer     *string `json:"answer_text"`
	AskedBy    int64   `json:"-"`
	ItemID     int64   `json:"-"`
	// ItemCreatorID is the creator of the item the question belongs to
	ItemCreatorID int64 `json:"-"`
}

// Category groups items for browsing
type Category struct {
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Status is a viewer-relative classification of an item's auction state
type Status string

const (
	// StatusAny lists every active auction
	StatusAny Status = ""
	// StatusOpen lists the viewer's own active auctions
	StatusOpen Status = "OPEN"
	// StatusBid lists active auctions the viewer has bid on
	StatusBid Status = "BID"
	// StatusArchive lists ended auctions for everyone
	StatusArchive Status = "ARCHIVE"
)
