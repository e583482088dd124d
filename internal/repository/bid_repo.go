package repository

import (
	"context"
	"fmt"

	"auctionary/internal/auctionerrors"
	model "auctionary/internal/models"
)

// RecordBid appends a bid if it is strictly above the item's current bid.
// The comparison and the insert happen in one statement inside a write
// transaction, so two racing bidders cannot both beat the same amount.
func (r *SQLRepo) RecordBid(ctx context.Context, bid model.Bid) (int64, error) {
	var id int64

	err := r.db.WithTx(ctx, func(c conn) error {
		if c.d.lockItem != "" {
			var locked int64
			if err := c.queryRow(ctx, c.d.lockItem, bid.ItemID).Scan(&locked); err != nil {
				if isNoRows(err) {
					return auctionerrors.ErrItemNotFound
				}
				return err
			}
		}

		err := c.queryRow(ctx, `
			INSERT INTO bids (item_id, user_id, amount, timestamp)
			SELECT i.item_id, ?, ?, ?
			FROM items i
			WHERE i.item_id = ?
			  AND ? > COALESCE((SELECT MAX(b.amount) FROM bids b WHERE b.item_id = i.item_id), i.starting_bid)
			RETURNING bid_id`,
			bid.UserID, bid.Amount, bid.Timestamp, bid.ItemID, bid.Amount,
		).Scan(&id)
		switch {
		case err == nil:
			return nil
		case isUniqueViolation(err):
			return auctionerrors.ErrBidTooLow
		case !isNoRows(err):
			return err
		}

		// nothing inserted: either the item is gone or the amount lost
		var exists int
		if err := c.queryRow(ctx, `SELECT 1 FROM items WHERE item_id = ?`, bid.ItemID).Scan(&exists); err != nil {
			if isNoRows(err) {
				return auctionerrors.ErrItemNotFound
			}
			return err
		}
		return auctionerrors.ErrBidTooLow
	})
	if err != nil {
		return 0, fmt.Errorf("record bid for item %d: %w", bid.ItemID, err)
	}
	return id, nil
}

// GetHighestBid returns the highest bid for an item
func (r *SQLRepo) GetHighestBid(ctx context.Context, itemID int64) (model.Bid, error) {
	var b model.Bid
	err := r.db.conn().queryRow(ctx, `
		SELECT bid_id, item_id, user_id, amount, timestamp
		FROM bids
		WHERE item_id = ?
		ORDER BY amount DESC, bid_id ASC
		LIMIT 1`, itemID,
	).Scan(&b.BidID, &b.ItemID, &b.UserID, &b.Amount, &b.Timestamp)
	if err != nil {
		if isNoRows(err) {
			return model.Bid{}, fmt.Errorf("get highest bid for item %d: %w", itemID, auctionerrors.ErrNoBids)
		}
		return model.Bid{}, fmt.Errorf("get highest bid for item %d: %w", itemID, err)
	}
	return b, nil
}

// GetBidHistory returns every bid on an item with the bidder's name, highest first
func (r *SQLRepo) GetBidHistory(ctx context.Context, itemID int64) ([]model.BidHistoryEntry, error) {
	rows, err := r.db.conn().query(ctx, `
		SELECT b.item_id, b.user_id, b.amount, b.timestamp, u.first_name, u.last_name
		FROM bids b
		JOIN users u ON u.user_id = b.user_id
		WHERE b.item_id = ?
		ORDER BY b.amount DESC, b.bid_id ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("get bid history for item %d: %w", itemID, err)
	}
	defer rows.Close()

	history := []model.BidHistoryEntry{}
	for rows.Next() {
		var e model.BidHistoryEntry
		if err := rows.Scan(&e.ItemID, &e.UserID, &e.Amount, &e.Timestamp, &e.FirstName, &e.LastName); err != nil {
			return nil, fmt.Errorf("scan bid history row: %w", err)
		}
		history = append(history, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bid history: %w", err)
	}
	return history, nil
}
