package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"auctionary/internal/auctionerrors"
	model "auctionary/internal/models"
)

const profileItemColumns = `
	SELECT i.item_id, i.name, i.description, i.end_date, i.creator_id, u.first_name, u.last_name
	FROM items i
	JOIN users u ON u.user_id = i.creator_id`

// CreateItem inserts a new listing and returns its id
func (r *SQLRepo) CreateItem(ctx context.Context, item model.Item) (int64, error) {
	var id int64
	err := r.db.conn().queryRow(ctx, `
		INSERT INTO items (name, description, starting_bid, start_date, end_date, creator_id)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING item_id`,
		item.Name, item.Description, item.StartingBid, item.StartDate, item.EndDate, item.CreatorID,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("create item: %w", auctionerrors.ErrUserNotFound)
		}
		return 0, fmt.Errorf("create item: %w", err)
	}
	return id, nil
}

// GetItem returns the stored listing
func (r *SQLRepo) GetItem(ctx context.Context, itemID int64) (model.Item, error) {
	var item model.Item
	err := r.db.conn().queryRow(ctx, `
		SELECT item_id, name, description, starting_bid, start_date, end_date, creator_id
		FROM items WHERE item_id = ?`, itemID,
	).Scan(&item.ItemID, &item.Name, &item.Description, &item.StartingBid,
		&item.StartDate, &item.EndDate, &item.CreatorID)
	if err != nil {
		if isNoRows(err) {
			return model.Item{}, fmt.Errorf("get item %d: %w", itemID, auctionerrors.ErrItemNotFound)
		}
		return model.Item{}, fmt.Errorf("get item %d: %w", itemID, err)
	}
	return item, nil
}

// GetItemDetails returns the listing with its creator and current bid holder.
// Categories are not filled in.
func (r *SQLRepo) GetItemDetails(ctx context.Context, itemID int64) (model.ItemDetails, error) {
	c := r.db.conn()

	var d model.ItemDetails
	err := c.queryRow(ctx, `
		SELECT i.item_id, i.name, i.description, i.starting_bid, i.start_date, i.end_date,
		       i.creator_id, u.first_name, u.last_name
		FROM items i
		JOIN users u ON u.user_id = i.creator_id
		WHERE i.item_id = ?`, itemID,
	).Scan(&d.ItemID, &d.Name, &d.Description, &d.StartingBid, &d.StartDate, &d.EndDate,
		&d.CreatorID, &d.FirstName, &d.LastName)
	if err != nil {
		if isNoRows(err) {
			return model.ItemDetails{}, fmt.Errorf("get item details %d: %w", itemID, auctionerrors.ErrItemNotFound)
		}
		return model.ItemDetails{}, fmt.Errorf("get item details %d: %w", itemID, err)
	}

	var (
		amount int64
		holder model.BidHolder
	)
	err = c.queryRow(ctx, `
		SELECT b.amount, b.user_id, u.first_name, u.last_name
		FROM bids b
		JOIN users u ON u.user_id = b.user_id
		WHERE b.item_id = ?
		ORDER BY b.amount DESC, b.bid_id ASC
		LIMIT 1`, itemID,
	).Scan(&amount, &holder.UserID, &holder.FirstName, &holder.LastName)
	switch {
	case err == nil:
		d.CurrentBid = amount
		d.CurrentBidHolder = &holder
	case isNoRows(err):
		d.CurrentBid = d.StartingBid
	default:
		return model.ItemDetails{}, fmt.Errorf("get highest bid for item %d: %w", itemID, err)
	}

	return d, nil
}

// SearchItems returns one page of listings matching filter, ordered by item id
func (r *SQLRepo) SearchItems(ctx context.Context, filter SearchFilter) ([]model.ItemSummary, error) {
	var (
		where []string
		args  []any
	)

	switch filter.Status {
	case model.StatusOpen:
		where = append(where, "i.creator_id = ?", "i.end_date > ?")
		args = append(args, filter.ViewerID, filter.Now)
	case model.StatusBid:
		where = append(where,
			"EXISTS (SELECT 1 FROM bids vb WHERE vb.item_id = i.item_id AND vb.user_id = ?)",
			"i.end_date > ?")
		args = append(args, filter.ViewerID, filter.Now)
	case model.StatusArchive:
		where = append(where, "i.end_date <= ?")
		args = append(args, filter.Now)
	case model.StatusAny:
		where = append(where, "i.end_date > ?")
		args = append(args, filter.Now)
	default:
		return nil, fmt.Errorf("search items: %w", auctionerrors.ErrInvalidStatus)
	}

	if filter.Query != "" {
		pattern := "%" + escapeLike(filter.Query) + "%"
		where = append(where, `(i.name LIKE ? ESCAPE '\' OR i.description LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	if filter.CategoryID != 0 {
		where = append(where,
			"EXISTS (SELECT 1 FROM item_categories ic WHERE ic.item_id = i.item_id AND ic.category_id = ?)")
		args = append(args, filter.CategoryID)
	}

	var b strings.Builder
	b.WriteString(`
		SELECT i.item_id, i.name, i.description, i.starting_bid, i.end_date, i.creator_id,
		       u.first_name, u.last_name,
		       (SELECT MAX(b.amount) FROM bids b WHERE b.item_id = i.item_id) AS current_bid
		FROM items i
		JOIN users u ON u.user_id = i.creator_id
		WHERE `)
	b.WriteString(strings.Join(where, " AND "))
	b.WriteString(" ORDER BY i.item_id ASC LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.conn().query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	items := []model.ItemSummary{}
	for rows.Next() {
		var (
			s       model.ItemSummary
			current sql.NullInt64
		)
		if err := rows.Scan(&s.ItemID, &s.Name, &s.Description, &s.StartingBid, &s.EndDate,
			&s.CreatorID, &s.FirstName, &s.LastName, &current); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		if current.Valid {
			v := current.Int64
			s.CurrentBid = &v
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}
	return items, nil
}

// ListSellingItems returns the user's own auctions that are still running
func (r *SQLRepo) ListSellingItems(ctx context.Context, userID, now int64) ([]model.ProfileItem, error) {
	return r.listProfileItems(ctx, "selling",
		profileItemColumns+` WHERE i.creator_id = ? AND i.end_date > ? ORDER BY i.item_id ASC`,
		userID, now)
}

// ListBiddingItems returns running auctions the user has bid on
func (r *SQLRepo) ListBiddingItems(ctx context.Context, userID, now int64) ([]model.ProfileItem, error) {
	return r.listProfileItems(ctx, "bidding",
		profileItemColumns+`
		WHERE EXISTS (SELECT 1 FROM bids b WHERE b.item_id = i.item_id AND b.user_id = ?)
		  AND i.end_date > ?
		ORDER BY i.item_id ASC`,
		userID, now)
}

// ListEndedItems returns finished auctions the user created or bid on
func (r *SQLRepo) ListEndedItems(ctx context.Context, userID, now int64) ([]model.ProfileItem, error) {
	return r.listProfileItems(ctx, "ended",
		profileItemColumns+`
		WHERE i.end_date <= ?
		  AND (i.creator_id = ? OR EXISTS (SELECT 1 FROM bids b WHERE b.item_id = i.item_id AND b.user_id = ?))
		ORDER BY i.item_id ASC`,
		now, userID, userID)
}

func (r *SQLRepo) listProfileItems(ctx context.Context, kind, query string, args ...any) ([]model.ProfileItem, error) {
	rows, err := r.db.conn().query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s items: %w", kind, err)
	}
	defer rows.Close()

	items := []model.ProfileItem{}
	for rows.Next() {
		var p model.ProfileItem
		if err := rows.Scan(&p.ItemID, &p.Name, &p.Description, &p.EndDate, &p.CreatorID,
			&p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("scan %s item: %w", kind, err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s items: %w", kind, err)
	}
	return items, nil
}
