package perftests

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	model "auctionary/internal/models"
	"auctionary/internal/repository"

	bidding "auctionary/internal/biddingService"
)

// fixture is a seeded database with a bidding service on top
type fixture struct {
	repo    *repository.SQLRepo
	svc     *bidding.BiddingService
	sellers []int64
	bidders []int64
	items   []int64
}

// setupFixture creates a file-backed database with one seller per item and a pool of bidders
func setupFixture(b *testing.B, numItems, numBidders int) *fixture {
	b.Helper()
	ctx := context.Background()

	db, err := repository.Open(ctx, repository.DefaultConfig(filepath.Join(b.TempDir(), "bench.db")))
	if err != nil {
		b.Fatalf("failed to open database: %v", err)
	}
	b.Cleanup(func() { db.Close() })
	if err := db.Migrate(ctx); err != nil {
		b.Fatalf("failed to migrate: %v", err)
	}

	f := &fixture{repo: repository.NewSQLRepo(db)}
	f.svc = bidding.NewBiddingService(f.repo, f.repo)

	for i := 0; i < numBidders; i++ {
		f.bidders = append(f.bidders, f.newUser(b, fmt.Sprintf("bidder_%d", i)))
	}
	end := time.Now().Add(24 * time.Hour).UnixMilli()
	for i := 0; i < numItems; i++ {
		seller := f.newUser(b, fmt.Sprintf("seller_%d", i))
		f.sellers = append(f.sellers, seller)

		id, err := f.repo.CreateItem(ctx, model.Item{
			Name:        fmt.Sprintf("Benchmark item %d", i),
			Description: "Load test item",
			StartingBid: 50,
			StartDate:   time.Now().UnixMilli(),
			EndDate:     end,
			CreatorID:   seller,
		})
		if err != nil {
			b.Fatalf("failed to create item: %v", err)
		}
		f.items = append(f.items, id)
	}
	return f
}

func (f *fixture) newUser(b *testing.B, name string) int64 {
	b.Helper()
	id, err := f.repo.CreateUser(context.Background(), model.User{
		FirstName:    name,
		LastName:     "Bench",
		Email:        name + "@bench.example.com",
		PasswordHash: "hash",
		Salt:         "salt",
	})
	if err != nil {
		b.Fatalf("failed to create user %s: %v", name, err)
	}
	return id
}
