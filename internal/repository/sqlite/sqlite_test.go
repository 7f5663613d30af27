package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"claimboard/internal/domain"
	"claimboard/internal/repository"
	"claimboard/internal/repository/sqlite"
)

func openRepos(t *testing.T) (repository.UserRepository, repository.ClaimHistoryRepository) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "data", "leaderboard.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	users := sqlite.NewUserRepository(db)
	history := sqlite.NewClaimHistoryRepository(db)
	if err := users.Init(ctx); err != nil {
		t.Fatalf("init users: %v", err)
	}
	if err := history.Init(ctx); err != nil {
		t.Fatalf("init history: %v", err)
	}
	return users, history
}

func newUser(name string, points int) *domain.User {
	return &domain.User{
		ID:          uuid.NewString(),
		Name:        name,
		TotalPoints: points,
	}
}

func TestUserRepository(t *testing.T) {
	Convey("Given an initialized user repository", t, func() {
		users, _ := openRepos(t)
		ctx := context.Background()

		Convey("When creating and reading back a user", func() {
			user := newUser("Rahul", 0)
			So(users.Create(ctx, user), ShouldBeNil)

			byID, err := users.GetByID(ctx, user.ID)
			So(err, ShouldBeNil)
			So(byID.Name, ShouldEqual, "Rahul")
			So(byID.TotalPoints, ShouldEqual, 0)
			So(byID.Avatar, ShouldBeNil)

			byName, err := users.GetByName(ctx, "Rahul")
			So(err, ShouldBeNil)
			So(byName.ID, ShouldEqual, user.ID)
		})

		Convey("When inserting a duplicate name", func() {
			So(users.Create(ctx, newUser("Kamal", 0)), ShouldBeNil)
			err := users.Create(ctx, newUser("Kamal", 0))

			Convey("Then the unique constraint reports a duplicate", func() {
				So(errors.Is(err, repository.ErrDuplicateName), ShouldBeTrue)
				count, err := users.Count(ctx)
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When looking up a missing user", func() {
			_, err := users.GetByID(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			_, err = users.GetByName(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When listing by points", func() {
			So(users.Create(ctx, newUser("Priya", 12)), ShouldBeNil)
			So(users.Create(ctx, newUser("Amit", 30)), ShouldBeNil)
			So(users.Create(ctx, newUser("Sneha", 5)), ShouldBeNil)

			listed, err := users.ListByPoints(ctx)
			So(err, ShouldBeNil)
			So(listed, ShouldHaveLength, 3)
			So(listed[0].Name, ShouldEqual, "Amit")
			So(listed[1].Name, ShouldEqual, "Priya")
			So(listed[2].Name, ShouldEqual, "Sneha")
		})

		Convey("When setting an avatar", func() {
			user := newUser("Pooja", 0)
			So(users.Create(ctx, user), ShouldBeNil)
			So(users.SetAvatar(ctx, user.ID, "s3://bucket/avatars/p.png"), ShouldBeNil)

			stored, err := users.GetByID(ctx, user.ID)
			So(err, ShouldBeNil)
			So(stored.Avatar, ShouldNotBeNil)
			So(*stored.Avatar, ShouldEqual, "s3://bucket/avatars/p.png")

			Convey("And a missing user reports not found", func() {
				err := users.SetAvatar(ctx, "missing", "s3://bucket/avatars/x.png")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func claimEntry(user *domain.User, points int, at time.Time) *domain.ClaimHistoryEntry {
	return &domain.ClaimHistoryEntry{
		ID:                    uuid.NewString(),
		UserID:                user.ID,
		UserName:              user.Name,
		PointsAwarded:         points,
		TotalPointsAfterClaim: user.TotalPoints,
		Timestamp:             at,
	}
}

func TestClaimHistoryRepository(t *testing.T) {
	Convey("Given repositories with one user", t, func() {
		users, history := openRepos(t)
		ctx := context.Background()
		user := newUser("Ravi", 0)
		So(users.Create(ctx, user), ShouldBeNil)

		Convey("When applying a claim", func() {
			now := time.Now().UTC()
			user.TotalPoints += 6
			user.UpdatedAt = now
			So(history.ApplyClaim(ctx, user, claimEntry(user, 6, now)), ShouldBeNil)

			Convey("Then both the total and the entry are persisted", func() {
				stored, err := users.GetByID(ctx, user.ID)
				So(err, ShouldBeNil)
				So(stored.TotalPoints, ShouldEqual, 6)

				entries, err := history.ListByUser(ctx, user.ID)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].PointsAwarded, ShouldEqual, 6)
				So(entries[0].TotalPointsAfterClaim, ShouldEqual, 6)
				So(entries[0].UserName, ShouldEqual, "Ravi")
			})
		})

		Convey("When applying a claim with an out-of-range award", func() {
			now := time.Now().UTC()
			user.TotalPoints += 11
			err := history.ApplyClaim(ctx, user, claimEntry(user, 11, now))

			Convey("Then the check constraint rejects it", func() {
				So(err, ShouldNotBeNil)
				entries, listErr := history.ListByUser(ctx, user.ID)
				So(listErr, ShouldBeNil)
				So(entries, ShouldHaveLength, 0)
			})
		})

		Convey("When many claims exist", func() {
			base := time.Now().UTC().Add(-time.Hour)
			for i := 0; i < 5; i++ {
				user.TotalPoints += 2
				user.UpdatedAt = base.Add(time.Duration(i) * time.Minute)
				entry := claimEntry(user, 2, user.UpdatedAt)
				So(history.ApplyClaim(ctx, user, entry), ShouldBeNil)
			}

			Convey("Then the recent feed honors its limit, newest first", func() {
				entries, err := history.ListRecent(ctx, 3)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].TotalPointsAfterClaim, ShouldEqual, 10)
				for i := 1; i < len(entries); i++ {
					So(entries[i].Timestamp.After(entries[i-1].Timestamp), ShouldBeFalse)
				}
			})

			Convey("And the per-user listing is unbounded and descending", func() {
				entries, err := history.ListByUser(ctx, user.ID)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 5)
				for i := 1; i < len(entries); i++ {
					So(entries[i].Timestamp.After(entries[i-1].Timestamp), ShouldBeFalse)
				}
			})

			Convey("And another user's listing stays empty", func() {
				entries, err := history.ListByUser(ctx, "someone-else")
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 0)
			})
		})
	})
}
