package repositories

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"crowdcube/internal/database"
	"crowdcube/internal/models"
)

var mongoURI string

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not start mongodb container")
	}
	mongoURI, err = container.ConnectionString(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not read mongodb connection string")
	}

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Could not teardown mongodb container")
	}
	os.Exit(code)
}

func newTestDB(t *testing.T) database.Service {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	ctx := context.Background()
	dbName := fmt.Sprintf("crowdcube_test_%d", time.Now().UnixNano())
	db, err := database.New(ctx, mongoURI, dbName)
	require.NoError(t, err)
	require.NoError(t, db.EnsureIndexes(ctx))

	t.Cleanup(func() {
		_ = db.Client().Database(dbName).Drop(context.Background())
		_ = db.Close(context.Background())
	})
	return db
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Create and Find User", func(t *testing.T) {
		res, err := userRepo.Create(ctx, models.User{"email": "test@example.com", "name": "Tester"})
		require.NoError(t, err)
		assert.True(t, res.Acknowledged)
		assert.IsType(t, primitive.ObjectID{}, res.InsertedID)

		found, err := userRepo.FindByEmail(ctx, "test@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Tester", found["name"])
	})

	t.Run("Duplicate email is rejected by the index", func(t *testing.T) {
		_, err := userRepo.Create(ctx, models.User{"email": "twice@example.com"})
		require.NoError(t, err)

		_, err = userRepo.Create(ctx, models.User{"email": "twice@example.com"})
		require.Error(t, err)
		assert.True(t, mongo.IsDuplicateKeyError(err))

		count, err := db.Collection(database.UsersCollection).CountDocuments(ctx, bson.M{"email": "twice@example.com"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("Missing user", func(t *testing.T) {
		_, err := userRepo.FindByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})
}

func TestCampaignRunningLimitAndDeadline(t *testing.T) {
	db := newTestDB(t)
	repo := NewCampaignRepository(db)
	ctx := context.Background()

	now := "2025-06-01T00:00:00.000Z"
	for i := 0; i < 10; i++ {
		_, err := repo.Create(ctx, models.Campaign{"email": "owner@example.com", "deadline": fmt.Sprintf("2025-07-%02dT00:00:00.000Z", i+1)})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, models.Campaign{"email": "owner@example.com", "deadline": "2025-05-01T00:00:00.000Z"})
	require.NoError(t, err)

	running, err := repo.FindRunning(ctx, now, 8)
	require.NoError(t, err)
	assert.Len(t, running, 8)
	for _, c := range running {
		assert.Greater(t, c.Deadline(), now)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 11)
}

func TestCampaignUpdateKeepsIdentifier(t *testing.T) {
	db := newTestDB(t)
	repo := NewCampaignRepository(db)
	ctx := context.Background()

	res, err := repo.Create(ctx, models.Campaign{"email": "owner@example.com", "title": "Old"})
	require.NoError(t, err)
	id := res.InsertedID.(primitive.ObjectID)

	upd, err := repo.Update(ctx, id, "owner@example.com", bson.M{"title": "New"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, upd.MatchedCount)
	assert.EqualValues(t, 1, upd.ModifiedCount)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", got["title"])
	assert.Equal(t, id, got["_id"])

	upd, err = repo.Update(ctx, primitive.NewObjectID(), "owner@example.com", bson.M{"title": "New"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, upd.MatchedCount)
	assert.EqualValues(t, 0, upd.ModifiedCount)

	upd, err = repo.Update(ctx, id, "intruder@example.com", bson.M{"title": "Hacked"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, upd.MatchedCount)
}

func TestCampaignConcurrentIncrements(t *testing.T) {
	db := newTestDB(t)
	repo := NewCampaignRepository(db)
	ctx := context.Background()

	res, err := repo.Create(ctx, models.Campaign{"email": "owner@example.com", "fundBalance": int64(100)})
	require.NoError(t, err)
	id := res.InsertedID.(primitive.ObjectID)

	var wg sync.WaitGroup
	for _, delta := range []int64{10, 5} {
		wg.Add(1)
		go func(delta int64) {
			defer wg.Done()
			_, err := repo.IncrementFundBalance(ctx, id, delta)
			assert.NoError(t, err)
		}(delta)
	}
	wg.Wait()

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 115, got["fundBalance"])
}

func TestCampaignDeleteLeavesDonations(t *testing.T) {
	db := newTestDB(t)
	campaigns := NewCampaignRepository(db)
	donations := NewDonationRepository(db)
	ctx := context.Background()

	keep, err := campaigns.Create(ctx, models.Campaign{"email": "owner@example.com", "title": "Keep"})
	require.NoError(t, err)
	gone, err := campaigns.Create(ctx, models.Campaign{"email": "owner@example.com", "title": "Gone"})
	require.NoError(t, err)
	goneID := gone.InsertedID.(primitive.ObjectID)

	_, err = donations.Create(ctx, models.Donation{"email": "donor@example.com", "campaignRef": goneID.Hex(), "amount": 20})
	require.NoError(t, err)

	del, err := campaigns.Delete(ctx, goneID, "owner@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)

	_, err = campaigns.FindByID(ctx, goneID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	_, err = campaigns.FindByID(ctx, keep.InsertedID.(primitive.ObjectID))
	assert.NoError(t, err)

	left, err := donations.FindByDonor(ctx, "donor@example.com")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestFindByOwnerAndDonorReturnEmptySlices(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	campaigns, err := NewCampaignRepository(db).FindByOwner(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, campaigns)
	assert.Empty(t, campaigns)

	donations, err := NewDonationRepository(db).FindByDonor(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, donations)
	assert.Empty(t, donations)
}
