package services

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"crowdcube/internal/models"
)

var duplicateKeyErr = mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]models.User
	creates int
	err     error
}

func newFakeUserRepo(emails ...string) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]models.User{}}
	for _, e := range emails {
		r.users[e] = models.User{"_id": primitive.NewObjectID(), "email": e}
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user models.User) (*models.InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.users[user.Email()]; ok {
		return nil, duplicateKeyErr
	}
	id := primitive.NewObjectID()
	user["_id"] = id
	r.users[user.Email()] = user
	r.creates++
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (r *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), r.err
}

type fakeCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[primitive.ObjectID]models.Campaign
	lastLimit int64
	lastNow   string
	err       error
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: map[primitive.ObjectID]models.Campaign{}}
}

func (r *fakeCampaignRepo) add(c models.Campaign) primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	c["_id"] = id
	r.campaigns[id] = c
	return id
}

func (r *fakeCampaignRepo) Create(ctx context.Context, c models.Campaign) (*models.InsertResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	id := r.add(c)
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *fakeCampaignRepo) list(match func(models.Campaign) bool) []models.Campaign {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Campaign{}
	for _, c := range r.campaigns {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline() < out[j].Deadline() })
	return out
}

func (r *fakeCampaignRepo) FindAll(ctx context.Context) ([]models.Campaign, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.list(func(models.Campaign) bool { return true }), nil
}

func (r *fakeCampaignRepo) FindRunning(ctx context.Context, now string, limit int64) ([]models.Campaign, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.lastNow, r.lastLimit = now, limit
	out := r.list(func(c models.Campaign) bool { return c.Deadline() > now })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCampaignRepo) FindByOwner(ctx context.Context, email string) ([]models.Campaign, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.list(func(c models.Campaign) bool { return c.Owner() == email }), nil
}

func (r *fakeCampaignRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.campaigns[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return c, nil
}

func (r *fakeCampaignRepo) Update(ctx context.Context, id primitive.ObjectID, owner string, fields bson.M) (*models.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.campaigns[id]
	if !ok || c.Owner() != owner {
		return &models.UpdateResult{Acknowledged: true}, nil
	}
	modified := int64(0)
	for k, v := range fields {
		if c[k] != v {
			modified = 1
		}
		c[k] = v
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
}

func (r *fakeCampaignRepo) IncrementFundBalance(ctx context.Context, id primitive.ObjectID, delta interface{}) (*models.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.campaigns[id]
	if !ok {
		return &models.UpdateResult{Acknowledged: true}, nil
	}
	switch d := delta.(type) {
	case int64:
		cur, _ := c["fundBalance"].(int64)
		c["fundBalance"] = cur + d
	case float64:
		cur, _ := c["fundBalance"].(float64)
		c["fundBalance"] = cur + d
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *fakeCampaignRepo) Delete(ctx context.Context, id primitive.ObjectID, owner string) (*models.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.campaigns[id]
	if !ok || c.Owner() != owner {
		return &models.DeleteResult{Acknowledged: true}, nil
	}
	delete(r.campaigns, id)
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (r *fakeCampaignRepo) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.campaigns)), r.err
}

type fakeDonationRepo struct {
	mu        sync.Mutex
	donations []models.Donation
	err       error
}

func (r *fakeDonationRepo) Create(ctx context.Context, d models.Donation) (*models.InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	id := primitive.NewObjectID()
	d["_id"] = id
	r.donations = append(r.donations, d)
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *fakeDonationRepo) FindByDonor(ctx context.Context, email string) ([]models.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Donation{}
	for _, d := range r.donations {
		if d.Donor() == email {
			out = append(out, d)
		}
	}
	return out, nil
}
