package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Skotchmaster/printshop/internal/mailer"
	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/mykafka"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/testutil"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event mykafka.Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	ev, _ := event.(mykafka.Event)
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: ev})
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event.Type)
	}
	return out
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (n *fakeNotifier) Enqueue(_ context.Context, msg mailer.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

type fakeIndex struct {
	docs    map[uuid.UUID]*models.Product
	deleted []uuid.UUID
	fail    bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[uuid.UUID]*models.Product{}}
}

func (x *fakeIndex) Upsert(_ context.Context, p *models.Product) error {
	x.docs[p.ID] = p
	return nil
}

func (x *fakeIndex) Delete(_ context.Context, id uuid.UUID) error {
	delete(x.docs, id)
	x.deleted = append(x.deleted, id)
	return nil
}

func (x *fakeIndex) Search(_ context.Context, _ string, _, _ int) (int64, []uuid.UUID, error) {
	if x.fail {
		return 0, nil, errors.New("index unavailable")
	}
	ids := make([]uuid.UUID, 0, len(x.docs))
	for id := range x.docs {
		ids = append(ids, id)
	}
	return int64(len(ids)), ids, nil
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	return &repo.GormRepo{DB: testutil.OpenDB(t)}
}

func newTestNode(t *testing.T) *snowflake.Node {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func createUser(t *testing.T, r *repo.GormRepo, email, role string) *models.User {
	t.Helper()
	u := &models.User{Name: "User " + email, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, r.CreateUserIfNotExists(context.Background(), u))
	return u
}

func createProduct(t *testing.T, r *repo.GormRepo, sku string, price int64) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        "Name plank " + sku,
		Description: "Layered 3D printed name plank",
		Price:       decimal.NewFromInt(price),
		SKU:         sku,
		Category:    "Planks",
		Images:      datatypes.JSONSlice[models.ProductImage]{{URL: "https://img/" + sku + ".png"}},
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}
