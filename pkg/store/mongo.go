package store

import (
	"context"
	stderrors "errors"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/street"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string // default "mongodb://localhost:27017"
	Database   string // default "skyline"
	Collection string // default "streets"
}

// MongoStore keeps one document per street, keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type streetDoc struct {
	Name      string    `bson:"_id"`
	Street    string    `bson:"street"` // JSON street file
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and checks the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "skyline"
	}
	if cfg.Collection == "" {
		cfg.Collection = "streets"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (m *MongoStore) Get(ctx context.Context, name string) (*street.Street, error) {
	if err := errors.ValidateStreetName(name); err != nil {
		return nil, err
	}
	var doc streetDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "mongo get %q", name)
	}
	return decode(name, []byte(doc.Street))
}

func (m *MongoStore) Put(ctx context.Context, name string, s *street.Street) error {
	if err := errors.ValidateStreetName(name); err != nil {
		return err
	}
	data, err := encode(name, s)
	if err != nil {
		return err
	}
	doc := streetDoc{Name: name, Street: string(data), UpdatedAt: time.Now().UTC()}
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "mongo put %q", name)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateStreetName(name); err != nil {
		return err
	}
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "mongo delete %q", name)
	}
	if res.DeletedCount == 0 {
		return notFound(name)
	}
	return nil
}

func (m *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := m.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "mongo list")
	}
	var docs []struct {
		Name string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "mongo list")
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	slices.Sort(names)
	return names, nil
}

// Close disconnects from the server.
func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
