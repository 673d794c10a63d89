// Package mongodb stores notes as documents in a MongoDB collection keyed by ObjectID.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"example.com/noteapp/internal/logger"
	"example.com/noteapp/internal/notes"
)

const CollectionName = "notes"

type document struct {
	ID        primitive.ObjectID `bson:"_id"`
	Content   string             `bson:"content"`
	Important bool               `bson:"important"`
}

func (d document) note() notes.Note {
	return notes.Note{ID: d.ID.Hex(), Content: d.Content, Important: d.Important}
}

type Store struct {
	coll *mongo.Collection
}

var _ notes.Store = (*Store)(nil)

func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// NewFromClient uses the notes collection of database dbName.
func NewFromClient(client *mongo.Client, dbName string) *Store {
	return New(client.Database(dbName).Collection(CollectionName))
}

func (s *Store) ListAll(ctx context.Context) ([]notes.Note, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, unavailable(ctx, "list notes", err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable(ctx, "decode notes", err)
	}

	out := make([]notes.Note, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.note())
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*notes.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, notes.ErrMalformedID
	}

	var d document
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(ctx, "get note", err)
	}

	n := d.note()
	return &n, nil
}

func (s *Store) Create(ctx context.Context, dr notes.Draft) (notes.Note, error) {
	d := document{ID: primitive.NewObjectID(), Content: dr.Content, Important: dr.Important}
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return notes.Note{}, unavailable(ctx, "create note", err)
	}

	logger.Log(ctx).Debug(ctx, "note created", zap.String("noteID", d.ID.Hex()))
	return d.note(), nil
}

func (s *Store) UpdateByID(ctx context.Context, id string, dr notes.Draft) (*notes.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, notes.ErrMalformedID
	}

	update := bson.M{"$set": bson.M{"content": dr.Content, "important": dr.Important}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d document
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(ctx, "update note", err)
	}

	n := d.note()
	return &n, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return notes.ErrMalformedID
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return unavailable(ctx, "delete note", err)
	}

	logger.Log(ctx).Debug(ctx, "note deleted", zap.String("noteID", id), zap.Int64("deleted", res.DeletedCount))
	return nil
}

func unavailable(ctx context.Context, op string, err error) error {
	logger.Log(ctx).Error(ctx, "mongo: "+op+" failed", zap.Error(err))
	return notes.Unavailable(fmt.Errorf("%s: %w", op, err))
}
