package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

const (
	collectionDocuments = "documents"
	collectionSequences = "code_sequences"
)

// DocumentRepository stores active and archived documents in one collection
// partitioned by the status field, plus a sequences collection backing the
// per-category code counters.
type DocumentRepository struct {
	col  *mongo.Collection
	seqs *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{
		col:  db.Collection(collectionDocuments),
		seqs: db.Collection(collectionSequences),
	}
}

func (r *DocumentRepository) InsertActive(ctx context.Context, doc *domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *DocumentRepository) FindActiveByID(ctx context.Context, id string) (*domain.Document, error) {
	return r.findOne(ctx, bson.M{"_id": id, "status": domain.StatusActive})
}

func (r *DocumentRepository) FindActiveByCode(ctx context.Context, code string) (*domain.Document, error) {
	return r.findOne(ctx, bson.M{"code": code, "status": domain.StatusActive})
}

func (r *DocumentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Document
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepository) ListActive(ctx context.Context, category domain.Category) ([]*domain.Document, error) {
	filter := bson.M{"status": domain.StatusActive}
	if category != "" {
		filter["category"] = category
	}
	return r.list(ctx, filter, bson.D{{Key: "created_at", Value: 1}})
}

func (r *DocumentRepository) ListArchived(ctx context.Context) ([]*domain.Document, error) {
	return r.list(ctx, bson.M{"status": domain.StatusArchived}, bson.D{{Key: "archived_at", Value: 1}})
}

func (r *DocumentRepository) list(ctx context.Context, filter bson.M, sort bson.D) ([]*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []*domain.Document{}
	for cur.Next(ctx) {
		var d domain.Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, cur.Err()
}

func (r *DocumentRepository) CountActive(ctx context.Context, category domain.Category) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"status": domain.StatusActive, "category": category})
	return int(n), err
}

func (r *DocumentRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"code": code})
	return n > 0, err
}

// NextSequence atomically increments and returns the category's counter.
// Counters only ever grow, so codes are never reissued after deletions.
func (r *DocumentRepository) NextSequence(ctx context.Context, category domain.Category) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out struct {
		Value int `bson:"value"`
	}
	err := r.seqs.FindOneAndUpdate(ctx,
		bson.M{"_id": string(category)},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// Archive flips the record to archived, stamping the archival timestamp set
// by the caller. The status filter guarantees the move is one-way.
func (r *DocumentRepository) Archive(ctx context.Context, doc *domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": doc.ID, "status": domain.StatusActive},
		bson.M{"$set": bson.M{
			"status":      domain.StatusArchived,
			"archived_at": doc.ArchivedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepository) DeleteActive(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "status": domain.StatusActive})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// EnsureIndexes creates the uniqueness and lookup indexes for the ledger.
func (r *DocumentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

var _ ports.LedgerRepository = (*DocumentRepository)(nil)
