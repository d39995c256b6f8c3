package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

const collectionLogs = "logs"

type DiveLogRepository struct {
	col *mongo.Collection
}

func NewDiveLogRepository(db *mongo.Database) *DiveLogRepository {
	return &DiveLogRepository{col: db.Collection(collectionLogs)}
}

// diveLogDoc stores the owner reference under "user" without omitempty: an
// orphaned log carries an explicit null, not a missing field.
type diveLogDoc struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty"`
	StartTime         time.Time           `bson:"startTime"`
	EndTime           time.Time           `bson:"endTime"`
	MaxDepth          float64             `bson:"maxDepth"`
	AvgDepth          *float64            `bson:"avgDepth,omitempty"`
	WaterTemperature  *float64            `bson:"waterTemperature,omitempty"`
	AirTemperature    *float64            `bson:"airTemperature,omitempty"`
	TankMaterial      *string             `bson:"tankMaterial,omitempty"`
	TankVolume        *float64            `bson:"tankVolume,omitempty"`
	TankStartPressure *float64            `bson:"tankStartPressure,omitempty"`
	TankEndPressure   *float64            `bson:"tankEndPressure,omitempty"`
	WaterBody         *string             `bson:"waterBody,omitempty"`
	Location          string              `bson:"location"`
	Visibility        *string             `bson:"visibility,omitempty"`
	AdditionalInfo    *string             `bson:"additionalInfo,omitempty"`
	User              *primitive.ObjectID `bson:"user"`
	CreatedAt         time.Time           `bson:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt"`
}

func (d *diveLogDoc) toDomain() *domain.DiveLog {
	l := &domain.DiveLog{
		ID:                d.ID.Hex(),
		StartTime:         d.StartTime,
		EndTime:           d.EndTime,
		MaxDepth:          d.MaxDepth,
		AvgDepth:          d.AvgDepth,
		WaterTemperature:  d.WaterTemperature,
		AirTemperature:    d.AirTemperature,
		TankVolume:        d.TankVolume,
		TankStartPressure: d.TankStartPressure,
		TankEndPressure:   d.TankEndPressure,
		WaterBody:         d.WaterBody,
		Location:          d.Location,
		Visibility:        d.Visibility,
		AdditionalInfo:    d.AdditionalInfo,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.TankMaterial != nil {
		m := domain.TankMaterial(*d.TankMaterial)
		l.TankMaterial = &m
	}
	if d.User != nil {
		id := d.User.Hex()
		l.OwnerID = &id
	}
	return l
}

func logToDoc(l *domain.DiveLog) (*diveLogDoc, error) {
	d := &diveLogDoc{
		StartTime:         l.StartTime,
		EndTime:           l.EndTime,
		MaxDepth:          l.MaxDepth,
		AvgDepth:          l.AvgDepth,
		WaterTemperature:  l.WaterTemperature,
		AirTemperature:    l.AirTemperature,
		TankVolume:        l.TankVolume,
		TankStartPressure: l.TankStartPressure,
		TankEndPressure:   l.TankEndPressure,
		WaterBody:         l.WaterBody,
		Location:          l.Location,
		Visibility:        l.Visibility,
		AdditionalInfo:    l.AdditionalInfo,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
	if l.TankMaterial != nil {
		m := string(*l.TankMaterial)
		d.TankMaterial = &m
	}
	if l.OwnerID != nil {
		oid, err := primitive.ObjectIDFromHex(*l.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("invalid owner id %q", *l.OwnerID)
		}
		d.User = &oid
	}
	return d, nil
}

func (r *DiveLogRepository) Create(ctx context.Context, l *domain.DiveLog) (*domain.DiveLog, error) {
	doc, err := logToDoc(l)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert dive log: %w", err)
	}

	created := *l
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *DiveLogRepository) FindByID(ctx context.Context, id string) (*domain.DiveLog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDiveLogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d diveLogDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDiveLogNotFound
		}
		return nil, fmt.Errorf("find dive log: %w", err)
	}
	return d.toDomain(), nil
}

// ListOwned lists logs owned by ownerID, pushing the ownership restriction
// into the query (the basic_user path).
func (r *DiveLogRepository) ListOwned(ctx context.Context, ownerID string, q ports.LogQuery) ([]*domain.DiveLog, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []*domain.DiveLog{}, nil
	}

	filter := timeFilter(q)
	filter["user"] = oid
	return r.find(ctx, filter, q)
}

// List lists logs with only the time filter applied; role-dependent
// narrowing happens in the service (the admin/super_admin path).
func (r *DiveLogRepository) List(ctx context.Context, q ports.LogQuery) ([]*domain.DiveLog, error) {
	return r.find(ctx, timeFilter(q), q)
}

func (r *DiveLogRepository) find(ctx context.Context, filter bson.M, q ports.LogQuery) ([]*domain.DiveLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(sortSpec(q.SortBy, q.SortDesc))
	if q.MaxAmount > 0 {
		opts.SetLimit(int64(q.MaxAmount))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list dive logs: %w", err)
	}
	defer cur.Close(ctx)

	var logs []*domain.DiveLog
	for cur.Next(ctx) {
		var d diveLogDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode dive log: %w", err)
		}
		logs = append(logs, d.toDomain())
	}
	return logs, cur.Err()
}

func (r *DiveLogRepository) Update(ctx context.Context, l *domain.DiveLog) (*domain.DiveLog, error) {
	oid, err := primitive.ObjectIDFromHex(l.ID)
	if err != nil {
		return nil, domain.ErrDiveLogNotFound
	}
	doc, err := logToDoc(l)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update dive log: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrDiveLogNotFound
	}

	updated := *l
	return &updated, nil
}

func (r *DiveLogRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDiveLogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete dive log: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDiveLogNotFound
	}
	return nil
}

// DetachOwner nulls the owner reference on every log owned by ownerID.
func (r *DiveLogRepository) DetachOwner(ctx context.Context, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateMany(ctx, bson.M{"user": oid}, bson.M{"$set": bson.M{"user": nil}})
	if err != nil {
		return fmt.Errorf("detach owner: %w", err)
	}
	return nil
}

// EnsureIndexes creates the owner index used by the ownership-scoped queries.
func (r *DiveLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}},
	})
	return err
}

// timeFilter builds the inclusive startTime range filter.
func timeFilter(q ports.LogQuery) bson.M {
	filter := bson.M{}
	bounds := bson.M{}
	if q.StartFrom != nil {
		bounds["$gte"] = *q.StartFrom
	}
	if q.StartTo != nil {
		bounds["$lte"] = *q.StartTo
	}
	if len(bounds) > 0 {
		filter["startTime"] = bounds
	}
	return filter
}
