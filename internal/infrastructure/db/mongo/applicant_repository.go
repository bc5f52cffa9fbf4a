package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentgate/applicant-registry/internal/core/domain"
)

const applicantCollection = "applicants"

type ApplicantRepository struct {
	col *mongo.Collection
}

func NewApplicantRepository(db *mongo.Database) *ApplicantRepository {
	return &ApplicantRepository{col: db.Collection(applicantCollection)}
}

type applicantDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	PassportNumber string             `bson:"passport_number"`
	DateOfBirth    time.Time          `bson:"date_of_birth"`
	Designation    string             `bson:"designation"`
	PPType         string             `bson:"pp_type"`
	MobileNumber   string             `bson:"mobile_number"`
	Village        string             `bson:"village"`
	Remark         string             `bson:"remark"`
	PhotoRef       string             `bson:"photo_ref"`
	CVRef          string             `bson:"cv_ref"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d applicantDoc) toDomain() *domain.Applicant {
	return &domain.Applicant{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		PassportNumber: d.PassportNumber,
		DateOfBirth:    d.DateOfBirth,
		Designation:    d.Designation,
		PPType:         d.PPType,
		MobileNumber:   d.MobileNumber,
		Village:        d.Village,
		Remark:         d.Remark,
		PhotoRef:       d.PhotoRef,
		CVRef:          d.CVRef,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// Insert commits a new applicant document. The unique index on
// passport_number rejects concurrent duplicates that slipped past the
// advisory pre-check.
func (r *ApplicantRepository) Insert(ctx context.Context, a *domain.Applicant) (*domain.Applicant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := applicantDoc{
		Name:           a.Name,
		PassportNumber: a.PassportNumber,
		DateOfBirth:    a.DateOfBirth,
		Designation:    a.Designation,
		PPType:         a.PPType,
		MobileNumber:   a.MobileNumber,
		Village:        a.Village,
		Remark:         a.Remark,
		PhotoRef:       a.PhotoRef,
		CVRef:          a.CVRef,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicatePassport
		}
		return nil, fmt.Errorf("insert applicant: %w", err)
	}

	created := *a
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ApplicantRepository) FindByPassportNumber(ctx context.Context, passportNumber string) (*domain.Applicant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc applicantDoc
	err := r.col.FindOne(ctx, bson.M{"passport_number": passportNumber}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicantNotFound
		}
		return nil, fmt.Errorf("find applicant: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID treats a malformed identifier the same as a miss: the caller
// asked for something that cannot exist.
func (r *ApplicantRepository) FindByID(ctx context.Context, id string) (*domain.Applicant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrApplicantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc applicantDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicantNotFound
		}
		return nil, fmt.Errorf("find applicant: %w", err)
	}
	return doc.toDomain(), nil
}

// Search matches query as a case-insensitive literal substring of name
// or mobile_number. The query is meta-quoted so regex operators in user
// input match literally.
func (r *ApplicantRepository) Search(ctx context.Context, query string) ([]*domain.Applicant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pattern := regexp.QuoteMeta(query)
	filter := bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
		bson.M{"mobile_number": bson.M{"$regex": pattern, "$options": "i"}},
	}}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search applicants: %w", err)
	}
	defer cur.Close(ctx)

	var results []*domain.Applicant
	for cur.Next(ctx) {
		var doc applicantDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode applicant: %w", err)
		}
		results = append(results, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("search applicants: %w", err)
	}
	return results, nil
}

// EnsureIndexes creates the unique business-key index and the search
// indexes on the applicants collection.
func (r *ApplicantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "passport_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "mobile_number", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
