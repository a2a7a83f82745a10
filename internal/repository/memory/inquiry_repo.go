package memory

import (
	"context"
	"sort"
	"time"

	"reliableteam-site/internal/domain"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

const inquiryTable = "inquiry"

// record is the stored shape; memdb indexes string fields only.
type record struct {
	ID     string
	Status string
	Value  domain.Inquiry
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		inquiryTable: {
			Name: inquiryTable,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"status": {
					Name:    "status",
					Unique:  false,
					Indexer: &memdb.StringFieldIndex{Field: "Status"},
				},
			},
		},
	},
}

type inquiryRepo struct {
	db *memdb.MemDB
}

// NewInquiryRepository returns a process-local store used when no database
// is configured. Contents are lost on restart.
func NewInquiryRepository() (domain.InquiryRepository, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	return &inquiryRepo{db: db}, nil
}

func (r *inquiryRepo) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	txn := r.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(inquiryTable, &record{
		ID:     inquiry.ID.String(),
		Status: string(inquiry.Status),
		Value:  *inquiry,
	}); err != nil {
		return err
	}

	txn.Commit()
	return nil
}

func (r *inquiryRepo) List(ctx context.Context, filter domain.InquiryFilter) ([]domain.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txn := r.db.Txn(false)
	defer txn.Abort()

	var out []domain.Inquiry
	collect := func(it memdb.ResultIterator) {
		for obj := it.Next(); obj != nil; obj = it.Next() {
			out = append(out, obj.(*record).Value)
		}
	}

	if len(filter.Statuses) == 0 {
		it, err := txn.Get(inquiryTable, "id")
		if err != nil {
			return nil, err
		}
		collect(it)
	} else {
		for _, status := range filter.Statuses {
			it, err := txn.Get(inquiryTable, "status", string(status))
			if err != nil {
				return nil, err
			}
			collect(it)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *inquiryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txn := r.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(inquiryTable, "id", id.String())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, domain.ErrNotFound
	}

	// Stored objects must not be mutated in place
	updated := *raw.(*record)
	updated.Status = string(status)
	updated.Value.Status = status
	updated.Value.UpdatedAt = time.Now().UTC()

	if err := txn.Insert(inquiryTable, &updated); err != nil {
		return nil, err
	}
	txn.Commit()

	inq := updated.Value
	return &inq, nil
}
