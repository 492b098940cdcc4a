package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/fleetscope/fleetscope/pkg/domain/interfaces"
	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	datasetsCollection = "datasets"
	devicesCollection  = "devices"

	// Document IDs
	activeDatasetDocID = "active"
)

// Firestore implements Repository with Firestore. Each load is written
// under datasets/{loadID}/devices and an "active" pointer document is
// swapped last, so readers never observe a half-written dataset.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Probe the connection so a bad project ID or missing permission fails
	// at startup instead of on the first dashboard request
	_, err = client.Collection(datasetsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		// Other codes (e.g. NotFound on a fresh project) are fine
		logger.Debug("Firestore connection probe returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{client: client}, nil
}

// activeDataset is the pointer document naming the current load
type activeDataset struct {
	LoadID string `firestore:"load_id"`
	Count  int    `firestore:"count"`
}

// deviceDoc is the Firestore shape of a device record. The domain Date
// type hides its time value, so the document stores a plain timestamp.
type deviceDoc struct {
	ID          int       `firestore:"id"`
	Name        string    `firestore:"name"`
	Region      string    `firestore:"region"`
	Country     string    `firestore:"country"`
	ProductType string    `firestore:"product_type"`
	DeviceType  string    `firestore:"device_type"`
	Status      string    `firestore:"status"`
	LastSeen    time.Time `firestore:"last_seen"`
}

func toDeviceDoc(r *model.DeviceRecord) *deviceDoc {
	return &deviceDoc{
		ID:          r.ID.Int(),
		Name:        r.Name,
		Region:      r.Region,
		Country:     r.Country,
		ProductType: r.ProductType,
		DeviceType:  r.DeviceType,
		Status:      r.Status.String(),
		LastSeen:    r.LastSeen.Time(),
	}
}

func (d *deviceDoc) toRecord() *model.DeviceRecord {
	return &model.DeviceRecord{
		ID:          types.DeviceID(d.ID),
		Name:        d.Name,
		Region:      d.Region,
		Country:     d.Country,
		ProductType: d.ProductType,
		DeviceType:  d.DeviceType,
		Status:      types.ComplianceStatus(d.Status),
		LastSeen:    model.DateOf(d.LastSeen),
	}
}

// ReplaceDevices writes the batch under a new load and swaps the pointer
func (f *Firestore) ReplaceDevices(ctx context.Context, loadID types.LoadID, records []*model.DeviceRecord) error {
	copied, err := validateBatch(loadID, records)
	if err != nil {
		return err
	}

	loadDoc := f.client.Collection(datasetsCollection).Doc(loadID.String())
	bw := f.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(copied))
	for _, r := range copied {
		job, err := bw.Set(loadDoc.Collection(devicesCollection).Doc(r.ID.String()), toDeviceDoc(r))
		if err != nil {
			bw.End()
			return goerr.Wrap(err, "failed to enqueue device write",
				goerr.V("loadID", loadID),
				goerr.V("id", r.ID))
		}
		jobs = append(jobs, job)
	}
	bw.End()

	// Server-side write failures (quota, permission, contention) surface
	// only through the job results. A single failed write abandons the
	// batch so the prior dataset stays active.
	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return goerr.Wrap(err, "failed to write device batch",
				goerr.V("loadID", loadID),
				goerr.V("id", copied[i].ID))
		}
	}

	// Swap the active pointer only after every record landed
	_, err = f.client.Collection(datasetsCollection).Doc(activeDatasetDocID).Set(ctx, &activeDataset{
		LoadID: loadID.String(),
		Count:  len(copied),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to activate dataset",
			goerr.V("loadID", loadID))
	}

	ctxlog.From(ctx).Info("Replaced device dataset",
		"loadID", loadID,
		"count", len(copied),
	)
	return nil
}

// ListDevices reads the active dataset
func (f *Firestore) ListDevices(ctx context.Context) ([]*model.DeviceRecord, error) {
	loadID, err := f.ActiveLoad(ctx)
	if err != nil {
		return nil, err
	}
	if loadID == "" {
		return nil, nil
	}

	iter := f.client.Collection(datasetsCollection).
		Doc(loadID.String()).
		Collection(devicesCollection).
		Documents(ctx)
	defer iter.Stop()

	var records []*model.DeviceRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate devices",
				goerr.V("loadID", loadID))
		}

		var d deviceDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode device record",
				goerr.V("loadID", loadID),
				goerr.V("doc", doc.Ref.ID))
		}
		records = append(records, d.toRecord())
	}
	return records, nil
}

// ActiveLoad reads the active dataset pointer
func (f *Firestore) ActiveLoad(ctx context.Context) (types.LoadID, error) {
	doc, err := f.client.Collection(datasetsCollection).Doc(activeDatasetDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", nil
		}
		return "", goerr.Wrap(err, "failed to read active dataset pointer")
	}

	var active activeDataset
	if err := doc.DataTo(&active); err != nil {
		return "", goerr.Wrap(err, "failed to decode active dataset pointer")
	}
	return types.LoadID(active.LoadID), nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if err := f.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
