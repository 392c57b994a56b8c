package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"neohand/internal/domain/entity"
	"neohand/internal/domain/repository"
	"neohand/pkg/errors"
)

type firestoreSupporterRepository struct {
	client *firestore.Client
}

func NewFirestoreSupporterRepository(client *firestore.Client) repository.SupporterRepository {
	return &firestoreSupporterRepository{
		client: client,
	}
}

func (r *firestoreSupporterRepository) GetByID(ctx context.Context, id string) (*entity.Supporter, error) {
	doc, err := r.client.Collection("supporters").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Supporter", err)
		}
		return nil, errors.Internal("Failed to get supporter", err)
	}

	var supporter entity.Supporter
	if err := doc.DataTo(&supporter); err != nil {
		return nil, errors.Internal("Failed to parse supporter data", err)
	}
	return &supporter, nil
}

func (r *firestoreSupporterRepository) List(ctx context.Context) ([]*entity.Supporter, error) {
	iter := r.client.Collection("supporters").OrderBy("name", firestore.Asc).Documents(ctx)

	var supporters []*entity.Supporter
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate supporters", err)
		}

		var supporter entity.Supporter
		if err := doc.DataTo(&supporter); err != nil {
			return nil, errors.Internal("Failed to parse supporter data", err)
		}
		supporters = append(supporters, &supporter)
	}

	return supporters, nil
}

func (r *firestoreSupporterRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	_, err := r.client.Collection("supporters").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update supporter status", err)
	}

	return nil
}
