package service

import (
	"context"

	"user-admin-console/internal/common/envelope"
	"user-admin-console/internal/features/user/models"
)

// UserAPI is the remote user API as seen by the controller.
type UserAPI interface {
	List(ctx context.Context, q models.ListQuery) (envelope.Envelope[models.PagedResponse[models.User]], error)
	Stats(ctx context.Context) (envelope.Envelope[models.UserStats], error)
	Create(ctx context.Context, req models.CreateUserRequest) (envelope.Envelope[models.User], error)
	Delete(ctx context.Context, id string, soft bool) (envelope.Envelope[string], error)
}
