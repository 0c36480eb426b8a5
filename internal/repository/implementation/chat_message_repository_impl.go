package implementation

import (
	"context"

	"storefront-be/internal/entity"
	"storefront-be/internal/mapper"
	"storefront-be/internal/model"
	"storefront-be/internal/repository/contract"
	"storefront-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

// Create appends one message to the transcript. Messages are never edited afterwards.
func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	row := r.mapper.ChatMessageToModel(message)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*message = *r.mapper.ChatMessageToEntity(row)
	return nil
}

func (r *ChatMessageRepositoryImpl) FindTranscript(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	var rows []*model.ChatMessage
	// id breaks ties between a user message and a reply stored in the same instant
	query := applySpecifications(r.db.WithContext(ctx),
		specification.OwnedBySession{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ChatMessagesToEntities(rows), nil
}
