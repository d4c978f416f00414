package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/feedback-collector/api/internal/admin/domain"
)

// AdminRepository は管理者アカウントを MongoDB から読み取る実装リポジトリ。
type AdminRepository struct {
	admins *mongo.Collection
}

// NewAdminRepository は管理者コレクションを束縛したリポジトリを構築する。
func NewAdminRepository(db *mongo.Database, adminCollection string) *AdminRepository {
	return &AdminRepository{admins: db.Collection(adminCollection)}
}

// FindByUsername は username 完全一致でアカウントを引く。存在しない場合は
// エラーではなく nil を返す。
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*domain.AdminAccount, error) {
	var doc AdminDocument
	err := r.admins.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin by username: %w", err)
	}

	return &domain.AdminAccount{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
	}, nil
}
