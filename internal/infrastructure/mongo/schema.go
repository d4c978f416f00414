package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adminapp "github.com/sngm3741/feedback-collector/api/internal/admin/application"
)

// EnsureSchema はコレクションとインデックスを冪等に準備し、管理者アカウントが
// 空の場合は既定アカウントを 1 件シードする。毎回の起動時に呼んで安全。
func EnsureSchema(ctx context.Context, db *mongo.Database, feedbackCollection, adminCollection, adminUsername, adminPassword string) error {
	if err := ensureFeedbackCollection(ctx, db, feedbackCollection); err != nil {
		return err
	}
	if err := ensureAdminAccount(ctx, db.Collection(adminCollection), adminUsername, adminPassword); err != nil {
		return err
	}
	return nil
}

// ensureFeedbackCollection は rating の範囲チェックを $jsonSchema バリデータとして
// コレクションに持たせる。SQL でいう CHECK 制約に相当し、範囲外の書き込みは
// エンジン側で拒否される。
func ensureFeedbackCollection(ctx context.Context, db *mongo.Database, name string) error {
	validator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"name", "email", "rating", "comments", "submittedAt"},
			"properties": bson.M{
				"name":     bson.M{"bsonType": "string", "minLength": 1},
				"email":    bson.M{"bsonType": "string", "minLength": 1},
				"comments": bson.M{"bsonType": "string", "minLength": 1},
				"rating": bson.M{
					"bsonType": []string{"int", "long"},
					"minimum":  1,
					"maximum":  5,
				},
			},
		},
	}

	err := db.CreateCollection(ctx, name, options.CreateCollection().SetValidator(validator))
	if err != nil {
		var cmdErr mongo.CommandError
		// 48 = NamespaceExists
		if errors.As(err, &cmdErr) && cmdErr.Code == 48 {
			return nil
		}
		return fmt.Errorf("create feedback collection: %w", err)
	}
	return nil
}

// ensureAdminAccount は username のユニークインデックスを張り、アカウントが
// 1 件も無い場合のみ既定の管理者を挿入する。
func ensureAdminAccount(ctx context.Context, admins *mongo.Collection, username, password string) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := admins.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("create admin username index: %w", err)
	}

	count, err := admins.CountDocuments(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("count admin accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = admins.InsertOne(ctx, AdminDocument{
		Username:     username,
		PasswordHash: adminapp.HashPassword(password),
	})
	if err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}
	return nil
}
