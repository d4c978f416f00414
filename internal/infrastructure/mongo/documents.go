package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackDocument は MongoDB 上のフィードバックスキーマを Go 構造体として表現したもの。
// _id は counters コレクションで採番した連番整数を用いる。
type FeedbackDocument struct {
	ID          int64     `bson:"_id"`
	Name        string    `bson:"name"`
	Email       string    `bson:"email"`
	Rating      int       `bson:"rating"`
	Comments    string    `bson:"comments"`
	SubmittedAt time.Time `bson:"submittedAt"`
}

// AdminDocument は管理者アカウントのスキーマを表現する。username はユニーク。
type AdminDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"passwordHash"`
}

// counterDocument は連番採番用のカウンタドキュメント。
type counterDocument struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
