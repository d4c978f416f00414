package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/feedback-collector/api/internal/public/domain"
)

// feedbackCounterID は counters コレクション内でフィードバック連番を指すキー。
const feedbackCounterID = "feedback"

// FeedbackRepository はフィードバック集約を MongoDB で扱う実装リポジトリ。
// Public コンテキストの書き込みポートと Admin コンテキストの読み取りポートを
// 両方満たす。
type FeedbackRepository struct {
	feedback *mongo.Collection
	counters *mongo.Collection
}

// NewFeedbackRepository はフィードバック・カウンタの 2 コレクションを束縛したリポジトリを構築する。
func NewFeedbackRepository(db *mongo.Database, feedbackCollection, counterCollection string) *FeedbackRepository {
	return &FeedbackRepository{
		feedback: db.Collection(feedbackCollection),
		counters: db.Collection(counterCollection),
	}
}

// nextID はカウンタドキュメントを $inc して次の連番を採る。upsert なので
// 初回呼び出しで 1 から始まる。
func (r *FeedbackRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDocument
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": feedbackCounterID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next feedback id: %w", err)
	}
	return doc.Seq, nil
}

// Insert は採番した連番を _id に据えてドキュメントを追加し、その ID を返す。
// コレクションバリデータ違反（rating 範囲外など）は書き込みエラーとして返る。
func (r *FeedbackRepository) Insert(ctx context.Context, entry *domain.FeedbackEntry) (int64, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return 0, err
	}

	doc := FeedbackDocument{
		ID:          id,
		Name:        entry.Name,
		Email:       entry.Email,
		Rating:      entry.Rating,
		Comments:    entry.Comments,
		SubmittedAt: entry.SubmittedAt,
	}
	if _, err := r.feedback.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("insert feedback: %w", err)
	}

	entry.ID = id
	return id, nil
}

// List は投稿日時の降順で全件を返す。同時刻の場合は _id 降順で後勝ちにする。
func (r *FeedbackRepository) List(ctx context.Context) ([]domain.FeedbackEntry, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "submittedAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := r.feedback.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]domain.FeedbackEntry, 0)
	for cursor.Next(ctx) {
		var doc FeedbackDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		entries = append(entries, domain.FeedbackEntry{
			ID:          doc.ID,
			Name:        doc.Name,
			Email:       doc.Email,
			Rating:      doc.Rating,
			Comments:    doc.Comments,
			SubmittedAt: doc.SubmittedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}

	return entries, nil
}

// Count は総件数を返す。
func (r *FeedbackRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.feedback.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	return count, nil
}

// AverageRating は $group 集計で平均評価を求める。件数 0 のときは nil。
func (r *FeedbackRepository) AverageRating(ctx context.Context) (*float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"avgRating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.feedback.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate average rating: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var agg struct {
			AvgRating *float64 `bson:"avgRating"`
		}
		if err := cursor.Decode(&agg); err != nil {
			return nil, fmt.Errorf("decode average rating: %w", err)
		}
		return agg.AvgRating, nil
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate average rating: %w", err)
	}

	return nil, nil
}

// RatingHistogram は評価値ごとの件数を集計する。1〜5 のキーは常に揃える。
func (r *FeedbackRepository) RatingHistogram(ctx context.Context) (map[int]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$rating",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.feedback.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate rating histogram: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[int]int64)
	for cursor.Next(ctx) {
		var agg struct {
			Rating int   `bson:"_id"`
			Count  int64 `bson:"count"`
		}
		if err := cursor.Decode(&agg); err != nil {
			return nil, fmt.Errorf("decode rating histogram: %w", err)
		}
		counts[agg.Rating] = agg.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating histogram: %w", err)
	}

	return fillHistogram(counts), nil
}

// fillHistogram は欠けている評価値バケットを 0 で補完する。
func fillHistogram(counts map[int]int64) map[int]int64 {
	histogram := make(map[int]int64, 5)
	for rating := 1; rating <= 5; rating++ {
		histogram[rating] = counts[rating]
	}
	return histogram
}
