// seed はローカル開発用にサンプルのフィードバックを投入するユーティリティ。
// 既にデータがある場合は --force を付けない限り何もしない。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/feedback-collector/api/internal/config"
	mongodoc "github.com/sngm3741/feedback-collector/api/internal/infrastructure/mongo"
	"github.com/sngm3741/feedback-collector/api/internal/public/domain"
)

var sampleEntries = []struct {
	name     string
	email    string
	comments string
}{
	{"Alice Carter", "alice@example.com", "Great experience, the form was easy to use."},
	{"Ben Okafor", "ben@example.com", "Quick and painless. Would submit again."},
	{"Chloe Winters", "chloe@example.com", "The rating scale could use half stars."},
	{"Dmitri Volkov", "dmitri@example.com", "Support responded the same day, impressive."},
	{"Emi Tanaka", "emi@example.com", "Everything worked, nothing to complain about."},
	{"Farah Aziz", "farah@example.com", "Page loaded slowly on mobile, otherwise fine."},
	{"Gustav Lindqvist", "gustav@example.com", "Clear instructions, straightforward process."},
	{"Hana Sato", "hana@example.com", "I like that I can see my submission confirmed."},
}

func main() {
	count := flag.Int("count", 8, "投入するフィードバック件数")
	force := flag.Bool("force", false, "既存データがあっても追記する")
	randomSeed := flag.Int64("seed", time.Now().UnixNano(), "乱数シード")
	flag.Parse()

	cfg := config.Load()
	logger := cfg.ServerLog

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Printf("MongoDB 切断時にエラー: %v", err)
		}
	}()

	database := client.Database(cfg.MongoDatabase)
	if err := mongodoc.EnsureSchema(ctx, database, cfg.FeedbackCollection, cfg.AdminCollection, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("スキーマ準備に失敗しました: %v", err)
	}

	existing, err := database.Collection(cfg.FeedbackCollection).CountDocuments(ctx, bson.D{})
	if err != nil {
		log.Fatalf("既存件数の取得に失敗しました: %v", err)
	}
	if existing > 0 && !*force {
		logger.Printf("既に %d 件のフィードバックが存在するためスキップします (--force で追記)", existing)
		return
	}

	rng := rand.New(rand.NewSource(*randomSeed))
	repo := mongodoc.NewFeedbackRepository(database, cfg.FeedbackCollection, cfg.CounterCollection)

	inserted := 0
	for i := 0; i < *count; i++ {
		sample := sampleEntries[i%len(sampleEntries)]
		entry := &domain.FeedbackEntry{
			Name:     sample.name,
			Email:    sample.email,
			Rating:   1 + rng.Intn(5),
			Comments: sample.comments,
			// 直近2週間にばらけさせる
			SubmittedAt: time.Now().UTC().Add(-time.Duration(rng.Intn(14*24)) * time.Hour),
		}
		id, err := repo.Insert(ctx, entry)
		if err != nil {
			log.Fatalf("フィードバック投入に失敗しました: %v", err)
		}
		inserted++
		logger.Printf("seeded feedback id=%d rating=%d", id, entry.Rating)
	}

	fmt.Printf("done: %d entries seeded into %s.%s\n", inserted, cfg.MongoDatabase, cfg.FeedbackCollection)
}
