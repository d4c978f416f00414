package server

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/sngm3741/feedback-collector/api/internal/admin/application"
	"github.com/sngm3741/feedback-collector/api/internal/config"
	mongodoc "github.com/sngm3741/feedback-collector/api/internal/infrastructure/mongo"
	adminhttp "github.com/sngm3741/feedback-collector/api/internal/interfaces/http/admin"
	"github.com/sngm3741/feedback-collector/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/feedback-collector/api/internal/interfaces/http/public"
	publicapp "github.com/sngm3741/feedback-collector/api/internal/public/application"
	"github.com/sngm3741/feedback-collector/api/internal/session"
	"github.com/sngm3741/feedback-collector/api/web"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ
// 依存注入するコンポジションルート。アプリケーションサービスをルータへ接続する
// 責務のみを担い、ドメインロジックは持たない。
type Server struct {
	logger             *log.Logger
	client             *mongo.Client
	database           *mongo.Database
	sessions           session.Store
	feedbackCommands   publicapp.FeedbackCommandService
	authService        adminapp.AuthService
	reportService      adminapp.ReportService
	pages              *template.Template
	addr               string
	allowedOrigins     []string
	feedbackCollection string
	adminCollection    string
	adminUsername      string
	adminPassword      string
}

// Run はスキーマを準備した上で HTTP サーバーを起動し、ルーティングと
// ミドルウェアを組み立てる。
func (s *Server) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongodoc.EnsureSchema(ctx, s.database, s.feedbackCollection, s.adminCollection, s.adminUsername, s.adminPassword); err != nil {
		cancel()
		return err
	}
	cancel()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:   s.logger,
		Commands: s.feedbackCommands,
		Pages:    s.pages,
	})
	publicHandler.Register(router)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:   s.logger,
		Auth:     s.authService,
		Reports:  s.reportService,
		Sessions: s.sessions,
		Pages:    s.pages,
	})
	adminHandler.Register(router)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB への疎通確認を行い、監視系からのヘルスチェック要求に応える。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			common.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		common.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// shutdown は MongoDB クライアントをタイムアウト付きで切断し、プロセス終了時の
// リソースリークを防ぐ。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New は Config と Mongo クライアントを受け取り、リポジトリとアプリケーション
// サービスを組み立てた Server を返す。依存解決の起点となるファクトリ。
func New(cfg config.Config, client *mongo.Client) *Server {
	database := client.Database(cfg.MongoDatabase)

	feedbackRepo := mongodoc.NewFeedbackRepository(database, cfg.FeedbackCollection, cfg.CounterCollection)
	adminRepo := mongodoc.NewAdminRepository(database, cfg.AdminCollection)

	pages := template.Must(template.ParseFS(web.Templates, "templates/*.html"))

	return &Server{
		logger:             cfg.ServerLog,
		client:             client,
		database:           database,
		sessions:           session.NewCookieStore(cfg.SessionSecret, cfg.SessionTTL, cfg.SessionCookieSecure),
		feedbackCommands:   publicapp.NewFeedbackCommandService(feedbackRepo),
		authService:        adminapp.NewAuthService(adminRepo),
		reportService:      adminapp.NewReportService(feedbackRepo),
		pages:              pages,
		addr:               cfg.Addr,
		allowedOrigins:     append([]string(nil), cfg.AllowedOrigins...),
		feedbackCollection: cfg.FeedbackCollection,
		adminCollection:    cfg.AdminCollection,
		adminUsername:      cfg.AdminUsername,
		adminPassword:      cfg.AdminPassword,
	}
}
