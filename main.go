// Article feed
// ============
// A REST service for a social article feed: users register, publish
// articles in a fixed set of categories and like, dislike or block what
// they read. The feed is filtered by the viewer's preferred categories.
//
// Generated route docs are printed by passing the -routes flag:
// `go run . -routes`
//
// Boot the server:
// ----------------
// $ REST_JWT_SECRET=secret go run .
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/
// Article Feeds API is running...
//
// $ curl -c jar -X POST -d '{"emailOrPhone":"peter@example.com","password":"spider-man"}' http://localhost:3333/api/auth/login
// {"_id":"...","firstName":"Peter",...,"token":"..."}
//
// $ curl -b jar http://localhost:3333/api/articles
// {"success":true,"feed":[...]}
//
// $ curl -b jar -X PUT -d '{"action":"like"}' http://localhost:3333/api/articles/{id}/reaction
// {"id":"...","likes":["..."],"isLiked":true,"likesCount":1,...}
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articlefeed/internal/article"
	"github.com/SergeyParamoshkin/articlefeed/internal/auth"
	"github.com/SergeyParamoshkin/articlefeed/internal/errresponse"
	"github.com/SergeyParamoshkin/articlefeed/internal/imagestore"
	"github.com/SergeyParamoshkin/articlefeed/internal/logging"
	"github.com/SergeyParamoshkin/articlefeed/internal/metrics"
	"github.com/SergeyParamoshkin/articlefeed/internal/storage/memory"
	"github.com/SergeyParamoshkin/articlefeed/internal/storage/postgres"
	"github.com/SergeyParamoshkin/articlefeed/internal/user"
)

const ServiceName = "rest"

type App struct {
	sugarLogger *zap.SugaredLogger
	config      Config

	users    user.Store
	articles article.Store
	images   imagestore.Store
	metrics  *metrics.Recorder
	pings    *metric.BoundInt64Counter
}

// nolint
func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar()

	config, err := loadConfig(os.Args[1:])
	if err != nil {
		sugar.Fatalw("invalid configuration", "error", err)
	}

	a := &App{
		sugarLogger: sugar,
		config:      config,
	}

	exporter, err := metrics.NewPrometheus()
	if err != nil {
		a.sugarLogger.Panicf("failed to initialize prometheus exporter %v", err)
	}

	meter := global.Meter(ServiceName)
	a.metrics = metrics.NewRecorder(meter)
	pings := metric.Must(meter).NewInt64Counter(
		"http/client/completed_count",
		metric.WithDescription("Count of completed requests, by HTTP method and response status"),
	).Bind(attribute.String("status", "200"))
	defer pings.Unbind()
	a.pings = &pings

	ctx := context.Background()

	closeStorage, err := a.openStorage(ctx)
	if err != nil {
		a.sugarLogger.Fatalw("open storage", "storage", config.Storage, "error", err)
	}
	defer closeStorage()

	if err := a.openImages(); err != nil {
		a.sugarLogger.Fatalw("open image store", "error", err)
	}

	r := a.router()

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if config.Routes {
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/articlefeed",
			Intro:       "Article feed REST API.",
		}))

		return
	}

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	go func() {
		a.sugarLogger.Infow("listening", "addr", config.Addr)
		if err := http.ListenAndServe(config.Addr, r); err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	}()

	if err := http.ListenAndServe(config.DiagAddr, diagRouter); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}

// openStorage picks the user and article stores named by the config. The
// returned func releases them.
func (a *App) openStorage(ctx context.Context) (func(), error) {
	switch a.config.Storage {
	case StoragePostgres:
		db, err := postgres.Open(ctx, a.config.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.users = db.Users()
		a.articles = db.Articles()

		return func() {
			if err := db.Close(); err != nil {
				a.sugarLogger.Errorw("close database", "error", err)
			}
		}, nil
	case StorageMemory:
		users := memory.NewUserStore()
		a.users = users
		a.articles = memory.NewArticleStore(users)

		return func() {}, nil
	default:
		return nil, errors.Errorf("unknown storage %q", a.config.Storage)
	}
}

func (a *App) openImages() error {
	if a.config.S3Bucket == "" {
		a.sugarLogger.Warnw("no image bucket configured, keeping images in memory")
		a.images = imagestore.NewFakeStore()

		return nil
	}

	s3, err := imagestore.NewS3Store(a.config.S3Bucket, a.config.S3Region, a.config.S3PublicURL)
	if err != nil {
		return err
	}
	a.images = s3

	return nil
}

func (a *App) router() chi.Router {
	tokens := auth.NewIssuer(a.config.JWTSecret, a.config.TokenTTL)

	users := &user.Handler{
		Users:         a.users,
		Tokens:        tokens,
		SecureCookies: a.config.SecureCookies,
	}
	articles := &article.Handler{
		Articles:      a.articles,
		Users:         a.users,
		Images:        a.images,
		Tokens:        tokens,
		Metrics:       a.metrics,
		MaxImageBytes: a.config.MaxImageMB << 20,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(a.sugarLogger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.NotFound(errresponse.NotFound)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("Article Feeds API is running..."))
		if err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Infow("ping with middle")
		if a.pings != nil {
			a.pings.Add(r.Context(), 1)
		}
		_, err := w.Write([]byte("pong"))
		if err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", users.Routes())
		r.Mount("/articles", articles.Routes())
	})

	return r
}

// Errors handed straight to render.Respond never reach the client verbatim.
// nolint
func init() {
	render.Respond = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		if err, ok := v.(error); ok {
			// We set a default error status response code if one hasn't been set.
			if _, ok := r.Context().Value(render.StatusCtxKey).(int); !ok {
				w.WriteHeader(http.StatusBadRequest)
			}

			logging.FromContext(r.Context()).Errorw("respond with error", "error", err)
			render.DefaultResponder(w, r, render.M{"status": "error"})

			return
		}

		render.DefaultResponder(w, r, v)
	}
}
