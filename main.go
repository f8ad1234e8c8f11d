package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthtrack-app/healthtrack-api/api"
	"github.com/healthtrack-app/healthtrack-api/logmodule"
	"github.com/healthtrack-app/healthtrack-api/notification"
	"github.com/healthtrack-app/healthtrack-api/sensor"
	"github.com/healthtrack-app/healthtrack-api/store"
	"github.com/healthtrack-app/healthtrack-api/tracker"
	"github.com/healthtrack-app/healthtrack-api/utils"
)

var (
	server   *api.Server
	ormDB    *gorm.DB
	kvStore  store.Closer
	registry *tracker.Registry
	metrics  io.Closer
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("steps")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// openKeyValueStore connects the backend named by `storage.backend`.
func openKeyValueStore(ctx context.Context) (store.KeyValueStore, store.Pinger, store.Closer, error) {
	switch backend := viper.GetString("storage.backend"); backend {
	case "", "mongo":
		opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
		opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
		mongoClient, err := mongo.NewClient(opts)
		if nil != err {
			return nil, nil, nil, fmt.Errorf("create mongo client with error: %s", err)
		}

		if err := mongoClient.Connect(ctx); nil != err {
			return nil, nil, nil, fmt.Errorf("connect mongo database with error: %s", err)
		}

		kv := store.NewMongoKeyValueStore(mongoClient, viper.GetString("mongo.database"))
		return kv, kv, kv, nil
	case "redis":
		opts, err := redis.ParseURL(viper.GetString("redis.conn"))
		if err != nil {
			return nil, nil, nil, err
		}

		kv := store.NewRedisKeyValueStore(redis.NewClient(opts), viper.GetString("redis.namespace"))
		return kv, kv, kv, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown step api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if registry != nil {
			log.Info("Stopping tracking sessions")
			registry.Shutdown(ctx)
		}

		if kvStore != nil {
			log.Info("Shutting down key value store")
			kvStore.Close()
		}

		if ormDB != nil {
			log.Info("Shutting down db store")
			if err := ormDB.Close(); err != nil {
				log.Error(err)
			}
		}

		if metrics != nil {
			_ = metrics.Close()
		}

		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	jwtSecret := viper.GetString("jwt.secret")
	if jwtSecret == "" {
		log.Panic("empty jwt secret")
	}

	utils.InitI18NBundle()
	log.WithField("prefix", "init").Info("Loaded i18n bundle")

	reportInterval := viper.GetDuration("metrics.interval")
	if reportInterval <= 0 {
		reportInterval = time.Minute
	}
	scope, scopeCloser := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "steps",
		Reporter: logmodule.NewMetricsReporter("metrics"),
	}, reportInterval)
	metrics = scopeCloser

	kv, pinger, kvCloser, err := openKeyValueStore(initialCtx)
	if err != nil {
		log.Panic(err)
	}
	kvStore = kvCloser
	log.WithField("prefix", "init").Infof("Initialized %s key value store", viper.GetString("storage.backend"))

	ormDB, err = gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		log.Panic(err)
	}
	sessions := store.NewORMSessionLog(ormDB)

	loc := utils.GetLocation(viper.GetString("tracker.timezone"))
	if loc == nil {
		loc = time.Local
	}
	clock := tracker.NewSystemClock(loc)

	inbox := notification.NewInbox(viper.GetInt("notification.inbox_size"))

	aggregator := store.NewDailyAggregator(kv, clock.Today)
	aggregator.OnMalformed(func(userID string, err error) {
		inbox.Notify(userID, notification.MalformedData, err)
	})

	hub := sensor.NewHub()
	cfg := tracker.ConfigFromViper()
	registry = tracker.NewRegistry(func(userID string) (*tracker.Tracker, error) {
		stream := hub.Stream(userID)
		return tracker.New(userID, cfg, tracker.Dependencies{
			Sensor:     stream.Motion(),
			Location:   stream.Location(),
			Aggregator: aggregator,
			Sessions:   sessions,
			Clock:      clock,
			Notifier:   inbox,
			Scope:      scope.Tagged(map[string]string{"strategy": cfg.Pedometer.Strategy}),
		})
	})

	idleTTL := viper.GetDuration("tracker.idle_ttl")
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	go registry.PruneEvery(context.Background(), idleTTL, hub.Remove)

	// Init http server
	server = api.NewServer(
		[]byte(jwtSecret),
		pinger,
		aggregator,
		sessions,
		hub,
		registry,
		inbox)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
