package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/healthtrack-app/healthtrack-api/schema"
	"github.com/healthtrack-app/healthtrack-api/sensor"
	"github.com/healthtrack-app/healthtrack-api/store"
	"github.com/healthtrack-app/healthtrack-api/tracker"
	"github.com/healthtrack-app/healthtrack-api/utils"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("steps")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

// readSamples parses rows of `timestamp_ms,x,y,z`. A header row is skipped.
func readSamples(r io.Reader) ([]schema.AccelerationSample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	samples := []schema.AccelerationSample{}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}

		ts, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var axes [3]float64
		for i := range axes {
			if axes[i], err = strconv.ParseFloat(record[i+1], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}

		samples = append(samples, schema.AccelerationSample{
			X:         axes[0],
			Y:         axes[1],
			Z:         axes[2],
			Timestamp: ts,
		})
	}
}

func main() {
	var file, userID, strategy string
	flag.StringVar(&file, "f", "", "recorded samples, `timestamp_ms,x,y,z` per line")
	flag.StringVar(&userID, "u", "", "[optional] user id, defaults to the active user")
	flag.StringVar(&strategy, "s", "", "[optional] detection strategy, magnitude or axis")
	flag.Parse()

	f, err := os.Open(file)
	if err != nil {
		log.Fatal(err)
	}
	samples, err := readSamples(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}
	if len(samples) == 0 {
		log.Fatal("no samples to replay")
	}

	opts, err := redis.ParseURL(viper.GetString("redis.conn"))
	if err != nil {
		log.Fatal(err)
	}
	kv := store.NewRedisKeyValueStore(redis.NewClient(opts), viper.GetString("redis.namespace"))
	defer kv.Close()

	ctx := context.Background()
	if userID == "" {
		if userID, err = store.ActiveUser(ctx, kv); err != nil {
			log.Fatalf("no active user: %s", err)
		}
	}

	loc := utils.GetLocation(viper.GetString("tracker.timezone"))
	clock := tracker.NewReplayClock(loc)
	clock.Advance(samples[0].Timestamp)

	cfg := tracker.ConfigFromViper()
	if strategy != "" {
		cfg.Pedometer.Strategy = strategy
	}

	stream := sensor.NewStream()
	stream.Declare(sensor.Capabilities{MotionPermission: true, MotionAvailable: true})

	t, err := tracker.New(userID, cfg, tracker.Dependencies{
		Sensor:     stream.Motion(),
		Location:   stream.Location(),
		Aggregator: store.NewDailyAggregator(kv, clock.Today),
		Clock:      clock,
	})
	if err != nil {
		log.Fatal(err)
	}

	if _, err := t.LoadToday(ctx); err != nil {
		log.Fatal(err)
	}
	if err := t.Start(ctx); err != nil {
		log.Fatal(err)
	}

	for _, sample := range samples {
		clock.Advance(sample.Timestamp)
		stream.PublishSamples(sample)
	}

	summary, err := t.Stop(ctx)
	if err != nil {
		log.Fatal(err)
	}

	log.WithFields(log.Fields{
		"prefix":   "replay",
		"user":     userID,
		"samples":  len(samples),
		"strategy": summary.Strategy,
		"cadence":  summary.CadenceSPM,
		"days":     summary.Days,
	}).Infof("replayed %d steps, today total %d", summary.Steps, summary.TodayTotal)
}
