package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/distribution-service/internal/domain"
	"github.com/wms-platform/distribution-service/pkg/events"
	"github.com/wms-platform/distribution-service/pkg/kafka"
	"github.com/wms-platform/distribution-service/pkg/logging"
	"github.com/wms-platform/distribution-service/pkg/metrics"
	"github.com/wms-platform/distribution-service/pkg/mongodb"
)

type fakeMongo struct{}

func (f *fakeMongo) Collection(string) *mongodb.InstrumentedCollection { return nil }
func (f *fakeMongo) Close(context.Context) error                       { return nil }
func (f *fakeMongo) HealthCheck(context.Context) error                 { return nil }

type fakeProducer struct {
	closed bool
}

func (f *fakeProducer) PublishEvent(context.Context, string, *events.Event) error { return nil }
func (f *fakeProducer) Close() error {
	f.closed = true
	return nil
}

type fakeRunRepo struct{}

func (f *fakeRunRepo) Save(context.Context, *domain.DistributionRun) error { return nil }
func (f *fakeRunRepo) FindByRunID(context.Context, string) (*domain.DistributionRun, error) {
	return nil, domain.ErrRunNotFound
}
func (f *fakeRunRepo) List(context.Context, int64) ([]*domain.DistributionRun, error) {
	return nil, nil
}

type fakeConfigRepo struct{}

func (f *fakeConfigRepo) Save(context.Context, string, domain.DistributionConfig) error { return nil }
func (f *fakeConfigRepo) FindByName(context.Context, string) (*domain.DistributionConfig, error) {
	return nil, domain.ErrConfigNotFound
}
func (f *fakeConfigRepo) List(context.Context) ([]string, error) { return nil, nil }

func swapSeams(t *testing.T) *fakeProducer {
	t.Helper()

	oldMongo := newInstrumentedMongoClient
	oldProducer := newKafkaProducer
	oldRunRepo := newRunRepository
	oldConfigRepo := newConfigRepository
	oldStartHTTP := startHTTPServer

	t.Cleanup(func() {
		newInstrumentedMongoClient = oldMongo
		newKafkaProducer = oldProducer
		newRunRepository = oldRunRepo
		newConfigRepository = oldConfigRepo
		startHTTPServer = oldStartHTTP
	})

	producer := &fakeProducer{}

	newInstrumentedMongoClient = func(context.Context, *mongodb.Config, *metrics.Metrics, *logging.Logger) (instrumentedMongoClient, error) {
		return &fakeMongo{}, nil
	}
	newKafkaProducer = func(*kafka.Config, *metrics.Metrics, *logging.Logger) kafkaProducer {
		return producer
	}
	newRunRepository = func(instrumentedMongoClient) domain.RunRepository {
		return &fakeRunRepo{}
	}
	newConfigRepository = func(instrumentedMongoClient) domain.ConfigRepository {
		return &fakeConfigRepo{}
	}
	startHTTPServer = func(*http.Server) error { return http.ErrServerClosed }

	return producer
}

func TestRunSuccess(t *testing.T) {
	producer := swapSeams(t)

	signalCh := make(chan os.Signal, 1)
	signalCh <- os.Interrupt

	err := run(context.Background(), signalCh)
	require.NoError(t, err)
	assert.True(t, producer.closed)
}

func TestRunMongoError(t *testing.T) {
	swapSeams(t)

	newInstrumentedMongoClient = func(context.Context, *mongodb.Config, *metrics.Metrics, *logging.Logger) (instrumentedMongoClient, error) {
		return nil, errors.New("mongo error")
	}

	signalCh := make(chan os.Signal, 1)
	signalCh <- os.Interrupt

	err := run(context.Background(), signalCh)
	assert.Error(t, err)
}
