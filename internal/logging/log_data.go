package logging

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type logDataKey struct{}

// LogData collects the timings and fields of one request so they are
// emitted as a single log line.
type LogData struct {
	mutex     *sync.Mutex
	timeItems map[string]int64
	dataItems map[string]interface{}
	logger    *logrus.Logger
}

func NewLogData(logger *logrus.Logger) *LogData {
	return &LogData{
		mutex:     &sync.Mutex{},
		timeItems: make(map[string]int64),
		dataItems: make(map[string]interface{}),
		logger:    logger,
	}
}

// WithLogData returns a copy of ctx carrying logData.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataKey{}, logData)
}

// GetLogData returns the request's LogData, or nil outside a logged request.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(logDataKey{}).(*LogData)
	return logData
}

func (l *LogData) AddTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		timeSince := time.Since(startTime).Milliseconds()
		l.mutex.Lock()
		defer l.mutex.Unlock()
		l.timeItems[entryName] = timeSince
	}
}

func (l *LogData) AddToExistingTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		timeSince := time.Since(startTime).Milliseconds()
		l.mutex.Lock()
		defer l.mutex.Unlock()
		l.timeItems[entryName] += timeSince
	}
}

func (l *LogData) AddData(key string, value interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.dataItems[key] = value
}

func (l *LogData) Log() *logrus.Entry {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	fields := make(logrus.Fields, len(l.dataItems)+len(l.timeItems))
	for key, value := range l.dataItems {
		fields[key] = value
	}
	for key, value := range l.timeItems {
		fields[key] = value
	}

	return logrus.NewEntry(l.logger).WithFields(fields)
}
