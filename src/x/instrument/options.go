// Copyright (c) 2021 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package instrument

import (
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	defaultReportInterval      = time.Second
	defaultStandardSampleRate  = 1.0
	defaultHistogramBucketsLen = 60
)

var (
	// DefaultHistogramTimerHistogramBuckets is the default histogram buckets
	// used when using histogram timers: 10us to 1s on an exponential scale.
	DefaultHistogramTimerHistogramBuckets = tally.MustMakeExponentialDurationBuckets(
		10*time.Microsecond, 1.25, defaultHistogramBucketsLen)

	defaultTimerOptions = TimerOptions{
		Type:               StandardTimerType,
		StandardSampleRate: defaultStandardSampleRate,
		HistogramBuckets:   DefaultHistogramTimerHistogramBuckets,
	}
)

type options struct {
	log            *zap.Logger
	scope          tally.Scope
	timerOptions   TimerOptions
	reportInterval time.Duration
}

// NewOptions creates new instrument options.
func NewOptions() Options {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return &options{
		log:            logger,
		scope:          tally.NoopScope,
		timerOptions:   defaultTimerOptions,
		reportInterval: defaultReportInterval,
	}
}

func (o *options) SetLogger(value *zap.Logger) Options {
	opts := *o
	opts.log = value
	return &opts
}

func (o *options) Logger() *zap.Logger {
	return o.log
}

func (o *options) SetMetricsScope(value tally.Scope) Options {
	opts := *o
	opts.scope = value
	return &opts
}

func (o *options) MetricsScope() tally.Scope {
	return o.scope
}

func (o *options) SetTimerOptions(value TimerOptions) Options {
	opts := *o
	opts.timerOptions = value
	return &opts
}

func (o *options) TimerOptions() TimerOptions {
	return o.timerOptions
}

func (o *options) SetReportInterval(value time.Duration) Options {
	opts := *o
	opts.reportInterval = value
	return &opts
}

func (o *options) ReportInterval() time.Duration {
	return o.reportInterval
}

// Timer is a histogram or standard timer, depending on the timer options.
type Timer interface {
	Record(d time.Duration)
	Start() tally.Stopwatch
}

// NewTimer returns a timer created from the scope honoring the timer options:
// a histogram timer records into histogram buckets, a standard timer records
// a sampled fraction of the durations.
func NewTimer(scope tally.Scope, name string, opts TimerOptions) Timer {
	if opts.Type == HistogramTimerType {
		return &histogramTimer{histogram: scope.Histogram(name, opts.HistogramBuckets)}
	}
	return &sampledTimer{
		Timer: scope.Timer(name),
		rate:  opts.StandardSampleRate,
	}
}

type histogramTimer struct {
	histogram tally.Histogram
}

func (t *histogramTimer) Record(d time.Duration) {
	t.histogram.RecordDuration(d)
}

func (t *histogramTimer) Start() tally.Stopwatch {
	return tally.NewStopwatch(time.Now(), t)
}

func (t *histogramTimer) RecordStopwatch(start time.Time) {
	t.histogram.RecordDuration(time.Since(start))
}

type sampledTimer struct {
	tally.Timer

	rate float64
	cnt  atomic.Uint64
}

func (t *sampledTimer) shouldSample() bool {
	if t.rate >= 1.0 {
		return true
	}
	if t.rate <= 0 {
		return false
	}
	return t.cnt.Inc()%uint64(1/t.rate) == 0
}

func (t *sampledTimer) Record(d time.Duration) {
	if t.shouldSample() {
		t.Timer.Record(d)
	}
}

func (t *sampledTimer) Start() tally.Stopwatch {
	return tally.NewStopwatch(time.Now(), t)
}

func (t *sampledTimer) RecordStopwatch(start time.Time) {
	t.Record(time.Since(start))
}
