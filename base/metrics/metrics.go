/*Package metrics wraps datadog-go to facilitate metric recording.
Naming convention:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/plaza-xyz/marketapi/base/env"
	"github.com/plaza-xyz/marketapi/base/log"
)

const (
	// ddRate is the rate to pass metrics to the datadog agent. 1 means always.
	ddRate = 1
	// buffer this many counters before flushing to the statsd agent
	bufferMetrics = 10
)

// Ender finishes a timer started by BumpTime
type Ender interface {
	End()
}

// Service provides the metric recording interface
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

var (
	initOnce sync.Once
	ddClient *statsd.Client
)

func initDDClient() {
	host := viper.GetString("datadog_host")
	if host == "" {
		return
	}
	addr := fmt.Sprintf("%s:%d", host, 8125)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")
	client, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
	ddClient = client
}

// New creates a metric client with the package name as prefix
func New(pkgName string) Service {
	initOnce.Do(initDDClient)
	return &metrics{
		pkgName: pkgName,
		tags: []string{
			"host:", // remove unused host tag
			"pod:" + env.PodName(),
			"env:" + viper.GetString("env_name"),
			"app:" + viper.GetString("app_name"),
		},
	}
}

type metrics struct {
	pkgName string
	tags    []string
}

func (mt *metrics) withTags(tags []string) []string {
	res := append([]string{}, mt.tags...)
	for i := 0; i+1 < len(tags); i += 2 {
		res = append(res, tags[i]+":"+tags[i+1])
	}
	return res
}

// BumpAvg bumps the average for the given key.
func (mt *metrics) BumpAvg(key string, val float64, tags ...string) {
	if ddClient == nil {
		return
	}
	ddClient.Gauge(mt.pkgName+"."+key, val, mt.withTags(tags), ddRate)
}

// BumpSum bumps the sum for the given key.
func (mt *metrics) BumpSum(key string, val float64, tags ...string) {
	if ddClient == nil {
		return
	}
	ddClient.Count(mt.pkgName+"."+key, int64(val), mt.withTags(tags), ddRate)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *metrics) BumpHistogram(key string, val float64, tags ...string) {
	if ddClient == nil {
		return
	}
	ddClient.Histogram(mt.pkgName+"."+key, val, mt.withTags(tags), ddRate)
}

// BumpTime starts a timer for the given key. Calling End() on the returned
// value records the elapsed duration:
//
//	defer s.BumpTime("my.function").End()
func (mt *metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		key:   mt.pkgName + "." + key,
		tags:  mt.withTags(tags),
	}
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (t *timeTracker) End() {
	if ddClient == nil {
		return
	}
	ddClient.Histogram(t.key, float64(time.Since(t.start)/time.Millisecond), t.tags, ddRate)
}
