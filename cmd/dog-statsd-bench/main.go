package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/golang-collections/go-datastructures/queue"
	nanoid "github.com/matoous/go-nanoid"
	"github.com/namsral/flag"
	"github.com/syossan27/tebata"
	_ "go.uber.org/automaxprocs"

	statsd "github.com/creativemarket/dog-statsd"
	_ "github.com/creativemarket/dog-statsd/diagnostics"
	"github.com/creativemarket/dog-statsd/metrics"
	"github.com/creativemarket/dog-statsd/stats"
	"github.com/creativemarket/dog-statsd/utils"
)

// Options describes benchmark options
type Options struct {
	host           string
	port           int
	concurrency    int
	total          int
	kind           string
	tagCount       int
	rate           float64
	rotateInterval int
	debug          bool
}

// Benchmark implements shared methods for the benchmark
type Benchmark struct {
	client  *statsd.Client
	kind    string
	rate    float64
	tags    []statsd.Tag
	metrics *metrics.Metrics
	buffer  *queue.RingBuffer
	resChan chan (time.Duration)
	errChan chan (error)
}

func main() {
	var b Benchmark
	var options Options

	parseOptions(&options)

	// init logging
	logLevel := "info"

	if options.debug {
		logLevel = "debug"
	}

	err := utils.InitLogger("text", logLevel)

	if err != nil {
		log.Errorf("!!! Failed to initialize logger !!!\n%v", err)
		os.Exit(1)
	}

	log.WithField(
		"concurrency",
		options.concurrency,
	).WithField(
		"total",
		options.total,
	).WithField(
		"kind",
		options.kind,
	).WithField(
		"rate",
		options.rate,
	).Infof("Running send benchmark against %s:%d", options.host, options.port)

	conf := statsd.NewConfig()
	conf.Host = options.host
	conf.Port = options.port

	b.client, err = statsd.NewClient(conf)

	if err != nil {
		log.Errorf("Failed to initialize client: %v", err)
		os.Exit(1)
	}

	runID, err := nanoid.Nanoid(8)

	if err != nil {
		panic("Nanoid failed")
	}

	b.kind = options.kind
	b.rate = options.rate
	b.tags = benchTags(options.tagCount, runID)

	// Progress is logged through the registry's own rotate loop
	mconf := metrics.NewConfig()
	mconf.Log = options.debug
	mconf.RotateInterval = options.rotateInterval

	b.metrics = metrics.FromConfig(&mconf)
	b.metrics.RegisterCounter("sent_total", "The total number of send calls")
	b.metrics.RegisterCounter("errors_total", "The total number of failed send calls")

	go b.metrics.Run() // nolint:errcheck
	defer b.metrics.Shutdown()

	b.resChan = make(chan time.Duration, 1000)
	b.errChan = make(chan error, 1000)
	b.buffer = queue.NewRingBuffer(uint64(options.total))

	for i := 0; i < options.total; i++ {
		if err = b.buffer.Put(nil); err != nil {
			panic(err)
		}
	}

	for i := 0; i < options.concurrency; i++ {
		go b.startWorker(runID, i)
	}

	var resAgg stats.Aggregate

	// Print partial results when interrupted
	signals := tebata.New(syscall.SIGINT, syscall.SIGTERM)

	signals.Reserve(func() { // nolint:errcheck
		printResults(&resAgg)
		printMetrics(b.metrics)
		os.Exit(130)
	})

	completed := 0
	failures := 0

	for completed < options.total {
		select {
		case result := <-b.resChan:
			resAgg.Add(result)
		case err := <-b.errChan:
			log.Warnf("Error: %v", err)
			failures++
		}

		completed++
	}

	printResults(&resAgg)
	printMetrics(b.metrics)
	if failures > 0 {
		log.Errorf("%d sends failed out of %d", failures, completed)
	}
}

func parseOptions(options *Options) {
	flag.StringVar(&options.host, "h", "localhost", "Collector host")
	flag.IntVar(&options.port, "p", 8125, "Collector UDP port")
	flag.IntVar(&options.concurrency, "c", 10, "Number of concurrent senders")
	flag.IntVar(&options.total, "t", 100000, "Total number of sends to perform")
	flag.StringVar(&options.kind, "kind", "counter", "Metric kind: counter, gauge, timing, histogram or set")
	flag.IntVar(&options.tagCount, "tags", 2, "Number of tags per message")
	flag.Float64Var(&options.rate, "rate", 1.0, "Sample rate for counters and histograms")
	flag.IntVar(&options.rotateInterval, "rotate", 5, "Progress metrics rotation interval (seconds)")
	flag.BoolVar(&options.debug, "debug", false, "Enable debug logging and progress reports")
	flag.Parse()
}

func benchTags(count int, runID string) []statsd.Tag {
	tags := make([]statsd.Tag, 0, count+1)
	tags = append(tags, statsd.StringTag("run", runID))

	for i := 0; i < count; i++ {
		tags = append(tags, statsd.IntTag("tag"+strconv.Itoa(i), i))
	}

	return tags
}

func (b *Benchmark) startWorker(runID string, num int) {
	setValue := runID + "-" + strconv.Itoa(num)

	for {
		_, err := b.buffer.Get()

		if err != nil {
			panic(fmt.Errorf("Failed to read from buffer: %v", err))
		}

		start := time.Now()

		err = b.emit(setValue)
		b.metrics.Counter("sent_total").Inc()

		if err != nil {
			b.metrics.Counter("errors_total").Inc()
			b.errChan <- err
		} else {
			b.resChan <- time.Since(start)
		}
	}
}

func (b *Benchmark) emit(setValue string) error {
	switch b.kind {
	case "gauge":
		return b.client.Gauge("bench_gauge", rand.Float64()*100, b.tags...) // nolint:gosec
	case "timing":
		return b.client.Timing("bench_timing", rand.Float64()*1000, b.tags...) // nolint:gosec
	case "histogram":
		return b.client.Histogram("bench_histogram", rand.Float64()*100, b.rate, b.tags...) // nolint:gosec
	case "set":
		return b.client.Set("bench_set", setValue, b.tags...)
	}

	return b.client.Incr("bench_counter", 1, b.rate, b.tags...)
}

func printResults(res *stats.Aggregate) {
	if res.Count() == 0 {
		return
	}

	log.Infof("95p=%dms    min=%dms    median=%dms    max=%dms",
		stats.RoundToMS(res.Percentile(95)),
		stats.RoundToMS(res.Min()),
		stats.RoundToMS(res.Percentile(50)),
		stats.RoundToMS(res.Max()),
	)
}

func printMetrics(m *metrics.Metrics) {
	log.Infof("sent=%d    errors=%d",
		m.Counter("sent_total").Value(),
		m.Counter("errors_total").Value(),
	)
}
