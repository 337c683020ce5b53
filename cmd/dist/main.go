// Command dist measures how well the router spreads keys across cluster
// sizes, and how much of the key space moves when one server leaves.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gobwas/avl"
	"github.com/google/uuid"

	"github.com/keyroute/keyroute"
)

func main() {
	var (
		p  int    // Number of goroutines.
		n  int    // Number of objects.
		lo int    // Min cluster size.
		hi int    // Max cluster size.
		ss string // Comma-separated cluster sizes list.

		csv     bool
		verbose bool
		silent  bool
	)
	flag.IntVar(&p,
		"parallelism", runtime.NumCPU(),
		"number of concurrent processors",
	)
	flag.IntVar(&n,
		"objects", 1e6,
		"number of objects to route",
	)
	flag.IntVar(&lo,
		"lo", 2,
		"cluster size to start from",
	)
	flag.IntVar(&hi,
		"hi", 32,
		"cluster size to end at",
	)
	flag.StringVar(&ss,
		"sizes", "",
		"comma-separated list of cluster sizes",
	)
	flag.BoolVar(&verbose,
		"v", false,
		"be verbose",
	)
	flag.BoolVar(&silent,
		"s", false,
		"be silent",
	)
	flag.BoolVar(&csv,
		"csv", true,
		"print csv to standard output",
	)

	flag.Parse()

	logf := func(f string, args ...interface{}) {
		if !verbose {
			return
		}
		log.Printf(f, args...)
	}
	printf := func(f string, args ...interface{}) {
		if silent {
			return
		}
		fmt.Fprintf(os.Stderr, f, args...)
	}

	// Prepare list of cluster sizes. We merge here the sizes range (from
	// `lo` to `hi`) with manually specified sizes in `ss`.
	// We use tree to autofix duplicates (if any).
	var sizes avl.Tree
	for _, s := range strings.Split(ss, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			panic(err)
		}
		sizes, _ = sizes.Insert(size(v))
	}
	for v := lo; v <= hi; v++ {
		sizes, _ = sizes.Insert(size(v))
	}
	max := 0
	sizes.InOrder(func(x avl.Item) bool {
		max = int(x.(size))
		return true
	})
	logf("%d sizes are ready", sizes.Size())

	// Prepare the biggest server pool needed; each sweep uses its prefix.
	servers := make([]string, max)
	for i := range servers {
		servers[i] = uuid.NewString()
	}
	logf("%d servers are ready", len(servers))

	// Prepare objects to be routed.
	objects := make([]keyroute.StringKey, n)
	for i := range objects {
		objects[i] = keyroute.StringKey(uuid.NewString())
	}
	logf("%d objects are ready", len(objects))

	var (
		work    = make(chan int)
		stop    = make(chan struct{})
		done    = make(chan struct{}, p)
		results = make(chan result, 1)
	)
	for i := 0; i < p; i++ {
		go func() {
			defer func() {
				done <- struct{}{}
			}()
			owners := make([]string, n)
			for {
				var s int
				select {
				case <-stop:
					return
				case s = <-work:
					// Process below.
				}

				start := time.Now()
				r := keyroute.Ordered(servers[:s]...)
				latency := time.Since(start)

				distribution := make(map[string]int, s)
				for i, obj := range objects {
					x, err := r.Route(obj)
					if err != nil {
						panic(err)
					}
					owners[i] = x
					distribution[x]++
				}
				mean := float64(n) / float64(s)
				var variance float64
				for _, d := range distribution {
					variance += math.Pow(float64(d)-mean, 2)
				}
				// Divide by number of servers as for mean.
				variance /= float64(s)

				// Drop one server and count how many objects move.
				shrunk := r.Remove(servers[0])
				var moved int
				for i, obj := range objects {
					x, err := shrunk.Route(obj)
					if err != nil {
						panic(err)
					}
					if x != owners[i] {
						moved++
					}
				}

				results <- result{
					size:    s,
					latency: latency,
					stddev:  math.Sqrt(variance),
					remap:   float64(moved) / float64(n),
				}
			}
		}()
	}

	go func() {
		sizes.InOrder(func(x avl.Item) bool {
			select {
			case <-stop:
				return false
			case work <- int(x.(size)):
				return true
			}
		})
		close(stop)
		for i := 0; i < p; i++ {
			<-done
		}
		close(results)
	}()

	var t avl.Tree
	for r := range results {
		t, _ = t.Insert(r)
		printf(".")
		if n := t.Size(); n%80 == 0 {
			f := sizes.Size()
			printf(
				"%d/%d(%.1f%%)\n",
				n, f,
				float64(n)/float64(f)*100, // Progress percentage.
			)
		}
	}
	printf("\n")

	tw := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
	t.InOrder(func(x avl.Item) bool {
		r := x.(result)
		devPct := r.stddev / (float64(n) / float64(r.size)) * 100
		logf(
			"%04d: stddev=%.2f(%.2f%%) remap=%.2f%% latency=%s\n",
			r.size,
			r.stddev, devPct,
			r.remap*100,
			r.latency,
		)
		if csv {
			fmt.Fprintf(tw,
				"%d,\t%.4f,\t%.2f,\t%.2f\n",
				r.size, devPct, r.remap*100,
				r.latency.Seconds()*1000,
			)
		}
		return true
	})
	tw.Flush()

	printf("OK")
}

type result struct {
	size    int
	latency time.Duration
	stddev  float64
	remap   float64
}

func (r result) Compare(x avl.Item) int {
	return r.size - x.(result).size
}

type size int

func (s size) Compare(x avl.Item) int {
	return int(s - x.(size))
}
