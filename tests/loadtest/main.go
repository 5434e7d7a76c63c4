// Command loadtest drives a running nutrilog server. It also serves a stub
// relay so the server can be started with extraction.mode=relay and
// extraction.relayURL=http://127.0.0.1:18091/ without calling a real model.
package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	relayAddr    = "127.0.0.1:18091"
	numWorkers   = 20
	testDuration = 10 * time.Second
)

var meals = []string{
	"2 boiled eggs",
	"Brot mit Butter",
	"ein Teller Spaghetti Bolognese",
	"Apfel und eine Banane",
	"Müsli mit Milch",
	"Pizza Margherita",
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// knownIDs collects entry ids seen in submit responses for the delete mix.
var knownIDs = struct {
	sync.Mutex
	ids []string
}{}

func main() {
	fmt.Println("=== NutriLog Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	go serveStubRelay()

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Submissions (POST /api/entries) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doSubmit(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (30% submit, 10% delete, 60% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.30:
			return doSubmit(rng)
		case r < 0.40:
			return doDelete(rng)
		case r < 0.60:
			return doGet("/api/entries")
		case r < 0.80:
			return doGet("/api/totals")
		default:
			return doGet("/api/dashboard")
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (totals and dashboard) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return doGet("/api/totals")
		}
		return doGet("/api/dashboard")
	})
}

// serveStubRelay answers every description with one deterministic record.
func serveStubRelay() {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		n := float64(len(req.Description))
		gson, _ := json.Marshal([]map[string]interface{}{{
			"itemName": req.Description,
			"calories": n * 10,
			"protein":  n / 2,
			"fat":      n / 3,
			"carbs":    n,
		}})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(gson)
	})
	if err := http.ListenAndServe(relayAddr, handler); err != nil {
		fmt.Printf("stub relay stopped: %s\n", err)
	}
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
					totalOps.Add(1)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 72))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
		fmt.Printf("  %-22s %8d %6d %10s %10s %10s\n", ep, s.count, s.errors,
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	fmt.Println("  " + strings.Repeat("-", 72))
	if totalOps == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func doSubmit(rng *rand.Rand) result {
	data, _ := json.Marshal(map[string]string{"description": meals[rng.Intn(len(meals))]})

	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/api/entries", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /api/entries", 0, lat, true}
	}
	defer resp.Body.Close()

	var body struct {
		Entries []struct {
			ID string `json:"id"`
		} `json:"entries"`
	}
	if resp.StatusCode == http.StatusCreated && json.NewDecoder(resp.Body).Decode(&body) == nil {
		knownIDs.Lock()
		for _, e := range body.Entries {
			knownIDs.ids = append(knownIDs.ids, e.ID)
		}
		knownIDs.Unlock()
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return result{"POST /api/entries", resp.StatusCode, lat, resp.StatusCode != http.StatusCreated}
}

func doDelete(rng *rand.Rand) result {
	knownIDs.Lock()
	id := "missing"
	if n := len(knownIDs.ids); n > 0 {
		i := rng.Intn(n)
		id = knownIDs.ids[i]
		knownIDs.ids = append(knownIDs.ids[:i], knownIDs.ids[i+1:]...)
	}
	knownIDs.Unlock()

	req, _ := http.NewRequest(http.MethodDelete, baseURL+"/api/entries?id="+id, nil)
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"DELETE /api/entries", 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"DELETE /api/entries", resp.StatusCode, lat, resp.StatusCode != http.StatusNoContent}
}

func doGet(path string) result {
	endpoint := "GET " + path
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
