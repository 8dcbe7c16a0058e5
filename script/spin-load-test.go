package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

type createPlayerRequest struct {
	InitialBalance int64 `json:"initialBalance"`
}

type playerResponse struct {
	PlayerID string `json:"playerId"`
	Balance  int64  `json:"balance"`
}

type spinRequest struct {
	PlayerID string `json:"playerId"`
	Bet      int64  `json:"bet"`
}

type spinResponse struct {
	PlayerID   string `json:"playerId"`
	Bet        int64  `json:"bet"`
	Win        int64  `json:"win"`
	NewBalance int64  `json:"newBalance"`
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests int
	Succeeded     int
	Rejected      int // 4xx, e.g. insufficient funds
	Failed        int // transport errors and 5xx
	Wins          int
	NetDelta      int64 // sum of win - bet over successful spins
	TotalTime     time.Duration
	ResponseTimes []time.Duration
	StatusCounts  map[int]int
	Lock          sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 10, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 500, "Total number of spins to make")
	playerCount := flag.Int("p", 5, "Number of players to create")
	openingBalance := flag.Int64("balance", 10000, "Opening balance of each player")
	maxBet := flag.Int64("bet", 50, "Maximum bet; each spin bets a random amount in [1, bet]")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 0, "Delay between requests in milliseconds")
	flag.Parse()

	client := resty.New().
		SetBaseURL(*baseURL).
		SetTimeout(10 * time.Second)

	players, err := createPlayers(client, *playerCount, *openingBalance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create players: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Load testing %d spins across %d players\n", *totalRequests, len(players))
	fmt.Printf("Concurrency: %d goroutines, delay %d ms\n", *concurrency, *delayMs)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
		StatusCounts:  make(map[int]int),
	}

	jobs := make(chan int, *totalRequests)
	for i := range *totalRequests {
		jobs <- i
	}
	close(jobs)

	startTime := time.Now()
	var wg sync.WaitGroup
	for range *concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, players, *maxBet, *delayMs, jobs, stats)
		}()
	}
	wg.Wait()
	stats.TotalTime = time.Since(startTime)

	printResults(stats)

	if !verifyConservation(client, players, *openingBalance, stats.NetDelta) {
		os.Exit(2)
	}
}

func createPlayers(client *resty.Client, count int, balance int64) ([]string, error) {
	ids := make([]string, 0, count)
	for range count {
		var player playerResponse
		resp, err := client.R().
			SetBody(createPlayerRequest{InitialBalance: balance}).
			SetResult(&player).
			Post("/api/player")
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("create player: HTTP %d: %s", resp.StatusCode(), resp.String())
		}
		ids = append(ids, player.PlayerID)
	}
	return ids, nil
}

func worker(client *resty.Client, players []string, maxBet int64, delayMs int, jobs <-chan int, stats *TestStats) {
	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		req := spinRequest{
			PlayerID: players[rand.IntN(len(players))],
			Bet:      1 + rand.Int64N(maxBet),
		}

		var result spinResponse
		start := time.Now()
		resp, err := client.R().SetBody(req).SetResult(&result).Post("/api/spin")
		elapsed := time.Since(start)

		stats.Lock.Lock()
		stats.ResponseTimes = append(stats.ResponseTimes, elapsed)
		switch {
		case err != nil:
			stats.Failed++
		case resp.StatusCode() == http.StatusOK:
			stats.Succeeded++
			stats.NetDelta += result.Win - result.Bet
			if result.Win > 0 {
				stats.Wins++
			}
		case resp.StatusCode() < http.StatusInternalServerError:
			stats.Rejected++
		default:
			stats.Failed++
		}
		if err == nil {
			stats.StatusCounts[resp.StatusCode()]++
		}
		stats.Lock.Unlock()
	}
}

// verifyConservation checks that balances moved by exactly the reported spin results
func verifyConservation(client *resty.Client, players []string, openingBalance, netDelta int64) bool {
	var total int64
	for _, id := range players {
		var player playerResponse
		resp, err := client.R().SetResult(&player).Get("/api/balance/" + id)
		if err != nil || resp.StatusCode() != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Failed to read balance of %s: %v\n", id, err)
			return false
		}
		total += player.Balance
	}

	expected := openingBalance*int64(len(players)) + netDelta
	fmt.Println("\n----------------- CONSERVATION -----------------")
	fmt.Printf("Expected total balance: %d\n", expected)
	fmt.Printf("Actual total balance:   %d\n", total)
	if total != expected {
		fmt.Println("FAILED: balances do not match the committed spins")
		return false
	}
	fmt.Println("OK")
	return true
}

func printResults(stats *TestStats) {
	tps := float64(stats.Succeeded) / stats.TotalTime.Seconds()

	var p50, p90, p99 time.Duration
	if n := len(stats.ResponseTimes); n > 0 {
		sorted := slices.Clone(stats.ResponseTimes)
		slices.Sort(sorted)
		p50 = sorted[n*50/100]
		p90 = sorted[n*90/100]
		p99 = sorted[n*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Spins:     %d\n", stats.TotalRequests)
	fmt.Printf("Succeeded:       %d\n", stats.Succeeded)
	fmt.Printf("Rejected (4xx):  %d\n", stats.Rejected)
	fmt.Printf("Failed:          %d\n", stats.Failed)
	if stats.Succeeded > 0 {
		fmt.Printf("Win Rate:        %.1f%%\n", float64(stats.Wins)/float64(stats.Succeeded)*100)
	}
	fmt.Printf("Total Test Time: %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("TPS:             %.2f\n", tps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("P50 Response:    %v\n", p50)
	fmt.Printf("P90 Response:    %v\n", p90)
	fmt.Printf("P99 Response:    %v\n", p99)

	fmt.Println("\n----------------- STATUS CODES -----------------")
	for code, count := range stats.StatusCounts {
		fmt.Printf("HTTP %d: %d\n", code, count)
	}
}
