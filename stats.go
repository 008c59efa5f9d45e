package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Stats reports responder throughput on a fixed period. It is polled from
// the run loop between bursts, never from inside one.
type Stats struct {
	w      io.Writer
	ticker *time.Ticker

	polls, served uint64
}

func NewStats(w io.Writer, every time.Duration) *Stats {
	return &Stats{w: w, ticker: time.NewTicker(every)}
}

func (s *Stats) tick(r *Responder) {
	select {
	case <-s.ticker.C:
		polls, served := r.Counts()
		fmt.Fprintf(s.w, "polls %d (+%d) served %d (+%d)\n",
			polls, polls-s.polls, served, served-s.served)
		s.polls, s.served = polls, served
	default:
	}
}

func (s *Stats) Stop() { s.ticker.Stop() }

const (
	statsviewAddr = "localhost:12600"
	statsviewURL  = "/debug/statsview"
)

// LaunchStatsview serves runtime statistics over HTTP from a new goroutine.
func LaunchStatsview(w io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(statsviewAddr))
		mgr := statsview.New()
		mgr.Start()
	}()
	fmt.Fprintf(w, "stats server available at %s%s\n", statsviewAddr, statsviewURL)
}
