// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

import (
	"sync"
	"time"
)

// Ticker drives a prepared Chain on its own goroutine, calling Tick once
// per period and reporting any error on the channel returned by Start.
// It is a convenience for callers that don't already have their own
// real-time callback driving the chain (e.g. an audio device callback);
// nothing about Chain itself requires a Ticker.
type Ticker struct {
	chain  *Chain
	period time.Duration

	doneC chan struct{}
	wg    sync.WaitGroup
}

// NewTicker builds a Ticker for chain that fires every period.
func NewTicker(chain *Chain, period time.Duration) *Ticker {
	return &Ticker{chain: chain, period: period}
}

// Start begins ticking the chain and returns a channel on which any error
// returned by Chain.Tick is reported. The channel is closed once Stop is
// called and the running goroutine exits.
func (t *Ticker) Start() <-chan error {
	c := make(chan error)
	t.doneC = make(chan struct{})
	t.wg.Add(1)

	go func() {
		defer t.wg.Done()
		defer close(c)

		tk := time.NewTicker(t.period)
		defer tk.Stop()

		for {
			select {
			case <-t.doneC:
				return
			case now := <-tk.C:
				if err := t.chain.Tick(now.UnixNano()); err != nil {
					c <- err
				}
			}
		}
	}()
	return c
}

// Stop halts the ticking goroutine and waits for it to exit.
func (t *Ticker) Stop() {
	close(t.doneC)
	t.wg.Wait()
}
