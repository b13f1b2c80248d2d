package storage

import (
	"log"
)

// Remover deletes replaced or orphaned image files off the request path.
// Handlers enqueue URLs after their transaction commits and move on; the
// worker drains the queue in the background.
type Remover struct {
	store     *Store
	queue     chan string
	stopChan  chan struct{}
	isRunning bool
}

// NewRemover creates a remover over the given store. The queue is buffered
// so a burst of gallery replacements never blocks a handler.
func NewRemover(store *Store) *Remover {
	return &Remover{
		store:    store,
		queue:    make(chan string, 256),
		stopChan: make(chan struct{}),
	}
}

// Start launches the background loop.
func (r *Remover) Start() {
	if r.isRunning {
		log.Println("Remover: Already running")
		return
	}
	r.isRunning = true
	log.Println("Remover: Started")
	go r.run()
}

// Stop drains nothing further; queued entries not yet processed are left on
// disk for the daily cleanup sweep.
func (r *Remover) Stop() {
	if !r.isRunning {
		return
	}
	log.Println("Remover: Stopping...")
	r.isRunning = false
	close(r.stopChan)
}

// Enqueue schedules the files behind the given URLs for deletion. If the
// queue is full the URL is dropped; the cleanup sweep catches it later.
func (r *Remover) Enqueue(imageURLs ...string) {
	for _, u := range imageURLs {
		select {
		case r.queue <- u:
		default:
			log.Printf("Remover: Queue full, deferring %s to cleanup sweep", u)
		}
	}
}

func (r *Remover) run() {
	for {
		select {
		case <-r.stopChan:
			log.Println("Remover: Stopped")
			return
		case imageURL := <-r.queue:
			r.store.Remove(imageURL)
		}
	}
}
