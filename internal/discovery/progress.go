package discovery

import "sync"

// BatchStatus describes where a batch analysis currently stands.
type BatchStatus struct {
	BatchID   string   `json:"batch_id"`
	Total     int      `json:"total"`
	Completed int      `json:"completed"`
	Failed    int      `json:"failed"`
	Running   bool     `json:"running"`
	VideoIDs  []string `json:"video_ids"`
}

// progressTracker holds in-memory status for running and finished batches.
// State lives for the process lifetime only.
type progressTracker struct {
	mu      sync.Mutex
	batches map[string]*BatchStatus
}

func newProgressTracker() *progressTracker {
	return &progressTracker{batches: make(map[string]*BatchStatus)}
}

func (t *progressTracker) start(batchID string, videoIDs []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.batches[batchID] = &BatchStatus{
		BatchID:  batchID,
		Total:    len(videoIDs),
		Running:  true,
		VideoIDs: videoIDs,
	}
}

func (t *progressTracker) recordResult(batchID string, succeeded bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.batches[batchID]
	if !ok {
		return
	}
	if succeeded {
		b.Completed++
	} else {
		b.Failed++
	}
}

func (t *progressTracker) finish(batchID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if b, ok := t.batches[batchID]; ok {
		b.Running = false
	}
}

// status returns a copy so callers never see concurrent mutation.
func (t *progressTracker) status(batchID string) (BatchStatus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.batches[batchID]
	if !ok {
		return BatchStatus{}, false
	}
	out := *b
	out.VideoIDs = append([]string(nil), b.VideoIDs...)
	return out, true
}
