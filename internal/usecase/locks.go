package usecase

import "sync"

// campaignLocks serializes engine passes per campaign. The hourly worker and
// the manual trigger endpoints share one scheduler instance, so holding the
// campaign's lock for the whole pass means two overlapping triggers cannot
// both select the same prospect and double-send.
type campaignLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCampaignLocks() *campaignLocks {
	return &campaignLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire blocks until the campaign's lock is held and returns the unlock.
func (c *campaignLocks) acquire(campaignID string) func() {
	c.mu.Lock()
	l, ok := c.locks[campaignID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[campaignID] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}
