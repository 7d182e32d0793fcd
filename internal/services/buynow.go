// internal/services/buynow.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// BuyNowSelection is the short-lived state held between the "buy now" click
// and the delivery-details submission.
type BuyNowSelection struct {
	ProductID uuid.UUID
	Quantity  int
	expiresAt time.Time
}

// BuyNowStore keeps at most one pending selection per user, server-side,
// with a TTL. An expired or absent selection reads as not present.
type BuyNowStore struct {
	mtx        sync.Mutex
	selections map[uuid.UUID]BuyNowSelection
	ttl        time.Duration
}

func NewBuyNowStore(ttl time.Duration) *BuyNowStore {
	s := &BuyNowStore{
		selections: make(map[uuid.UUID]BuyNowSelection),
		ttl:        ttl,
	}

	go s.cleanupExpired()

	return s
}

func (s *BuyNowStore) cleanupExpired() {
	for {
		time.Sleep(time.Minute)
		now := time.Now()
		s.mtx.Lock()
		for userID, sel := range s.selections {
			if now.After(sel.expiresAt) {
				delete(s.selections, userID)
			}
		}
		s.mtx.Unlock()
	}
}

func (s *BuyNowStore) Put(userID, productID uuid.UUID, quantity int) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.selections[userID] = BuyNowSelection{
		ProductID: productID,
		Quantity:  quantity,
		expiresAt: time.Now().Add(s.ttl),
	}
}

func (s *BuyNowStore) Get(userID uuid.UUID) (BuyNowSelection, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sel, ok := s.selections[userID]
	if !ok {
		return BuyNowSelection{}, false
	}
	if time.Now().After(sel.expiresAt) {
		delete(s.selections, userID)
		return BuyNowSelection{}, false
	}
	return sel, true
}

func (s *BuyNowStore) Clear(userID uuid.UUID) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.selections, userID)
}
