package broadcast

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nlebedev/chardraft/internal/model"
	"github.com/nlebedev/chardraft/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
	ctx context.Context
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub(testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *HubSuite) TearDownTest() {
	_ = s.hub.Close()
}

func (s *HubSuite) update(name string) Update {
	return Update{
		Old: []model.Player{},
		New: []model.Player{{ID: "p1", Name: name}},
	}
}

func (s *HubSuite) TestPublishReachesSubscriber() {
	received := make(chan Update, 1)
	unsubscribe, err := s.hub.Subscribe(s.ctx, "d1", func(u Update) {
		received <- u
	})
	s.Require().NoError(err)
	defer unsubscribe()

	s.Require().NoError(s.hub.Publish(s.ctx, "d1", s.update("Alice")))

	select {
	case u := <-received:
		s.Equal("Alice", u.New[0].Name)
	case <-time.After(time.Second):
		s.FailNow("update never delivered")
	}
}

func (s *HubSuite) TestPublishIsScopedToDraft() {
	received := make(chan Update, 1)
	unsubscribe, err := s.hub.Subscribe(s.ctx, "d1", func(u Update) {
		received <- u
	})
	s.Require().NoError(err)
	defer unsubscribe()

	s.Require().NoError(s.hub.Publish(s.ctx, "d2", s.update("Alice")))

	select {
	case <-received:
		s.FailNow("update crossed drafts")
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *HubSuite) TestFanOutToMultipleSubscribers() {
	var wg sync.WaitGroup
	wg.Add(2)

	for i := 0; i < 2; i++ {
		var once sync.Once
		unsubscribe, err := s.hub.Subscribe(s.ctx, "d1", func(u Update) {
			once.Do(wg.Done)
		})
		s.Require().NoError(err)
		defer unsubscribe()
	}
	s.Equal(2, s.hub.SubscriberCount("d1"))

	s.Require().NoError(s.hub.Publish(s.ctx, "d1", s.update("Alice")))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.FailNow("not all subscribers reached")
	}
}

func (s *HubSuite) TestUnsubscribeStopsDelivery() {
	received := make(chan Update, 4)
	unsubscribe, err := s.hub.Subscribe(s.ctx, "d1", func(u Update) {
		received <- u
	})
	s.Require().NoError(err)

	unsubscribe()
	s.Equal(0, s.hub.SubscriberCount("d1"))

	s.Require().NoError(s.hub.Publish(s.ctx, "d1", s.update("Alice")))

	select {
	case <-received:
		s.FailNow("update delivered after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *HubSuite) TestUnsubscribeIsIdempotent() {
	unsubscribe, err := s.hub.Subscribe(s.ctx, "d1", func(u Update) {})
	s.Require().NoError(err)

	unsubscribe()
	unsubscribe()
	s.Equal(0, s.hub.SubscriberCount("d1"))
}

func (s *HubSuite) TestPublishWithoutSubscribers() {
	s.NoError(s.hub.Publish(s.ctx, "d1", s.update("Alice")))
}

func (s *HubSuite) TestCloseStopsAllSubscriptions() {
	_, err := s.hub.Subscribe(s.ctx, "d1", func(u Update) {})
	s.Require().NoError(err)
	_, err = s.hub.Subscribe(s.ctx, "d2", func(u Update) {})
	s.Require().NoError(err)

	s.Require().NoError(s.hub.Close())
	s.Equal(0, s.hub.SubscriberCount("d1"))
	s.Equal(0, s.hub.SubscriberCount("d2"))
}
