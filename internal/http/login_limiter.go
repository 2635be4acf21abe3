package httpx

import (
	"container/list"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	loginLimiterIdleTTL  = 10 * time.Minute
	loginLimiterMaxPeers = 10_000
)

// LoginLimiter is a token bucket per client address for POST /login.
// Peers are held in least-recently-seen order and are evicted from the
// tail once idle or once the table reaches loginLimiterMaxPeers.
type LoginLimiter struct {
	mu     sync.Mutex
	perMin int
	burst  int
	now    func() time.Time
	peers  map[string]*list.Element
	order  *list.List // front is most recently seen
}

type loginPeer struct {
	key  string
	lim  *rate.Limiter
	seen time.Time
}

// NewLoginLimiter allows perMinute attempts per client with the given burst.
// A non-positive perMinute returns nil, which allows everything.
func NewLoginLimiter(perMinute, burst int) *LoginLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &LoginLimiter{
		perMin: perMinute,
		burst:  burst,
		now:    time.Now,
		peers:  make(map[string]*list.Element),
		order:  list.New(),
	}
}

// Allow consumes one attempt for r's client.
func (l *LoginLimiter) Allow(r *http.Request) bool {
	if l == nil {
		return true
	}
	key := clientAddr(r)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(now)
	el, ok := l.peers[key]
	if ok {
		l.order.MoveToFront(el)
	} else {
		if len(l.peers) >= loginLimiterMaxPeers {
			l.evictLocked(l.order.Back())
		}
		el = l.order.PushFront(&loginPeer{
			key: key,
			lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.burst),
		})
		l.peers[key] = el
	}
	p := el.Value.(*loginPeer)
	p.seen = now
	return p.lim.AllowN(now, 1)
}

// pruneLocked drops peers idle for longer than loginLimiterIdleTTL.
func (l *LoginLimiter) pruneLocked(now time.Time) {
	for el := l.order.Back(); el != nil; el = l.order.Back() {
		if now.Sub(el.Value.(*loginPeer).seen) <= loginLimiterIdleTTL {
			return
		}
		l.evictLocked(el)
	}
}

func (l *LoginLimiter) evictLocked(el *list.Element) {
	if el == nil {
		return
	}
	l.order.Remove(el)
	delete(l.peers, el.Value.(*loginPeer).key)
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
