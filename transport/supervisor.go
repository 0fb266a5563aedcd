package transport

import (
	"net"
	"sync"

	"github.com/indigo-web/webserv/config"
)

// Supervisor runs several bound transports as one: the first of them to fail brings all the
// others down.
type Supervisor struct {
	bound    []bound
	stop     chan struct{}
	done     chan struct{}
	stopOnce *sync.Once
}

type bound struct {
	t  Transport
	cb func(conn net.Conn)
}

func NewSupervisor() Supervisor {
	return Supervisor{
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		stopOnce: new(sync.Once),
	}
}

// Add binds the transport. On failure, every transport bound so far is closed, as the
// supervisor is not going to run anyway.
func (s *Supervisor) Add(addr string, t Transport, cb func(net.Conn)) error {
	if err := t.Bind(addr); err != nil {
		for _, b := range s.bound {
			b.t.Close()
		}

		return err
	}

	s.bound = append(s.bound, bound{t: t, cb: cb})

	return nil
}

// Addrs returns addresses of the bound transports in the order they were added.
func (s *Supervisor) Addrs() []net.Addr {
	addrs := make([]net.Addr, 0, len(s.bound))
	for _, b := range s.bound {
		addrs = append(addrs, b.t.Addr())
	}

	return addrs
}

// Run serves until either Stop is called or any of the transports returns. In both cases,
// it returns only after all the connections being served are done. The returned error is
// the one the first failed transport returned.
func (s *Supervisor) Run(cfg config.NET) error {
	defer close(s.done)

	if len(s.bound) == 0 {
		return nil
	}

	errs := make(chan error, len(s.bound))
	for _, b := range s.bound {
		go func() {
			errs <- b.t.Listen(cfg, b.cb)
		}()
	}

	var (
		err     error
		running = len(s.bound)
	)

	select {
	case err = <-errs:
		running--
	case <-s.stop:
	}

	for _, b := range s.bound {
		b.t.Stop()
		b.t.Close()
	}

	for range running {
		<-errs
	}

	for _, b := range s.bound {
		b.t.Wait()
	}

	return err
}

// Stop makes Run return and waits until it does. It must not be called if Run was never
// called, otherwise it blocks forever.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})

	<-s.done
}
